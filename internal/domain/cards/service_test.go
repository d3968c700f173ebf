package cards

import (
	"context"
	"errors"
	"testing"
)

const (
	ownerID    = "11111111-1111-1111-1111-111111111111"
	otherOwner = "22222222-2222-2222-2222-222222222222"
)

type fakeCardsRepo struct {
	cards map[string]*Card
}

func newFakeCardsRepo() *fakeCardsRepo {
	return &fakeCardsRepo{cards: make(map[string]*Card)}
}

func (r *fakeCardsRepo) ListCards(ctx context.Context, ownerID string, activeOnly bool) ([]Card, error) {
	var result []Card
	for _, card := range r.cards {
		if card.OwnerID != ownerID || (activeOnly && !card.Active) {
			continue
		}
		result = append(result, *card)
	}
	return result, nil
}

func (r *fakeCardsRepo) GetCardByID(ctx context.Context, ownerID, cardID string) (*Card, error) {
	card, ok := r.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return nil, ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

func (r *fakeCardsRepo) CreateCard(ctx context.Context, card *Card) error {
	copied := *card
	r.cards[card.ID] = &copied
	return nil
}

func (r *fakeCardsRepo) UpdateCard(ctx context.Context, card *Card) error {
	copied := *card
	r.cards[card.ID] = &copied
	return nil
}

func (r *fakeCardsRepo) DeleteCard(ctx context.Context, ownerID, cardID string) (bool, error) {
	card, ok := r.cards[cardID]
	if !ok || card.OwnerID != ownerID {
		return false, nil
	}
	delete(r.cards, cardID)
	return true, nil
}

func TestCreateCardValidatesPurchaseDay(t *testing.T) {
	svc := NewService(newFakeCardsRepo())

	for _, day := range []int{0, 32} {
		_, err := svc.CreateCard(context.Background(), CardInput{OwnerID: ownerID, Name: "Visa", BestPurchaseDay: day})
		if !errors.Is(err, ErrInvalidPurchaseDay) {
			t.Fatalf("expected ErrInvalidPurchaseDay for day %d, got %v", day, err)
		}
	}

	if _, err := svc.CreateCard(context.Background(), CardInput{OwnerID: ownerID, Name: " ", BestPurchaseDay: 10}); !errors.Is(err, ErrInvalidCardName) {
		t.Fatalf("expected ErrInvalidCardName, got %v", err)
	}
}

func TestCardLifecycle(t *testing.T) {
	repo := newFakeCardsRepo()
	svc := NewService(repo)
	ctx := context.Background()

	card, err := svc.CreateCard(ctx, CardInput{OwnerID: ownerID, Name: " Nubank ", Brand: "Mastercard", BestPurchaseDay: 5})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if card.Name != "Nubank" || !card.Active {
		t.Fatalf("unexpected card %+v", card)
	}

	if _, err := svc.GetCard(ctx, otherOwner, card.ID); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound for other owner, got %v", err)
	}

	updated, err := svc.UpdateCard(ctx, CardInput{OwnerID: ownerID, CardID: card.ID, Name: "Nubank Gold", Brand: "Mastercard", BestPurchaseDay: 28})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.BestPurchaseDay != 28 || updated.Name != "Nubank Gold" {
		t.Fatalf("unexpected update %+v", updated)
	}

	toggled, err := svc.SetActive(ctx, ownerID, card.ID, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if toggled.Active {
		t.Fatalf("expected inactive card")
	}

	active, err := svc.ListCards(ctx, ownerID, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active cards, got %d", len(active))
	}

	if err := svc.DeleteCard(ctx, ownerID, card.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.DeleteCard(ctx, ownerID, card.ID); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound on second delete, got %v", err)
	}
}

func TestGetCardRejectsMalformedID(t *testing.T) {
	svc := NewService(newFakeCardsRepo())
	if _, err := svc.GetCard(context.Background(), ownerID, "abc"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}
