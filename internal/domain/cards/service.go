package cards

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNameLength = 60

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCards(ctx context.Context, ownerID string, activeOnly bool) ([]Card, error) {
	items, err := s.repo.ListCards(ctx, ownerID, activeOnly)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []Card{}, nil
	}
	return items, nil
}

func (s *Service) GetCard(ctx context.Context, ownerID, cardID string) (*Card, error) {
	if uuid.Validate(cardID) != nil {
		return nil, ErrCardNotFound
	}
	return s.repo.GetCardByID(ctx, ownerID, cardID)
}

func (s *Service) CreateCard(ctx context.Context, input CardInput) (*Card, error) {
	name, brand, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	card := Card{
		ID:              uuid.NewString(),
		OwnerID:         input.OwnerID,
		Name:            name,
		Brand:           brand,
		BestPurchaseDay: input.BestPurchaseDay,
		Active:          true,
	}
	if err := s.repo.CreateCard(ctx, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *Service) UpdateCard(ctx context.Context, input CardInput) (*Card, error) {
	name, brand, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	card, err := s.GetCard(ctx, input.OwnerID, input.CardID)
	if err != nil {
		return nil, err
	}

	card.Name = name
	card.Brand = brand
	card.BestPurchaseDay = input.BestPurchaseDay
	card.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// SetActive toggles the card. Expenses referencing it keep their link.
func (s *Service) SetActive(ctx context.Context, ownerID, cardID string, active bool) (*Card, error) {
	card, err := s.GetCard(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	card.Active = active
	card.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Service) DeleteCard(ctx context.Context, ownerID, cardID string) error {
	if uuid.Validate(cardID) != nil {
		return ErrCardNotFound
	}
	deleted, err := s.repo.DeleteCard(ctx, ownerID, cardID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCardNotFound
	}
	return nil
}

func validateInput(input CardInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return "", "", ErrInvalidCardName
	}
	if input.BestPurchaseDay < 1 || input.BestPurchaseDay > 31 {
		return "", "", ErrInvalidPurchaseDay
	}
	return name, strings.TrimSpace(input.Brand), nil
}
