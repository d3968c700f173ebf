package cards

import "context"

type Repository interface {
	ListCards(ctx context.Context, ownerID string, activeOnly bool) ([]Card, error)
	GetCardByID(ctx context.Context, ownerID, cardID string) (*Card, error)
	CreateCard(ctx context.Context, card *Card) error
	UpdateCard(ctx context.Context, card *Card) error
	DeleteCard(ctx context.Context, ownerID, cardID string) (bool, error)
}
