package cards

import (
	"context"
	"errors"

	cardsdomain "finance-tracker-go/internal/domain/cards"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListCards(ctx context.Context, ownerID string, activeOnly bool) ([]cardsdomain.Card, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if activeOnly {
		query = query.Where("active")
	}

	var items []cardsdomain.Card
	if err := query.Order("lower(name) asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetCardByID(ctx context.Context, ownerID, cardID string) (*cardsdomain.Card, error) {
	var card cardsdomain.Card
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, cardID).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cardsdomain.ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *PostgresRepository) CreateCard(ctx context.Context, card *cardsdomain.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *PostgresRepository) UpdateCard(ctx context.Context, card *cardsdomain.Card) error {
	return r.db.WithContext(ctx).
		Model(&cardsdomain.Card{}).
		Where("id = ? AND owner_id = ?", card.ID, card.OwnerID).
		Updates(map[string]interface{}{
			"name":              card.Name,
			"brand":             card.Brand,
			"best_purchase_day": card.BestPurchaseDay,
			"active":            card.Active,
			"updated_at":        card.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteCard(ctx context.Context, ownerID, cardID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&cardsdomain.Card{}, "owner_id = ? AND id = ?", ownerID, cardID)
	return result.RowsAffected > 0, result.Error
}
