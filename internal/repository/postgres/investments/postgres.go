package investments

import (
	"context"
	"errors"

	investmentsdomain "finance-tracker-go/internal/domain/investments"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListAssets(ctx context.Context, ownerID string, activeOnly bool) ([]investmentsdomain.Asset, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if activeOnly {
		query = query.Where("active")
	}

	var items []investmentsdomain.Asset
	if err := query.Order("lower(name) asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetAssetByID(ctx context.Context, ownerID, assetID string) (*investmentsdomain.Asset, error) {
	var asset investmentsdomain.Asset
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, assetID).
		First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investmentsdomain.ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *PostgresRepository) CreateAsset(ctx context.Context, asset *investmentsdomain.Asset) error {
	return r.db.WithContext(ctx).
		Omit("current_price", "last_quote_date", "percent_change", "absolute_change").
		Create(asset).Error
}

func (r *PostgresRepository) UpdateAsset(ctx context.Context, asset *investmentsdomain.Asset) error {
	return r.db.WithContext(ctx).
		Model(&investmentsdomain.Asset{}).
		Where("id = ? AND owner_id = ?", asset.ID, asset.OwnerID).
		Updates(map[string]interface{}{
			"name":        asset.Name,
			"ticker":      asset.Ticker,
			"type":        asset.Type,
			"sector":      asset.Sector,
			"description": asset.Description,
			"active":      asset.Active,
			"updated_at":  asset.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteAsset(ctx context.Context, ownerID, assetID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&investmentsdomain.Asset{}, "owner_id = ? AND id = ?", ownerID, assetID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, ownerID, assetID string) ([]investmentsdomain.Transaction, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if assetID != "" {
		query = query.Where("asset_id = ?", assetID)
	}

	var items []investmentsdomain.Transaction
	if err := query.Order("date asc, created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*investmentsdomain.Transaction, error) {
	var transaction investmentsdomain.Transaction
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, transactionID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investmentsdomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, transaction *investmentsdomain.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, transaction *investmentsdomain.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&investmentsdomain.Transaction{}).
		Where("id = ? AND owner_id = ?", transaction.ID, transaction.OwnerID).
		Updates(map[string]interface{}{
			"date":        transaction.Date.Format("2006-01-02"),
			"type":        transaction.Type,
			"quantity":    transaction.Quantity,
			"unit_price":  transaction.UnitPrice,
			"total_value": transaction.TotalValue,
			"updated_at":  transaction.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&investmentsdomain.Transaction{}, "owner_id = ? AND id = ?", ownerID, transactionID)
	return result.RowsAffected > 0, result.Error
}
