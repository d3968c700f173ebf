package quotes

import (
	"context"
	"time"

	"finance-tracker-go/internal/domain/investments"
	"finance-tracker-go/internal/quoteprovider"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListTickers(ctx context.Context, types []investments.AssetType) ([]string, error) {
	var tickers []string
	if err := r.db.WithContext(ctx).
		Model(&investments.Asset{}).
		Distinct("ticker").
		Where("active AND ticker IS NOT NULL AND ticker <> '' AND type IN ?", types).
		Order("ticker asc").
		Pluck("ticker", &tickers).Error; err != nil {
		return nil, err
	}
	return tickers, nil
}

// ApplyQuote stores the snapshot on every active asset carrying the ticker, regardless of owner.
func (r *PostgresRepository) ApplyQuote(ctx context.Context, ticker string, quote quoteprovider.Quote, quoteDate, updatedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&investments.Asset{}).
		Where("active AND ticker = ?", ticker).
		Updates(map[string]interface{}{
			"current_price":   quote.Price,
			"percent_change":  quote.PercentChange,
			"absolute_change": quote.AbsoluteChange,
			"last_quote_date": quoteDate.Format("2006-01-02"),
			"updated_at":      updatedAt,
		})
	return result.RowsAffected, result.Error
}
