package quotes

import (
	"context"
	"time"

	"finance-tracker-go/internal/domain/investments"
	"finance-tracker-go/internal/quoteprovider"
)

type Repository interface {
	// ListTickers returns the distinct non-empty tickers of active assets of the given types across all owners.
	ListTickers(ctx context.Context, types []investments.AssetType) ([]string, error)
	// ApplyQuote writes the quote snapshot onto every active asset with the ticker and returns the matched count.
	ApplyQuote(ctx context.Context, ticker string, quote quoteprovider.Quote, quoteDate, updatedAt time.Time) (int64, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, ticker string) (quoteprovider.Quote, error)
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) error {
	return nil
}
