package investments

import "context"

type Repository interface {
	ListAssets(ctx context.Context, ownerID string, activeOnly bool) ([]Asset, error)
	GetAssetByID(ctx context.Context, ownerID, assetID string) (*Asset, error)
	CreateAsset(ctx context.Context, asset *Asset) error
	// UpdateAsset writes the user-editable columns only; the quote snapshot is left as stored.
	UpdateAsset(ctx context.Context, asset *Asset) error
	DeleteAsset(ctx context.Context, ownerID, assetID string) (bool, error)

	// ListTransactions returns the owner's transactions, limited to one asset when assetID is set.
	ListTransactions(ctx context.Context, ownerID, assetID string) ([]Transaction, error)
	GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*Transaction, error)
	CreateTransaction(ctx context.Context, transaction *Transaction) error
	UpdateTransaction(ctx context.Context, transaction *Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) (bool, error)
}
