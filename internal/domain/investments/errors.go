package investments

import "errors"

var (
	ErrAssetNotFound          = errors.New("asset not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidAssetName       = errors.New("asset name is required")
	ErrInvalidAssetType       = errors.New("asset type must be stock, reit, fund, fixed_income or etf")
	ErrInvalidTicker          = errors.New("ticker must have at most 12 letters, digits, dots or dashes")
	ErrInvalidTransactionType = errors.New("transaction type must be buy, sell or dividend")
	ErrInvalidQuantity        = errors.New("quantity must be greater than zero with at most 6 decimal places")
	ErrInvalidUnitPrice       = errors.New("unit price must be greater than zero with at most 6 decimal places")
	ErrInvalidDate            = errors.New("date must be YYYY-MM-DD")
)
