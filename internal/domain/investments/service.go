package investments

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout       = "2006-01-02"
	quantityPlaces   = 6
	maxAssetNameSize = 100
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,12}$`)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListAssets(ctx context.Context, ownerID string, activeOnly bool) ([]Asset, error) {
	items, err := s.repo.ListAssets(ctx, ownerID, activeOnly)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []Asset{}, nil
	}
	return items, nil
}

func (s *Service) GetAsset(ctx context.Context, ownerID, assetID string) (*Asset, error) {
	if uuid.Validate(assetID) != nil {
		return nil, ErrAssetNotFound
	}
	return s.repo.GetAssetByID(ctx, ownerID, assetID)
}

func (s *Service) CreateAsset(ctx context.Context, input AssetInput) (*Asset, error) {
	name, ticker, err := validateAsset(input)
	if err != nil {
		return nil, err
	}

	asset := Asset{
		ID:          uuid.NewString(),
		OwnerID:     input.OwnerID,
		Name:        name,
		Ticker:      ticker,
		Type:        input.Type,
		Sector:      strings.TrimSpace(input.Sector),
		Description: strings.TrimSpace(input.Description),
		Active:      true,
	}
	if err := s.repo.CreateAsset(ctx, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *Service) UpdateAsset(ctx context.Context, input AssetInput) (*Asset, error) {
	name, ticker, err := validateAsset(input)
	if err != nil {
		return nil, err
	}

	asset, err := s.GetAsset(ctx, input.OwnerID, input.AssetID)
	if err != nil {
		return nil, err
	}

	asset.Name = name
	asset.Ticker = ticker
	asset.Type = input.Type
	asset.Sector = strings.TrimSpace(input.Sector)
	asset.Description = strings.TrimSpace(input.Description)
	asset.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Service) SetAssetActive(ctx context.Context, ownerID, assetID string, active bool) (*Asset, error) {
	asset, err := s.GetAsset(ctx, ownerID, assetID)
	if err != nil {
		return nil, err
	}

	asset.Active = active
	asset.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Service) DeleteAsset(ctx context.Context, ownerID, assetID string) error {
	if uuid.Validate(assetID) != nil {
		return ErrAssetNotFound
	}
	deleted, err := s.repo.DeleteAsset(ctx, ownerID, assetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAssetNotFound
	}
	return nil
}

func (s *Service) ListTransactions(ctx context.Context, ownerID, assetID string) ([]Transaction, error) {
	if _, err := s.GetAsset(ctx, ownerID, assetID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListTransactions(ctx, ownerID, assetID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []Transaction{}, nil
	}
	return items, nil
}

func (s *Service) GetTransaction(ctx context.Context, ownerID, transactionID string) (*Transaction, error) {
	if uuid.Validate(transactionID) != nil {
		return nil, ErrTransactionNotFound
	}
	return s.repo.GetTransactionByID(ctx, ownerID, transactionID)
}

// CreateTransaction records a movement on an owned asset. total_value is always quantity x unit_price.
func (s *Service) CreateTransaction(ctx context.Context, input TransactionInput) (*Transaction, error) {
	date, err := validateTransaction(input)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetAsset(ctx, input.OwnerID, input.AssetID); err != nil {
		return nil, err
	}

	tx := Transaction{
		ID:      uuid.NewString(),
		OwnerID: input.OwnerID,
		AssetID: input.AssetID,
	}
	applyTransaction(&tx, input, date)

	if err := s.repo.CreateTransaction(ctx, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, input TransactionInput) (*Transaction, error) {
	date, err := validateTransaction(input)
	if err != nil {
		return nil, err
	}

	tx, err := s.GetTransaction(ctx, input.OwnerID, input.TransactionID)
	if err != nil {
		return nil, err
	}

	applyTransaction(tx, input, date)
	tx.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if uuid.Validate(transactionID) != nil {
		return ErrTransactionNotFound
	}
	deleted, err := s.repo.DeleteTransaction(ctx, ownerID, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

// Portfolio summarizes every active asset of the owner, including those without transactions.
func (s *Service) Portfolio(ctx context.Context, ownerID string) ([]Position, error) {
	assets, err := s.repo.ListAssets(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}
	transactions, err := s.repo.ListTransactions(ctx, ownerID, "")
	if err != nil {
		return nil, err
	}

	byAsset := make(map[string][]Transaction, len(assets))
	for _, tx := range transactions {
		byAsset[tx.AssetID] = append(byAsset[tx.AssetID], tx)
	}

	positions := make([]Position, 0, len(assets))
	for _, asset := range assets {
		positions = append(positions, Summarize(asset, byAsset[asset.ID]))
	}
	return positions, nil
}

func applyTransaction(tx *Transaction, input TransactionInput, date time.Time) {
	tx.Date = date
	tx.Type = input.Type
	tx.Quantity = input.Quantity
	tx.UnitPrice = input.UnitPrice
	tx.TotalValue = input.Quantity.Mul(input.UnitPrice).Round(quantityPlaces)
}

func validateAsset(input AssetInput) (string, *string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len([]rune(name)) > maxAssetNameSize {
		return "", nil, ErrInvalidAssetName
	}
	if !input.Type.Valid() {
		return "", nil, ErrInvalidAssetType
	}

	ticker := strings.ToUpper(strings.TrimSpace(input.Ticker))
	if ticker == "" {
		return name, nil, nil
	}
	if !tickerPattern.MatchString(ticker) {
		return "", nil, ErrInvalidTicker
	}
	return name, &ticker, nil
}

func validateTransaction(input TransactionInput) (time.Time, error) {
	if !input.Type.Valid() {
		return time.Time{}, ErrInvalidTransactionType
	}
	if !input.Quantity.IsPositive() || !input.Quantity.Equal(input.Quantity.Truncate(quantityPlaces)) {
		return time.Time{}, ErrInvalidQuantity
	}
	if !input.UnitPrice.IsPositive() || !input.UnitPrice.Equal(input.UnitPrice.Truncate(quantityPlaces)) {
		return time.Time{}, ErrInvalidUnitPrice
	}

	value := strings.TrimSpace(input.Date)
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// NormalizeTicker upper-cases a ticker the way assets store it.
func NormalizeTicker(ticker string) (string, bool) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	return ticker, tickerPattern.MatchString(ticker)
}
