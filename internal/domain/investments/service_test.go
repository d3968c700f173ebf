package investments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ownerID    = "11111111-1111-1111-1111-111111111111"
	otherOwner = "22222222-2222-2222-2222-222222222222"
)

type fakeInvestmentsRepo struct {
	assets       map[string]*Asset
	transactions map[string]*Transaction
}

func newFakeInvestmentsRepo() *fakeInvestmentsRepo {
	return &fakeInvestmentsRepo{
		assets:       make(map[string]*Asset),
		transactions: make(map[string]*Transaction),
	}
}

func (r *fakeInvestmentsRepo) ListAssets(ctx context.Context, ownerID string, activeOnly bool) ([]Asset, error) {
	var result []Asset
	for _, asset := range r.assets {
		if asset.OwnerID == ownerID && (!activeOnly || asset.Active) {
			result = append(result, *asset)
		}
	}
	return result, nil
}

func (r *fakeInvestmentsRepo) GetAssetByID(ctx context.Context, ownerID, assetID string) (*Asset, error) {
	asset, ok := r.assets[assetID]
	if !ok || asset.OwnerID != ownerID {
		return nil, ErrAssetNotFound
	}
	copied := *asset
	return &copied, nil
}

func (r *fakeInvestmentsRepo) CreateAsset(ctx context.Context, asset *Asset) error {
	copied := *asset
	r.assets[asset.ID] = &copied
	return nil
}

func (r *fakeInvestmentsRepo) UpdateAsset(ctx context.Context, asset *Asset) error {
	stored := r.assets[asset.ID]
	copied := *asset
	copied.CurrentPrice = stored.CurrentPrice
	copied.LastQuoteDate = stored.LastQuoteDate
	copied.PercentChange = stored.PercentChange
	copied.AbsoluteChange = stored.AbsoluteChange
	r.assets[asset.ID] = &copied
	return nil
}

func (r *fakeInvestmentsRepo) DeleteAsset(ctx context.Context, ownerID, assetID string) (bool, error) {
	asset, ok := r.assets[assetID]
	if !ok || asset.OwnerID != ownerID {
		return false, nil
	}
	delete(r.assets, assetID)
	return true, nil
}

func (r *fakeInvestmentsRepo) ListTransactions(ctx context.Context, ownerID, assetID string) ([]Transaction, error) {
	var result []Transaction
	for _, tx := range r.transactions {
		if tx.OwnerID != ownerID || (assetID != "" && tx.AssetID != assetID) {
			continue
		}
		result = append(result, *tx)
	}
	return result, nil
}

func (r *fakeInvestmentsRepo) GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*Transaction, error) {
	tx, ok := r.transactions[transactionID]
	if !ok || tx.OwnerID != ownerID {
		return nil, ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *fakeInvestmentsRepo) CreateTransaction(ctx context.Context, transaction *Transaction) error {
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *fakeInvestmentsRepo) UpdateTransaction(ctx context.Context, transaction *Transaction) error {
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *fakeInvestmentsRepo) DeleteTransaction(ctx context.Context, ownerID, transactionID string) (bool, error) {
	tx, ok := r.transactions[transactionID]
	if !ok || tx.OwnerID != ownerID {
		return false, nil
	}
	delete(r.transactions, transactionID)
	return true, nil
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestCreateAssetNormalizesTicker(t *testing.T) {
	svc := NewService(newFakeInvestmentsRepo())

	asset, err := svc.CreateAsset(context.Background(), AssetInput{OwnerID: ownerID, Name: "Petrobras", Ticker: " petr4 ", Type: AssetStock})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if asset.Ticker == nil || *asset.Ticker != "PETR4" {
		t.Fatalf("expected PETR4, got %v", asset.Ticker)
	}

	if _, err := svc.CreateAsset(context.Background(), AssetInput{OwnerID: ownerID, Name: "X", Type: "crypto"}); !errors.Is(err, ErrInvalidAssetType) {
		t.Fatalf("expected ErrInvalidAssetType, got %v", err)
	}

	fund, err := svc.CreateAsset(context.Background(), AssetInput{OwnerID: ownerID, Name: "CDB", Type: AssetFixedIncome})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fund.Ticker != nil {
		t.Fatalf("expected no ticker, got %v", *fund.Ticker)
	}
}

func TestTransactionTotalValueFollowsQuantityAndPrice(t *testing.T) {
	repo := newFakeInvestmentsRepo()
	svc := NewService(repo)
	ctx := context.Background()

	asset, err := svc.CreateAsset(ctx, AssetInput{OwnerID: ownerID, Name: "Itau", Ticker: "ITUB4", Type: AssetStock})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tx, err := svc.CreateTransaction(ctx, TransactionInput{
		OwnerID:   ownerID,
		AssetID:   asset.ID,
		Date:      "2024-02-10",
		Type:      TransactionBuy,
		Quantity:  d("10.5"),
		UnitPrice: d("32.10"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !tx.TotalValue.Equal(d("337.05")) {
		t.Fatalf("expected 337.05, got %s", tx.TotalValue)
	}

	updated, err := svc.UpdateTransaction(ctx, TransactionInput{
		OwnerID:       ownerID,
		TransactionID: tx.ID,
		Date:          "2024-02-11",
		Type:          TransactionBuy,
		Quantity:      d("0.000001"),
		UnitPrice:     d("1000000"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !updated.TotalValue.Equal(d("1")) {
		t.Fatalf("expected total 1 after update, got %s", updated.TotalValue)
	}
	if !repo.transactions[tx.ID].TotalValue.Equal(d("1")) {
		t.Fatalf("expected stored total updated")
	}

	_, err = svc.UpdateTransaction(ctx, TransactionInput{
		OwnerID:       ownerID,
		TransactionID: tx.ID,
		Date:          "2024-02-12",
		Type:          TransactionBuy,
		Quantity:      d("1000"),
		UnitPrice:     d("1.1234567"),
	})
	if !errors.Is(err, ErrInvalidUnitPrice) {
		t.Fatalf("expected ErrInvalidUnitPrice for 7 decimal places, got %v", err)
	}

	precise, err := svc.UpdateTransaction(ctx, TransactionInput{
		OwnerID:       ownerID,
		TransactionID: tx.ID,
		Date:          "2024-02-12",
		Type:          TransactionBuy,
		Quantity:      d("1000"),
		UnitPrice:     d("1.123457"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !precise.TotalValue.Equal(precise.Quantity.Mul(precise.UnitPrice)) {
		t.Fatalf("expected total %s, got %s", precise.Quantity.Mul(precise.UnitPrice), precise.TotalValue)
	}
}

func TestTransactionValidation(t *testing.T) {
	repo := newFakeInvestmentsRepo()
	svc := NewService(repo)
	ctx := context.Background()

	asset, err := svc.CreateAsset(ctx, AssetInput{OwnerID: ownerID, Name: "Itau", Ticker: "ITUB4", Type: AssetStock})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	base := TransactionInput{OwnerID: ownerID, AssetID: asset.ID, Date: "2024-02-10", Type: TransactionBuy, Quantity: d("1"), UnitPrice: d("10")}

	input := base
	input.Quantity = d("0.0000001")
	if _, err := svc.CreateTransaction(ctx, input); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for 7 decimals, got %v", err)
	}

	input = base
	input.UnitPrice = decimal.Zero
	if _, err := svc.CreateTransaction(ctx, input); !errors.Is(err, ErrInvalidUnitPrice) {
		t.Fatalf("expected ErrInvalidUnitPrice, got %v", err)
	}

	input = base
	input.Type = "split"
	if _, err := svc.CreateTransaction(ctx, input); !errors.Is(err, ErrInvalidTransactionType) {
		t.Fatalf("expected ErrInvalidTransactionType, got %v", err)
	}

	input = base
	input.OwnerID = otherOwner
	if _, err := svc.CreateTransaction(ctx, input); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound for foreign asset, got %v", err)
	}
}

func TestSummarizeWithoutBuysHasZeroAverageCost(t *testing.T) {
	asset := Asset{ID: "a1", Name: "Fund"}
	position := Summarize(asset, []Transaction{
		{AssetID: "a1", Type: TransactionDividend, Quantity: d("1"), UnitPrice: d("12.5"), TotalValue: d("12.5")},
	})

	if !position.AverageCost.IsZero() {
		t.Fatalf("expected zero average cost, got %s", position.AverageCost)
	}
	if !position.DividendsReceived.Equal(d("12.5")) {
		t.Fatalf("expected dividends 12.5, got %s", position.DividendsReceived)
	}
	if position.MarketValue.Valid {
		t.Fatalf("expected no market value without a quote")
	}
}

func TestPortfolioAggregatesActiveAssets(t *testing.T) {
	repo := newFakeInvestmentsRepo()
	quoteDate := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	repo.assets["a1"] = &Asset{ID: "a1", OwnerID: ownerID, Name: "Petrobras", Type: AssetStock, Active: true, CurrentPrice: decimal.NewNullDecimal(d("40")), LastQuoteDate: &quoteDate}
	repo.assets["a2"] = &Asset{ID: "a2", OwnerID: ownerID, Name: "Empty", Type: AssetETF, Active: true}
	repo.assets["a3"] = &Asset{ID: "a3", OwnerID: ownerID, Name: "Old", Type: AssetStock, Active: false}
	repo.transactions["t1"] = &Transaction{ID: "t1", OwnerID: ownerID, AssetID: "a1", Type: TransactionBuy, Quantity: d("10"), UnitPrice: d("30"), TotalValue: d("300")}
	repo.transactions["t2"] = &Transaction{ID: "t2", OwnerID: ownerID, AssetID: "a1", Type: TransactionBuy, Quantity: d("10"), UnitPrice: d("36"), TotalValue: d("360")}
	repo.transactions["t3"] = &Transaction{ID: "t3", OwnerID: ownerID, AssetID: "a1", Type: TransactionSell, Quantity: d("5"), UnitPrice: d("38"), TotalValue: d("190")}
	repo.transactions["t4"] = &Transaction{ID: "t4", OwnerID: ownerID, AssetID: "a3", Type: TransactionBuy, Quantity: d("1"), UnitPrice: d("1"), TotalValue: d("1")}
	svc := NewService(repo)

	positions, err := svc.Portfolio(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected 2 active positions, got %d", len(positions))
	}

	byID := make(map[string]Position)
	for _, position := range positions {
		byID[position.AssetID] = position
	}

	p := byID["a1"]
	if !p.QuantityCurrent.Equal(d("15")) {
		t.Fatalf("expected quantity 15, got %s", p.QuantityCurrent)
	}
	if !p.AverageCost.Equal(d("33")) {
		t.Fatalf("expected average cost 33, got %s", p.AverageCost)
	}
	if !p.NetInvested.Equal(d("470")) {
		t.Fatalf("expected net invested 470, got %s", p.NetInvested)
	}
	if !p.MarketValue.Valid || !p.MarketValue.Decimal.Equal(d("600")) {
		t.Fatalf("expected market value 600, got %+v", p.MarketValue)
	}
	if p.LastQuoteDate == nil || *p.LastQuoteDate != "2024-05-17" {
		t.Fatalf("expected last quote date, got %v", p.LastQuoteDate)
	}

	empty := byID["a2"]
	if !empty.QuantityCurrent.IsZero() || !empty.AverageCost.IsZero() || !empty.NetInvested.IsZero() {
		t.Fatalf("expected zeros for asset without transactions, got %+v", empty)
	}
}

func TestUpdateAssetKeepsQuoteSnapshot(t *testing.T) {
	repo := newFakeInvestmentsRepo()
	svc := NewService(repo)
	ctx := context.Background()

	asset, err := svc.CreateAsset(ctx, AssetInput{OwnerID: ownerID, Name: "Vale", Ticker: "VALE3", Type: AssetStock})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	repo.assets[asset.ID].CurrentPrice = decimal.NewNullDecimal(d("61.2"))

	updated, err := svc.UpdateAsset(ctx, AssetInput{OwnerID: ownerID, AssetID: asset.ID, Name: "Vale SA", Ticker: "VALE3", Type: AssetStock, Sector: "Mining"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "Vale SA" {
		t.Fatalf("expected renamed asset, got %q", updated.Name)
	}
	if !repo.assets[asset.ID].CurrentPrice.Valid {
		t.Fatalf("expected stored quote kept")
	}

	if err := svc.DeleteAsset(ctx, otherOwner, asset.ID); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound for other owner, got %v", err)
	}
}
