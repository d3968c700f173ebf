package investments

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetType string

const (
	AssetStock       AssetType = "stock"
	AssetREIT        AssetType = "reit"
	AssetFund        AssetType = "fund"
	AssetFixedIncome AssetType = "fixed_income"
	AssetETF         AssetType = "etf"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetStock, AssetREIT, AssetFund, AssetFixedIncome, AssetETF:
		return true
	}
	return false
}

// Quoted reports whether the quote refresh job tracks assets of this type.
func (t AssetType) Quoted() bool {
	return t == AssetStock || t == AssetREIT || t == AssetETF
}

var QuotedTypes = []AssetType{AssetStock, AssetREIT, AssetETF}

type Asset struct {
	ID             string              `gorm:"type:uuid;primaryKey"`
	OwnerID        string              `gorm:"type:uuid;index;not null"`
	Name           string              `gorm:"not null"`
	Ticker         *string             `gorm:"type:text"`
	Type           AssetType           `gorm:"type:text;not null"`
	Sector         string              `gorm:"not null"`
	Description    string              `gorm:"not null"`
	Active         bool                `gorm:"not null;default:true"`
	CurrentPrice   decimal.NullDecimal `gorm:"type:numeric(18,6)"`
	LastQuoteDate  *time.Time          `gorm:"type:date"`
	PercentChange  decimal.NullDecimal `gorm:"type:numeric(12,6)"`
	AbsoluteChange decimal.NullDecimal `gorm:"type:numeric(18,6)"`
	CreatedAt      time.Time           `gorm:"autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime"`
}

func (Asset) TableName() string {
	return "investment_assets"
}

type TransactionType string

const (
	TransactionBuy      TransactionType = "buy"
	TransactionSell     TransactionType = "sell"
	TransactionDividend TransactionType = "dividend"
)

func (t TransactionType) Valid() bool {
	return t == TransactionBuy || t == TransactionSell || t == TransactionDividend
}

type Transaction struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	OwnerID    string          `gorm:"type:uuid;index;not null"`
	AssetID    string          `gorm:"type:uuid;index;not null"`
	Date       time.Time       `gorm:"type:date;not null"`
	Type       TransactionType `gorm:"type:text;not null"`
	Quantity   decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	TotalValue decimal.Decimal `gorm:"type:numeric(24,6);not null"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "investment_transactions"
}

type AssetInput struct {
	OwnerID     string
	AssetID     string
	Name        string
	Ticker      string
	Type        AssetType
	Sector      string
	Description string
}

type TransactionInput struct {
	OwnerID       string
	AssetID       string
	TransactionID string
	Date          string
	Type          TransactionType
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
}

// Position is the per-asset summary derived from its transactions on read.
type Position struct {
	AssetID           string              `json:"asset_id"`
	Name              string              `json:"name"`
	Ticker            *string             `json:"ticker"`
	Type              AssetType           `json:"type"`
	QuantityCurrent   decimal.Decimal     `json:"quantity_current"`
	AverageCost       decimal.Decimal     `json:"average_cost"`
	NetInvested       decimal.Decimal     `json:"net_invested"`
	DividendsReceived decimal.Decimal     `json:"dividends_received"`
	CurrentPrice      decimal.NullDecimal `json:"current_price"`
	MarketValue       decimal.NullDecimal `json:"market_value"`
	LastQuoteDate     *string             `json:"last_quote_date"`
}
