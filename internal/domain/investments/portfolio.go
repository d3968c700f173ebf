package investments

import "github.com/shopspring/decimal"

const averageCostPlaces = 6

// Summarize derives the position of one asset from its transactions.
// average_cost is zero when there are no buys.
func Summarize(asset Asset, transactions []Transaction) Position {
	var (
		boughtQuantity = decimal.Zero
		soldQuantity   = decimal.Zero
		boughtValue    = decimal.Zero
		soldValue      = decimal.Zero
		dividends      = decimal.Zero
	)

	for _, tx := range transactions {
		if tx.AssetID != asset.ID {
			continue
		}
		switch tx.Type {
		case TransactionBuy:
			boughtQuantity = boughtQuantity.Add(tx.Quantity)
			boughtValue = boughtValue.Add(tx.TotalValue)
		case TransactionSell:
			soldQuantity = soldQuantity.Add(tx.Quantity)
			soldValue = soldValue.Add(tx.TotalValue)
		case TransactionDividend:
			dividends = dividends.Add(tx.TotalValue)
		}
	}

	averageCost := decimal.Zero
	if boughtQuantity.IsPositive() {
		averageCost = boughtValue.DivRound(boughtQuantity, averageCostPlaces)
	}

	position := Position{
		AssetID:           asset.ID,
		Name:              asset.Name,
		Ticker:            asset.Ticker,
		Type:              asset.Type,
		QuantityCurrent:   boughtQuantity.Sub(soldQuantity),
		AverageCost:       averageCost,
		NetInvested:       boughtValue.Sub(soldValue),
		DividendsReceived: dividends,
		CurrentPrice:      asset.CurrentPrice,
	}
	if asset.CurrentPrice.Valid {
		position.MarketValue = decimal.NewNullDecimal(position.QuantityCurrent.Mul(asset.CurrentPrice.Decimal).Round(2))
	}
	if asset.LastQuoteDate != nil {
		date := asset.LastQuoteDate.Format(dateLayout)
		position.LastQuoteDate = &date
	}
	return position
}
