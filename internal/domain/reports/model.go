package reports

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Period is a calendar month. Matching against stored dates is done on the zero-padded
// textual month and the four-digit year.
type Period struct {
	Month int
	Year  int
}

func (p Period) MonthText() string {
	return fmt.Sprintf("%02d", p.Month)
}

func (p Period) YearText() string {
	return fmt.Sprintf("%04d", p.Year)
}

func (p Period) String() string {
	return p.YearText() + "-" + p.MonthText()
}

type Totals struct {
	Settled decimal.Decimal `json:"settled"`
	Open    decimal.Decimal `json:"open"`
	Total   decimal.Decimal `json:"total"`
}

type StatusSum struct {
	Status string          `gorm:"column:status"`
	Total  decimal.Decimal `gorm:"column:total"`
}

type ByCategoryRow struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

type Overview struct {
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Expenses Totals          `json:"expenses"`
	Incomes  Totals          `json:"incomes"`
	Balance  decimal.Decimal `json:"balance"`
}
