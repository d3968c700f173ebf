package reports

import (
	"context"

	"finance-tracker-go/internal/domain/entries"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo    Repository
	entries EntryLister
}

func NewService(repo Repository, entries EntryLister) *Service {
	return &Service{repo: repo, entries: entries}
}

// Totals sums the month's rows of one kind by status. Missing data yields zeros.
func (s *Service) Totals(ctx context.Context, kind entries.Kind, ownerID string, period Period) (Totals, error) {
	if err := validate(kind, period); err != nil {
		return Totals{}, err
	}

	sums, err := s.repo.SumByStatus(ctx, kind, ownerID, period)
	if err != nil {
		return Totals{}, err
	}

	totals := Totals{Settled: decimal.Zero, Open: decimal.Zero, Total: decimal.Zero}
	for _, sum := range sums {
		switch entries.Status(sum.Status) {
		case kind.SettledStatus():
			totals.Settled = totals.Settled.Add(sum.Total)
		case entries.StatusOpen:
			totals.Open = totals.Open.Add(sum.Total)
		}
		totals.Total = totals.Total.Add(sum.Total)
	}
	return totals, nil
}

// ByCategory groups the month's rows by category ordered by summed amount, optionally for one status.
func (s *Service) ByCategory(ctx context.Context, kind entries.Kind, ownerID string, period Period, status entries.Status) ([]ByCategoryRow, error) {
	if err := validate(kind, period); err != nil {
		return nil, err
	}
	if status != "" && !kind.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	rows, err := s.repo.SumByCategory(ctx, kind, ownerID, period, status)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return []ByCategoryRow{}, nil
	}
	return rows, nil
}

func (s *Service) Overview(ctx context.Context, ownerID string, period Period) (Overview, error) {
	expenses, err := s.Totals(ctx, entries.KindExpense, ownerID, period)
	if err != nil {
		return Overview{}, err
	}
	incomes, err := s.Totals(ctx, entries.KindIncome, ownerID, period)
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		Month:    period.Month,
		Year:     period.Year,
		Expenses: expenses,
		Incomes:  incomes,
		Balance:  incomes.Total.Sub(expenses.Total),
	}, nil
}

func validate(kind entries.Kind, period Period) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	if period.Month < 1 || period.Month > 12 || period.Year < 1000 || period.Year > 9999 {
		return ErrInvalidPeriod
	}
	return nil
}
