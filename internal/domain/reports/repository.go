package reports

import (
	"context"

	"finance-tracker-go/internal/domain/entries"
)

type Repository interface {
	SumByStatus(ctx context.Context, kind entries.Kind, ownerID string, period Period) ([]StatusSum, error)
	SumByCategory(ctx context.Context, kind entries.Kind, ownerID string, period Period, status entries.Status) ([]ByCategoryRow, error)
}

// EntryLister reads the rows of a month for the export workbook.
type EntryLister interface {
	List(ctx context.Context, kind entries.Kind, ownerID string, filter entries.ListFilter) ([]entries.Entry, error)
}
