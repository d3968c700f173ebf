package entries

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListEntries(ctx context.Context, kind Kind, ownerID string, filter ListFilter) ([]Entry, error)
	GetEntryByID(ctx context.Context, kind Kind, ownerID, entryID string) (*Entry, error)
	CreateEntry(ctx context.Context, kind Kind, entry *Entry) error
	UpdateEntry(ctx context.Context, kind Kind, entry *Entry) error
	DeleteEntry(ctx context.Context, kind Kind, ownerID, entryID string) (bool, error)
	ListGroup(ctx context.Context, kind Kind, ownerID string, selector GroupSelector) ([]Entry, error)
	// UpdateGroup applies fields (column name to value) to every row the selector matches
	// and returns the affected count. A non-empty status restricts the update to rows in it.
	UpdateGroup(ctx context.Context, kind Kind, ownerID string, selector GroupSelector, status Status, fields map[string]any) (int64, error)
}
