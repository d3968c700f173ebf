package entries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	entriesdomain "finance-tracker-go/internal/domain/entries"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresRepository serves both entry kinds; the kind picks the table.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(entriesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListEntries(ctx context.Context, kind entriesdomain.Kind, ownerID string, filter entriesdomain.ListFilter) ([]entriesdomain.Entry, error) {
	table := kind.Table()
	query := r.selectEntries(ctx, kind).Where(table+".owner_id = ?", ownerID)

	// Month and year match the textual components of the stored date.
	if filter.Month > 0 {
		query = query.Where(fmt.Sprintf("to_char(%s.effective_date, 'MM') = ?", table), fmt.Sprintf("%02d", filter.Month))
	}
	if filter.Year > 0 {
		query = query.Where(fmt.Sprintf("to_char(%s.effective_date, 'YYYY') = ?", table), fmt.Sprintf("%04d", filter.Year))
	}
	if filter.Status != "" {
		query = query.Where(table+".status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		query = query.Where(table+".category_id = ?", filter.CategoryID)
	}

	var items []entriesdomain.Entry
	if err := query.
		Order(table + ".effective_date asc").
		Order(table + ".installment_index asc").
		Order(table + ".created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return withKind(items, kind), nil
}

func (r *PostgresRepository) GetEntryByID(ctx context.Context, kind entriesdomain.Kind, ownerID, entryID string) (*entriesdomain.Entry, error) {
	table := kind.Table()

	var entry entriesdomain.Entry
	if err := r.selectEntries(ctx, kind).
		Where(table+".owner_id = ? AND "+table+".id = ?", ownerID, entryID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entriesdomain.ErrEntryNotFound
		}
		return nil, err
	}
	entry.Kind = kind
	return &entry, nil
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, kind entriesdomain.Kind, entry *entriesdomain.Entry) error {
	return r.db.WithContext(ctx).Table(kind.Table()).Create(entry).Error
}

func (r *PostgresRepository) UpdateEntry(ctx context.Context, kind entriesdomain.Kind, entry *entriesdomain.Entry) error {
	return r.db.WithContext(ctx).
		Table(kind.Table()).
		Where("id = ? AND owner_id = ?", entry.ID, entry.OwnerID).
		Updates(map[string]interface{}{
			"description":    entry.Description,
			"amount":         entry.Amount,
			"status":         entry.Status,
			"category_id":    entry.CategoryID,
			"subcategory":    entry.Subcategory,
			"effective_date": entriesdomain.FormatDate(entry.EffectiveDate),
			"card_id":        entry.CardID,
			"updated_at":     entry.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteEntry(ctx context.Context, kind entriesdomain.Kind, ownerID, entryID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Table(kind.Table()).
		Where("owner_id = ? AND id = ?", ownerID, entryID).
		Delete(&entriesdomain.Entry{})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListGroup(ctx context.Context, kind entriesdomain.Kind, ownerID string, selector entriesdomain.GroupSelector) ([]entriesdomain.Entry, error) {
	table := kind.Table()
	query := r.selectEntries(ctx, kind).Where(table+".owner_id = ?", ownerID)
	query = applySelector(query, table+".", selector)

	var items []entriesdomain.Entry
	if err := query.
		Order(table + ".installment_index asc").
		Order(table + ".effective_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return withKind(items, kind), nil
}

func (r *PostgresRepository) UpdateGroup(ctx context.Context, kind entriesdomain.Kind, ownerID string, selector entriesdomain.GroupSelector, status entriesdomain.Status, fields map[string]any) (int64, error) {
	query := r.db.WithContext(ctx).Table(kind.Table()).Where("owner_id = ?", ownerID)
	query = applySelector(query, "", selector)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) selectEntries(ctx context.Context, kind entriesdomain.Kind) *gorm.DB {
	table := kind.Table()
	return r.db.WithContext(ctx).
		Table(table).
		Select(table + ".*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = " + table + ".category_id")
}

// applySelector matches by group id when present, otherwise by description prefix and recurrence mode.
func applySelector(query *gorm.DB, prefix string, selector entriesdomain.GroupSelector) *gorm.DB {
	if selector.GroupID != "" {
		return query.Where(prefix+"group_id = ?", selector.GroupID)
	}
	return query.
		Where(prefix+"description LIKE ?", likeEscaper.Replace(selector.BaseDescription)+"%").
		Where(prefix+"recurrence_mode = ?", selector.Mode)
}

func withKind(items []entriesdomain.Entry, kind entriesdomain.Kind) []entriesdomain.Entry {
	for i := range items {
		items[i].Kind = kind
	}
	return items
}
