package reports

import (
	"context"
	"strings"

	"finance-tracker-go/internal/domain/entries"
	reportsdomain "finance-tracker-go/internal/domain/reports"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SumByStatus(ctx context.Context, kind entries.Kind, ownerID string, period reportsdomain.Period) ([]reportsdomain.StatusSum, error) {
	where, args := buildPeriodWhere(ownerID, period, "")
	query := "SELECT e.status AS status, COALESCE(SUM(e.amount), 0) AS total FROM " + kind.Table() + " e WHERE " + where + " GROUP BY e.status"

	var rows []reportsdomain.StatusSum
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) SumByCategory(ctx context.Context, kind entries.Kind, ownerID string, period reportsdomain.Period, status entries.Status) ([]reportsdomain.ByCategoryRow, error) {
	where, args := buildPeriodWhere(ownerID, period, status)
	query := "SELECT c.id AS category_id, c.name AS category_name, COALESCE(SUM(e.amount), 0) AS total, COUNT(*) AS count " +
		"FROM " + kind.Table() + " e JOIN categories c ON c.id = e.category_id " +
		"WHERE " + where + " GROUP BY c.id, c.name ORDER BY total DESC, c.name ASC"

	var rows []reportsdomain.ByCategoryRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// buildPeriodWhere matches the month on the text of the stored date, zero-padded month and four-digit year.
func buildPeriodWhere(ownerID string, period reportsdomain.Period, status entries.Status) (string, []interface{}) {
	conditions := []string{
		"e.owner_id = ?",
		"to_char(e.effective_date, 'MM') = ?",
		"to_char(e.effective_date, 'YYYY') = ?",
	}
	args := []interface{}{ownerID, period.MonthText(), period.YearText()}

	if status != "" {
		conditions = append(conditions, "e.status = ?")
		args = append(args, status)
	}

	return strings.Join(conditions, " AND "), args
}
