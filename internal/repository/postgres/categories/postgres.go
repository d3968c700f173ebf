package categories

import (
	"context"
	"errors"

	categoriesdomain "finance-tracker-go/internal/domain/categories"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListCategories(ctx context.Context, ownerID string) ([]categoriesdomain.Category, error) {
	var items []categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("type asc, lower(name) asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, categoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) FindCategoryByName(ctx context.Context, ownerID string, categoryType categoriesdomain.Type, name string) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND type = ? AND lower(name) = lower(?)", ownerID, categoryType, name).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&categoriesdomain.Category{}).
		Where("id = ? AND owner_id = ?", category.ID, category.OwnerID).
		Updates(map[string]interface{}{
			"name":       category.Name,
			"type":       category.Type,
			"active":     category.Active,
			"updated_at": category.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) CountCategoriesByName(ctx context.Context, ownerID string, categoryType categoriesdomain.Type, name, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&categoriesdomain.Category{}).
		Where("owner_id = ? AND type = ? AND lower(name) = lower(?)", ownerID, categoryType, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountEntriesByCategoryID counts expenses and incomes of the owner that reference the category.
func (r *PostgresRepository) CountEntriesByCategoryID(ctx context.Context, ownerID, categoryID string) (int64, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM expenses WHERE owner_id = ? AND category_id = ?) +
		(SELECT COUNT(*) FROM incomes WHERE owner_id = ? AND category_id = ?) AS count`

	var row struct {
		Count int64 `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Raw(query, ownerID, categoryID, ownerID, categoryID).Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&categoriesdomain.Category{}, "owner_id = ? AND id = ?", ownerID, categoryID)
	return result.RowsAffected > 0, result.Error
}
