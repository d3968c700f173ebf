package categories

import "context"

type Repository interface {
	ListCategories(ctx context.Context, ownerID string) ([]Category, error)
	GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*Category, error)
	FindCategoryByName(ctx context.Context, ownerID string, categoryType Type, name string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	CountCategoriesByName(ctx context.Context, ownerID string, categoryType Type, name, excludeID string) (int64, error)
	CountEntriesByCategoryID(ctx context.Context, ownerID, categoryID string) (int64, error)
	DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error)
}
