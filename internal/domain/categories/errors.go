package categories

import "errors"

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryInUse        = errors.New("category in use")
	ErrCategoryNameTaken    = errors.New("category name already exists")
	ErrInvalidCategoryName  = errors.New("category name must have between 2 and 50 characters")
	ErrInvalidCategoryType  = errors.New("category type must be income or expense")
	ErrCategoryTypeMismatch = errors.New("category type does not match entry type")
)
