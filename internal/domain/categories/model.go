package categories

import "time"

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	OwnerID   string    `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Type      Type      `gorm:"type:text;not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type ListFilter struct {
	Type       Type
	ActiveOnly bool
}

type CreateCategoryInput struct {
	OwnerID string
	Name    string
	Type    Type
}

type UpdateCategoryInput struct {
	OwnerID    string
	CategoryID string
	Name       string
	Type       Type
}
