package entries

import (
	"time"

	"finance-tracker-go/internal/domain/categories"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

func (k Kind) Table() string {
	if k == KindIncome {
		return "incomes"
	}
	return "expenses"
}

// SettledStatus is the non-open status of the kind: paid for expenses, received for incomes.
func (k Kind) SettledStatus() Status {
	if k == KindIncome {
		return StatusReceived
	}
	return StatusPaid
}

func (k Kind) ValidStatus(status Status) bool {
	return status == StatusOpen || status == k.SettledStatus()
}

func (k Kind) CategoryType() categories.Type {
	if k == KindIncome {
		return categories.TypeIncome
	}
	return categories.TypeExpense
}

type Status string

const (
	StatusPaid     Status = "paid"
	StatusReceived Status = "received"
	StatusOpen     Status = "open"
)

type RecurrenceMode string

const (
	RecurrenceNone         RecurrenceMode = "none"
	RecurrenceInstallment  RecurrenceMode = "installment"
	RecurrenceFixedMonthly RecurrenceMode = "fixed_monthly"
)

func (m RecurrenceMode) Valid() bool {
	switch m {
	case RecurrenceNone, RecurrenceInstallment, RecurrenceFixedMonthly:
		return true
	}
	return false
}

type Entry struct {
	ID               string          `gorm:"type:uuid;primaryKey"`
	OwnerID          string          `gorm:"type:uuid;index;not null"`
	Kind             Kind            `gorm:"-"`
	Description      string          `gorm:"not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status           Status          `gorm:"type:text;not null"`
	CategoryID       string          `gorm:"type:uuid;not null"`
	CategoryName     string          `gorm:"->"`
	Subcategory      *string         `gorm:"type:text"`
	EffectiveDate    time.Time       `gorm:"type:date;not null"`
	RecurrenceMode   RecurrenceMode  `gorm:"type:text;not null"`
	InstallmentCount *int            `gorm:"type:integer"`
	InstallmentIndex int             `gorm:"not null"`
	GroupID          *string         `gorm:"type:uuid"`
	CardID           *string         `gorm:"type:uuid"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
}

type ListFilter struct {
	Month      int
	Year       int
	Status     Status
	CategoryID string
}

type CreateEntryInput struct {
	OwnerID          string
	Description      string
	Amount           decimal.Decimal
	Status           Status
	CategoryID       string
	CategoryName     string
	Subcategory      *string
	EffectiveDate    string
	RecurrenceMode   RecurrenceMode
	InstallmentCount int
	CardID           *string
}

type UpdateEntryInput struct {
	OwnerID       string
	EntryID       string
	Description   string
	Amount        decimal.Decimal
	Status        Status
	CategoryID    string
	CategoryName  string
	Subcategory   *string
	EffectiveDate string
	CardID        *string
}

// GroupQuery selects a recurrence batch by GroupID or, for rows without one, by description and mode.
type GroupQuery struct {
	GroupID     string
	Description string
	Mode        RecurrenceMode
}

type GroupSelector struct {
	GroupID         string
	BaseDescription string
	Mode            RecurrenceMode
}

type UpdateGroupInput struct {
	OwnerID  string
	Query    GroupQuery
	OnlyOpen bool
	Fields   map[string]any
}
