package entries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/cards"
	"finance-tracker-go/internal/domain/categories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const minDescriptionLength = 3

type CategoryResolver interface {
	Resolve(ctx context.Context, ownerID string, categoryType categories.Type, categoryID, name string) (*categories.Category, error)
}

type CardLookup interface {
	GetCard(ctx context.Context, ownerID, cardID string) (*cards.Card, error)
}

type Service struct {
	repo       Repository
	categories CategoryResolver
	cards      CardLookup
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryResolver, cards CardLookup) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		cards:      cards,
		now:        time.Now,
	}
}

func (s *Service) List(ctx context.Context, kind Kind, ownerID string, filter ListFilter) ([]Entry, error) {
	if filter.Month < 0 || filter.Month > 12 {
		return nil, invalid("month", "must be between 1 and 12")
	}
	if filter.Year < 0 || filter.Year > 9999 {
		return nil, invalid("year", "must have four digits")
	}
	if filter.Status != "" && !kind.ValidStatus(filter.Status) {
		return nil, invalid("status", fmt.Sprintf("must be %s or %s", kind.SettledStatus(), StatusOpen))
	}
	if filter.CategoryID != "" && uuid.Validate(filter.CategoryID) != nil {
		return nil, invalid("category_id", "must be a valid id")
	}

	items, err := s.repo.ListEntries(ctx, kind, ownerID, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []Entry{}, nil
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, kind Kind, ownerID, entryID string) (*Entry, error) {
	if uuid.Validate(entryID) != nil {
		return nil, ErrEntryNotFound
	}
	return s.repo.GetEntryByID(ctx, kind, ownerID, entryID)
}

// Create validates the submission and persists every row of its recurrence batch in one transaction.
func (s *Service) Create(ctx context.Context, kind Kind, input CreateEntryInput) ([]Entry, error) {
	mode := input.RecurrenceMode
	if mode == "" {
		mode = RecurrenceNone
	}
	if !mode.Valid() {
		return nil, invalid("recurrence_mode", "must be none, installment or fixed_monthly")
	}
	if mode == RecurrenceInstallment && (input.InstallmentCount < 2 || input.InstallmentCount > maxInstallments) {
		return nil, invalid("installment_count", fmt.Sprintf("must be between 2 and %d", maxInstallments))
	}

	template := Entry{
		OwnerID:        input.OwnerID,
		Kind:           kind,
		RecurrenceMode: mode,
	}
	err := s.applyFields(ctx, kind, input.OwnerID, &template, entryFields{
		Description:   input.Description,
		Amount:        input.Amount,
		Status:        input.Status,
		CategoryID:    input.CategoryID,
		CategoryName:  input.CategoryName,
		Subcategory:   input.Subcategory,
		EffectiveDate: input.EffectiveDate,
		CardID:        input.CardID,
	})
	if err != nil {
		return nil, err
	}

	if mode == RecurrenceFixedMonthly && fixedMonthlyCount(template.EffectiveDate, s.now()) > maxInstallments {
		return nil, invalid("effective_date", "fixed monthly recurrence spans too many months")
	}

	rows := Expand(template, input.InstallmentCount, uuid.NewString(), s.now())
	for i := range rows {
		rows[i].ID = uuid.NewString()
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		for i := range rows {
			if err := tx.CreateEntry(ctx, kind, &rows[i]); err != nil {
				return fmt.Errorf("row %d of %d: %w", i+1, len(rows), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBatchWrite, err)
	}

	return rows, nil
}

// Update replaces the editable fields of a single row. Siblings in its group are untouched.
func (s *Service) Update(ctx context.Context, kind Kind, input UpdateEntryInput) (*Entry, error) {
	entry, err := s.Get(ctx, kind, input.OwnerID, input.EntryID)
	if err != nil {
		return nil, err
	}

	err = s.applyFields(ctx, kind, input.OwnerID, entry, entryFields{
		Description:   input.Description,
		Amount:        input.Amount,
		Status:        input.Status,
		CategoryID:    input.CategoryID,
		CategoryName:  input.CategoryName,
		Subcategory:   input.Subcategory,
		EffectiveDate: input.EffectiveDate,
		CardID:        input.CardID,
	})
	if err != nil {
		return nil, err
	}
	entry.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateEntry(ctx, kind, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) SetStatus(ctx context.Context, kind Kind, ownerID, entryID string, status Status) (*Entry, error) {
	if !kind.ValidStatus(status) {
		return nil, invalid("status", fmt.Sprintf("must be %s or %s", kind.SettledStatus(), StatusOpen))
	}

	entry, err := s.Get(ctx, kind, ownerID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Status = status
	entry.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateEntry(ctx, kind, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, kind Kind, ownerID, entryID string) error {
	if uuid.Validate(entryID) != nil {
		return ErrEntryNotFound
	}
	deleted, err := s.repo.DeleteEntry(ctx, kind, ownerID, entryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

// Group returns the sibling rows of a recurrence batch ordered by installment index.
func (s *Service) Group(ctx context.Context, kind Kind, ownerID string, query GroupQuery) ([]Entry, error) {
	selector, err := groupSelector(query)
	if err != nil {
		return nil, err
	}
	if selector.GroupID == "" && selector.Mode == RecurrenceNone {
		return []Entry{}, nil
	}

	items, err := s.repo.ListGroup(ctx, kind, ownerID, selector)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []Entry{}, nil
	}
	return items, nil
}

// UpdateGroup applies a partial field map to every row of a recurrence batch and returns
// how many rows changed. id and description are never propagated.
func (s *Service) UpdateGroup(ctx context.Context, kind Kind, input UpdateGroupInput) (int64, error) {
	selector, err := groupSelector(input.Query)
	if err != nil {
		return 0, err
	}

	columns, err := s.groupColumns(ctx, kind, input.OwnerID, input.Fields)
	if err != nil {
		return 0, err
	}

	if selector.GroupID == "" && selector.Mode == RecurrenceNone {
		return 0, nil
	}

	var status Status
	if input.OnlyOpen {
		status = StatusOpen
	}
	return s.repo.UpdateGroup(ctx, kind, input.OwnerID, selector, status, columns)
}

type entryFields struct {
	Description   string
	Amount        decimal.Decimal
	Status        Status
	CategoryID    string
	CategoryName  string
	Subcategory   *string
	EffectiveDate string
	CardID        *string
}

func (s *Service) applyFields(ctx context.Context, kind Kind, ownerID string, entry *Entry, fields entryFields) error {
	description := strings.TrimSpace(fields.Description)
	if len([]rune(description)) < minDescriptionLength {
		return invalid("description", fmt.Sprintf("must have at least %d characters", minDescriptionLength))
	}
	amount := fields.Amount.Round(2)
	if !amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if !kind.ValidStatus(fields.Status) {
		return invalid("status", fmt.Sprintf("must be %s or %s", kind.SettledStatus(), StatusOpen))
	}
	date, err := ParseDate(fields.EffectiveDate)
	if err != nil {
		return invalid("effective_date", err.Error())
	}

	category, err := s.resolveCategory(ctx, kind, ownerID, fields.CategoryID, fields.CategoryName)
	if err != nil {
		return err
	}

	cardID, err := s.resolveCard(ctx, kind, ownerID, fields.CardID)
	if err != nil {
		return err
	}

	entry.Description = description
	entry.Amount = amount
	entry.Status = fields.Status
	entry.CategoryID = category.ID
	entry.CategoryName = category.Name
	entry.Subcategory = normalizeOptional(fields.Subcategory)
	entry.EffectiveDate = date
	entry.CardID = cardID
	return nil
}

func (s *Service) resolveCategory(ctx context.Context, kind Kind, ownerID, categoryID, name string) (*categories.Category, error) {
	category, err := s.categories.Resolve(ctx, ownerID, kind.CategoryType(), categoryID, name)
	switch {
	case err == nil:
		return category, nil
	case errors.Is(err, categories.ErrCategoryNotFound):
		return nil, invalid("category_id", "category not found")
	case errors.Is(err, categories.ErrCategoryTypeMismatch):
		return nil, invalid("category_id", fmt.Sprintf("category is not of type %s", kind.CategoryType()))
	default:
		return nil, err
	}
}

func (s *Service) resolveCard(ctx context.Context, kind Kind, ownerID string, cardID *string) (*string, error) {
	cardID = normalizeOptional(cardID)
	if cardID == nil {
		return nil, nil
	}
	if kind != KindExpense {
		return nil, invalid("card_id", "only expenses can reference a card")
	}
	if uuid.Validate(*cardID) != nil {
		return nil, invalid("card_id", "card not found")
	}

	card, err := s.cards.GetCard(ctx, ownerID, *cardID)
	if err != nil {
		if errors.Is(err, cards.ErrCardNotFound) {
			return nil, invalid("card_id", "card not found")
		}
		return nil, err
	}
	return &card.ID, nil
}

func (s *Service) groupColumns(ctx context.Context, kind Kind, ownerID string, fields map[string]any) (map[string]any, error) {
	columns := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		switch key {
		case "id", "description":
			continue
		case "amount":
			amount, err := decimalFromAny(value)
			if err != nil || !amount.Round(2).IsPositive() {
				return nil, invalid("amount", "must be greater than zero")
			}
			columns["amount"] = amount.Round(2)
		case "status":
			status, _ := value.(string)
			if !kind.ValidStatus(Status(status)) {
				return nil, invalid("status", fmt.Sprintf("must be %s or %s", kind.SettledStatus(), StatusOpen))
			}
			columns["status"] = status
		case "category_id", "category":
			raw, ok := value.(string)
			if !ok {
				return nil, invalid(key, "must be a string")
			}
			var category *categories.Category
			var err error
			if key == "category_id" {
				category, err = s.resolveCategory(ctx, kind, ownerID, raw, "")
			} else {
				category, err = s.resolveCategory(ctx, kind, ownerID, "", raw)
			}
			if err != nil {
				return nil, err
			}
			columns["category_id"] = category.ID
		case "subcategory":
			if value == nil {
				columns["subcategory"] = nil
				continue
			}
			raw, ok := value.(string)
			if !ok {
				return nil, invalid("subcategory", "must be a string")
			}
			if normalized := normalizeOptional(&raw); normalized != nil {
				columns["subcategory"] = *normalized
			} else {
				columns["subcategory"] = nil
			}
		case "effective_date":
			raw, _ := value.(string)
			date, err := ParseDate(raw)
			if err != nil {
				return nil, invalid("effective_date", err.Error())
			}
			columns["effective_date"] = FormatDate(date)
		case "card_id":
			var cardID *string
			if value != nil {
				raw, ok := value.(string)
				if !ok {
					return nil, invalid("card_id", "must be a string")
				}
				cardID = &raw
			}
			resolved, err := s.resolveCard(ctx, kind, ownerID, cardID)
			if err != nil {
				return nil, err
			}
			if resolved == nil {
				columns["card_id"] = nil
			} else {
				columns["card_id"] = *resolved
			}
		default:
			return nil, invalid(key, "field cannot be updated for a group")
		}
	}

	if len(columns) == 0 {
		return nil, invalid("fields", "no updatable fields given")
	}
	columns["updated_at"] = s.now().UTC()
	return columns, nil
}

func groupSelector(query GroupQuery) (GroupSelector, error) {
	groupID := strings.TrimSpace(query.GroupID)
	if groupID != "" {
		if uuid.Validate(groupID) != nil {
			return GroupSelector{}, invalid("group_id", "must be a valid id")
		}
		return GroupSelector{GroupID: groupID}, nil
	}

	if !query.Mode.Valid() {
		return GroupSelector{}, invalid("recurrence_mode", "must be none, installment or fixed_monthly")
	}
	base := StripInstallmentSuffix(query.Description)
	if base == "" && query.Mode != RecurrenceNone {
		return GroupSelector{}, invalid("description", "is required without group_id")
	}
	return GroupSelector{BaseDescription: base, Mode: query.Mode}, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func decimalFromAny(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported amount type %T", value)
	}
}
