package handler

import (
	"net/http"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/entries"
	"finance-tracker-go/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createEntryRequest struct {
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	CategoryID       string          `json:"category_id"`
	Category         string          `json:"category"`
	Subcategory      *string         `json:"subcategory"`
	EffectiveDate    string          `json:"effective_date"`
	RecurrenceMode   string          `json:"recurrence_mode"`
	InstallmentCount *int            `json:"installment_count"`
	CardID           *string         `json:"card_id"`
}

type updateEntryRequest struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	CategoryID    string          `json:"category_id"`
	Category      string          `json:"category"`
	Subcategory   *string         `json:"subcategory"`
	EffectiveDate string          `json:"effective_date"`
	CardID        *string         `json:"card_id"`
}

type entryStatusRequest struct {
	Status string `json:"status"`
}

type updateGroupRequest struct {
	GroupID        string         `json:"group_id"`
	Description    string         `json:"description"`
	RecurrenceMode string         `json:"recurrence_mode"`
	OnlyOpen       bool           `json:"only_open"`
	Fields         map[string]any `json:"fields"`
}

type entryResponse struct {
	ID               string          `json:"id"`
	Kind             entries.Kind    `json:"kind"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Status           entries.Status  `json:"status"`
	CategoryID       string          `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	Subcategory      *string         `json:"subcategory"`
	EffectiveDate    string          `json:"effective_date"`
	RecurrenceMode   string          `json:"recurrence_mode"`
	InstallmentCount *int            `json:"installment_count"`
	InstallmentIndex int             `json:"installment_index"`
	GroupID          *string         `json:"group_id"`
	CardID           *string         `json:"card_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type entryListResponse struct {
	Items []entryResponse `json:"items"`
}

type updateGroupResponse struct {
	Updated int64 `json:"updated"`
}

func (h *Handlers) ListEntries(kind entries.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		month, err := parseIntParam(query.Get("month"), 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid month")
			return
		}
		year, err := parseIntParam(query.Get("year"), 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid year")
			return
		}

		items, err := h.Entries.List(r.Context(), kind, ownerID, entries.ListFilter{
			Month:      month,
			Year:       year,
			Status:     entries.Status(strings.TrimSpace(query.Get("status"))),
			CategoryID: strings.TrimSpace(query.Get("category_id")),
		})
		if err != nil {
			h.fail(w, r, string(kind)+".list: list failed", err, "user_id", ownerID)
			return
		}

		writeJSON(w, http.StatusOK, toEntryListResponse(items))
	}
}

func (h *Handlers) GetEntry(kind entries.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}
		entryID := strings.TrimSpace(chi.URLParam(r, "id"))

		entry, err := h.Entries.Get(r.Context(), kind, ownerID, entryID)
		if err != nil {
			h.fail(w, r, string(kind)+".get: get failed", err, "user_id", ownerID, "id", entryID)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(*entry))
	}
}

// CreateEntry answers with every row of the recurrence batch.
func (h *Handlers) CreateEntry(kind entries.Kind) http.HandlerFunc {
	schema := validation.SchemaExpense
	if kind == entries.KindIncome {
		schema = validation.SchemaIncome
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		var req createEntryRequest
		if !h.decodeValidated(w, r, schema, &req) {
			return
		}

		status := entries.Status(req.Status)
		if status == "" {
			status = entries.StatusOpen
		}
		input := entries.CreateEntryInput{
			OwnerID:        ownerID,
			Description:    req.Description,
			Amount:         req.Amount,
			Status:         status,
			CategoryID:     strings.TrimSpace(req.CategoryID),
			CategoryName:   strings.TrimSpace(req.Category),
			Subcategory:    req.Subcategory,
			EffectiveDate:  req.EffectiveDate,
			RecurrenceMode: entries.RecurrenceMode(req.RecurrenceMode),
			CardID:         req.CardID,
		}
		if req.InstallmentCount != nil {
			input.InstallmentCount = *req.InstallmentCount
		}

		created, err := h.Entries.Create(r.Context(), kind, input)
		if err != nil {
			h.fail(w, r, string(kind)+".create: create failed", err, "user_id", ownerID, "recurrence_mode", input.RecurrenceMode)
			return
		}

		writeJSON(w, http.StatusCreated, toEntryListResponse(created))
	}
}

func (h *Handlers) UpdateEntry(kind entries.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}
		entryID := strings.TrimSpace(chi.URLParam(r, "id"))

		var req updateEntryRequest
		if !h.decodeValidated(w, r, validation.SchemaEntryUpdate, &req) {
			return
		}

		updated, err := h.Entries.Update(r.Context(), kind, entries.UpdateEntryInput{
			OwnerID:       ownerID,
			EntryID:       entryID,
			Description:   req.Description,
			Amount:        req.Amount,
			Status:        entries.Status(req.Status),
			CategoryID:    strings.TrimSpace(req.CategoryID),
			CategoryName:  strings.TrimSpace(req.Category),
			Subcategory:   req.Subcategory,
			EffectiveDate: req.EffectiveDate,
			CardID:        req.CardID,
		})
		if err != nil {
			h.fail(w, r, string(kind)+".update: update failed", err, "user_id", ownerID, "id", entryID)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(*updated))
	}
}

func (h *Handlers) SetEntryStatus(kind entries.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}
		entryID := strings.TrimSpace(chi.URLParam(r, "id"))

		var req entryStatusRequest
		if !h.decodeValidated(w, r, validation.SchemaEntryStatus, &req) {
			return
		}

		updated, err := h.Entries.SetStatus(r.Context(), kind, ownerID, entryID, entries.Status(req.Status))
		if err != nil {
			h.fail(w, r, string(kind)+".status: update failed", err, "user_id", ownerID, "id", entryID)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(*updated))
	}
}

func (h *Handlers) DeleteEntry(kind entries.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}
		entryID := strings.TrimSpace(chi.URLParam(r, "id"))

		if err := h.Entries.Delete(r.Context(), kind, ownerID, entryID); err != nil {
			h.fail(w, r, string(kind)+".delete: delete failed", err, "user_id", ownerID, "id", entryID)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handlers) EntryGroup(kind entries.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		items, err := h.Entries.Group(r.Context(), kind, ownerID, entries.GroupQuery{
			GroupID:     strings.TrimSpace(query.Get("group_id")),
			Description: query.Get("description"),
			Mode:        entries.RecurrenceMode(strings.TrimSpace(query.Get("recurrence_mode"))),
		})
		if err != nil {
			h.fail(w, r, string(kind)+".group: list group failed", err, "user_id", ownerID)
			return
		}

		writeJSON(w, http.StatusOK, toEntryListResponse(items))
	}
}

func (h *Handlers) UpdateEntryGroup(kind entries.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		var req updateGroupRequest
		if !h.decodeValidated(w, r, validation.SchemaGroupUpdate, &req) {
			return
		}

		updated, err := h.Entries.UpdateGroup(r.Context(), kind, entries.UpdateGroupInput{
			OwnerID: ownerID,
			Query: entries.GroupQuery{
				GroupID:     strings.TrimSpace(req.GroupID),
				Description: req.Description,
				Mode:        entries.RecurrenceMode(req.RecurrenceMode),
			},
			OnlyOpen: req.OnlyOpen,
			Fields:   req.Fields,
		})
		if err != nil {
			h.fail(w, r, string(kind)+".group_update: update failed", err, "user_id", ownerID, "group_id", req.GroupID)
			return
		}

		writeJSON(w, http.StatusOK, updateGroupResponse{Updated: updated})
	}
}

func toEntryListResponse(items []entries.Entry) entryListResponse {
	response := make([]entryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toEntryResponse(item))
	}
	return entryListResponse{Items: response}
}

func toEntryResponse(entry entries.Entry) entryResponse {
	return entryResponse{
		ID:               entry.ID,
		Kind:             entry.Kind,
		Description:      entry.Description,
		Amount:           entry.Amount,
		Status:           entry.Status,
		CategoryID:       entry.CategoryID,
		CategoryName:     entry.CategoryName,
		Subcategory:      entry.Subcategory,
		EffectiveDate:    entries.FormatDate(entry.EffectiveDate),
		RecurrenceMode:   string(entry.RecurrenceMode),
		InstallmentCount: entry.InstallmentCount,
		InstallmentIndex: entry.InstallmentIndex,
		GroupID:          entry.GroupID,
		CardID:           entry.CardID,
		CreatedAt:        entry.CreatedAt,
		UpdatedAt:        entry.UpdatedAt,
	}
}
