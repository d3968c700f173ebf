package handler

import (
	"net/http"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/categories"
	"finance-tracker-go/internal/validation"
	"github.com/go-chi/chi/v5"
)

type categoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type activeRequest struct {
	Active bool `json:"active"`
}

type categoryResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      categories.Type `json:"type"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	activeOnly, err := parseBoolParam(query.Get("active"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid active flag")
		return
	}

	items, err := h.Categories.ListCategories(r.Context(), ownerID, categories.ListFilter{
		Type:       categories.Type(strings.TrimSpace(query.Get("type"))),
		ActiveOnly: activeOnly,
	})
	if err != nil {
		h.fail(w, r, "categories.list: list failed", err, "user_id", ownerID)
		return
	}

	response := make([]categoryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toCategoryResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if !h.decodeValidated(w, r, validation.SchemaCategory, &req) {
		return
	}

	created, err := h.Categories.CreateCategory(r.Context(), categories.CreateCategoryInput{
		OwnerID: ownerID,
		Name:    req.Name,
		Type:    categories.Type(req.Type),
	})
	if err != nil {
		h.fail(w, r, "categories.create: create failed", err, "user_id", ownerID)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req categoryRequest
	if !h.decodeValidated(w, r, validation.SchemaCategory, &req) {
		return
	}

	updated, err := h.Categories.UpdateCategory(r.Context(), categories.UpdateCategoryInput{
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Name:       req.Name,
		Type:       categories.Type(req.Type),
	})
	if err != nil {
		h.fail(w, r, "categories.update: update failed", err, "user_id", ownerID, "id", categoryID)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) SetCategoryActive(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req activeRequest
	if !h.decodeValidated(w, r, validation.SchemaActive, &req) {
		return
	}

	updated, err := h.Categories.SetActive(r.Context(), ownerID, categoryID, req.Active)
	if err != nil {
		h.fail(w, r, "categories.active: toggle failed", err, "user_id", ownerID, "id", categoryID)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))

	if err := h.Categories.DeleteCategory(r.Context(), ownerID, categoryID); err != nil {
		h.fail(w, r, "categories.delete: delete failed", err, "user_id", ownerID, "id", categoryID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCategoryResponse(category categories.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Type:      category.Type,
		Active:    category.Active,
		CreatedAt: category.CreatedAt,
	}
}
