package handler

import (
	"net/http"
	"strings"

	"finance-tracker-go/internal/domain/cards"
	"finance-tracker-go/internal/validation"
	"github.com/go-chi/chi/v5"
)

type cardRequest struct {
	Name            string `json:"name"`
	Brand           string `json:"brand"`
	BestPurchaseDay int    `json:"best_purchase_day"`
}

type cardResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Brand           string `json:"brand"`
	BestPurchaseDay int    `json:"best_purchase_day"`
	Active          bool   `json:"active"`
}

func (h *Handlers) ListCards(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	activeOnly, err := parseBoolParam(r.URL.Query().Get("active"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid active flag")
		return
	}

	items, err := h.Cards.ListCards(r.Context(), ownerID, activeOnly)
	if err != nil {
		h.fail(w, r, "cards.list: list failed", err, "user_id", ownerID)
		return
	}

	response := make([]cardResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toCardResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetCard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	cardID := strings.TrimSpace(chi.URLParam(r, "id"))

	card, err := h.Cards.GetCard(r.Context(), ownerID, cardID)
	if err != nil {
		h.fail(w, r, "cards.get: get failed", err, "user_id", ownerID, "id", cardID)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(*card))
}

func (h *Handlers) CreateCard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req cardRequest
	if !h.decodeValidated(w, r, validation.SchemaCard, &req) {
		return
	}

	created, err := h.Cards.CreateCard(r.Context(), cards.CardInput{
		OwnerID:         ownerID,
		Name:            req.Name,
		Brand:           req.Brand,
		BestPurchaseDay: req.BestPurchaseDay,
	})
	if err != nil {
		h.fail(w, r, "cards.create: create failed", err, "user_id", ownerID)
		return
	}

	writeJSON(w, http.StatusCreated, toCardResponse(*created))
}

func (h *Handlers) UpdateCard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	cardID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req cardRequest
	if !h.decodeValidated(w, r, validation.SchemaCard, &req) {
		return
	}

	updated, err := h.Cards.UpdateCard(r.Context(), cards.CardInput{
		OwnerID:         ownerID,
		CardID:          cardID,
		Name:            req.Name,
		Brand:           req.Brand,
		BestPurchaseDay: req.BestPurchaseDay,
	})
	if err != nil {
		h.fail(w, r, "cards.update: update failed", err, "user_id", ownerID, "id", cardID)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(*updated))
}

func (h *Handlers) SetCardActive(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	cardID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req activeRequest
	if !h.decodeValidated(w, r, validation.SchemaActive, &req) {
		return
	}

	updated, err := h.Cards.SetActive(r.Context(), ownerID, cardID, req.Active)
	if err != nil {
		h.fail(w, r, "cards.active: toggle failed", err, "user_id", ownerID, "id", cardID)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(*updated))
}

func (h *Handlers) DeleteCard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	cardID := strings.TrimSpace(chi.URLParam(r, "id"))

	if err := h.Cards.DeleteCard(r.Context(), ownerID, cardID); err != nil {
		h.fail(w, r, "cards.delete: delete failed", err, "user_id", ownerID, "id", cardID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCardResponse(card cards.Card) cardResponse {
	return cardResponse{
		ID:              card.ID,
		Name:            card.Name,
		Brand:           card.Brand,
		BestPurchaseDay: card.BestPurchaseDay,
		Active:          card.Active,
	}
}
