package handler

import (
	"net/http"
	"strings"
	"time"

	"finance-tracker-go/internal/domain/investments"
	"finance-tracker-go/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type assetRequest struct {
	Name        string  `json:"name"`
	Ticker      *string `json:"ticker"`
	Type        string  `json:"type"`
	Sector      string  `json:"sector"`
	Description string  `json:"description"`
}

type transactionRequest struct {
	Date      string          `json:"date"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type assetResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Ticker         *string               `json:"ticker"`
	Type           investments.AssetType `json:"type"`
	Sector         string                `json:"sector"`
	Description    string                `json:"description"`
	Active         bool                  `json:"active"`
	CurrentPrice   decimal.NullDecimal   `json:"current_price"`
	LastQuoteDate  *string               `json:"last_quote_date"`
	PercentChange  decimal.NullDecimal   `json:"percent_change"`
	AbsoluteChange decimal.NullDecimal   `json:"absolute_change"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type transactionResponse struct {
	ID         string                      `json:"id"`
	AssetID    string                      `json:"asset_id"`
	Date       string                      `json:"date"`
	Type       investments.TransactionType `json:"type"`
	Quantity   decimal.Decimal             `json:"quantity"`
	UnitPrice  decimal.Decimal             `json:"unit_price"`
	TotalValue decimal.Decimal             `json:"total_value"`
}

func (h *Handlers) ListAssets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	activeOnly, err := parseBoolParam(r.URL.Query().Get("active"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid active flag")
		return
	}

	items, err := h.Investments.ListAssets(r.Context(), ownerID, activeOnly)
	if err != nil {
		h.fail(w, r, "assets.list: list failed", err, "user_id", ownerID)
		return
	}

	response := make([]assetResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toAssetResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	assetID := strings.TrimSpace(chi.URLParam(r, "id"))

	asset, err := h.Investments.GetAsset(r.Context(), ownerID, assetID)
	if err != nil {
		h.fail(w, r, "assets.get: get failed", err, "user_id", ownerID, "id", assetID)
		return
	}

	writeJSON(w, http.StatusOK, toAssetResponse(*asset))
}

func (h *Handlers) CreateAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req assetRequest
	if !h.decodeValidated(w, r, validation.SchemaAsset, &req) {
		return
	}

	created, err := h.Investments.CreateAsset(r.Context(), toAssetInput(ownerID, "", req))
	if err != nil {
		h.fail(w, r, "assets.create: create failed", err, "user_id", ownerID)
		return
	}

	writeJSON(w, http.StatusCreated, toAssetResponse(*created))
}

func (h *Handlers) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	assetID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req assetRequest
	if !h.decodeValidated(w, r, validation.SchemaAsset, &req) {
		return
	}

	updated, err := h.Investments.UpdateAsset(r.Context(), toAssetInput(ownerID, assetID, req))
	if err != nil {
		h.fail(w, r, "assets.update: update failed", err, "user_id", ownerID, "id", assetID)
		return
	}

	writeJSON(w, http.StatusOK, toAssetResponse(*updated))
}

func (h *Handlers) SetAssetActive(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	assetID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req activeRequest
	if !h.decodeValidated(w, r, validation.SchemaActive, &req) {
		return
	}

	updated, err := h.Investments.SetAssetActive(r.Context(), ownerID, assetID, req.Active)
	if err != nil {
		h.fail(w, r, "assets.active: toggle failed", err, "user_id", ownerID, "id", assetID)
		return
	}

	writeJSON(w, http.StatusOK, toAssetResponse(*updated))
}

func (h *Handlers) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	assetID := strings.TrimSpace(chi.URLParam(r, "id"))

	if err := h.Investments.DeleteAsset(r.Context(), ownerID, assetID); err != nil {
		h.fail(w, r, "assets.delete: delete failed", err, "user_id", ownerID, "id", assetID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	assetID := strings.TrimSpace(chi.URLParam(r, "id"))

	items, err := h.Investments.ListTransactions(r.Context(), ownerID, assetID)
	if err != nil {
		h.fail(w, r, "transactions.list: list failed", err, "user_id", ownerID, "asset_id", assetID)
		return
	}

	response := make([]transactionResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toTransactionResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	assetID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req transactionRequest
	if !h.decodeValidated(w, r, validation.SchemaTransaction, &req) {
		return
	}

	created, err := h.Investments.CreateTransaction(r.Context(), investments.TransactionInput{
		OwnerID:   ownerID,
		AssetID:   assetID,
		Date:      req.Date,
		Type:      investments.TransactionType(req.Type),
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		h.fail(w, r, "transactions.create: create failed", err, "user_id", ownerID, "asset_id", assetID)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(*created))
}

func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	transactionID := strings.TrimSpace(chi.URLParam(r, "id"))

	tx, err := h.Investments.GetTransaction(r.Context(), ownerID, transactionID)
	if err != nil {
		h.fail(w, r, "transactions.get: get failed", err, "user_id", ownerID, "id", transactionID)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(*tx))
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	transactionID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req transactionRequest
	if !h.decodeValidated(w, r, validation.SchemaTransaction, &req) {
		return
	}

	updated, err := h.Investments.UpdateTransaction(r.Context(), investments.TransactionInput{
		OwnerID:       ownerID,
		TransactionID: transactionID,
		Date:          req.Date,
		Type:          investments.TransactionType(req.Type),
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
	})
	if err != nil {
		h.fail(w, r, "transactions.update: update failed", err, "user_id", ownerID, "id", transactionID)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(*updated))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}
	transactionID := strings.TrimSpace(chi.URLParam(r, "id"))

	if err := h.Investments.DeleteTransaction(r.Context(), ownerID, transactionID); err != nil {
		h.fail(w, r, "transactions.delete: delete failed", err, "user_id", ownerID, "id", transactionID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Portfolio(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	positions, err := h.Investments.Portfolio(r.Context(), ownerID)
	if err != nil {
		h.fail(w, r, "portfolio.summary: summarize failed", err, "user_id", ownerID)
		return
	}

	writeJSON(w, http.StatusOK, positions)
}

func toAssetInput(ownerID, assetID string, req assetRequest) investments.AssetInput {
	input := investments.AssetInput{
		OwnerID:     ownerID,
		AssetID:     assetID,
		Name:        req.Name,
		Type:        investments.AssetType(req.Type),
		Sector:      req.Sector,
		Description: req.Description,
	}
	if req.Ticker != nil {
		input.Ticker = *req.Ticker
	}
	return input
}

func toAssetResponse(asset investments.Asset) assetResponse {
	response := assetResponse{
		ID:             asset.ID,
		Name:           asset.Name,
		Ticker:         asset.Ticker,
		Type:           asset.Type,
		Sector:         asset.Sector,
		Description:    asset.Description,
		Active:         asset.Active,
		CurrentPrice:   asset.CurrentPrice,
		PercentChange:  asset.PercentChange,
		AbsoluteChange: asset.AbsoluteChange,
		UpdatedAt:      asset.UpdatedAt,
	}
	if asset.LastQuoteDate != nil {
		date := asset.LastQuoteDate.Format("2006-01-02")
		response.LastQuoteDate = &date
	}
	return response
}

func toTransactionResponse(tx investments.Transaction) transactionResponse {
	return transactionResponse{
		ID:         tx.ID,
		AssetID:    tx.AssetID,
		Date:       tx.Date.Format("2006-01-02"),
		Type:       tx.Type,
		Quantity:   tx.Quantity,
		UnitPrice:  tx.UnitPrice,
		TotalValue: tx.TotalValue,
	}
}
