package handler

import (
	"errors"
	"net/http"

	"finance-tracker-go/internal/domain/cards"
	"finance-tracker-go/internal/domain/categories"
	"finance-tracker-go/internal/domain/entries"
	"finance-tracker-go/internal/domain/investments"
	"finance-tracker-go/internal/domain/quotes"
	"finance-tracker-go/internal/domain/reports"
	"finance-tracker-go/internal/domain/user"
	"finance-tracker-go/internal/quoteprovider"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// businessErrors are expected outcomes; anything else is answered with 500.
var businessErrors = []errorMapping{
	{entries.ErrInvalidEntry, http.StatusUnprocessableEntity, "validation_failed"},
	{entries.ErrEntryNotFound, http.StatusNotFound, "entry_not_found"},

	{categories.ErrCategoryNotFound, http.StatusNotFound, "category_not_found"},
	{categories.ErrCategoryInUse, http.StatusConflict, "category_in_use"},
	{categories.ErrCategoryNameTaken, http.StatusConflict, "category_name_taken"},
	{categories.ErrInvalidCategoryName, http.StatusUnprocessableEntity, "validation_failed"},
	{categories.ErrInvalidCategoryType, http.StatusUnprocessableEntity, "validation_failed"},
	{categories.ErrCategoryTypeMismatch, http.StatusUnprocessableEntity, "validation_failed"},

	{cards.ErrCardNotFound, http.StatusNotFound, "card_not_found"},
	{cards.ErrInvalidCardName, http.StatusUnprocessableEntity, "validation_failed"},
	{cards.ErrInvalidPurchaseDay, http.StatusUnprocessableEntity, "validation_failed"},

	{investments.ErrAssetNotFound, http.StatusNotFound, "asset_not_found"},
	{investments.ErrTransactionNotFound, http.StatusNotFound, "transaction_not_found"},
	{investments.ErrInvalidAssetName, http.StatusUnprocessableEntity, "validation_failed"},
	{investments.ErrInvalidAssetType, http.StatusUnprocessableEntity, "validation_failed"},
	{investments.ErrInvalidTicker, http.StatusUnprocessableEntity, "validation_failed"},
	{investments.ErrInvalidTransactionType, http.StatusUnprocessableEntity, "validation_failed"},
	{investments.ErrInvalidQuantity, http.StatusUnprocessableEntity, "validation_failed"},
	{investments.ErrInvalidUnitPrice, http.StatusUnprocessableEntity, "validation_failed"},
	{investments.ErrInvalidDate, http.StatusUnprocessableEntity, "validation_failed"},

	{reports.ErrInvalidPeriod, http.StatusBadRequest, "invalid_request"},
	{reports.ErrInvalidKind, http.StatusBadRequest, "invalid_request"},
	{reports.ErrInvalidStatus, http.StatusBadRequest, "invalid_request"},

	{quotes.ErrInvalidTicker, http.StatusBadRequest, "invalid_request"},
	{quoteprovider.ErrQuoteUnavailable, http.StatusBadGateway, "quote_unavailable"},

	{user.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{user.ErrEmailTaken, http.StatusConflict, "email_taken"},
	{user.ErrInvalidEmail, http.StatusUnprocessableEntity, "validation_failed"},
	{user.ErrPasswordTooShort, http.StatusUnprocessableEntity, "validation_failed"},
	{user.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
}

// fail logs err under op and writes the matching error response.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	log := h.log.WithRequestID(r.Context())
	for _, mapping := range businessErrors {
		if errors.Is(err, mapping.target) {
			log.BusinessError(op, err, args...)
			writeError(w, mapping.status, mapping.code, err.Error())
			return
		}
	}

	log.InternalError(op, err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
