package handler

import (
	"errors"
	"net/http"

	"finance-tracker-go/internal/domain/quotes"
	"github.com/go-chi/chi/v5"
)

// RefreshQuotes runs the refresh job for every tracked ticker. Manual runs skip the schedule gate.
func (h *Handlers) RefreshQuotes(w http.ResponseWriter, r *http.Request) {
	if _, ok := ownerFromRequest(w, r); !ok {
		return
	}

	force, err := parseBoolParam(r.URL.Query().Get("force"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid force flag")
		return
	}

	result := h.Quotes.Run(r.Context(), quotes.TriggerManual, force)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}

func (h *Handlers) QuotesStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Quotes.Status())
}

func (h *Handlers) PreviewQuote(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	quote, err := h.Quotes.Preview(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, quotes.ErrInvalidTicker) {
			h.fail(w, r, "quotes.preview: invalid ticker", err, "ticker", ticker)
			return
		}
		h.log.WithRequestID(r.Context()).BusinessError("quotes.preview: fetch failed", err, "ticker", ticker)
		writeError(w, http.StatusBadGateway, "quote_unavailable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

func (h *Handlers) RefreshQuote(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	refresh, err := h.Quotes.RefreshTicker(r.Context(), ticker)
	if err != nil {
		h.fail(w, r, "quotes.refresh_ticker: refresh failed", err, "ticker", ticker)
		return
	}

	writeJSON(w, http.StatusOK, refresh)
}
