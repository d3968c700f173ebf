package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"finance-tracker-go/internal/domain/entries"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handlers) ReportsMonthly(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	period, err := parsePeriod(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	overview, err := h.Reports.Overview(r.Context(), ownerID, period)
	if err != nil {
		h.fail(w, r, "reports.monthly: overview failed", err, "user_id", ownerID, "period", period.String())
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

func (h *Handlers) ReportsTotals(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	kind, ok := parseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown report kind")
		return
	}
	period, err := parsePeriod(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	totals, err := h.Reports.Totals(r.Context(), kind, ownerID, period)
	if err != nil {
		h.fail(w, r, "reports.totals: totals failed", err, "user_id", ownerID, "kind", kind)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

func (h *Handlers) ReportsByCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	kind, ok := parseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown report kind")
		return
	}
	query := r.URL.Query()
	period, err := parsePeriod(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	rows, err := h.Reports.ByCategory(r.Context(), kind, ownerID, period, entries.Status(strings.TrimSpace(query.Get("status"))))
	if err != nil {
		h.fail(w, r, "reports.by_category: aggregate failed", err, "user_id", ownerID, "kind", kind)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// ReportsExport renders the workbook into memory first so failures still produce a JSON error.
func (h *Handlers) ReportsExport(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	period, err := parsePeriod(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.Reports.WriteExport(r.Context(), ownerID, period, &buf); err != nil {
		h.fail(w, r, "reports.export: export failed", err, "user_id", ownerID, "period", period.String())
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="finance-%s.xlsx"`, period.String()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
