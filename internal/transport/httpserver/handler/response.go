package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"finance-tracker-go/internal/transport/httpserver/middleware"
	"finance-tracker-go/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeErrorDetails(w http.ResponseWriter, status int, code, message string, details []string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message, Details: details}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(body []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	return dec.Decode(dst)
}

// decodeValidated reads the body, checks it against schema and decodes it into dst.
// It writes the error response itself and reports whether the handler may continue.
func (h *Handlers) decodeValidated(w http.ResponseWriter, r *http.Request, schema validation.Schema, dst interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return false
	}

	if err := h.validator.Validate(schema, body); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			h.log.WithRequestID(r.Context()).BusinessError("request.validate: payload rejected", err, "schema", schema)
			writeErrorDetails(w, http.StatusUnprocessableEntity, "validation_failed", "payload does not match schema", validationErr.Details)
			return false
		}
		h.log.WithRequestID(r.Context()).InternalError("request.validate: validator failed", err, "schema", schema)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return false
	}

	if err := decodeJSON(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return false
	}
	return true
}

func ownerFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return "", false
	}
	return userID, true
}
