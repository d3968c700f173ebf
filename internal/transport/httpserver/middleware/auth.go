package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/pkg/logger"
)

type contextKey int

const userIDKey contextKey = iota

// TokenVerifier resolves a bearer token to the id of the user it was issued to.
type TokenVerifier interface {
	Authenticate(token string) (string, error)
}

type JWTAuth struct {
	verifier   TokenVerifier
	skipAuth   bool
	mockUserID string
	log        logger.Logger
}

func NewJWTAuth(cfg config.AuthConfig, verifier TokenVerifier, log logger.Logger) *JWTAuth {
	return &JWTAuth{
		verifier:   verifier,
		skipAuth:   cfg.SkipAuth,
		mockUserID: strings.TrimSpace(cfg.MockUserID),
		log:        log,
	}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mockUserID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), a.mockUserID)))
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		userID, err := a.verifier.Authenticate(token)
		if err != nil {
			a.log.WithRequestID(r.Context()).BusinessError("auth.verify: token rejected", err, "path", r.URL.Path)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
