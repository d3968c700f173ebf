package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/pkg/logger"
)

type stubVerifier struct {
	tokens map[string]string
}

func (v stubVerifier) Authenticate(token string) (string, error) {
	userID, ok := v.tokens[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return userID, nil
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(userID))
	})
}

func TestJWTAuthAcceptsValidBearer(t *testing.T) {
	auth := NewJWTAuth(config.AuthConfig{}, stubVerifier{tokens: map[string]string{"good": "user-1"}}, logger.Discard())
	handler := auth.Middleware(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "bearer good")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "user-1" {
		t.Fatalf("expected user-1 in context, got %q", rec.Body.String())
	}
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	auth := NewJWTAuth(config.AuthConfig{}, stubVerifier{tokens: map[string]string{"good": "user-1"}}, logger.Discard())
	handler := auth.Middleware(echoUserID())

	for _, header := range []string{"", "Bearer", "Basic good", "Bearer bad"} {
		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"invalid_token"`) {
			t.Fatalf("header %q: expected invalid_token code, got %s", header, rec.Body.String())
		}
	}
}

func TestJWTAuthSkipUsesMockUser(t *testing.T) {
	auth := NewJWTAuth(config.AuthConfig{SkipAuth: true, MockUserID: "mock-user"}, stubVerifier{}, logger.Discard())
	rec := httptest.NewRecorder()
	auth.Middleware(echoUserID()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Body.String() != "mock-user" {
		t.Fatalf("expected mock user, got %q", rec.Body.String())
	}

	unconfigured := NewJWTAuth(config.AuthConfig{SkipAuth: true}, stubVerifier{}, logger.Discard())
	rec = httptest.NewRecorder()
	unconfigured.Middleware(echoUserID()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without mock user id, got %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	handler := NewCORS([]string{"http://localhost:5173/"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/expenses", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("expected origin echoed, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("expected foreign origin not allowed")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request to pass through, got %d", rec.Code)
	}
}
