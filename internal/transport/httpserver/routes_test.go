package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/internal/domain/cards"
	"finance-tracker-go/internal/domain/categories"
	"finance-tracker-go/internal/domain/entries"
	"finance-tracker-go/internal/domain/investments"
	"finance-tracker-go/internal/domain/quotes"
	"finance-tracker-go/internal/quoteprovider"
	"finance-tracker-go/internal/transport/httpserver/handler"
	"finance-tracker-go/internal/validation"
	"finance-tracker-go/pkg/logger"
)

const (
	testOwnerID    = "11111111-1111-1111-1111-111111111111"
	testCategoryID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
)

type memoryEntriesRepo struct {
	rows map[string]entries.Entry
}

func (r *memoryEntriesRepo) Transaction(ctx context.Context, fn func(entries.Repository) error) error {
	return fn(r)
}

func (r *memoryEntriesRepo) ListEntries(ctx context.Context, kind entries.Kind, ownerID string, filter entries.ListFilter) ([]entries.Entry, error) {
	var items []entries.Entry
	for _, row := range r.rows {
		if row.Kind == kind && row.OwnerID == ownerID {
			items = append(items, row)
		}
	}
	return items, nil
}

func (r *memoryEntriesRepo) GetEntryByID(ctx context.Context, kind entries.Kind, ownerID, entryID string) (*entries.Entry, error) {
	row, ok := r.rows[entryID]
	if !ok || row.Kind != kind || row.OwnerID != ownerID {
		return nil, entries.ErrEntryNotFound
	}
	return &row, nil
}

func (r *memoryEntriesRepo) CreateEntry(ctx context.Context, kind entries.Kind, entry *entries.Entry) error {
	r.rows[entry.ID] = *entry
	return nil
}

func (r *memoryEntriesRepo) UpdateEntry(ctx context.Context, kind entries.Kind, entry *entries.Entry) error {
	r.rows[entry.ID] = *entry
	return nil
}

func (r *memoryEntriesRepo) DeleteEntry(ctx context.Context, kind entries.Kind, ownerID, entryID string) (bool, error) {
	if _, ok := r.rows[entryID]; !ok {
		return false, nil
	}
	delete(r.rows, entryID)
	return true, nil
}

func (r *memoryEntriesRepo) ListGroup(ctx context.Context, kind entries.Kind, ownerID string, selector entries.GroupSelector) ([]entries.Entry, error) {
	return nil, nil
}

func (r *memoryEntriesRepo) UpdateGroup(ctx context.Context, kind entries.Kind, ownerID string, selector entries.GroupSelector, status entries.Status, fields map[string]any) (int64, error) {
	return 0, nil
}

type stubCategories struct{}

func (stubCategories) Resolve(ctx context.Context, ownerID string, categoryType categories.Type, categoryID, name string) (*categories.Category, error) {
	if categoryID != testCategoryID && !strings.EqualFold(name, "Electronics") {
		return nil, categories.ErrCategoryNotFound
	}
	return &categories.Category{ID: testCategoryID, OwnerID: ownerID, Name: "Electronics", Type: categoryType, Active: true}, nil
}

type stubCards struct{}

func (stubCards) GetCard(ctx context.Context, ownerID, cardID string) (*cards.Card, error) {
	return nil, cards.ErrCardNotFound
}

type stubQuotesRepo struct{}

func (stubQuotesRepo) ListTickers(ctx context.Context, types []investments.AssetType) ([]string, error) {
	return nil, nil
}

func (stubQuotesRepo) ApplyQuote(ctx context.Context, ticker string, quote quoteprovider.Quote, quoteDate, updatedAt time.Time) (int64, error) {
	return 0, nil
}

type stubFetcher struct{}

func (stubFetcher) Fetch(ctx context.Context, ticker string) (quoteprovider.Quote, error) {
	return quoteprovider.Quote{}, quoteprovider.ErrQuoteUnavailable
}

type stubVerifier struct{}

func (stubVerifier) Authenticate(token string) (string, error) {
	if token == "valid" {
		return testOwnerID, nil
	}
	return "", errors.New("bad token")
}

func newTestRouter(t *testing.T, skipAuth bool) (http.Handler, *memoryEntriesRepo) {
	t.Helper()

	repo := &memoryEntriesRepo{rows: make(map[string]entries.Entry)}
	handlers := handler.New(handler.Services{
		Entries: entries.NewService(repo, stubCategories{}, stubCards{}),
		Quotes:  quotes.NewService(stubQuotesRepo{}, stubFetcher{}, nil, logger.Discard(), quotes.Config{}),
	}, validation.MustNew(), logger.Discard())

	cfg := config.Config{
		AllowedOrigins: []string{"http://localhost:5173"},
		Auth:           config.AuthConfig{SkipAuth: skipAuth, MockUserID: testOwnerID},
	}
	return NewRouter(cfg, handlers, stubVerifier{}, logger.Discard()), repo
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type errorPayload struct {
	Error struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var payload errorPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected json error body, got %q", rec.Body.String())
	}
	return payload
}

func TestHealthIsPublic(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rec := doRequest(router, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rec := doRequest(router, http.MethodGet, "/api/expenses", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateInstallmentExpense(t *testing.T) {
	router, repo := newTestRouter(t, true)

	body := `{"description":"Laptop","amount":1200,"category":"Electronics","effective_date":"2024-01-31","recurrence_mode":"installment","installment_count":3}`
	rec := doRequest(router, http.MethodPost, "/api/expenses", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Items []struct {
			Description      string  `json:"description"`
			Status           string  `json:"status"`
			EffectiveDate    string  `json:"effective_date"`
			InstallmentIndex int     `json:"installment_index"`
			GroupID          *string `json:"group_id"`
			CategoryName     string  `json:"category_name"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected json body, got %v", err)
	}
	if len(payload.Items) != 3 || len(repo.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d (stored %d)", len(payload.Items), len(repo.rows))
	}

	wantDates := []string{"2024-01-31", "2024-02-29", "2024-03-31"}
	for i, item := range payload.Items {
		if item.EffectiveDate != wantDates[i] {
			t.Fatalf("row %d: expected %s, got %s", i, wantDates[i], item.EffectiveDate)
		}
		if item.InstallmentIndex != i+1 || item.GroupID == nil {
			t.Fatalf("row %d: unexpected recurrence fields %+v", i, item)
		}
		if item.Status != "open" || item.CategoryName != "Electronics" {
			t.Fatalf("row %d: expected open Electronics row, got %+v", i, item)
		}
	}
	if payload.Items[2].Description != "Laptop (3/3)" {
		t.Fatalf("expected suffixed description, got %q", payload.Items[2].Description)
	}
}

func TestCreateExpenseRejectsInvalidPayload(t *testing.T) {
	router, repo := newTestRouter(t, true)

	rec := doRequest(router, http.MethodPost, "/api/expenses", `{"description":"Laptop","amount":-5,"category":"Electronics","effective_date":"2024-01-31"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	payload := decodeError(t, rec)
	if payload.Error.Code != "validation_failed" || len(payload.Error.Details) == 0 {
		t.Fatalf("expected validation details, got %+v", payload.Error)
	}

	rec = doRequest(router, http.MethodPost, "/api/expenses", `{"description":`)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Error.Code != "invalid_json" {
		t.Fatalf("expected 400 invalid_json, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodPost, "/api/incomes", `{"description":"Salary","amount":10,"category":"Unknown","effective_date":"2024-01-31"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected unknown category rejected with 422, got %d", rec.Code)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("expected nothing stored, got %d rows", len(repo.rows))
	}
}

func TestEntryNotFoundAndStatusToggle(t *testing.T) {
	router, repo := newTestRouter(t, true)

	rec := doRequest(router, http.MethodGet, "/api/incomes/not-a-uuid", "")
	if rec.Code != http.StatusNotFound || decodeError(t, rec).Error.Code != "entry_not_found" {
		t.Fatalf("expected 404 entry_not_found, got %d %s", rec.Code, rec.Body.String())
	}

	created := doRequest(router, http.MethodPost, "/api/expenses", `{"description":"Groceries","amount":80.5,"category_id":"`+testCategoryID+`","effective_date":"2024-02-10"}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", created.Code, created.Body.String())
	}
	var id string
	for key := range repo.rows {
		id = key
	}

	rec = doRequest(router, http.MethodPatch, "/api/expenses/"+id+"/status", `{"status":"paid"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.rows[id].Status != entries.StatusPaid {
		t.Fatalf("expected paid, got %s", repo.rows[id].Status)
	}

	rec = doRequest(router, http.MethodPatch, "/api/expenses/"+id+"/status", `{"status":"received"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected received rejected for expense, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodDelete, "/api/expenses/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestQuotesEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, true)

	rec := doRequest(router, http.MethodGet, "/api/quotes/status", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"state":"idle"`) {
		t.Fatalf("expected idle status, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodPost, "/api/quotes/refresh", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total":0`) {
		t.Fatalf("expected empty run, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodGet, "/api/quotes/PETR4", "")
	if rec.Code != http.StatusBadGateway || decodeError(t, rec).Error.Code != "quote_unavailable" {
		t.Fatalf("expected 502 quote_unavailable, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodGet, "/api/quotes/PET!R4", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid ticker, got %d", rec.Code)
	}
}
