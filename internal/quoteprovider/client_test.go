package quoteprovider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-tracker-go/internal/config"
	"github.com/shopspring/decimal"
)

func TestFetchParsesQuote(t *testing.T) {
	var gotPath, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"symbol":"PETR4","shortName":"PETROBRAS PN","currency":"BRL","regularMarketPrice":38.45,"regularMarketChangePercent":-1.23,"regularMarketChange":-0.48,"regularMarketTime":"2024-05-17T20:07:00.000Z"}]}`))
	}))
	defer server.Close()

	client := New(config.QuotesConfig{BaseURL: server.URL + "/", Token: "secret"})
	quote, err := client.Fetch(context.Background(), "petr4")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotPath != "/quote/PETR4" {
		t.Fatalf("expected /quote/PETR4, got %s", gotPath)
	}
	if gotToken != "secret" {
		t.Fatalf("expected token forwarded, got %q", gotToken)
	}
	if !quote.Price.Equal(decimal.RequireFromString("38.45")) {
		t.Fatalf("expected price 38.45, got %s", quote.Price)
	}
	if !quote.PercentChange.Equal(decimal.RequireFromString("-1.23")) || !quote.AbsoluteChange.Equal(decimal.RequireFromString("-0.48")) {
		t.Fatalf("unexpected changes %s %s", quote.PercentChange, quote.AbsoluteChange)
	}
	if quote.Symbol != "PETR4" || quote.Currency != "BRL" {
		t.Fatalf("unexpected quote %+v", quote)
	}
}

func TestFetchUnavailable(t *testing.T) {
	cases := map[string]func(w http.ResponseWriter){
		"not found": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusNotFound)
		},
		"empty results": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(`{"results":[]}`))
		},
		"missing price": func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(`{"results":[{"symbol":"XXXX3"}]}`))
		},
	}

	for name, respond := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				respond(w)
			}))
			defer server.Close()

			_, err := New(config.QuotesConfig{BaseURL: server.URL}).Fetch(context.Background(), "XXXX3")
			if !errors.Is(err, ErrQuoteUnavailable) {
				t.Fatalf("expected ErrQuoteUnavailable, got %v", err)
			}
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := New(config.QuotesConfig{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	if _, err := client.Fetch(context.Background(), "VALE3"); err == nil {
		t.Fatalf("expected timeout error")
	}
}
