package quoteprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"finance-tracker-go/internal/config"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

var ErrQuoteUnavailable = errors.New("no quote available")

type Quote struct {
	Symbol         string          `json:"symbol"`
	ShortName      string          `json:"short_name,omitempty"`
	Currency       string          `json:"currency,omitempty"`
	Price          decimal.Decimal `json:"price"`
	PercentChange  decimal.Decimal `json:"percent_change"`
	AbsoluteChange decimal.Decimal `json:"absolute_change"`
}

type quoteResponse struct {
	Results []struct {
		Symbol                     string           `json:"symbol"`
		ShortName                  string           `json:"shortName"`
		Currency                   string           `json:"currency"`
		RegularMarketPrice         *decimal.Decimal `json:"regularMarketPrice"`
		RegularMarketChangePercent *decimal.Decimal `json:"regularMarketChangePercent"`
		RegularMarketChange        *decimal.Decimal `json:"regularMarketChange"`
	} `json:"results"`
}

// Client fetches one ticker per request from the quote provider. It never retries.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func New(cfg config.QuotesConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Fetch(ctx context.Context, ticker string) (Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Quote{}, fmt.Errorf("%w: empty ticker", ErrQuoteUnavailable)
	}

	endpoint := c.baseURL + "/quote/" + url.PathEscape(ticker)
	if c.token != "" {
		endpoint += "?" + url.Values{"token": {c.token}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("fetch quote %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%w: %s returned status %d", ErrQuoteUnavailable, ticker, resp.StatusCode)
	}

	var payload quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("decode quote %s: %w", ticker, err)
	}

	if len(payload.Results) == 0 || payload.Results[0].RegularMarketPrice == nil {
		return Quote{}, fmt.Errorf("%w: %s", ErrQuoteUnavailable, ticker)
	}

	result := payload.Results[0]
	quote := Quote{
		Symbol:         ticker,
		ShortName:      result.ShortName,
		Currency:       result.Currency,
		Price:          *result.RegularMarketPrice,
		PercentChange:  decimal.Zero,
		AbsoluteChange: decimal.Zero,
	}
	if result.Symbol != "" {
		quote.Symbol = strings.ToUpper(result.Symbol)
	}
	if result.RegularMarketChangePercent != nil {
		quote.PercentChange = *result.RegularMarketChangePercent
	}
	if result.RegularMarketChange != nil {
		quote.AbsoluteChange = *result.RegularMarketChange
	}
	return quote, nil
}
