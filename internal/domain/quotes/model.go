package quotes

import (
	"time"

	"finance-tracker-go/internal/quoteprovider"
	"github.com/shopspring/decimal"
)

const (
	EventQuoteRefreshed = "quote.refreshed"
	EventRunCompleted   = "quote.run_completed"
)

type Trigger string

const (
	TriggerSchedule Trigger = "schedule"
	TriggerManual   Trigger = "manual"
)

type RunState string

const (
	StateIdle      RunState = "idle"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateFailed    RunState = "failed"
)

type RunResult struct {
	Success    bool      `json:"success"`
	Skipped    bool      `json:"skipped"`
	Reason     string    `json:"reason,omitempty"`
	Message    string    `json:"message,omitempty"`
	Trigger    Trigger   `json:"trigger"`
	Total      int       `json:"total"`
	Updated    int       `json:"updated"`
	Failed     int       `json:"failed"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

type Status struct {
	State     RunState   `json:"state"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	LastRun   *RunResult `json:"last_run,omitempty"`
}

type TickerRefresh struct {
	Quote         quoteprovider.Quote `json:"quote"`
	AssetsUpdated int64               `json:"assets_updated"`
	QuoteDate     string              `json:"quote_date"`
}

type QuoteRefreshedEvent struct {
	Ticker         string          `json:"ticker"`
	Price          decimal.Decimal `json:"price"`
	PercentChange  decimal.Decimal `json:"percent_change"`
	AbsoluteChange decimal.Decimal `json:"absolute_change"`
	QuoteDate      string          `json:"quote_date"`
	AssetsUpdated  int64           `json:"assets_updated"`
}
