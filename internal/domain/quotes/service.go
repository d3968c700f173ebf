package quotes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"finance-tracker-go/internal/domain/investments"
	"finance-tracker-go/internal/quoteprovider"
	"finance-tracker-go/pkg/logger"
)

const defaultDelay = time.Second

type Config struct {
	Delay     time.Duration
	AfterHour int
	Location  *time.Location
}

type Service struct {
	repo      Repository
	fetcher   Fetcher
	publisher Publisher
	log       logger.Logger
	gate      Gate
	delay     time.Duration
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error

	mu     sync.Mutex
	status Status
}

func NewService(repo Repository, fetcher Fetcher, publisher Publisher, log logger.Logger, cfg Config) *Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = defaultDelay
	}

	return &Service{
		repo:      repo,
		fetcher:   fetcher,
		publisher: publisher,
		log:       log,
		gate:      Gate{Location: cfg.Location, AfterHour: cfg.AfterHour},
		delay:     delay,
		now:       time.Now,
		sleep:     sleepContext,
		status:    Status{State: StateIdle},
	}
}

// Run refreshes every tracked ticker. Scheduled runs outside the gate window are skipped
// unless force is set. Per-ticker failures are counted and never abort the run.
func (s *Service) Run(ctx context.Context, trigger Trigger, force bool) RunResult {
	started := s.now()

	if trigger == TriggerSchedule && !force {
		if allowed, reason := s.gate.Allow(started); !allowed {
			result := RunResult{
				Success:   true,
				Skipped:   true,
				Reason:    reason,
				Trigger:   trigger,
				Timestamp: started.UTC(),
			}
			s.log.Debug("quotes.run: skipped", "reason", reason)
			s.record(result, StateIdle)
			return result
		}
	}

	s.begin(started)
	log := s.log.With("trigger", trigger)

	tickers, err := s.repo.ListTickers(ctx, investments.QuotedTypes)
	if err != nil {
		log.InternalError("quotes.run: list tickers failed", err)
		result := RunResult{
			Success:    false,
			Message:    fmt.Sprintf("list tickers: %v", err),
			Trigger:    trigger,
			DurationMS: s.now().Sub(started).Milliseconds(),
			Timestamp:  s.now().UTC(),
		}
		s.record(result, StateFailed)
		s.publish(ctx, EventRunCompleted, result)
		return result
	}

	result := RunResult{Success: true, Trigger: trigger, Total: len(tickers)}
	quoteDate := s.today()

	for i, ticker := range tickers {
		if _, err := s.refresh(ctx, ticker, quoteDate); err != nil {
			result.Failed++
		} else {
			result.Updated++
		}

		if i == len(tickers)-1 {
			break
		}
		if err := s.sleep(ctx, s.delay); err != nil {
			remaining := len(tickers) - i - 1
			result.Failed += remaining
			result.Message = fmt.Sprintf("run interrupted: %v", err)
			log.Warn("quotes.run: interrupted", "remaining", remaining, "err", err)
			break
		}
	}

	if result.Message == "" {
		result.Message = fmt.Sprintf("updated %d of %d tickers", result.Updated, result.Total)
	}
	result.DurationMS = s.now().Sub(started).Milliseconds()
	result.Timestamp = s.now().UTC()

	log.Info("quotes.run: completed", "total", result.Total, "updated", result.Updated, "failed", result.Failed, "duration_ms", result.DurationMS)
	s.record(result, StateCompleted)
	s.publish(ctx, EventRunCompleted, result)
	return result
}

// RefreshTicker fetches one ticker and writes it back to every active asset carrying it.
func (s *Service) RefreshTicker(ctx context.Context, ticker string) (TickerRefresh, error) {
	normalized, ok := investments.NormalizeTicker(ticker)
	if !ok {
		return TickerRefresh{}, ErrInvalidTicker
	}
	return s.refresh(ctx, normalized, s.today())
}

// Preview fetches a live quote without touching stored assets.
func (s *Service) Preview(ctx context.Context, ticker string) (quoteprovider.Quote, error) {
	normalized, ok := investments.NormalizeTicker(ticker)
	if !ok {
		return quoteprovider.Quote{}, ErrInvalidTicker
	}
	return s.fetcher.Fetch(ctx, normalized)
}

func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.status
	if status.LastRun != nil {
		last := *status.LastRun
		status.LastRun = &last
	}
	return status
}

func (s *Service) refresh(ctx context.Context, ticker string, quoteDate time.Time) (TickerRefresh, error) {
	quote, err := s.fetcher.Fetch(ctx, ticker)
	if err != nil {
		s.log.BusinessError("quotes.refresh: fetch failed", err, "ticker", ticker)
		return TickerRefresh{}, err
	}

	updated, err := s.repo.ApplyQuote(ctx, ticker, quote, quoteDate, s.now().UTC())
	if err != nil {
		s.log.InternalError("quotes.refresh: write-back failed", err, "ticker", ticker)
		return TickerRefresh{}, err
	}
	if updated == 0 {
		s.log.Warn("quotes.refresh: no active asset matched ticker", "ticker", ticker)
	}

	refresh := TickerRefresh{
		Quote:         quote,
		AssetsUpdated: updated,
		QuoteDate:     quoteDate.Format("2006-01-02"),
	}
	if updated > 0 {
		s.publish(ctx, EventQuoteRefreshed, QuoteRefreshedEvent{
			Ticker:         ticker,
			Price:          quote.Price,
			PercentChange:  quote.PercentChange,
			AbsoluteChange: quote.AbsoluteChange,
			QuoteDate:      refresh.QuoteDate,
			AssetsUpdated:  updated,
		})
	}
	return refresh, nil
}

func (s *Service) publish(ctx context.Context, eventType string, payload any) {
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.log.InternalError("quotes.publish: event not sent", err, "type", eventType)
	}
}

// today is the calendar date in the gate's location.
func (s *Service) today() time.Time {
	location := s.gate.Location
	if location == nil {
		location = time.Local
	}
	year, month, day := s.now().In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (s *Service) begin(started time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.State = StateRunning
	s.status.StartedAt = &started
}

func (s *Service) record(result RunResult, state RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.State = state
	s.status.LastRun = &result
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
