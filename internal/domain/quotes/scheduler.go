package quotes

import (
	"context"
	"time"

	"finance-tracker-go/pkg/logger"
)

type Scheduler struct {
	service  *Service
	interval time.Duration
	log      logger.Logger
}

func NewScheduler(service *Service, interval time.Duration, log logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{service: service, interval: interval, log: log}
}

// Run triggers a gated refresh once at startup and then every interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("quotes.scheduler: started", "interval", s.interval.String())
	s.service.Run(ctx, TriggerSchedule, false)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("quotes.scheduler: stopped")
			return nil
		case <-ticker.C:
			s.service.Run(ctx, TriggerSchedule, false)
		}
	}
}
