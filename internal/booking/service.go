// Package booking holds the appointment rules: employee availability, the
// stock an appointment holds while confirmed or completed, and the alerts
// raised when that stock runs low.
package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/metrics"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

const alertTimeout = 30 * time.Second

type Service struct {
	store    repo.Store
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time

	wg sync.WaitGroup
}

type Option func(*Service)

// WithClock replaces time.Now, used for the past-date rule.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store repo.Store, notifier notify.Notifier, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wait blocks until every pending alert dispatch has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// dispatch sends low-stock alerts in the background. It must only be called
// once the transaction that produced them has committed.
func (s *Service) dispatch(ctx context.Context, alerts []notify.LowStockAlert) {
	if len(alerts) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, alertTimeout)
		defer cancel()

		for _, a := range alerts {
			metrics.LowStockAlert()
			if err := s.notifier.LowStock(ctx, a); err != nil {
				s.logger.ErrorContext(ctx, "low stock alert failed", slog.String("product", a.ProductName), slog.Any("error", err))
			}
		}
	}()
}
