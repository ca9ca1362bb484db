// Package jobs runs the periodic housekeeping tasks of the server.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

const (
	BanSummarySpec     = "59 23 * * *"
	TokenSweepSpec     = "@every 30m"
	LowStockDigestSpec = "0 8 * * *"

	jobTimeout = time.Minute
)

type BanSummarizer interface {
	SendDailySummary(ctx context.Context) error
}

type Scheduler struct {
	cron     *cron.Cron
	bans     BanSummarizer
	tokens   auth.TokenStore
	products repo.ProductRepository
	notifier notify.Notifier
	logger   *slog.Logger
}

func New(bans BanSummarizer, tokens auth.TokenStore, products repo.ProductRepository, notifier notify.Notifier, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		bans:     bans,
		tokens:   tokens,
		products: products,
		notifier: notifier,
		logger:   logger,
	}

	jobs := []struct {
		spec, name string
		fn         func(context.Context) error
	}{
		{BanSummarySpec, "ban_summary", s.bans.SendDailySummary},
		{TokenSweepSpec, "refresh_token_sweep", s.SweepTokens},
		{LowStockDigestSpec, "low_stock_digest", s.LowStockDigest},
	}
	for _, j := range jobs {
		if _, err := s.cron.AddFunc(j.spec, s.wrap(j.name, j.fn)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) wrap(name string, fn func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.logger.ErrorContext(ctx, "job failed", slog.String("job", name), slog.Any("error", err))
			return
		}
		s.logger.DebugContext(ctx, "job done", slog.String("job", name), slog.Duration("took", time.Since(start)))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) SweepTokens(ctx context.Context) error {
	n, err := s.tokens.Sweep(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired refresh tokens removed", slog.Int("count", n))
	}
	return nil
}

// LowStockDigest sends one notification listing every active product at or
// below its threshold. Nothing is sent when all stock is healthy.
func (s *Scheduler) LowStockDigest(ctx context.Context) error {
	products, err := s.products.LowStock(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}

	now := time.Now().UTC()
	alerts := make([]notify.LowStockAlert, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, notify.LowStockAlert{
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
			Threshold:   p.LowStockThreshold,
			At:          now,
		})
	}
	return s.notifier.LowStockDigest(ctx, alerts)
}
