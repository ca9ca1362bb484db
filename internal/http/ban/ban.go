// Package ban turns repeated rate-limit violations into temporary bans and
// reports them.
package ban

import (
	"context"
	"log/slog"
	"time"

	"github.com/rogerio-castellano/appointment-tracker/internal/config"
	"github.com/rogerio-castellano/appointment-tracker/internal/metrics"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
)

type Guard struct {
	store    Store
	notifier notify.Notifier
	logger   *slog.Logger

	maxStrikes int
	window     time.Duration
	duration   time.Duration
	now        func() time.Time
}

func NewGuard(store Store, notifier notify.Notifier, logger *slog.Logger, cfg config.RateLimit) *Guard {
	return &Guard{
		store:      store,
		notifier:   notifier,
		logger:     logger,
		maxStrikes: cfg.MaxStrikes,
		window:     cfg.StrikeWindow,
		duration:   cfg.BanDuration,
		now:        time.Now,
	}
}

// BannedFor returns how long target stays banned. Store failures let the
// request through.
func (g *Guard) BannedFor(ctx context.Context, target string) time.Duration {
	left, err := g.store.BannedFor(ctx, target)
	if err != nil {
		g.logger.ErrorContext(ctx, "ban lookup failed", slog.String("target", target), slog.Any("error", err))
		return 0
	}
	return left
}

// Strike records a rate-limit violation by target on route and bans the
// target once it reaches the strike limit. It reports whether a ban started.
func (g *Guard) Strike(ctx context.Context, target, route string) bool {
	strikes, err := g.store.Strike(ctx, target, g.window)
	if err != nil {
		g.logger.ErrorContext(ctx, "strike count failed", slog.String("target", target), slog.Any("error", err))
		return false
	}
	if strikes < g.maxStrikes {
		return false
	}

	if err := g.store.Ban(ctx, target, g.duration); err != nil {
		g.logger.ErrorContext(ctx, "ban failed", slog.String("target", target), slog.Any("error", err))
		return false
	}

	now := g.now().UTC()
	alert := notify.BanAlert{
		Target:  target,
		Route:   route,
		Strikes: strikes,
		Until:   now.Add(g.duration),
		At:      now,
	}
	metrics.ClientBanned()
	g.logger.WarnContext(ctx, "client banned",
		slog.String("target", target),
		slog.String("route", route),
		slog.Int("strikes", strikes),
		slog.Time("until", alert.Until))

	if err := g.store.Record(ctx, alert); err != nil {
		g.logger.ErrorContext(ctx, "ban log failed", slog.Any("error", err))
	}
	if err := g.notifier.Ban(ctx, alert); err != nil {
		g.logger.ErrorContext(ctx, "ban alert failed", slog.Any("error", err))
	}
	return true
}

// SendDailySummary reports the bans recorded since the previous summary.
// Nothing is sent when there were none.
func (g *Guard) SendDailySummary(ctx context.Context) error {
	entries, err := g.store.Drain(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	summary := notify.BanSummary{Day: g.now().UTC().Truncate(24 * time.Hour), Entries: entries}
	if err := g.notifier.DailyBanSummary(ctx, summary); err != nil {
		return err
	}
	g.logger.InfoContext(ctx, "daily ban summary sent", slog.Int("bans", len(entries)))
	return nil
}
