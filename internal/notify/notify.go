// Package notify delivers operational alerts: low stock after appointment
// usage, client bans and their daily summary.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type LowStockAlert struct {
	ProductID     int       `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Stock         int       `json:"stock"`
	Threshold     int       `json:"threshold"`
	AppointmentID *int      `json:"appointment_id,omitempty"`
	At            time.Time `json:"at"`
}

type BanAlert struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Until   time.Time `json:"until"`
	At      time.Time `json:"at"`
}

type BanSummary struct {
	Day     time.Time  `json:"day"`
	Entries []BanAlert `json:"entries"`
}

// ByRoute counts bans per route.
func (s BanSummary) ByRoute() map[string]int {
	counts := make(map[string]int)
	for _, e := range s.Entries {
		counts[e.Route]++
	}
	return counts
}

// ByTarget counts bans per client.
func (s BanSummary) ByTarget() map[string]int {
	counts := make(map[string]int)
	for _, e := range s.Entries {
		counts[e.Target]++
	}
	return counts
}

type Notifier interface {
	LowStock(ctx context.Context, alert LowStockAlert) error
	LowStockDigest(ctx context.Context, alerts []LowStockAlert) error
	Ban(ctx context.Context, alert BanAlert) error
	DailyBanSummary(ctx context.Context, summary BanSummary) error
}

// Multi fans every notification out to all notifiers. A failing notifier
// does not stop the others; their errors are joined.
type Multi []Notifier

func (m Multi) each(fn func(Notifier) error) error {
	var errs []error
	for _, n := range m {
		if err := fn(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) LowStock(ctx context.Context, alert LowStockAlert) error {
	return m.each(func(n Notifier) error { return n.LowStock(ctx, alert) })
}

func (m Multi) LowStockDigest(ctx context.Context, alerts []LowStockAlert) error {
	return m.each(func(n Notifier) error { return n.LowStockDigest(ctx, alerts) })
}

func (m Multi) Ban(ctx context.Context, alert BanAlert) error {
	return m.each(func(n Notifier) error { return n.Ban(ctx, alert) })
}

func (m Multi) DailyBanSummary(ctx context.Context, summary BanSummary) error {
	return m.each(func(n Notifier) error { return n.DailyBanSummary(ctx, summary) })
}

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) LowStock(ctx context.Context, a LowStockAlert) error {
	l.logger.WarnContext(ctx, "low stock",
		slog.Int("product_id", a.ProductID),
		slog.String("product", a.ProductName),
		slog.Int("stock", a.Stock),
		slog.Int("threshold", a.Threshold))
	return nil
}

func (l *LogNotifier) LowStockDigest(ctx context.Context, alerts []LowStockAlert) error {
	names := make([]string, 0, len(alerts))
	for _, a := range alerts {
		names = append(names, a.ProductName)
	}
	l.logger.InfoContext(ctx, "low stock digest", slog.Int("count", len(alerts)), slog.Any("products", names))
	return nil
}

func (l *LogNotifier) Ban(ctx context.Context, a BanAlert) error {
	l.logger.WarnContext(ctx, "client banned",
		slog.String("target", a.Target),
		slog.String("route", a.Route),
		slog.Int("strikes", a.Strikes),
		slog.Time("until", a.Until))
	return nil
}

func (l *LogNotifier) DailyBanSummary(ctx context.Context, s BanSummary) error {
	l.logger.InfoContext(ctx, "daily ban summary", slog.Int("total", len(s.Entries)), slog.Any("by_route", s.ByRoute()))
	return nil
}
