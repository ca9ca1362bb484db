package ban

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/appointment-tracker/internal/config"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
)

type recorder struct {
	bans      []notify.BanAlert
	summaries []notify.BanSummary
}

func (r *recorder) LowStock(context.Context, notify.LowStockAlert) error { return nil }
func (r *recorder) LowStockDigest(context.Context, []notify.LowStockAlert) error { return nil }

func (r *recorder) Ban(_ context.Context, a notify.BanAlert) error {
	r.bans = append(r.bans, a)
	return nil
}

func (r *recorder) DailyBanSummary(_ context.Context, s notify.BanSummary) error {
	r.summaries = append(r.summaries, s)
	return nil
}

func newGuard() (*Guard, *MemoryStore, *recorder) {
	store := NewMemoryStore()
	rec := &recorder{}
	cfg := config.RateLimit{MaxStrikes: 3, StrikeWindow: time.Minute, BanDuration: 10 * time.Minute}
	return NewGuard(store, rec, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg), store, rec
}

func TestStrikesLeadToBan(t *testing.T) {
	g, _, rec := newGuard()
	ctx := context.Background()

	assert.False(t, g.Strike(ctx, "1.2.3.4", "/products"))
	assert.False(t, g.Strike(ctx, "1.2.3.4", "/products"))
	assert.Zero(t, g.BannedFor(ctx, "1.2.3.4"))

	assert.True(t, g.Strike(ctx, "1.2.3.4", "/products"))
	assert.Greater(t, g.BannedFor(ctx, "1.2.3.4"), 9*time.Minute)
	assert.Zero(t, g.BannedFor(ctx, "5.6.7.8"))

	require.Len(t, rec.bans, 1)
	assert.Equal(t, "/products", rec.bans[0].Route)
	assert.Equal(t, 3, rec.bans[0].Strikes)
}

func TestStrikeWindowExpires(t *testing.T) {
	g, store, _ := newGuard()
	ctx := context.Background()
	base := time.Now()
	store.now = func() time.Time { return base }

	g.Strike(ctx, "ip", "/")
	g.Strike(ctx, "ip", "/")

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.False(t, g.Strike(ctx, "ip", "/"), "old strikes fall out of the window")
}

func TestBanExpires(t *testing.T) {
	g, store, _ := newGuard()
	ctx := context.Background()
	base := time.Now()
	store.now = func() time.Time { return base }

	for range 3 {
		g.Strike(ctx, "ip", "/")
	}
	assert.NotZero(t, g.BannedFor(ctx, "ip"))

	store.now = func() time.Time { return base.Add(11 * time.Minute) }
	assert.Zero(t, g.BannedFor(ctx, "ip"))
}

func TestDailySummaryDrainsLog(t *testing.T) {
	g, _, rec := newGuard()
	ctx := context.Background()

	require.NoError(t, g.SendDailySummary(ctx))
	assert.Empty(t, rec.summaries, "no summary without bans")

	for range 3 {
		g.Strike(ctx, "a", "/sessions")
	}
	for range 3 {
		g.Strike(ctx, "b", "/sessions")
	}

	require.NoError(t, g.SendDailySummary(ctx))
	require.Len(t, rec.summaries, 1)
	assert.Equal(t, map[string]int{"/sessions": 2}, rec.summaries[0].ByRoute())

	require.NoError(t, g.SendDailySummary(ctx))
	assert.Len(t, rec.summaries, 1)
}
