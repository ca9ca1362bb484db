package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

type recorder struct {
	notify.LogNotifier
	digests [][]notify.LowStockAlert
}

func (r *recorder) LowStockDigest(_ context.Context, alerts []notify.LowStockAlert) error {
	r.digests = append(r.digests, alerts)
	return nil
}

type summarizer struct{ calls int }

func (s *summarizer) SendDailySummary(context.Context) error {
	s.calls++
	return errors.New("smtp down")
}

func newScheduler(t *testing.T) (*Scheduler, repo.Store, *recorder, auth.TokenStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repo.NewMemoryStore()
	rec := &recorder{LogNotifier: *notify.NewLogNotifier(logger)}
	tokens := auth.NewMemoryTokenStore()

	s, err := New(&summarizer{}, tokens, store.Products(), rec, logger)
	require.NoError(t, err)
	return s, store, rec, tokens
}

func TestNewRegistersJobs(t *testing.T) {
	s, _, _, _ := newScheduler(t)
	assert.Equal(t, 3, s.Entries())

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestLowStockDigest(t *testing.T) {
	ctx := context.Background()
	s, store, rec, _ := newScheduler(t)

	require.NoError(t, s.LowStockDigest(ctx))
	assert.Empty(t, rec.digests, "no digest without products")

	cat, err := store.Categories().Create(ctx, models.Category{Name: "Hair"})
	require.NoError(t, err)
	for _, p := range []models.Product{
		{Name: "Shampoo", Stock: 2, LowStockThreshold: 5, CategoryID: cat.ID, Active: true},
		{Name: "Gel", Stock: 40, LowStockThreshold: 5, CategoryID: cat.ID, Active: true},
		{Name: "Wax", Stock: 0, LowStockThreshold: 5, CategoryID: cat.ID, Active: false},
	} {
		_, err := store.Products().Create(ctx, p)
		require.NoError(t, err)
	}

	require.NoError(t, s.LowStockDigest(ctx))
	require.Len(t, rec.digests, 1)
	require.Len(t, rec.digests[0], 1)
	assert.Equal(t, "Shampoo", rec.digests[0][0].ProductName)
	assert.Equal(t, 2, rec.digests[0][0].Stock)
	assert.Nil(t, rec.digests[0][0].AppointmentID)
}

func TestSweepTokens(t *testing.T) {
	ctx := context.Background()
	s, _, _, tokens := newScheduler(t)

	require.NoError(t, tokens.Save(ctx, "old", 1, time.Nanosecond))
	require.NoError(t, tokens.Save(ctx, "fresh", 1, time.Hour))
	time.Sleep(time.Millisecond)

	require.NoError(t, s.SweepTokens(ctx))
	_, err := tokens.Consume(ctx, "fresh")
	assert.NoError(t, err)
	_, err = tokens.Consume(ctx, "old")
	assert.ErrorIs(t, err, auth.ErrUnknownRefreshToken)
}

func TestWrapSwallowsErrors(t *testing.T) {
	s, _, _, _ := newScheduler(t)
	sum := &summarizer{}
	assert.NotPanics(t, s.wrap("ban_summary", sum.SendDailySummary))
	assert.Equal(t, 1, sum.calls)
}
