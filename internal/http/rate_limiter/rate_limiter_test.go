package rate_limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rogerio-castellano/appointment-tracker/internal/config"
)

func TestAllowHonoursBurst(t *testing.T) {
	l := New(config.RateLimit{RPS: 1, Burst: 3, VisitorTTL: time.Minute})
	base := time.Now()
	l.now = func() time.Time { return base }

	for i := range 3 {
		assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "clients have separate buckets")

	l.now = func() time.Time { return base.Add(time.Second) }
	assert.True(t, l.Allow("10.0.0.1"))
}

func TestCleanupRemovesIdleVisitors(t *testing.T) {
	l := New(config.RateLimit{RPS: 1, Burst: 1, VisitorTTL: time.Minute})
	base := time.Now()
	l.now = func() time.Time { return base }
	l.Allow("a")

	l.now = func() time.Time { return base.Add(30 * time.Second) }
	l.Allow("b")

	l.now = func() time.Time { return base.Add(75 * time.Second) }
	assert.Equal(t, 1, l.Cleanup())
	assert.Equal(t, 1, l.Len())

	l.Reset()
	assert.Zero(t, l.Len())
}
