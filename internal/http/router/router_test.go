package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
	"github.com/rogerio-castellano/appointment-tracker/internal/booking"
	"github.com/rogerio-castellano/appointment-tracker/internal/config"
	"github.com/rogerio-castellano/appointment-tracker/internal/http/ban"
	"github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/appointment-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
	"github.com/rogerio-castellano/appointment-tracker/internal/validator"
)

func newTestRouter(trustProxy bool) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repo.NewMemoryStore()
	issuer := auth.NewIssuer("test-secret", time.Minute)
	limits := config.RateLimit{
		RPS:          0.001,
		Burst:        1,
		VisitorTTL:   time.Minute,
		MaxStrikes:   100,
		StrikeWindow: time.Minute,
		BanDuration:  time.Minute,
	}

	srv := handlers.NewServer(store,
		booking.NewService(store, notify.Multi{}, logger),
		auth.NewService(store, issuer, auth.NewMemoryTokenStore(), time.Hour, logger),
		validator.MustNew(), logger)
	return NewRouter(Deps{
		Server:     srv,
		Issuer:     issuer,
		Limiter:    rl.New(limits),
		Guard:      ban.NewGuard(ban.NewMemoryStore(), notify.Multi{}, logger, limits),
		Logger:     logger,
		TrustProxy: trustProxy,
	})
}

func login(r http.Handler, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{}`))
	req.RemoteAddr = "10.0.0.1:4000"
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestForwardedForIgnoredByDefault(t *testing.T) {
	r := newTestRouter(false)

	assert.NotEqual(t, http.StatusTooManyRequests, login(r, "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, login(r, "203.0.113.2"), "a new X-Forwarded-For must not reset the limit")
}

func TestForwardedForHonouredBehindTrustedProxy(t *testing.T) {
	r := newTestRouter(true)

	assert.NotEqual(t, http.StatusTooManyRequests, login(r, "203.0.113.1"))
	assert.NotEqual(t, http.StatusTooManyRequests, login(r, "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, login(r, "203.0.113.1"))
}
