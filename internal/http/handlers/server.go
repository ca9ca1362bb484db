package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
	"github.com/rogerio-castellano/appointment-tracker/internal/booking"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
	"github.com/rogerio-castellano/appointment-tracker/internal/validator"
)

// Server holds what the handlers need. Every handler is a method on it.
type Server struct {
	store     repo.Store
	booking   *booking.Service
	auth      *auth.Service
	validator validator.Validator
	logger    *slog.Logger

	// defaultThreshold applies to products created without a low-stock threshold.
	defaultThreshold int
	// checks are run by HealthHandler in addition to the store ping.
	checks map[string]func(context.Context) error
}

type Option func(*Server)

func WithDefaultThreshold(n int) Option {
	return func(s *Server) { s.defaultThreshold = n }
}

// WithHealthCheck adds a named dependency check to /healthz.
func WithHealthCheck(name string, check func(context.Context) error) Option {
	return func(s *Server) { s.checks[name] = check }
}

func NewServer(store repo.Store, bookingSvc *booking.Service, authSvc *auth.Service, v validator.Validator, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		store:            store,
		booking:          bookingSvc,
		auth:             authSvc,
		validator:        v,
		logger:           logger,
		defaultThreshold: 5,
		checks:           map[string]func(context.Context) error{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Checks: map[string]string{"database": "ok"}}
	status := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		resp.Checks["database"] = err.Error()
		resp.Status, status = "unavailable", http.StatusServiceUnavailable
	}
	for name, check := range s.checks {
		resp.Checks[name] = "ok"
		if err := check(r.Context()); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status, status = "unavailable", http.StatusServiceUnavailable
		}
	}

	s.writeJSON(w, r, status, resp)
}
