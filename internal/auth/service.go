// Package auth signs employees in with a short-lived JWT access token and a
// rotating refresh token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/appointment-tracker/internal/metrics"
	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Employee     models.Employee
	Role         string
}

type Service struct {
	store      repo.Store
	issuer     *Issuer
	tokens     TokenStore
	refreshTTL time.Duration
	logger     *slog.Logger
}

func NewService(store repo.Store, issuer *Issuer, tokens TokenStore, refreshTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		issuer:     issuer,
		tokens:     tokens,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

func (s *Service) Issuer() *Issuer {
	return s.issuer
}

func (s *Service) Tokens() TokenStore {
	return s.tokens
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login checks the credentials of an active employee and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	e, err := s.store.Employees().GetByEmail(ctx, strings.TrimSpace(email))
	switch {
	case errors.Is(err, repo.ErrEmployeeNotFound):
		metrics.Login(false)
		return Session{}, ErrInvalidCredentials
	case err != nil:
		return Session{}, err
	}
	if !e.Active || !CheckPassword(e.PasswordHash, password) {
		metrics.Login(false)
		s.logger.WarnContext(ctx, "login rejected", slog.Int("employee_id", e.ID))
		return Session{}, ErrInvalidCredentials
	}

	sess, err := s.open(ctx, e)
	if err != nil {
		return Session{}, err
	}
	metrics.Login(true)
	s.logger.InfoContext(ctx, "employee logged in", slog.Int("employee_id", e.ID))
	return sess, nil
}

// Refresh exchanges a refresh token for a new token pair. The old refresh
// token stops working.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	id, err := s.tokens.Consume(ctx, refreshToken)
	if errors.Is(err, ErrUnknownRefreshToken) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}

	e, err := s.store.Employees().GetByID(ctx, id)
	if errors.Is(err, repo.ErrEmployeeNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if !e.Active {
		return Session{}, ErrInvalidCredentials
	}
	return s.open(ctx, e)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *Service) open(ctx context.Context, e models.Employee) (Session, error) {
	role, err := s.store.Roles().GetByID(ctx, e.RoleID)
	if err != nil {
		return Session{}, fmt.Errorf("load role of employee %d: %w", e.ID, err)
	}

	access, exp, err := s.issuer.Issue(e, role.Name)
	if err != nil {
		return Session{}, err
	}
	refresh := uuid.NewString()
	if err := s.tokens.Save(ctx, refresh, e.ID, s.refreshTTL); err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
		Employee:     e,
		Role:         role.Name,
	}, nil
}
