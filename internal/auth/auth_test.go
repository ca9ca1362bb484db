package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/appointment-tracker/internal/models"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
)

func newTestService(t *testing.T) (*Service, models.Employee) {
	t.Helper()
	ctx := context.Background()
	store := repo.NewMemoryStore()

	role, err := store.Roles().Create(ctx, models.Role{Name: models.AdminRole})
	require.NoError(t, err)
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	e, err := store.Employees().Create(ctx, models.Employee{
		FirstName:    "Ana",
		LastName:     "Diaz",
		Email:        "ana@example.com",
		PasswordHash: hash,
		RoleID:       role.ID,
		Active:       true,
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store, NewIssuer("test-secret", 15*time.Minute), NewMemoryTokenStore(), time.Hour, logger)
	return svc, e
}

func TestIssuerRoundTrip(t *testing.T) {
	issuer := NewIssuer("k", time.Minute)
	token, exp, err := issuer.Issue(models.Employee{ID: 7, Email: "x@example.com"}, "stylist")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.EmployeeID())
	assert.Equal(t, "x@example.com", claims.Email)
	assert.False(t, claims.IsAdmin())
}

func TestIssuerRejectsBadTokens(t *testing.T) {
	issuer := NewIssuer("k", time.Minute)
	token, _, err := issuer.Issue(models.Employee{ID: 7}, "admin")
	require.NoError(t, err)

	_, err = NewIssuer("other", time.Minute).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "7"}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewIssuer("k", time.Minute).Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin(t *testing.T) {
	svc, e := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)
	assert.Equal(t, e.ID, sess.Employee.ID)
	assert.Equal(t, models.AdminRole, sess.Role)

	claims, err := svc.Issuer().Parse(sess.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveEmployee(t *testing.T) {
	svc, e := newTestService(t)
	ctx := context.Background()

	e.Active = false
	_, err := svc.store.Employees().Update(ctx, e)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, sess.RefreshToken, next.RefreshToken)

	_, err = svc.Refresh(ctx, sess.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "a refresh token is single use")

	require.NoError(t, svc.Logout(ctx, next.RefreshToken))
	_, err = svc.Refresh(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMemoryTokenStoreSweep(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()
	base := time.Now()
	store.now = func() time.Time { return base }

	require.NoError(t, store.Save(ctx, "short", 1, time.Minute))
	require.NoError(t, store.Save(ctx, "long", 1, time.Hour))

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	removed, err := store.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Consume(ctx, "short")
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)
	id, err := store.Consume(ctx, "long")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}
