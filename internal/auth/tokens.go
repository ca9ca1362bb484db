package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrUnknownRefreshToken = errors.New("unknown refresh token")

// TokenStore keeps refresh tokens. Consume is single use: a token that has
// been consumed, revoked or has expired is unknown afterwards.
type TokenStore interface {
	Save(ctx context.Context, token string, employeeID int, ttl time.Duration) error
	Consume(ctx context.Context, token string) (int, error)
	Revoke(ctx context.Context, token string) error
	// Sweep drops expired tokens and returns how many were removed.
	Sweep(ctx context.Context) (int, error)
}

const refreshKeyPrefix = "auth:refresh:"

type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, employeeID int, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshKeyPrefix+token, employeeID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Consume(ctx context.Context, token string) (int, error) {
	val, err := s.rdb.GetDel(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrUnknownRefreshToken
	}
	if err != nil {
		return 0, fmt.Errorf("consume refresh token: %w", err)
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token entry: %w", err)
	}
	return id, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+token).Err()
}

// Sweep is a no-op: Redis expires the keys itself.
func (s *RedisTokenStore) Sweep(context.Context) (int, error) {
	return 0, nil
}

type memoryToken struct {
	employeeID int
	expires    time.Time
}

type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
	now    func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]memoryToken), now: time.Now}
}

func (s *MemoryTokenStore) Save(_ context.Context, token string, employeeID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryToken{employeeID: employeeID, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Consume(_ context.Context, token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	delete(s.tokens, token)
	if !ok || !s.now().Before(t.expires) {
		return 0, ErrUnknownRefreshToken
	}
	return t.employeeID, nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *MemoryTokenStore) Sweep(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for token, t := range s.tokens {
		if !now.Before(t.expires) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed, nil
}
