package ban

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
)

// Store persists strike counters, active bans and the log of bans waiting for
// the daily summary.
type Store interface {
	// Strike adds one strike for target and returns the count within window.
	Strike(ctx context.Context, target string, window time.Duration) (int, error)
	Ban(ctx context.Context, target string, d time.Duration) error
	// BannedFor returns the remaining ban time, zero when target is not banned.
	BannedFor(ctx context.Context, target string) (time.Duration, error)
	Record(ctx context.Context, entry notify.BanAlert) error
	// Drain returns the recorded bans and clears the log.
	Drain(ctx context.Context) ([]notify.BanAlert, error)
}

const (
	strikeKeyPrefix = "ratelimit:strikes:"
	banKeyPrefix    = "ratelimit:ban:"
	DailyBanLogKey  = "ratelimit:banlog:daily"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Strike(ctx context.Context, target string, window time.Duration) (int, error) {
	key := strikeKeyPrefix + target
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("count strike: %w", err)
	}
	return int(incr.Val()), nil
}

func (s *RedisStore) Ban(ctx context.Context, target string, d time.Duration) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, banKeyPrefix+target, 1, d)
	pipe.Del(ctx, strikeKeyPrefix+target)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) BannedFor(ctx context.Context, target string) (time.Duration, error) {
	ttl, err := s.rdb.PTTL(ctx, banKeyPrefix+target).Result()
	if err != nil {
		return 0, err
	}
	// Negative values mean the key is missing or has no expiry.
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (s *RedisStore) Record(ctx context.Context, entry notify.BanAlert) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, DailyBanLogKey, data).Err()
}

func (s *RedisStore) Drain(ctx context.Context) ([]notify.BanAlert, error) {
	pipe := s.rdb.TxPipeline()
	lrange := pipe.LRange(ctx, DailyBanLogKey, 0, -1)
	pipe.Del(ctx, DailyBanLogKey)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("drain ban log: %w", err)
	}

	var entries []notify.BanAlert
	for _, item := range lrange.Val() {
		var entry notify.BanAlert
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type strikeCount struct {
	count   int
	expires time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	strikes map[string]strikeCount
	bans    map[string]time.Time
	log     []notify.BanAlert
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strikes: make(map[string]strikeCount),
		bans:    make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Strike(_ context.Context, target string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	c := s.strikes[target]
	if !now.Before(c.expires) {
		c = strikeCount{expires: now.Add(window)}
	}
	c.count++
	s.strikes[target] = c
	return c.count, nil
}

func (s *MemoryStore) Ban(_ context.Context, target string, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[target] = s.now().Add(d)
	delete(s.strikes, target)
	return nil
}

func (s *MemoryStore) BannedFor(_ context.Context, target string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.bans[target]
	if !ok {
		return 0, nil
	}
	left := until.Sub(s.now())
	if left <= 0 {
		delete(s.bans, target)
		return 0, nil
	}
	return left, nil
}

func (s *MemoryStore) Record(_ context.Context, entry notify.BanAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, entry)
	return nil
}

func (s *MemoryStore) Drain(context.Context) ([]notify.BanAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.log
	s.log = nil
	return entries, nil
}

// Reset clears every strike, ban and log entry.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strikes = make(map[string]strikeCount)
	s.bans = make(map[string]time.Time)
	s.log = nil
}
