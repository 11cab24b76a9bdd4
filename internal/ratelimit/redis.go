package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// defaultKeyPrefix is prepended to every Redis key so limiter state never
// collides with other users of the same database.
const defaultKeyPrefix = "ratelimit:"

// RedisStore implements CounterStore backed by Redis, for deployments where
// quota state must be shared across instances. It wraps
// redis.UniversalClient, so standalone Redis, Redis Cluster, and Redis
// Sentinel all work.
//
// Errors from Redis are returned to the caller; the limiter middleware
// treats them as a skip signal and fails open.
type RedisStore struct {
	client goredis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the prefix prepended to all Redis keys.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// NewRedisStore creates a Redis-backed CounterStore from any UniversalClient.
func NewRedisStore(client goredis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	k := s.key(key)

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit: redis incr: %w", err)
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("ratelimit: redis pexpire: %w", err)
		}
		return count, time.Now().Add(window), nil
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit: redis pttl: %w", err)
	}
	if ttl <= 0 {
		// The key lost its expiry (e.g. the PExpire of the creating call
		// was interrupted). Restart the window rather than leak a counter
		// that never resets.
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("ratelimit: redis pexpire: %w", err)
		}
		ttl = window
	}
	return count, time.Now().Add(ttl), nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (int64, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("ratelimit: redis get: %w", err)
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("ratelimit: redis value %q is not a counter: %w", val, err)
	}
	return count, true, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis del: %w", err)
	}
	return nil
}

// Cleanup is a no-op for Redis: expiry is native, so there is nothing to
// sweep.
func (s *RedisStore) Cleanup(context.Context) (int, error) {
	return 0, nil
}

// Close releases the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Compile-time interface verification.
var _ CounterStore = (*RedisStore)(nil)
