package ratelimit_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/credexa/creditline-api/internal/ratelimit"
)

func newTestRedisStore(t *testing.T) *ratelimit.RedisStore {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return ratelimit.NewRedisStore(client, ratelimit.WithKeyPrefix("test:ratelimit:"))
}

func TestRedisStore_IncrementAndGet(t *testing.T) {
	s := newTestRedisStore(t)
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	key := fmt.Sprintf("k-%d", time.Now().UnixNano())
	defer func() { _ = s.Reset(ctx, key) }()

	count, resetAt, err := s.Increment(ctx, key, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("first increment: count = %d, want 1", count)
	}
	if !resetAt.After(time.Now()) {
		t.Errorf("resetAt %v should be in the future", resetAt)
	}

	count, _, err = s.Increment(ctx, key, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("second increment: count = %d, want 2", count)
	}

	got, ok, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || got != 2 {
		t.Errorf("Get = (%d, %v), want (2, true)", got, ok)
	}
}

func TestRedisStore_ExpiryAndReset(t *testing.T) {
	s := newTestRedisStore(t)
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	key := fmt.Sprintf("exp-%d", time.Now().UnixNano())

	if _, _, err := s.Increment(ctx, key, 50*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(80 * time.Millisecond)

	if _, ok, _ := s.Get(ctx, key); ok {
		t.Error("key should have expired")
	}

	count, _, err := s.Increment(ctx, key, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("post-expiry count = %d, want 1", count)
	}

	if err := s.Reset(ctx, key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, key); ok {
		t.Error("key should be absent after Reset")
	}

	if err := s.Reset(ctx, "never-existed"); err != nil {
		t.Errorf("Reset of missing key should be silent, got %v", err)
	}
}

func TestRedisStore_CleanupIsNoop(t *testing.T) {
	s := newTestRedisStore(t)
	defer func() { _ = s.Close() }()

	removed, err := s.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 {
		t.Errorf("Cleanup = %d, want 0 (native expiry)", removed)
	}
}
