// Package ratelimit implements the request throttling core of the service:
// a fixed-window, per-client, per-endpoint limiter with a pluggable counter
// store and a fail-open error policy.
//
// # Design
//
// Each (client, endpoint) pair is tracked under one key. The first request
// for a key opens a window of the configured length; every request inside
// the window increments the key's counter; the request that pushes the
// counter past the quota is rejected with 429. Windows are fixed, not
// sliding: once a window expires the counter restarts at 1.
//
// # Storage
//
// Counter state lives behind the CounterStore interface. MemoryStore is the
// reference single-process implementation; RedisStore distributes the
// counters across instances. A store error is never surfaced to the client:
// the middleware admits the request and logs the fault (fail open).
//
// # Usage
//
//	store := ratelimit.NewMemoryStore()
//	defer store.Close()
//
//	limiters := ratelimit.NewLimiters(ratelimit.ResolveProfile("production"), store, logger, nil)
//	r.Group("/api/credit-lines", limiters.For("/api/credit-lines"))
package ratelimit

import (
	"context"
	"time"
)

// CounterStore holds one counter per key together with the absolute time at
// which the counter's window ends. Implementations must be safe for
// concurrent use; Increment must be atomic per key so that racing callers
// observe strictly increasing counts.
//
// An entry is live iff now < resetAt. Liveness is always decided by that
// time check, never by physical presence, so Increment and Get stay correct
// even if Cleanup never runs.
type CounterStore interface {
	// Increment adds one request to the counter for key. If no live entry
	// exists it creates one with count 1 and resetAt = now + window; the
	// window length of an existing entry is fixed at creation and is not
	// extended by later calls.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)

	// Get returns the current count for key. ok is false when the key was
	// never seen or its window has expired, whether or not the expired
	// entry has been physically removed.
	Get(ctx context.Context, key string) (count int64, ok bool, err error)

	// Reset removes any entry for key. Missing keys are not an error.
	Reset(ctx context.Context, key string) error

	// Cleanup removes every expired entry and returns how many were
	// removed. It exists purely to bound memory.
	Cleanup(ctx context.Context) (removed int, err error)
}
