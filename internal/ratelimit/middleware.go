package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/credexa/creditline-api/internal/metrics"
)

// rejectedMessage is the error string clients see in the 429 body.
const rejectedMessage = "Rate limit exceeded"

// Config holds the limiter middleware configuration.
type Config struct {
	// Store is the shared counter backend (required).
	Store CounterStore

	// Quota is the window length and request ceiling enforced by this
	// middleware instance (required).
	Quota Quota

	// KeyFunc derives the throttling key from the request (required).
	KeyFunc KeyFunc

	// Route labels log lines and metrics; usually the mount path.
	// Default: "default".
	Route string

	// Logger receives store-fault warnings. Default: no-op logger.
	Logger *zap.Logger

	// Metrics records decisions and store faults when non-nil.
	Metrics *metrics.Collector
}

// RateLimit creates limiter middleware for the endpoint mounted at path,
// keyed by client IP and path.
func RateLimit(store CounterStore, quota Quota, path string) gin.HandlerFunc {
	return RateLimitWithConfig(Config{
		Store:   store,
		Quota:   quota,
		KeyFunc: KeyForPath(path),
		Route:   path,
	})
}

// RateLimitWithConfig creates limiter middleware with full configuration
// control.
//
// Every request walks Start → Keyed → Decided → {Admitted | Rejected}: the
// key is derived, the shared counter is incremented, and the count is
// compared to the quota. The request that pushes the count to exactly
// MaxRequests is the last one admitted; the next is the first rejected. A
// store error is a skip signal, not a quota condition: the request is
// admitted without headers, because an unavailable throttle must not become
// an outage.
func RateLimitWithConfig(cfg Config) gin.HandlerFunc {
	if cfg.Store == nil {
		panic("ratelimit: Store is required")
	}
	if cfg.KeyFunc == nil {
		panic("ratelimit: KeyFunc is required")
	}
	if cfg.Quota.Window <= 0 || cfg.Quota.MaxRequests <= 0 {
		panic("ratelimit: Quota window and max requests must be positive")
	}
	if cfg.Route == "" {
		cfg.Route = "default"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := cfg.KeyFunc(c)

		start := time.Now()
		count, resetAt, err := cfg.Store.Increment(c.Request.Context(), key, cfg.Quota.Window)
		if cfg.Metrics != nil {
			cfg.Metrics.ObserveCheck(cfg.Route, time.Since(start))
		}
		if err != nil {
			cfg.Logger.Warn("rate limit store unavailable, admitting request",
				zap.String("route", cfg.Route),
				zap.String("key", key),
				zap.Error(err))
			if cfg.Metrics != nil {
				cfg.Metrics.StoreFault(cfg.Route)
			}
			c.Next()
			return
		}

		remaining := cfg.Quota.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(cfg.Quota.MaxRequests, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > cfg.Quota.MaxRequests {
			retryAfter := retryAfterSeconds(resetAt)
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			if cfg.Metrics != nil {
				cfg.Metrics.Decision(cfg.Route, metrics.DecisionRejected)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      rejectedMessage,
				"retryAfter": retryAfter,
				"limit":      cfg.Quota.MaxRequests,
			})
			return
		}

		if cfg.Metrics != nil {
			cfg.Metrics.Decision(cfg.Route, metrics.DecisionAdmitted)
		}
		c.Next()
	}
}

// retryAfterSeconds returns ceil(resetAt - now) in whole seconds, never
// below 1: Retry-After of 0 would invite an immediate retry against a
// still-live window.
func retryAfterSeconds(resetAt time.Time) int64 {
	until := time.Until(resetAt)
	if until <= 0 {
		return 1
	}
	secs := int64((until + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
