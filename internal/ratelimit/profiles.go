package ratelimit

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/credexa/creditline-api/internal/metrics"
)

// Quota is the pair governing one endpoint's throttle: the fixed window
// length and the maximum number of requests admitted inside it.
type Quota struct {
	Window      time.Duration
	MaxRequests int64
}

// Rule binds a quota to the endpoint mounted at Path.
type Rule struct {
	Path  string
	Quota Quota
}

// Profile is one environment's quota table: a default quota plus per-path
// overrides. Profiles are pure data, resolved once at startup and read-only
// afterwards.
type Profile struct {
	Name    string
	Default Quota
	Rules   []Rule
}

// Environment profile names.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

var profiles = map[string]Profile{
	EnvDevelopment: {
		Name:    EnvDevelopment,
		Default: Quota{Window: time.Minute, MaxRequests: 100},
		Rules: []Rule{
			{Path: "/api/credit-lines", Quota: Quota{Window: time.Minute, MaxRequests: 30}},
			{Path: "/api/risk-score", Quota: Quota{Window: time.Minute, MaxRequests: 10}},
		},
	},
	EnvStaging: {
		Name:    EnvStaging,
		Default: Quota{Window: time.Minute, MaxRequests: 60},
		Rules: []Rule{
			{Path: "/api/credit-lines", Quota: Quota{Window: time.Minute, MaxRequests: 20}},
			{Path: "/api/risk-score", Quota: Quota{Window: time.Minute, MaxRequests: 10}},
		},
	},
	EnvProduction: {
		Name:    EnvProduction,
		Default: Quota{Window: time.Minute, MaxRequests: 30},
		Rules: []Rule{
			{Path: "/api/credit-lines", Quota: Quota{Window: time.Minute, MaxRequests: 10}},
			{Path: "/api/risk-score", Quota: Quota{Window: time.Minute, MaxRequests: 5}},
			{Path: "/api/admin", Quota: Quota{Window: time.Minute, MaxRequests: 10}},
		},
	},
}

// ResolveProfile returns the quota table for env. Unrecognized names fall
// back to the development profile so a misconfigured environment variable
// never leaves an instance unthrottled; resolution cannot fail.
func ResolveProfile(env string) Profile {
	if p, ok := profiles[env]; ok {
		return p
	}
	return profiles[EnvDevelopment]
}

// QuotaFor returns the quota for the endpoint mounted at path, or the
// profile default when no rule matches.
func (p Profile) QuotaFor(path string) Quota {
	for _, r := range p.Rules {
		if r.Path == path {
			return r.Quota
		}
	}
	return p.Default
}

// Limiters binds one limiter middleware per mount path to a single shared
// CounterStore, so counters for different paths never interfere (distinct
// keys) while sharing cleanup and lifecycle. The store's lifetime is owned
// by the caller, not by Limiters.
type Limiters struct {
	profile Profile
	store   CounterStore
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewLimiters creates the per-endpoint middleware factory for profile,
// backed by store. logger and collector may be nil.
func NewLimiters(profile Profile, store CounterStore, logger *zap.Logger, collector *metrics.Collector) *Limiters {
	return &Limiters{
		profile: profile,
		store:   store,
		logger:  logger,
		metrics: collector,
	}
}

// For returns the limiter middleware for the endpoint mounted at path,
// using the profile's quota for that path.
func (l *Limiters) For(path string) gin.HandlerFunc {
	return RateLimitWithConfig(Config{
		Store:   l.store,
		Quota:   l.profile.QuotaFor(path),
		KeyFunc: KeyForPath(path),
		Route:   path,
		Logger:  l.logger,
		Metrics: l.metrics,
	})
}
