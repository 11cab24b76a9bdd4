// Package metrics provides Prometheus instrumentation for the rate-limit
// subsystem.
//
// Metrics are partitioned by the route the limiter is mounted on. Decision
// counts carry an additional "decision" label (admitted / rejected); store
// faults are counted separately because a fault produces no decision — the
// request is admitted without touching a counter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Decision label values.
const (
	DecisionAdmitted = "admitted"
	DecisionRejected = "rejected"
)

// Collector holds the Prometheus metric vectors for limiter instrumentation.
type Collector struct {
	decisions   *prometheus.CounterVec
	storeFaults *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

type collectorConfig struct {
	namespace string
	registry  prometheus.Registerer
	buckets   []float64
}

// CollectorOption configures a Collector.
type CollectorOption func(*collectorConfig)

// WithNamespace sets the Prometheus metric namespace (prefix).
func WithNamespace(ns string) CollectorOption {
	return func(c *collectorConfig) { c.namespace = ns }
}

// WithRegistry registers metrics with the given Registerer instead of
// prometheus.DefaultRegisterer.
func WithRegistry(r prometheus.Registerer) CollectorOption {
	return func(c *collectorConfig) { c.registry = r }
}

// WithBuckets sets custom histogram buckets for store check duration.
func WithBuckets(b []float64) CollectorOption {
	return func(c *collectorConfig) { c.buckets = b }
}

var defaultBuckets = []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1}

// NewCollector creates a Collector and registers its metrics.
//
// Metrics registered:
//   - {namespace}_ratelimit_decisions_total      counter   (route, decision)
//   - {namespace}_ratelimit_store_faults_total   counter   (route)
//   - {namespace}_ratelimit_check_duration_seconds  histogram (route)
//
// Default namespace is "creditline".
func NewCollector(opts ...CollectorOption) *Collector {
	cfg := &collectorConfig{
		namespace: "creditline",
		registry:  prometheus.DefaultRegisterer,
		buckets:   defaultBuckets,
	}
	for _, o := range opts {
		o(cfg)
	}

	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.namespace,
		Subsystem: "ratelimit",
		Name:      "decisions_total",
		Help:      "Total limiter decisions partitioned by route and decision.",
	}, []string{"route", "decision"})

	storeFaults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.namespace,
		Subsystem: "ratelimit",
		Name:      "store_faults_total",
		Help:      "Total counter store errors that caused a fail-open admission.",
	}, []string{"route"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.namespace,
		Subsystem: "ratelimit",
		Name:      "check_duration_seconds",
		Help:      "Latency of counter store increments in seconds.",
		Buckets:   cfg.buckets,
	}, []string{"route"})

	cfg.registry.MustRegister(decisions, storeFaults, duration)

	return &Collector{
		decisions:   decisions,
		storeFaults: storeFaults,
		duration:    duration,
	}
}

// Decision records one limiter decision for route.
func (c *Collector) Decision(route, decision string) {
	c.decisions.WithLabelValues(route, decision).Inc()
}

// StoreFault records one fail-open admission for route.
func (c *Collector) StoreFault(route string) {
	c.storeFaults.WithLabelValues(route).Inc()
}

// ObserveCheck records the duration of one counter store increment.
func (c *Collector) ObserveCheck(route string, d time.Duration) {
	c.duration.WithLabelValues(route).Observe(d.Seconds())
}
