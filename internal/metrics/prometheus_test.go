package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/credexa/creditline-api/internal/metrics"
)

func TestCollector_Decisions(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(metrics.WithRegistry(reg))

	c.Decision("/api/credit-lines", metrics.DecisionAdmitted)
	c.Decision("/api/credit-lines", metrics.DecisionAdmitted)
	c.Decision("/api/credit-lines", metrics.DecisionRejected)

	assertCounter(t, reg, "creditline_ratelimit_decisions_total", map[string]string{
		"route": "/api/credit-lines", "decision": "admitted",
	}, 2)
	assertCounter(t, reg, "creditline_ratelimit_decisions_total", map[string]string{
		"route": "/api/credit-lines", "decision": "rejected",
	}, 1)
}

func TestCollector_StoreFaults(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(metrics.WithRegistry(reg))

	c.StoreFault("/api/risk-score")

	assertCounter(t, reg, "creditline_ratelimit_store_faults_total", map[string]string{
		"route": "/api/risk-score",
	}, 1)
}

func TestCollector_ObserveCheck(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(metrics.WithRegistry(reg))

	c.ObserveCheck("/api/credit-lines", 2*time.Millisecond)
	c.ObserveCheck("/api/credit-lines", 5*time.Millisecond)

	assertHistogramCount(t, reg, "creditline_ratelimit_check_duration_seconds", map[string]string{
		"route": "/api/credit-lines",
	}, 2)
}

func TestCollector_CustomNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(
		metrics.WithRegistry(reg),
		metrics.WithNamespace("myapp"),
		metrics.WithBuckets([]float64{.001, .01, .1}),
	)

	c.Decision("/x", metrics.DecisionAdmitted)

	assertCounter(t, reg, "myapp_ratelimit_decisions_total", map[string]string{
		"route": "/x", "decision": "admitted",
	}, 1)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func assertCounter(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string, want float64) {
	t.Helper()
	val := gatherMetricValue(t, reg, name, labels, func(m *dto.Metric) float64 {
		return m.GetCounter().GetValue()
	})
	if val != want {
		t.Errorf("%s%v = %v, want %v", name, labels, val, want)
	}
}

func assertHistogramCount(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string, want uint64) {
	t.Helper()
	val := gatherMetricValue(t, reg, name, labels, func(m *dto.Metric) float64 {
		return float64(m.GetHistogram().GetSampleCount())
	})
	if uint64(val) != want {
		t.Errorf("%s%v sample_count = %v, want %v", name, labels, uint64(val), want)
	}
}

func gatherMetricValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string, extract func(*dto.Metric) float64) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labels) {
				return extract(m)
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func matchLabels(m *dto.Metric, labels map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range labels {
		if got[k] != v {
			return false
		}
	}
	return true
}
