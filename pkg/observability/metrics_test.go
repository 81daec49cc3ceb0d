package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestMetricsRegistered verifies that all metrics are registered in the
// default registry and appear after being seeded with one observation.
func TestMetricsRegistered(t *testing.T) {
	expected := map[string]bool{
		"zeitgate_requests_total":                  false,
		"zeitgate_request_duration_seconds":        false,
		"zeitgate_cache_requests_total":            false,
		"zeitgate_shared_fetches_total":            false,
		"zeitgate_provider_fetches_total":          false,
		"zeitgate_provider_fetch_duration_seconds": false,
	}

	// Vectors only appear after the first observation, so seed them all.
	RequestsTotal.WithLabelValues("timegate", "2xx").Inc()
	RequestDuration.WithLabelValues("timegate").Observe(0.01)
	CacheRequestsTotal.WithLabelValues("get_all", "hit").Inc()
	SharedFetchesTotal.Inc()
	ProviderFetchesTotal.WithLabelValues("fixture", "ok").Inc()
	ProviderFetchDuration.WithLabelValues("fixture").Observe(0.01)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}
	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}
	for name, seen := range expected {
		if !seen {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func TestMetricsMiddleware_LabelsFlowAndStatus(t *testing.T) {
	handler := MetricsMiddleware("timegate", "timemap")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusFound)
		}))

	before := counterValue(t, "zeitgate_requests_total", map[string]string{
		"flow": "timegate", "status": "3xx",
	})

	req := httptest.NewRequest(http.MethodGet, "/timegate/http://example.com", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	after := counterValue(t, "zeitgate_requests_total", map[string]string{
		"flow": "timegate", "status": "3xx",
	})
	if after != before+1 {
		t.Errorf("counter went %v -> %v, want +1", before, after)
	}
}

// counterValue reads a labeled counter from the default gatherer; absent
// series count as zero.
func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(m *dto.Metric, labels map[string]string) bool {
	got := map[string]string{}
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
