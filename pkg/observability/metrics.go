// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the zeitgate gateway.
package observability

import "github.com/prometheus/client_golang/prometheus"

// FetchBuckets defines histogram buckets suited for archive backend
// latencies, ranging from 5ms (cache-adjacent answers) to 60s (slow or
// rate-limited archive APIs).
var FetchBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

var (
	// RequestsTotal counts negotiation requests by flow and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zeitgate_requests_total",
			Help: "Total negotiation requests",
		},
		[]string{"flow", "status"},
	)

	// RequestDuration records request duration in seconds by flow.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zeitgate_request_duration_seconds",
			Help:    "Request duration",
			Buckets: FetchBuckets,
		},
		[]string{"flow"},
	)

	// CacheRequestsTotal counts negotiation cache lookups by operation
	// (get_all, get_until) and outcome (hit, miss, bypass).
	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zeitgate_cache_requests_total",
			Help: "Negotiation cache lookups",
		},
		[]string{"op", "outcome"},
	)

	// SharedFetchesTotal counts waiters that attached to an already
	// in-flight timemap fetch instead of issuing their own.
	SharedFetchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zeitgate_shared_fetches_total",
			Help: "Waiters served by a shared in-flight fetch",
		},
	)

	// ProviderFetchesTotal counts timemap fetches sent to archive
	// backends by provider and outcome.
	ProviderFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zeitgate_provider_fetches_total",
			Help: "Provider fetches",
		},
		[]string{"provider", "status"},
	)

	// ProviderFetchDuration records archive backend fetch latency in
	// seconds by provider.
	ProviderFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zeitgate_provider_fetch_duration_seconds",
			Help:    "Provider fetch latency",
			Buckets: FetchBuckets,
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		CacheRequestsTotal,
		SharedFetchesTotal,
		ProviderFetchesTotal,
		ProviderFetchDuration,
	)
}
