package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MetricsMiddleware wraps an HTTP handler to record request metrics.
//
// It captures:
//   - zeitgate_requests_total (counter): incremented per request with flow and status class labels
//   - zeitgate_request_duration_seconds (histogram): request duration with flow label
//
// The flow label is derived from the first path segment: the configured
// timegate prefix, the timemap prefix, or "other".
func MetricsMiddleware(gatePrefix, mapPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			flow := "other"
			switch svc, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/"); svc {
			case gatePrefix:
				flow = "timegate"
			case mapPrefix:
				flow = "timemap"
			}

			// Build a status class label like "2xx", "4xx", "5xx".
			statusStr := strconv.Itoa(sw.status/100) + "xx"

			RequestsTotal.WithLabelValues(flow, statusStr).Inc()
			RequestDuration.WithLabelValues(flow).Observe(time.Since(start).Seconds())
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

// WriteHeader captures the status code and delegates to the underlying writer.
func (w *statusWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

// Write delegates to the underlying writer and marks the status as written.
func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter, enabling http.ResponseController
// and similar utilities to access the original writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
