// Package http binds the transport contracts to net/http: request
// parsing, service-prefix routing, response serialization, and server
// lifecycle.
package http

import (
	"net/http"
	"strings"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
	"github.com/zeitgate-dev/zeitgate/pkg/transport"
)

// Config holds configuration for the HTTP adapter.
type Config struct {
	// GatePrefix and MapPrefix are the first path segments selecting the
	// point-lookup and timeline-listing services.
	GatePrefix string
	MapPrefix  string

	// DateFormat is the layout for datetime attributes in timemap bodies.
	DateFormat string
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		GatePrefix: "timegate",
		MapPrefix:  "timemap",
		DateFormat: api.DefaultDateFormat,
	}
}

// Adapter serves the Memento negotiation API over HTTP. Resource URIs are
// embedded verbatim in request paths (slashes included), so the adapter
// dispatches on the first path segment itself instead of using ServeMux
// patterns.
type Adapter struct {
	negotiator transport.Negotiator
	config     Config
}

// NewAdapter creates an HTTP adapter around the given Negotiator.
// Middleware is applied to the Negotiator in the given order.
func NewAdapter(n transport.Negotiator, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if len(middlewares) > 0 {
		n = transport.Chain(middlewares...)(n)
	}
	if cfg.GatePrefix == "" {
		cfg.GatePrefix = "timegate"
	}
	if cfg.MapPrefix == "" {
		cfg.MapPrefix = "timemap"
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = api.DefaultDateFormat
	}
	return &Adapter{negotiator: n, config: cfg}
}

// Handler returns the http.Handler for this adapter, including HTTP-level
// middleware for X-Request-ID propagation.
func (a *Adapter) Handler() http.Handler {
	return httpRequestIDMiddleware(http.HandlerFunc(a.handle))
}

// handle dispatches a request by method and service prefix. Non-GET/HEAD
// methods are rejected before any parsing, routing, or backend access.
func (a *Adapter) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		gateErr := api.NewBadMethodError(r.Method)
		transport.WriteError(w, http.StatusMethodNotAllowed, gateErr.Message)
		return
	}

	service, rest, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	switch service {
	case a.config.GatePrefix:
		a.handleTimeGate(w, r, rest)
	case a.config.MapPrefix:
		a.handleTimeMap(w, r, rest)
	default:
		transport.WriteError(w, http.StatusBadRequest,
			"service "+service+" does not match "+a.config.GatePrefix+" or "+a.config.MapPrefix)
	}
}

// handleTimeGate serves the point lookup flow: redirect to the memento
// closest to the Accept-Datetime instant.
func (a *Adapter) handleTimeGate(w http.ResponseWriter, r *http.Request, resource string) {
	res, err := a.negotiator.NegotiateMemento(r.Context(), &api.GateRequest{
		Resource:       resource,
		AcceptDatetime: r.Header.Get("Accept-Datetime"),
	})
	if err != nil {
		transport.WriteNegotiationError(w, err)
		return
	}
	writeRedirect(w, res)
}

// handleTimeMap serves the timeline listing flow.
func (a *Adapter) handleTimeMap(w http.ResponseWriter, r *http.Request, resource string) {
	res, err := a.negotiator.ListTimeMap(r.Context(), &api.MapRequest{Resource: resource})
	if err != nil {
		transport.WriteNegotiationError(w, err)
		return
	}
	writeTimeMap(w, r, res, a.config.DateFormat)
}

// httpRequestIDMiddleware propagates the X-Request-ID header: an inbound
// value enters the context, and whatever ID the transport-level
// middleware settled on is reflected in the response.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			r = r.WithContext(transport.ContextWithRequestID(r.Context(), id))
		}
		rw := &requestIDResponseWriter{ResponseWriter: w, r: r}
		next.ServeHTTP(rw, r)
	})
}

// requestIDResponseWriter wraps http.ResponseWriter to inject the
// X-Request-ID header before the first write.
type requestIDResponseWriter struct {
	http.ResponseWriter
	r           *http.Request
	headersSent bool
}

func (w *requestIDResponseWriter) WriteHeader(statusCode int) {
	w.ensureRequestIDHeader()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *requestIDResponseWriter) Write(b []byte) (int, error) {
	w.ensureRequestIDHeader()
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for http.NewResponseController.
func (w *requestIDResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *requestIDResponseWriter) ensureRequestIDHeader() {
	if w.headersSent {
		return
	}
	w.headersSent = true
	if id := transport.RequestIDFromContext(w.r.Context()); id != "" {
		w.ResponseWriter.Header().Set("X-Request-ID", id)
	}
}
