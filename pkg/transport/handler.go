package transport

import (
	"context"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
)

// Negotiator handles the two negotiation flows. It is implemented by the
// engine and consumed by the HTTP adapter; middleware wraps it to add
// cross-cutting behavior.
type Negotiator interface {
	// NegotiateMemento performs a point lookup: the best memento of the
	// requested resource near the requested time.
	NegotiateMemento(ctx context.Context, req *api.GateRequest) (*api.GateResult, error)

	// ListTimeMap lists every known memento of the requested resource.
	ListTimeMap(ctx context.Context, req *api.MapRequest) (*api.MapResult, error)
}

// NegotiatorFuncs is an adapter that allows using plain functions as a
// Negotiator; middleware uses it to wrap both flows uniformly.
type NegotiatorFuncs struct {
	Gate func(ctx context.Context, req *api.GateRequest) (*api.GateResult, error)
	Map  func(ctx context.Context, req *api.MapRequest) (*api.MapResult, error)
}

// NegotiateMemento calls f.Gate.
func (f NegotiatorFuncs) NegotiateMemento(ctx context.Context, req *api.GateRequest) (*api.GateResult, error) {
	return f.Gate(ctx, req)
}

// ListTimeMap calls f.Map.
func (f NegotiatorFuncs) ListTimeMap(ctx context.Context, req *api.MapRequest) (*api.MapResult, error) {
	return f.Map(ctx, req)
}

// Middleware wraps a Negotiator to add cross-cutting behavior.
// Middleware is applied in order: the first middleware in the chain is
// the outermost wrapper (executes first on the way in, last on the way out).
type Middleware func(Negotiator) Negotiator

// Chain composes multiple middleware into a single middleware.
// Middleware are applied in order: Chain(a, b, c) produces a(b(c(handler))).
func Chain(middlewares ...Middleware) Middleware {
	return func(next Negotiator) Negotiator {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// requestIDKeyType is the context key type for request IDs.
type requestIDKeyType struct{}

// requestIDKey is the context key for storing and retrieving request IDs.
var requestIDKey = requestIDKeyType{}

// RequestIDFromContext extracts the request ID from the context.
// Returns an empty string if no request ID is set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}
