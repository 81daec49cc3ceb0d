package transport

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
)

// RequestID returns middleware that assigns a unique request ID to each
// request. If the incoming request context already carries a request ID
// (set by the HTTP adapter from the X-Request-ID header), that value is
// used. Otherwise, a new unique ID is generated.
//
// The request ID is stored in the context and can be retrieved with
// RequestIDFromContext.
func RequestID() Middleware {
	return func(next Negotiator) Negotiator {
		return NegotiatorFuncs{
			Gate: func(ctx context.Context, req *api.GateRequest) (*api.GateResult, error) {
				return next.NegotiateMemento(ensureRequestID(ctx), req)
			},
			Map: func(ctx context.Context, req *api.MapRequest) (*api.MapResult, error) {
				return next.ListTimeMap(ensureRequestID(ctx), req)
			},
		}
	}
}

func ensureRequestID(ctx context.Context) context.Context {
	if RequestIDFromContext(ctx) != "" {
		return ctx
	}
	return ContextWithRequestID(ctx, generateRequestID())
}

// generateRequestID creates a new unique request ID as a hex string.
func generateRequestID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
