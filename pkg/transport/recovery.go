package transport

import (
	"context"
	"fmt"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
)

// Recovery returns middleware that catches panics in either flow and
// converts them to errors. The server continues to accept new requests
// after a panic is recovered; the adapter maps the error to a 500.
func Recovery() Middleware {
	return func(next Negotiator) Negotiator {
		return NegotiatorFuncs{
			Gate: func(ctx context.Context, req *api.GateRequest) (res *api.GateResult, retErr error) {
				defer func() {
					if r := recover(); r != nil {
						res, retErr = nil, fmt.Errorf("internal error: %v", r)
					}
				}()
				return next.NegotiateMemento(ctx, req)
			},
			Map: func(ctx context.Context, req *api.MapRequest) (res *api.MapResult, retErr error) {
				defer func() {
					if r := recover(); r != nil {
						res, retErr = nil, fmt.Errorf("internal error: %v", r)
					}
				}()
				return next.ListTimeMap(ctx, req)
			},
		}
	}
}
