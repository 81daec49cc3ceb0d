package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
)

// Logging returns middleware that emits one structured log entry per
// negotiation. Entries carry the flow, request ID (from context), raw
// resource path, duration, and the outcome; point lookups additionally
// log the chosen memento URI.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Negotiator) Negotiator {
		return NegotiatorFuncs{
			Gate: func(ctx context.Context, req *api.GateRequest) (*api.GateResult, error) {
				start := time.Now()
				res, err := next.NegotiateMemento(ctx, req)

				attrs := []slog.Attr{
					slog.String("flow", "timegate"),
					slog.String("request_id", RequestIDFromContext(ctx)),
					slog.String("resource", req.Resource),
					slog.String("accept_datetime", req.AcceptDatetime),
					slog.Duration("duration", time.Since(start)),
				}
				if err != nil {
					attrs = append(attrs, slog.String("error", err.Error()))
					logger.LogAttrs(ctx, slog.LevelError, "negotiation failed", attrs...)
				} else {
					attrs = append(attrs, slog.String("memento", res.Memento.URI))
					logger.LogAttrs(ctx, slog.LevelInfo, "negotiation completed", attrs...)
				}
				return res, err
			},
			Map: func(ctx context.Context, req *api.MapRequest) (*api.MapResult, error) {
				start := time.Now()
				res, err := next.ListTimeMap(ctx, req)

				attrs := []slog.Attr{
					slog.String("flow", "timemap"),
					slog.String("request_id", RequestIDFromContext(ctx)),
					slog.String("resource", req.Resource),
					slog.Duration("duration", time.Since(start)),
				}
				if err != nil {
					attrs = append(attrs, slog.String("error", err.Error()))
					logger.LogAttrs(ctx, slog.LevelError, "timemap listing failed", attrs...)
				} else {
					attrs = append(attrs, slog.Int("mementos", len(res.TimeMap)))
					logger.LogAttrs(ctx, slog.LevelInfo, "timemap listing completed", attrs...)
				}
				return res, err
			},
		}
	}
}
