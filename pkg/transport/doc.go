// Package transport defines the handler contract and middleware chain for
// the zeitgate HTTP transport layer.
//
// The transport layer bridges Memento clients and the negotiation engine.
// It extracts the requested resource and datetime from inbound requests,
// dispatches them to a Negotiator, and serializes the outcome as a
// redirect, a link-format listing, or a plain-text error.
//
// # Handler Interface
//
// Negotiator is the single contract between transport and engine: one
// method per flow (point lookup, timeline listing). The HTTP adapter in
// the http subpackage decides which to call from the request path.
//
// # Middleware
//
// Middleware wraps a Negotiator with cross-cutting concerns. Built-in
// middleware provides panic recovery, request ID assignment
// (X-Request-ID), and structured logging via log/slog.
//
// # Error Mapping
//
// Negotiation failures are *api.GateError values; HTTPStatusFromError maps
// each kind to exactly one HTTP status, and WriteError renders the
// "<status>\n<message>\n" plain-text error body. Unknown errors become
// internal server errors; nothing that happens during a request crashes
// the serving process.
package transport
