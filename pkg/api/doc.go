// Package api defines the core protocol types for the zeitgate temporal
// negotiation gateway.
//
// This package provides the data types and pure functions needed to speak
// the Memento time-negotiation protocol (RFC 7089): mementos and timemaps,
// Accept-Datetime parsing, resource URI normalization, link-format
// rendering, and the negotiation error taxonomy.
//
// The package performs no I/O and has a single external dependency
// (dateparse, for lenient datetime parsing). All rendering functions
// produce link-format strings compatible with the "application/link-format"
// media type expected by Memento clients.
//
// Core types:
//   - [Memento]: a timestamped archived snapshot of an original resource
//   - [TimeMap]: the known snapshot timeline of one original resource
//   - [GateRequest] / [GateResult]: the point-lookup (TimeGate) operation
//   - [MapRequest] / [MapResult]: the timeline-listing (TimeMap) operation
//   - [GateError]: structured negotiation error with kind and message
package api
