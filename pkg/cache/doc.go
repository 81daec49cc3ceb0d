// Package cache implements the negotiation cache: per-resource timemaps
// with a staleness policy and single-flight fetch coordination.
//
// The cache is the only shared mutable state in the gateway core. Its
// locking discipline keeps the entry map lock out of the fetch path:
// entries for different resources never contend, and a slow backend fetch
// for one resource cannot block requests for any other. Fetches for the
// same resource are collapsed into one outstanding provider call whose
// result (timemap or error) is shared by every concurrent waiter. A failed
// fetch never clobbers the last known-good timemap.
//
// Two entry points implement two freshness contracts:
//   - [Cache.GetAll] serves timeline listings and demands a recent fetch
//     (bounded by the configured tolerance).
//   - [Cache.GetUntil] serves point-in-time lookups and only demands that
//     the cached timemap was fetched at or after the requested instant; an
//     entry stale with respect to the present still answers historical
//     queries without touching the backend.
package cache
