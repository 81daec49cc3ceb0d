package api

import (
	"sort"
	"time"
)

// Memento is a single archived snapshot of an original resource: the
// absolute URI where the snapshot lives and the instant it was captured.
// Timestamps are normalized to UTC on construction and the value is
// immutable afterwards.
type Memento struct {
	URI      string
	DateTime time.Time
}

// NewMemento builds a Memento with its timestamp normalized to UTC.
func NewMemento(uri string, dt time.Time) Memento {
	return Memento{URI: uri, DateTime: dt.UTC()}
}

// TimeMap is the sequence of known mementos for one original resource, in
// the order the backend provider returned them. Providers are not required
// to sort; an empty TimeMap is valid and means no known snapshots.
type TimeMap []Memento

// IsSorted reports whether the timemap is in non-decreasing timestamp order.
func (tm TimeMap) IsSorted() bool {
	return sort.SliceIsSorted(tm, func(i, j int) bool {
		return tm[i].DateTime.Before(tm[j].DateTime)
	})
}

// Sorted returns a chronologically sorted copy. The receiver is not
// modified; callers share timemaps across requests and must treat them
// as read-only.
func (tm TimeMap) Sorted() TimeMap {
	out := make(TimeMap, len(tm))
	copy(out, tm)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out
}

// GateRequest is a point-lookup request: find the best memento of Resource
// near the instant carried in the Accept-Datetime header value.
type GateRequest struct {
	// Resource is the raw resource path as extracted from the request
	// path, before normalization.
	Resource string

	// AcceptDatetime is the raw Accept-Datetime header value.
	AcceptDatetime string
}

// GateResult is the outcome of a successful point lookup.
type GateResult struct {
	// Memento is the chosen snapshot; its URI becomes the redirect target.
	Memento Memento

	// Resource is the normalized original resource URI.
	Resource string

	// TimeMapURL is the listing endpoint for the resource. Empty when the
	// serving provider has no enumerable timeline.
	TimeMapURL string
}

// MapRequest is a timeline-listing request for one resource.
type MapRequest struct {
	// Resource is the raw resource path as extracted from the request
	// path, before normalization.
	Resource string
}

// MapResult is the outcome of a successful timeline listing.
type MapResult struct {
	// Resource is the normalized original resource URI.
	Resource string

	// TimeGateURL is the point-lookup endpoint for the resource.
	TimeGateURL string

	// SelfURL is the listing endpoint that produced this result.
	SelfURL string

	// TimeMap holds the known mementos in provider order.
	TimeMap TimeMap
}
