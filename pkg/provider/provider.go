package provider

import (
	"context"
	"time"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
)

// Provider abstracts an archive backend holding the snapshot history of a
// class of resources. Each backend declares the URI patterns it serves and
// its capability set at registration time.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Provider interface {
	// Name returns the provider identifier (e.g., "wayback", "wiki").
	Name() string

	// Patterns returns the URI regular expressions this provider serves.
	// Patterns are matched from the start of the resource URI, in the
	// order returned here.
	Patterns() []string

	// Capabilities returns what this provider supports.
	Capabilities() Capabilities

	// Lookup returns the best snapshot of uri near the instant at.
	// This is the only valid call on point-only providers.
	Lookup(ctx context.Context, uri string, at time.Time) (api.Memento, error)

	// ListAll returns every known snapshot of uri. The result may be
	// unsorted and may be empty. Never called on point-only providers.
	ListAll(ctx context.Context, uri string) (api.TimeMap, error)
}

// Capabilities describes what a provider supports.
type Capabilities struct {
	// PointOnly means the backend can answer point lookups but has no
	// enumerable timeline: ListAll is invalid and the provider is
	// excluded from timemap routing.
	PointOnly bool
}
