// Package static provides an in-memory Provider backed by a fixed snapshot
// table. It exists for demos, configuration-driven smoke deployments, and
// tests; real archive backends implement provider.Provider against their
// own APIs.
package static

import (
	"context"
	"time"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
	"github.com/zeitgate-dev/zeitgate/pkg/provider"
)

// Config describes a static provider: its identity, the URI patterns it
// claims, and the snapshot table keyed by normalized resource URI.
type Config struct {
	Name      string
	Patterns  []string
	PointOnly bool
	Snapshots map[string]api.TimeMap
}

// Provider is an immutable in-memory archive backend.
type Provider struct {
	cfg Config
}

// Ensure Provider implements provider.Provider at compile time.
var _ provider.Provider = (*Provider)(nil)

// New creates a static provider from cfg. The snapshot table is shared,
// not copied; callers must not mutate it after construction.
func New(cfg Config) *Provider {
	return &Provider{cfg: cfg}
}

// Name returns the configured provider identifier.
func (p *Provider) Name() string { return p.cfg.Name }

// Patterns returns the configured URI patterns.
func (p *Provider) Patterns() []string { return p.cfg.Patterns }

// Capabilities reports the configured capability set.
func (p *Provider) Capabilities() provider.Capabilities {
	return provider.Capabilities{PointOnly: p.cfg.PointOnly}
}

// Lookup returns the snapshot of uri closest to at, scanning the full
// table entry since static snapshot lists carry no order guarantee.
func (p *Provider) Lookup(_ context.Context, uri string, at time.Time) (api.Memento, error) {
	tm := p.cfg.Snapshots[uri]
	if len(tm) == 0 {
		return api.Memento{}, api.NewNoMementoError(uri)
	}

	best := tm[0]
	bestDelta := absDuration(best.DateTime.Sub(at))
	for _, m := range tm[1:] {
		if d := absDuration(m.DateTime.Sub(at)); d < bestDelta {
			best, bestDelta = m, d
		}
	}
	return best, nil
}

// ListAll returns every known snapshot of uri; an unknown uri yields an
// empty timemap, not an error.
func (p *Provider) ListAll(_ context.Context, uri string) (api.TimeMap, error) {
	return p.cfg.Snapshots[uri], nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
