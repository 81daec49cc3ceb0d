package provider

import (
	"fmt"
	"regexp"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
)

// route binds one compiled URI pattern to the provider that serves it.
type route struct {
	pattern  *regexp.Regexp
	provider Provider
}

// Registry maps resource URIs to providers via ordered pattern matching.
// It keeps two independently ordered route lists: the gate list holds all
// providers, the map list excludes point-only providers (they have no
// timeline to list). Both are immutable after construction; Resolve is a
// pure lookup and safe for concurrent use.
type Registry struct {
	gateRoutes []route
	mapRoutes  []route
	providers  []Provider
}

// NewRegistry compiles the patterns of the given providers into a route
// registry. Registration order is preserved: when several patterns match a
// URI, the first registered wins, regardless of specificity. An empty
// provider set or an invalid pattern is a construction error; route
// resolution itself never fails fatally.
func NewRegistry(providers ...Provider) (*Registry, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("registry: at least one provider required")
	}

	r := &Registry{providers: providers}
	for _, p := range providers {
		if len(p.Patterns()) == 0 {
			return nil, fmt.Errorf("registry: provider %q declares no patterns", p.Name())
		}
		for _, pat := range p.Patterns() {
			// Anchor at the start: patterns describe URI prefixes.
			re, err := regexp.Compile("^(?:" + pat + ")")
			if err != nil {
				return nil, fmt.Errorf("registry: provider %q pattern %q: %w", p.Name(), pat, err)
			}
			r.gateRoutes = append(r.gateRoutes, route{pattern: re, provider: p})
			if !p.Capabilities().PointOnly {
				r.mapRoutes = append(r.mapRoutes, route{pattern: re, provider: p})
			}
		}
	}
	return r, nil
}

// Resolve returns the first registered provider whose pattern matches uri.
// With wantTimeMap set, only timeline-capable providers are considered.
// Returns a no-route GateError when nothing matches.
func (r *Registry) Resolve(uri string, wantTimeMap bool) (Provider, error) {
	routes := r.gateRoutes
	flow := "timegate"
	if wantTimeMap {
		routes = r.mapRoutes
		flow = "timemap"
	}

	for _, rt := range routes {
		if rt.pattern.MatchString(uri) {
			return rt.provider, nil
		}
	}
	return nil, api.NewNoRouteError(flow, uri)
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider { return r.providers }

// RouteCount returns the number of compiled gate routes, for startup logs.
func (r *Registry) RouteCount() int { return len(r.gateRoutes) }
