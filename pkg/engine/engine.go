package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
	"github.com/zeitgate-dev/zeitgate/pkg/cache"
	"github.com/zeitgate-dev/zeitgate/pkg/observability"
	"github.com/zeitgate-dev/zeitgate/pkg/provider"
	"github.com/zeitgate-dev/zeitgate/pkg/transport"
)

// Config holds negotiation settings.
type Config struct {
	// BaseURL is the externally visible root of this gateway, without a
	// trailing slash (e.g., "http://archive.example:8080"). Used to build
	// the timegate/timemap links embedded in responses.
	BaseURL string

	// GatePrefix and MapPrefix are the service prefixes distinguishing
	// point lookups from timeline listings in request paths.
	GatePrefix string
	MapPrefix  string

	// StrictTime requires Accept-Datetime values to match DateFormat
	// exactly; otherwise best-effort parsing is applied.
	StrictTime bool

	// DateFormat is the layout for parsing strict Accept-Datetime values
	// and rendering datetime attributes. Defaults to api.DefaultDateFormat.
	DateFormat string
}

// Engine ties registry, cache, and providers into the two negotiation
// flows. It implements transport.Negotiator.
type Engine struct {
	registry *provider.Registry
	cache    *cache.Cache
	cfg      Config
}

// Ensure Engine implements transport.Negotiator at compile time.
var _ transport.Negotiator = (*Engine)(nil)

// New creates an Engine. Registry and cache must not be nil; a registry
// could not have been built without providers, so this is the last point
// where misassembly is a startup error rather than a request error.
func New(reg *provider.Registry, c *cache.Cache, cfg Config) (*Engine, error) {
	if reg == nil {
		return nil, fmt.Errorf("engine: registry must not be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("engine: cache must not be nil")
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = api.DefaultDateFormat
	}
	return &Engine{registry: reg, cache: c, cfg: cfg}, nil
}

// NegotiateMemento handles the point lookup flow: parse the requested
// time, normalize the resource, route to a point-capable provider, obtain
// a timemap fresh enough for the requested instant, and select the
// closest memento.
func (e *Engine) NegotiateMemento(ctx context.Context, req *api.GateRequest) (*api.GateResult, error) {
	at, err := api.ParseAcceptDatetime(req.AcceptDatetime, e.cfg.DateFormat, e.cfg.StrictTime)
	if err != nil {
		return nil, api.NewTimeParseError(req.AcceptDatetime, err)
	}

	uriR, err := api.NormalizeResource(req.Resource)
	if err != nil {
		return nil, api.NewURIParseError(req.Resource, err)
	}

	prov, err := e.registry.Resolve(uriR, false)
	if err != nil {
		return nil, err
	}

	// Point-only backends answer directly; there is no timemap to cache
	// and no listing endpoint to advertise.
	if prov.Capabilities().PointOnly {
		m, err := e.lookupOne(ctx, prov, uriR, at)
		if err != nil {
			return nil, err
		}
		return &api.GateResult{Memento: m, Resource: uriR}, nil
	}

	tm, err := e.cache.GetUntil(ctx, uriR, at, e.fetchFunc(prov, uriR))
	if err != nil {
		return nil, err
	}

	m, ok := Closest(tm, at)
	if !ok {
		return nil, api.NewNoMementoError(uriR)
	}
	return &api.GateResult{
		Memento:    m,
		Resource:   uriR,
		TimeMapURL: e.serviceURL(e.cfg.MapPrefix, uriR),
	}, nil
}

// ListTimeMap handles the timeline listing flow: normalize the resource,
// route to a timeline-capable provider, and return the freshest available
// timemap together with the link endpoints describing it.
func (e *Engine) ListTimeMap(ctx context.Context, req *api.MapRequest) (*api.MapResult, error) {
	uriR, err := api.NormalizeResource(req.Resource)
	if err != nil {
		return nil, api.NewURIParseError(req.Resource, err)
	}

	prov, err := e.registry.Resolve(uriR, true)
	if err != nil {
		return nil, err
	}

	tm, err := e.cache.GetAll(ctx, uriR, e.fetchFunc(prov, uriR))
	if err != nil {
		return nil, err
	}

	return &api.MapResult{
		Resource:    uriR,
		TimeGateURL: e.serviceURL(e.cfg.GatePrefix, uriR),
		SelfURL:     e.serviceURL(e.cfg.MapPrefix, uriR),
		TimeMap:     tm,
	}, nil
}

// DateFormat returns the layout used for datetime attributes, so the
// transport renders bodies consistently with request parsing.
func (e *Engine) DateFormat() string { return e.cfg.DateFormat }

// lookupOne queries a point-only provider, folding non-protocol failures
// into provider errors.
func (e *Engine) lookupOne(ctx context.Context, prov provider.Provider, uriR string, at time.Time) (api.Memento, error) {
	start := time.Now()
	m, err := prov.Lookup(ctx, uriR, at)
	observability.ProviderFetchDuration.WithLabelValues(prov.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.ProviderFetchesTotal.WithLabelValues(prov.Name(), "error").Inc()
		var gateErr *api.GateError
		if errors.As(err, &gateErr) {
			return api.Memento{}, err
		}
		return api.Memento{}, api.NewProviderError(prov.Name(), err)
	}
	observability.ProviderFetchesTotal.WithLabelValues(prov.Name(), "ok").Inc()
	return m, nil
}

// fetchFunc adapts a provider's ListAll into a cache fetch, recording
// fetch metrics and wrapping failures as provider errors.
func (e *Engine) fetchFunc(prov provider.Provider, uriR string) cache.FetchFunc {
	return func(ctx context.Context) (api.TimeMap, error) {
		start := time.Now()
		tm, err := prov.ListAll(ctx, uriR)
		observability.ProviderFetchDuration.WithLabelValues(prov.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			observability.ProviderFetchesTotal.WithLabelValues(prov.Name(), "error").Inc()
			return nil, api.NewProviderError(prov.Name(), err)
		}
		observability.ProviderFetchesTotal.WithLabelValues(prov.Name(), "ok").Inc()
		return tm, nil
	}
}

// serviceURL builds the absolute URL of a service endpoint for a resource.
func (e *Engine) serviceURL(prefix, uriR string) string {
	return fmt.Sprintf("%s/%s/%s", e.cfg.BaseURL, prefix, uriR)
}
