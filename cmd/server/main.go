// Command server runs the zeitgate temporal negotiation gateway.
//
// Configuration is loaded from a YAML file (discovered or passed via
// -config) with ZEITGATE_* environment variable overrides:
//
//	ZEITGATE_CONFIG          - Config file path
//	ZEITGATE_PORT            - Listen port (default: 8080)
//	ZEITGATE_BASE_URL        - External base URL for service links (required)
//	ZEITGATE_STRICT_TIME     - Require exact Accept-Datetime layout
//	ZEITGATE_CACHE           - Enable the negotiation cache (default: true)
//	ZEITGATE_CACHE_TOLERANCE - Timemap staleness tolerance (default: 5m)
//	ZEITGATE_FETCH_TIMEOUT   - Per-fetch provider deadline (default: 60s)
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
	"github.com/zeitgate-dev/zeitgate/pkg/cache"
	"github.com/zeitgate-dev/zeitgate/pkg/config"
	"github.com/zeitgate-dev/zeitgate/pkg/engine"
	"github.com/zeitgate-dev/zeitgate/pkg/provider"
	"github.com/zeitgate-dev/zeitgate/pkg/provider/static"
	transporthttp "github.com/zeitgate-dev/zeitgate/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (default: discovered)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Build providers. Misconfigured providers or patterns abort startup;
	// route resolution never fails fatally afterwards.
	providers, err := buildProviders(cfg.Providers)
	if err != nil {
		return fmt.Errorf("building providers: %w", err)
	}
	registry, err := provider.NewRegistry(providers...)
	if err != nil {
		return fmt.Errorf("building route registry: %w", err)
	}

	negotiationCache := cache.New(cache.Config{
		Enabled:      cfg.Cache.Enabled,
		Tolerance:    cfg.Cache.Tolerance,
		FetchTimeout: cfg.Cache.FetchTimeout,
	})

	eng, err := engine.New(registry, negotiationCache, engine.Config{
		BaseURL:    cfg.Gate.BaseURL,
		GatePrefix: cfg.Gate.GatePrefix,
		MapPrefix:  cfg.Gate.MapPrefix,
		StrictTime: cfg.Gate.StrictTime,
		DateFormat: cfg.Gate.DateFormat,
	})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	srv := transporthttp.NewServer(eng, transporthttp.Config{
		GatePrefix: cfg.Gate.GatePrefix,
		MapPrefix:  cfg.Gate.MapPrefix,
		DateFormat: cfg.Gate.DateFormat,
	},
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithMetricsPath(metricsPath),
		transporthttp.WithLogger(logger),
	)

	logger.Info("gateway configured",
		"base_url", cfg.Gate.BaseURL,
		"providers", len(providers),
		"routes", registry.RouteCount(),
		"cache", cfg.Cache.Enabled,
		"strict_time", cfg.Gate.StrictTime)

	return srv.ListenAndServe()
}

// buildProviders instantiates the configured archive providers in
// configuration order, which is also route registration order.
func buildProviders(configs []config.ProviderConfig) ([]provider.Provider, error) {
	providers := make([]provider.Provider, 0, len(configs))
	for _, pc := range configs {
		switch pc.Type {
		case "static", "":
			providers = append(providers, static.New(static.Config{
				Name:      pc.Name,
				Patterns:  pc.Patterns,
				PointOnly: pc.PointOnly,
				Snapshots: buildSnapshots(pc.Snapshots),
			}))
		default:
			return nil, fmt.Errorf("provider %q: unknown type %q", pc.Name, pc.Type)
		}
	}
	return providers, nil
}

// buildSnapshots converts configured snapshot entries into timemaps.
func buildSnapshots(snapshots map[string][]config.SnapshotConfig) map[string]api.TimeMap {
	out := make(map[string]api.TimeMap, len(snapshots))
	for uri, entries := range snapshots {
		tm := make(api.TimeMap, 0, len(entries))
		for _, e := range entries {
			tm = append(tm, api.NewMemento(e.URI, e.DateTime))
		}
		out[uri] = tm
	}
	return out
}
