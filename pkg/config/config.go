// Package config provides unified configuration for the zeitgate gateway.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (ZEITGATE_ prefix)
//  4. Validation
package config

import "time"

// Config holds all configuration for the zeitgate gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Gate          GateConfig          `yaml:"gate"`
	Cache         CacheConfig         `yaml:"cache"`
	Providers     []ProviderConfig    `yaml:"providers"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 120s
}

// GateConfig holds negotiation settings.
type GateConfig struct {
	BaseURL    string `yaml:"base_url"`    // required; external root, no trailing slash
	GatePrefix string `yaml:"gate_prefix"` // default: "timegate"
	MapPrefix  string `yaml:"map_prefix"`  // default: "timemap"
	StrictTime bool   `yaml:"strict_time"` // default: false
	DateFormat string `yaml:"date_format"` // default: RFC 1123 GMT layout
}

// CacheConfig holds negotiation cache settings.
type CacheConfig struct {
	Enabled      bool          `yaml:"enabled"`       // default: true
	Tolerance    time.Duration `yaml:"tolerance"`     // default: 5m
	FetchTimeout time.Duration `yaml:"fetch_timeout"` // default: 60s
}

// ProviderConfig describes a single archive provider.
type ProviderConfig struct {
	Name      string   `yaml:"name"`       // required, unique
	Type      string   `yaml:"type"`       // "static", default: "static"
	Patterns  []string `yaml:"patterns"`   // required, at least one URI regex
	PointOnly bool     `yaml:"point_only"` // default: false

	// Snapshots maps normalized resource URIs to their known snapshots.
	// Only used by type=static.
	Snapshots map[string][]SnapshotConfig `yaml:"snapshots"`
}

// SnapshotConfig describes one archived snapshot of a resource.
type SnapshotConfig struct {
	URI      string    `yaml:"uri"`
	DateTime time.Time `yaml:"datetime"`
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Gate: GateConfig{
			GatePrefix: "timegate",
			MapPrefix:  "timemap",
			DateFormat: "Mon, 02 Jan 2006 15:04:05 GMT",
		},
		Cache: CacheConfig{
			Enabled:      true,
			Tolerance:    5 * time.Minute,
			FetchTimeout: 60 * time.Second,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
