package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalConfig = `
gate:
  base_url: http://gate.example:8080
providers:
  - name: archive
    patterns:
      - http://example\.org/.*
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Gate.GatePrefix != "timegate" || cfg.Gate.MapPrefix != "timemap" {
		t.Errorf("prefixes = %q/%q", cfg.Gate.GatePrefix, cfg.Gate.MapPrefix)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Tolerance != 5*time.Minute {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Cache.FetchTimeout != 60*time.Second {
		t.Errorf("FetchTimeout = %s", cfg.Cache.FetchTimeout)
	}
	if !cfg.Observability.Metrics.Enabled || cfg.Observability.Metrics.Path != "/metrics" {
		t.Errorf("metrics defaults = %+v", cfg.Observability.Metrics)
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, `
server:
  port: 9090
  read_timeout: 10s
gate:
  base_url: http://gate.example
  strict_time: true
cache:
  enabled: false
  tolerance: 90s
providers:
  - name: archive
    point_only: true
    patterns:
      - http://example\.org/.*
      - http://example\.com/.*
    snapshots:
      http://example.org/page:
        - uri: http://archive.example/2021/page
          datetime: 2021-01-01T00:00:00Z
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 || cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if !cfg.Gate.StrictTime {
		t.Error("StrictTime not applied")
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled=false not applied")
	}
	if cfg.Cache.Tolerance != 90*time.Second {
		t.Errorf("Tolerance = %s", cfg.Cache.Tolerance)
	}

	if len(cfg.Providers) != 1 {
		t.Fatalf("providers = %d", len(cfg.Providers))
	}
	p := cfg.Providers[0]
	if !p.PointOnly || len(p.Patterns) != 2 {
		t.Errorf("provider = %+v", p)
	}
	snaps := p.Snapshots["http://example.org/page"]
	if len(snaps) != 1 || snaps[0].URI != "http://archive.example/2021/page" {
		t.Errorf("snapshots = %+v", snaps)
	}
	if !snaps[0].DateTime.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("snapshot datetime = %v", snaps[0].DateTime)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZEITGATE_PORT", "7070")
	t.Setenv("ZEITGATE_BASE_URL", "http://env.example")
	t.Setenv("ZEITGATE_CACHE", "false")
	t.Setenv("ZEITGATE_CACHE_TOLERANCE", "2m")
	t.Setenv("ZEITGATE_STRICT_TIME", "true")

	cfg, err := Load(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Gate.BaseURL != "http://env.example" {
		t.Errorf("BaseURL = %q, env must win over file", cfg.Gate.BaseURL)
	}
	if cfg.Cache.Enabled {
		t.Error("ZEITGATE_CACHE=false not applied")
	}
	if cfg.Cache.Tolerance != 2*time.Minute {
		t.Errorf("Tolerance = %s", cfg.Cache.Tolerance)
	}
	if !cfg.Gate.StrictTime {
		t.Error("ZEITGATE_STRICT_TIME=true not applied")
	}
}

func TestLoadConfigFileFromEnv(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)
	t.Setenv("ZEITGATE_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gate.BaseURL != "http://gate.example:8080" {
		t.Errorf("BaseURL = %q", cfg.Gate.BaseURL)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Gate.BaseURL = "" },
			wantErr: "gate.base_url is required",
		},
		{
			name:    "trailing slash",
			mutate:  func(c *Config) { c.Gate.BaseURL = "http://gate.example/" },
			wantErr: "must not end with a slash",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "equal prefixes",
			mutate:  func(c *Config) { c.Gate.MapPrefix = c.Gate.GatePrefix },
			wantErr: "must differ",
		},
		{
			name:    "no providers",
			mutate:  func(c *Config) { c.Providers = nil },
			wantErr: "at least one provider",
		},
		{
			name: "duplicate provider names",
			mutate: func(c *Config) {
				c.Providers = append(c.Providers, c.Providers[0])
			},
			wantErr: "duplicated",
		},
		{
			name: "unknown provider type",
			mutate: func(c *Config) {
				c.Providers[0].Type = "dynamic"
			},
			wantErr: "must be \"static\"",
		},
		{
			name: "patternless provider",
			mutate: func(c *Config) {
				c.Providers[0].Patterns = nil
			},
			wantErr: "at least one pattern",
		},
		{
			name:    "negative tolerance",
			mutate:  func(c *Config) { c.Cache.Tolerance = -1 },
			wantErr: "cache.tolerance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Gate.BaseURL = "http://gate.example"
			cfg.Providers = []ProviderConfig{{
				Name:     "archive",
				Patterns: []string{`http://example\.org/.*`},
			}}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
