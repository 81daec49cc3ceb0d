package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// gate.base_url is required; service links are built from it.
	if c.Gate.BaseURL == "" {
		errs = append(errs, fmt.Errorf("gate.base_url is required"))
	} else if strings.HasSuffix(c.Gate.BaseURL, "/") {
		errs = append(errs, fmt.Errorf("gate.base_url must not end with a slash, got %q", c.Gate.BaseURL))
	}

	// Service prefixes must be non-empty and distinct.
	if c.Gate.GatePrefix == "" {
		errs = append(errs, fmt.Errorf("gate.gate_prefix must not be empty"))
	}
	if c.Gate.MapPrefix == "" {
		errs = append(errs, fmt.Errorf("gate.map_prefix must not be empty"))
	}
	if c.Gate.GatePrefix != "" && c.Gate.GatePrefix == c.Gate.MapPrefix {
		errs = append(errs, fmt.Errorf("gate.gate_prefix and gate.map_prefix must differ, both are %q", c.Gate.GatePrefix))
	}

	// cache durations must not be negative.
	if c.Cache.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("cache.tolerance must be >= 0, got %s", c.Cache.Tolerance))
	}
	if c.Cache.FetchTimeout < 0 {
		errs = append(errs, fmt.Errorf("cache.fetch_timeout must be >= 0, got %s", c.Cache.FetchTimeout))
	}

	// At least one provider is required; a gateway with no routes cannot
	// answer anything.
	if len(c.Providers) == 0 {
		errs = append(errs, fmt.Errorf("at least one provider is required"))
	}
	seen := make(map[string]bool)
	for i, p := range c.Providers {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("providers[%d].name is required", i))
		} else if seen[p.Name] {
			errs = append(errs, fmt.Errorf("providers[%d].name %q is duplicated", i, p.Name))
		}
		seen[p.Name] = true

		switch p.Type {
		case "static", "":
			// valid
		default:
			errs = append(errs, fmt.Errorf("providers[%d].type must be \"static\", got %q", i, p.Type))
		}

		if len(p.Patterns) == 0 {
			errs = append(errs, fmt.Errorf("providers[%d].patterns must declare at least one pattern", i))
		}
	}

	return errors.Join(errs...)
}
