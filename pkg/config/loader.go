package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, ZEITGATE_CONFIG env, ./config.yaml, /etc/zeitgate/config.yaml)
//  3. Environment variable overrides
//  4. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. ZEITGATE_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/zeitgate/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	// Check ZEITGATE_CONFIG env var.
	if envPath := os.Getenv("ZEITGATE_CONFIG"); envPath != "" {
		return envPath
	}

	// Check common locations.
	candidates := []string{
		"config.yaml",
		"/etc/zeitgate/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps ZEITGATE_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ZEITGATE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ZEITGATE_BASE_URL"); v != "" {
		cfg.Gate.BaseURL = v
	}
	if v := os.Getenv("ZEITGATE_STRICT_TIME"); v != "" {
		if strict, err := strconv.ParseBool(v); err == nil {
			cfg.Gate.StrictTime = strict
		}
	}
	if v := os.Getenv("ZEITGATE_CACHE"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = enabled
		}
	}
	if v := os.Getenv("ZEITGATE_CACHE_TOLERANCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.Tolerance = d
		}
	}
	if v := os.Getenv("ZEITGATE_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.FetchTimeout = d
		}
	}
}
