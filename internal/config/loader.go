package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// dataPathAlias is read when DATA_PATH is unset.
const dataPathAlias = "VGSALES_CSV"

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	return loadFrom(os.Environ())
}

// loadFrom parses environ (KEY=value pairs) into a Config. Empty values
// count as unset so their defaults apply.
func loadFrom(environ []string) (*Config, error) {
	vars := env.ToMap(environ)
	for k, v := range vars {
		if v == "" {
			delete(vars, k)
		}
	}
	if _, ok := vars["DATA_PATH"]; !ok {
		if alt, ok := vars[dataPathAlias]; ok {
			vars["DATA_PATH"] = alt
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		errs = append(errs, "SERVER_WRITE_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	if c.Data.Path == "" {
		errs = append(errs, "DATA_PATH is required")
	}
	if c.Data.TitleMinGlobalSales <= 0 {
		errs = append(errs, "DATA_TITLE_MIN_GLOBAL_SALES must be positive")
	}
	switch strings.ToLower(c.Data.Aggregator) {
	case "memory", "duckdb":
	default:
		errs = append(errs, fmt.Sprintf("DATA_AGGREGATOR (%q) must be one of: memory, duckdb", c.Data.Aggregator))
	}

	if c.Rate.Enabled {
		if c.Rate.RequestsPerSecond <= 0 {
			errs = append(errs, "RATE_LIMIT_RPS must be positive when rate limiting is enabled")
		}
		if c.Rate.Burst < 0 {
			errs = append(errs, "RATE_LIMIT_BURST must be non-negative")
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: console, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
