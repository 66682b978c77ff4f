package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
		"DATA_PATH", "VGSALES_CSV", "DATA_SKIP_MALFORMED", "DATA_TITLE_MIN_GLOBAL_SALES", "DATA_AGGREGATOR",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_EXPIRES_IN",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_PATH", "games.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "games.csv", cfg.Data.Path)
	assert.False(t, cfg.Data.SkipMalformed)
	assert.Equal(t, 10.0, cfg.Data.TitleMinGlobalSales)
	assert.Equal(t, "memory", cfg.Data.Aggregator)
	assert.True(t, cfg.Rate.Enabled)
	assert.Equal(t, 20.0, cfg.Rate.RequestsPerSecond)
	assert.Equal(t, 40, cfg.Rate.Burst)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoad_OverrideDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_PATH", "games.csv")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("DATA_SKIP_MALFORMED", "true")
	t.Setenv("DATA_TITLE_MIN_GLOBAL_SALES", "2.5")
	t.Setenv("DATA_AGGREGATOR", "duckdb")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Data.SkipMalformed)
	assert.Equal(t, 2.5, cfg.Data.TitleMinGlobalSales)
	assert.Equal(t, "duckdb", cfg.Data.Aggregator)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_AltEnvVar(t *testing.T) {
	clearEnv(t)
	t.Setenv("VGSALES_CSV", "/data/vgsales.csv")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/vgsales.csv", cfg.Data.Path)
}

func TestLoad_MissingRequired(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_PATH")
}

func TestLoad_InvalidValue(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		field string
	}{
		{"bad int", "SERVER_PORT", "eighty", "Port"},
		{"bad duration", "SERVER_SHUTDOWN_TIMEOUT", "soon", "ShutdownTimeout"},
		{"bad float", "DATA_TITLE_MIN_GLOBAL_SALES", "ten", "TitleMinGlobalSales"},
		{"bad bool", "DATA_SKIP_MALFORMED", "maybe", "SkipMalformed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATA_PATH", "games.csv")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
			assert.Contains(t, err.Error(), tt.value)
		})
	}
}

func TestLoadFrom_PrimaryWinsOverAlias(t *testing.T) {
	cfg, err := loadFrom([]string{"DATA_PATH=primary.csv", "VGSALES_CSV=alias.csv"})
	require.NoError(t, err)
	assert.Equal(t, "primary.csv", cfg.Data.Path)
}

func TestLoadFrom_EmptyValueUsesDefault(t *testing.T) {
	cfg, err := loadFrom([]string{"DATA_PATH=games.csv", "SERVER_PORT=", "LOG_LEVEL="})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFrom_ValidationRunsAfterParse(t *testing.T) {
	_, err := loadFrom([]string{"DATA_PATH=games.csv", "DATA_AGGREGATOR=spark"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation")
	assert.Contains(t, err.Error(), "DATA_AGGREGATOR")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: 0, ShutdownTimeout: 0},
		Data:    DataConfig{Path: "", TitleMinGlobalSales: -1, Aggregator: "spark"},
		Rate:    RateLimitConfig{Enabled: true},
		Logging: LoggingConfig{Level: "verbose", Format: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"SERVER_PORT", "SERVER_SHUTDOWN_TIMEOUT", "DATA_PATH", "DATA_TITLE_MIN_GLOBAL_SALES",
		"DATA_AGGREGATOR", "RATE_LIMIT_RPS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_RateLimitDisabled(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Data:    DataConfig{Path: "x.csv", TitleMinGlobalSales: 10, Aggregator: "memory"},
		Rate:    RateLimitConfig{Enabled: false},
		Logging: LoggingConfig{Level: "debug", Format: "console"},
	}
	assert.NoError(t, cfg.Validate())
}
