// Package config loads application settings from environment variables
// with defaults, and validates them on startup.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Rate    RateLimitConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envDefault:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`

	// ShutdownTimeout bounds graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DataConfig holds dataset and aggregation settings.
type DataConfig struct {
	// Path is the sales CSV file (required; VGSALES_CSV is accepted as an alias)
	Path string `env:"DATA_PATH,required"`

	// SkipMalformed drops unparseable rows instead of failing the load
	SkipMalformed bool `env:"DATA_SKIP_MALFORMED" envDefault:"false"`

	// TitleMinGlobalSales is the title view floor in millions (default: 10)
	TitleMinGlobalSales float64 `env:"DATA_TITLE_MIN_GLOBAL_SALES" envDefault:"10"`

	// Aggregator selects the aggregation backend: memory or duckdb
	Aggregator string `env:"DATA_AGGREGATOR" envDefault:"memory"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// RequestsPerSecond is the sustained rate per client IP (default: 20)
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`

	// Burst is the number of requests allowed above the rate (default: 40)
	Burst int `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// ExpiresIn drops idle client limiters (default: 3m)
	ExpiresIn time.Duration `env:"RATE_LIMIT_EXPIRES_IN" envDefault:"3m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the log format: console or json (default: console)
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
