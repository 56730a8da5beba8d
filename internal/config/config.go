// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Source drivers.
const (
	DriverFile     = "file"
	DriverHTTP     = "http"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverS3       = "s3"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Query    QueryConfig
	Session  SessionConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envDefault:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s"`
}

// SourceConfig selects and configures the directory data source.
type SourceConfig struct {
	// Driver is one of: file, http, postgres, sqlite, s3 (default: file)
	Driver string `env:"SOURCE_DRIVER" envDefault:"file"`

	// Path is the JSON file (file driver) or database file (sqlite driver)
	Path string `env:"SOURCE_PATH" envDefault:"data.json"`

	// URL is the JSON document location for the http driver
	URL string `env:"SOURCE_URL"`

	// DatabaseURL is the PostgreSQL connection string for the postgres driver.
	// DB_URL is accepted as a fallback.
	DatabaseURL string `env:"DATABASE_URL"`

	// Table is the table read by the postgres and sqlite drivers (default: directory_records)
	Table string `env:"SOURCE_TABLE" envDefault:"directory_records"`

	// MaxConns is the PostgreSQL pool size (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" envDefault:"4"`

	// Bucket, Key, Region, Endpoint and PathStyle configure the s3 driver
	Bucket    string `env:"SOURCE_S3_BUCKET"`
	Key       string `env:"SOURCE_S3_KEY" envDefault:"data.json"`
	Region    string `env:"SOURCE_S3_REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"SOURCE_S3_ENDPOINT"`
	PathStyle bool   `env:"SOURCE_S3_PATH_STYLE" envDefault:"false"`

	// LoadTimeout bounds the initial dataset load (default: 30s)
	LoadTimeout time.Duration `env:"SOURCE_LOAD_TIMEOUT" envDefault:"30s"`
}

// QueryConfig holds filtering behavior switches.
type QueryConfig struct {
	// ExactCategoryMatch compares category and subcategory filters against
	// whole trimmed labels instead of raw substrings (default: false)
	ExactCategoryMatch bool `env:"QUERY_EXACT_CATEGORY_MATCH" envDefault:"false"`
}

// SessionConfig holds visitor session settings.
type SessionConfig struct {
	// CookieName is the session cookie name (default: resdir_session)
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"resdir_session"`

	// Capacity is the maximum number of live sessions (default: 10000)
	Capacity int `env:"SESSION_CAPACITY" envDefault:"10000"`

	// TTL is how long a session lives (default: 24h)
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Secure marks the cookie Secure; enable behind HTTPS (default: false)
	Secure bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// RequestsPerMinute is the sustained rate per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" envDefault:"300"`

	// Burst is the number of requests allowed at once (default: 30)
	Burst int `env:"RATE_LIMIT_BURST" envDefault:"30"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" envDefault:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
