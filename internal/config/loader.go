package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if values cannot be parsed or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if cfg.Source.DatabaseURL == "" {
		cfg.Source.DatabaseURL = os.Getenv("DB_URL")
	}
	cfg.Security.TrustedProxies = trimList(cfg.Security.TrustedProxies)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// trimList trims whitespace from each element and drops empty ones.
func trimList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, p := range items {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Source validation
	switch strings.ToLower(c.Source.Driver) {
	case DriverFile, DriverSQLite:
		if c.Source.Path == "" {
			errs = append(errs, fmt.Sprintf("SOURCE_PATH is required for the %s driver", c.Source.Driver))
		}
	case DriverHTTP:
		if u, err := url.Parse(c.Source.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("SOURCE_URL (%q) must be an absolute http(s) URL", c.Source.URL))
		}
	case DriverPostgres:
		if c.Source.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres driver")
		}
		if c.Source.MaxConns <= 0 {
			errs = append(errs, "DB_MAX_CONNS must be positive")
		}
	case DriverS3:
		if c.Source.Bucket == "" {
			errs = append(errs, "SOURCE_S3_BUCKET is required for the s3 driver")
		}
		if c.Source.Key == "" {
			errs = append(errs, "SOURCE_S3_KEY is required for the s3 driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("SOURCE_DRIVER (%q) must be one of: file, http, postgres, sqlite, s3", c.Source.Driver))
	}
	if c.Source.LoadTimeout < 0 {
		errs = append(errs, "SOURCE_LOAD_TIMEOUT must be non-negative")
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Session validation
	if c.Session.CookieName == "" {
		errs = append(errs, "SESSION_COOKIE_NAME is required")
	}
	if c.Session.Capacity <= 0 {
		errs = append(errs, "SESSION_CAPACITY must be positive")
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, "SESSION_TTL must be positive")
	}

	// Rate limit validation
	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}
	if c.Rate.Enabled && c.Rate.Burst <= 0 {
		errs = append(errs, "RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Sensitive values like database URLs are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Source: {Driver: %q, Location: %q, LoadTimeout: %s}, ",
		c.Source.Driver, c.Source.Location(), c.Source.LoadTimeout))
	b.WriteString(fmt.Sprintf("Query: {ExactCategoryMatch: %v}, ", c.Query.ExactCategoryMatch))
	b.WriteString(fmt.Sprintf("Session: {Capacity: %d, TTL: %s}, ", c.Session.Capacity, c.Session.TTL))
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}

// Location describes where the configured source reads from.
// Database credentials are never included.
func (s SourceConfig) Location() string {
	switch strings.ToLower(s.Driver) {
	case DriverHTTP:
		return s.URL
	case DriverPostgres:
		if s.DatabaseURL == "" {
			return s.Table
		}
		return "[MASKED]/" + s.Table
	case DriverSQLite:
		return s.Path + "/" + s.Table
	case DriverS3:
		return s.Bucket + "/" + s.Key
	default:
		return s.Path
	}
}
