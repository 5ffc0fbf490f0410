package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE" envDefault:""`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Every visitor ships for free when set.
	Premium bool `env:"STOREFRONT_PREMIUM" envDefault:"true"`

	// YAML catalog; empty means the built-in one.
	CatalogPath string `env:"CATALOG_PATH" envDefault:""`

	// Sessions
	SessionTTLMinutes   int `env:"SESSION_TTL_MINUTES" envDefault:"30"`
	SessionSweepSeconds int `env:"SESSION_SWEEP_SECONDS" envDefault:"60"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from an optional .env file and the environment.
func Load(dotenvFiles ...string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg, dotenvFiles...); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SessionTTL returns how long an unused session lives.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// SessionSweepInterval returns how often idle sessions are expired.
func (c *Config) SessionSweepInterval() time.Duration {
	return time.Duration(c.SessionSweepSeconds) * time.Second
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be > 0, got %d", c.SessionTTLMinutes)
	}
	if c.SessionSweepSeconds <= 0 {
		return fmt.Errorf("SESSION_SWEEP_SECONDS must be > 0, got %d", c.SessionSweepSeconds)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}
