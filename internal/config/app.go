package config

import (
	"fmt"
	"strconv"
	"time"

	pkgconfig "ponder/pkg/config"
)

// AppConfig holds process-level configuration for the API server.
type AppConfig struct {
	// Port is the TCP port the HTTP server listens on.
	// Default: 8080
	Port int

	// Version is the application version reported by /health.
	// Default: "dev"
	Version string

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	// Default: 10 seconds
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout mitigates slowloris attacks.
	// Default: 5 seconds
	ReadHeaderTimeout time.Duration

	// MaxBodyBytes limits request body size accepted by the server.
	// Default: 1 MiB
	MaxBodyBytes int64

	// CSPEnabled controls whether Content-Security-Policy headers are set.
	// Default: true
	CSPEnabled bool

	// CSPReportOnly switches CSP to report-only mode for policy rollout.
	// Default: false
	CSPReportOnly bool
}

// LoadAppConfig loads application configuration from environment variables.
// Returns a config with defaults if environment variables are not set.
func LoadAppConfig() (*AppConfig, error) {
	config := &AppConfig{
		Port:              pkgconfig.GetEnvInt("PORT", 8080),
		Version:           pkgconfig.GetEnvString("APP_VERSION", "dev"),
		ShutdownTimeout:   pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		ReadHeaderTimeout: pkgconfig.GetEnvDuration("READ_HEADER_TIMEOUT", 5*time.Second),
		MaxBodyBytes:      int64(pkgconfig.GetEnvInt("MAX_BODY_BYTES", 1<<20)),
		CSPEnabled:        pkgconfig.GetEnvBool("CSP_ENABLED", true),
		CSPReportOnly:     pkgconfig.GetEnvBool("CSP_REPORT_ONLY", false),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app configuration: %w", err)
	}

	return config, nil
}

// Validate checks configuration correctness.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %s", strconv.Itoa(c.Port))
	}

	if c.Version == "" {
		return fmt.Errorf("APP_VERSION cannot be empty")
	}

	if err := pkgconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	if err := pkgconfig.ValidatePositiveDuration(c.ReadHeaderTimeout); err != nil {
		return fmt.Errorf("READ_HEADER_TIMEOUT: %w", err)
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	return nil
}

// Addr returns the listen address in ":port" form.
func (c *AppConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
