package sourcelist

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for source list loading.
//
// The HTTP loader applies the usual outbound-fetch precautions:
//   - DenyPrivateIPs: blocks URLs resolving to private addresses (SSRF)
//   - MaxBodySize: bounds response reading to prevent memory exhaustion
//   - MaxRedirects: prevents redirect loops
//   - Timeout: prevents resource starvation from slow servers
type Config struct {
	// Path is the local file to read the source list from. Used when URL
	// is empty.
	// Default: data/sources.txt
	Path string

	// URL is the HTTP(S) address to fetch the source list from. When set,
	// it takes precedence over Path.
	// Default: "" (file loading)
	URL string

	// Timeout is the maximum duration for a single fetch request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes. Responses
	// exceeding this limit are rejected.
	// Default: 1048576 (1MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is validated like the original URL.
	// Default: 3
	MaxRedirects int

	// DenyPrivateIPs controls whether URLs resolving to private, loopback,
	// or link-local addresses are rejected. Should always be true in
	// production.
	// Default: true
	DenyPrivateIPs bool
}

// DefaultConfig returns the default source list configuration.
func DefaultConfig() Config {
	return Config{
		Path:           "data/sources.txt",
		Timeout:        10 * time.Second,
		MaxBodySize:    1024 * 1024, // 1MB
		MaxRedirects:   3,
		DenyPrivateIPs: true,
	}
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Path == "" && c.URL == "" {
		return fmt.Errorf("either a source list path or URL must be set")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables, falling
// back to defaults for anything unset. After loading, the configuration is
// validated.
//
// Environment variables:
//   - SEED_SOURCE_PATH: local file path (default: data/sources.txt)
//   - SEED_SOURCE_URL: HTTP(S) URL, takes precedence over the file path
//   - SEED_SOURCE_TIMEOUT: duration string, e.g., "10s" (default: 10s)
//   - SEED_SOURCE_MAX_BODY_SIZE: integer in bytes (default: 1048576)
//   - SEED_SOURCE_MAX_REDIRECTS: integer (default: 3)
//   - SEED_SOURCE_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if val := os.Getenv("SEED_SOURCE_PATH"); val != "" {
		cfg.Path = val
	}

	if val := os.Getenv("SEED_SOURCE_URL"); val != "" {
		cfg.URL = val
	}

	if val := os.Getenv("SEED_SOURCE_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid SEED_SOURCE_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("SEED_SOURCE_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid SEED_SOURCE_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if val := os.Getenv("SEED_SOURCE_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid SEED_SOURCE_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}

	if val := os.Getenv("SEED_SOURCE_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("source list configuration invalid: %w", err)
	}

	return cfg, nil
}
