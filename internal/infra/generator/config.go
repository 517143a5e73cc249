package generator

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Bounds for construction-time configuration. Values outside these ranges
// fail closed: a misconfigured generator is worse than no generator.
const (
	minMaxTokens = 1
	maxMaxTokens = 4096

	minTemperature = 0.0
	maxTemperature = 2.0
)

// Answer-generation defaults, applied when the environment does not override
// them.
const (
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7
	defaultTimeout     = 60 * time.Second
)

// Config holds the construction-time parameters of a generator. The values
// are fixed for the lifetime of the client and shared by every call.
type Config struct {
	// Model is the API model identifier.
	Model string

	// MaxTokens bounds the length of the generated answer.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float32

	// Timeout is the maximum duration for a single generation API call.
	Timeout time.Duration
}

// Validate returns an error when any parameter is outside its valid range.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}

	if c.MaxTokens < minMaxTokens || c.MaxTokens > maxMaxTokens {
		return fmt.Errorf("max tokens must be in [%d, %d], got %d",
			minMaxTokens, maxMaxTokens, c.MaxTokens)
	}

	if c.Temperature < minTemperature || c.Temperature > maxTemperature {
		return fmt.Errorf("temperature must be in [%.1f, %.1f], got %.2f",
			minTemperature, maxTemperature, c.Temperature)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	return nil
}

// LoadConfig loads generator configuration from environment variables,
// falling back to the given model and the standard answer-generation
// defaults. Returns an error if any value is invalid (fail-closed behavior).
//
// Environment variables:
//   - GENERATOR_MODEL: API model identifier
//   - GENERATOR_MAX_TOKENS: answer length budget (default: 1000)
//   - GENERATOR_TEMPERATURE: sampling temperature (default: 0.7)
//   - GENERATOR_TIMEOUT: per-call timeout (default: 60s)
func LoadConfig(defaultModel string) (*Config, error) {
	config := &Config{
		Model:       defaultModel,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
		Timeout:     defaultTimeout,
	}

	if model := os.Getenv("GENERATOR_MODEL"); model != "" {
		config.Model = model
	}

	if envTokens := os.Getenv("GENERATOR_MAX_TOKENS"); envTokens != "" {
		parsed, err := strconv.Atoi(envTokens)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATOR_MAX_TOKENS format: %s: %w", envTokens, err)
		}
		config.MaxTokens = parsed
	}

	if envTemp := os.Getenv("GENERATOR_TEMPERATURE"); envTemp != "" {
		parsed, err := strconv.ParseFloat(envTemp, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATOR_TEMPERATURE format: %s: %w", envTemp, err)
		}
		config.Temperature = float32(parsed)
	}

	if envTimeout := os.Getenv("GENERATOR_TIMEOUT"); envTimeout != "" {
		parsed, err := time.ParseDuration(envTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATOR_TIMEOUT format: %s: %w", envTimeout, err)
		}
		config.Timeout = parsed
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator configuration: %w", err)
	}

	return config, nil
}
