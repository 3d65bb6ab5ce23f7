package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the studyhall service.
// Environment variables are parsed from the STUDYHALL_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// AI backend configuration. Neither key is required; with both absent
	// the assistant reports itself unavailable instead of failing startup.
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" default:""`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" default:""`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-pro"`

	// Per-attempt timeout for backend completion calls.
	AIRequestTimeoutSeconds int `envconfig:"AI_REQUEST_TIMEOUT_SECONDS" default:"60"`

	// Uploaded material files land here.
	UploadDir string `envconfig:"UPLOAD_DIR" default:"./uploads"`

	// The store is volatile; fixture rows are re-seeded on every start.
	SeedDemoData bool `envconfig:"SEED_DEMO_DATA" default:"true"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates derived settings.
func (c *Config) ResolveDefaults() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.AIRequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid AI_REQUEST_TIMEOUT_SECONDS: %d", c.AIRequestTimeoutSeconds)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with STUDYHALL_
// Example: STUDYHALL_HTTP_PORT, STUDYHALL_OPENAI_API_KEY
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("STUDYHALL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Bool("openai_key_present", cfg.OpenAIAPIKey != "").
		Bool("gemini_key_present", cfg.GeminiAPIKey != "").
		Str("openai_model", cfg.OpenAIModel).
		Str("gemini_model", cfg.GeminiModel).
		Int("ai_request_timeout_seconds", cfg.AIRequestTimeoutSeconds).
		Bool("seed_demo_data", cfg.SeedDemoData).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:               EnvTesting,
		HTTPPort:                  8080,
		OpenAIModel:               "gpt-4o",
		GeminiModel:               "gemini-1.5-pro",
		AIRequestTimeoutSeconds:   5,
		UploadDir:                 "./uploads",
		SeedDemoData:              false,
		HealthIntervalSeconds:     30,
		HealthProbeTimeoutSeconds: 5,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool { return c.Environment == EnvTesting }

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }
