package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoAPIKey is returned by Validate when no oracle credential is present.
var ErrNoAPIKey = errors.New("LLM API key not configured (set GOOGLE_API_KEY or GEMINI_API_KEY)")

// Config holds all PrivacyPal configuration.
type Config struct {
	// LLM configuration
	LLM LLMConfig `yaml:"llm"`

	// Oracle call behavior
	Oracle OracleConfig `yaml:"oracle"`

	// Pipeline settings
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the oracle provider.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Timeout  string `yaml:"timeout"`
}

// OracleConfig configures individual adjudication and coaching calls.
type OracleConfig struct {
	PerCallTimeout string  `yaml:"per_call_timeout"`
	Temperature    float32 `yaml:"temperature"`
}

// PipelineConfig configures the orchestrator.
type PipelineConfig struct {
	// Parallel bounds concurrent findings per message (1 = sequential)
	Parallel int `yaml:"parallel"`

	// Pace is the delay between messages when rendering a live feed
	Pace string `yaml:"pace"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
			Timeout:  "120s",
		},
		Oracle: OracleConfig{
			PerCallTimeout: "30s",
			Temperature:    0.1,
		},
		Pipeline: PipelineConfig{
			Parallel: 1,
			Pace:     "0s",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Defaults plus environment if the file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// GEMINI_API_KEY wins over GOOGLE_API_KEY when both are set
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if c.LLM.APIKey != "" && c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}

	if model := os.Getenv("PRIVACYPAL_MODEL"); model != "" {
		c.LLM.Model = model
	}
}

// GetLLMTimeout returns the client-level timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	return parseDuration(c.LLM.Timeout, 120*time.Second)
}

// GetPerCallTimeout returns the timeout for a single oracle call.
func (c *Config) GetPerCallTimeout() time.Duration {
	return parseDuration(c.Oracle.PerCallTimeout, 30*time.Second)
}

// GetPace returns the delay between rendered messages.
func (c *Config) GetPace() time.Duration {
	return parseDuration(c.Pipeline.Pace, 0)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// ValidProviders lists all supported LLM providers.
var ValidProviders = []string{"gemini"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return ErrNoAPIKey
	}

	validProvider := false
	for _, p := range ValidProviders {
		if c.LLM.Provider == p {
			validProvider = true
			break
		}
	}
	if !validProvider {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}

	if c.Pipeline.Parallel < 1 {
		return fmt.Errorf("pipeline.parallel must be at least 1, got %d", c.Pipeline.Parallel)
	}

	return nil
}
