package llm

import (
	"fmt"
	"time"
)

// Config holds configuration for creating an LLM adapter. The Dialect field
// selects the provider mapping.
type Config struct {
	// Name identifies this adapter in logs and spans. Defaults to "<dialect>-llm".
	Name string `yaml:"name" mapstructure:"name"`

	// Dialect must match a registered dialect ("ollama", "openai").
	Dialect string `yaml:"dialect" mapstructure:"dialect"`

	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Model is the default model, used when a request names none.
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey is sent as a bearer token when set.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Timeout for HTTP requests. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Dialect == "" {
		c.Dialect = "ollama"
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.Name == "" {
		c.Name = c.Dialect + "-llm"
	}
}

// Validate checks the adapter settings.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("llm.base_url is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	return nil
}
