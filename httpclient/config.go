package httpclient

import (
	"fmt"
	"time"
)

// DefaultTimeout bounds a request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config configures a Client. Collaborators build it from their own
// settings rather than reading it from files.
type Config struct {
	BaseURL string
	// Timeout covers the whole exchange including the body read.
	Timeout time.Duration
	Auth    Auth
	// Headers are set on every request before per-request headers.
	Headers map[string]string
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate rejects a negative timeout.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("httpclient: timeout must not be negative (got: %v)", c.Timeout)
	}
	return nil
}
