package hotlist

import (
	"time"

	"github.com/kbukum/contentgen/validation"
)

// Config configures a hot list source.
type Config struct {
	// Endpoint is the full URL of the hot list API.
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`
	// Token is sent as a bearer token. Empty sends no Authorization header.
	Token string `mapstructure:"token"`
	// MaxPages bounds how many pages one run reads. Defaults to 1.
	MaxPages int `mapstructure:"max_pages" validate:"gte=0"`
	// PageParam is the query parameter carrying the page number.
	PageParam string        `mapstructure:"page_param"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.MaxPages <= 0 {
		c.MaxPages = 1
	}
	if c.PageParam == "" {
		c.PageParam = "page"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
