package mockserver

import "time"

// Config holds mock server settings.
type Config struct {
	// Addr is the listen address. Port 0 picks a free port.
	Addr string `mapstructure:"addr"`
	// Token, when set, is required as a bearer token on /weibo/hot.
	Token string `mapstructure:"token"`
	// PageSize is the number of topics per page. Zero serves every topic
	// on page 1.
	PageSize     int           `mapstructure:"page_size"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:0"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 30 * time.Second
	}
}
