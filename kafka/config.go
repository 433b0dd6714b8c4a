package kafka

import (
	"fmt"
	"time"
)

// Defaults for the content package producer.
const (
	DefaultTopic       = "content.packages"
	DefaultBroker      = "localhost:9092"
	DefaultCompression = "snappy"
)

// Config holds the producer settings of the kafka output.
type Config struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Name identifies the producer in logs.
	Name    string   `yaml:"name" mapstructure:"name"`
	Brokers []string `yaml:"brokers" mapstructure:"brokers"`
	// Topic receives one message per content package.
	Topic string `yaml:"topic" mapstructure:"topic"`

	TLS  TLSConfig  `yaml:"tls" mapstructure:"tls"`
	SASL SASLConfig `yaml:"sasl" mapstructure:"sasl"`

	// Compression is one of none, gzip, snappy, lz4, zstd.
	Compression  string        `yaml:"compression" mapstructure:"compression"`
	BatchSize    int           `yaml:"batch_size" mapstructure:"batch_size"`
	BatchTimeout time.Duration `yaml:"batch_timeout" mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	// RequiredAcks is -1 (all in-sync replicas) or 1 (leader only).
	RequiredAcks int `yaml:"required_acks" mapstructure:"required_acks"`

	IdleTimeout time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	MetadataTTL time.Duration `yaml:"metadata_ttl" mapstructure:"metadata_ttl"`
}

// TLSConfig enables TLS towards the brokers. Cert and key go together.
type TLSConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	SkipVerify bool   `yaml:"skip_verify" mapstructure:"skip_verify"`
	CAFile     string `yaml:"ca_file" mapstructure:"ca_file"`
	CertFile   string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile    string `yaml:"key_file" mapstructure:"key_file"`
}

// SASLConfig enables SASL authentication.
type SASLConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Mechanism is PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512.
	Mechanism string `yaml:"mechanism" mapstructure:"mechanism"`
	Username  string `yaml:"username" mapstructure:"username"`
	Password  string `yaml:"password" mapstructure:"password"`
}

// ApplyDefaults fills zero values. A package is published as soon as it is
// emitted, so batching defaults to a single message.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "kafka"
	}
	if len(c.Brokers) == 0 {
		c.Brokers = []string{DefaultBroker}
	}
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.Compression == "" {
		c.Compression = DefaultCompression
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 1
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = 10 * time.Millisecond
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.RequiredAcks == 0 {
		c.RequiredAcks = -1
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 30 * time.Second
	}
	if c.MetadataTTL == 0 {
		c.MetadataTTL = 6 * time.Second
	}
	if c.SASL.Enabled && c.SASL.Mechanism == "" {
		c.SASL.Mechanism = "PLAIN"
	}
}

// Validate checks an enabled config. A disabled one is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}
	if c.Topic == "" {
		return fmt.Errorf("kafka.topic is required")
	}
	if _, ok := codecs[c.Compression]; !ok {
		return fmt.Errorf("kafka.compression %q is not supported", c.Compression)
	}
	if c.BatchTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 || c.MetadataTTL < 0 {
		return fmt.Errorf("kafka timeouts must not be negative")
	}
	if c.RequiredAcks != -1 && c.RequiredAcks != 1 {
		return fmt.Errorf("kafka.required_acks must be -1 or 1 (got: %d)", c.RequiredAcks)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("kafka.tls.cert_file and key_file must be set together")
	}
	if c.SASL.Enabled {
		if _, ok := saslMechanisms[c.SASL.Mechanism]; !ok {
			return fmt.Errorf("kafka.sasl.mechanism %q is not supported", c.SASL.Mechanism)
		}
		if c.SASL.Username == "" {
			return fmt.Errorf("kafka.sasl.username is required")
		}
	}
	return nil
}
