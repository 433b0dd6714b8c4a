package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

var codecs = map[string]kafkago.Compression{
	"none":   0,
	"gzip":   kafkago.Gzip,
	"snappy": kafkago.Snappy,
	"lz4":    kafkago.Lz4,
	"zstd":   kafkago.Zstd,
}

var saslMechanisms = map[string]func(user, pass string) (sasl.Mechanism, error){
	"PLAIN": func(user, pass string) (sasl.Mechanism, error) {
		return plain.Mechanism{Username: user, Password: pass}, nil
	},
	"SCRAM-SHA-256": func(user, pass string) (sasl.Mechanism, error) {
		return scram.Mechanism(scram.SHA256, user, pass)
	},
	"SCRAM-SHA-512": func(user, pass string) (sasl.Mechanism, error) {
		return scram.Mechanism(scram.SHA512, user, pass)
	},
}

// Codec returns the kafka-go codec for a compression name. Unknown names
// fall back to snappy; Validate rejects them earlier.
func Codec(name string) kafkago.Compression {
	if c, ok := codecs[name]; ok {
		return c
	}
	return kafkago.Snappy
}

// NewTransport builds the writer transport for cfg.
func NewTransport(cfg Config) (*kafkago.Transport, error) {
	t := &kafkago.Transport{IdleTimeout: cfg.IdleTimeout, MetadataTTL: cfg.MetadataTTL}

	if cfg.TLS.Enabled {
		tc, err := cfg.TLS.build()
		if err != nil {
			return nil, fmt.Errorf("kafka tls: %w", err)
		}
		t.TLS = tc
	}
	if cfg.SASL.Enabled {
		mk, ok := saslMechanisms[cfg.SASL.Mechanism]
		if !ok {
			return nil, fmt.Errorf("kafka sasl: unsupported mechanism %q", cfg.SASL.Mechanism)
		}
		m, err := mk(cfg.SASL.Username, cfg.SASL.Password)
		if err != nil {
			return nil, fmt.Errorf("kafka sasl: %w", err)
		}
		t.SASL = m
	}
	return t, nil
}

func (c TLSConfig) build() (*tls.Config, error) {
	tc := &tls.Config{InsecureSkipVerify: c.SkipVerify, MinVersion: tls.VersionTLS12}

	if c.CAFile != "" {
		pem, err := os.ReadFile(c.CAFile)
		if err != nil {
			return nil, err
		}
		roots := x509.NewCertPool()
		if !roots.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates in %s", c.CAFile)
		}
		tc.RootCAs = roots
	}
	if c.CertFile != "" {
		pair, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, err
		}
		tc.Certificates = []tls.Certificate{pair}
	}
	return tc, nil
}
