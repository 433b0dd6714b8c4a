// Package producer owns the kafka-go writer used to publish content.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/kbukum/contentgen/kafka"
	"github.com/kbukum/contentgen/logger"
)

// Writer is the subset of *kafkago.Writer the producer uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Stats() kafkago.WriterStats
	Close() error
}

// Producer wraps a kafka-go Writer with TLS/SASL and logging.
// Writes are attempted once.
type Producer struct {
	writer Writer
	cfg    kafka.Config
	log    *logger.Logger
	mu     sync.RWMutex
	closed bool
}

// New creates a producer. The writer connects lazily on the first write,
// so New succeeds without a reachable broker.
func New(cfg kafka.Config, log *logger.Logger) (*Producer, error) {
	cfg.ApplyDefaults()
	if !cfg.Enabled {
		return nil, fmt.Errorf("kafka is disabled")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka producer config: %w", err)
	}
	transport, err := kafka.NewTransport(cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer transport: %w", err)
	}

	p := &Producer{cfg: cfg, log: logger.OrDefault(log, "kafka").WithComponent("kafka.producer")}
	p.writer = &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Transport:    transport,
		Balancer:     &kafkago.Hash{},
		MaxAttempts:  1,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafkago.RequiredAcks(cfg.RequiredAcks),
		Compression:  kafka.Codec(cfg.Compression),
		WriteTimeout: cfg.WriteTimeout,
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			p.log.Error("writer: " + fmt.Sprintf(msg, args...))
		}),
	}
	p.log.Info("kafka producer initialized", map[string]interface{}{
		"brokers":     cfg.Brokers,
		"topic":       cfg.Topic,
		"compression": cfg.Compression,
	})
	return p, nil
}

// NewWithWriter creates a producer over an existing writer.
func NewWithWriter(cfg kafka.Config, w Writer, log *logger.Logger) *Producer {
	cfg.ApplyDefaults()
	return &Producer{writer: w, cfg: cfg, log: logger.OrDefault(log, "kafka").WithComponent("kafka.producer")}
}

// Name returns the producer name.
func (p *Producer) Name() string { return p.cfg.Name }

// Topic returns the default topic.
func (p *Producer) Topic() string { return p.cfg.Topic }

// IsAvailable reports whether the producer is open.
func (p *Producer) IsAvailable(_ context.Context) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

// Publish writes the messages in one call. Topic is only set on a
// message when it differs from the writer's topic, which kafka-go
// requires to be unset per message.
func (p *Producer) Publish(ctx context.Context, msgs ...kafka.Message) error {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return fmt.Errorf("kafka producer is closed")
	}
	if len(msgs) == 0 {
		return nil
	}

	out := make([]kafkago.Message, len(msgs))
	for i, m := range msgs {
		km := m.ToKafkaMessage()
		if km.Topic == p.cfg.Topic {
			km.Topic = ""
		}
		out[i] = km
	}

	start := time.Now()
	if err := p.writer.WriteMessages(ctx, out...); err != nil {
		topic := msgs[0].Topic
		if topic == "" {
			topic = p.cfg.Topic
		}
		return kafka.Classify(err, topic)
	}
	p.log.WithContext(ctx).Debug("kafka messages published", map[string]interface{}{
		logger.FieldTopic:    p.cfg.Topic,
		logger.FieldItems:    len(msgs),
		logger.FieldDuration: time.Since(start).Milliseconds(),
	})
	return nil
}

// PublishJSON marshals value and publishes it under key to the default topic.
func (p *Producer) PublishJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kafka producer: marshal JSON: %w", err)
	}
	return p.Publish(ctx, kafka.Message{
		Key:     key,
		Value:   data,
		Headers: map[string]string{"content-type": kafka.ContentTypeJSON},
	})
}

// Stats returns a snapshot of the writer counters.
func (p *Producer) Stats() kafka.WriterStats {
	return kafka.StatsFrom(p.writer.Stats())
}

// Close flushes and closes the writer. Safe to call more than once.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.log.Info("kafka producer closing", p.Stats().Fields())
	return p.writer.Close()
}
