package output

import (
	"context"
	"fmt"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/logger"
)

// Publisher publishes one JSON value under a key. *producer.Producer
// satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, value any) error
}

// KafkaSink publishes each package as a single message keyed by topic id.
type KafkaSink struct {
	pub Publisher
	log *logger.Logger
}

// NewKafkaSink creates a sink over pub. A nil logger uses the global one.
func NewKafkaSink(pub Publisher, log *logger.Logger) *KafkaSink {
	return &KafkaSink{pub: pub, log: logger.OrDefault(log, "output.kafka")}
}

// Name identifies the sink in logs and errors.
func (s *KafkaSink) Name() string { return "kafka" }

// Emit publishes pkg. The write is attempted once.
func (s *KafkaSink) Emit(ctx context.Context, pkg *content.Package) error {
	if pkg == nil || pkg.Article == nil {
		return fmt.Errorf("output: package has no article")
	}
	key := pkg.TopicID()
	if err := s.pub.PublishJSON(ctx, key, pkg); err != nil {
		return fmt.Errorf("output: publish package %q: %w", key, err)
	}
	s.log.WithContext(ctx).Debug("package published", map[string]interface{}{logger.FieldTopic: key})
	return nil
}
