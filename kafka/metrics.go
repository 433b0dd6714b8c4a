package kafka

import (
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/kbukum/contentgen/logger"
)

// WriterStats is the subset of kafka-go writer statistics the producer
// reports when it closes.
type WriterStats struct {
	Topic    string
	Writes   int64
	Messages int64
	Bytes    int64
	Errors   int64
	AvgWrite time.Duration
	MaxWrite time.Duration
}

// StatsFrom copies the counters out of a kafka-go snapshot.
func StatsFrom(s kafkago.WriterStats) WriterStats {
	return WriterStats{
		Topic:    s.Topic,
		Writes:   s.Writes,
		Messages: s.Messages,
		Bytes:    s.Bytes,
		Errors:   s.Errors,
		AvgWrite: s.WriteTime.Avg,
		MaxWrite: s.WriteTime.Max,
	}
}

// Fields renders the stats as log fields.
func (s WriterStats) Fields() map[string]interface{} {
	return map[string]interface{}{
		logger.FieldTopic:    s.Topic,
		logger.FieldItems:    s.Messages,
		logger.FieldDuration: s.AvgWrite.Milliseconds(),
		"writes":             s.Writes,
		"bytes":              s.Bytes,
		"errors":             s.Errors,
		"max_write_ms":       s.MaxWrite.Milliseconds(),
	}
}
