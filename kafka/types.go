package kafka

import (
	"sort"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Content types carried in the content-type header.
const (
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
)

// Message is an outgoing Kafka record. An empty Topic uses the producer default.
type Message struct {
	Key       string
	Value     []byte
	Topic     string
	Timestamp time.Time
	Headers   map[string]string
}

// ToKafkaMessage converts m to a kafka-go message. Headers are emitted in
// key order so the encoding is stable.
func (m Message) ToKafkaMessage() kafkago.Message {
	keys := make([]string, 0, len(m.Headers))
	for k := range m.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	headers := make([]kafkago.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(m.Headers[k])})
	}

	msg := kafkago.Message{
		Topic:   m.Topic,
		Value:   m.Value,
		Time:    m.Timestamp,
		Headers: headers,
	}
	if m.Key != "" {
		msg.Key = []byte(m.Key)
	}
	return msg
}
