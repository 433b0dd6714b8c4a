// Package kafka publishes content packages to Kafka through segmentio/kafka-go.
//
// The package holds the shared connection settings (brokers, TLS, SASL,
// compression) and error classification; kafka/producer owns the writer.
// Publishing is single-attempt: a failed write is reported to the caller
// and never retried here.
//
//	kafka:
//	  enabled: true
//	  brokers: ["localhost:9092"]
//	  topic: "content.packages"
package kafka
