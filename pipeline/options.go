package pipeline

import (
	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/observability"
)

// DefaultBatchSize is used when WithBatchSize is not given.
const DefaultBatchSize = 100

type options struct {
	name        string
	batchSize   int
	concurrency int
	log         *logger.Logger
	metrics     *observability.PipelineMetrics
}

// Option configures an Engine.
type Option func(*options)

// WithName names the pipeline in logs, spans and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithBatchSize sets how many items are pulled per batch. Must be > 0.
func WithBatchSize(n int) Option {
	return func(o *options) { o.batchSize = n }
}

// WithConcurrency sets how many items of a batch are processed at once.
// 1 (the default) processes items strictly one after another.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithLogger sets the engine logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records engine metrics. A nil value records nothing.
func WithMetrics(m *observability.PipelineMetrics) Option {
	return func(o *options) { o.metrics = m }
}
