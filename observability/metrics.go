package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds the instruments recorded by the engine and by
// model-backed stages. A nil *PipelineMetrics records nothing.
type PipelineMetrics struct {
	itemsFetched  metric.Int64Counter
	itemsEmitted  metric.Int64Counter
	batches       metric.Int64Counter
	stageDuration metric.Float64Histogram
	errors        metric.Int64Counter
	modelRequests metric.Int64Counter
	modelDuration metric.Float64Histogram
}

// NewPipelineMetrics creates the instruments on meter.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	var (
		m   PipelineMetrics
		err error
	)
	if m.itemsFetched, err = meter.Int64Counter("pipeline.items.fetched",
		metric.WithDescription("Items pulled from the source")); err != nil {
		return nil, fmt.Errorf("creating pipeline.items.fetched counter: %w", err)
	}
	if m.itemsEmitted, err = meter.Int64Counter("pipeline.items.emitted",
		metric.WithDescription("Items accepted by the sink")); err != nil {
		return nil, fmt.Errorf("creating pipeline.items.emitted counter: %w", err)
	}
	if m.batches, err = meter.Int64Counter("pipeline.batches",
		metric.WithDescription("Batches fully processed and emitted")); err != nil {
		return nil, fmt.Errorf("creating pipeline.batches counter: %w", err)
	}
	if m.stageDuration, err = meter.Float64Histogram("pipeline.stage.duration",
		metric.WithDescription("Per-item stage processing time"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating pipeline.stage.duration histogram: %w", err)
	}
	if m.errors, err = meter.Int64Counter("pipeline.errors",
		metric.WithDescription("Run-aborting failures by code and component")); err != nil {
		return nil, fmt.Errorf("creating pipeline.errors counter: %w", err)
	}
	if m.modelRequests, err = meter.Int64Counter("model.requests",
		metric.WithDescription("Model client invocations")); err != nil {
		return nil, fmt.Errorf("creating model.requests counter: %w", err)
	}
	if m.modelDuration, err = meter.Float64Histogram("model.duration",
		metric.WithDescription("Model client latency"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating model.duration histogram: %w", err)
	}
	return &m, nil
}

// RecordFetched counts n items read from the source of pipeline.
func (m *PipelineMetrics) RecordFetched(ctx context.Context, pipeline string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.itemsFetched.Add(ctx, int64(n), metric.WithAttributes(attribute.String(AttrPipeline, pipeline)))
}

// RecordEmitted counts n items handed to the sink.
func (m *PipelineMetrics) RecordEmitted(ctx context.Context, pipeline string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.itemsEmitted.Add(ctx, int64(n), metric.WithAttributes(attribute.String(AttrPipeline, pipeline)))
}

// RecordBatch counts one completed batch.
func (m *PipelineMetrics) RecordBatch(ctx context.Context, pipeline string) {
	if m == nil {
		return
	}
	m.batches.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrPipeline, pipeline)))
}

// RecordStage records how long stage took on one item.
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrStage, stage),
		attribute.String("status", status(err)),
	))
}

// RecordError counts a failure by error code and component.
func (m *PipelineMetrics) RecordError(ctx context.Context, code, component string) {
	if m == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorCode, code),
		attribute.String("component", component),
	))
}

// RecordModelCall records one model invocation made on behalf of stage.
func (m *PipelineMetrics) RecordModelCall(ctx context.Context, stage, variantID string, d time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrStage, stage),
		attribute.String(AttrVariantID, variantID),
		attribute.String("status", status(err)),
	)
	m.modelRequests.Add(ctx, 1, attrs)
	m.modelDuration.Record(ctx, d.Seconds(), attrs)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
