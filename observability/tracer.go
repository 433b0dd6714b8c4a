package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanRun   = "pipeline.run"
	SpanBatch = "pipeline.batch"
	SpanModel = "model.call"
)

// Attribute keys.
const (
	AttrPipeline  = "pipeline.name"
	AttrBatch     = "pipeline.batch"
	AttrBatchSize = "pipeline.batch_size"
	AttrStage     = "pipeline.stage"
	AttrVariantID = "model.prompt_variant_id"
	AttrRequestID = "model.request_id"
	AttrErrorCode = "error.code"
)

// StartSpan starts a span on the module tracer.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err (if any) on span and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
