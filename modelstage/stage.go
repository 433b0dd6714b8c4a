package modelstage

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/contentgen/errors"
	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/observability"
	"github.com/kbukum/contentgen/pipeline"
)

// Config describes a model-backed stage. Name, Client, Variants and Parse
// are required.
type Config[I, O any] struct {
	Name     string
	Client   llm.Client
	Variants VariantBuilder[I]
	Select   VariantSelector[I]
	Request  RequestBuilder[I]
	Parse    ResponseParser[I, O]
	// Params feed the default request builder. Ignored when Request is set.
	Params  Params
	Logger  *logger.Logger
	Metrics *observability.PipelineMetrics
}

// Stage runs the four-phase model protocol. It implements pipeline.Stage,
// pipeline.Typed, pipeline.Transformer[I, O] and
// provider.RequestResponse[I, O].
type Stage[I, O any] struct {
	name     string
	client   llm.Client
	variants VariantBuilder[I]
	selector VariantSelector[I]
	request  RequestBuilder[I]
	parse    ResponseParser[I, O]
	log      *logger.Logger
	metrics  *observability.PipelineMetrics
}

// New validates cfg and fills in the default selector and request builder.
func New[I, O any](cfg Config[I, O]) (*Stage[I, O], error) {
	switch {
	case cfg.Name == "":
		return nil, errors.InvalidConfig("name", "is required")
	case cfg.Client == nil:
		return nil, errors.InvalidConfig("client", "is required")
	case cfg.Variants == nil:
		return nil, errors.InvalidConfig("variants", "is required")
	case cfg.Parse == nil:
		return nil, errors.InvalidConfig("parse", "is required")
	}
	if cfg.Select == nil {
		cfg.Select = SelectFirst[I]()
	}
	if cfg.Request == nil {
		cfg.Request = DefaultRequest[I](cfg.Params)
	}
	return &Stage[I, O]{
		name:     cfg.Name,
		client:   cfg.Client,
		variants: cfg.Variants,
		selector: cfg.Select,
		request:  cfg.Request,
		parse:    cfg.Parse,
		log:      logger.OrDefault(cfg.Logger, "modelstage").WithFields(map[string]interface{}{logger.FieldStage: cfg.Name}),
		metrics:  cfg.Metrics,
	}, nil
}

func (s *Stage[I, O]) Name() string                     { return s.name }
func (s *Stage[I, O]) IsAvailable(context.Context) bool { return true }
func (s *Stage[I, O]) InputType() reflect.Type          { return reflect.TypeFor[I]() }
func (s *Stage[I, O]) OutputType() reflect.Type         { return reflect.TypeFor[O]() }

// Process implements pipeline.Stage.
func (s *Stage[I, O]) Process(ctx context.Context, item any) (any, error) {
	in, err := pipeline.As[I](s.name, item)
	if err != nil {
		return nil, err
	}
	return s.Transform(ctx, in)
}

// Execute implements provider.RequestResponse.
func (s *Stage[I, O]) Execute(ctx context.Context, in I) (O, error) {
	return s.Transform(ctx, in)
}

// Transform runs the four phases for in.
func (s *Stage[I, O]) Transform(ctx context.Context, in I) (O, error) {
	var zero O

	variants, err := s.variants(in)
	if err != nil {
		return zero, fmt.Errorf("%s: build variants: %w", s.name, err)
	}
	if len(variants) == 0 {
		return zero, errors.EmptyVariantSet(s.name)
	}

	selected, err := s.selector(in, variants)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeEmptyVariantSet) {
			return zero, errors.EmptyVariantSet(s.name)
		}
		if ae, ok := errors.AsAppError(err); ok && ae.Code == errors.ErrCodeVariantNotInSet {
			id, _ := ae.Details["variant_id"].(string)
			return zero, errors.VariantNotInSet(s.name, id)
		}
		return zero, fmt.Errorf("%s: select variant: %w", s.name, err)
	}
	if !slices.Contains(variants, selected) {
		return zero, errors.VariantNotInSet(s.name, selected.ID)
	}

	req, err := s.request(in, selected)
	if err != nil {
		return zero, fmt.Errorf("%s: build request: %w", s.name, err)
	}

	resp, err := s.call(ctx, req, selected.ID)
	if err != nil {
		return zero, err
	}

	out, err := s.parse(in, resp)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeMalformedResponse) {
			return zero, err
		}
		return zero, errors.MalformedResponse(s.name, err)
	}
	return out, nil
}

// call sends req and checks the response is keyed by the same request id.
func (s *Stage[I, O]) call(ctx context.Context, req llm.Request, variantID string) (llm.Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanModel,
		attribute.String(observability.AttrStage, s.name),
		attribute.String(observability.AttrRequestID, req.RequestID),
		attribute.String(observability.AttrVariantID, variantID),
	)
	start := time.Now()
	resp, err := s.client.Generate(ctx, req)
	elapsed := time.Since(start)
	s.metrics.RecordModelCall(ctx, s.name, variantID, elapsed, err)

	fields := logger.MergeWithDuration(map[string]interface{}{
		logger.FieldRequestID: req.RequestID,
		logger.FieldVariantID: variantID,
	}, elapsed)
	log := s.log.WithContext(ctx)

	if err != nil {
		err = errors.ModelFailure(s.name, err)
		observability.EndSpan(span, err)
		fields[logger.FieldError] = err.Error()
		log.Debug("model request failed", fields)
		return llm.Response{}, err
	}
	if resp.RequestID != req.RequestID {
		err = errors.MalformedResponse(s.name,
			fmt.Errorf("response request id %q does not match %q", resp.RequestID, req.RequestID))
		observability.EndSpan(span, err)
		return llm.Response{}, err
	}
	observability.EndSpan(span, nil)
	log.Debug("model request completed", fields)
	return resp, nil
}
