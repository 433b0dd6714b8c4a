package pipeline

import (
	"context"
	"reflect"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/contentgen/errors"
	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/observability"
)

// Stats counts the work done by a run.
type Stats struct {
	Batches int
	Fetched int
	Emitted int
}

// Engine drives items of type I from a Source through a Stage chain into a
// Sink of O.
type Engine[I, O any] struct {
	source Source[I]
	sink   Sink[O]
	stages []Stage
	opts   options
	log    *logger.Logger

	mu    sync.Mutex
	stats Stats
}

// New assembles an engine. It fails with INVALID_CONFIG when the batch size
// or concurrency is not positive, when source or sink is nil, or when the
// declared stage types can never line up.
func New[I, O any](source Source[I], sink Sink[O], stages []Stage, opts ...Option) (*Engine[I, O], error) {
	o := options{name: "pipeline", batchSize: DefaultBatchSize, concurrency: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.batchSize <= 0 {
		return nil, errors.InvalidConfig("batch_size", "must be > 0")
	}
	if o.concurrency <= 0 {
		return nil, errors.InvalidConfig("concurrency", "must be > 0")
	}
	if source == nil {
		return nil, errors.InvalidConfig("source", "is required")
	}
	if sink == nil {
		return nil, errors.InvalidConfig("sink", "is required")
	}
	if err := CheckChain(reflect.TypeFor[I](), stages, reflect.TypeFor[O]()); err != nil {
		return nil, err
	}

	log := logger.OrDefault(o.log, "pipeline").WithFields(map[string]interface{}{
		logger.FieldPipeline: o.name,
	})
	return &Engine[I, O]{
		source: source,
		sink:   sink,
		stages: append([]Stage(nil), stages...),
		opts:   o,
		log:    log,
	}, nil
}

// Name returns the pipeline name.
func (e *Engine[I, O]) Name() string { return e.opts.name }

// BatchSize returns the configured batch size.
func (e *Engine[I, O]) BatchSize() int { return e.opts.batchSize }

// Stats returns the counters of the current or last run.
func (e *Engine[I, O]) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Run drives the pipeline until the source is exhausted or something
// fails. Source, stage and sink failures are returned as SOURCE_FAILURE,
// STAGE_FAILURE and SINK_FAILURE with the original error as cause; a
// cancelled ctx is returned as ctx.Err(). The source is closed on return
// when it holds resources.
func (e *Engine[I, O]) Run(ctx context.Context) (err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanRun,
		attribute.String(observability.AttrPipeline, e.opts.name),
		attribute.Int(observability.AttrBatchSize, e.opts.batchSize),
	)
	start := time.Now()
	log := e.log.WithContext(ctx)
	defer func() {
		if cerr := closeSource(e.source); cerr != nil {
			log.Warn("closing source failed", logger.ErrorFields("close", cerr))
		}
		observability.EndSpan(span, err)
	}()

	e.mu.Lock()
	e.stats = Stats{}
	e.mu.Unlock()

	for batchNo := 1; ; batchNo++ {
		if err := ctx.Err(); err != nil {
			return e.abort(ctx, err, "context")
		}
		n, err := e.runBatch(ctx, batchNo)
		if err != nil {
			return e.abort(ctx, err, "batch")
		}
		if n == 0 {
			break
		}
	}

	stats := e.Stats()
	log.Info("pipeline finished", logger.MergeWithDuration(map[string]interface{}{
		"batches":       stats.Batches,
		"items_fetched": stats.Fetched,
		"items_emitted": stats.Emitted,
	}, time.Since(start)))
	return nil
}

// runBatch fetches, processes and emits one batch. It returns the number of
// items fetched; zero means the source is exhausted.
func (e *Engine[I, O]) runBatch(ctx context.Context, batchNo int) (int, error) {
	log := e.log.WithContext(ctx)

	items, err := FetchBatch(ctx, e.source, e.opts.batchSize)
	if err != nil {
		return 0, errors.SourceFailure(err).WithDetail("source", nameOf(e.source))
	}
	if len(items) == 0 {
		return 0, nil
	}
	e.count(func(s *Stats) { s.Fetched += len(items) })
	e.opts.metrics.RecordFetched(ctx, e.opts.name, len(items))
	log.Debug("batch fetched", map[string]interface{}{
		logger.FieldBatch:     batchNo,
		logger.FieldBatchSize: len(items),
	})

	ctx, span := observability.StartSpan(ctx, observability.SpanBatch,
		attribute.String(observability.AttrPipeline, e.opts.name),
		attribute.Int(observability.AttrBatch, batchNo),
		attribute.Int(observability.AttrBatchSize, len(items)),
	)
	emitted, err := e.processAndEmit(ctx, items)
	observability.EndSpan(span, err)
	if err != nil {
		return 0, err
	}

	e.count(func(s *Stats) { s.Batches++ })
	e.opts.metrics.RecordBatch(ctx, e.opts.name)
	log.Debug("batch emitted", map[string]interface{}{
		logger.FieldBatch: batchNo,
		logger.FieldItems: emitted,
	})
	return len(items), nil
}

// processAndEmit runs the whole batch through the chain, then hands the
// results to the sink in order. Nothing is emitted if any item fails.
func (e *Engine[I, O]) processAndEmit(ctx context.Context, items []I) (int, error) {
	hook := func(ctx context.Context, stage string, d time.Duration, err error) {
		e.opts.metrics.RecordStage(ctx, stage, d, err)
	}
	outs, err := processConcurrent(ctx, items, e.stages, e.opts.concurrency, hook)
	if err != nil {
		return 0, err
	}

	sinkName := nameOf(e.sink)
	for i, v := range outs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		item, err := As[O](sinkName, v)
		if err != nil {
			return i, e.outputMismatch(err)
		}
		if err := e.sink.Emit(ctx, item); err != nil {
			return i, errors.SinkFailure(sinkName, err).WithDetail("item_index", i)
		}
		e.count(func(s *Stats) { s.Emitted++ })
		e.opts.metrics.RecordEmitted(ctx, e.opts.name, 1)
	}
	return len(outs), nil
}

// outputMismatch reports a chain result the sink cannot take as a failure
// of the stage that produced it.
func (e *Engine[I, O]) outputMismatch(err error) error {
	if len(e.stages) == 0 {
		return errors.SinkFailure(nameOf(e.sink), err)
	}
	last := len(e.stages) - 1
	return errors.StageFailure(e.stages[last].Name(), last, err)
}

func (e *Engine[I, O]) abort(ctx context.Context, err error, during string) error {
	code := errors.CodeOf(err)
	component := during
	if app, ok := errors.AsAppError(err); ok {
		if s, ok := app.Details["stage"].(string); ok {
			component = s
		} else if s, ok := app.Details["sink"].(string); ok {
			component = s
		} else if s, ok := app.Details["source"].(string); ok {
			component = s
		}
	}
	if code == "" {
		code = "CANCELLED"
	}
	e.opts.metrics.RecordError(ctx, string(code), component)

	stats := e.Stats()
	e.log.WithContext(ctx).Error("pipeline aborted", map[string]interface{}{
		logger.FieldError:  err.Error(),
		"error_code":       string(code),
		logger.FieldStage:  component,
		"items_fetched":    stats.Fetched,
		"items_emitted":    stats.Emitted,
		"batches_finished": stats.Batches,
	})
	return err
}

func (e *Engine[I, O]) count(fn func(*Stats)) {
	e.mu.Lock()
	fn(&e.stats)
	e.mu.Unlock()
}
