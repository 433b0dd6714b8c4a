package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/content/stages"
	"github.com/kbukum/contentgen/hotlist"
	"github.com/kbukum/contentgen/kafka/producer"
	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/llm/cache"
	"github.com/kbukum/contentgen/llm/mock"
	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/modelstage"
	"github.com/kbukum/contentgen/observability"
	"github.com/kbukum/contentgen/output"
	"github.com/kbukum/contentgen/pipeline"
	"github.com/kbukum/contentgen/provider"
	"github.com/kbukum/contentgen/redis"
	"github.com/kbukum/contentgen/storage"
	"github.com/kbukum/contentgen/version"

	// Model dialects and storage backends register themselves.
	_ "github.com/kbukum/contentgen/llm/ollama"
	_ "github.com/kbukum/contentgen/llm/openai"
	_ "github.com/kbukum/contentgen/storage/local"
	_ "github.com/kbukum/contentgen/storage/s3"
)

// Engine is the assembled content pipeline.
type Engine = pipeline.Engine[*content.HotTopic, *content.Package]

// Overrides replace configured components, for instance an in-process
// model or a fixed clock in tests. Nil fields keep the configured ones.
type Overrides struct {
	Model  llm.Provider
	Sink   pipeline.Sink[*content.Package]
	Source pipeline.Source[*content.HotTopic]
	Clock  func() time.Time
}

// Build assembles the engine from the configuration. Resources that need
// closing are registered as stop hooks.
func (a *App) Build(ctx context.Context, ov Overrides) (*Engine, error) {
	cfg := a.Cfg

	metrics, err := a.buildTelemetry(ctx)
	if err != nil {
		return nil, err
	}

	src := ov.Source
	if src == nil {
		if src, err = a.buildSource(ov.Clock); err != nil {
			return nil, err
		}
	}

	client, err := a.buildModel(ov.Model)
	if err != nil {
		return nil, err
	}

	chain, err := a.buildStages(client, metrics, ov.Clock)
	if err != nil {
		return nil, err
	}

	sink := ov.Sink
	if sink == nil {
		if sink, err = a.buildSink(ctx, ov.Clock); err != nil {
			return nil, err
		}
	}

	a.Logger.Info("pipeline assembled", map[string]interface{}{
		logger.FieldDialect:   a.Cfg.LLM.Dialect,
		logger.FieldSink:      a.Cfg.Output.Kind,
		logger.FieldBatchSize: cfg.Pipeline.BatchSize,
		"concurrency":         cfg.Pipeline.Concurrency,
		"cache":               a.Cfg.Cache.Enabled,
	})

	return pipeline.New[*content.HotTopic, *content.Package](src, sink, chain,
		pipeline.WithName(cfg.Name),
		pipeline.WithBatchSize(cfg.Pipeline.BatchSize),
		pipeline.WithConcurrency(cfg.Pipeline.Concurrency),
		pipeline.WithLogger(a.Logger),
		pipeline.WithMetrics(metrics),
	)
}

// Run builds the engine and runs it to completion under RunTask.
func (a *App) Run(ctx context.Context, ov Overrides) (pipeline.Stats, error) {
	var stats pipeline.Stats
	err := a.RunTask(ctx, func(ctx context.Context) error {
		eng, err := a.Build(ctx, ov)
		if err != nil {
			return err
		}
		runErr := eng.Run(ctx)
		stats = eng.Stats()
		return runErr
	})
	return stats, err
}

func (a *App) buildTelemetry(ctx context.Context) (*observability.PipelineMetrics, error) {
	tcfg := a.Cfg.Telemetry
	if !tcfg.Enabled {
		return nil, nil
	}
	if tcfg.ServiceVersion == "" {
		tcfg.ServiceVersion = version.Get().Version
	}
	shutdown, err := observability.Setup(ctx, tcfg)
	if err != nil {
		return nil, err
	}
	a.OnStop(Hook(shutdown))
	return observability.NewPipelineMetrics(observability.Meter(a.Cfg.Name))
}

func (a *App) buildSource(clock func() time.Time) (pipeline.Source[*content.HotTopic], error) {
	opts := []hotlist.Option{hotlist.WithLogger(a.Logger)}
	if clock != nil {
		opts = append(opts, hotlist.WithClock(clock))
	}
	hot, err := hotlist.New(a.Cfg.Source, opts...)
	if err != nil {
		return nil, err
	}

	var src pipeline.Source[*content.HotTopic] = pipeline.Filter[*content.HotTopic](hot, func(t *content.HotTopic) bool {
		return t.Status == "" || t.Status == content.StatusActive
	})
	if limit := a.Cfg.Pipeline.Limit; limit > 0 {
		src = pipeline.Take(src, limit)
	}
	return src, nil
}

// buildModel wraps the backend in logging, tracing and, when enabled, the
// reply cache. The cache sits innermost so hits are still logged and traced.
func (a *App) buildModel(override llm.Provider) (llm.Client, error) {
	backend := override
	if backend == nil {
		if a.Cfg.LLM.Dialect == DialectMock {
			backend = mock.New()
		} else {
			adapter, err := llm.New(a.Cfg.LLM)
			if err != nil {
				return nil, err
			}
			backend = adapter
		}
	}

	mws := []provider.Middleware[llm.Request, llm.Response]{
		provider.WithLogging[llm.Request, llm.Response](a.Logger),
		provider.WithTracing[llm.Request, llm.Response]("llm"),
	}

	rc, err := redis.New(a.Cfg.Cache, a.Logger)
	switch {
	case err == nil:
		a.OnStop(closeHook(rc))
		mws = append(mws, cache.Middleware(rc, a.Cfg.Cache.KeyPrefix, a.Cfg.Cache.TTLDuration(), a.Logger))
	case !errors.Is(err, redis.ErrDisabled):
		return nil, err
	}

	return llm.AsClient(provider.Chain(mws...)(backend)), nil
}

func (a *App) buildStages(client llm.Client, metrics *observability.PipelineMetrics, clock func() time.Time) ([]pipeline.Stage, error) {
	opts := func(p StageParams) stages.Options {
		return stages.Options{
			Params:  modelstage.Params{Temperature: p.Temperature, MaxTokens: p.MaxTokens},
			Clock:   clock,
			Logger:  a.Logger,
			Metrics: metrics,
		}
	}

	explainer, err := stages.NewTopicExplainer(client, opts(a.Cfg.Stages.Explain))
	if err != nil {
		return nil, err
	}
	writer, err := stages.NewScriptWriter(client, opts(a.Cfg.Stages.Script))
	if err != nil {
		return nil, err
	}
	return []pipeline.Stage{explainer, stages.NewPackager(writer)}, nil
}

func (a *App) buildSink(ctx context.Context, clock func() time.Time) (pipeline.Sink[*content.Package], error) {
	var sinks output.Fanout

	if kind := a.Cfg.Output.Kind; kind == OutputStorage || kind == OutputBoth {
		store, err := storage.New(ctx, a.Cfg.Output.Storage, a.Logger)
		if err != nil {
			return nil, err
		}
		opts := []output.StorageOption{output.WithLogger(a.Logger)}
		if clock != nil {
			opts = append(opts, output.WithClock(clock))
		}
		sinks = append(sinks, output.NewStorageSink(store, opts...))
	}

	if kind := a.Cfg.Output.Kind; kind == OutputKafka || kind == OutputBoth {
		prod, err := producer.New(a.Cfg.Output.Kafka, a.Logger)
		if err != nil {
			return nil, err
		}
		a.OnStop(closeHook(prod))
		sinks = append(sinks, output.NewKafkaSink(prod, a.Logger))
	}

	switch len(sinks) {
	case 0:
		return nil, fmt.Errorf("output kind %q selects no sink", a.Cfg.Output.Kind)
	case 1:
		return sinks[0], nil
	}
	return sinks, nil
}
