package provider

import (
	"context"
	"time"

	"github.com/kbukum/contentgen/logger"
)

// WithLogging returns a Middleware that logs each Execute call at debug, or
// at error when it fails. Inputs implementing Fielder add their own fields.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &loggingRR[I, O]{inner: inner, log: log}
	}
}

type loggingRR[I, O any] struct {
	inner RequestResponse[I, O]
	log   *logger.Logger
}

func (l *loggingRR[I, O]) Name() string                         { return l.inner.Name() }
func (l *loggingRR[I, O]) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := l.inner.Execute(ctx, input)

	fields := map[string]interface{}{"provider": l.inner.Name()}
	if f, ok := any(input).(Fielder); ok {
		for k, v := range f.LogFields() {
			fields[k] = v
		}
	}
	fields = logger.MergeWithDuration(fields, time.Since(start))

	if err != nil {
		fields[logger.FieldError] = err.Error()
		l.log.WithContext(ctx).Error("provider execute failed", fields)
	} else {
		l.log.WithContext(ctx).Debug("provider execute ok", fields)
	}
	return output, err
}
