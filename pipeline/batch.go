package pipeline

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/kbukum/contentgen/errors"
)

// FetchBatch pulls at most n items from src. It returns fewer than n only
// when src reports exhaustion. On error no items are returned.
func FetchBatch[T any](ctx context.Context, src Source[T], n int) ([]T, error) {
	batch := make([]T, 0, n)
	for len(batch) < n {
		v, ok, err := src.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		batch = append(batch, v)
	}
	return batch, nil
}

// ProcessBatch folds every item through stages, one item after another.
// The result has one entry per item in the same order. The first stage
// error stops the batch and is returned as STAGE_FAILURE.
func ProcessBatch[T any](ctx context.Context, items []T, stages []Stage) ([]any, error) {
	return processSequential(ctx, items, stages, nil)
}

// ProcessBatchConcurrent is ProcessBatch with up to n items in flight.
// Results keep input order. The first failure cancels the items still
// running and is returned.
func ProcessBatchConcurrent[T any](ctx context.Context, items []T, stages []Stage, n int) ([]any, error) {
	return processConcurrent(ctx, items, stages, n, nil)
}

// stageHook observes each stage invocation.
type stageHook func(ctx context.Context, stage string, d time.Duration, err error)

func processSequential[T any](ctx context.Context, items []T, stages []Stage, hook stageHook) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		v, err := processItem(ctx, item, stages, hook)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func processConcurrent[T any](ctx context.Context, items []T, stages []Stage, n int, hook stageHook) ([]any, error) {
	if n <= 1 || len(items) <= 1 {
		return processSequential(ctx, items, stages, hook)
	}
	out := make([]any, len(items))
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(n)
	for i, item := range items {
		p.Go(func(ctx context.Context) error {
			v, err := processItem(ctx, item, stages, hook)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// processItem runs one item through the whole chain. Zero stages return
// the item unchanged.
func processItem(ctx context.Context, item any, stages []Stage, hook stageHook) (any, error) {
	cur := item
	for i, s := range stages {
		start := time.Now()
		next, err := s.Process(ctx, cur)
		if hook != nil {
			hook(ctx, s.Name(), time.Since(start), err)
		}
		if err != nil {
			return nil, errors.StageFailure(s.Name(), i, err)
		}
		cur = next
	}
	return cur, nil
}
