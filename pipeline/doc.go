// Package pipeline runs a Source through an ordered chain of Stages into a
// Sink, one bounded batch at a time.
//
// The engine pulls up to batchSize items, folds every item through the whole
// chain, then emits the results in source order before pulling again. Any
// failure from the source, a stage or the sink aborts the run; items already
// emitted stay emitted.
//
// Stages are type-erased (Process takes and returns any) so a chain can mix
// item types. Typed stages built with StageOf or Adapt declare their types:
// New rejects chains whose declared types can never line up, and every typed
// stage still checks its input when invoked.
//
// # Usage
//
//	src := pipeline.FromSlice([]int{1, 2, 3})
//	sink := &pipeline.Collector[string]{}
//	eng, err := pipeline.New[int, string](src, sink, []pipeline.Stage{
//	    pipeline.StageOf("add-one", func(_ context.Context, n int) (int, error) { return n + 1, nil }),
//	    pipeline.StageOf("stringify", func(_ context.Context, n int) (string, error) { return strconv.Itoa(n), nil }),
//	}, pipeline.WithBatchSize(2))
//	err = eng.Run(ctx) // sink.Items() == ["2" "3" "4"]
//
// WithConcurrency(n) processes the items of one batch on up to n goroutines.
// Output order and the fail-the-run policy are unchanged.
package pipeline
