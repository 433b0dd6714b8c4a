package pipeline

import "context"

// Source produces items on demand. Next returns (zero, false, nil) when the
// stream is exhausted; an empty stream is not an error.
type Source[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// Iterator is a Source holding resources. The engine closes it when Run ends.
type Iterator[T any] interface {
	Source[T]
	Close() error
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context) (T, bool, error)

// Next calls f.
func (f SourceFunc[T]) Next(ctx context.Context) (T, bool, error) { return f(ctx) }

// FromSlice returns a Source yielding items in order.
func FromSlice[T any](items []T) Source[T] {
	return &sliceSource[T]{items: items}
}

// FromIterator returns it as a Source. Close is called once the run ends.
func FromIterator[T any](it Iterator[T]) Source[T] { return it }

type sliceSource[T any] struct {
	items []T
	index int
}

func (s *sliceSource[T]) Next(_ context.Context) (T, bool, error) {
	if s.index >= len(s.items) {
		var zero T
		return zero, false, nil
	}
	v := s.items[s.index]
	s.index++
	return v, true, nil
}

// closeSource closes src if it holds resources.
func closeSource(src any) error {
	if c, ok := src.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// --- Operators ---

// Map transforms each item of src with fn.
func Map[I, O any](src Source[I], fn func(context.Context, I) (O, error)) Source[O] {
	return &mapSource[I, O]{source: src, fn: fn}
}

// Filter keeps only items that satisfy keep.
func Filter[T any](src Source[T], keep func(T) bool) Source[T] {
	return &filterSource[T]{source: src, keep: keep}
}

// Take yields at most n items from src. n <= 0 means no limit.
func Take[T any](src Source[T], n int) Source[T] {
	if n <= 0 {
		return src
	}
	return &takeSource[T]{source: src, limit: n}
}

type mapSource[I, O any] struct {
	source Source[I]
	fn     func(context.Context, I) (O, error)
}

func (s *mapSource[I, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	v, ok, err := s.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	o, err := s.fn(ctx, v)
	if err != nil {
		return zero, false, err
	}
	return o, true, nil
}

func (s *mapSource[I, O]) Close() error { return closeSource(s.source) }

type filterSource[T any] struct {
	source Source[T]
	keep   func(T) bool
}

func (s *filterSource[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		v, ok, err := s.source.Next(ctx)
		if err != nil || !ok {
			return v, false, err
		}
		if s.keep(v) {
			return v, true, nil
		}
	}
}

func (s *filterSource[T]) Close() error { return closeSource(s.source) }

type takeSource[T any] struct {
	source Source[T]
	limit  int
	taken  int
}

func (s *takeSource[T]) Next(ctx context.Context) (T, bool, error) {
	if s.taken >= s.limit {
		var zero T
		return zero, false, nil
	}
	v, ok, err := s.source.Next(ctx)
	if err != nil || !ok {
		return v, false, err
	}
	s.taken++
	return v, true, nil
}

func (s *takeSource[T]) Close() error { return closeSource(s.source) }
