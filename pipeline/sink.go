package pipeline

import (
	"context"
	"fmt"
	"sync"
)

// Sink consumes finished items. A failed Emit ends the run.
type Sink[T any] interface {
	Emit(ctx context.Context, item T) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc[T any] func(ctx context.Context, item T) error

// Emit calls f.
func (f SinkFunc[T]) Emit(ctx context.Context, item T) error { return f(ctx, item) }

// Collector is an in-memory Sink that keeps items in emit order.
type Collector[T any] struct {
	mu    sync.Mutex
	items []T
}

// Emit appends item.
func (c *Collector[T]) Emit(_ context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return nil
}

// Items returns a copy of the collected items.
func (c *Collector[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of collected items.
func (c *Collector[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// nameOf returns v's Name() when it has one, else its type.
func nameOf(v any) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", v)
}
