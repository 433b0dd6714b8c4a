package pipeline

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/contentgen/errors"
)

// Stage transforms one item into another. Implementations must not keep
// state across calls that would make the result depend on call order.
type Stage interface {
	Name() string
	Process(ctx context.Context, item any) (any, error)
}

// Typed is implemented by stages that declare their item types.
type Typed interface {
	InputType() reflect.Type
	OutputType() reflect.Type
}

// Transformer is a statically typed transformation step.
type Transformer[I, O any] interface {
	Transform(ctx context.Context, in I) (O, error)
}

// TransformerFunc adapts a function to Transformer.
type TransformerFunc[I, O any] func(ctx context.Context, in I) (O, error)

// Transform calls f.
func (f TransformerFunc[I, O]) Transform(ctx context.Context, in I) (O, error) { return f(ctx, in) }

// StageOf builds a typed Stage from fn.
func StageOf[I, O any](name string, fn func(ctx context.Context, in I) (O, error)) Stage {
	return Adapt[I, O](name, TransformerFunc[I, O](fn))
}

// Adapt exposes a Transformer as a Stage. Process fails with TYPE_MISMATCH
// when handed an item that is not an I.
func Adapt[I, O any](name string, t Transformer[I, O]) Stage {
	return &typedStage[I, O]{name: name, t: t}
}

type typedStage[I, O any] struct {
	name string
	t    Transformer[I, O]
}

func (s *typedStage[I, O]) Name() string             { return s.name }
func (s *typedStage[I, O]) InputType() reflect.Type  { return reflect.TypeFor[I]() }
func (s *typedStage[I, O]) OutputType() reflect.Type { return reflect.TypeFor[O]() }

func (s *typedStage[I, O]) Process(ctx context.Context, item any) (any, error) {
	in, err := As[I](s.name, item)
	if err != nil {
		return nil, err
	}
	return s.t.Transform(ctx, in)
}

// As asserts item to T on behalf of stage. An untyped nil is accepted for
// pointer, interface, map, slice, func and chan types.
func As[T any](stage string, item any) (T, error) {
	if v, ok := item.(T); ok {
		return v, nil
	}
	var zero T
	if item == nil && nilable(reflect.TypeFor[T]()) {
		return zero, nil
	}
	return zero, errors.TypeMismatch(stage, reflect.TypeFor[T]().String(), typeName(item))
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
