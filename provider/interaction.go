package provider

import "context"

// Provider is what every backend exposes for logs, spans and readiness.
type Provider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// RequestResponse takes one input and returns one output.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Fielder is implemented by inputs that contribute their own log fields,
// such as a model request's id and model name.
type Fielder interface {
	LogFields() map[string]interface{}
}

// Func adapts a plain function to RequestResponse. It is always available.
func Func[I, O any](name string, fn func(ctx context.Context, input I) (O, error)) RequestResponse[I, O] {
	return &funcRR[I, O]{name: name, fn: fn}
}

type funcRR[I, O any] struct {
	name string
	fn   func(ctx context.Context, input I) (O, error)
}

func (f *funcRR[I, O]) Name() string                     { return f.name }
func (f *funcRR[I, O]) IsAvailable(context.Context) bool { return true }
func (f *funcRR[I, O]) Execute(ctx context.Context, in I) (O, error) {
	return f.fn(ctx, in)
}
