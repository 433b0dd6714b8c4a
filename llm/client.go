package llm

import (
	"context"

	"github.com/kbukum/contentgen/provider"
)

// Client generates a response for one request. Implementations must return
// a Response carrying the same RequestID.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (Response, error)

// Generate calls f.
func (f ClientFunc) Generate(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Provider is a backend in provider form, ready for middleware.
type Provider = provider.RequestResponse[Request, Response]

// AsClient exposes a provider as a Client.
func AsClient(p Provider) Client {
	return ClientFunc(p.Execute)
}
