package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kbukum/contentgen/httpclient"
)

// ErrNoDialect is returned by NewWithDialect when given a nil dialect.
var ErrNoDialect = errors.New("llm: dialect is required")

// Adapter is a config-driven LLM client that speaks to any provider through
// a Dialect. It implements provider.RequestResponse[Request, Response] and
// Client.
type Adapter struct {
	name    string
	http    *httpclient.Client
	dialect Dialect
	model   string
	baseURL string
}

// New creates an adapter using the dialect registered under cfg.Dialect.
func New(cfg Config) (*Adapter, error) {
	cfg.ApplyDefaults()
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return newAdapter(dialect, cfg)
}

// NewWithDialect creates an adapter with an explicit dialect instance.
func NewWithDialect(dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	cfg.Dialect = dialect.Name()
	cfg.ApplyDefaults()
	return newAdapter(dialect, cfg)
}

func newAdapter(dialect Dialect, cfg Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.APIKey),
		Headers: cfg.Headers,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}
	return &Adapter{name: cfg.Name, http: client, dialect: dialect, model: cfg.Model, baseURL: cfg.BaseURL}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.name }

// IsAvailable probes the dialect's health endpoint.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	hp := a.dialect.HealthPath()
	if hp == "" {
		return true
	}
	_, err := a.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: hp})
	return err == nil
}

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// Model returns the model used for requests that name none.
func (a *Adapter) Model() string { return a.model }

// Identity names where replies come from: adapter name, default model and
// endpoint. Two adapters with equal identities produce interchangeable
// replies for equal requests.
func (a *Adapter) Identity() string {
	return a.name + "|" + a.model + "@" + a.baseURL
}

// Execute sends req and returns the parsed response, keyed by req.RequestID.
func (a *Adapter) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Model == "" {
		req.Model = a.model
	}

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return Response{}, fmt.Errorf("llm: build request: %w", err)
	}

	var raw json.RawMessage
	if err := a.http.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   a.dialect.ChatPath(),
		Body:   body,
	}, &raw); err != nil {
		return Response{}, fmt.Errorf("llm: %s: %w", a.name, err)
	}

	resp, err := a.dialect.ParseResponse(raw)
	if err != nil {
		return Response{}, fmt.Errorf("llm: parse response: %w", err)
	}
	resp.RequestID = req.RequestID
	return *resp, nil
}

// Generate implements Client.
func (a *Adapter) Generate(ctx context.Context, req Request) (Response, error) {
	return a.Execute(ctx, req)
}
