package provider_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/provider"
)

type echoProvider struct {
	name string
	err  error
}

func (e *echoProvider) Name() string                     { return e.name }
func (e *echoProvider) IsAvailable(context.Context) bool { return true }
func (e *echoProvider) Execute(_ context.Context, in string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return "echo:" + in, nil
}

type orderTracker struct {
	inner provider.RequestResponse[string, string]
	tag   string
	order *[]string
}

func (o *orderTracker) Name() string                         { return o.inner.Name() }
func (o *orderTracker) IsAvailable(ctx context.Context) bool { return o.inner.IsAvailable(ctx) }
func (o *orderTracker) Execute(ctx context.Context, in string) (string, error) {
	*o.order = append(*o.order, o.tag+">")
	out, err := o.inner.Execute(ctx, in)
	*o.order = append(*o.order, "<"+o.tag)
	return out, err
}

func TestChain_Empty(t *testing.T) {
	p := &echoProvider{name: "test"}
	wrapped := provider.Chain[string, string]()(p)
	if wrapped.Name() != "test" {
		t.Fatalf("expected 'test', got %q", wrapped.Name())
	}
	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q, err %v", result, err)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(tag string) provider.Middleware[string, string] {
		return func(inner provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
			return &orderTracker{inner: inner, tag: tag, order: &order}
		}
	}

	wrapped := provider.Chain(mw("A"), nil, mw("B"))(&echoProvider{name: "test"})
	if _, err := wrapped.Execute(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(order, ","); got != "A>,B>,<B,<A" {
		t.Errorf("got %q, want %q", got, "A>,B>,<B,<A")
	}
}

func TestWithLogging_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	boom := errors.New("boom")
	wrapped := provider.WithLogging[string, string](log)(&echoProvider{name: "llm", err: boom})
	_, err := wrapped.Execute(context.Background(), "x")
	if !errors.Is(err, boom) {
		t.Fatalf("expected error to pass through, got %v", err)
	}
	if !strings.Contains(buf.String(), "provider execute failed") || !strings.Contains(buf.String(), `"provider":"llm"`) {
		t.Errorf("unexpected log output %q", buf.String())
	}
}

func TestWithTracing_PassesThrough(t *testing.T) {
	wrapped := provider.WithTracing[string, string]("test")(&echoProvider{name: "p"})
	out, err := wrapped.Execute(context.Background(), "y")
	if err != nil || out != "echo:y" {
		t.Errorf("got %q, %v", out, err)
	}
	if !wrapped.IsAvailable(context.Background()) {
		t.Error("expected availability to delegate")
	}
}

func TestFunc(t *testing.T) {
	p := provider.Func("upper", func(_ context.Context, in string) (string, error) {
		return strings.ToUpper(in), nil
	})
	if p.Name() != "upper" || !p.IsAvailable(context.Background()) {
		t.Error("unexpected provider metadata")
	}
	out, _ := p.Execute(context.Background(), "abc")
	if out != "ABC" {
		t.Errorf("got %q, want ABC", out)
	}
}

type taggedInput struct{ id string }

func (in taggedInput) LogFields() map[string]interface{} {
	return map[string]interface{}{logger.FieldRequestID: in.id}
}

func TestWithLogging_InputFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	inner := provider.Func("tagged", func(_ context.Context, in taggedInput) (string, error) {
		return in.id, nil
	})
	wrapped := provider.WithLogging[taggedInput, string](log)(inner)
	if _, err := wrapped.Execute(context.Background(), taggedInput{id: "req-7"}); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, `"request_id":"req-7"`) || !strings.Contains(out, `"provider":"tagged"`) {
		t.Errorf("log line missing input fields: %s", out)
	}
}
