package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/kbukum/contentgen/logger"
)

type reply struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client, err := New(Config{Enabled: true, Addr: mini.Addr()}, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client, mini
}

func TestJSONStore_PutGetDelete(t *testing.T) {
	client, mini := newTestClient(t)
	store := NewJSONStore[reply](client, "contentgen:llm")
	ctx := context.Background()

	want := reply{Content: "热点解读", Tags: []string{"AI"}}
	if err := store.Put(ctx, "k1", want, 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !mini.Exists("contentgen:llm:k1") {
		t.Errorf("keys = %v, want contentgen:llm:k1", mini.Keys())
	}

	got, found, err := store.Get(ctx, "k1")
	if err != nil || !found {
		t.Fatalf("Get = %v, %v", found, err)
	}
	if got.Content != want.Content || len(got.Tags) != 1 {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := store.Get(ctx, "k1"); found {
		t.Error("key still present after Delete")
	}
}

func TestJSONStore_Missing(t *testing.T) {
	client, _ := newTestClient(t)
	got, found, err := NewJSONStore[reply](client, "").Get(context.Background(), "absent")
	if err != nil || found || got.Content != "" {
		t.Errorf("Get = %+v, %v, %v", got, found, err)
	}
}

func TestJSONStore_TTL(t *testing.T) {
	client, mini := newTestClient(t)
	store := NewJSONStore[reply](client, "ns")
	ctx := context.Background()

	if err := store.Put(ctx, "k", reply{Content: "x"}, 2*time.Second); err != nil {
		t.Fatal(err)
	}
	if ttl := mini.TTL("ns:k"); ttl != 2*time.Second {
		t.Errorf("TTL = %v, want 2s", ttl)
	}
	mini.FastForward(3 * time.Second)
	if _, found, _ := store.Get(ctx, "k"); found {
		t.Error("entry should have expired")
	}
}

func TestJSONStore_CorruptValue(t *testing.T) {
	client, mini := newTestClient(t)
	store := NewJSONStore[reply](client, "ns")
	if err := mini.Set("ns:bad", "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, found, err := store.Get(context.Background(), "bad"); err == nil || found {
		t.Errorf("Get = %v, %v, want a decode error", found, err)
	}
}

func TestJSONStore_Key(t *testing.T) {
	if got := NewJSONStore[reply](nil, "").Key("k"); got != "k" {
		t.Errorf("bare key = %q", got)
	}
	if got := NewJSONStore[reply](nil, "a:b").Key("k"); got != "a:b:k" {
		t.Errorf("namespaced key = %q", got)
	}
}

func TestClient_GetMissing(t *testing.T) {
	client, _ := newTestClient(t)
	val, found, err := client.Get(context.Background(), "missing")
	if err != nil || found || val != "" {
		t.Errorf("Get = (%q, %v, %v), want (\"\", false, nil)", val, found, err)
	}
}

func TestClient_CloseIdempotent(t *testing.T) {
	client, _ := newTestClient(t)
	if !client.IsAvailable(context.Background()) {
		t.Fatal("expected client to be available")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if client.IsAvailable(context.Background()) {
		t.Error("closed client reported available")
	}
}

func TestNew_Disabled(t *testing.T) {
	if _, err := New(Config{Addr: "localhost:6379"}, logger.Nop()); !errors.Is(err, ErrDisabled) {
		t.Errorf("got %v, want ErrDisabled", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Enabled: true}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing addr")
	}
	cfg.Addr = "localhost:6379"
	cfg.TTL = "soon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad ttl")
	}
	cfg.TTL = "90m"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TTLDuration() != 90*time.Minute {
		t.Errorf("got %v, want 90m", cfg.TTLDuration())
	}
}
