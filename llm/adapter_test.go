package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/llm/ollama"
	"github.com/kbukum/contentgen/llm/openai"
	"github.com/kbukum/contentgen/util"
)

func TestAdapter_Ollama(t *testing.T) {
	var got ollama.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"qwen2.5","message":{"role":"assistant","content":"hello"},"done":true,"prompt_eval_count":7,"eval_count":3}`))
	}))
	defer srv.Close()

	a, err := llm.New(llm.Config{Dialect: "ollama", BaseURL: srv.URL, Model: "qwen2.5"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Name() != "ollama-llm" {
		t.Errorf("Name() = %q, want ollama-llm", a.Name())
	}
	if a.Model() != "qwen2.5" {
		t.Errorf("Model() = %q, want qwen2.5", a.Model())
	}
	if want := "ollama-llm|qwen2.5@" + srv.URL; a.Identity() != want {
		t.Errorf("Identity() = %q, want %q", a.Identity(), want)
	}

	resp, err := a.Generate(context.Background(), llm.Request{
		RequestID:    "req-1",
		SystemPrompt: "sys",
		UserPrompt:   "user",
		Temperature:  util.Ptr(0.3),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want req-1", resp.RequestID)
	}
	if resp.Content != "hello" {
		t.Errorf("Content = %q, want hello", resp.Content)
	}
	if resp.Usage.TotalTokens != 10 {
		t.Errorf("TotalTokens = %d, want 10", resp.Usage.TotalTokens)
	}
	if got.Model != "qwen2.5" || got.Stream {
		t.Errorf("request model/stream = %q/%v", got.Model, got.Stream)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "user" {
		t.Errorf("messages = %+v", got.Messages)
	}
	if got.Options == nil || got.Options.Temperature == nil || *got.Options.Temperature != 0.3 {
		t.Errorf("options = %+v", got.Options)
	}
}

func TestAdapter_OpenAI(t *testing.T) {
	var auth string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gpt-4o-mini","choices":[{"message":{"role":"assistant","content":"hi there"}}],"usage":{"prompt_tokens":5,"completion_tokens":2,"total_tokens":7}}`))
	}))
	defer srv.Close()

	a, err := llm.NewWithDialect(openai.Dialect{}, llm.Config{BaseURL: srv.URL, Model: "gpt-4o-mini", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewWithDialect: %v", err)
	}
	resp, err := a.Execute(context.Background(), llm.Request{RequestID: "req-9", UserPrompt: "hello"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
	if body["user"] != "req-9" {
		t.Errorf("user = %v, want req-9", body["user"])
	}
	if _, ok := body["temperature"]; ok {
		t.Error("temperature should be omitted when unset")
	}
	if resp.Content != "hi there" || resp.RequestID != "req-9" || resp.Usage.TotalTokens != 7 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestAdapter_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a, err := llm.New(llm.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = a.Generate(context.Background(), llm.Request{RequestID: "x", UserPrompt: "u"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "ollama-llm") {
		t.Errorf("error %q should name the adapter", err)
	}
}

func TestAdapter_OpenAIErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer srv.Close()

	a, err := llm.New(llm.Config{Dialect: "openai", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = a.Generate(context.Background(), llm.Request{UserPrompt: "u"})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("got %v, want model overloaded error", err)
	}
}

func TestAdapter_IsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a, _ := llm.New(llm.Config{BaseURL: srv.URL})
	if !a.IsAvailable(context.Background()) {
		t.Error("expected adapter to be available")
	}

	b, _ := llm.New(llm.Config{Dialect: "openai", BaseURL: srv.URL})
	if b.IsAvailable(context.Background()) {
		t.Error("expected openai adapter to be unavailable on 404")
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := llm.New(llm.Config{Dialect: "nope", BaseURL: "http://x"}); err == nil {
		t.Error("expected unknown dialect error")
	}
	if _, err := llm.New(llm.Config{}); err == nil {
		t.Error("expected missing base_url error")
	}
	if _, err := llm.NewWithDialect(nil, llm.Config{BaseURL: "http://x"}); err != llm.ErrNoDialect {
		t.Errorf("got %v, want ErrNoDialect", err)
	}
}

func TestDialects(t *testing.T) {
	names := llm.Dialects()
	if len(names) < 2 || names[0] != "ollama" || names[1] != "openai" {
		t.Errorf("Dialects() = %v, want [ollama openai]", names)
	}
}

func TestAsClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"ok"}}`))
	}))
	defer srv.Close()
	a, _ := llm.New(llm.Config{BaseURL: srv.URL})

	c := llm.AsClient(a)
	resp, err := c.Generate(context.Background(), llm.Request{RequestID: "r"})
	if err != nil || resp.Content != "ok" || resp.RequestID != "r" {
		t.Errorf("got %+v, %v", resp, err)
	}
}
