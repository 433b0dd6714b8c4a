package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "test-svc", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got none")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestInfo_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info")
	l.Info("batch emitted", map[string]interface{}{FieldBatch: 2, FieldStage: "explain"})

	m := decodeLine(t, &buf)
	if m["message"] != "batch emitted" {
		t.Errorf("expected message 'batch emitted', got %v", m["message"])
	}
	if m[FieldStage] != "explain" {
		t.Errorf("expected stage=explain, got %v", m[FieldStage])
	}
	if m[FieldBatch] != float64(2) {
		t.Errorf("expected batch=2, got %v", m[FieldBatch])
	}
	if m["service"] != "test-svc" {
		t.Errorf("expected service=test-svc, got %v", m["service"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
	l.Warn("shown")
	if buf.Len() == 0 {
		t.Error("expected warn to be written")
	}
}

func TestInvalidLevel_FallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "nonsense")
	l.Debug("hidden")
	l.Info("shown")
	if !strings.Contains(buf.String(), "shown") || strings.Contains(buf.String(), "hidden") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithComponent("pipeline").Info("x")
	if m := decodeLine(t, &buf); m[FieldComponent] != "pipeline" {
		t.Errorf("expected component=pipeline, got %v", m[FieldComponent])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithError(errors.New("boom")).Error("failed")
	if m := decodeLine(t, &buf); m["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", m["error"])
	}
}

func TestWithContext_RunID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithRunID(context.Background(), "run-1")
	jsonLogger(&buf, "info").WithContext(ctx).Info("x")
	if m := decodeLine(t, &buf); m[FieldRunID] != "run-1" {
		t.Errorf("expected run_id=run-1, got %v", m[FieldRunID])
	}
}

func TestWithContext_NoRunID(t *testing.T) {
	l := Nop()
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected the same logger when ctx carries no run id")
	}
}

func TestConfig_DefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stderr" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cfg.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestFields(t *testing.T) {
	m := Fields(FieldStage, "s", FieldItems, 3, 42, "ignored", "dangling")
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %d: %v", len(m), m)
	}
	if MergeWithDuration(nil, 1500*time.Millisecond)[FieldDuration] != int64(1500) {
		t.Error("expected duration in milliseconds")
	}
}

func TestOrDefault(t *testing.T) {
	l := Nop()
	if OrDefault(l, "x") != l {
		t.Error("expected provided logger to be returned")
	}
	if OrDefault(nil, "x") == nil {
		t.Error("expected fallback logger")
	}
}
