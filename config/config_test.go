package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type pipelineSection struct {
	BatchSize   int `mapstructure:"batch_size"`
	Concurrency int `mapstructure:"concurrency"`
}

type llmSection struct {
	Model   string        `mapstructure:"model"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Pipeline      pipelineSection `mapstructure:"pipeline"`
	LLM           llmSection      `mapstructure:"llm"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func noEnv() []string { return nil }

func TestServiceConfig_ApplyDefaults(t *testing.T) {
	var cfg ServiceConfig
	cfg.ApplyDefaults()
	if cfg.Name != "contentgen" {
		t.Errorf("expected name 'contentgen', got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestServiceConfig_DebugRaisesLogLevel(t *testing.T) {
	cfg := ServiceConfig{Debug: true}
	cfg.ApplyDefaults()
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}
}

func TestServiceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: contentgen
environment: staging
pipeline:
  batch_size: 25
  concurrency: 4
llm:
  model: qwen2.5
  timeout: 45s
`)

	var cfg testConfig
	if err := LoadConfig("contentgen", &cfg, WithConfigFile(path), WithEnviron(noEnv)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected staging, got %q", cfg.Environment)
	}
	if cfg.Pipeline.BatchSize != 25 || cfg.Pipeline.Concurrency != 4 {
		t.Errorf("unexpected pipeline section %+v", cfg.Pipeline)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("expected 45s timeout, got %v", cfg.LLM.Timeout)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "pipeline:\n  batch_size: 25\n")

	environ := func() []string {
		return []string{
			"CONTENTGEN_PIPELINE_BATCH_SIZE=7",
			"CONTENTGEN_LLM_API_KEY=secret",
			"PIPELINE_BATCH_SIZE=999",
		}
	}

	var cfg testConfig
	if err := LoadConfig("contentgen", &cfg, WithConfigFile(path), WithEnviron(environ)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pipeline.BatchSize != 7 {
		t.Errorf("expected batch size 7 from env, got %d", cfg.Pipeline.BatchSize)
	}
	if cfg.LLM.APIKey != "secret" {
		t.Errorf("expected api key from env, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("contentgen", &cfg, WithConfigFile("/nonexistent/config.yml"), WithEnviron(noEnv))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

type fakeFS struct {
	files  map[string]bool
	loaded []string
}

func (f *fakeFS) Exists(path string) bool { return f.files[path] }
func (f *fakeFS) LoadEnv(path string) error {
	f.loaded = append(f.loaded, path)
	return nil
}

func TestLoadConfig_DiscoversEnvFile(t *testing.T) {
	fs := &fakeFS{files: map[string]bool{".env": true}}
	var cfg testConfig
	if err := LoadConfig("contentgen", &cfg, WithFileSystem(fs), WithEnviron(noEnv)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.loaded) != 1 || fs.loaded[0] != ".env" {
		t.Errorf("expected .env to be loaded, got %v", fs.loaded)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("PIPELINE_BATCH_SIZE")
	want := map[string]bool{
		"pipeline_batch_size": true,
		"pipeline.batch.size": true,
		"pipeline.batch_size": true,
		"pipeline_batch.size": true,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d variants, got %v", len(want), got)
	}
	for _, v := range got {
		if !want[v] {
			t.Errorf("unexpected variant %q", v)
		}
	}
	if v := envKeyVariants("NAME"); len(v) != 1 || v[0] != "name" {
		t.Errorf("unexpected single-part variants %v", v)
	}
}
