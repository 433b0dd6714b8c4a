package app

import (
	"fmt"

	"github.com/kbukum/contentgen/config"
	"github.com/kbukum/contentgen/hotlist"
	"github.com/kbukum/contentgen/kafka"
	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/observability"
	"github.com/kbukum/contentgen/pipeline"
	"github.com/kbukum/contentgen/redis"
	"github.com/kbukum/contentgen/storage"
	"github.com/kbukum/contentgen/validation"
)

// Output kinds.
const (
	OutputStorage = "storage"
	OutputKafka   = "kafka"
	OutputBoth    = "both"
)

// DialectMock selects the offline mock model instead of an HTTP adapter.
const DialectMock = "mock"

// Config is the contentgen configuration file layout.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Pipeline  PipelineConfig       `yaml:"pipeline" mapstructure:"pipeline"`
	Source    hotlist.Config       `yaml:"source" mapstructure:"source"`
	LLM       llm.Config           `yaml:"llm" mapstructure:"llm"`
	Stages    StagesConfig         `yaml:"stages" mapstructure:"stages"`
	Output    OutputConfig         `yaml:"output" mapstructure:"output"`
	Cache     redis.Config         `yaml:"cache" mapstructure:"cache"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// PipelineConfig tunes the engine.
type PipelineConfig struct {
	BatchSize   int `yaml:"batch_size" mapstructure:"batch_size" validate:"gt=0"`
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency" validate:"gte=1"`
	// Limit caps how many topics one run processes. Zero means no cap.
	Limit int `yaml:"limit" mapstructure:"limit" validate:"gte=0"`
}

// StageParams are the sampling parameters of one model stage. Nil leaves
// the choice to the backend.
type StageParams struct {
	Temperature *float64 `yaml:"temperature" mapstructure:"temperature" validate:"omitempty,gte=0,lte=2"`
	MaxTokens   *int     `yaml:"max_tokens" mapstructure:"max_tokens" validate:"omitempty,gt=0"`
}

// StagesConfig holds per-stage parameters.
type StagesConfig struct {
	Explain StageParams `yaml:"explain" mapstructure:"explain"`
	Script  StageParams `yaml:"script" mapstructure:"script"`
}

// OutputConfig selects and configures the sink.
type OutputConfig struct {
	Kind    string         `yaml:"kind" mapstructure:"kind" validate:"oneof=storage kafka both"`
	Storage storage.Config `yaml:"storage" mapstructure:"storage"`
	Kafka   kafka.Config   `yaml:"kafka" mapstructure:"kafka"`
}

// GetServiceConfig returns the embedded service settings.
func (c *Config) GetServiceConfig() *config.ServiceConfig { return &c.ServiceConfig }

// ApplyDefaults fills zero values. Stage parameters default to the values
// the explainer and script writer were tuned with.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Pipeline.BatchSize == 0 {
		c.Pipeline.BatchSize = pipeline.DefaultBatchSize
	}
	if c.Pipeline.Concurrency == 0 {
		c.Pipeline.Concurrency = 1
	}
	c.Source.ApplyDefaults()
	if c.LLM.Dialect == "" {
		c.LLM.Dialect = DialectMock
	}
	if c.LLM.Dialect != DialectMock {
		c.LLM.ApplyDefaults()
	}
	defaultParams(&c.Stages.Explain, 0.7, 1200)
	defaultParams(&c.Stages.Script, 0.7, 1000)
	if c.Output.Kind == "" {
		c.Output.Kind = OutputStorage
	}
	c.Output.Storage.ApplyDefaults()
	if c.Output.Kind != OutputStorage {
		c.Output.Kafka.Enabled = true
	}
	c.Output.Kafka.ApplyDefaults()
	c.Cache.ApplyDefaults()
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	c.Telemetry.ApplyDefaults()
}

func defaultParams(p *StageParams, temperature float64, maxTokens int) {
	if p.Temperature == nil {
		p.Temperature = &temperature
	}
	if p.MaxTokens == nil {
		p.MaxTokens = &maxTokens
	}
}

// Validate checks every section that the selected components use.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(struct {
		Pipeline PipelineConfig `mapstructure:"pipeline"`
		Stages   StagesConfig   `mapstructure:"stages"`
		Output   OutputConfig   `mapstructure:"output"`
	}{c.Pipeline, c.Stages, c.Output}); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("config.source: %w", err)
	}
	if c.LLM.Dialect != DialectMock {
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("config.llm: %w", err)
		}
		if _, err := llm.GetDialect(c.LLM.Dialect); err != nil {
			return fmt.Errorf("config.llm: %w", err)
		}
	}
	if c.Output.Kind != OutputKafka {
		if err := c.Output.Storage.Validate(); err != nil {
			return fmt.Errorf("config.output.storage: %w", err)
		}
	}
	if err := c.Output.Kafka.Validate(); err != nil {
		return fmt.Errorf("config.output.kafka: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("config.cache: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	return nil
}

// Load reads the configuration for the contentgen service. An empty path
// searches the default locations.
func Load(path string) (*Config, error) {
	var cfg Config
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig("contentgen", &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
