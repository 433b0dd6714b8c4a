// Package validation checks configuration structs against their
// `validate:"..."` tags and reports failures as INVALID_CONFIG errors.
//
//	type PipelineConfig struct {
//	    BatchSize int `mapstructure:"batch_size" validate:"gt=0"`
//	}
//	err := validation.Validate(cfg)
package validation
