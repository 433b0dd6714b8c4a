// Package config loads contentgen configuration.
//
// LoadConfig reads an optional YAML file, then an optional .env file, then
// CONTENTGEN_* environment variables, and unmarshals the merged result with
// Viper. Later sources win.
//
// # Usage
//
//	var cfg app.Config
//	if err := config.LoadConfig("contentgen", &cfg, config.WithConfigFile(path)); err != nil {
//	    return err
//	}
//
// CONTENTGEN_PIPELINE_BATCH_SIZE=10 overrides pipeline.batch_size.
package config
