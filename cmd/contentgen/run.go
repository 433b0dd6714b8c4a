package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/contentgen/app"
	"github.com/kbukum/contentgen/logger"
)

func newRunCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline once using the configuration file",
		Long: `Run the pipeline once. Configuration is read from --config, or from
./cmd/contentgen/config.yml, ./config.yml or ./config/config.yml, with
CONTENTGEN_* environment variables overriding file values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Load(configPath)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			stats, err := a.Run(cmd.Context(), app.Overrides{})
			if err != nil {
				a.Logger.Error("run failed", map[string]interface{}{logger.FieldError: err.Error()})
				return err
			}
			a.Logger.Info("run complete", map[string]interface{}{
				logger.FieldBatch: stats.Batches,
				"fetched":         stats.Fetched,
				"emitted":         stats.Emitted,
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yml")
	return cmd
}
