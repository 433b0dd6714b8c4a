package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/contentgen/app"
	"github.com/kbukum/contentgen/config"
	"github.com/kbukum/contentgen/hotlist"
	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/mockserver"
	"github.com/kbukum/contentgen/storage"
	"github.com/kbukum/contentgen/storage/local"
)

const demoToken = "demo-token"

type demoOptions struct {
	out      string
	dialect  string
	logLevel string
}

func newDemoCommand() *cobra.Command {
	var opts demoOptions
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the pipeline offline against the built-in mock server",
		Long: `Start the mock hot list and model server on a loopback port, run the
pipeline against it and write the results to --out (a temporary directory when
empty). With --dialect mock the model runs in-process instead of over HTTP.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory")
	cmd.Flags().StringVar(&opts.dialect, "dialect", "ollama", "model dialect: ollama or mock")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level")
	return cmd
}

func runDemo(ctx context.Context, opts demoOptions, w io.Writer) error {
	out := opts.out
	if out == "" {
		dir, err := os.MkdirTemp("", "contentgen-demo-")
		if err != nil {
			return err
		}
		out = dir
	}

	logging := logger.Config{Level: opts.logLevel}
	logging.ApplyDefaults()
	if err := logging.Validate(); err != nil {
		return err
	}
	log := logger.New(&logging, "contentgen-demo")

	srv := mockserver.New(mockserver.Config{Token: demoToken}, log)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	cfg := &app.Config{
		ServiceConfig: config.ServiceConfig{Name: "contentgen-demo", Logging: logging},
		Source:        hotlist.Config{Endpoint: srv.URL() + "/weibo/hot", Token: demoToken},
		Output: app.OutputConfig{
			Kind:    app.OutputStorage,
			Storage: storage.Config{Provider: storage.ProviderLocal, BasePath: out},
		},
	}
	cfg.LLM.Dialect = opts.dialect
	if opts.dialect != app.DialectMock {
		cfg.LLM.BaseURL = srv.URL()
		cfg.LLM.Model = "mock"
	}

	a, err := app.New(cfg, app.WithLogger(log))
	if err != nil {
		_ = srv.Stop(ctx)
		return err
	}
	a.OnStop(srv.Stop)

	stats, err := a.Run(ctx, app.Overrides{})
	if err != nil {
		return err
	}

	store, err := local.NewStorage(out)
	if err != nil {
		return err
	}
	files, err := store.List(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "processed %d topic(s), wrote %d file(s) to %s\n", stats.Emitted, len(files), out)
	for _, f := range files {
		fmt.Fprintf(w, "  %s (%d bytes)\n", f.Path, f.Size)
	}
	return nil
}
