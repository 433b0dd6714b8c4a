package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/version"
)

// Hook is a lifecycle callback.
type Hook func(ctx context.Context) error

// App carries the validated configuration, the logger and the shutdown
// hooks registered while the pipeline is assembled.
type App struct {
	Name    string
	Version string
	Cfg     *Config
	Logger  *logger.Logger

	gracefulTimeout time.Duration
	onStop          []Hook
}

// Option configures an App.
type Option func(*App)

// WithLogger uses l instead of a logger built from the config.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) { a.Logger = l }
}

// WithGracefulTimeout bounds how long the stop hooks may run.
func WithGracefulTimeout(d time.Duration) Option {
	return func(a *App) { a.gracefulTimeout = d }
}

// New applies defaults, validates cfg and initializes logging.
func New(cfg *Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	a := &App{
		Name:            cfg.Name,
		Version:         version.Get().Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		logger.Init(cfg.Logging)
		a.Logger = logger.GetGlobalLogger()
	}
	return a, nil
}

// OnStop registers hooks run in reverse order during shutdown.
func (a *App) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// RunTask runs task with a context cancelled on SIGINT or SIGTERM, then
// runs the stop hooks. The task error wins over a shutdown error.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	a.Logger.Info("starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)
	if taskErr != nil && taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("task canceled by signal")
	}

	if stopErr := a.Shutdown(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// Shutdown runs the stop hooks within the graceful timeout, newest first.
// Every hook runs; the first error is returned.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var first error
	for i := len(a.onStop) - 1; i >= 0; i-- {
		if err := a.onStop[i](ctx); err != nil {
			a.Logger.Error("stop hook failed", map[string]interface{}{logger.FieldError: err.Error()})
			if first == nil {
				first = err
			}
		}
	}
	a.onStop = nil
	return first
}

// closeHook adapts a Close method to a Hook.
func closeHook(c interface{ Close() error }) Hook {
	return func(context.Context) error { return c.Close() }
}
