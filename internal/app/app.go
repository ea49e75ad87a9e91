// Package app holds the services shared by the stage binaries and the single
// top-level error handler each of them runs under.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/JakeFAU/nginx-docs/internal/config"
	"github.com/JakeFAU/nginx-docs/internal/id/uuid"
	"github.com/JakeFAU/nginx-docs/internal/logging"
	"github.com/JakeFAU/nginx-docs/internal/metrics"
	"github.com/JakeFAU/nginx-docs/internal/storage/local"
)

// App carries the long-lived services of one stage run.
type App struct {
	Stage    string
	RunID    string
	Config   config.Config
	Logger   *zap.Logger
	Store    *local.Store
	Recorder *metrics.Recorder
}

// New builds the services for stage from cfg. base may be nil, in which
// case a logger is built from the logging config.
func New(stage string, cfg config.Config, base *zap.Logger) (*App, error) {
	if base == nil {
		var err error
		base, err = logging.New(cfg.Logging.Development)
		if err != nil {
			return nil, err
		}
	}

	runID, err := uuid.New().NewID()
	if err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}

	store, err := local.New(local.Config{BaseDir: cfg.Storage.BaseDir})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	return &App{
		Stage:    stage,
		RunID:    runID,
		Config:   cfg,
		Logger:   logging.ForRun(base, stage, runID),
		Store:    store,
		Recorder: metrics.New(),
	}, nil
}

// Close pushes run metrics and flushes the logger.
func (a *App) Close(ctx context.Context) {
	if err := a.Recorder.Push(ctx, a.Config.Metrics.PushgatewayURL, a.Config.Metrics.Job, a.Stage); err != nil {
		a.Logger.Warn("Failed to push metrics", zap.Error(err))
	}
	_ = a.Logger.Sync() //nolint:errcheck // stderr sync fails on some platforms
}

// Run executes fn and returns the process exit code: 0 on success, 1 on any
// error. Nothing is retried.
func Run(ctx context.Context, a *App, fn func(context.Context, *App) error) int {
	a.Logger.Info("Stage started")
	err := fn(ctx, a)
	a.Close(context.WithoutCancel(ctx))
	if err != nil {
		a.Logger.Error("Stage failed", zap.Error(err))
		_ = a.Logger.Sync() //nolint:errcheck // best-effort flush before exit
		return 1
	}
	a.Logger.Info("Stage finished")
	return 0
}

// Main loads configuration from the environment, runs fn, and exits.
func Main(stage string, fn func(context.Context, *App) error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "%s: load config failed: %v\n", stage, err)
		os.Exit(1)
	}
	a, err := New(stage, cfg, nil)
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "%s: init failed: %v\n", stage, err)
		os.Exit(1)
	}

	code := Run(ctx, a, fn)
	stop()
	os.Exit(code)
}
