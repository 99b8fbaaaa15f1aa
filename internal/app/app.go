package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/sweepgrid/internal/config"
	"github.com/specialistvlad/sweepgrid/internal/sweep"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	sink   sweep.Sink
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger. Dry runs write into memory
// instead of the filesystem.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	var sink sweep.Sink = sweep.DirSink{}
	if cfg.DryRun {
		sink = sweep.NewMemSink()
		logger = logger.With("dry_run", true)
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		sink:   sink,
	}
}

// Sink returns the sink the app writes to. This is primarily for testing.
func (a *App) Sink() sweep.Sink {
	return a.sink
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

