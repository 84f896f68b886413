package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/fnlists/internal/ctxlog"
	"github.com/vk/fnlists/internal/literal"
	"github.com/vk/fnlists/internal/sharedlist"
)

// App wires the literal loader, the edge store and the report writers.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	stats  *sharedlist.Stats
	loader *literal.Loader
}

// NewApp builds an App that writes reports to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	stats := sharedlist.NewStats()
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		stats:  stats,
		loader: literal.NewLoader(
			literal.WithTracker(stats),
			literal.WithParallelism(cfg.Parallelism),
		),
	}
}

// Stats exposes the allocation counters of every list the app created.
func (a *App) Stats() *sharedlist.Stats {
	return a.stats
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
