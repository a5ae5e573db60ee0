package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/graph"
	"github.com/vk/portgraph/internal/network"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	loader     *network.Loader
	graph      *graph.ConnectionGraph
	httpServer *http.Server
}

// NewApp is the constructor for the main application. Exports go to outW
// and logs to logW. Each App owns an isolated logger and connection graph.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: network.NewLoader(),
		graph:  graph.New(graph.WithLogger(logger)),
	}
}

// Graph returns the application's connection graph. This is primarily for testing.
func (a *App) Graph() *graph.ConnectionGraph {
	return a.graph
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
