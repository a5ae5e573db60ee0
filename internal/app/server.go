package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/portgraph/internal/codec"
)

// Handler returns the routes of the graph server.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/graph", a.graphHandler)
	return mux
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

var contentTypes = map[string]string{
	"dot":  "text/vnd.graphviz; charset=utf-8",
	"yaml": "application/yaml",
	"json": "application/json",
}

// graphHandler exports the current graph, in the configured format unless
// the format query parameter overrides it.
func (a *App) graphHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = a.config.Format
	}
	a.logger.Debug("Graph endpoint hit.", "remote_addr", r.RemoteAddr, "format", format)

	exporter, err := codec.ForFormat(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", contentTypes[exporter.Format()])
	if err := exporter.Export(a.graph.Snapshot(), w); err != nil {
		a.logger.Error("Graph export failed", "error", err)
	}
}

// startServer binds the serve port and serves in the background.
func (a *App) startServer(ctx context.Context) error {
	a.logger.Debug("Configuring graph server.")
	addr := fmt.Sprintf(":%d", a.config.ServePort)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	a.httpServer = &http.Server{
		Handler:     a.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		a.logger.Info("Graph server starting", "address", fmt.Sprintf("http://localhost%s/graph", addr))
		// Serve returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Graph server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

func (a *App) closeServer() error {
	if a.httpServer == nil {
		a.logger.Debug("Graph server was not running.")
		return nil
	}

	// The run context is usually done by now.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("Shutting down graph server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Graph server shutdown failed", "error", err)
		return err
	}
	a.httpServer = nil
	a.logger.Debug("Graph server shut down gracefully.")
	return nil
}
