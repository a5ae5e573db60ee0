package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/portgraph/internal/codec"
	"github.com/vk/portgraph/internal/network"
	"github.com/vk/portgraph/internal/publish"
)

// Run executes the main application logic based on the app configuration.
// With a serve port configured it keeps serving the graph until ctx is done.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	if a.config.ServePort > 0 {
		if err := a.startServer(ctx); err != nil {
			return err
		}
		defer func() {
			if closeErr := a.closeServer(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
	}

	a.logger.Debug("Loading network description...", "paths", a.config.NetworkPaths)
	model, err := a.loader.Load(ctx, a.config.NetworkPaths...)
	if err != nil {
		return fmt.Errorf("failed to load network: %w", err)
	}

	net, err := network.Build(ctx, model, a.graph)
	if err != nil {
		return fmt.Errorf("failed to build network: %w", err)
	}
	a.logger.Info("Network wired.", "nodes", a.graph.NodeCount(), "edges", a.graph.EdgeCount())

	if a.config.NoFire {
		a.logger.Debug("Firing disabled, skipping fire blocks.")
	} else if err := net.Fire(ctx); err != nil {
		return fmt.Errorf("firing events failed: %w", err)
	}
	a.reportResults(net)

	if err := a.export(); err != nil {
		return err
	}

	if a.config.PublishURL != "" {
		if err := a.publish(ctx); err != nil {
			return err
		}
	}

	if a.httpServer != nil {
		a.logger.Info("Serving graph until interrupted.")
		<-ctx.Done()
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) reportResults(net *network.Network) {
	for _, r := range net.Results() {
		if r.Err != nil {
			a.logger.Warn("Sink has no value.", "sink", r.Name, "kind", r.Kind, "error", r.Err)
			continue
		}
		values := make([]string, len(r.Values))
		for i, v := range r.Values {
			values[i] = network.FormatValue(v)
		}
		a.logger.Info("Sink result.", "sink", r.Name, "kind", r.Kind, "values", values)
	}
}

func (a *App) export() (err error) {
	exporter, err := codec.ForFormat(a.config.Format)
	if err != nil {
		return err
	}

	var w io.Writer = a.outW
	if a.config.OutputPath != "" {
		f, err := os.Create(a.config.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	if err := exporter.Export(a.graph.Snapshot(), w); err != nil {
		return fmt.Errorf("failed to export graph as %s: %w", exporter.Format(), err)
	}
	a.logger.Debug("Graph exported.", "format", exporter.Format(), "output", a.config.OutputPath)
	return nil
}

func (a *App) publish(ctx context.Context) error {
	pub, err := publish.Connect(ctx, publish.Config{
		URL:                a.config.PublishURL,
		Namespace:          a.config.PublishNamespace,
		InsecureSkipVerify: a.config.PublishInsecure,
		Timeout:            a.config.PublishTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to connect publisher: %w", err)
	}
	defer pub.Close()

	if err := pub.Publish(a.graph.Snapshot()); err != nil {
		return fmt.Errorf("failed to publish graph: %w", err)
	}
	a.logger.Info("Graph published.", "url", a.config.PublishURL)
	return nil
}
