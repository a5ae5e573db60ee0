// Package publish pushes rendered connection graphs to a live viewer over
// socket.io.
package publish

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/graph"
)

// ErrDisconnected is returned by Publish once the connection is gone.
var ErrDisconnected = errors.New("socket.io client is not connected")

const (
	defaultEvent   = "graph"
	defaultTimeout = 15 * time.Second
)

// Config describes the viewer endpoint.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	// Event is the name diagrams are emitted under. Defaults to "graph".
	Event string
	// Timeout bounds the wait for the connection. Defaults to 15s.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Event == "" {
		c.Event = defaultEvent
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Publisher is a connected socket.io client.
type Publisher struct {
	client *socket.Socket
	event  string
	logger *slog.Logger
}

// Connect dials the viewer and waits until the connection is established,
// fails, ctx is cancelled or the timeout expires.
func Connect(ctx context.Context, cfg Config) (*Publisher, error) {
	cfg = cfg.withDefaults()
	ctx, logger := ctxlog.With(ctx, "publisher", "socketio", "url", cfg.URL)
	logger.Info("Connecting to graph viewer...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("URL %q must include a scheme and a host", cfg.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to graph viewer", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Publisher{client: io, event: cfg.Event, logger: logger}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(cfg.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", cfg.Timeout)
	}
}

// Publish emits the DOT rendering of snap.
func (p *Publisher) Publish(snap graph.Snapshot) error {
	if !p.client.Connected() {
		return ErrDisconnected
	}
	payload, err := newPayload(snap)
	if err != nil {
		return err
	}
	p.logger.Debug("Emitting graph", "event", p.event, "nodes", payload["nodes"], "edges", payload["edges"])
	p.client.Emit(p.event, payload)
	return nil
}

// Close disconnects from the viewer.
func (p *Publisher) Close() error {
	p.logger.Debug("Disconnecting from graph viewer", "sid", p.client.Id())
	p.client.Disconnect()
	return nil
}

func newPayload(snap graph.Snapshot) (map[string]any, error) {
	var buf bytes.Buffer
	if err := snap.WriteDOT(&buf); err != nil {
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}
	return map[string]any{
		"format": "dot",
		"graph":  buf.String(),
		"nodes":  len(snap.Nodes),
		"edges":  len(snap.Edges),
	}, nil
}
