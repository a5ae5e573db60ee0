package publish

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/portgraph/internal/graph"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{URL: "http://localhost:3000"}.withDefaults()
	assert.Equal(t, "graph", cfg.Event)
	assert.Equal(t, 15*time.Second, cfg.Timeout)

	cfg = Config{Event: "diagram", Timeout: time.Second}.withDefaults()
	assert.Equal(t, "diagram", cfg.Event)
	assert.Equal(t, time.Second, cfg.Timeout)
}

func TestNewPayload(t *testing.T) {
	g := graph.New()
	g.AddEdge(graph.NewNodeProperties("a"), graph.NewNodeProperties("b"))

	payload, err := newPayload(g.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, "dot", payload["format"])
	assert.Equal(t, 2, payload["nodes"])
	assert.Equal(t, 1, payload["edges"])
	assert.Contains(t, payload["graph"], "n0 -> n1;")
}

func TestConnect_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"://missing-scheme", "localhost:3000"} {
		_, err := Connect(context.Background(), Config{URL: raw})
		assert.Error(t, err, raw)
	}
}

func TestConnect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the port is never listened on; whichever of cancellation or
	// connect_error wins, Connect must fail
	_, err := Connect(ctx, Config{URL: "http://127.0.0.1:1", Timeout: 2 * time.Second})
	assert.Error(t, err)
}
