package graph

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ConnectionGraph is a directed multigraph over node identities. Edges are
// kept in insertion order and never deduplicated.
type ConnectionGraph struct {
	// mutex serializes edge insertion against snapshots and rendering.
	mutex sync.RWMutex
	// nodes holds every vertex touched by an edge, in first-touch order.
	nodes []NodeProperties
	// index maps an identity token to its position in nodes.
	index map[uuid.UUID]int
	// edges holds positions into nodes.
	edges  []edgeRef
	logger *slog.Logger
}

type edgeRef struct {
	from, to int
}

// GraphOption configures a ConnectionGraph.
type GraphOption func(*ConnectionGraph)

// WithLogger makes the graph log every recorded edge at debug level.
func WithLogger(logger *slog.Logger) GraphOption {
	return func(g *ConnectionGraph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates an empty connection graph.
func New(opts ...GraphOption) *ConnectionGraph {
	g := &ConnectionGraph{
		index:  make(map[uuid.UUID]int),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var processGraph = sync.OnceValue(func() *ConnectionGraph { return New() })

// Access returns the process-wide graph, creating it on first use.
func Access() *ConnectionGraph {
	return processGraph()
}

// AddEdge records the directed edge from -> to. Endpoints not seen before
// become vertices in the order they are touched.
func (g *ConnectionGraph) AddEdge(from, to NodeProperties) {
	g.mutex.Lock()
	f := g.touch(from)
	t := g.touch(to)
	g.edges = append(g.edges, edgeRef{from: f, to: t})
	g.mutex.Unlock()

	g.logger.Debug("Connection recorded.", "from", from.Label(), "to", to.Label())
}

// touch returns the position of p, appending it first if needed. The caller
// must hold the write lock.
func (g *ConnectionGraph) touch(p NodeProperties) int {
	if i, ok := g.index[p.id]; ok {
		return i
	}
	g.nodes = append(g.nodes, p)
	i := len(g.nodes) - 1
	g.index[p.id] = i
	return i
}

// NodeCount returns the number of vertices touched by at least one edge.
func (g *ConnectionGraph) NodeCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of recorded edges.
func (g *ConnectionGraph) EdgeCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.edges)
}

// Snapshot returns a consistent copy of the graph.
func (g *ConnectionGraph) Snapshot() Snapshot {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	s := Snapshot{
		Nodes: make([]NodeProperties, len(g.nodes)),
		Edges: make([]Edge, 0, len(g.edges)),
	}
	copy(s.Nodes, g.nodes)
	for _, e := range g.edges {
		s.Edges = append(s.Edges, Edge{From: g.nodes[e.from], To: g.nodes[e.to]})
	}
	return s
}

// Render writes the graph to w as DOT. Errors from w are returned as is.
func (g *ConnectionGraph) Render(w io.Writer) error {
	return g.Snapshot().WriteDOT(w)
}
