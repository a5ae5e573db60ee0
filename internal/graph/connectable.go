package graph

import (
	"fmt"

	"github.com/vk/portgraph/internal/flow"
)

// Connectable attaches a node identity to an arbitrary flow element. It is
// the common core of every decorator in this package and reports the role
// of the element it wraps.
type Connectable[B any] struct {
	base  B
	info  NodeProperties
	graph *ConnectionGraph
}

// Option configures a decorator.
type Option func(*options)

type options struct {
	graph *ConnectionGraph
}

// On binds a decorator to g instead of the process-wide graph.
func On(g *ConnectionGraph) Option {
	return func(o *options) {
		o.graph = g
	}
}

// MakeGraphConnectable wraps base with the identity info. It panics if info
// is the zero value.
func MakeGraphConnectable[B any](base B, info NodeProperties, opts ...Option) *Connectable[B] {
	if info.IsZero() {
		panic("graph: node properties must be built with NewNodeProperties or Anonymous")
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.graph == nil {
		o.graph = Access()
	}
	return &Connectable[B]{base: base, info: info, graph: o.graph}
}

// GraphInfo returns the identity of the wrapped element.
func (c *Connectable[B]) GraphInfo() NodeProperties { return c.info }

// Graph returns the graph connections are recorded in.
func (c *Connectable[B]) Graph() *ConnectionGraph { return c.graph }

// Role forwards the classification of the wrapped element.
func (c *Connectable[B]) Role() flow.Role { return flow.RoleOf(c.base) }

// link records one edge for every consecutive pair of nodes.
func (c *Connectable[B]) link(nodes []NodeProperties) {
	for i := 1; i < len(nodes); i++ {
		c.graph.AddEdge(nodes[i-1], nodes[i])
	}
}

func requireRole(base any, role flow.Role, kind string) {
	if got := flow.RoleOf(base); !got.Has(role) {
		panic(fmt.Sprintf("graph: %s requires a %s element, got %T with role %s", kind, role, base, got))
	}
}
