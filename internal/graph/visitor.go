package graph

import "github.com/vk/portgraph/internal/flow"

// Identified is implemented by every tracked element.
type Identified interface {
	GraphInfo() NodeProperties
}

// chainCollector gathers the identities of tracked chain elements.
type chainCollector struct {
	nodes []NodeProperties
}

func (c *chainCollector) visit(element any) {
	if id, ok := element.(Identified); ok {
		c.nodes = append(c.nodes, id.GraphInfo())
	}
}

// collect returns the identities found in chain, left to right.
func collect(chain any) []NodeProperties {
	c := &chainCollector{}
	flow.Apply(chain, c.visit)
	return c.nodes
}
