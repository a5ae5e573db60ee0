package graph

import "github.com/google/uuid"

// NodeProperties identifies one vertex of the connection graph. Identity is
// the token drawn at construction: copies of a value are the same vertex,
// two values built with the same name are not.
type NodeProperties struct {
	id   uuid.UUID
	name string
}

// NewNodeProperties returns a fresh identity labeled name.
func NewNodeProperties(name string) NodeProperties {
	return NodeProperties{id: uuid.New(), name: name}
}

// Anonymous returns a fresh identity without a label.
func Anonymous() NodeProperties {
	return NodeProperties{id: uuid.New()}
}

func (p NodeProperties) ID() uuid.UUID { return p.id }

func (p NodeProperties) Name() string { return p.name }

func (p NodeProperties) HasName() bool { return p.name != "" }

// IsZero reports whether p was not built by NewNodeProperties or Anonymous.
func (p NodeProperties) IsZero() bool { return p.id == uuid.Nil }

// Equal reports whether p and other are the same vertex.
func (p NodeProperties) Equal(other NodeProperties) bool { return p.id == other.id }

// Label is the rendered name of the vertex: the configured name, or
// "node-" followed by the first eight hex digits of the token.
func (p NodeProperties) Label() string {
	if p.name != "" {
		return p.name
	}
	return "node-" + p.id.String()[:8]
}

func (p NodeProperties) String() string { return p.Label() }
