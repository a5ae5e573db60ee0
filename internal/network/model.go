package network

import (
	"errors"

	"github.com/hashicorp/hcl/v2"
)

// ErrInvalidModel wraps every validation failure.
var ErrInvalidModel = errors.New("invalid network")

// Kind is the type of a declared element.
type Kind int

const (
	KindStateSource Kind = iota
	KindStateSink
	KindStateRelay
	KindEventSource
	KindEventSink
	KindTransform
)

var kindNames = map[Kind]string{
	KindStateSource: "state_source",
	KindStateSink:   "state_sink",
	KindStateRelay:  "state_relay",
	KindEventSource: "event_source",
	KindEventSink:   "event_sink",
	KindTransform:   "transform",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Discipline is the dataflow discipline of a chain.
type Discipline int

const (
	State Discipline = iota
	Event
)

func (d Discipline) String() string {
	if d == Event {
		return "event"
	}
	return "state"
}

// Element is a declared port or transform.
type Element struct {
	Name        string
	Kind        Kind
	Description string
	// Value is the constant of a state_source.
	Value hcl.Expression
	// Expr is the body of a transform.
	Expr hcl.Expression
	// Tracked is false for transforms that must not become vertices.
	Tracked bool
}

// Connection is a connect block.
type Connection struct {
	Chain []string
}

// Fire is a fire block.
type Fire struct {
	Target string
	Value  hcl.Expression
}

// Model is a loaded network description. Order lists element names as they
// were loaded: file by file, and within a file grouped by block type.
type Model struct {
	Elements    map[string]*Element
	Order       []string
	Connections []*Connection
	Fires       []*Fire
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Elements: make(map[string]*Element)}
}

// Add declares el. It returns false if the name is already taken.
func (m *Model) Add(el *Element) bool {
	if _, exists := m.Elements[el.Name]; exists {
		return false
	}
	m.Elements[el.Name] = el
	m.Order = append(m.Order, el.Name)
	return true
}
