package flow

// Puller produces a state value on demand.
type Puller[T any] interface {
	Pull() T
}

// Pusher accepts an event value.
type Pusher[T any] interface {
	Push(v T)
}

// Stage transforms a value on its way through a chain.
type Stage[T any] interface {
	Apply(v T) T
}

// StateConnector is an active state sink: it is wired to the Puller it
// reads from.
type StateConnector[T any] interface {
	Connect(source Puller[T])
	Get() (T, error)
}

// EventConnector is an active event source: it is wired to the Pushers it
// delivers to.
type EventConnector[T any] interface {
	Connect(sink Pusher[T])
	Fire(v T)
}

// Composite is implemented by chain expressions built from several
// elements. Elements returns them in the order the chain was written.
type Composite interface {
	Elements() []any
}

// Apply calls visit once for every element of chain, depth first and left
// to right. Composites are flattened; they are never visited themselves.
func Apply(chain any, visit func(element any)) {
	if c, ok := chain.(Composite); ok {
		for _, e := range c.Elements() {
			Apply(e, visit)
		}
		return
	}
	visit(chain)
}

// Func adapts an ordinary function to a Stage.
type Func[T any] func(T) T

func (f Func[T]) Apply(v T) T { return f(v) }

func (f Func[T]) Role() Role { return PassiveSink | PassiveSource }

// Group is a sequence of stages that behaves as one stage.
type Group[T any] struct {
	stages []Stage[T]
}

// Compose groups stages so they can be placed in a chain as a unit.
func Compose[T any](stages ...Stage[T]) *Group[T] {
	return &Group[T]{stages: stages}
}

func (g *Group[T]) Apply(v T) T {
	for _, s := range g.stages {
		v = s.Apply(v)
	}
	return v
}

func (g *Group[T]) Elements() []any { return elements(g.stages) }

func (g *Group[T]) Role() Role { return PassiveSink | PassiveSource }

// StateChain is a Puller made of a source followed by stages.
type StateChain[T any] struct {
	source Puller[T]
	stages []Stage[T]
}

// From builds the state chain source -> stages[0] -> ... -> stages[n-1].
func From[T any](source Puller[T], stages ...Stage[T]) *StateChain[T] {
	return &StateChain[T]{source: source, stages: stages}
}

func (c *StateChain[T]) Pull() T {
	v := c.source.Pull()
	for _, s := range c.stages {
		v = s.Apply(v)
	}
	return v
}

func (c *StateChain[T]) Elements() []any {
	return append([]any{c.source}, elements(c.stages)...)
}

func (c *StateChain[T]) Role() Role { return PassiveSource }

// EventChain is a Pusher made of stages followed by a sink.
type EventChain[T any] struct {
	stages []Stage[T]
	sink   Pusher[T]
}

// Into builds the event chain stages[0] -> ... -> stages[n-1] -> sink.
func Into[T any](sink Pusher[T], stages ...Stage[T]) *EventChain[T] {
	return &EventChain[T]{stages: stages, sink: sink}
}

func (c *EventChain[T]) Push(v T) {
	for _, s := range c.stages {
		v = s.Apply(v)
	}
	c.sink.Push(v)
}

func (c *EventChain[T]) Elements() []any {
	return append(elements(c.stages), c.sink)
}

func (c *EventChain[T]) Role() Role { return PassiveSink }

func elements[T any](stages []Stage[T]) []any {
	out := make([]any, 0, len(stages)+1)
	for _, s := range stages {
		out = append(out, s)
	}
	return out
}
