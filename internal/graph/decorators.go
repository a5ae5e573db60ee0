package graph

import "github.com/vk/portgraph/internal/flow"

// StateSink tracks an active state sink. Data flows from the chain into the
// sink, so the sink is the last vertex of every path it records.
type StateSink[T any] struct {
	*Connectable[flow.StateConnector[T]]
}

// Connect records the path chain... -> sink and wires the wrapped sink to
// chain.
func (s *StateSink[T]) Connect(chain flow.Puller[T]) {
	nodes := collect(chain)
	nodes = append(nodes, s.info)
	s.link(nodes)

	s.base.Connect(chain)
}

func (s *StateSink[T]) Get() (T, error) { return s.base.Get() }

// EventSource tracks an active event source. Data flows from the source
// into the chain, so the source is the first vertex of every path it
// records.
type EventSource[T any] struct {
	*Connectable[flow.EventConnector[T]]
}

// Connect records the path source -> chain... and wires the wrapped source
// to chain.
func (s *EventSource[T]) Connect(chain flow.Pusher[T]) {
	nodes := append([]NodeProperties{s.info}, collect(chain)...)
	s.link(nodes)

	s.base.Connect(chain)
}

func (s *EventSource[T]) Fire(v T) { s.base.Fire(v) }

// StateSource tracks a passive state source.
type StateSource[T any] struct {
	*Connectable[flow.Puller[T]]
}

func (s *StateSource[T]) Pull() T { return s.base.Pull() }

// EventSink tracks a passive event sink.
type EventSink[T any] struct {
	*Connectable[flow.Pusher[T]]
}

func (s *EventSink[T]) Push(v T) { s.base.Push(v) }

// Stage tracks a transform placed inside a chain.
type Stage[T any] struct {
	*Connectable[flow.Stage[T]]
}

func (s *Stage[T]) Apply(v T) T { return s.base.Apply(v) }
