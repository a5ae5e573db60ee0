package flow

import (
	"errors"
	"sync"
)

// ErrNotConnected is returned when a state sink is read before it was wired.
var ErrNotConnected = errors.New("state sink is not connected")

// StateSource is a passive state port. Its value is computed on every pull.
type StateSource[T any] struct {
	produce func() T
}

func NewStateSource[T any](produce func() T) *StateSource[T] {
	return &StateSource[T]{produce: produce}
}

func (s *StateSource[T]) Pull() T { return s.produce() }

func (s *StateSource[T]) Role() Role { return PassiveSource }

// StateSink is an active state port. It reads from at most one source;
// connecting again replaces the previous source.
type StateSink[T any] struct {
	mu     sync.RWMutex
	source Puller[T]
}

func NewStateSink[T any]() *StateSink[T] {
	return &StateSink[T]{}
}

// Connect wires the sink to source.
func (s *StateSink[T]) Connect(source Puller[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
}

// Connected reports whether the sink has a source.
func (s *StateSink[T]) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source != nil
}

// Get pulls the current value through the connected chain.
func (s *StateSink[T]) Get() (T, error) {
	s.mu.RLock()
	source := s.source
	s.mu.RUnlock()

	if source == nil {
		var zero T
		return zero, ErrNotConnected
	}
	return source.Pull(), nil
}

func (s *StateSink[T]) Role() Role { return ActiveSink }

// EventSource is an active event port. Fired values are delivered to every
// connected sink in connection order.
type EventSource[T any] struct {
	mu    sync.RWMutex
	sinks []Pusher[T]
}

func NewEventSource[T any]() *EventSource[T] {
	return &EventSource[T]{}
}

// Connect adds sink to the delivery list.
func (s *EventSource[T]) Connect(sink Pusher[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// Fire delivers v to all connected sinks.
func (s *EventSource[T]) Fire(v T) {
	s.mu.RLock()
	sinks := make([]Pusher[T], len(s.sinks))
	copy(sinks, s.sinks)
	s.mu.RUnlock()

	for _, sink := range sinks {
		sink.Push(v)
	}
}

func (s *EventSource[T]) Role() Role { return ActiveSource }

// EventSink is a passive event port that hands every value to a handler.
type EventSink[T any] struct {
	handler func(T)
}

// NewEventSink returns a sink calling handler for each event. A nil
// handler drops events.
func NewEventSink[T any](handler func(T)) *EventSink[T] {
	return &EventSink[T]{handler: handler}
}

func (s *EventSink[T]) Push(v T) {
	if s.handler != nil {
		s.handler(v)
	}
}

func (s *EventSink[T]) Role() Role { return PassiveSink }
