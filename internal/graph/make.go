package graph

import "github.com/vk/portgraph/internal/flow"

// MakeStateSink tracks base under info. base must classify as an active
// sink.
func MakeStateSink[T any](base flow.StateConnector[T], info NodeProperties, opts ...Option) *StateSink[T] {
	requireRole(base, flow.ActiveSink, "StateSink")
	return &StateSink[T]{MakeGraphConnectable(base, info, opts...)}
}

// MakeEventSource tracks base under info. base must classify as an active
// source.
func MakeEventSource[T any](base flow.EventConnector[T], info NodeProperties, opts ...Option) *EventSource[T] {
	requireRole(base, flow.ActiveSource, "EventSource")
	return &EventSource[T]{MakeGraphConnectable(base, info, opts...)}
}

// MakeStateSource tracks base under info. base must classify as a passive
// source.
func MakeStateSource[T any](base flow.Puller[T], info NodeProperties, opts ...Option) *StateSource[T] {
	requireRole(base, flow.PassiveSource, "StateSource")
	return &StateSource[T]{MakeGraphConnectable(base, info, opts...)}
}

// MakeEventSink tracks base under info. base must classify as a passive
// sink.
func MakeEventSink[T any](base flow.Pusher[T], info NodeProperties, opts ...Option) *EventSink[T] {
	requireRole(base, flow.PassiveSink, "EventSink")
	return &EventSink[T]{MakeGraphConnectable(base, info, opts...)}
}

// MakeStage tracks a transform under info. base must classify as both a
// passive sink and a passive source.
func MakeStage[T any](base flow.Stage[T], info NodeProperties, opts ...Option) *Stage[T] {
	requireRole(base, flow.PassiveSink|flow.PassiveSource, "Stage")
	return &Stage[T]{MakeGraphConnectable(base, info, opts...)}
}

// Named gives a transform its own labeled vertex.
func Named[T any](stage flow.Stage[T], label string, opts ...Option) *Stage[T] {
	return MakeStage(stage, NewNodeProperties(label), opts...)
}
