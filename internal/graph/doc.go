// Package graph records the wiring of a dataflow network into a directed
// connectivity graph and renders that graph as Graphviz DOT.
//
// # How Tracking Works
//
// Ports and transform stages from package flow are wrapped in decorators
// that attach a NodeProperties identity to them. Decoration does not change
// runtime behavior: every port method is forwarded to the wrapped value and
// so is its flow.Role classification.
//
// Only the active decorators, StateSink and EventSource, have a Connect
// method. When it is called, the decorator walks the chain it is given,
// collects the identity of every tracked element in the order the chain was
// written, adds itself at the right end and records one edge per
// consecutive pair in its ConnectionGraph:
//
//	state (pull):  chain identities..., sink
//	event (push):  source, chain identities...
//
// Untracked elements are skipped, so plain ports and anonymous transforms
// can sit in a chain without becoming vertices. A chain that yields fewer
// than two identities records nothing.
//
// # Registry Lifecycle
//
// A ConnectionGraph is created once when a network is built and handed to
// every decorator through the On option. Decorators built without it use the
// process-wide graph returned by Access. Vertices appear lazily, when the
// first edge touching them is recorded, and the graph stores identities by
// value, so it can be rendered after the decorated ports are gone.
//
// # Thread-Safety
//
// AddEdge, Render and Snapshot are mutually excluded. Wiring normally
// happens on one goroutine while the network is being built.
package graph
