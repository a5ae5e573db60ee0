// Package network loads dataflow network descriptions written in HCL and
// builds them into tracked flow ports.
//
// A description declares ports, transforms and the chains that connect
// them:
//
//	state_source "a" { value = 1 }
//	state_relay  "b" {}
//	state_sink   "c" {}
//	event_source "e" {}
//	event_sink   "f" {}
//
//	transform "double" { expr = value * 2 }
//	transform "quiet" {
//	  expr    = value
//	  tracked = false
//	}
//
//	connect { chain = ["a", "double", "b"] }
//	connect { chain = ["b", "c"] }
//	connect { chain = ["e", "double", "f"] }
//
//	fire "e" { value = 21 }
//
// A chain starts at a source, ends at a sink and has only transforms in
// between. State chains run from a state_source or the output of a
// state_relay to a state_sink or the input of a state_relay; the sink end
// initiates the connection. Event chains run from an event_source to an
// event_sink; the source initiates. A relay is one vertex with an input
// and an output port; its output reads whatever its input reads.
//
// Values are cty values. Transform expressions see the incoming value as
// the variable "value" and may call a small set of functions (upper,
// lower, abs, min, max, format, length).
//
// Every port and tracked transform becomes a vertex of the ConnectionGraph
// passed to Build, and every connect block records its path in it.
package network
