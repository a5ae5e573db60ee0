// Package flow is the port layer of a reactive dataflow network.
//
// A network is made of typed ports that follow one of two disciplines:
//
//   - state: a StateSink pulls its value on demand from a Puller
//     (a StateSource or a StateChain). The sink is the active endpoint
//     that initiates wiring.
//   - event: an EventSource pushes each fired value into a Pusher
//     (an EventSink or an EventChain). The source is the active endpoint.
//
// Every element classifies itself through Role, so code composing chains
// can tell active endpoints from passive ones without knowing their
// concrete types. Chains are composite expressions; Apply walks their
// elements left to right, in the order the chain was written.
package flow
