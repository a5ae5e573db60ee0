package network

import (
	"context"
	"fmt"
	"sync"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/flow"
	"github.com/vk/portgraph/internal/graph"
)

// Network is a built and wired network. Every port is tracked in the graph
// it was built with.
type Network struct {
	model *Model
	graph *graph.ConnectionGraph

	// pullers holds state sources and relay outputs.
	pullers map[string]flow.Puller[cty.Value]
	// stateSinks holds state sinks and relay inputs.
	stateSinks   map[string]*graph.StateSink[cty.Value]
	eventSources map[string]*graph.EventSource[cty.Value]
	eventSinks   map[string]*graph.EventSink[cty.Value]
	stages       map[string]flow.Stage[cty.Value]

	mu       sync.Mutex
	received map[string][]cty.Value
}

// Result is what a sink holds after the network ran.
type Result struct {
	Name string
	Kind Kind
	// Values holds the pulled value of a state sink or relay, or every
	// delivery of an event sink in arrival order.
	Values []cty.Value
	// Err is set when a state sink was never connected.
	Err error
}

// Build creates the ports of model, tracks them in g and wires every
// connection through its initiating endpoint.
func Build(ctx context.Context, model *Model, g *graph.ConnectionGraph) (*Network, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting network construction.", "elements", len(model.Elements))

	n := &Network{
		model:        model,
		graph:        g,
		pullers:      make(map[string]flow.Puller[cty.Value]),
		stateSinks:   make(map[string]*graph.StateSink[cty.Value]),
		eventSources: make(map[string]*graph.EventSource[cty.Value]),
		eventSinks:   make(map[string]*graph.EventSink[cty.Value]),
		stages:       make(map[string]flow.Stage[cty.Value]),
		received:     make(map[string][]cty.Value),
	}

	// A relay pulling from itself would recurse without bound on Get.
	if err := model.checkRelayCycles(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	for _, name := range model.Order {
		n.declare(ctx, model.Elements[name])
	}
	logger.Debug("Build: Ports created.", "count", len(model.Order))

	for i, c := range model.Connections {
		if err := n.connect(c); err != nil {
			return nil, fmt.Errorf("connect #%d %q: %w", i+1, c.Chain, err)
		}
	}
	logger.Debug("Build: Connections wired.", "count", len(model.Connections), "edges", g.EdgeCount())

	return n, nil
}

func (n *Network) declare(ctx context.Context, el *Element) {
	logger := ctxlog.FromContext(ctx)
	info := graph.NewNodeProperties(el.Name)
	on := graph.On(n.graph)

	switch el.Kind {
	case KindStateSource:
		expr := el.Value
		src := flow.NewStateSource(func() cty.Value {
			v, diags := evalStatic(expr)
			if diags.HasErrors() {
				logger.Warn("State source evaluation failed, passing null.", "state_source", el.Name, "error", diags.Error())
				return nullValue
			}
			return v
		})
		n.pullers[el.Name] = graph.MakeStateSource[cty.Value](src, info, on)

	case KindStateSink:
		n.stateSinks[el.Name] = graph.MakeStateSink[cty.Value](flow.NewStateSink[cty.Value](), info, on)

	case KindStateRelay:
		in := graph.MakeStateSink[cty.Value](flow.NewStateSink[cty.Value](), info, on)
		out := flow.NewStateSource(func() cty.Value {
			v, err := in.Get()
			if err != nil {
				return nullValue
			}
			return v
		})
		n.stateSinks[el.Name] = in
		n.pullers[el.Name] = graph.MakeStateSource[cty.Value](out, info, on)

	case KindEventSource:
		n.eventSources[el.Name] = graph.MakeEventSource[cty.Value](flow.NewEventSource[cty.Value](), info, on)

	case KindEventSink:
		name := el.Name
		sink := flow.NewEventSink(func(v cty.Value) { n.record(name, v) })
		n.eventSinks[el.Name] = graph.MakeEventSink[cty.Value](sink, info, on)

	case KindTransform:
		fn := transformFunc(logger, el)
		if el.Tracked {
			n.stages[el.Name] = graph.Named[cty.Value](fn, el.Name, on)
		} else {
			n.stages[el.Name] = fn
		}
	}
}

func (n *Network) connect(c *Connection) error {
	d, err := n.model.Discipline(c)
	if err != nil {
		return err
	}

	last := len(c.Chain) - 1
	stages := make([]flow.Stage[cty.Value], 0, last)
	for _, name := range c.Chain[1:last] {
		stages = append(stages, n.stages[name])
	}

	switch d {
	case State:
		n.stateSinks[c.Chain[last]].Connect(flow.From(n.pullers[c.Chain[0]], stages...))
	case Event:
		n.eventSources[c.Chain[0]].Connect(flow.Into[cty.Value](n.eventSinks[c.Chain[last]], stages...))
	}
	return nil
}

func (n *Network) record(sink string, v cty.Value) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received[sink] = append(n.received[sink], v)
}

// Graph returns the graph the network is tracked in.
func (n *Network) Graph() *graph.ConnectionGraph {
	return n.graph
}

// FireEvent fires v from the event source called name.
func (n *Network) FireEvent(ctx context.Context, name string, v cty.Value) error {
	src, ok := n.eventSources[name]
	if !ok {
		return fmt.Errorf("no event_source named %q", name)
	}
	ctxlog.FromContext(ctx).Debug("Firing event.", "event_source", name, "value", FormatValue(v))
	src.Fire(v)
	return nil
}

// Fire runs every fire block of the model in file order.
func (n *Network) Fire(ctx context.Context) error {
	for _, f := range n.model.Fires {
		v, diags := evalStatic(f.Value)
		if diags.HasErrors() {
			return fmt.Errorf("fire %q: %w", f.Target, diags)
		}
		if err := n.FireEvent(ctx, f.Target, v); err != nil {
			return err
		}
	}
	return nil
}

// Results reports every sink and relay, in model order.
func (n *Network) Results() []Result {
	var results []Result
	for _, name := range n.model.Order {
		el := n.model.Elements[name]
		switch el.Kind {
		case KindStateSink, KindStateRelay:
			r := Result{Name: name, Kind: el.Kind}
			if v, err := n.stateSinks[name].Get(); err != nil {
				r.Err = err
			} else {
				r.Values = []cty.Value{v}
			}
			results = append(results, r)
		case KindEventSink:
			n.mu.Lock()
			values := append([]cty.Value(nil), n.received[name]...)
			n.mu.Unlock()
			results = append(results, Result{Name: name, Kind: el.Kind, Values: values})
		}
	}
	return results
}
