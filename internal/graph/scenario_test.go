package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/portgraph/internal/flow"
)

// dummyNode owns one input and one output state port. Both ports share the
// node's identity, so the node is a single vertex.
type dummyNode struct {
	in  *StateSink[int]
	out *StateSource[int]
}

func newDummyNode(g *ConnectionGraph, name string) *dummyNode {
	info := NewNodeProperties(name)
	n := &dummyNode{}
	n.in = MakeStateSink[int](flow.NewStateSink[int](), info, On(g))
	n.out = MakeStateSource[int](flow.NewStateSource(func() int {
		v, err := n.in.Get()
		if err != nil {
			return 0
		}
		return v
	}), info, On(g))
	return n
}

func TestScenario_MixedDisciplines(t *testing.T) {
	g := New()

	source1 := newDummyNode(g, "state_source 1")
	source2 := newDummyNode(g, "state_source 2")
	intermediate := newDummyNode(g, "intermediate")
	sink := newDummyNode(g, "state_sink")

	intermediate.in.Connect(flow.From[int](source1.out, flow.Func[int](identity)))
	intermediate.in.Connect(flow.From[int](source2.out, Named[int](flow.Func[int](identity), "incr", On(g))))
	sink.in.Connect(flow.From[int](intermediate.out, flow.Compose[int](
		Named[int](flow.Func[int](identity), "l 1", On(g)),
		Named[int](flow.Func[int](identity), "l 2", On(g)),
	)))

	testVal := 0
	eventSource := MakeEventSource[int](flow.NewEventSource[int](), NewNodeProperties("event_source"), On(g))
	eventSink := MakeEventSink[int](flow.NewEventSink(func(v int) { testVal = v }), NewNodeProperties("event_sink"), On(g))
	eventSource.Connect(flow.Into[int](eventSink, Named[int](flow.Func[int](identity), "l 3", On(g))))

	var out bytes.Buffer
	require.NoError(t, g.Render(&out))
	eventSource.Fire(1)

	assert.Equal(t, 1, testVal)

	// named stages and nodes, plus connections, plus the two enclosing lines
	dot := out.String()
	assert.Equal(t, 10+8+2, strings.Count(dot, "\n"))

	assert.Equal(t, [][2]string{
		{"state_source 1", "intermediate"},
		{"state_source 2", "incr"},
		{"incr", "intermediate"},
		{"intermediate", "l 1"},
		{"l 1", "l 2"},
		{"l 2", "state_sink"},
		{"event_source", "l 3"},
		{"l 3", "event_sink"},
	}, edgeLabels(g))

	for _, label := range []string{"state_source 1", "state_source 2", "intermediate", "state_sink", "incr", "l 1", "l 2", "l 3", "event_source", "event_sink"} {
		assert.Contains(t, dot, `[label="`+label+`"]`)
	}
}
