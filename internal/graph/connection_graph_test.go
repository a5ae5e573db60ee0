package graph

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineCount(s string) int {
	return strings.Count(s, "\n")
}

func TestConnectionGraph_EmptyRender(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, New().Render(&out))
	assert.Equal(t, "digraph G {\n}\n", out.String())
}

func TestConnectionGraph_RenderFormat(t *testing.T) {
	g := New()
	a := NewNodeProperties("a")
	b := NewNodeProperties(`say "hi"`)
	c := Anonymous()

	g.AddEdge(a, b)
	g.AddEdge(b, c)
	g.AddEdge(a, b)

	var out bytes.Buffer
	require.NoError(t, g.Render(&out))

	expected := "digraph G {\n" +
		"  n0 [label=\"a\"];\n" +
		"  n1 [label=\"say \\\"hi\\\"\"];\n" +
		fmt.Sprintf("  n2 [label=\"%s\"];\n", c.Label()) +
		"  n0 -> n1;\n" +
		"  n1 -> n2;\n" +
		"  n0 -> n1;\n" +
		"}\n"
	assert.Equal(t, expected, out.String())
}

func TestConnectionGraph_KeepsDuplicateEdges(t *testing.T) {
	g := New()
	a, b := NewNodeProperties("a"), NewNodeProperties("b")
	g.AddEdge(a, b)
	g.AddEdge(a, b)

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestConnectionGraph_SameLabelsNeverCoalesce(t *testing.T) {
	g := New()
	g.AddEdge(NewNodeProperties("x"), NewNodeProperties("x"))

	snap := g.Snapshot()
	require.Len(t, snap.Nodes, 2)
	assert.False(t, snap.Nodes[0].Equal(snap.Nodes[1]))
}

func TestConnectionGraph_SnapshotIsACopy(t *testing.T) {
	g := New()
	a, b := NewNodeProperties("a"), NewNodeProperties("b")
	g.AddEdge(a, b)

	snap := g.Snapshot()
	g.AddEdge(b, a)

	assert.Len(t, snap.Edges, 1)
	assert.True(t, snap.Edges[0].From.Equal(a))
	assert.True(t, snap.Edges[0].To.Equal(b))

	id, ok := snap.NodeID(b)
	require.True(t, ok)
	assert.Equal(t, "n1", id)
	_, ok = snap.NodeID(Anonymous())
	assert.False(t, ok)
}

func TestSnapshot_WriteDOTAddsMissingEndpoints(t *testing.T) {
	a, b, c := NewNodeProperties("a"), NewNodeProperties("b"), NewNodeProperties("c")
	snap := Snapshot{
		Nodes: []NodeProperties{a, a},
		Edges: []Edge{{From: b, To: c}, {From: a, To: c}},
	}

	var buf bytes.Buffer
	require.NoError(t, snap.WriteDOT(&buf))
	assert.Equal(t, `digraph G {
  n0 [label="a"];
  n1 [label="b"];
  n2 [label="c"];
  n1 -> n2;
  n0 -> n2;
}
`, buf.String())

	layout := snap.Layout()
	assert.Len(t, layout.Vertices, 3)
	id, ok := layout.ID(c)
	require.True(t, ok)
	assert.Equal(t, "n2", id)
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestConnectionGraph_RenderPropagatesWriterError(t *testing.T) {
	g := New()
	g.AddEdge(NewNodeProperties("a"), NewNodeProperties("b"))

	sinkErr := errors.New("disk full")
	err := g.Render(failingWriter{err: sinkErr})
	assert.ErrorIs(t, err, sinkErr)
}

func TestConnectionGraph_AccessIsShared(t *testing.T) {
	assert.Same(t, Access(), Access())
}

func TestConnectionGraph_ConcurrentAddAndRender(t *testing.T) {
	g := New()
	numGoroutines := 50
	var wg sync.WaitGroup

	wg.Add(numGoroutines * 2)
	for i := range numGoroutines {
		go func(i int) {
			defer wg.Done()
			g.AddEdge(NewNodeProperties(fmt.Sprintf("from-%d", i)), NewNodeProperties(fmt.Sprintf("to-%d", i)))
		}(i)
		go func() {
			defer wg.Done()
			var out bytes.Buffer
			assert.NoError(t, g.Render(&out))
			snapLines := lineCount(out.String())
			// every observed state is complete: nodes are always twice the edges here
			assert.Equal(t, 0, (snapLines-2)%3)
		}()
	}
	wg.Wait()

	assert.Equal(t, numGoroutines, g.EdgeCount())
	assert.Equal(t, numGoroutines*2, g.NodeCount())
}
