package codec

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/portgraph/internal/graph"
)

func sampleSnapshot() graph.Snapshot {
	g := graph.New()
	a, b, c := graph.NewNodeProperties("a"), graph.NewNodeProperties("b"), graph.Anonymous()
	g.AddEdge(a, b)
	g.AddEdge(b, c)
	return g.Snapshot()
}

func TestForFormat(t *testing.T) {
	for _, name := range Formats() {
		e, err := ForFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, e.Format())
	}

	_, err := ForFormat("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, []string{"dot", "json", "yaml"}, Formats())
}

func TestDOTCodec_MatchesRender(t *testing.T) {
	snap := sampleSnapshot()

	var viaCodec, direct bytes.Buffer
	require.NoError(t, NewDOTCodec().Export(snap, &viaCodec))
	require.NoError(t, snap.WriteDOT(&direct))
	assert.Equal(t, direct.String(), viaCodec.String())
}

func TestYAMLCodec_Export(t *testing.T) {
	snap := sampleSnapshot()

	var out bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(snap, &out))

	var doc document
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, "a", doc.Nodes[0].Label)
	assert.True(t, doc.Nodes[0].Named)
	assert.False(t, doc.Nodes[2].Named)
	assert.Equal(t, snap.Nodes[2].ID().String(), doc.Nodes[2].Token)
	assert.Equal(t, []documentEdge{{FromID: "n0", ToID: "n1"}, {FromID: "n1", ToID: "n2"}}, doc.Edges)
}

func TestJSONCodec_Export(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleSnapshot(), &out))

	var doc document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Len(t, doc.Nodes, 3)
	assert.Len(t, doc.Edges, 2)
	assert.Equal(t, "b", doc.Nodes[1].Label)
}

func TestExport_EmptyGraph(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(graph.New().Snapshot(), &out))
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, out.String())
}

func TestExport_EndpointMissingFromNodes(t *testing.T) {
	a, b := graph.NewNodeProperties("a"), graph.NewNodeProperties("b")
	snap := graph.Snapshot{
		Nodes: []graph.NodeProperties{a},
		Edges: []graph.Edge{{From: a, To: b}},
	}

	var out bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(snap, &out))

	var doc document
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "n1", doc.Nodes[1].ID)
	assert.Equal(t, "b", doc.Nodes[1].Label)
	assert.Equal(t, []documentEdge{{FromID: "n0", ToID: "n1"}}, doc.Edges)
}
