// Package codec exports connection graph snapshots in several text formats.
package codec

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/vk/portgraph/internal/graph"
)

// ErrUnknownFormat is returned by ForFormat for unsupported formats.
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter writes a graph snapshot in one format.
type Exporter interface {
	Export(snap graph.Snapshot, w io.Writer) error
	Format() string
}

var exporters = map[string]Exporter{
	"dot":  NewDOTCodec(),
	"yaml": NewYAMLCodec(),
	"json": NewJSONCodec(),
}

// ForFormat returns the exporter registered for format.
func ForFormat(format string) (Exporter, error) {
	e, ok := exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownFormat, format, Formats())
	}
	return e, nil
}

// Formats lists the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// document is the structured form shared by the yaml and json codecs.
type document struct {
	Nodes []documentNode `yaml:"nodes" json:"nodes"`
	Edges []documentEdge `yaml:"edges" json:"edges"`
}

type documentNode struct {
	ID    string `yaml:"id" json:"id"`
	Token string `yaml:"token" json:"token"`
	Label string `yaml:"label" json:"label"`
	Named bool   `yaml:"named" json:"named"`
}

type documentEdge struct {
	FromID string `yaml:"from_id" json:"from_id"`
	ToID   string `yaml:"to_id" json:"to_id"`
}

func newDocument(snap graph.Snapshot) document {
	layout := snap.Layout()
	doc := document{
		Nodes: make([]documentNode, 0, len(layout.Vertices)),
		Edges: make([]documentEdge, 0, len(snap.Edges)),
	}
	for _, n := range layout.Vertices {
		id, _ := layout.ID(n)
		doc.Nodes = append(doc.Nodes, documentNode{
			ID:    id,
			Token: n.ID().String(),
			Label: n.Label(),
			Named: n.HasName(),
		})
	}
	for _, e := range snap.Edges {
		from, _ := layout.ID(e.From)
		to, _ := layout.ID(e.To)
		doc.Edges = append(doc.Edges, documentEdge{FromID: from, ToID: to})
	}
	return doc
}
