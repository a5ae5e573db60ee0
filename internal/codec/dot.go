package codec

import (
	"io"

	"github.com/vk/portgraph/internal/graph"
)

// DOTCodec writes Graphviz DOT.
type DOTCodec struct{}

func NewDOTCodec() *DOTCodec {
	return &DOTCodec{}
}

func (c *DOTCodec) Format() string {
	return "dot"
}

func (c *DOTCodec) Export(snap graph.Snapshot, w io.Writer) error {
	return snap.WriteDOT(w)
}
