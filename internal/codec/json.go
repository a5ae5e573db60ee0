package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vk/portgraph/internal/graph"
)

// JSONCodec writes the node and edge lists as indented JSON.
type JSONCodec struct{}

func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Format() string {
	return "json"
}

func (c *JSONCodec) Export(snap graph.Snapshot, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(newDocument(snap)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
