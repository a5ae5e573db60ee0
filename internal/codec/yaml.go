package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vk/portgraph/internal/graph"
)

// YAMLCodec writes the node and edge lists as YAML.
type YAMLCodec struct{}

func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Format() string {
	return "yaml"
}

func (c *YAMLCodec) Export(snap graph.Snapshot, w io.Writer) error {
	doc := newDocument(snap)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
