package network

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadFile(t *testing.T) {
	model, err := NewLoader().Load(context.Background(), filepath.Join("testdata", "pipeline.hcl"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c", "d", "b", "h", "e", "f", "anon", "g", "h1", "h2", "i"}, model.Order)
	assert.Len(t, model.Connections, 4)
	require.Len(t, model.Fires, 1)
	assert.Equal(t, "e", model.Fires[0].Target)

	assert.Equal(t, KindStateRelay, model.Elements["b"].Kind)
	assert.Equal(t, "constant producer", model.Elements["a"].Description)
	assert.False(t, model.Elements["anon"].Tracked)
	assert.True(t, model.Elements["g"].Tracked)
}

func TestLoader_LoadDirectory(t *testing.T) {
	model, err := NewLoader().Load(context.Background(), filepath.Join("testdata", "split"), filepath.Join("testdata", "missing"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"src", "dst", "square"}, model.Order)
	require.Len(t, model.Connections, 1)
	assert.Equal(t, []string{"src", "square", "dst"}, model.Connections[0].Chain)
}

func TestLoader_NoFiles(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join("testdata", "missing"))
	assert.ErrorContains(t, err, "no .hcl files found")
}

func TestLoader_LoadSourceErrors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		errContains string
		invalid     bool
	}{
		{
			name:        "syntax error",
			src:         `state_source "a" {`,
			errContains: "failed to parse",
		},
		{
			name:        "unsupported block",
			src:         `pipeline "x" {}`,
			errContains: "failed to decode",
		},
		{
			name:        "missing required attribute",
			src:         `transform "t" {}`,
			errContains: "failed to decode",
		},
		{
			name: "duplicate names across kinds",
			src: `
state_source "x" { value = 1 }
event_sink "x" {}
`,
			errContains: "duplicate element name",
			invalid:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().LoadSource(context.Background(), "test.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
			if tc.invalid {
				assert.ErrorIs(t, err, ErrInvalidModel)
			}
		})
	}
}
