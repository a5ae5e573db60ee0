package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/portgraph/internal/cli"
)

func writeNetwork(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0600), "failed to set up test file")
	return path
}

func TestRun_RendersGraph(t *testing.T) {
	t.Parallel()

	path := writeNetwork(t, `
state_source "a" { value = 2 }
state_sink "d" {}
transform "inc" { expr = value + 1 }
connect { chain = ["a", "inc", "d"] }
`)
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	err := run(context.Background(), out, logs, []string{path})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{
		"digraph G {",
		`  n0 [label="a"];`,
		`  n1 [label="inc"];`,
		`  n2 [label="d"];`,
		"  n0 -> n1;",
		"  n1 -> n2;",
		"}",
	}, lines)
	require.Contains(t, logs.String(), "sink=d")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// Missing closing brace.
	path := writeNetwork(t, `
		state_sink "d" {
	`)
	out := &bytes.Buffer{}

	runErr := run(context.Background(), out, &bytes.Buffer{}, []string{path})

	require.Error(t, runErr, "run() should return an error for an unparsable network")
	require.Contains(t, runErr.Error(), "failed to load network")
	require.Empty(t, out.String())
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
