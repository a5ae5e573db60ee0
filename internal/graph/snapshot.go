package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Edge is one recorded connection.
type Edge struct {
	From NodeProperties
	To   NodeProperties
}

// Snapshot is a point-in-time copy of a ConnectionGraph. Nodes are in
// first-touch order and Edges in insertion order.
type Snapshot struct {
	Nodes []NodeProperties
	Edges []Edge
}

// Layout numbers the vertices of a snapshot for rendering.
type Layout struct {
	// Vertices holds the snapshot's nodes followed by every edge endpoint
	// missing from them, in edge order. Each identity appears once.
	Vertices []NodeProperties
	pos      map[uuid.UUID]int
}

// Layout returns the rendering order of s. Snapshots taken from a
// ConnectionGraph already list every endpoint; hand-built ones may not.
func (s Snapshot) Layout() Layout {
	l := Layout{pos: make(map[uuid.UUID]int, len(s.Nodes))}
	add := func(p NodeProperties) {
		if _, ok := l.pos[p.ID()]; !ok {
			l.pos[p.ID()] = len(l.Vertices)
			l.Vertices = append(l.Vertices, p)
		}
	}
	for _, n := range s.Nodes {
		add(n)
	}
	for _, e := range s.Edges {
		add(e.From)
		add(e.To)
	}
	return l
}

// ID returns the identifier of p ("n" followed by its position), or false
// if p is not a vertex of the layout.
func (l Layout) ID(p NodeProperties) (string, bool) {
	i, ok := l.pos[p.ID()]
	if !ok {
		return "", false
	}
	return "n" + strconv.Itoa(i), true
}

// NodeID returns the DOT identifier of p within the snapshot, or false if
// p is not a vertex.
func (s Snapshot) NodeID(p NodeProperties) (string, bool) {
	return s.Layout().ID(p)
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// WriteDOT writes the snapshot as a Graphviz digraph: an opening line, one
// line per vertex of its Layout, one line per edge and a closing line.
func (s Snapshot) WriteDOT(w io.Writer) error {
	layout := s.Layout()
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph G {")
	for _, n := range layout.Vertices {
		id, _ := layout.ID(n)
		fmt.Fprintf(bw, "  %s [label=\"%s\"];\n", id, dotEscaper.Replace(n.Label()))
	}
	for _, e := range s.Edges {
		from, _ := layout.ID(e.From)
		to, _ := layout.ID(e.To)
		fmt.Fprintf(bw, "  %s -> %s;\n", from, to)
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
