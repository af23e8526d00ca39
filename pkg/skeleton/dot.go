package skeleton

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the skeleton.
//
// Vertices are drawn as small circles labeled with their id, edges are
// labeled "e<id>". When highlight is non-nil, edges whose id is a key are
// drawn bold in the given color, which is how a spanning tree or an edge
// orbit is shown.
func (g *Graph) ToDOT(highlight map[int]string) string {
	var buf bytes.Buffer
	buf.WriteString("graph Skeleton {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [fontname=\"SF Mono, Menlo, monospace\", fontsize=10];\n\n")

	for v := range g.NumVertices {
		fmt.Fprintf(&buf, "  v%d [label=\"%d\"];\n", v, v)
	}
	for i, e := range g.Edges {
		if color, ok := highlight[i]; ok {
			fmt.Fprintf(&buf, "  v%d -- v%d [label=\"e%d\", color=%q, penwidth=2.5];\n", e.U, e.V, i, color)
			continue
		}
		fmt.Fprintf(&buf, "  v%d -- v%d [label=\"e%d\"];\n", e.U, e.V, i)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the skeleton as an SVG document via ToDOT and Graphviz.
//
// Errors are returned if Graphviz cannot initialize, the DOT is malformed, or
// rendering fails. All errors are wrapped with %w.
func (g *Graph) RenderSVG(ctx context.Context, highlight map[int]string) ([]byte, error) {
	dot := g.ToDOT(highlight)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
