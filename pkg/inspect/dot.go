// Package inspect renders source material graphs as Graphviz diagrams.
// The output is a debugging aid: it shows the host node network as the
// translator sees it, before any mapping or conversion is applied.
package inspect

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mtlxbridge/mtlxbridge/pkg/source"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes socket names and types in node labels.
	// When false, only the node label and type are shown.
	Detailed bool
}

// ToDOT converts a material graph to Graphviz DOT format. The resulting
// DOT string can be rendered with [RenderSVG].
func ToDOT(g *source.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.7;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	terminal, _ := g.Terminal()
	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, terminal, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=10];\n",
			l.FromNode, l.ToNode, l.FromOutput+" > "+l.ToInput)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *source.Node, detailed bool) string {
	head := n.Name()
	if head != n.Type {
		head += "\n" + n.Type
	}
	if !detailed {
		return head
	}

	var parts []string
	for _, s := range n.Inputs {
		parts = append(parts, fmt.Sprintf("in %s: %s", s.Name, s.Type))
	}
	for _, s := range n.Outputs {
		parts = append(parts, fmt.Sprintf("out %s: %s", s.Name, s.Type))
	}
	if len(parts) == 0 {
		return head
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *source.Node, terminal *source.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if terminal != nil && n.ID == terminal.ID {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
