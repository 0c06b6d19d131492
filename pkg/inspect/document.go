package inspect

import (
	"bytes"
	"fmt"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
)

// ToDOTDocument converts a built MaterialX document to Graphviz DOT.
// Node graphs render as clusters; materials and root nodes sit outside.
// Edges follow input bindings, so the diagram shows the translated wiring
// including inserted conversion nodes.
func ToDOTDocument(d *mtlxdoc.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for gi, g := range d.NodeGraphs() {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", gi)
		fmt.Fprintf(&buf, "    label=%q;\n", g.Name)
		buf.WriteString("    style=dashed;\n")
		for _, n := range g.Nodes() {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", g.Name+"/"+n.Name, n.Name+"\n"+n.Type)
		}
		for _, o := range g.Outputs() {
			fmt.Fprintf(&buf, "    %q [label=%q, shape=cds, fillcolor=lightyellow];\n",
				g.Name+"/out/"+o.Name, o.Name+"\n"+string(o.Type))
			fmt.Fprintf(&buf, "    %q -> %q;\n", g.Name+"/"+o.NodeName, g.Name+"/out/"+o.Name)
		}
		buf.WriteString("  }\n")
		writeScopeEdges(&buf, g.Name+"/", g.Nodes())
	}

	for _, n := range d.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", n.Name, n.Name+"\n"+n.Type)
	}
	writeScopeEdges(&buf, "", d.Nodes())

	for _, m := range d.Materials() {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=note, fillcolor=lightpink];\n",
			"material/"+m.Name, m.Name+"\nmaterial")
		switch {
		case m.ShaderGraph != "":
			fmt.Fprintf(&buf, "  %q -> %q;\n", m.ShaderGraph+"/out/"+m.ShaderOutput, "material/"+m.Name)
		case m.ShaderNode != "":
			fmt.Fprintf(&buf, "  %q -> %q;\n", m.ShaderNode, "material/"+m.Name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeScopeEdges(buf *bytes.Buffer, prefix string, nodes []*mtlxdoc.Node) {
	for _, n := range nodes {
		for _, in := range n.Inputs {
			if in.NodeName == "" {
				continue
			}
			fmt.Fprintf(buf, "  %q -> %q [label=%q, fontsize=10];\n",
				prefix+in.NodeName, prefix+n.Name, in.Name)
		}
	}
}
