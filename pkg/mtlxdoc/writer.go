package mtlxdoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// Marshal renders the document as MaterialX XML bytes.
// Element order is deterministic: nodedefs, nodegraphs, root nodes, materials.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the document to a .mtlx file.
// The file is created with 0644 permissions.
func WriteFile(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// Write renders the document as MaterialX XML to w.
func Write(d *Document, w io.Writer) error {
	x := &xmlWriter{w: w}
	x.line(0, `<?xml version="1.0"?>`)
	x.line(0, `<materialx version=%q>`, d.Version)

	for _, nd := range d.nodeDefs {
		x.writeNodeDef(nd)
	}
	for _, g := range d.graphs {
		x.writeNodeGraph(g)
	}
	for _, n := range d.scope.nodes {
		x.writeNode(1, n)
	}
	for _, m := range d.materials {
		x.writeMaterial(m)
	}

	x.line(0, `</materialx>`)
	return x.err
}

// =============================================================================
// Internal Implementation
// =============================================================================

type xmlWriter struct {
	w   io.Writer
	err error
}

func (x *xmlWriter) line(indent int, format string, args ...any) {
	if x.err != nil {
		return
	}
	for i := 0; i < indent; i++ {
		if _, x.err = io.WriteString(x.w, "  "); x.err != nil {
			return
		}
	}
	if _, x.err = fmt.Fprintf(x.w, format, args...); x.err != nil {
		return
	}
	_, x.err = io.WriteString(x.w, "\n")
}

func attr(name, value string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(value))
	return fmt.Sprintf(" %s=%q", name, buf.String())
}

func (x *xmlWriter) writeNodeDef(nd *NodeDef) {
	open := "<nodedef" + attr("name", nd.Name) + attr("node", nd.NodeType)
	if nd.Description != "" {
		open += attr("doc", nd.Description)
	}
	x.line(1, "%s>", open)
	for _, p := range nd.Inputs {
		in := "<input" + attr("name", p.Name) + attr("type", string(p.Type))
		if p.Default != "" {
			in += attr("value", p.Default)
		}
		x.line(2, "%s/>", in)
	}
	for _, p := range nd.Outputs {
		x.line(2, "<output%s%s/>", attr("name", p.Name), attr("type", string(p.Type)))
	}
	x.line(1, "</nodedef>")
}

func (x *xmlWriter) writeNodeGraph(g *NodeGraph) {
	open := "<nodegraph" + attr("name", g.Name)
	if g.NodeDef != "" {
		open += attr("nodedef", g.NodeDef)
	}
	x.line(1, "%s>", open)
	for _, n := range g.Nodes() {
		x.writeNode(2, n)
	}
	for _, o := range g.outputs {
		out := "<output" + attr("name", o.Name) + attr("type", string(o.Type)) + attr("nodename", o.NodeName)
		if o.Upstream != "" {
			out += attr("output", o.Upstream)
		}
		x.line(2, "%s/>", out)
	}
	x.line(1, "</nodegraph>")
}

func (x *xmlWriter) writeNode(indent int, n *Node) {
	open := "<" + n.Type + attr("name", n.Name) + attr("type", string(n.OutputType))
	if n.NodeDef != "" {
		open += attr("nodedef", n.NodeDef)
	}
	if len(n.Inputs) == 0 {
		x.line(indent, "%s/>", open)
		return
	}
	x.line(indent, "%s>", open)
	for _, in := range n.Inputs {
		x.writeInput(indent+1, in)
	}
	x.line(indent, "</%s>", n.Type)
}

func (x *xmlWriter) writeInput(indent int, in *Input) {
	s := "<input" + attr("name", in.Name) + attr("type", string(in.Type))
	switch {
	case in.Interface != "":
		s += attr("interfacename", in.Interface)
	case in.NodeGraph != "":
		s += attr("nodegraph", in.NodeGraph)
		if in.Output != "" {
			s += attr("output", in.Output)
		}
	case in.NodeName != "":
		s += attr("nodename", in.NodeName)
		if in.Output != "" {
			s += attr("output", in.Output)
		}
	default:
		s += attr("value", in.Value)
	}
	x.line(indent, "%s/>", s)
}

func (x *xmlWriter) writeMaterial(m *Material) {
	x.line(1, "<surfacematerial%s%s>", attr("name", m.Name), attr("type", "material"))
	in := "<input" + attr("name", "surfaceshader") + attr("type", "surfaceshader")
	if m.ReferencesGraph() {
		in += attr("nodegraph", m.ShaderGraph) + attr("output", m.ShaderOutput)
	} else {
		in += attr("nodename", m.ShaderNode)
	}
	x.line(2, "%s/>", in)
	x.line(1, "</surfacematerial>")
}
