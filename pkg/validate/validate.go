// Package validate checks structural soundness of a built or read-back
// MaterialX document. The validator is read-only and collecting: it never
// mutates the document and never stops at the first finding, so one pass
// reports everything a caller can act on.
package validate

import (
	"fmt"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
	"github.com/mtlxbridge/mtlxbridge/pkg/schema"
)

// Item is a single finding, located by element path.
type Item struct {
	Where   string
	Message string
}

func (i Item) String() string { return fmt.Sprintf("%s: %s", i.Where, i.Message) }

// Report is the outcome of one validation pass. Errors are structural
// defects a consumer would reject; warnings are completeness findings a
// consumer would tolerate.
type Report struct {
	Errors   []Item
	Warnings []Item
}

// OK reports whether the document has no errors. Warnings do not affect it.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errf(where, format string, args ...any) {
	r.Errors = append(r.Errors, Item{Where: where, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(where, format string, args ...any) {
	r.Warnings = append(r.Warnings, Item{Where: where, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the document against the schema library and the
// document model's own reference rules.
func Validate(doc *mtlxdoc.Document, lib *schema.Library) *Report {
	v := &validator{doc: doc, lib: lib, report: &Report{}}
	v.run()
	return v.report
}

type validator struct {
	doc    *mtlxdoc.Document
	lib    *schema.Library
	report *Report
}

func (v *validator) run() {
	if len(v.doc.Materials()) == 0 {
		v.report.errf("document", "no material element binds a surface shader")
	}
	for _, g := range v.doc.NodeGraphs() {
		v.checkGraph(g)
	}
	v.checkScope("", v.doc.Nodes(), rootResolver{v.doc})
	for _, m := range v.doc.Materials() {
		v.checkMaterial(m)
	}
}

// resolver abstracts name lookup for the scope a node lives in.
type resolver interface {
	node(name string) (*mtlxdoc.Node, bool)
	iface(name string) bool // nodedef interface inputs, graphs only
}

type rootResolver struct{ doc *mtlxdoc.Document }

func (r rootResolver) node(name string) (*mtlxdoc.Node, bool) { return r.doc.Node(name) }
func (r rootResolver) iface(string) bool                      { return false }

type graphResolver struct {
	graph *mtlxdoc.NodeGraph
	def   *mtlxdoc.NodeDef
}

func (r graphResolver) node(name string) (*mtlxdoc.Node, bool) { return r.graph.Node(name) }

func (r graphResolver) iface(name string) bool {
	if r.def == nil {
		return false
	}
	for _, p := range r.def.Inputs {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (v *validator) checkGraph(g *mtlxdoc.NodeGraph) {
	res := graphResolver{graph: g}
	if g.NodeDef != "" {
		def, ok := v.doc.NodeDef(g.NodeDef)
		if !ok {
			v.report.errf("nodegraph "+g.Name, "references unknown nodedef %q", g.NodeDef)
		} else {
			res.def = def
		}
	}
	v.checkScope(g.Name+"/", g.Nodes(), res)

	for _, o := range g.Outputs() {
		where := fmt.Sprintf("%s/output %s", g.Name, o.Name)
		if _, isOutput := g.Output(o.NodeName); isOutput && o.NodeName != o.Name {
			v.report.errf(where, "bound to output %q; outputs must bind to nodes", o.NodeName)
			continue
		}
		n, ok := g.Node(o.NodeName)
		if !ok {
			v.report.errf(where, "bound to unknown node %q", o.NodeName)
			continue
		}
		if o.Upstream == "" && n.OutputType != o.Type {
			v.report.errf(where, "type %s does not match node %q output %s", o.Type, n.Name, n.OutputType)
		}
	}

	v.checkConnectivity(g)
}

// checkConnectivity warns about nodes nothing in the graph consumes: not
// referenced by a sibling input and not bound to any graph output.
func (v *validator) checkConnectivity(g *mtlxdoc.NodeGraph) {
	used := make(map[string]bool)
	for _, n := range g.Nodes() {
		for _, in := range n.Inputs {
			if in.NodeName != "" {
				used[in.NodeName] = true
			}
		}
	}
	for _, o := range g.Outputs() {
		used[o.NodeName] = true
	}
	for _, n := range g.Nodes() {
		if !used[n.Name] {
			v.report.warnf(g.Name+"/"+n.Name, "node is not consumed by any input or output")
		}
	}
}

func (v *validator) checkScope(prefix string, nodes []*mtlxdoc.Node, res resolver) {
	for _, n := range nodes {
		v.checkNode(prefix+n.Name, n, res)
	}
}

func (v *validator) checkNode(where string, n *mtlxdoc.Node, res resolver) {
	spec, isStandard := v.lib.Node(n.Type)

	var def *mtlxdoc.NodeDef
	if n.NodeDef != "" {
		d, ok := v.doc.NodeDef(n.NodeDef)
		switch {
		case !ok:
			v.report.errf(where, "references unknown nodedef %q", n.NodeDef)
		case d.NodeType != n.Type:
			v.report.errf(where, "nodedef %q declares type %q, node has %q", d.Name, d.NodeType, n.Type)
		default:
			def = d
		}
	} else if !isStandard {
		if d, ok := v.doc.NodeDefByType(n.Type); ok {
			def = d
		} else {
			v.report.errf(where, "type %q is neither standard nor custom-defined", n.Type)
		}
	}

	if isStandard && !spec.AllowsOutputType(n.OutputType) {
		v.report.errf(where, "type %q does not produce %s", n.Type, n.OutputType)
	}

	bound := make(map[string]bool, len(n.Inputs))
	for _, in := range n.Inputs {
		bound[in.Name] = true
		v.checkInput(where, n, in, res)
	}

	if isStandard {
		for _, req := range spec.Required {
			if !bound[req] {
				v.report.warnf(where, "required input %q is unbound", req)
			}
		}
	}
	if def != nil {
		for _, in := range n.Inputs {
			if _, ok := defInput(def, in.Name); !ok {
				v.report.errf(where, "input %q is not declared by nodedef %q", in.Name, def.Name)
			}
		}
	}
}

func defInput(def *mtlxdoc.NodeDef, name string) (mtlxdoc.Port, bool) {
	for _, p := range def.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return mtlxdoc.Port{}, false
}

func (v *validator) checkInput(where string, n *mtlxdoc.Node, in *mtlxdoc.Input, res resolver) {
	at := fmt.Sprintf("%s input %s", where, in.Name)

	set := 0
	if in.Value != "" {
		set++
	}
	if in.NodeName != "" {
		set++
	}
	if in.NodeGraph != "" {
		set++
	}
	if in.Interface != "" {
		set++
	}
	if set > 1 {
		v.report.errf(at, "carries more than one binding")
		return
	}
	if set == 0 {
		v.report.warnf(at, "declared but empty")
		return
	}

	switch {
	case in.NodeName != "":
		up, ok := res.node(in.NodeName)
		if !ok {
			v.report.errf(at, "references unknown node %q", in.NodeName)
			return
		}
		v.checkTypes(at, in, up)
	case in.NodeGraph != "":
		g, ok := v.doc.NodeGraph(in.NodeGraph)
		if !ok {
			v.report.errf(at, "references unknown nodegraph %q", in.NodeGraph)
			return
		}
		o, ok := g.Output(in.Output)
		if !ok {
			v.report.errf(at, "references unknown output %q of nodegraph %q", in.Output, in.NodeGraph)
			return
		}
		if in.Type != o.Type {
			v.report.errf(at, "type %s does not match graph output %s", in.Type, o.Type)
		}
	case in.Interface != "":
		if !res.iface(in.Interface) {
			v.report.errf(at, "references unknown interface input %q", in.Interface)
		}
	}
}

// checkTypes compares an input's declared type with what the referenced
// node produces. With an output qualifier the schema's per-output type
// wins; without one the node's own output type must match.
func (v *validator) checkTypes(at string, in *mtlxdoc.Input, up *mtlxdoc.Node) {
	if in.Output != "" {
		spec, ok := v.lib.Node(up.Type)
		if !ok {
			return // custom node, per-output types live in its nodedef
		}
		port, ok := spec.Output(in.Output)
		if !ok {
			v.report.errf(at, "references unknown output %q of node %q", in.Output, up.Name)
			return
		}
		want := port.Type
		if want == "" {
			want = up.OutputType
		}
		if in.Type != want {
			v.report.errf(at, "type %s does not match %s.%s output %s", in.Type, up.Name, in.Output, want)
		}
		return
	}
	if in.Type != up.OutputType {
		v.report.errf(at, "type %s does not match node %q output %s", in.Type, up.Name, up.OutputType)
	}
}

func (v *validator) checkMaterial(m *mtlxdoc.Material) {
	where := "material " + m.Name

	if m.ReferencesGraph() {
		g, ok := v.doc.NodeGraph(m.ShaderGraph)
		if !ok {
			v.report.errf(where, "references unknown nodegraph %q", m.ShaderGraph)
			return
		}
		o, ok := g.Output(m.ShaderOutput)
		if !ok {
			v.report.errf(where, "references unknown output %q of nodegraph %q", m.ShaderOutput, m.ShaderGraph)
			return
		}
		if o.Type != mtlxtype.SurfaceShader {
			v.report.errf(where, "output %q has type %s, want %s", m.ShaderOutput, o.Type, mtlxtype.SurfaceShader)
		}
		return
	}

	if m.ShaderNode == "" {
		v.report.errf(where, "binds no shader")
		return
	}
	n, ok := v.doc.Node(m.ShaderNode)
	if !ok {
		v.report.errf(where, "references unknown node %q", m.ShaderNode)
		return
	}
	if n.OutputType != mtlxtype.SurfaceShader {
		v.report.errf(where, "node %q has type %s, want %s", m.ShaderNode, n.OutputType, mtlxtype.SurfaceShader)
	}
}
