// Package translate turns one source material graph into a MaterialX
// document. It walks the graph backward from the terminal shader,
// materializing each reachable node exactly once, resolving a conversion
// for every typed connection and binding the finished shader according to
// the classified layout pattern.
package translate

import (
	"strings"

	"github.com/mtlxbridge/mtlxbridge/pkg/classify"
	"github.com/mtlxbridge/mtlxbridge/pkg/convert"
	"github.com/mtlxbridge/mtlxbridge/pkg/errors"
	"github.com/mtlxbridge/mtlxbridge/pkg/mapping"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
	"github.com/mtlxbridge/mtlxbridge/pkg/schema"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
	"github.com/mtlxbridge/mtlxbridge/pkg/synth"
	"github.com/mtlxbridge/mtlxbridge/pkg/validate"
)

// Options configures a Translator. Zero fields fall back to the shipped
// defaults.
type Options struct {
	// Strict makes unsupported nodes and unavailable conversions fail the
	// translation instead of being recorded and skipped.
	Strict bool

	// Classifier overrides the layout thresholds.
	Classifier *classify.Config

	// Registry overrides the node mapping table.
	Registry *mapping.Registry

	// Schema overrides the standard-library subset.
	Schema *schema.Library
}

// Translator translates source graphs. Safe for concurrent use; all
// mutable state lives in the per-call builder.
type Translator struct {
	reg    *mapping.Registry
	lib    *schema.Library
	cfg    classify.Config
	strict bool
}

// New builds a Translator, loading the default mapping registry when none
// is supplied.
func New(opts Options) (*Translator, error) {
	t := &Translator{
		reg:    opts.Registry,
		lib:    opts.Schema,
		cfg:    classify.DefaultConfig(),
		strict: opts.Strict,
	}
	if opts.Classifier != nil {
		t.cfg = *opts.Classifier
	}
	if t.lib == nil {
		t.lib = schema.Default()
	}
	if t.reg == nil {
		reg, err := mapping.Load(t.lib)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRegistry, err, "load mapping registry")
		}
		t.reg = reg
	}
	return t, nil
}

// Unsupported records a source node the engine could not translate.
type Unsupported struct {
	Node        string `json:"node"`
	Type        string `json:"type"`
	Remediation string `json:"remediation,omitempty"`
}

// Skipped records a connection left at its default because it could not
// be wired soundly.
type Skipped struct {
	Node   string `json:"node"`
	Input  string `json:"input"`
	Reason string `json:"reason"`
}

// Result is the outcome of translating one material.
type Result struct {
	Material string
	Pattern  classify.Pattern
	Document *mtlxdoc.Document

	Unsupported []Unsupported
	Skipped     []Skipped
	Validation  *validate.Report

	// Success means the shader network was fully materialized and the
	// document passed structural validation.
	Success bool
}

// Translate builds a MaterialX document for one material graph. In strict
// mode any unsupported node or unavailable conversion aborts with an
// error; otherwise such findings are recorded on the Result and the
// affected connections keep their defaults.
func (t *Translator) Translate(g *source.Graph) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCycleDetected, err, "material %q", g.Material)
	}
	terminal, err := g.Terminal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "material %q", g.Material)
	}

	doc := mtlxdoc.NewDocument()
	res := &Result{
		Material: g.Material,
		Pattern:  t.cfg.Classify(g),
		Document: doc,
	}

	b := &builder{
		t:    t,
		g:    g,
		doc:  doc,
		sy:   synth.New(doc),
		res:  res,
		memo: make(map[string]*built),
	}

	var graph *mtlxdoc.NodeGraph
	if res.Pattern == classify.NodeGraph {
		graph, err = doc.AddNodeGraph("NG_" + sanitize(g.Material))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "material %q", g.Material)
		}
		b.scope = graph
	} else {
		b.scope = doc
	}

	shader, err := b.export(terminal, mtlxtype.SurfaceShader)
	if err != nil {
		return nil, err
	}

	if !shader.skipped {
		material := &mtlxdoc.Material{Name: sanitize(g.Material)}
		if graph != nil {
			if err := graph.BindOutput("out", mtlxtype.SurfaceShader, shader.node.Name, ""); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "bind shader output")
			}
			material.ShaderGraph = graph.Name
			material.ShaderOutput = "out"
		} else {
			material.ShaderNode = shader.node.Name
		}
		if err := doc.AddMaterial(material); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "register material")
		}
	}

	res.Validation = validate.Validate(doc, t.lib)
	res.Success = !shader.skipped && res.Validation.OK()
	return res, nil
}

// nodeScope is the scope nodes are materialized into: the document root in
// the Direct pattern, a nodegraph in the NodeGraph pattern.
type nodeScope interface {
	AddNode(*mtlxdoc.Node) error
	UniqueName(string) string
}

// built is the memoized outcome of exporting one source node.
type built struct {
	node    *mtlxdoc.Node
	skipped bool

	entry *mapping.Entry
	emu   *synth.Emulation
}

// port resolves a host output socket to the target-side output qualifier
// and the type the wire carries. The qualifier stays empty for
// single-output targets.
func (b *built) port(lib *schema.Library, hostOutput string) (string, mtlxtype.Type, bool) {
	if b.emu != nil {
		if _, ok := b.emu.TargetOutput(hostOutput); !ok {
			return "", "", false
		}
		return "", b.node.OutputType, true
	}
	target, ok := b.entry.TargetOutput(hostOutput)
	if !ok {
		return "", "", false
	}
	spec, ok := lib.Node(b.entry.TargetType)
	if !ok || len(spec.Outputs) <= 1 {
		return "", b.node.OutputType, true
	}
	port, ok := spec.Output(target)
	if !ok {
		return "", "", false
	}
	typ := port.Type
	if typ == "" {
		typ = b.node.OutputType
	}
	return target, typ, true
}

type builder struct {
	t     *Translator
	g     *source.Graph
	doc   *mtlxdoc.Document
	sy    *synth.Synthesizer
	scope nodeScope
	res   *Result
	memo  map[string]*built
}

// export materializes one source node and, recursively, everything feeding
// it. want is the output type the first consumer expects; polymorphic
// targets adopt it when their schema allows. Memoized per source node, so
// diamond-shaped graphs produce each node once.
func (b *builder) export(n *source.Node, want mtlxtype.Type) (*built, error) {
	if prev, ok := b.memo[n.ID]; ok {
		return prev, nil
	}

	entry, mapped := b.t.reg.Lookup(n.Type)
	var emu *synth.Emulation
	if !mapped {
		emu, _ = b.sy.Emulation(n.Type)
	}
	if !mapped && emu == nil {
		remediation, _ := b.t.reg.Remediation(n.Type)
		if b.t.strict {
			return nil, errors.New(errors.ErrCodeUnsupportedNode,
				"node %q has unsupported type %s", n.Name(), n.Type)
		}
		b.res.Unsupported = append(b.res.Unsupported, Unsupported{
			Node: n.Name(), Type: n.Type, Remediation: remediation,
		})
		skip := &built{skipped: true}
		b.memo[n.ID] = skip
		return skip, nil
	}

	target := &mtlxdoc.Node{Name: b.scope.UniqueName(sanitize(n.Name()))}
	out := &built{node: target, entry: entry, emu: emu}

	if emu != nil {
		def, err := b.sy.Materialize(emu)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNodeDefNotFound, err, "emulate %s", n.Type)
		}
		target.Type = def.NodeType
		target.NodeDef = def.Name
		target.OutputType = emu.OutputType
	} else {
		target.Type = entry.TargetType
		target.OutputType = entry.TargetCategory
		if spec, ok := b.t.lib.Node(entry.TargetType); ok {
			if want != "" && want != entry.TargetCategory && spec.AllowsOutputType(want) {
				target.OutputType = want
			}
		}
	}

	if err := b.scope.AddNode(target); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "materialize %q", n.Name())
	}
	b.memo[n.ID] = out

	if err := b.wireInputs(n, out); err != nil {
		return nil, err
	}
	return out, nil
}

// wireInputs binds every input socket of the source node: linked sockets
// recurse and go through conversion resolution, unlinked sockets carry
// their literal default across.
func (b *builder) wireInputs(n *source.Node, out *built) error {
	for _, socket := range n.Inputs {
		targetPort, toType, ok := b.inputPort(out, socket)
		if !ok {
			if _, linked := b.g.IncomingLink(n.ID, socket.Name); linked {
				b.skip(n, socket.Name, "no mapping for this input")
			}
			continue
		}

		link, linked := b.g.IncomingLink(n.ID, socket.Name)
		if !linked {
			b.literal(n, out.node, socket, targetPort, toType)
			continue
		}

		upstream, _ := b.g.Node(link.FromNode)
		hostOut, _ := upstream.Output(link.FromOutput)

		ub, err := b.export(upstream, hostOut.Type)
		if err != nil {
			return err
		}
		if ub.skipped {
			b.skip(n, socket.Name, "upstream node is unsupported")
			b.literal(n, out.node, socket, targetPort, toType)
			continue
		}

		qualifier, fromType, ok := ub.port(b.t.lib, link.FromOutput)
		if !ok {
			b.skip(n, socket.Name, "upstream output "+link.FromOutput+" has no mapping")
			continue
		}

		if err := b.connect(n, out.node, socket.Name, targetPort, toType, ub, qualifier, fromType); err != nil {
			return err
		}
	}
	return nil
}

// connect wires one resolved connection, inserting whatever node the
// conversion rule calls for. The wired port always carries exactly toType.
func (b *builder) connect(n *source.Node, target *mtlxdoc.Node, socketName, targetPort string,
	toType mtlxtype.Type, ub *built, qualifier string, fromType mtlxtype.Type) error {

	rule := convert.Resolve(fromType, toType)
	switch rule.Kind {
	case convert.Identity:
		target.Connect(targetPort, toType, ub.node.Name, qualifier)

	case convert.Direct:
		conv := &mtlxdoc.Node{
			Name:       b.scope.UniqueName(rule.NodeType),
			Type:       rule.NodeType,
			OutputType: toType,
		}
		conv.Connect("in", fromType, ub.node.Name, qualifier)
		if rule.NodeType == "extract" {
			conv.SetLiteral("index", mtlxtype.Integer, mtlxtype.FormatFloat(float64(rule.Index)))
		}
		if err := b.scope.AddNode(conv); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "insert converter")
		}
		target.Connect(targetPort, toType, conv.Name, "")

	case convert.Synthesized:
		def, err := b.sy.Conversion(rule)
		if err != nil {
			return errors.Wrap(errors.ErrCodeNodeDefNotFound, err, "synthesize %s to %s", fromType, toType)
		}
		conv := &mtlxdoc.Node{
			Name:       b.scope.UniqueName(def.NodeType),
			Type:       def.NodeType,
			NodeDef:    def.Name,
			OutputType: toType,
		}
		conv.Connect("in", fromType, ub.node.Name, qualifier)
		if err := b.scope.AddNode(conv); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "insert converter")
		}
		target.Connect(targetPort, toType, conv.Name, "")

	default:
		if b.t.strict {
			return errors.New(errors.ErrCodeConversionUnavailable,
				"no conversion from %s to %s for %s.%s", fromType, toType, n.Name(), socketName)
		}
		b.skip(n, socketName, "no conversion from "+string(fromType)+" to "+string(toType))
	}
	return nil
}

// inputPort resolves a host input socket to its target port and type.
// Entries in schema form declare the type themselves; otherwise the schema
// library's declaration applies, with polymorphic ports following the
// instance output type.
func (b *builder) inputPort(out *built, socket source.Socket) (string, mtlxtype.Type, bool) {
	if out.emu != nil {
		name, ok := out.emu.TargetInput(socket.Name)
		if !ok {
			return "", "", false
		}
		def, _ := b.doc.NodeDef(out.node.NodeDef)
		for _, p := range def.Inputs {
			if p.Name == name {
				return name, p.Type, true
			}
		}
		return "", "", false
	}

	name, ok := out.entry.TargetInput(socket.Name)
	if !ok {
		return "", "", false
	}
	if typ, ok := out.entry.PortType(socket.Name); ok {
		return name, typ, true
	}
	spec, ok := b.t.lib.Node(out.entry.TargetType)
	if !ok {
		return "", "", false
	}
	port, ok := spec.Input(name)
	if !ok {
		return "", "", false
	}
	typ := port.Type
	if typ == "" {
		typ = out.node.OutputType
	}
	return name, typ, true
}

// literal carries an unlinked socket's default across as a formatted
// literal, coercing it to the target port type.
func (b *builder) literal(n *source.Node, target *mtlxdoc.Node, socket source.Socket,
	targetPort string, toType mtlxtype.Type) {

	if socket.Default.IsZero() {
		return
	}
	v, err := socket.Default.Convert(toType)
	if err != nil {
		b.skip(n, socket.Name, "default value cannot become "+string(toType))
		return
	}
	target.SetLiteral(targetPort, toType, v.Format())
}

func (b *builder) skip(n *source.Node, input, reason string) {
	b.res.Skipped = append(b.res.Skipped, Skipped{Node: n.Name(), Input: input, Reason: reason})
}

// sanitize turns a host-facing name into a MaterialX element name.
func sanitize(name string) string {
	if name == "" {
		return "material"
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	out := sb.String()
	if out[0] >= '0' && out[0] <= '9' {
		out = "n" + out
	}
	return out
}
