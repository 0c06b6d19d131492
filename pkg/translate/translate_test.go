package translate

import (
	"testing"

	"github.com/mtlxbridge/mtlxbridge/pkg/classify"
	"github.com/mtlxbridge/mtlxbridge/pkg/errors"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
)

func newTranslator(t *testing.T, strict bool) *Translator {
	t.Helper()
	tr, err := New(Options{Strict: strict})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr
}

func mustAdd(t *testing.T, g *source.Graph, n source.Node) {
	t.Helper()
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode(%s): %v", n.ID, err)
	}
}

func mustLink(t *testing.T, g *source.Graph, from, output, to, input string) {
	t.Helper()
	err := g.AddLink(source.Link{FromNode: from, FromOutput: output, ToNode: to, ToInput: input})
	if err != nil {
		t.Fatalf("AddLink(%s -> %s.%s): %v", from, to, input, err)
	}
}

// principledGraph builds a sink plus principled shader. The base color
// default is an RGBA literal, as host dumps carry it.
func principledGraph(t *testing.T, material string) *source.Graph {
	t.Helper()
	g := source.New(material)
	mustAdd(t, g, source.Node{
		ID: "sink", Type: source.OutputMaterialType,
		Inputs: []source.Socket{{Name: source.SurfaceInput, Type: mtlxtype.SurfaceShader}},
	})
	mustAdd(t, g, source.Node{
		ID: "principled", Label: "Principled BSDF", Type: "BSDF_PRINCIPLED",
		Inputs: []source.Socket{
			{Name: "Base Color", Type: mtlxtype.Color4,
				Default: mtlxtype.TupleValue(mtlxtype.Color4, 0.8, 0.2, 0.2, 1)},
			{Name: "Roughness", Type: mtlxtype.Float, Default: mtlxtype.FloatValue(0.5)},
			{Name: "Metallic", Type: mtlxtype.Float},
			{Name: "Normal", Type: mtlxtype.Vector3},
		},
		Outputs: []source.Socket{{Name: "BSDF", Type: mtlxtype.SurfaceShader}},
	})
	mustLink(t, g, "principled", "BSDF", "sink", source.SurfaceInput)
	return g
}

func imageNode(id string, file string) source.Node {
	n := source.Node{
		ID: id, Type: "TEX_IMAGE",
		Inputs: []source.Socket{
			{Name: "Vector", Type: mtlxtype.Vector2},
		},
		Outputs: []source.Socket{{Name: "Color", Type: mtlxtype.Color3}},
	}
	if file != "" {
		n.Inputs = append(n.Inputs, source.Socket{
			Name: "File", Type: mtlxtype.Filename, Default: mtlxtype.FilenameValue(file),
		})
	}
	return n
}

func shaderNode(t *testing.T, doc *mtlxdoc.Document, res *Result) *mtlxdoc.Node {
	t.Helper()
	m := doc.Materials()
	if len(m) != 1 {
		t.Fatalf("document has %d materials, want 1", len(m))
	}
	if m[0].ReferencesGraph() {
		g, ok := doc.NodeGraph(m[0].ShaderGraph)
		if !ok {
			t.Fatalf("material references missing graph %q", m[0].ShaderGraph)
		}
		o, ok := g.Output(m[0].ShaderOutput)
		if !ok {
			t.Fatalf("graph %q has no output %q", g.Name, m[0].ShaderOutput)
		}
		n, ok := g.Node(o.NodeName)
		if !ok {
			t.Fatalf("output %q binds missing node %q", o.Name, o.NodeName)
		}
		return n
	}
	n, ok := doc.Node(m[0].ShaderNode)
	if !ok {
		t.Fatalf("material references missing node %q", m[0].ShaderNode)
	}
	return n
}

func TestTranslateLiteralPassthrough(t *testing.T) {
	g := principledGraph(t, "RedPlastic")
	res, err := newTranslator(t, true).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, validation = %+v", res.Validation)
	}
	if res.Pattern != classify.Direct {
		t.Errorf("Pattern = %v, want direct", res.Pattern)
	}

	shader := shaderNode(t, res.Document, res)
	if shader.Type != "standard_surface" {
		t.Fatalf("shader.Type = %q, want standard_surface", shader.Type)
	}
	in, ok := shader.Input("base_color")
	if !ok {
		t.Fatal("shader has no base_color input")
	}
	// RGBA default crosses as a color3 literal with the alpha dropped.
	if in.Value != "0.8,0.2,0.2" {
		t.Errorf("base_color = %q, want 0.8,0.2,0.2", in.Value)
	}
	if in.Type != mtlxtype.Color3 {
		t.Errorf("base_color type = %v, want color3", in.Type)
	}
	if rough, ok := shader.Input("roughness"); !ok || rough.Value != "0.5" {
		t.Errorf("roughness = %+v, want literal 0.5", rough)
	}
	// Sockets with no default stay unbound.
	if _, ok := shader.Input("metallic"); ok {
		t.Error("metallic bound despite empty default")
	}
}

func TestTranslateIdentityConnection(t *testing.T) {
	g := principledGraph(t, "Wood")
	mustAdd(t, g, imageNode("tex", "wood.png"))
	mustLink(t, g, "tex", "Color", "principled", "Base Color")

	res, err := newTranslator(t, true).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, validation = %+v", res.Validation)
	}

	shader := shaderNode(t, res.Document, res)
	in, _ := shader.Input("base_color")
	if in.NodeName != "tex" || in.Value != "" {
		t.Errorf("base_color = %+v, want connection to tex", in)
	}

	img, ok := res.Document.Node("tex")
	if !ok {
		t.Fatal("image node missing at document scope")
	}
	if img.Type != "image" || img.OutputType != mtlxtype.Color3 {
		t.Errorf("image node = %s/%s, want image/color3", img.Type, img.OutputType)
	}
	if file, ok := img.Input("file"); !ok || file.Value != "wood.png" {
		t.Errorf("file input = %+v, want wood.png literal", file)
	}
}

func TestTranslateScalarFromColor(t *testing.T) {
	g := principledGraph(t, "Worn")
	mustAdd(t, g, imageNode("rough", "rough.png"))
	mustLink(t, g, "rough", "Color", "principled", "Roughness")

	res, err := newTranslator(t, true).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, validation = %+v", res.Validation)
	}

	shader := shaderNode(t, res.Document, res)
	in, _ := shader.Input("roughness")
	if in.NodeName == "" {
		t.Fatal("roughness is not connected")
	}
	conv, ok := res.Document.Node(in.NodeName)
	if !ok {
		t.Fatalf("converter %q missing", in.NodeName)
	}
	if conv.Type != "luminance" || conv.OutputType != mtlxtype.Float {
		t.Errorf("converter = %s/%s, want luminance/float", conv.Type, conv.OutputType)
	}
	if src, ok := conv.Input("in"); !ok || src.NodeName != "rough" {
		t.Errorf("converter in = %+v, want connection to rough", src)
	}
}

func TestTranslateDimensionWidening(t *testing.T) {
	g := principledGraph(t, "Bumpy")
	mustAdd(t, g, imageNode("nrm", "normal.png"))
	mustLink(t, g, "nrm", "Color", "principled", "Normal")

	res, err := newTranslator(t, true).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, validation = %+v", res.Validation)
	}

	def, ok := res.Document.NodeDef("ND_convert_color3_to_vector3")
	if !ok {
		t.Fatal("synthesized conversion definition missing")
	}

	shader := shaderNode(t, res.Document, res)
	in, _ := shader.Input("normal")
	conv, ok := res.Document.Node(in.NodeName)
	if !ok || conv.NodeDef != def.Name {
		t.Fatalf("normal feeds %+v, want instance of %s", conv, def.Name)
	}
	if conv.OutputType != mtlxtype.Vector3 {
		t.Errorf("converter output = %v, want vector3", conv.OutputType)
	}
}

func TestTranslateDiamondMemoization(t *testing.T) {
	g := principledGraph(t, "Shared")
	mustAdd(t, g, imageNode("tex", "shared.png"))
	mustLink(t, g, "tex", "Color", "principled", "Base Color")
	mustLink(t, g, "tex", "Color", "principled", "Roughness")

	res, err := newTranslator(t, true).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, validation = %+v", res.Validation)
	}

	var images int
	for _, n := range res.Document.Nodes() {
		if n.Type == "image" {
			images++
		}
	}
	if images != 1 {
		t.Errorf("document has %d image nodes, want 1 shared instance", images)
	}
}

func TestTranslateUnsupportedNonStrict(t *testing.T) {
	g := principledGraph(t, "Odd")
	mustAdd(t, g, source.Node{
		ID: "cvt", Type: "SHADER_TO_RGB",
		Outputs: []source.Socket{{Name: "Color", Type: mtlxtype.Color3}},
	})
	mustLink(t, g, "cvt", "Color", "principled", "Base Color")

	res, err := newTranslator(t, false).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, validation = %+v", res.Validation)
	}

	if len(res.Unsupported) != 1 {
		t.Fatalf("Unsupported = %+v, want one entry", res.Unsupported)
	}
	u := res.Unsupported[0]
	if u.Type != "SHADER_TO_RGB" || u.Remediation == "" {
		t.Errorf("Unsupported = %+v, want type and remediation", u)
	}
	if len(res.Skipped) == 0 {
		t.Error("Skipped is empty, want the dropped connection recorded")
	}

	// The connection falls back to the socket's literal default.
	shader := shaderNode(t, res.Document, res)
	if in, ok := shader.Input("base_color"); !ok || in.Value != "0.8,0.2,0.2" {
		t.Errorf("base_color = %+v, want literal fallback", in)
	}
}

func TestTranslateUnsupportedStrict(t *testing.T) {
	g := principledGraph(t, "Odd")
	mustAdd(t, g, source.Node{
		ID: "cvt", Type: "SHADER_TO_RGB",
		Outputs: []source.Socket{{Name: "Color", Type: mtlxtype.Color3}},
	})
	mustLink(t, g, "cvt", "Color", "principled", "Base Color")

	_, err := newTranslator(t, true).Translate(g)
	if !errors.Is(err, errors.ErrCodeUnsupportedNode) {
		t.Fatalf("Translate() error = %v, want %s", err, errors.ErrCodeUnsupportedNode)
	}
}

func TestTranslateUnsupportedTerminal(t *testing.T) {
	g := source.New("Hairy")
	mustAdd(t, g, source.Node{
		ID: "sink", Type: source.OutputMaterialType,
		Inputs: []source.Socket{{Name: source.SurfaceInput, Type: mtlxtype.SurfaceShader}},
	})
	mustAdd(t, g, source.Node{
		ID: "hair", Type: "BSDF_HAIR",
		Outputs: []source.Socket{{Name: "BSDF", Type: mtlxtype.SurfaceShader}},
	})
	mustLink(t, g, "hair", "BSDF", "sink", source.SurfaceInput)

	res, err := newTranslator(t, false).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if res.Success {
		t.Error("Success = true for unsupported terminal shader")
	}
	if len(res.Document.Materials()) != 0 {
		t.Error("document has a material bound to nothing")
	}
	if len(res.Unsupported) != 1 || res.Unsupported[0].Type != "BSDF_HAIR" {
		t.Errorf("Unsupported = %+v, want the hair shader", res.Unsupported)
	}
}

func TestTranslateCycleAborts(t *testing.T) {
	g := principledGraph(t, "Loop")
	mix := func(id string) source.Node {
		return source.Node{
			ID: id, Type: "MIX_RGB",
			Inputs: []source.Socket{
				{Name: "Color1", Type: mtlxtype.Color3},
				{Name: "Color2", Type: mtlxtype.Color3},
			},
			Outputs: []source.Socket{{Name: "Color", Type: mtlxtype.Color3}},
		}
	}
	mustAdd(t, g, mix("a"))
	mustAdd(t, g, mix("b"))
	mustLink(t, g, "a", "Color", "b", "Color1")
	mustLink(t, g, "b", "Color", "a", "Color1")
	mustLink(t, g, "a", "Color", "principled", "Base Color")

	_, err := newTranslator(t, false).Translate(g)
	if !errors.Is(err, errors.ErrCodeCycleDetected) {
		t.Fatalf("Translate() error = %v, want %s", err, errors.ErrCodeCycleDetected)
	}
}

func TestTranslateNodeGraphPattern(t *testing.T) {
	g := principledGraph(t, "RedPlastic")
	mustAdd(t, g, source.Node{
		ID: "m", Type: "MATH",
		Inputs: []source.Socket{
			{Name: "Value", Type: mtlxtype.Float, Default: mtlxtype.FloatValue(0.2)},
			{Name: "Value_001", Type: mtlxtype.Float, Default: mtlxtype.FloatValue(2)},
			{Name: "Operation", Type: mtlxtype.String, Default: mtlxtype.StringValue("multiply")},
		},
		Outputs: []source.Socket{{Name: "Value", Type: mtlxtype.Float}},
	})
	mustLink(t, g, "m", "Value", "principled", "Roughness")

	res, err := newTranslator(t, true).Translate(g)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !res.Success {
		t.Fatalf("Success = false, validation = %+v", res.Validation)
	}
	if res.Pattern != classify.NodeGraph {
		t.Fatalf("Pattern = %v, want nodegraph", res.Pattern)
	}

	ng, ok := res.Document.NodeGraph("NG_redplastic")
	if !ok {
		t.Fatal("nodegraph NG_redplastic missing")
	}
	out, ok := ng.Output("out")
	if !ok || out.Type != mtlxtype.SurfaceShader {
		t.Fatalf("graph output = %+v, want surfaceshader out", out)
	}

	m := res.Document.Materials()[0]
	if !m.ReferencesGraph() || m.ShaderGraph != "NG_redplastic" || m.ShaderOutput != "out" {
		t.Errorf("material = %+v, want graph reference", m)
	}
	if len(res.Document.Nodes()) != 0 {
		t.Error("document root holds nodes in the NodeGraph pattern")
	}

	mathNode, ok := ng.Node("m")
	if !ok {
		t.Fatal("math node missing from graph")
	}
	if op, ok := mathNode.Input("operation"); !ok || op.Value != "multiply" {
		t.Errorf("operation = %+v, want multiply literal", op)
	}
}

func TestTranslateDeterministicNaming(t *testing.T) {
	g := principledGraph(t, "Multi")
	mustAdd(t, g, imageNode("tex_a", "a.png"))
	mustAdd(t, g, imageNode("tex_b", "b.png"))
	// Colliding display labels force suffix resolution.
	a, _ := g.Node("tex_a")
	b, _ := g.Node("tex_b")
	a.Label = "Image Texture"
	b.Label = "Image Texture"
	mustLink(t, g, "tex_a", "Color", "principled", "Base Color")
	mustLink(t, g, "tex_b", "Color", "principled", "Roughness")

	translateOnce := func() []string {
		res, err := newTranslator(t, true).Translate(g)
		if err != nil {
			t.Fatalf("Translate() error = %v", err)
		}
		var names []string
		for _, n := range res.Document.Nodes() {
			names = append(names, n.Name)
		}
		return names
	}

	first := translateOnce()
	second := translateOnce()
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run names differ at %d: %v vs %v", i, first, second)
		}
	}

	seen := map[string]bool{}
	for _, name := range first {
		if seen[name] {
			t.Fatalf("duplicate node name %q", name)
		}
		seen[name] = true
	}
	if !seen["image_texture"] || !seen["image_texture_2"] {
		t.Errorf("names = %v, want image_texture and image_texture_2", first)
	}
}
