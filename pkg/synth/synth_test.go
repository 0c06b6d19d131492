package synth

import (
	"testing"

	"github.com/mtlxbridge/mtlxbridge/pkg/convert"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

func TestConversionBuildsDefinition(t *testing.T) {
	doc := mtlxdoc.NewDocument()
	s := New(doc)

	rule := convert.Resolve(mtlxtype.Vector2, mtlxtype.Vector3)
	def, err := s.Conversion(rule)
	if err != nil {
		t.Fatalf("Conversion() error = %v", err)
	}

	if def.Name != "ND_convert_vector2_to_vector3" {
		t.Errorf("def.Name = %q, want ND_convert_vector2_to_vector3", def.Name)
	}
	if def.NodeType != "convert_vector2_to_vector3" {
		t.Errorf("def.NodeType = %q, want convert_vector2_to_vector3", def.NodeType)
	}
	if len(def.Inputs) != 1 || def.Inputs[0].Type != mtlxtype.Vector2 {
		t.Errorf("def.Inputs = %+v, want single vector2 input", def.Inputs)
	}
	if len(def.Outputs) != 1 || def.Outputs[0].Type != mtlxtype.Vector3 {
		t.Errorf("def.Outputs = %+v, want single vector3 output", def.Outputs)
	}

	impl := def.Implementation
	if impl == nil {
		t.Fatal("def.Implementation = nil")
	}
	if impl.Name != "IM_convert_vector2_to_vector3" || impl.NodeDef != def.Name {
		t.Errorf("impl = %q nodedef %q, want IM_ graph linked to %q", impl.Name, impl.NodeDef, def.Name)
	}

	parts, ok := impl.Node("parts")
	if !ok || parts.Type != "separate2" {
		t.Fatalf("parts node = %+v, want separate2", parts)
	}
	in, ok := parts.Input("in")
	if !ok || in.Interface != "in" {
		t.Errorf("parts in binding = %+v, want interface in", in)
	}

	merge, ok := impl.Node("merge")
	if !ok || merge.Type != "combine3" {
		t.Fatalf("merge node = %+v, want combine3", merge)
	}
	// Third component is the zero pad, carried as a literal.
	padIn, ok := merge.Input("in3")
	if !ok || padIn.Value != "0" || padIn.IsConnected() {
		t.Errorf("merge in3 = %+v, want literal 0", padIn)
	}

	out, ok := impl.Output("out")
	if !ok || out.NodeName != "merge" || out.Type != mtlxtype.Vector3 {
		t.Errorf("impl output = %+v, want merge/vector3", out)
	}
}

func TestConversionAlphaPad(t *testing.T) {
	doc := mtlxdoc.NewDocument()
	s := New(doc)

	def, err := s.Conversion(convert.Resolve(mtlxtype.Color3, mtlxtype.Color4))
	if err != nil {
		t.Fatalf("Conversion() error = %v", err)
	}
	merge, _ := def.Implementation.Node("merge")
	padIn, ok := merge.Input("in4")
	if !ok || padIn.Value != "1" {
		t.Errorf("merge in4 = %+v, want literal 1 alpha pad", padIn)
	}
}

func TestConversionMemoized(t *testing.T) {
	doc := mtlxdoc.NewDocument()
	s := New(doc)
	rule := convert.Resolve(mtlxtype.Color4, mtlxtype.Color3)

	a, err := s.Conversion(rule)
	if err != nil {
		t.Fatalf("Conversion() error = %v", err)
	}
	b, err := s.Conversion(rule)
	if err != nil {
		t.Fatalf("Conversion() second call error = %v", err)
	}
	if a != b {
		t.Error("Conversion() built two definitions for one rule")
	}
	if len(doc.NodeDefs()) != 1 {
		t.Errorf("doc has %d nodedefs, want 1", len(doc.NodeDefs()))
	}
}

func TestConversionRejectsNonSynthesized(t *testing.T) {
	s := New(mtlxdoc.NewDocument())
	if _, err := s.Conversion(convert.Resolve(mtlxtype.Float, mtlxtype.Color3)); err == nil {
		t.Error("Conversion(direct rule) = nil error, want error")
	}
}

func TestEmulationCurveRGB(t *testing.T) {
	doc := mtlxdoc.NewDocument()
	s := New(doc)

	e, ok := s.Emulation("CURVE_RGB")
	if !ok {
		t.Fatal("Emulation(CURVE_RGB) = miss")
	}
	if got, ok := e.TargetInput("Color"); !ok || got != "in" {
		t.Errorf("TargetInput(Color) = %q, %v, want in", got, ok)
	}

	def, err := s.Materialize(e)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if def.Name != "ND_curve_rgb" || def.NodeType != "curve_rgb" {
		t.Errorf("def = %q/%q, want ND_curve_rgb/curve_rgb", def.Name, def.NodeType)
	}

	impl := def.Implementation
	var lookups int
	for _, n := range impl.Nodes() {
		if n.Type == "curvelookup" {
			lookups++
		}
	}
	if lookups != 3 {
		t.Errorf("implementation has %d curvelookup nodes, want 3", lookups)
	}

	// Memoized across calls.
	again, err := s.Materialize(e)
	if err != nil {
		t.Fatalf("Materialize() second call error = %v", err)
	}
	if again != def {
		t.Error("Materialize() built two definitions for one emulation")
	}
}

func TestEmulationUnknown(t *testing.T) {
	s := New(mtlxdoc.NewDocument())
	if _, ok := s.Emulation("BSDF_HAIR"); ok {
		t.Error("Emulation(BSDF_HAIR) = hit, want miss")
	}
}
