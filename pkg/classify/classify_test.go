package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
)

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
		t.Fatalf("AddLink(%s -> %s): %v", from, to, err)
	}
}

// baseGraph returns a sink plus principled shader wired together.
func baseGraph(t *testing.T) *source.Graph {
	t.Helper()
	g := source.New("test")
	mustAdd(t, g, source.Node{
		ID: "out", Type: source.OutputMaterialType,
		Inputs: []source.Socket{{Name: source.SurfaceInput, Type: mtlxtype.SurfaceShader}},
	})
	mustAdd(t, g, source.Node{
		ID: "shader", Type: "BSDF_PRINCIPLED",
		Inputs: []source.Socket{
			{Name: "Base Color", Type: mtlxtype.Color3},
			{Name: "Roughness", Type: mtlxtype.Float},
			{Name: "Metallic", Type: mtlxtype.Float},
			{Name: "Normal", Type: mtlxtype.Vector3},
		},
		Outputs: []source.Socket{{Name: "BSDF", Type: mtlxtype.SurfaceShader}},
	})
	mustLink(t, g, "shader", "BSDF", "out", source.SurfaceInput)
	return g
}

func texNode(id string) source.Node {
	return source.Node{
		ID: id, Type: "TEX_IMAGE",
		Inputs:  []source.Socket{{Name: "Vector", Type: mtlxtype.Vector2}},
		Outputs: []source.Socket{{Name: "Color", Type: mtlxtype.Color3}},
	}
}

func TestClassifyShaderOnly(t *testing.T) {
	g := baseGraph(t)
	if got := DefaultConfig().Classify(g); got != Direct {
		t.Errorf("Classify() = %v, want direct", got)
	}
}

func TestClassifyBelowThreshold(t *testing.T) {
	g := baseGraph(t)
	mustAdd(t, g, texNode("tex1"))
	mustLink(t, g, "tex1", "Color", "shader", "Base Color")
	if got := DefaultConfig().Classify(g); got != Direct {
		t.Errorf("Classify() = %v, want direct", got)
	}
}

func TestClassifyAtThreshold(t *testing.T) {
	// Exactly the threshold count of non-trivial nodes stays direct.
	g := baseGraph(t)
	mustAdd(t, g, texNode("tex1"))
	mustAdd(t, g, texNode("tex2"))
	mustAdd(t, g, texNode("tex3"))
	mustLink(t, g, "tex1", "Color", "shader", "Base Color")
	mustLink(t, g, "tex2", "Color", "shader", "Roughness")
	mustLink(t, g, "tex3", "Color", "shader", "Normal")
	if got := DefaultConfig().Classify(g); got != Direct {
		t.Errorf("Classify() = %v, want direct at threshold", got)
	}
}

func TestClassifyAboveThreshold(t *testing.T) {
	g := baseGraph(t)
	mustAdd(t, g, texNode("tex1"))
	mustAdd(t, g, texNode("tex2"))
	mustAdd(t, g, texNode("tex3"))
	mustAdd(t, g, texNode("tex4"))
	mustLink(t, g, "tex1", "Color", "shader", "Base Color")
	mustLink(t, g, "tex2", "Color", "shader", "Roughness")
	mustLink(t, g, "tex3", "Color", "shader", "Normal")
	mustLink(t, g, "tex4", "Color", "shader", "Metallic")
	if got := DefaultConfig().Classify(g); got != NodeGraph {
		t.Errorf("Classify() = %v, want nodegraph above threshold", got)
	}
}

func TestClassifyTrivialNodesDoNotCount(t *testing.T) {
	g := baseGraph(t)
	for _, id := range []string{"c1", "c2", "c3"} {
		mustAdd(t, g, source.Node{
			ID: id, Type: "RGB",
			Outputs: []source.Socket{{Name: "Color", Type: mtlxtype.Color3}},
		})
	}
	mustLink(t, g, "c1", "Color", "shader", "Base Color")
	if got := DefaultConfig().Classify(g); got != Direct {
		t.Errorf("Classify() = %v, want direct with only constants", got)
	}
}

func TestClassifyMathForcesNodeGraph(t *testing.T) {
	g := baseGraph(t)
	mustAdd(t, g, source.Node{
		ID: "m", Type: "MATH",
		Inputs: []source.Socket{
			{Name: "Value", Type: mtlxtype.Float},
			{Name: "Value_001", Type: mtlxtype.Float},
		},
		Outputs: []source.Socket{{Name: "Value", Type: mtlxtype.Float}},
	})
	mustLink(t, g, "m", "Value", "shader", "Roughness")
	if got := DefaultConfig().Classify(g); got != NodeGraph {
		t.Errorf("Classify() = %v, want nodegraph with math node", got)
	}
}

func TestClassifyProceduralForcesNodeGraph(t *testing.T) {
	// A connected procedural texture forces the graph pattern even with a
	// single consumer.
	g := baseGraph(t)
	mustAdd(t, g, source.Node{
		ID: "noise", Type: "TEX_NOISE",
		Outputs: []source.Socket{{Name: "Fac", Type: mtlxtype.Float}},
	})
	mustLink(t, g, "noise", "Fac", "shader", "Roughness")
	if got := DefaultConfig().Classify(g); got != NodeGraph {
		t.Errorf("Classify() = %v, want nodegraph for connected procedural", got)
	}
}

func TestClassifyProceduralLeafDoesNotCount(t *testing.T) {
	// A procedural texture with no outgoing connections never reaches the
	// terminal and must not affect the decision.
	g := baseGraph(t)
	mustAdd(t, g, source.Node{
		ID: "noise", Type: "TEX_NOISE",
		Outputs: []source.Socket{{Name: "Fac", Type: mtlxtype.Float}},
	})
	if got := DefaultConfig().Classify(g); got != Direct {
		t.Errorf("Classify() = %v, want direct for disconnected procedural", got)
	}
}

func TestClassifyIgnoresUnreachable(t *testing.T) {
	g := baseGraph(t)
	// Disconnected math node must not affect the decision.
	mustAdd(t, g, source.Node{
		ID: "orphan", Type: "MATH",
		Outputs: []source.Socket{{Name: "Value", Type: mtlxtype.Float}},
	})
	if got := DefaultConfig().Classify(g); got != Direct {
		t.Errorf("Classify() = %v, want direct ignoring orphan", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	g := baseGraph(t)
	mustAdd(t, g, texNode("tex1"))
	mustLink(t, g, "tex1", "Color", "shader", "Base Color")
	cfg := DefaultConfig()
	first := cfg.Classify(g)
	for i := 0; i < 10; i++ {
		if got := cfg.Classify(g); got != first {
			t.Fatalf("Classify() run %d = %v, first run = %v", i, got, first)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classify.toml")
	data := []byte("threshold = 5\nmath_types = [\"MATH\"]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Threshold != 5 {
		t.Errorf("Threshold = %d, want 5", cfg.Threshold)
	}
	if len(cfg.MathTypes) != 1 || cfg.MathTypes[0] != "MATH" {
		t.Errorf("MathTypes = %v, want [MATH]", cfg.MathTypes)
	}
	// Unset fields keep their defaults.
	if len(cfg.ProceduralTypes) == 0 {
		t.Error("ProceduralTypes lost its default")
	}
}

func TestLoadConfigRejectsBadThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classify.toml")
	if err := os.WriteFile(path, []byte("threshold = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() = nil error, want threshold error")
	}
}
