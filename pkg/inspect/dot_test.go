package inspect

import (
	"strings"
	"testing"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
)

func testGraph(t *testing.T) *source.Graph {
	t.Helper()
	g := source.New("RedPlastic")
	if err := g.AddNode(source.Node{
		ID:     "out",
		Type:   "OUTPUT_MATERIAL",
		Inputs: []source.Socket{{Name: "Surface", Type: mtlxtype.SurfaceShader}},
	}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(source.Node{
		ID:      "bsdf",
		Label:   "Principled BSDF",
		Type:    "BSDF_PRINCIPLED",
		Inputs:  []source.Socket{{Name: "Base Color", Type: mtlxtype.Color4}},
		Outputs: []source.Socket{{Name: "BSDF", Type: mtlxtype.SurfaceShader}},
	}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddLink(source.Link{
		FromNode: "bsdf", FromOutput: "BSDF", ToNode: "out", ToInput: "Surface",
	}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})

	for _, want := range []string{
		"digraph G {",
		`"bsdf"`,
		`"out"`,
		`"bsdf" -> "out"`,
		"BSDF > Surface",
		"Principled BSDF",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTTerminalHighlight(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{})
	if !strings.Contains(dot, "lightblue") {
		t.Error("ToDOT() terminal node not highlighted")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testGraph(t), Options{Detailed: true})
	if !strings.Contains(dot, "in Base Color: color4") {
		t.Errorf("ToDOT(detailed) missing socket line in:\n%s", dot)
	}
	if !strings.Contains(dot, "out BSDF: surfaceshader") {
		t.Errorf("ToDOT(detailed) missing output line in:\n%s", dot)
	}
}
