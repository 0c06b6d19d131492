package inspect

import (
	"strings"
	"testing"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

func TestToDOTDocument(t *testing.T) {
	doc := mtlxdoc.NewDocument()

	g, err := doc.AddNodeGraph("NG_wood")
	if err != nil {
		t.Fatal(err)
	}
	img := &mtlxdoc.Node{Name: "image", Type: "image", OutputType: mtlxtype.Color3}
	if err := g.AddNode(img); err != nil {
		t.Fatal(err)
	}
	if err := g.BindOutput("out", mtlxtype.Color3, "image", ""); err != nil {
		t.Fatal(err)
	}

	shader := &mtlxdoc.Node{Name: "shader", Type: "standard_surface", OutputType: mtlxtype.SurfaceShader}
	shader.Connect("base_color", mtlxtype.Color3, "image", "")
	if err := doc.AddNode(shader); err != nil {
		t.Fatal(err)
	}
	if err := doc.AddMaterial(&mtlxdoc.Material{Name: "Wood", ShaderNode: "shader"}); err != nil {
		t.Fatal(err)
	}

	dot := ToDOTDocument(doc)

	for _, want := range []string{
		"digraph G {",
		"subgraph cluster_0",
		`label="NG_wood"`,
		`"NG_wood/image"`,
		`"shader"`,
		`"material/Wood"`,
		`"shader" -> "material/Wood"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOTDocument() missing %q in:\n%s", want, dot)
		}
	}
}
