package synth

import (
	"fmt"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

// Emulation describes a source node type with no single-node equivalent
// that the synthesizer can nevertheless express as a custom definition
// built from standard primitives. It carries the same port rename tables a
// mapping entry would, so the graph builder treats emulated and mapped
// nodes uniformly.
type Emulation struct {
	SourceType string
	Key        string // basis for ND_/IM_ names and the instance node type
	OutputType mtlxtype.Type

	Inputs  map[string]string
	Outputs map[string]string

	ports []mtlxdoc.Port
	build func(impl *mtlxdoc.NodeGraph) (outNode string, err error)
}

// TargetInput resolves a source input socket to the emulated definition's
// interface input.
func (e *Emulation) TargetInput(source string) (string, bool) {
	name, ok := e.Inputs[source]
	return name, ok
}

// TargetOutput resolves a source output socket name.
func (e *Emulation) TargetOutput(source string) (string, bool) {
	name, ok := e.Outputs[source]
	return name, ok
}

// Emulation looks up the emulation recipe for an unmapped source type.
func (s *Synthesizer) Emulation(sourceType string) (*Emulation, bool) {
	e, ok := emulations[sourceType]
	return e, ok
}

// Materialize builds and registers the custom definition behind an
// emulation, memoized by definition name like conversions are.
func (s *Synthesizer) Materialize(e *Emulation) (*mtlxdoc.NodeDef, error) {
	defName := "ND_" + e.Key
	if def, ok := s.doc.NodeDef(defName); ok {
		return def, nil
	}

	def := &mtlxdoc.NodeDef{
		Name:     defName,
		NodeType: e.Key,
		Inputs:   e.ports,
		Outputs:  []mtlxdoc.Port{{Name: "out", Type: e.OutputType}},
	}

	impl := mtlxdoc.NewNodeDefGraph("IM_"+e.Key, defName)
	outNode, err := e.build(impl)
	if err != nil {
		return nil, fmt.Errorf("emulation %s: %w", e.SourceType, err)
	}
	if err := impl.BindOutput("out", e.OutputType, outNode, ""); err != nil {
		return nil, err
	}

	def.Implementation = impl
	if err := s.doc.AddNodeDef(def); err != nil {
		return nil, err
	}
	return def, nil
}

// emulations is keyed by source node type. Each build function assembles
// the implementation graph and returns the node the output binds to.
var emulations = map[string]*Emulation{
	"CURVE_RGB": {
		SourceType: "CURVE_RGB",
		Key:        "curve_rgb",
		OutputType: mtlxtype.Color3,
		Inputs:     map[string]string{"Color": "in", "Fac": "fac"},
		Outputs:    map[string]string{"Color": "out"},
		ports: []mtlxdoc.Port{
			{Name: "in", Type: mtlxtype.Color3},
			{Name: "fac", Type: mtlxtype.Float, Default: "1"},
		},
		// Per-channel curve lookup: split, remap each channel, rejoin.
		build: func(impl *mtlxdoc.NodeGraph) (string, error) {
			parts := &mtlxdoc.Node{
				Name: impl.UniqueName("parts"), Type: "separate3",
				OutputType: mtlxtype.Float,
			}
			parts.ConnectInterface("in", mtlxtype.Color3, "in")
			if err := impl.AddNode(parts); err != nil {
				return "", err
			}

			channels := []string{"outr", "outg", "outb"}
			curves := make([]string, len(channels))
			for i, ch := range channels {
				curve := &mtlxdoc.Node{
					Name: impl.UniqueName("curve"), Type: "curvelookup",
					OutputType: mtlxtype.Float,
				}
				curve.Connect("in", mtlxtype.Float, parts.Name, ch)
				if err := impl.AddNode(curve); err != nil {
					return "", err
				}
				curves[i] = curve.Name
			}

			merge := &mtlxdoc.Node{
				Name: impl.UniqueName("merge"), Type: "combine3",
				OutputType: mtlxtype.Color3,
			}
			for i, name := range curves {
				merge.Connect(fmt.Sprintf("in%d", i+1), mtlxtype.Float, name, "")
			}
			if err := impl.AddNode(merge); err != nil {
				return "", err
			}

			blend := &mtlxdoc.Node{
				Name: impl.UniqueName("blend"), Type: "mix",
				OutputType: mtlxtype.Color3,
			}
			blend.Connect("fg", mtlxtype.Color3, merge.Name, "")
			blend.ConnectInterface("bg", mtlxtype.Color3, "in")
			blend.ConnectInterface("mix", mtlxtype.Float, "fac")
			if err := impl.AddNode(blend); err != nil {
				return "", err
			}
			return blend.Name, nil
		},
	},
	"TEX_BRICK": {
		SourceType: "TEX_BRICK",
		Key:        "tex_brick",
		OutputType: mtlxtype.Color3,
		Inputs: map[string]string{
			"Vector": "texcoord", "Color1": "color1", "Color2": "color2",
			"Scale": "scale",
		},
		Outputs: map[string]string{"Color": "out", "Fac": "out"},
		ports: []mtlxdoc.Port{
			{Name: "texcoord", Type: mtlxtype.Vector2},
			{Name: "color1", Type: mtlxtype.Color3, Default: "0.8,0.8,0.8"},
			{Name: "color2", Type: mtlxtype.Color3, Default: "0.2,0.2,0.2"},
			{Name: "scale", Type: mtlxtype.Float, Default: "5"},
		},
		// Staggered checker approximation of the brick pattern.
		build: func(impl *mtlxdoc.NodeGraph) (string, error) {
			freq := &mtlxdoc.Node{
				Name: impl.UniqueName("freq"), Type: "combine2",
				OutputType: mtlxtype.Vector2,
			}
			freq.ConnectInterface("in1", mtlxtype.Float, "scale")
			freq.ConnectInterface("in2", mtlxtype.Float, "scale")
			if err := impl.AddNode(freq); err != nil {
				return "", err
			}

			checker := &mtlxdoc.Node{
				Name: impl.UniqueName("pattern"), Type: "checkerboard",
				OutputType: mtlxtype.Color3,
			}
			checker.ConnectInterface("in1", mtlxtype.Color3, "color1")
			checker.ConnectInterface("in2", mtlxtype.Color3, "color2")
			checker.Connect("freq", mtlxtype.Vector2, freq.Name, "")
			checker.ConnectInterface("texcoord", mtlxtype.Vector2, "texcoord")
			if err := impl.AddNode(checker); err != nil {
				return "", err
			}
			return checker.Name, nil
		},
	},
}
