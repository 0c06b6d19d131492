package schema

import "github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"

// Shorthand for the table below.
const (
	tF  = mtlxtype.Float
	tI  = mtlxtype.Integer
	tB  = mtlxtype.Boolean
	tS  = mtlxtype.String
	tC3 = mtlxtype.Color3
	tC4 = mtlxtype.Color4
	tV2 = mtlxtype.Vector2
	tV3 = mtlxtype.Vector3
	tV4 = mtlxtype.Vector4
	tFn = mtlxtype.Filename
	tSh = mtlxtype.SurfaceShader
)

// poly marks a port that follows the instance's output type.
func poly(name string) PortDef { return PortDef{Name: name} }

func in(name string, t mtlxtype.Type) PortDef { return PortDef{Name: name, Type: t} }

// standardSpecs is the subset of the MaterialX standard library the mapping
// registry and synthesizer are allowed to emit.
var standardSpecs = []NodeSpec{
	{
		Type:        "standard_surface",
		OutputTypes: []mtlxtype.Type{tSh},
		Inputs: []PortDef{
			in("base", tF), in("base_color", tC3), in("metallic", tF),
			in("roughness", tF), in("specular", tF), in("ior", tF),
			in("transmission", tF), in("opacity", tF), in("normal", tV3),
			in("emission", tF), in("emission_color", tC3),
			in("subsurface", tF), in("subsurface_radius", tC3),
			in("subsurface_scale", tF), in("subsurface_anisotropy", tF),
			in("sheen", tF), in("sheen_tint", tF), in("sheen_roughness", tF),
			in("clearcoat", tF), in("clearcoat_roughness", tF),
			in("clearcoat_ior", tF), in("clearcoat_normal", tV3),
			in("tangent", tV3), in("anisotropic", tF),
			in("anisotropic_rotation", tF),
		},
		Outputs: []PortDef{in("out", tSh)},
	},
	{
		Type:        "constant",
		OutputTypes: []mtlxtype.Type{tF, tI, tB, tS, tC3, tC4, tV2, tV3, tV4, tFn},
		Inputs:      []PortDef{poly("value")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "image",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4},
		Inputs: []PortDef{
			in("file", tFn), in("layer", tS), poly("default"),
			in("texcoord", tV2), in("uaddressmode", tS), in("vaddressmode", tS),
			in("filtertype", tS),
		},
		Outputs:  []PortDef{poly("out")},
		Required: []string{"file"},
	},
	{
		Type:        "texcoord",
		OutputTypes: []mtlxtype.Type{tV2, tV3},
		Inputs:      []PortDef{in("index", tI)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "position",
		OutputTypes: []mtlxtype.Type{tV3},
		Inputs:      []PortDef{in("space", tS)},
		Outputs:     []PortDef{in("out", tV3)},
	},
	{
		Type:        "mix",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4, tSh},
		Inputs:      []PortDef{poly("fg"), poly("bg"), in("mix", tF)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "invert",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4},
		Inputs:      []PortDef{poly("in"), poly("amount")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "separate2",
		OutputTypes: []mtlxtype.Type{tF},
		Inputs:      []PortDef{in("in", tV2)},
		Outputs:     []PortDef{in("outx", tF), in("outy", tF)},
	},
	{
		Type:        "separate3",
		OutputTypes: []mtlxtype.Type{tF},
		Inputs:      []PortDef{poly("in")},
		Outputs:     []PortDef{in("outr", tF), in("outg", tF), in("outb", tF), in("outx", tF), in("outy", tF), in("outz", tF)},
	},
	{
		Type:        "separate4",
		OutputTypes: []mtlxtype.Type{tF},
		Inputs:      []PortDef{poly("in")},
		Outputs:     []PortDef{in("outr", tF), in("outg", tF), in("outb", tF), in("outa", tF), in("outx", tF), in("outy", tF), in("outz", tF), in("outw", tF)},
	},
	{
		Type:        "combine2",
		OutputTypes: []mtlxtype.Type{tV2},
		Inputs:      []PortDef{in("in1", tF), in("in2", tF)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "combine3",
		OutputTypes: []mtlxtype.Type{tC3, tV3},
		Inputs:      []PortDef{in("in1", tF), in("in2", tF), in("in3", tF), in("r", tF), in("g", tF), in("b", tF)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "combine4",
		OutputTypes: []mtlxtype.Type{tC4, tV4},
		Inputs:      []PortDef{in("in1", tF), in("in2", tF), in("in3", tF), in("in4", tF)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "convert",
		OutputTypes: []mtlxtype.Type{tF, tI, tB, tC3, tC4, tV2, tV3, tV4},
		Inputs:      []PortDef{poly("in")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "extract",
		OutputTypes: []mtlxtype.Type{tF},
		Inputs:      []PortDef{poly("in"), in("index", tI)},
		Outputs:     []PortDef{in("out", tF)},
	},
	{
		Type:        "luminance",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4},
		Inputs:      []PortDef{poly("in"), in("lumacoeffs", tC3)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "checkerboard",
		OutputTypes: []mtlxtype.Type{tC3},
		Inputs: []PortDef{
			in("in1", tC3), in("in2", tC3), in("freq", tV2),
			in("offset", tV2), in("texcoord", tV2),
		},
		Outputs: []PortDef{in("out", tC3)},
	},
	{
		Type:        "fractal3d",
		OutputTypes: []mtlxtype.Type{tF, tC3, tV3},
		Inputs: []PortDef{
			poly("amplitude"), in("octaves", tI), in("lacunarity", tF),
			in("diminish", tF), in("position", tV3),
		},
		Outputs: []PortDef{poly("out")},
	},
	{
		Type:        "voronoi",
		OutputTypes: []mtlxtype.Type{tF, tC3},
		Inputs:      []PortDef{in("scale", tF), in("detail", tF), in("position", tV3)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "wave",
		OutputTypes: []mtlxtype.Type{tF, tC3},
		Inputs: []PortDef{
			in("frequency", tF), in("distortion", tF), in("octaves", tI),
			in("detail_frequency", tF), in("detail_amplitude", tF),
			in("texcoord", tV2),
		},
		Outputs: []PortDef{poly("out")},
	},
	{
		Type:        "ramplr",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4},
		Inputs:      []PortDef{poly("valuel"), poly("valuer"), in("texcoord", tV2), poly("in")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "math",
		OutputTypes: []mtlxtype.Type{tF},
		Inputs:      []PortDef{in("in1", tF), in("in2", tF), in("operation", tS)},
		Outputs:     []PortDef{in("out", tF)},
	},
	{
		Type:        "vector_math",
		OutputTypes: []mtlxtype.Type{tV3},
		Inputs:      []PortDef{in("in1", tV3), in("in2", tV3), in("operation", tS)},
		Outputs:     []PortDef{in("out", tV3)},
	},
	{
		Type:        "add",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4, tSh},
		Inputs:      []PortDef{poly("in1"), poly("in2")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "subtract",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4},
		Inputs:      []PortDef{poly("in1"), poly("in2")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "multiply",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4, tSh},
		Inputs:      []PortDef{poly("in1"), poly("in2")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "divide",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4},
		Inputs:      []PortDef{poly("in1"), poly("in2")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "modulo",
		OutputTypes: []mtlxtype.Type{tF, tC3, tV2, tV3},
		Inputs:      []PortDef{poly("in1"), poly("in2")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "normalmap",
		OutputTypes: []mtlxtype.Type{tV3},
		Inputs:      []PortDef{in("in", tV3), in("scale", tF), in("normal", tV3), in("tangent", tV3)},
		Outputs:     []PortDef{in("out", tV3)},
		Required:    []string{"in"},
	},
	{
		Type:        "bump",
		OutputTypes: []mtlxtype.Type{tV3},
		Inputs:      []PortDef{in("in", tF), in("scale", tF), in("distance", tF), in("normal", tV3)},
		Outputs:     []PortDef{in("out", tV3)},
		Required:    []string{"in"},
	},
	{
		Type:        "place2d",
		OutputTypes: []mtlxtype.Type{tV2},
		Inputs: []PortDef{
			in("texcoord", tV2), in("pivot", tV2), in("scale", tV2),
			in("rotate", tF), in("offset", tV2),
		},
		Outputs: []PortDef{in("out", tV2)},
	},
	{
		Type:        "layer",
		OutputTypes: []mtlxtype.Type{tF, tSh},
		Inputs:      []PortDef{poly("top"), poly("base"), in("blend", tF), in("normal", tV3)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "clamp",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4},
		Inputs:      []PortDef{poly("in"), poly("low"), poly("high")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "remap",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4},
		Inputs: []PortDef{
			poly("in"), poly("inlow"), poly("inhigh"),
			poly("outlow"), poly("outhigh"),
		},
		Outputs: []PortDef{poly("out")},
	},
	{
		Type:        "hsvtorgb",
		OutputTypes: []mtlxtype.Type{tC3, tC4},
		Inputs:      []PortDef{poly("in"), in("h", tF), in("s", tF), in("v", tF)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "rgbtohsv",
		OutputTypes: []mtlxtype.Type{tC3, tC4},
		Inputs:      []PortDef{poly("in")},
		Outputs:     []PortDef{poly("out"), in("h", tF), in("s", tF), in("v", tF)},
	},
	{
		Type:        "contrast",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4},
		Inputs:      []PortDef{poly("in"), poly("contrast"), poly("brightness"), poly("amount"), poly("pivot")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "saturate",
		OutputTypes: []mtlxtype.Type{tC3, tC4},
		Inputs:      []PortDef{poly("in"), in("amount", tF), in("factor", tF), in("lumacoeffs", tC3)},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "gamma",
		OutputTypes: []mtlxtype.Type{tF, tC3, tC4, tV2, tV3, tV4},
		Inputs:      []PortDef{poly("in"), poly("gamma")},
		Outputs:     []PortDef{poly("out")},
	},
	{
		Type:        "curvelookup",
		OutputTypes: []mtlxtype.Type{tF, tC3},
		Inputs:      []PortDef{poly("in"), poly("knots")},
		Outputs:     []PortDef{poly("out")},
	},
}

var defaultLibrary = func() *Library {
	lib, err := New(standardSpecs)
	if err != nil {
		panic(err) // static table, exercised by tests
	}
	return lib
}()

// Default returns the built-in standard library subset. The returned
// library is shared and must not be mutated.
func Default() *Library { return defaultLibrary }
