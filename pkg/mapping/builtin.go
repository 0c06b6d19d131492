package mapping

import "github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"

// builtinEntries is the shipped source-to-target table. Socket names on the
// left are host names; port names on the right come from the MaterialX
// standard library subset in pkg/schema.
var builtinEntries = []Entry{
	{
		SourceType:     "BSDF_PRINCIPLED",
		TargetType:     "standard_surface",
		TargetCategory: mtlxtype.SurfaceShader,
		Inputs: map[string]string{
			"Base Color":            "base_color",
			"Metallic":              "metallic",
			"Roughness":             "roughness",
			"Specular":              "specular",
			"IOR":                   "ior",
			"Transmission":          "transmission",
			"Alpha":                 "opacity",
			"Normal":                "normal",
			"Emission Strength":     "emission",
			"Emission Color":        "emission_color",
			"Subsurface":            "subsurface",
			"Subsurface Radius":     "subsurface_radius",
			"Subsurface Scale":      "subsurface_scale",
			"Subsurface Anisotropy": "subsurface_anisotropy",
			"Sheen":                 "sheen",
			"Sheen Tint":            "sheen_tint",
			"Sheen Roughness":       "sheen_roughness",
			"Coat":                  "clearcoat",
			"Coat Roughness":        "clearcoat_roughness",
			"Coat IOR":              "clearcoat_ior",
			"Coat Normal":           "clearcoat_normal",
			"Tangent":               "tangent",
			"Anisotropic":           "anisotropic",
			"Anisotropic Rotation":  "anisotropic_rotation",
		},
		Outputs: map[string]string{"BSDF": "out"},
		// Fixed visit order for the schema-driven shader build.
		Ports: []Port{
			{"Base Color", "base_color", mtlxtype.Color3},
			{"Metallic", "metallic", mtlxtype.Float},
			{"Roughness", "roughness", mtlxtype.Float},
			{"Specular", "specular", mtlxtype.Float},
			{"IOR", "ior", mtlxtype.Float},
			{"Transmission", "transmission", mtlxtype.Float},
			{"Alpha", "opacity", mtlxtype.Float},
			{"Normal", "normal", mtlxtype.Vector3},
			{"Emission Strength", "emission", mtlxtype.Float},
			{"Emission Color", "emission_color", mtlxtype.Color3},
			{"Subsurface", "subsurface", mtlxtype.Float},
			{"Subsurface Radius", "subsurface_radius", mtlxtype.Color3},
			{"Subsurface Scale", "subsurface_scale", mtlxtype.Float},
			{"Subsurface Anisotropy", "subsurface_anisotropy", mtlxtype.Float},
			{"Sheen", "sheen", mtlxtype.Float},
			{"Sheen Tint", "sheen_tint", mtlxtype.Float},
			{"Sheen Roughness", "sheen_roughness", mtlxtype.Float},
			{"Coat", "clearcoat", mtlxtype.Float},
			{"Coat Roughness", "clearcoat_roughness", mtlxtype.Float},
			{"Coat IOR", "clearcoat_ior", mtlxtype.Float},
			{"Coat Normal", "clearcoat_normal", mtlxtype.Vector3},
			{"Tangent", "tangent", mtlxtype.Vector3},
			{"Anisotropic", "anisotropic", mtlxtype.Float},
			{"Anisotropic Rotation", "anisotropic_rotation", mtlxtype.Float},
		},
	},
	{
		SourceType:     "TEX_IMAGE",
		TargetType:     "image",
		TargetCategory: mtlxtype.Color3,
		Inputs:         map[string]string{"Vector": "texcoord", "File": "file"},
		Outputs:        map[string]string{"Color": "out", "Alpha": "out"},
	},
	{
		SourceType:     "TEX_COORD",
		TargetType:     "texcoord",
		TargetCategory: mtlxtype.Vector2,
		Inputs:         map[string]string{},
		Outputs:        map[string]string{"UV": "out", "Generated": "out", "Object": "out"},
	},
	{
		SourceType:     "TEX_CHECKER",
		TargetType:     "checkerboard",
		TargetCategory: mtlxtype.Color3,
		Inputs: map[string]string{
			"Color1": "in1", "Color2": "in2", "Vector": "texcoord",
		},
		Outputs: map[string]string{"Color": "out", "Fac": "out"},
	},
	{
		SourceType:     "TEX_NOISE",
		TargetType:     "fractal3d",
		TargetCategory: mtlxtype.Float,
		Inputs: map[string]string{
			"Detail": "octaves", "Lacunarity": "lacunarity",
			"Roughness": "diminish", "Vector": "position",
		},
		Outputs: map[string]string{"Fac": "out", "Color": "out"},
	},
	{
		SourceType:     "TEX_VORONOI",
		TargetType:     "voronoi",
		TargetCategory: mtlxtype.Float,
		Inputs: map[string]string{
			"Scale": "scale", "Detail": "detail", "Vector": "position",
		},
		Outputs: map[string]string{"Distance": "out", "Color": "out"},
	},
	{
		SourceType:     "TEX_WAVE",
		TargetType:     "wave",
		TargetCategory: mtlxtype.Float,
		Inputs: map[string]string{
			"Scale": "frequency", "Distortion": "distortion",
			"Detail": "octaves", "Detail Scale": "detail_frequency",
			"Detail Roughness": "detail_amplitude", "Vector": "texcoord",
		},
		Outputs: map[string]string{"Fac": "out", "Color": "out"},
	},
	{
		SourceType:     "TEX_GRADIENT",
		TargetType:     "ramplr",
		TargetCategory: mtlxtype.Float,
		Inputs:         map[string]string{"Vector": "texcoord"},
		Outputs:        map[string]string{"Fac": "out", "Color": "out"},
	},
	{
		SourceType:     "RGB",
		TargetType:     "constant",
		TargetCategory: mtlxtype.Color3,
		Inputs:         map[string]string{"Color": "value"},
		Outputs:        map[string]string{"Color": "out"},
	},
	{
		SourceType:     "VALUE",
		TargetType:     "constant",
		TargetCategory: mtlxtype.Float,
		Inputs:         map[string]string{"Value": "value"},
		Outputs:        map[string]string{"Value": "out"},
	},
	{
		SourceType:     "MIX_RGB",
		TargetType:     "mix",
		TargetCategory: mtlxtype.Color3,
		Inputs: map[string]string{
			"Color1": "bg", "Color2": "fg", "Fac": "mix",
			"A": "bg", "B": "fg", "Factor": "mix",
		},
		Outputs: map[string]string{"Color": "out", "Result": "out"},
	},
	{
		SourceType:     "MIX_SHADER",
		TargetType:     "mix",
		TargetCategory: mtlxtype.SurfaceShader,
		Inputs: map[string]string{
			"Shader": "bg", "Shader_001": "fg", "Fac": "mix",
		},
		Outputs: map[string]string{"Shader": "out"},
	},
	{
		SourceType:     "ADD_SHADER",
		TargetType:     "add",
		TargetCategory: mtlxtype.SurfaceShader,
		Inputs:         map[string]string{"Shader": "in1", "Shader_001": "in2"},
		Outputs:        map[string]string{"Shader": "out"},
	},
	{
		SourceType:     "INVERT",
		TargetType:     "invert",
		TargetCategory: mtlxtype.Color3,
		Inputs:         map[string]string{"Color": "in", "Fac": "amount"},
		Outputs:        map[string]string{"Color": "out"},
	},
	{
		SourceType:     "SEPARATE_COLOR",
		TargetType:     "separate3",
		TargetCategory: mtlxtype.Float,
		Inputs:         map[string]string{"Color": "in"},
		Outputs:        map[string]string{"Red": "outr", "Green": "outg", "Blue": "outb"},
	},
	{
		SourceType:     "COMBINE_COLOR",
		TargetType:     "combine3",
		TargetCategory: mtlxtype.Color3,
		Inputs:         map[string]string{"Red": "in1", "Green": "in2", "Blue": "in3"},
		Outputs:        map[string]string{"Color": "out"},
	},
	{
		SourceType:     "SEPXYZ",
		TargetType:     "separate3",
		TargetCategory: mtlxtype.Float,
		Inputs:         map[string]string{"Vector": "in"},
		Outputs:        map[string]string{"X": "outx", "Y": "outy", "Z": "outz"},
	},
	{
		SourceType:     "COMBXYZ",
		TargetType:     "combine3",
		TargetCategory: mtlxtype.Vector3,
		Inputs:         map[string]string{"X": "in1", "Y": "in2", "Z": "in3"},
		Outputs:        map[string]string{"Vector": "out"},
	},
	{
		SourceType:     "MATH",
		TargetType:     "math",
		TargetCategory: mtlxtype.Float,
		Inputs: map[string]string{
			"Value": "in1", "Value_001": "in2", "Operation": "operation",
		},
		Outputs: map[string]string{"Value": "out"},
	},
	{
		SourceType:     "VECT_MATH",
		TargetType:     "vector_math",
		TargetCategory: mtlxtype.Vector3,
		Inputs: map[string]string{
			"Vector": "in1", "Vector_001": "in2", "Operation": "operation",
		},
		Outputs: map[string]string{"Vector": "out"},
	},
	{
		SourceType:     "NORMAL_MAP",
		TargetType:     "normalmap",
		TargetCategory: mtlxtype.Vector3,
		Inputs:         map[string]string{"Color": "in", "Strength": "scale"},
		Outputs:        map[string]string{"Normal": "out"},
	},
	{
		SourceType:     "BUMP",
		TargetType:     "bump",
		TargetCategory: mtlxtype.Vector3,
		Inputs: map[string]string{
			"Height": "in", "Strength": "scale", "Distance": "distance",
			"Normal": "normal",
		},
		Outputs: map[string]string{"Normal": "out"},
	},
	{
		SourceType:     "MAPPING",
		TargetType:     "place2d",
		TargetCategory: mtlxtype.Vector2,
		Inputs: map[string]string{
			"Vector": "texcoord", "Location": "offset", "Rotation": "rotate",
			"Scale": "scale",
		},
		Outputs: map[string]string{"Vector": "out"},
	},
	{
		SourceType:     "CLAMP",
		TargetType:     "clamp",
		TargetCategory: mtlxtype.Float,
		Inputs:         map[string]string{"Value": "in", "Min": "low", "Max": "high"},
		Outputs:        map[string]string{"Result": "out"},
	},
	{
		SourceType:     "MAP_RANGE",
		TargetType:     "remap",
		TargetCategory: mtlxtype.Float,
		Inputs: map[string]string{
			"Value": "in", "From Min": "inlow", "From Max": "inhigh",
			"To Min": "outlow", "To Max": "outhigh",
		},
		Outputs: map[string]string{"Result": "out"},
	},
	{
		SourceType:     "HUE_SAT",
		TargetType:     "saturate",
		TargetCategory: mtlxtype.Color3,
		Inputs:         map[string]string{"Color": "in", "Saturation": "amount", "Fac": "factor"},
		Outputs:        map[string]string{"Color": "out"},
	},
	{
		SourceType:     "GAMMA",
		TargetType:     "gamma",
		TargetCategory: mtlxtype.Color3,
		Inputs:         map[string]string{"Color": "in", "Gamma": "gamma"},
		Outputs:        map[string]string{"Color": "out"},
	},
	{
		SourceType:     "BRIGHTCONTRAST",
		TargetType:     "contrast",
		TargetCategory: mtlxtype.Color3,
		Inputs: map[string]string{
			"Color": "in", "Contrast": "contrast", "Bright": "brightness",
		},
		Outputs: map[string]string{"Color": "out"},
	},
	{
		SourceType:     "RGBTOBW",
		TargetType:     "luminance",
		TargetCategory: mtlxtype.Float,
		Inputs:         map[string]string{"Color": "in"},
		Outputs:        map[string]string{"Val": "out"},
	},
	{
		SourceType:     "SEPARATE_HSV",
		TargetType:     "rgbtohsv",
		TargetCategory: mtlxtype.Color3,
		Inputs:  map[string]string{"Color": "in"},
		Outputs: map[string]string{"H": "h", "S": "s", "V": "v"},
	},
	{
		SourceType:     "RGB_TO_HSV",
		TargetType:     "rgbtohsv",
		TargetCategory: mtlxtype.Color3,
		Inputs:         map[string]string{"Color": "in"},
		Outputs:        map[string]string{"Color": "out"},
	},
	{
		SourceType:     "HSV_TO_RGB",
		TargetType:     "hsvtorgb",
		TargetCategory: mtlxtype.Color3,
		Inputs: map[string]string{
			"Color": "in", "H": "h", "S": "s", "V": "v",
		},
		Outputs: map[string]string{"Color": "out"},
	},
	{
		SourceType:     "NEW_GEOMETRY",
		TargetType:     "position",
		TargetCategory: mtlxtype.Vector3,
		Inputs:         map[string]string{},
		Outputs:        map[string]string{"Position": "out"},
	},
}

// builtinRemediation names source types the engine knowingly cannot
// translate, with a suggestion the caller can surface verbatim.
var builtinRemediation = map[string]string{
	"BSDF_ANISOTROPIC":    "use a Principled BSDF with the Anisotropic input instead",
	"BSDF_HAIR":           "hair shading has no schema-level equivalent; bake to textures first",
	"BSDF_HAIR_PRINCIPLED": "hair shading has no schema-level equivalent; bake to textures first",
	"BSDF_TOON":           "approximate with a Principled BSDF driven by a color ramp",
	"BSDF_VELVET":         "use the Sheen inputs of a Principled BSDF instead",
	"VOLUME_ABSORPTION":   "volume shading is out of scope for surface material export",
	"VOLUME_SCATTER":      "volume shading is out of scope for surface material export",
	"PRINCIPLED_VOLUME":   "volume shading is out of scope for surface material export",
	"SHADER_TO_RGB":       "bake the shader result to a texture and use an Image Texture node",
	"SCRIPT":              "script nodes execute arbitrary code and cannot be translated",
	"IES_LIGHT":           "light profiles are a light-linking concern, not a surface material",
	"TEX_IES":             "light profiles are a light-linking concern, not a surface material",
	"TEX_POINTDENSITY":    "point density lookups require scene data unavailable at export",
	"ATTRIBUTE":           "rename the attribute to a UV map or vertex color and use a dedicated node",
	"LIGHT_PATH":          "render-engine ray queries have no portable equivalent",
	"AMBIENT_OCCLUSION":   "bake ambient occlusion to a texture and use an Image Texture node",
	"WIREFRAME":           "bake the wireframe to a texture and use an Image Texture node",
	"HOLDOUT":             "holdout is a compositing concern, not a surface material",
	"LAYER_WEIGHT":        "facing and fresnel weights have no schema builtin; bake the weight to a texture or drive the effect through a Principled BSDF's coat and IOR inputs",
}
