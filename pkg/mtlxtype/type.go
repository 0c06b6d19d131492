// Package mtlxtype defines the closed set of MaterialX value types used
// throughout the translation engine, along with value formatting rules.
//
// Every socket type that can appear in a source graph or a target document
// is a member of this set. Unknown type strings are rejected at registry
// load time, never during translation.
package mtlxtype

import (
	"fmt"
	"strconv"
	"strings"
)

// Type identifies a MaterialX value type. The string form matches the
// MaterialX specification spelling (e.g. "color3", "vector2").
type Type string

// The closed set of supported types.
const (
	Float         Type = "float"
	Integer       Type = "integer"
	Boolean       Type = "boolean"
	String        Type = "string"
	Color3        Type = "color3"
	Color4        Type = "color4"
	Vector2       Type = "vector2"
	Vector3       Type = "vector3"
	Vector4       Type = "vector4"
	Filename      Type = "filename"
	SurfaceShader Type = "surfaceshader"
	Material      Type = "material"
)

// All lists every member of the closed type set in a stable order.
var All = []Type{
	Float, Integer, Boolean, String,
	Color3, Color4, Vector2, Vector3, Vector4,
	Filename, SurfaceShader, Material,
}

var valid = func() map[Type]bool {
	m := make(map[Type]bool, len(All))
	for _, t := range All {
		m[t] = true
	}
	return m
}()

// Parse converts a type string into a Type. Unknown strings return an error
// so that configuration problems surface at load time.
func Parse(s string) (Type, error) {
	t := Type(s)
	if !valid[t] {
		return "", fmt.Errorf("unknown type %q", s)
	}
	return t, nil
}

// IsValid reports whether t is a member of the closed type set.
func (t Type) IsValid() bool { return valid[t] }

// Components returns the number of scalar components carried by t.
// Non-numeric types (string, filename, surfaceshader, material) return 0.
func (t Type) Components() int {
	switch t {
	case Float, Integer, Boolean:
		return 1
	case Vector2:
		return 2
	case Color3, Vector3:
		return 3
	case Color4, Vector4:
		return 4
	default:
		return 0
	}
}

// IsColor reports whether t is a color type.
func (t Type) IsColor() bool { return t == Color3 || t == Color4 }

// IsVector reports whether t is a vector type.
func (t Type) IsVector() bool { return t == Vector2 || t == Vector3 || t == Vector4 }

// IsNumeric reports whether t carries scalar components.
func (t Type) IsNumeric() bool { return t.Components() > 0 }

// socketTypes maps host-application socket type tags to MaterialX types.
// These are the declared kinds on source sockets (Blender vocabulary).
var socketTypes = map[string]Type{
	"VALUE":     Float,
	"INT":       Integer,
	"BOOLEAN":   Boolean,
	"STRING":    String,
	"RGBA":      Color4,
	"RGB":       Color3,
	"VECTOR":    Vector3,
	"VECTOR_2D": Vector2,
	"SHADER":    SurfaceShader,
}

// FromSocket converts a host socket type tag into a MaterialX type.
// Unknown tags are an error: the source model's duck typing is rejected
// at the boundary rather than coerced.
func FromSocket(tag string) (Type, error) {
	t, ok := socketTypes[tag]
	if !ok {
		return "", fmt.Errorf("unknown socket type %q", tag)
	}
	return t, nil
}

// FormatFloat renders a float the way MaterialX value strings expect:
// shortest exact representation, no exponent for typical shader values.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatTuple renders a component list as a MaterialX value string,
// e.g. [0.8 0.2 0.2] -> "0.8,0.2,0.2".
func FormatTuple(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = FormatFloat(v)
	}
	return strings.Join(parts, ",")
}
