package mtlxtype

import (
	"fmt"
	"strconv"
)

// Value is a typed literal carried on a source socket default or a target
// node input. Exactly one of the payload fields is meaningful, selected
// by Type.
type Value struct {
	Type  Type      `json:"type"`
	Tuple []float64 `json:"tuple,omitempty"` // float/integer/boolean and all multi-component types
	Str   string    `json:"str,omitempty"`   // string and filename
}

// FloatValue builds a float literal.
func FloatValue(f float64) Value { return Value{Type: Float, Tuple: []float64{f}} }

// IntValue builds an integer literal.
func IntValue(i int) Value { return Value{Type: Integer, Tuple: []float64{float64(i)}} }

// BoolValue builds a boolean literal.
func BoolValue(b bool) Value {
	v := 0.0
	if b {
		v = 1.0
	}
	return Value{Type: Boolean, Tuple: []float64{v}}
}

// TupleValue builds a multi-component literal of the given type.
func TupleValue(t Type, vals ...float64) Value {
	return Value{Type: t, Tuple: vals}
}

// StringValue builds a string literal.
func StringValue(s string) Value { return Value{Type: String, Str: s} }

// FilenameValue builds a filename literal.
func FilenameValue(path string) Value { return Value{Type: Filename, Str: path} }

// IsZero reports whether v is the zero Value (no type assigned).
func (v Value) IsZero() bool { return v.Type == "" }

// Format renders the value as a MaterialX value string for its own type.
func (v Value) Format() string {
	switch v.Type {
	case Float:
		if len(v.Tuple) == 0 {
			return "0"
		}
		return FormatFloat(v.Tuple[0])
	case Integer:
		if len(v.Tuple) == 0 {
			return "0"
		}
		return strconv.Itoa(int(v.Tuple[0]))
	case Boolean:
		if len(v.Tuple) > 0 && v.Tuple[0] != 0 {
			return "true"
		}
		return "false"
	case String, Filename:
		return v.Str
	case Color3, Color4, Vector2, Vector3, Vector4:
		return FormatTuple(v.Tuple)
	default:
		return v.Str
	}
}

// Convert coerces the literal to another numeric type, truncating or padding
// components. Scalars broadcast to every component; narrowing drops trailing
// components; widening pads with 0 except the fourth component of color4 and
// vector4, which pads with 1 (alpha / homogeneous coordinate).
//
// Literal coercion is a value-space operation and is intentionally separate
// from the connection-level Conversion Resolver, which inserts nodes.
func (v Value) Convert(to Type) (Value, error) {
	if v.Type == to {
		return v, nil
	}
	if !v.Type.IsNumeric() || !to.IsNumeric() {
		return Value{}, fmt.Errorf("cannot convert literal %s to %s", v.Type, to)
	}

	want := to.Components()
	out := make([]float64, want)
	switch len(v.Tuple) {
	case 0:
		// all zero
	case 1:
		for i := range out {
			out[i] = v.Tuple[0]
		}
	default:
		for i := range out {
			if i < len(v.Tuple) {
				out[i] = v.Tuple[i]
			} else if i == 3 && (to == Color4 || to == Vector4) {
				out[i] = 1
			}
		}
	}
	return Value{Type: to, Tuple: out}, nil
}
