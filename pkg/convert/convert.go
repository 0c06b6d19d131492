// Package convert decides how a value of one type reaches a port of
// another type. Every typed connection the graph builder wires goes
// through Resolve; there is no second code path that invents conversions.
//
// A resolution is one of four kinds. Identity passes the connection
// through untouched. Direct inserts a single standard-library node.
// Synthesized routes through a custom node definition built on demand by
// the synthesizer. Unavailable means the pair has no sound conversion and
// the connection must be reported, never guessed at.
package convert

import (
	"fmt"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

// Kind classifies a resolution.
type Kind int

const (
	Identity Kind = iota
	Direct
	Synthesized
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case Identity:
		return "identity"
	case Direct:
		return "direct"
	case Synthesized:
		return "synthesized"
	case Unavailable:
		return "unavailable"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rule is the outcome of resolving a (from, to) type pair. By
// construction a non-Unavailable rule produces exactly To; callers may
// rely on that without re-checking.
type Rule struct {
	Kind Kind
	From mtlxtype.Type
	To   mtlxtype.Type

	// Direct rules: the standard node to insert and, for extract, the
	// component index to pull.
	NodeType string
	Index    int

	// Synthesized rules: the recipe the synthesizer materializes into a
	// custom node definition.
	Synthesis *Synthesis
}

// Component describes one input of the synthesized recipe's combine node,
// in combine-input order. Either a separate-node output feeds it or a pad
// literal does.
type Component struct {
	FromOutput string
	Pad        float64
}

// Synthesis is the separate-then-combine recipe behind a synthesized
// conversion. Key doubles as the memoization key and the basis of the
// custom definition's name.
type Synthesis struct {
	Key      string
	Separate string // separate2/3/4
	Combine  string // combine2/3/4
	Parts    []Component
}

// Resolve returns the rule for converting from one type to another.
// It is pure and total: same pair, same rule, and unknown pairs come back
// Unavailable rather than as an error.
func Resolve(from, to mtlxtype.Type) Rule {
	if from == to {
		return Rule{Kind: Identity, From: from, To: to}
	}
	if r, ok := directRules[pair{from, to}]; ok {
		r.From, r.To = from, to
		return r
	}
	if s, ok := synthRules[pair{from, to}]; ok {
		return Rule{Kind: Synthesized, From: from, To: to, Synthesis: s}
	}
	return Rule{Kind: Unavailable, From: from, To: to}
}

// Convertible reports whether any rule other than Unavailable exists.
func Convertible(from, to mtlxtype.Type) bool {
	return Resolve(from, to).Kind != Unavailable
}

type pair struct{ from, to mtlxtype.Type }

// directRules covers pairs a single standard node handles. Scalar
// broadcasts and narrowing to float stay direct; anything reshaping
// components is synthesized.
var directRules = map[pair]Rule{
	{mtlxtype.Float, mtlxtype.Color3}:   {Kind: Direct, NodeType: "convert"},
	{mtlxtype.Float, mtlxtype.Color4}:   {Kind: Direct, NodeType: "convert"},
	{mtlxtype.Float, mtlxtype.Vector2}:  {Kind: Direct, NodeType: "convert"},
	{mtlxtype.Float, mtlxtype.Vector3}:  {Kind: Direct, NodeType: "convert"},
	{mtlxtype.Float, mtlxtype.Vector4}:  {Kind: Direct, NodeType: "convert"},
	{mtlxtype.Integer, mtlxtype.Float}:  {Kind: Direct, NodeType: "convert"},
	{mtlxtype.Float, mtlxtype.Integer}:  {Kind: Direct, NodeType: "convert"},
	{mtlxtype.Boolean, mtlxtype.Float}:  {Kind: Direct, NodeType: "convert"},
	{mtlxtype.Color3, mtlxtype.Float}:   {Kind: Direct, NodeType: "luminance"},
	{mtlxtype.Color4, mtlxtype.Float}:   {Kind: Direct, NodeType: "luminance"},
	{mtlxtype.Vector2, mtlxtype.Float}:  {Kind: Direct, NodeType: "extract", Index: 0},
	{mtlxtype.Vector3, mtlxtype.Float}:  {Kind: Direct, NodeType: "extract", Index: 0},
	{mtlxtype.Vector4, mtlxtype.Float}:  {Kind: Direct, NodeType: "extract", Index: 0},
}

func vec(n int) []Component {
	names := []string{"outx", "outy", "outz", "outw"}
	parts := make([]Component, n)
	for i := range parts {
		parts[i] = Component{FromOutput: names[i]}
	}
	return parts
}

func col(n int) []Component {
	names := []string{"outr", "outg", "outb", "outa"}
	parts := make([]Component, n)
	for i := range parts {
		parts[i] = Component{FromOutput: names[i]}
	}
	return parts
}

func pad(parts []Component, v float64) []Component {
	return append(parts, Component{Pad: v})
}

// synthRules mirrors the component-reshaping table of the original
// authoring tool: widen by padding (zero, except an alpha channel which
// pads to one), narrow by dropping trailing components.
var synthRules = map[pair]*Synthesis{
	{mtlxtype.Vector2, mtlxtype.Vector3}: {
		Key: "vector2_to_vector3", Separate: "separate2", Combine: "combine3",
		Parts: pad(vec(2), 0),
	},
	{mtlxtype.Vector3, mtlxtype.Vector2}: {
		Key: "vector3_to_vector2", Separate: "separate3", Combine: "combine2",
		Parts: vec(2),
	},
	{mtlxtype.Vector3, mtlxtype.Vector4}: {
		Key: "vector3_to_vector4", Separate: "separate3", Combine: "combine4",
		Parts: pad(vec(3), 0),
	},
	{mtlxtype.Vector4, mtlxtype.Vector3}: {
		Key: "vector4_to_vector3", Separate: "separate4", Combine: "combine3",
		Parts: vec(3),
	},
	{mtlxtype.Color3, mtlxtype.Color4}: {
		Key: "color3_to_color4", Separate: "separate3", Combine: "combine4",
		Parts: pad(col(3), 1),
	},
	{mtlxtype.Color4, mtlxtype.Color3}: {
		Key: "color4_to_color3", Separate: "separate4", Combine: "combine3",
		Parts: col(3),
	},
	{mtlxtype.Color3, mtlxtype.Vector3}: {
		Key: "color3_to_vector3", Separate: "separate3", Combine: "combine3",
		Parts: col(3),
	},
	{mtlxtype.Vector3, mtlxtype.Color3}: {
		Key: "vector3_to_color3", Separate: "separate3", Combine: "combine3",
		Parts: vec(3),
	},
	{mtlxtype.Color4, mtlxtype.Vector4}: {
		Key: "color4_to_vector4", Separate: "separate4", Combine: "combine4",
		Parts: col(4),
	},
	{mtlxtype.Vector4, mtlxtype.Color4}: {
		Key: "vector4_to_color4", Separate: "separate4", Combine: "combine4",
		Parts: vec(4),
	},
	{mtlxtype.Color3, mtlxtype.Vector2}: {
		Key: "color3_to_vector2", Separate: "separate3", Combine: "combine2",
		Parts: col(2),
	},
}
