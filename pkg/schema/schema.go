// Package schema carries the read-only library of MaterialX node
// definitions the engine is allowed to emit: legal node types, their
// declared ports and port types, and which inputs are required.
//
// The library is process-wide immutable configuration - loaded once before
// any translation begins and shared across concurrent translations without
// locking. Loading a versioned library from the MaterialX distribution is
// an external concern; the built-in table covers the standard nodes the
// mapping registry and synthesizer emit.
package schema

import (
	"fmt"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

// PortDef declares one input or output port on a node definition.
// A zero Type marks the port as polymorphic: it follows the node instance's
// declared output type (MaterialX's pattern for mix, add, clamp and the
// other operator nodes).
type PortDef struct {
	Name string
	Type mtlxtype.Type
}

// NodeSpec describes one legal target node type.
type NodeSpec struct {
	Type        string          // MaterialX node type, e.g. "mix"
	OutputTypes []mtlxtype.Type // legal instance output types; empty means any
	Inputs      []PortDef
	Outputs     []PortDef
	Required    []string // input names that must be bound or valued
}

// Input returns the declared input port with the given name.
func (s *NodeSpec) Input(name string) (PortDef, bool) {
	for _, p := range s.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return PortDef{}, false
}

// Output returns the declared output port with the given name.
func (s *NodeSpec) Output(name string) (PortDef, bool) {
	for _, p := range s.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return PortDef{}, false
}

// AllowsOutputType reports whether instances may declare the given output
// type.
func (s *NodeSpec) AllowsOutputType(t mtlxtype.Type) bool {
	if len(s.OutputTypes) == 0 {
		return true
	}
	for _, ot := range s.OutputTypes {
		if ot == t {
			return true
		}
	}
	return false
}

// Library is an immutable set of node specs indexed by type.
type Library struct {
	byType map[string]*NodeSpec
}

// New builds a library from specs. Duplicate types are a configuration
// error.
func New(specs []NodeSpec) (*Library, error) {
	lib := &Library{byType: make(map[string]*NodeSpec, len(specs))}
	for i := range specs {
		s := &specs[i]
		if _, dup := lib.byType[s.Type]; dup {
			return nil, fmt.Errorf("duplicate node spec %q", s.Type)
		}
		lib.byType[s.Type] = s
	}
	return lib, nil
}

// Node returns the spec for a node type.
func (l *Library) Node(typ string) (*NodeSpec, bool) {
	s, ok := l.byType[typ]
	return s, ok
}

// Has reports whether the node type is schema-legal.
func (l *Library) Has(typ string) bool {
	_, ok := l.byType[typ]
	return ok
}

// Len returns the number of node specs in the library.
func (l *Library) Len() int { return len(l.byType) }
