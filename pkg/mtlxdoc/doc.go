// Package mtlxdoc is the in-memory MaterialX document object model built by
// the translation engine: a root scope holding node graphs, nodes, custom
// node definitions and material elements.
//
// The model is deliberately abstract - it knows nothing about the source
// application. Serialization to and from MaterialX XML lives in writer.go
// and reader.go; the engine itself never touches a file.
package mtlxdoc

import (
	"errors"
	"fmt"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

var (
	// ErrDuplicateName is returned when a node, graph or definition with the
	// same name already exists in the scope being added to.
	ErrDuplicateName = errors.New("duplicate element name")

	// ErrUnknownNode is returned when an output or material binding names a
	// node that does not exist in the referenced scope.
	ErrUnknownNode = errors.New("unknown node")
)

// Version is the MaterialX specification version written to documents.
const Version = "1.38"

// Document is the root scope of a built MaterialX document.
type Document struct {
	Version string

	nodeDefs []*NodeDef
	graphs   []*NodeGraph
	scope    // root-level nodes (terminal shaders in the Direct pattern)

	materials []*Material
}

// NewDocument creates an empty document at the current MaterialX version.
func NewDocument() *Document {
	d := &Document{Version: Version}
	d.scope.init("")
	return d
}

// AddNodeGraph creates and registers a named node graph in the document.
func (d *Document) AddNodeGraph(name string) (*NodeGraph, error) {
	for _, g := range d.graphs {
		if g.Name == name {
			return nil, fmt.Errorf("nodegraph %q: %w", name, ErrDuplicateName)
		}
	}
	g := newNodeGraph(name)
	d.graphs = append(d.graphs, g)
	return g, nil
}

// NodeGraph returns the graph with the given name.
func (d *Document) NodeGraph(name string) (*NodeGraph, bool) {
	for _, g := range d.graphs {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// NodeGraphs returns all node graphs in insertion order, including the
// implementation graphs of registered custom definitions.
func (d *Document) NodeGraphs() []*NodeGraph { return d.graphs }

// AddNodeDef registers a custom node definition and its implementation
// graph. Definitions are immutable after registration.
func (d *Document) AddNodeDef(def *NodeDef) error {
	if _, ok := d.NodeDef(def.Name); ok {
		return fmt.Errorf("nodedef %q: %w", def.Name, ErrDuplicateName)
	}
	d.nodeDefs = append(d.nodeDefs, def)
	if def.Implementation != nil {
		d.graphs = append(d.graphs, def.Implementation)
	}
	return nil
}

// NodeDef returns the registered definition with the given name.
func (d *Document) NodeDef(name string) (*NodeDef, bool) {
	for _, nd := range d.nodeDefs {
		if nd.Name == name {
			return nd, true
		}
	}
	return nil, false
}

// NodeDefByType returns the registered definition declaring the given
// instance node type.
func (d *Document) NodeDefByType(nodeType string) (*NodeDef, bool) {
	for _, nd := range d.nodeDefs {
		if nd.NodeType == nodeType {
			return nd, true
		}
	}
	return nil, false
}

// NodeDefs returns all registered definitions in insertion order.
func (d *Document) NodeDefs() []*NodeDef { return d.nodeDefs }

// AddMaterial registers a material element.
func (d *Document) AddMaterial(m *Material) error {
	for _, existing := range d.materials {
		if existing.Name == m.Name {
			return fmt.Errorf("material %q: %w", m.Name, ErrDuplicateName)
		}
	}
	d.materials = append(d.materials, m)
	return nil
}

// Materials returns all material elements in insertion order.
func (d *Document) Materials() []*Material { return d.materials }

// Material is a surfacematerial element binding a name to a terminal shader
// node. The shader is referenced either directly by node name (shader at
// document scope, or co-located inside the same graph) or through a
// (nodegraph, output) pair when the shader lives inside a graph the material
// must reach into.
type Material struct {
	Name string

	// Direct reference: name of a shader node.
	ShaderNode string

	// Graph reference: nodegraph name plus the output bound to the shader.
	ShaderGraph  string
	ShaderOutput string
}

// ReferencesGraph reports whether the material reaches its shader through a
// nodegraph output rather than a direct node reference.
func (m *Material) ReferencesGraph() bool { return m.ShaderGraph != "" }

// Output binds a nodegraph output name and type to a node inside the same
// graph. Outputs may never reference other outputs; the Validator enforces
// this invariant.
type Output struct {
	Name     string
	Type     mtlxtype.Type
	NodeName string // node inside the same graph
	Upstream string // output socket on that node, when it has several
}
