package mtlxdoc

import (
	"fmt"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

// Input is one input binding on a node. Exactly one of Value, NodeName and
// Interface is set: a formatted literal, a reference to another node in the
// same scope, or - only at nodegraph boundaries - a reference to an
// enclosing graph's named interface input.
type Input struct {
	Name string
	Type mtlxtype.Type

	Value     string // formatted literal
	NodeName  string // sibling node reference
	Output    string // output qualifier on the referenced node or graph
	NodeGraph string // nodegraph reference (shader inputs reaching into a graph)
	Interface string // enclosing graph interface input (nodedef implementations)
}

// IsConnected reports whether the input references anything (as opposed to
// carrying a literal or being empty).
func (in *Input) IsConnected() bool {
	return in.NodeName != "" || in.NodeGraph != "" || in.Interface != ""
}

// Node is a single MaterialX node instance in some scope.
type Node struct {
	Name       string
	Type       string        // MaterialX node type, the XML element name (e.g. "mix")
	OutputType mtlxtype.Type // declared output type (e.g. color3, surfaceshader)
	NodeDef    string        // custom definition reference, empty for standard nodes

	Inputs []*Input
}

// SetLiteral attaches a formatted literal input, replacing any existing
// binding of the same name.
func (n *Node) SetLiteral(name string, typ mtlxtype.Type, value string) {
	n.setInput(&Input{Name: name, Type: typ, Value: value})
}

// Connect attaches a node-reference input, replacing any existing binding
// of the same name. output qualifies which upstream output feeds the input;
// it may be empty for single-output nodes.
func (n *Node) Connect(name string, typ mtlxtype.Type, nodeName, output string) {
	n.setInput(&Input{Name: name, Type: typ, NodeName: nodeName, Output: output})
}

// ConnectGraph attaches an input referencing a nodegraph output. Used by
// document-scope shaders that pull values out of a graph.
func (n *Node) ConnectGraph(name string, typ mtlxtype.Type, graph, output string) {
	n.setInput(&Input{Name: name, Type: typ, NodeGraph: graph, Output: output})
}

// ConnectInterface attaches an input bound to the enclosing graph's named
// interface input. Only legal inside nodedef implementation graphs.
func (n *Node) ConnectInterface(name string, typ mtlxtype.Type, ifaceInput string) {
	n.setInput(&Input{Name: name, Type: typ, Interface: ifaceInput})
}

func (n *Node) setInput(in *Input) {
	for i, existing := range n.Inputs {
		if existing.Name == in.Name {
			n.Inputs[i] = in
			return
		}
	}
	n.Inputs = append(n.Inputs, in)
}

// Input returns the input binding with the given name.
func (n *Node) Input(name string) (*Input, bool) {
	for _, in := range n.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return nil, false
}

// scope provides name-unique node storage shared by the document root and
// node graphs. Name collisions are resolved deterministically by suffixing
// a scope-local counter, so repeated runs on the same input produce
// identical documents.
type scope struct {
	owner   string
	nodes   []*Node
	byName  map[string]*Node
	counter map[string]int
}

func (s *scope) init(owner string) {
	s.owner = owner
	s.byName = make(map[string]*Node)
	s.counter = make(map[string]int)
}

// AddNode adds a node to the scope. The node's name must be unique; use
// UniqueName to derive one.
func (s *scope) AddNode(n *Node) error {
	if n.Name == "" {
		return fmt.Errorf("node of type %q: empty name", n.Type)
	}
	if _, exists := s.byName[n.Name]; exists {
		return fmt.Errorf("node %q: %w", n.Name, ErrDuplicateName)
	}
	s.nodes = append(s.nodes, n)
	s.byName[n.Name] = n
	return nil
}

// Node returns the node with the given name in this scope.
func (s *scope) Node(name string) (*Node, bool) {
	n, ok := s.byName[name]
	return n, ok
}

// Nodes returns the scope's nodes in insertion order.
func (s *scope) Nodes() []*Node { return s.nodes }

// UniqueName derives a scope-unique name from base: the base itself the
// first time, then base_2, base_3 and so on.
func (s *scope) UniqueName(base string) string {
	if base == "" {
		base = "node"
	}
	s.counter[base]++
	if s.counter[base] == 1 {
		if _, taken := s.byName[base]; !taken {
			return base
		}
		s.counter[base]++
	}
	for {
		name := fmt.Sprintf("%s_%d", base, s.counter[base])
		if _, taken := s.byName[name]; !taken {
			return name
		}
		s.counter[base]++
	}
}

// NodeGraph is a named container of nodes plus a set of named outputs.
type NodeGraph struct {
	Name    string
	NodeDef string // set when this graph implements a custom definition
	scope
	outputs []*Output
}

func newNodeGraph(name string) *NodeGraph {
	g := &NodeGraph{Name: name}
	g.scope.init(name)
	return g
}

// BindOutput declares a graph output bound to an internal node. The node
// must already exist in the graph; outputs can never be bound to other
// outputs, which this signature makes unrepresentable.
func (g *NodeGraph) BindOutput(name string, typ mtlxtype.Type, nodeName, upstream string) error {
	if _, ok := g.Node(nodeName); !ok {
		return fmt.Errorf("output %q: node %q: %w", name, nodeName, ErrUnknownNode)
	}
	for _, o := range g.outputs {
		if o.Name == name {
			return fmt.Errorf("output %q: %w", name, ErrDuplicateName)
		}
	}
	g.outputs = append(g.outputs, &Output{Name: name, Type: typ, NodeName: nodeName, Upstream: upstream})
	return nil
}

// Outputs returns the graph's declared outputs in insertion order.
func (g *NodeGraph) Outputs() []*Output { return g.outputs }

// Output returns the declared output with the given name.
func (g *NodeGraph) Output(name string) (*Output, bool) {
	for _, o := range g.outputs {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// Port is a typed interface slot on a custom node definition.
type Port struct {
	Name    string
	Type    mtlxtype.Type
	Default string // formatted literal default, optional
}

// NodeDef is a custom node definition: a typed interface plus an
// implementation node graph built from schema-legal primitives. Created
// lazily by the synthesizer, registered once per document, referenced by
// many node instances, never mutated after registration.
type NodeDef struct {
	Name        string // definition name, e.g. "ND_convert_vector2_vector3"
	NodeType    string // node type its instances use, e.g. "convert_vector2_vector3"
	Description string

	Inputs  []Port
	Outputs []Port

	Implementation *NodeGraph
}

// NewNodeDefGraph creates the implementation graph for a definition,
// linking it back via the nodedef attribute.
func NewNodeDefGraph(name, nodeDef string) *NodeGraph {
	g := newNodeGraph(name)
	g.NodeDef = nodeDef
	return g
}
