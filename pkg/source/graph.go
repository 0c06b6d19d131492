// Package source models the host application's shading node graph as it is
// handed to the translation engine: nodes with typed sockets, links between
// sockets, and one graph per material.
//
// The engine treats this model as read-only. All mutation happens at load
// time inside this package; once a Graph has been built and validated it is
// only ever inspected.
package source

import (
	"errors"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddLink] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddLink] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownSocket is returned by [Graph.AddLink] when a link endpoint
	// names a socket the node does not declare.
	ErrUnknownSocket = errors.New("unknown socket")

	// ErrSocketAlreadyLinked is returned by [Graph.AddLink] when an input
	// socket already has an incoming link. Inputs take at most one link.
	ErrSocketAlreadyLinked = errors.New("input socket already linked")

	// ErrGraphHasCycle is returned by [Graph.Validate] when a cycle is
	// detected. The translation algorithm's termination guarantee depends on
	// acyclicity, so this is always fatal to a translation.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrNoTerminal is returned by [Graph.Terminal] when the graph has no
	// terminal shader node feeding a material output sink.
	ErrNoTerminal = errors.New("no terminal shader node")
)

// Socket is a named, typed connection point on a node. Input sockets may
// carry a literal default that applies when nothing is linked.
type Socket struct {
	Name    string         // Socket name as shown by the host application
	Type    mtlxtype.Type  // Declared semantic kind
	Default mtlxtype.Value // Literal default (inputs only, may be zero)
}

// Node is a vertex in the source shading graph. The zero value is not
// usable - ID and Type must be set before adding to a Graph.
//
// Sockets are ordered: mapping entries in schema form visit them in
// declaration order, so the slices preserve the host's ordering.
type Node struct {
	ID      string   // Unique identifier within the material
	Label   string   // Display name (falls back to ID when empty)
	Type    string   // Host node type tag, e.g. "BSDF_PRINCIPLED"
	Inputs  []Socket // Ordered input sockets
	Outputs []Socket // Ordered output sockets
}

// Name returns the display label, or the ID when no label is set.
func (n *Node) Name() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Input returns the input socket with the given name.
func (n *Node) Input(name string) (Socket, bool) {
	for _, s := range n.Inputs {
		if s.Name == name {
			return s, true
		}
	}
	return Socket{}, false
}

// Output returns the output socket with the given name.
func (n *Node) Output(name string) (Socket, bool) {
	for _, s := range n.Outputs {
		if s.Name == name {
			return s, true
		}
	}
	return Socket{}, false
}

// Link is a directed connection from one node's output socket to another
// node's input socket.
type Link struct {
	FromNode   string // Source node ID
	FromOutput string // Output socket name on the source node
	ToNode     string // Destination node ID
	ToInput    string // Input socket name on the destination node
}

// Graph is one material's node graph. Nodes are indexed by ID and links by
// their destination socket, giving O(1) upstream lookup during traversal.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// mutation, but is safe for concurrent reads once fully built.
type Graph struct {
	Material string // Material name this graph belongs to

	nodes    map[string]*Node
	order    []string          // insertion order of node IDs
	links    []Link
	incoming map[string]map[string]Link // toNode -> toInput -> link
	outgoing map[string][]Link          // fromNode -> links
}

// New creates an empty source graph for the named material.
func New(material string) *Graph {
	return &Graph{
		Material: material,
		nodes:    make(map[string]*Node),
		incoming: make(map[string]map[string]Link),
		outgoing: make(map[string][]Link),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddLink adds a directed link between two existing sockets.
// Both endpoints must exist and the destination input must be unlinked.
func (g *Graph) AddLink(l Link) error {
	from, ok := g.nodes[l.FromNode]
	if !ok {
		return ErrUnknownSourceNode
	}
	to, ok := g.nodes[l.ToNode]
	if !ok {
		return ErrUnknownTargetNode
	}
	if _, ok := from.Output(l.FromOutput); !ok {
		return ErrUnknownSocket
	}
	if _, ok := to.Input(l.ToInput); !ok {
		return ErrUnknownSocket
	}
	if g.incoming[l.ToNode] == nil {
		g.incoming[l.ToNode] = make(map[string]Link)
	}
	if _, linked := g.incoming[l.ToNode][l.ToInput]; linked {
		return ErrSocketAlreadyLinked
	}
	g.links = append(g.links, l)
	g.incoming[l.ToNode][l.ToInput] = l
	g.outgoing[l.FromNode] = append(g.outgoing[l.FromNode], l)
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Links returns all links in insertion order.
func (g *Graph) Links() []Link { return g.links }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// IncomingLink returns the link feeding the named input of the node, if any.
func (g *Graph) IncomingLink(nodeID, input string) (Link, bool) {
	l, ok := g.incoming[nodeID][input]
	return l, ok
}

// OutgoingLinks returns all links leaving the node's outputs.
func (g *Graph) OutgoingLinks(nodeID string) []Link { return g.outgoing[nodeID] }

// HasOutgoing reports whether the node feeds anything downstream.
func (g *Graph) HasOutgoing(nodeID string) bool { return len(g.outgoing[nodeID]) > 0 }

// Validate checks graph integrity: every link endpoint resolves and the
// graph is acyclic. The source application should never hand over a cyclic
// graph, but the traversal's termination depends on it, so the check is
// performed defensively before every translation.
//
// Cycle detection runs in O(N+E) time using depth-first search with
// white/gray/black coloring.
func (g *Graph) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, l := range g.outgoing[id] {
			switch color[l.ToNode] {
			case white:
				dfs(l.ToNode)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
