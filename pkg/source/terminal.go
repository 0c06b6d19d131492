package source

// OutputMaterialType is the host node type of the final output sink. The
// sink itself is never materialized in the target document; it only marks
// which shader node terminates the material.
const OutputMaterialType = "OUTPUT_MATERIAL"

// SurfaceInput is the sink input socket that receives the terminal shader.
const SurfaceInput = "Surface"

// Terminal locates the terminal shader node: the node linked into the
// Surface input of the material output sink. When the graph carries several
// sinks, the first one (in insertion order) with a linked Surface input wins,
// matching the host application's active-output behavior.
func (g *Graph) Terminal() (*Node, error) {
	for _, n := range g.Nodes() {
		if n.Type != OutputMaterialType {
			continue
		}
		if l, ok := g.IncomingLink(n.ID, SurfaceInput); ok {
			if shader, ok := g.Node(l.FromNode); ok {
				return shader, nil
			}
		}
	}
	return nil, ErrNoTerminal
}

// Reachable returns the set of node IDs reachable backward from the given
// node through input links, including the node itself. Nodes outside this
// set are dead and are never materialized.
func (g *Graph) Reachable(id string) map[string]bool {
	seen := make(map[string]bool)
	var visit func(string)
	visit = func(cur string) {
		if seen[cur] {
			return
		}
		seen[cur] = true
		for _, l := range g.incoming[cur] {
			visit(l.FromNode)
		}
	}
	visit(id)
	return seen
}
