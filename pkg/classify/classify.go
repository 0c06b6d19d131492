// Package classify decides the layout pattern of a translated material:
// a flat document with the shader at root scope, or a node graph wrapping
// the upstream network with the shader output bound at the graph boundary.
//
// Classification is pure and total. It reads the source graph, never
// mutates it, and always answers; the same graph and config always yield
// the same pattern.
package classify

import (
	"github.com/BurntSushi/toml"

	"github.com/mtlxbridge/mtlxbridge/pkg/errors"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
)

// Pattern is the chosen document layout.
type Pattern int

const (
	// Direct places the terminal shader and its upstream nodes at
	// document scope.
	Direct Pattern = iota

	// NodeGraph wraps the upstream network in a nodegraph element and
	// binds the shader through a graph output.
	NodeGraph
)

func (p Pattern) String() string {
	if p == NodeGraph {
		return "nodegraph"
	}
	return "direct"
}

// Config holds the tunable classification thresholds. The zero value is
// not useful; start from DefaultConfig.
type Config struct {
	// Threshold is the number of non-trivial upstream nodes above which
	// the material switches to the NodeGraph pattern. A count equal to
	// the threshold still classifies Direct.
	Threshold int `toml:"threshold"`

	// MathTypes lists source node types whose presence forces the
	// NodeGraph pattern regardless of count.
	MathTypes []string `toml:"math_types"`

	// ProceduralTypes lists procedural texture types that force the
	// NodeGraph pattern when their output feeds any consumer.
	ProceduralTypes []string `toml:"procedural_types"`

	// TrivialTypes lists source node types that never count toward the
	// threshold.
	TrivialTypes []string `toml:"trivial_types"`
}

// DefaultConfig returns the shipped thresholds.
func DefaultConfig() Config {
	return Config{
		Threshold: 3,
		MathTypes: []string{
			"MATH", "VECT_MATH", "MIX_RGB", "MAP_RANGE", "CLAMP",
			"SEPARATE_COLOR", "COMBINE_COLOR", "SEPXYZ", "COMBXYZ",
			"INVERT", "RGBTOBW",
		},
		ProceduralTypes: []string{
			"TEX_NOISE", "TEX_VORONOI", "TEX_WAVE", "TEX_CHECKER",
			"TEX_GRADIENT", "TEX_BRICK",
		},
		TrivialTypes: []string{"RGB", "VALUE", "TEX_COORD", "OUTPUT_MATERIAL"},
	}
}

// LoadConfig reads thresholds from a TOML file, filling unset fields from
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load classifier config")
	}
	if cfg.Threshold < 1 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "classifier threshold must be at least 1")
	}
	return cfg, nil
}

// Classify picks the layout pattern for one material graph. Graphs with no
// terminal shader classify as Direct; the builder reports the missing
// terminal itself.
func (c Config) Classify(g *source.Graph) Pattern {
	terminal, err := g.Terminal()
	if err != nil {
		return Direct
	}

	math := toSet(c.MathTypes)
	procedural := toSet(c.ProceduralTypes)
	trivial := toSet(c.TrivialTypes)

	reachable := g.Reachable(terminal.ID)
	var nontrivial int
	for _, n := range g.Nodes() {
		if !reachable[n.ID] || n.ID == terminal.ID {
			continue
		}
		if math[n.Type] {
			return NodeGraph
		}
		if procedural[n.Type] && fanout(g, n.ID) > 0 {
			return NodeGraph
		}
		if !trivial[n.Type] {
			nontrivial++
		}
	}
	if nontrivial > c.Threshold {
		return NodeGraph
	}
	return Direct
}

// fanout counts distinct consumers of a node's outputs.
func fanout(g *source.Graph, id string) int {
	seen := make(map[string]bool)
	for _, l := range g.OutgoingLinks(id) {
		seen[l.ToNode] = true
	}
	return len(seen)
}

func toSet(types []string) map[string]bool {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}
