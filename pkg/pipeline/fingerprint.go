package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mtlxbridge/mtlxbridge/pkg/cache"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
)

// Fingerprint derives a stable content hash for a source graph. Node and
// link order in the dump does not affect it, so a host re-export of an
// unchanged material keeps its cache entry.
func Fingerprint(g *source.Graph) string {
	var lines []string

	for _, n := range g.Nodes() {
		var sb strings.Builder
		fmt.Fprintf(&sb, "node|%s|%s|%s", n.ID, n.Type, n.Label)
		for _, s := range n.Inputs {
			fmt.Fprintf(&sb, "|in:%s:%s", s.Name, s.Type)
			if !s.Default.IsZero() {
				fmt.Fprintf(&sb, "=%s", s.Default.Format())
			}
		}
		for _, s := range n.Outputs {
			fmt.Fprintf(&sb, "|out:%s:%s", s.Name, s.Type)
		}
		lines = append(lines, sb.String())
	}
	for _, l := range g.Links() {
		lines = append(lines, fmt.Sprintf("link|%s.%s->%s.%s", l.FromNode, l.FromOutput, l.ToNode, l.ToInput))
	}

	sort.Strings(lines)
	return cache.Hash([]byte(g.Material + "\n" + strings.Join(lines, "\n")))
}
