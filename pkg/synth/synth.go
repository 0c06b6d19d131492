// Package synth materializes custom node definitions on demand: the
// separate-then-combine conversion shims the resolver asks for, and
// emulations for source node types the standard library cannot express
// with a single node.
//
// Definitions are registered on the document being built and memoized
// there, so any number of call sites requesting the same definition share
// one instance. Definition names follow the MaterialX convention of an
// ND_ prefix for the interface and IM_ for its implementation graph.
package synth

import (
	"fmt"

	"github.com/mtlxbridge/mtlxbridge/pkg/convert"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

// Synthesizer builds and registers custom definitions on one document.
// Not safe for concurrent use; each translation owns its own document and
// synthesizer.
type Synthesizer struct {
	doc *mtlxdoc.Document
}

// New returns a synthesizer bound to the given document.
func New(doc *mtlxdoc.Document) *Synthesizer {
	return &Synthesizer{doc: doc}
}

// Conversion returns the custom definition implementing a synthesized
// conversion rule, creating and registering it on first use. Calling it
// twice with the same rule returns the same definition.
func (s *Synthesizer) Conversion(rule convert.Rule) (*mtlxdoc.NodeDef, error) {
	if rule.Kind != convert.Synthesized || rule.Synthesis == nil {
		return nil, fmt.Errorf("rule %v -> %v is not synthesized", rule.From, rule.To)
	}
	recipe := rule.Synthesis

	defName := "ND_convert_" + recipe.Key
	if def, ok := s.doc.NodeDef(defName); ok {
		return def, nil
	}

	def := &mtlxdoc.NodeDef{
		Name:        defName,
		NodeType:    "convert_" + recipe.Key,
		Description: fmt.Sprintf("convert %s to %s", rule.From, rule.To),
		Inputs:      []mtlxdoc.Port{{Name: "in", Type: rule.From}},
		Outputs:     []mtlxdoc.Port{{Name: "out", Type: rule.To}},
	}

	impl := mtlxdoc.NewNodeDefGraph("IM_convert_"+recipe.Key, defName)

	parts := &mtlxdoc.Node{
		Name:       impl.UniqueName("parts"),
		Type:       recipe.Separate,
		OutputType: mtlxtype.Float,
	}
	parts.ConnectInterface("in", rule.From, "in")
	if err := impl.AddNode(parts); err != nil {
		return nil, err
	}

	merge := &mtlxdoc.Node{
		Name:       impl.UniqueName("merge"),
		Type:       recipe.Combine,
		OutputType: rule.To,
	}
	for i, part := range recipe.Parts {
		port := fmt.Sprintf("in%d", i+1)
		if part.FromOutput != "" {
			merge.Connect(port, mtlxtype.Float, parts.Name, part.FromOutput)
		} else {
			merge.SetLiteral(port, mtlxtype.Float, mtlxtype.FormatFloat(part.Pad))
		}
	}
	if err := impl.AddNode(merge); err != nil {
		return nil, err
	}
	if err := impl.BindOutput("out", rule.To, merge.Name, ""); err != nil {
		return nil, err
	}

	def.Implementation = impl
	if err := s.doc.AddNodeDef(def); err != nil {
		return nil, err
	}
	return def, nil
}
