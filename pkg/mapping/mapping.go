// Package mapping holds the static registry translating host node types to
// MaterialX node types, including per-port renames.
//
// The registry supports two internal representations. Simple nodes use a
// flat rename table (source socket name to target port name). Nodes whose
// ports must be visited in a fixed order to build a schema-driven target
// node - the terminal shader above all - additionally carry an ordered
// schema list with per-port target types. When both forms exist for a type
// they must agree; Load verifies this.
//
// The registry is process-wide immutable configuration: loaded once at
// engine start, validated against the schema library (partial port coverage
// is a configuration error that fails the load, not a runtime condition),
// and shared read-only across concurrent translations.
package mapping

import (
	"fmt"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
	"github.com/mtlxbridge/mtlxbridge/pkg/schema"
)

// Port is one entry of the ordered schema form: a source socket, the target
// port it renames to, and the target port's type.
type Port struct {
	Source string
	Target string
	Type   mtlxtype.Type
}

// Entry maps one source node type onto a target node type.
type Entry struct {
	SourceType     string
	TargetType     string        // MaterialX node type, e.g. "mix"
	TargetCategory mtlxtype.Type // instance output type, e.g. color3

	// Flat rename form. Every source socket that may carry a link or a
	// literal must appear; absence is a hard "unsupported port" signal.
	Inputs  map[string]string
	Outputs map[string]string

	// Ordered schema form, set for nodes built port-by-port.
	Ports []Port
}

// TargetInput resolves a source input socket name to its target port name.
func (e *Entry) TargetInput(source string) (string, bool) {
	name, ok := e.Inputs[source]
	return name, ok
}

// TargetOutput resolves a source output socket name to its target port
// name. Entries with no explicit output map expose the conventional "out".
func (e *Entry) TargetOutput(source string) (string, bool) {
	if len(e.Outputs) == 0 {
		return "out", true
	}
	name, ok := e.Outputs[source]
	return name, ok
}

// PortType returns the target-side type of a source input, as declared by
// the ordered schema form. Falls back to the schema library's declaration
// when the entry has no schema form.
func (e *Entry) PortType(source string) (mtlxtype.Type, bool) {
	for _, p := range e.Ports {
		if p.Source == source {
			return p.Type, true
		}
	}
	return "", false
}

// Registry is the immutable source-to-target node type table.
type Registry struct {
	entries     map[string]*Entry
	remediation map[string]string
	lib         *schema.Library
}

// Load builds the registry from the built-in tables and validates every
// entry against the schema library. Any gap - unknown target type, illegal
// output type, port renamed to a port the schema does not declare, or a
// disagreement between the flat and schema forms - fails the load.
func Load(lib *schema.Library) (*Registry, error) {
	r := &Registry{
		entries:     make(map[string]*Entry, len(builtinEntries)),
		remediation: builtinRemediation,
		lib:         lib,
	}
	for i := range builtinEntries {
		e := &builtinEntries[i]
		if _, dup := r.entries[e.SourceType]; dup {
			return nil, fmt.Errorf("duplicate mapping for %s", e.SourceType)
		}
		if err := r.validate(e); err != nil {
			return nil, fmt.Errorf("mapping %s: %w", e.SourceType, err)
		}
		r.entries[e.SourceType] = e
	}
	return r, nil
}

// Lookup returns the mapping entry for a source node type. A miss is not
// an error: the graph builder asks the synthesizer for an emulation before
// reporting the node as unsupported.
func (r *Registry) Lookup(sourceType string) (*Entry, bool) {
	e, ok := r.entries[sourceType]
	return e, ok
}

// Remediation returns a human-readable suggestion for a well-known
// unsupported source type.
func (r *Registry) Remediation(sourceType string) (string, bool) {
	s, ok := r.remediation[sourceType]
	return s, ok
}

// Len returns the number of mapped source types.
func (r *Registry) Len() int { return len(r.entries) }

func (r *Registry) validate(e *Entry) error {
	spec, ok := r.lib.Node(e.TargetType)
	if !ok {
		return fmt.Errorf("target type %q not in schema library", e.TargetType)
	}
	if !spec.AllowsOutputType(e.TargetCategory) {
		return fmt.Errorf("target type %q does not allow output type %s", e.TargetType, e.TargetCategory)
	}
	for src, tgt := range e.Inputs {
		if _, ok := spec.Input(tgt); !ok {
			return fmt.Errorf("input %q renames to %q, not declared on %q", src, tgt, e.TargetType)
		}
	}
	for src, tgt := range e.Outputs {
		if _, ok := spec.Output(tgt); !ok {
			return fmt.Errorf("output %q renames to %q, not declared on %q", src, tgt, e.TargetType)
		}
	}
	for _, p := range e.Ports {
		if !p.Type.IsValid() {
			return fmt.Errorf("port %q has invalid type %q", p.Source, p.Type)
		}
		if _, ok := spec.Input(p.Target); !ok {
			return fmt.Errorf("port %q renames to %q, not declared on %q", p.Source, p.Target, e.TargetType)
		}
		// Both forms must agree where they overlap.
		if flat, ok := e.Inputs[p.Source]; ok && flat != p.Target {
			return fmt.Errorf("port %q: schema form says %q, flat form says %q", p.Source, p.Target, flat)
		}
	}
	return nil
}
