package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
)

// Scene is a decoded host-application dump: one graph per material.
type Scene struct {
	Materials []*Graph
}

// Graph returns the material graph with the given name.
func (s *Scene) Graph(material string) (*Graph, bool) {
	for _, g := range s.Materials {
		if g.Material == material {
			return g, true
		}
	}
	return nil, false
}

// Names returns the material names in scene order.
func (s *Scene) Names() []string {
	names := make([]string, len(s.Materials))
	for i, g := range s.Materials {
		names[i] = g.Material
	}
	return names
}

// Wire format for scene dumps. The host-side export script serializes its
// node trees into this shape; sockets carry the host's own type tags
// (RGBA, VECTOR, VALUE, ...) which are narrowed to the closed MaterialX
// type set while decoding.

type sceneJSON struct {
	Materials []materialJSON `json:"materials"`
}

type materialJSON struct {
	Name  string     `json:"name"`
	Nodes []nodeJSON `json:"nodes"`
	Links []linkJSON `json:"links"`
}

type nodeJSON struct {
	ID      string       `json:"id"`
	Label   string       `json:"label,omitempty"`
	Type    string       `json:"type"`
	Inputs  []socketJSON `json:"inputs,omitempty"`
	Outputs []socketJSON `json:"outputs,omitempty"`
}

type socketJSON struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Default json.RawMessage `json:"default,omitempty"`
}

type linkJSON struct {
	FromNode   string `json:"from_node"`
	FromOutput string `json:"from_output"`
	ToNode     string `json:"to_node"`
	ToInput    string `json:"to_input"`
}

// ReadScene decodes a scene dump from r. Decoding is strict about types:
// a socket whose declared type tag is outside the closed set fails the
// whole load rather than being coerced at translation time.
func ReadScene(r io.Reader) (*Scene, error) {
	var data sceneJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	scene := &Scene{}
	for _, m := range data.Materials {
		g, err := decodeMaterial(m)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", m.Name, err)
		}
		scene.Materials = append(scene.Materials, g)
	}
	return scene, nil
}

// ReadSceneFile reads a JSON scene dump from disk.
func ReadSceneFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScene(f)
}

func decodeMaterial(m materialJSON) (*Graph, error) {
	g := New(m.Name)
	for _, n := range m.Nodes {
		node := Node{ID: n.ID, Label: n.Label, Type: n.Type}
		for _, s := range n.Inputs {
			sock, err := decodeSocket(s, true)
			if err != nil {
				return nil, fmt.Errorf("node %q input %q: %w", n.ID, s.Name, err)
			}
			node.Inputs = append(node.Inputs, sock)
		}
		for _, s := range n.Outputs {
			sock, err := decodeSocket(s, false)
			if err != nil {
				return nil, fmt.Errorf("node %q output %q: %w", n.ID, s.Name, err)
			}
			node.Outputs = append(node.Outputs, sock)
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, l := range m.Links {
		link := Link{
			FromNode:   l.FromNode,
			FromOutput: l.FromOutput,
			ToNode:     l.ToNode,
			ToInput:    l.ToInput,
		}
		if err := g.AddLink(link); err != nil {
			return nil, fmt.Errorf("link %s.%s -> %s.%s: %w",
				l.FromNode, l.FromOutput, l.ToNode, l.ToInput, err)
		}
	}
	return g, nil
}

func decodeSocket(s socketJSON, isInput bool) (Socket, error) {
	typ, err := mtlxtype.FromSocket(s.Type)
	if err != nil {
		return Socket{}, err
	}
	sock := Socket{Name: s.Name, Type: typ}
	if isInput && len(s.Default) > 0 {
		val, err := decodeDefault(s.Default, typ)
		if err != nil {
			return Socket{}, err
		}
		sock.Default = val
	}
	return sock, nil
}

func decodeDefault(raw json.RawMessage, typ mtlxtype.Type) (mtlxtype.Value, error) {
	switch typ {
	case mtlxtype.Float:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return mtlxtype.Value{}, err
		}
		return mtlxtype.FloatValue(f), nil
	case mtlxtype.Integer:
		var i int
		if err := json.Unmarshal(raw, &i); err != nil {
			return mtlxtype.Value{}, err
		}
		return mtlxtype.IntValue(i), nil
	case mtlxtype.Boolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return mtlxtype.Value{}, err
		}
		return mtlxtype.BoolValue(b), nil
	case mtlxtype.String, mtlxtype.Filename:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return mtlxtype.Value{}, err
		}
		if typ == mtlxtype.Filename {
			return mtlxtype.FilenameValue(s), nil
		}
		return mtlxtype.StringValue(s), nil
	case mtlxtype.SurfaceShader, mtlxtype.Material:
		// Shader sockets have no literal defaults.
		return mtlxtype.Value{}, nil
	default:
		var vals []float64
		if err := json.Unmarshal(raw, &vals); err != nil {
			return mtlxtype.Value{}, err
		}
		want := typ.Components()
		if len(vals) < want {
			return mtlxtype.Value{}, fmt.Errorf("default has %d components, %s needs %d", len(vals), typ, want)
		}
		return mtlxtype.TupleValue(typ, vals[:want]...), nil
	}
}
