package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtlxbridge/mtlxbridge/pkg/inspect"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
	"github.com/mtlxbridge/mtlxbridge/pkg/translate"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	material string // material name; required when the scene has several
	format   string // dot or svg
	output   string // output file (stdout if empty)
	detailed bool   // include socket names and types in labels
	stage    string // source (host graph) or translated (built document)
}

// inspectCommand creates the inspect command for visualizing source graphs.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{format: "dot", stage: "source"}

	cmd := &cobra.Command{
		Use:   "inspect <scene.json>",
		Short: "Render a source material graph as DOT or SVG",
		Long: `Render a source material graph as DOT or SVG.

The diagram shows the host node network as the translator sees it: node
types, link routing and the terminal output node. Useful for diagnosing
why a material classifies as nodegraph or which nodes went unsupported.

With --stage translated the diagram shows the built MaterialX document
instead: mapped nodes, inserted converters and the material binding.

Examples:
  mtlxbridge inspect scene.json -m RedPlastic
  mtlxbridge inspect scene.json -m Wood -f svg -o wood.svg
  mtlxbridge inspect scene.json -m Wood --stage translated`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.material, "material", "m", "", "material name (required for multi-material scenes)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include socket names and types in node labels")
	cmd.Flags().StringVar(&opts.stage, "stage", opts.stage, "graph to render: source (default), translated")

	return cmd
}

func (c *CLI) runInspect(input string, opts inspectOpts) error {
	scene, err := source.ReadSceneFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	g, err := pickMaterial(scene, opts.material)
	if err != nil {
		return err
	}

	var dot string
	switch opts.stage {
	case "source":
		dot = inspect.ToDOT(g, inspect.Options{Detailed: opts.detailed})
	case "translated":
		tr, err := translate.New(translate.Options{})
		if err != nil {
			return err
		}
		res, err := tr.Translate(g)
		if err != nil {
			return fmt.Errorf("translate %s: %w", g.Material, err)
		}
		dot = inspect.ToDOTDocument(res.Document)
	default:
		return fmt.Errorf("unknown stage %q (want source or translated)", opts.stage)
	}

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = inspect.RenderSVG(dot)
		if err != nil {
			return fmt.Errorf("render SVG: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want dot or svg)", opts.format)
	}

	if opts.output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printFile(opts.output)
	return nil
}

// pickMaterial resolves the requested material, defaulting to the only one.
func pickMaterial(scene *source.Scene, name string) (*source.Graph, error) {
	if name != "" {
		g, ok := scene.Graph(name)
		if !ok {
			return nil, fmt.Errorf("material %q not in scene (have: %s)",
				name, strings.Join(scene.Names(), ", "))
		}
		return g, nil
	}
	if len(scene.Materials) == 1 {
		return scene.Materials[0], nil
	}
	return nil, fmt.Errorf("scene has %d materials; pick one with --material", len(scene.Materials))
}
