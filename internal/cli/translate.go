package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtlxbridge/mtlxbridge/pkg/classify"
	"github.com/mtlxbridge/mtlxbridge/pkg/pipeline"
)

// translateOpts holds the command-line flags for the translate command.
type translateOpts struct {
	output     string // output directory for .mtlx files
	materials  string // comma-separated material subset
	strict     bool   // abort on unsupported nodes
	refresh    bool   // bypass cache reads
	noCache    bool   // disable caching entirely
	redis      string // Redis address for a shared cache
	workers    int    // translation concurrency
	classifier string // classifier config TOML path
	tui        bool   // interactive progress display
	textures   bool   // list referenced texture files

	fileClassifier *classify.Config // from mtlxbridge.toml, flag wins
}

// translateCommand creates the translate command.
func (c *CLI) translateCommand() *cobra.Command {
	opts := translateOpts{workers: pipeline.DefaultWorkers}

	cmd := &cobra.Command{
		Use:   "translate <scene.json>",
		Short: "Translate a scene dump into MaterialX documents",
		Long: `Translate a scene dump into MaterialX documents.

The scene dump is a JSON export of the host application's materials. Each
material graph is compiled into a .mtlx document, validated, and written
to the output directory (one file per material).

Translated documents are cached by source graph fingerprint, so
re-exporting an unchanged material is a cache read.

Examples:
  mtlxbridge translate scene.json
  mtlxbridge translate scene.json -o out/ --material RedPlastic,Wood
  mtlxbridge translate scene.json --strict --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFileConfig(cmd, &opts); err != nil {
				return err
			}
			return c.runTranslate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory for .mtlx files")
	cmd.Flags().StringVarP(&opts.materials, "material", "m", "", "material name(s), comma-separated (default: all)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "abort a material on the first unsupported node")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache reads")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for a shared cache (local file cache if empty)")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "translation concurrency")
	cmd.Flags().StringVar(&opts.classifier, "classifier-config", "", "classifier thresholds TOML file")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "interactive progress display")
	cmd.Flags().BoolVar(&opts.textures, "textures", false, "list referenced texture files per material")

	return cmd
}

// applyFileConfig fills flag defaults from mtlxbridge.toml. Flags the
// user set explicitly win over the file.
func applyFileConfig(cmd *cobra.Command, opts *translateOpts) error {
	cfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("strict") && cfg.Strict {
		opts.strict = true
	}
	if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
		opts.workers = cfg.Workers
	}
	if !cmd.Flags().Changed("output") && cfg.Output != "" {
		opts.output = cfg.Output
	}
	if opts.classifier == "" {
		opts.fileClassifier = cfg.Classifier
	}
	return nil
}

func (c *CLI) runTranslate(ctx context.Context, input string, opts translateOpts) error {
	pipeOpts := pipeline.Options{
		Input:   input,
		Strict:  opts.strict,
		Refresh: opts.refresh,
		Workers: opts.workers,
		Logger:  c.Logger,
	}
	if opts.materials != "" {
		pipeOpts.Materials = strings.Split(opts.materials, ",")
	}
	if opts.classifier != "" {
		cfg, err := classify.LoadConfig(opts.classifier)
		if err != nil {
			return fmt.Errorf("load classifier config: %w", err)
		}
		pipeOpts.Classifier = &cfg
	} else if opts.fileClassifier != nil {
		pipeOpts.Classifier = opts.fileClassifier
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redis)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if opts.tui {
		return c.runTranslateTUI(ctx, runner, pipeOpts, opts)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Translating materials...")
	spinner.Start()

	res, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spinner.StopWithError("Translation failed")
		return fmt.Errorf("translate: %w", err)
	}
	spinner.Stop()

	if err := writeResults(res, opts); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Exported %d/%d materials (%d cached)",
		res.Stats.Succeeded, res.Stats.Total, res.Stats.CacheHits))
	if res.Stats.Failed > 0 {
		return fmt.Errorf("%d material(s) failed", res.Stats.Failed)
	}
	return nil
}

// writeResults writes each exported document and prints per-material status.
func writeResults(res *pipeline.Result, opts translateOpts) error {
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, m := range res.Materials {
		if m.Err != nil {
			printError("%s: %v", m.Material, m.Err)
			continue
		}

		path := filepath.Join(opts.output, materialFileName(m.Material))
		if err := os.WriteFile(path, m.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		printSuccess("%s", m.Material)
		printFile(path)
		if t := m.Translation; t != nil {
			printTranslationDetails(m, opts)
		} else {
			printMaterialStats(0, 0, 0, m.CacheHit)
		}
	}
	return nil
}

func printTranslationDetails(m pipeline.MaterialResult, opts translateOpts) {
	t := m.Translation
	nodes := 0
	if t.Document != nil {
		nodes = len(t.Document.Nodes())
		for _, g := range t.Document.NodeGraphs() {
			nodes += len(g.Nodes())
		}
	}
	printMaterialStats(nodes, len(t.Unsupported), len(t.Skipped), m.CacheHit)

	for _, u := range t.Unsupported {
		printWarning("unsupported %s (%s)", u.Node, u.Type)
		if u.Remediation != "" {
			printDetail("%s", u.Remediation)
		}
	}
	if t.Validation != nil {
		for _, w := range t.Validation.Warnings {
			printDetail("warning: %s", w)
		}
	}
	if opts.textures {
		for _, tex := range m.Textures {
			printDetail("texture: %s", tex)
		}
	}
}

// materialFileName maps a material name to a safe .mtlx file name.
func materialFileName(material string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, material)
	return name + ".mtlx"
}
