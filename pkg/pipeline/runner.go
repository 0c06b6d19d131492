package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mtlxbridge/mtlxbridge/pkg/buildinfo"
	"github.com/mtlxbridge/mtlxbridge/pkg/cache"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxdoc"
	"github.com/mtlxbridge/mtlxbridge/pkg/observability"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
	"github.com/mtlxbridge/mtlxbridge/pkg/translate"
)

// Runner executes export runs with caching. It is stateless apart from
// the cache and logger; multiple goroutines can share one Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// MaterialResult is the outcome of exporting one material.
type MaterialResult struct {
	Material string

	// Data is the serialized MaterialX document.
	Data []byte

	// Translation carries the full engine result. Nil on cache hits,
	// which return the serialized document without rerunning the engine.
	Translation *translate.Result

	// Textures lists the image file paths the document references.
	Textures []string

	CacheHit bool
	Duration time.Duration
	Err      error
}

// Result aggregates a complete run. Materials appear in scene order.
type Result struct {
	Materials []MaterialResult
	Stats     Stats
}

// Execute runs the full export: load the scene, translate every selected
// material concurrently, serialize and cache the documents. Per-material
// failures are recorded on the MaterialResult; Execute only errors when
// the run as a whole cannot proceed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	readStart := time.Now()
	scene := opts.Scene
	if scene == nil {
		var err error
		scene, err = source.ReadSceneFile(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("read scene: %w", err)
		}
	}
	graphs, err := opts.selected(scene)
	if err != nil {
		return nil, err
	}

	result := &Result{Materials: make([]MaterialResult, len(graphs))}
	result.Stats.Total = len(graphs)
	result.Stats.ReadTime = time.Since(readStart)

	logger.Info("loaded scene", "materials", len(graphs), "duration", result.Stats.ReadTime)

	translateStart := time.Now()
	workers := opts.Workers
	if workers > len(graphs) {
		workers = len(graphs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result.Materials[i] = r.ExportMaterial(ctx, graphs[i], opts)
			}
		}()
	}
	for i := range graphs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	result.Stats.TranslateTime = time.Since(translateStart)
	for _, m := range result.Materials {
		switch {
		case m.Err != nil:
			result.Stats.Failed++
		default:
			result.Stats.Succeeded++
		}
		if m.CacheHit {
			result.Stats.CacheHits++
		}
	}

	logger.Info("export finished",
		"succeeded", result.Stats.Succeeded,
		"failed", result.Stats.Failed,
		"cache_hits", result.Stats.CacheHits,
		"duration", result.Stats.TranslateTime)
	return result, nil
}

// ExportMaterial translates and serializes one material, going through
// the cache.
func (r *Runner) ExportMaterial(ctx context.Context, g *source.Graph, opts Options) MaterialResult {
	start := time.Now()
	out := MaterialResult{Material: g.Material}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	key := r.Keyer.TranslationKey(Fingerprint(g), cache.TranslationKeyOpts{
		Strict:    opts.Strict,
		Threshold: threshold(opts),
		Version:   buildinfo.Version,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "translate")
			out.Data = data
			out.CacheHit = true
			out.Duration = time.Since(start)
			logger.Debug("cache hit", "material", g.Material)
			return out
		}
		observability.Cache().OnCacheMiss(ctx, "translate")
	}

	observability.Translation().OnTranslateStart(ctx, g.Material, g.NodeCount())

	tr, err := translate.New(translate.Options{Strict: opts.Strict, Classifier: opts.Classifier})
	if err != nil {
		out.Err = err
		out.Duration = time.Since(start)
		return out
	}
	res, err := tr.Translate(g)
	if err != nil {
		observability.Translation().OnTranslateComplete(ctx, g.Material, 0, time.Since(start), err)
		out.Err = err
		out.Duration = time.Since(start)
		logger.Error("translation failed", "material", g.Material, "err", err)
		return out
	}
	out.Translation = res
	observability.Translation().OnTranslateComplete(ctx, g.Material, len(res.Unsupported), time.Since(start), nil)
	observability.Translation().OnValidate(ctx, g.Material, len(res.Validation.Errors), len(res.Validation.Warnings))

	writeStart := time.Now()
	data, err := mtlxdoc.Marshal(res.Document)
	observability.Translation().OnWriteComplete(ctx, g.Material, len(data), time.Since(writeStart), err)
	if err != nil {
		out.Err = err
		out.Duration = time.Since(start)
		return out
	}
	out.Data = data
	out.Textures = Textures(res.Document)

	if res.Success {
		if err := r.Cache.Set(ctx, key, data, TTLTranslation); err == nil {
			observability.Cache().OnCacheSet(ctx, "translate", len(data))
		}
	}

	out.Duration = time.Since(start)
	logger.Info("translated material",
		"material", g.Material,
		"pattern", res.Pattern,
		"unsupported", len(res.Unsupported),
		"duration", out.Duration)
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func threshold(opts Options) int {
	if opts.Classifier != nil {
		return opts.Classifier.Threshold
	}
	return 0
}

// Textures collects the image file paths a document references, for
// callers that copy textures next to the exported document.
func Textures(doc *mtlxdoc.Document) []string {
	seen := make(map[string]bool)
	var paths []string
	collect := func(nodes []*mtlxdoc.Node) {
		for _, n := range nodes {
			if n.Type != "image" {
				continue
			}
			if in, ok := n.Input("file"); ok && in.Value != "" && !seen[in.Value] {
				seen[in.Value] = true
				paths = append(paths, in.Value)
			}
		}
	}
	collect(doc.Nodes())
	for _, g := range doc.NodeGraphs() {
		collect(g.Nodes())
	}
	return paths
}
