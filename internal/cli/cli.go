// Package cli implements the mtlxbridge command-line interface.
//
// This package provides commands for translating scene dumps into MaterialX
// documents, validating .mtlx files, inspecting source graphs, serving the
// HTTP API, and managing the translation cache. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - translate: Convert a scene dump into .mtlx documents
//   - validate: Check a .mtlx file against the node schema
//   - inspect: Render a source material graph as DOT or SVG
//   - serve: Run the HTTP translation API
//   - cache: Manage the translation cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mtlxbridge/mtlxbridge/pkg/buildinfo"
	"github.com/mtlxbridge/mtlxbridge/pkg/cache"
	"github.com/mtlxbridge/mtlxbridge/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "mtlxbridge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "mtlxbridge translates shading node graphs to MaterialX",
		Long:         `mtlxbridge converts node-based material descriptions exported from a host application into schema-valid MaterialX documents, resolving type mismatches and synthesizing conversion definitions along the way.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.translateCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. A non-empty redisAddr
// selects the shared Redis cache over the local file cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisAddr string) (*pipeline.Runner, error) {
	cch, err := newCache(ctx, noCache, redisAddr)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

func newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, redisAddr, os.Getenv("MTLXBRIDGE_REDIS_PASSWORD"), 0)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/mtlxbridge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
