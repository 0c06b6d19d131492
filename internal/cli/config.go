package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mtlxbridge/mtlxbridge/pkg/classify"
)

// configFileName is the optional per-project configuration file.
const configFileName = "mtlxbridge.toml"

// fileConfig holds defaults loaded from mtlxbridge.toml. Command-line
// flags override anything set here.
type fileConfig struct {
	// Strict aborts a material on the first unsupported node.
	Strict bool `toml:"strict"`

	// Workers caps translation concurrency.
	Workers int `toml:"workers"`

	// Output is the default output directory for .mtlx files.
	Output string `toml:"output"`

	// Classifier overrides the layout thresholds.
	Classifier *classify.Config `toml:"classifier"`
}

// loadFileConfig reads mtlxbridge.toml from the working directory, then
// from the XDG config directory. A missing file is not an error.
func loadFileConfig() (*fileConfig, error) {
	for _, path := range configPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var cfg fileConfig
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if cfg.Classifier != nil {
			fillClassifierDefaults(cfg.Classifier)
			if cfg.Classifier.Threshold < 1 {
				return nil, fmt.Errorf("%s: classifier threshold must be at least 1", path)
			}
		}
		return &cfg, nil
	}
	return &fileConfig{}, nil
}

func configPaths() []string {
	paths := []string{configFileName}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		paths = append(paths, filepath.Join(configHome, appName, configFileName))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, configFileName))
	}
	return paths
}

// fillClassifierDefaults completes a partially specified classifier
// section with the shipped thresholds.
func fillClassifierDefaults(cfg *classify.Config) {
	def := classify.DefaultConfig()
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.MathTypes == nil {
		cfg.MathTypes = def.MathTypes
	}
	if cfg.ProceduralTypes == nil {
		cfg.ProceduralTypes = def.ProceduralTypes
	}
	if cfg.TrivialTypes == nil {
		cfg.TrivialTypes = def.TrivialTypes
	}
}
