package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir := filepath.Join(tmp, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFileConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadFileConfig()
	if err != nil {
		t.Fatalf("loadFileConfig() error = %v", err)
	}
	if cfg.Strict || cfg.Workers != 0 || cfg.Classifier != nil {
		t.Errorf("loadFileConfig() = %+v, want zero config", cfg)
	}
}

func TestLoadFileConfig(t *testing.T) {
	writeConfig(t, `
strict = true
workers = 8
output = "exports"

[classifier]
threshold = 5
`)

	cfg, err := loadFileConfig()
	if err != nil {
		t.Fatalf("loadFileConfig() error = %v", err)
	}
	if !cfg.Strict {
		t.Error("Strict = false, want true")
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Output != "exports" {
		t.Errorf("Output = %q, want %q", cfg.Output, "exports")
	}
	if cfg.Classifier == nil {
		t.Fatal("Classifier = nil, want section")
	}
	if cfg.Classifier.Threshold != 5 {
		t.Errorf("Classifier.Threshold = %d, want 5", cfg.Classifier.Threshold)
	}
	if len(cfg.Classifier.MathTypes) == 0 {
		t.Error("Classifier.MathTypes empty, want defaults filled")
	}
}

func TestLoadFileConfigBadThreshold(t *testing.T) {
	writeConfig(t, `
[classifier]
threshold = -1
math_types = ["MATH"]
`)

	if _, err := loadFileConfig(); err == nil {
		t.Error("loadFileConfig() error = nil, want threshold error")
	}
}
