package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"translate", "validate", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestMaterialFileName(t *testing.T) {
	tests := []struct {
		material string
		want     string
	}{
		{"RedPlastic", "RedPlastic.mtlx"},
		{"Brushed Metal", "Brushed_Metal.mtlx"},
		{"wood/oak", "wood_oak.mtlx"},
	}
	for _, tt := range tests {
		if got := materialFileName(tt.material); got != tt.want {
			t.Errorf("materialFileName(%q) = %q, want %q", tt.material, got, tt.want)
		}
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != filepath.Join(tmp, appName) {
		t.Errorf("cacheDir() = %q, want %q", dir, filepath.Join(tmp, appName))
	}
}

func TestRunValidateValidFile(t *testing.T) {
	doc := `<?xml version="1.0"?>
<materialx version="1.38">
  <standard_surface name="shader" type="surfaceshader" />
  <surfacematerial name="Test" type="material">
    <input name="surfaceshader" type="surfaceshader" nodename="shader" />
  </surfacematerial>
</materialx>`
	path := filepath.Join(t.TempDir(), "test.mtlx")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if err := c.runValidate(path, false); err != nil {
		t.Errorf("runValidate() error = %v, want nil", err)
	}
}

func TestRunValidateBrokenFile(t *testing.T) {
	doc := `<?xml version="1.0"?>
<materialx version="1.38">
  <surfacematerial name="Broken" type="material">
    <input name="surfaceshader" type="surfaceshader" nodename="ghost" />
  </surfacematerial>
</materialx>`
	path := filepath.Join(t.TempDir(), "broken.mtlx")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if err := c.runValidate(path, false); err == nil {
		t.Error("runValidate() error = nil, want validation failure")
	}
}
