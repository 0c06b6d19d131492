package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/mtlxbridge/mtlxbridge/pkg/cache"
	"github.com/mtlxbridge/mtlxbridge/pkg/mtlxtype"
	"github.com/mtlxbridge/mtlxbridge/pkg/source"
)

func sceneWith(t *testing.T, materials ...string) *source.Scene {
	t.Helper()
	scene := &source.Scene{}
	for _, name := range materials {
		g := source.New(name)
		if err := g.AddNode(source.Node{
			ID: "sink", Type: source.OutputMaterialType,
			Inputs: []source.Socket{{Name: source.SurfaceInput, Type: mtlxtype.SurfaceShader}},
		}); err != nil {
			t.Fatal(err)
		}
		if err := g.AddNode(source.Node{
			ID: "shader", Type: "BSDF_PRINCIPLED",
			Inputs: []source.Socket{
				{Name: "Base Color", Type: mtlxtype.Color4,
					Default: mtlxtype.TupleValue(mtlxtype.Color4, 0.8, 0.2, 0.2, 1)},
			},
			Outputs: []source.Socket{{Name: "BSDF", Type: mtlxtype.SurfaceShader}},
		}); err != nil {
			t.Fatal(err)
		}
		if err := g.AddLink(source.Link{
			FromNode: "shader", FromOutput: "BSDF", ToNode: "sink", ToInput: source.SurfaceInput,
		}); err != nil {
			t.Fatal(err)
		}
		scene.Materials = append(scene.Materials, g)
	}
	return scene
}

func TestExecute(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{
		Scene: sceneWith(t, "Red", "Green", "Blue"),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Stats.Total != 3 || res.Stats.Succeeded != 3 || res.Stats.Failed != 0 {
		t.Fatalf("Stats = %+v, want 3 succeeded", res.Stats)
	}

	// Scene order is preserved regardless of worker scheduling.
	want := []string{"Red", "Green", "Blue"}
	for i, m := range res.Materials {
		if m.Material != want[i] {
			t.Errorf("Materials[%d] = %q, want %q", i, m.Material, want[i])
		}
		if m.Err != nil {
			t.Errorf("Materials[%d].Err = %v", i, m.Err)
		}
		if !strings.Contains(string(m.Data), "standard_surface") {
			t.Errorf("Materials[%d] document is missing the shader", i)
		}
	}
}

func TestExecuteMaterialSelection(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{
		Scene:     sceneWith(t, "Red", "Green", "Blue"),
		Materials: []string{"Green"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Materials) != 1 || res.Materials[0].Material != "Green" {
		t.Fatalf("Materials = %+v, want only Green", res.Materials)
	}

	_, err = r.Execute(context.Background(), Options{
		Scene:     sceneWith(t, "Red"),
		Materials: []string{"Purple"},
	})
	if err == nil || !strings.Contains(err.Error(), "Purple") {
		t.Fatalf("Execute() error = %v, want unknown material error", err)
	}
}

func TestExecuteUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := Options{Scene: sceneWith(t, "Red")}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.Stats.CacheHits != 0 {
		t.Fatalf("first run CacheHits = %d, want 0", first.Stats.CacheHits)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() second error = %v", err)
	}
	if second.Stats.CacheHits != 1 {
		t.Fatalf("second run CacheHits = %d, want 1", second.Stats.CacheHits)
	}
	if string(second.Materials[0].Data) != string(first.Materials[0].Data) {
		t.Error("cached document differs from the translated one")
	}
	if second.Materials[0].Translation != nil {
		t.Error("cache hit should not carry a translation result")
	}

	// Refresh bypasses the cache read.
	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() third error = %v", err)
	}
	if third.Stats.CacheHits != 0 {
		t.Errorf("refresh run CacheHits = %d, want 0", third.Stats.CacheHits)
	}
}

func TestFingerprint(t *testing.T) {
	a := sceneWith(t, "Red").Materials[0]
	b := sceneWith(t, "Red").Materials[0]
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("identical graphs should share a fingerprint")
	}

	c := sceneWith(t, "Blue").Materials[0]
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("renamed material should change the fingerprint")
	}

	// Changing a literal changes the fingerprint.
	d := sceneWith(t, "Red").Materials[0]
	n, _ := d.Node("shader")
	n.Inputs[0].Default = mtlxtype.TupleValue(mtlxtype.Color4, 0, 0, 0, 1)
	if Fingerprint(a) == Fingerprint(d) {
		t.Error("changed default should change the fingerprint")
	}
}

func TestOptionsValidate(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("empty options should be rejected")
	}

	opts = Options{Input: "scene.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want default %d", opts.Workers, DefaultWorkers)
	}
}
