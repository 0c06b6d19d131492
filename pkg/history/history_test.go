package history

import (
	"context"
	"testing"
	"time"

	"github.com/mtlxbridge/mtlxbridge/pkg/classify"
	"github.com/mtlxbridge/mtlxbridge/pkg/errors"
	"github.com/mtlxbridge/mtlxbridge/pkg/pipeline"
	"github.com/mtlxbridge/mtlxbridge/pkg/translate"
	"github.com/mtlxbridge/mtlxbridge/pkg/validate"
)

func TestMemoryStoreRecordAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	run := &Run{ID: "run-1", Material: "RedPlastic", Success: true}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Material != "RedPlastic" {
		t.Errorf("Get() material = %q, want %q", got.Material, "RedPlastic")
	}
}

func TestMemoryStoreGetMiss(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "nope")
	if err == nil {
		t.Fatal("Get() error = nil, want run not found")
	}
	if !errors.Is(err, errors.ErrCodeRunNotFound) {
		t.Errorf("Get() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeRunNotFound)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if err := store.Record(ctx, &Run{ID: id, Material: id}); err != nil {
			t.Fatalf("Record(%q) error = %v", id, err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("List() len = %d, want 2", len(runs))
	}
	if runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("List() order = [%s %s], want [c b]", runs[0].ID, runs[1].ID)
	}
}

func TestFromResult(t *testing.T) {
	res := pipeline.MaterialResult{
		Material: "Wood",
		CacheHit: false,
		Duration: 1500 * time.Millisecond,
		Translation: &translate.Result{
			Material: "Wood",
			Pattern:  classify.NodeGraph,
			Success:  true,
			Unsupported: []translate.Unsupported{
				{Node: "Script", Type: "SCRIPT"},
			},
			Validation: &validate.Report{
				Warnings: []validate.Item{{Where: "x", Message: "unused"}},
			},
		},
	}

	run := FromResult(res)
	if run.ID == "" {
		t.Error("FromResult() ID is empty, want generated UUID")
	}
	if run.Material != "Wood" {
		t.Errorf("FromResult() material = %q, want %q", run.Material, "Wood")
	}
	if !run.Success {
		t.Error("FromResult() success = false, want true")
	}
	if run.Pattern != "nodegraph" {
		t.Errorf("FromResult() pattern = %q, want %q", run.Pattern, "nodegraph")
	}
	if run.Duration != 1500 {
		t.Errorf("FromResult() duration = %d, want 1500", run.Duration)
	}
	if len(run.Unsupported) != 1 || run.Unsupported[0] != "SCRIPT" {
		t.Errorf("FromResult() unsupported = %v, want [SCRIPT]", run.Unsupported)
	}
	if run.Warnings != 1 || run.Errors != 0 {
		t.Errorf("FromResult() errors/warnings = %d/%d, want 0/1", run.Errors, run.Warnings)
	}
}

func TestFromResultFailedRun(t *testing.T) {
	res := pipeline.MaterialResult{
		Material: "Broken",
		Err:      errors.New(errors.ErrCodeCycleDetected, "cycle"),
	}
	run := FromResult(res)
	if run.Success {
		t.Error("FromResult() success = true, want false")
	}
	if run.Pattern != "" {
		t.Errorf("FromResult() pattern = %q, want empty", run.Pattern)
	}
}
