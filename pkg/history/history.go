// Package history records export runs, so operators can answer "when was
// this material last exported, and did it translate cleanly".
//
// The Store interface has two implementations: an in-memory store for the
// CLI and tests, and a MongoDB store for shared deployments where several
// exporter instances feed one history.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mtlxbridge/mtlxbridge/pkg/pipeline"
)

// Run is one recorded material export.
type Run struct {
	ID        string    `bson:"_id" json:"id"`
	Material  string    `bson:"material" json:"material"`
	Success   bool      `bson:"success" json:"success"`
	Pattern   string    `bson:"pattern" json:"pattern"`
	CacheHit  bool      `bson:"cache_hit" json:"cache_hit"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Duration  int64     `bson:"duration_ms" json:"duration_ms"`

	Unsupported []string `bson:"unsupported,omitempty" json:"unsupported,omitempty"`
	Errors      int      `bson:"errors" json:"errors"`
	Warnings    int      `bson:"warnings" json:"warnings"`
}

// NewRunID returns a fresh unique run identifier.
func NewRunID() string { return uuid.NewString() }

// FromResult builds a Run record from one pipeline material result.
func FromResult(m pipeline.MaterialResult) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		Material:  m.Material,
		Success:   m.Err == nil,
		CacheHit:  m.CacheHit,
		CreatedAt: time.Now().UTC(),
		Duration:  m.Duration.Milliseconds(),
	}
	if t := m.Translation; t != nil {
		run.Success = t.Success
		run.Pattern = t.Pattern.String()
		for _, u := range t.Unsupported {
			run.Unsupported = append(run.Unsupported, u.Type)
		}
		if t.Validation != nil {
			run.Errors = len(t.Validation.Errors)
			run.Warnings = len(t.Validation.Warnings)
		}
	}
	return run
}

// Store persists run records.
type Store interface {
	// Record saves a run.
	Record(ctx context.Context, run *Run) error

	// Get returns a run by ID.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
