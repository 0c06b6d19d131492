package history

import (
	"context"
	"sync"

	"github.com/mtlxbridge/mtlxbridge/pkg/errors"
)

// MemoryStore keeps runs in memory. Used by the CLI and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []*Run
	byID map[string]*Run
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*Run)}
}

// Record saves a run.
func (s *MemoryStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	s.byID[run.ID] = run
	return nil
}

// Get returns a run by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeRunNotFound, "run %s", id)
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.runs) {
		limit = len(s.runs)
	}
	out := make([]*Run, 0, limit)
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
