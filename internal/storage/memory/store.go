// Package memory is the in-memory SnapshotStore implementation: the
// default sink when no database is configured, and the test double.
package memory

import (
	"context"
	"sync"

	"github.com/bozkayasalihx/roinstxs/internal/interfaces"
	"github.com/bozkayasalihx/roinstxs/internal/models"
)

type MemorySnapshotStore struct {
	mu   sync.Mutex
	runs map[string][]models.AccountSnapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		runs: make(map[string][]models.AccountSnapshot),
	}
}

func (m *MemorySnapshotStore) SaveSnapshots(ctx context.Context, runID string, snaps []models.AccountSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.AccountSnapshot, len(snaps))
	copy(copied, snaps)
	m.runs[runID] = copied
	return nil
}

// SnapshotsByRun returns a copy so callers cannot reach the stored rows.
func (m *MemorySnapshotStore) SnapshotsByRun(ctx context.Context, runID string) ([]models.AccountSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.AccountSnapshot, len(m.runs[runID]))
	copy(copied, m.runs[runID])
	return copied, nil
}

var _ interfaces.SnapshotStore = (*MemorySnapshotStore)(nil)
