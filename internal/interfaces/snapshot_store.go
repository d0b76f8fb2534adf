package interfaces

import (
	"context"

	"github.com/bozkayasalihx/roinstxs/internal/models"
)

// SnapshotStore is a destination for final account summaries, one batch
// of rows per run. The engine never reads state back from a store; a
// store is purely a report sink.
type SnapshotStore interface {
	SaveSnapshots(ctx context.Context, runID string, snaps []models.AccountSnapshot) error
	SnapshotsByRun(ctx context.Context, runID string) ([]models.AccountSnapshot, error)
}
