package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bozkayasalihx/roinstxs/internal/models"
)

func TestSaveAndFetchByRun(t *testing.T) {
	store := NewMemorySnapshotStore()
	ctx := context.Background()

	snaps := []models.AccountSnapshot{
		{ClientID: 1, Available: decimal.RequireFromString("3"), Held: decimal.Zero, Total: decimal.RequireFromString("3")},
	}
	if err := store.SaveSnapshots(ctx, "run-a", snaps); err != nil {
		t.Fatalf("SaveSnapshots: %v", err)
	}

	got, err := store.SnapshotsByRun(ctx, "run-a")
	if err != nil {
		t.Fatalf("SnapshotsByRun: %v", err)
	}
	if len(got) != 1 || got[0].ClientID != 1 {
		t.Fatalf("got %+v, want the saved row", got)
	}

	// Mutating what came back must not reach the store.
	got[0].ClientID = 99
	again, _ := store.SnapshotsByRun(ctx, "run-a")
	if again[0].ClientID != 1 {
		t.Error("store rows shared with caller")
	}

	other, err := store.SnapshotsByRun(ctx, "run-b")
	if err != nil {
		t.Fatalf("SnapshotsByRun unknown run: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("unknown run returned %d rows", len(other))
	}
}
