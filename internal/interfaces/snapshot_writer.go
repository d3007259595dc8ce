package interfaces

import (
	"context"

	"github.com/sheikh-saqib/payments-engine/internal/models"
)

// SnapshotWriter receives the final account snapshots once the stream ends.
type SnapshotWriter interface {
	WriteSnapshots(ctx context.Context, snapshots []models.AccountSnapshot) error
}
