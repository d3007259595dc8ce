package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Runs only against a real database, e.g.
// POSTGRES_TEST_DSN=postgres://postgres@localhost/postgres?sslmode=disable
func TestWriteSnapshots(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	runID := uuid.New().String()
	store := NewSnapshotStore(db, runID)
	require.NoError(t, store.Migrate(ctx))

	snaps := []models.AccountSnapshot{
		{ClientID: 1, Available: decimal.RequireFromString("1.5"), Held: decimal.Zero, Total: decimal.RequireFromString("1.5")},
		{ClientID: 2, Available: decimal.RequireFromString("-2"), Held: decimal.RequireFromString("2.25"), Total: decimal.RequireFromString("0.25"), Locked: true},
	}
	require.NoError(t, store.WriteSnapshots(ctx, snaps))

	var total decimal.Decimal
	var locked bool
	err = db.QueryRowContext(ctx,
		`SELECT total, locked FROM account_snapshots WHERE run_id = $1 AND client_id = $2`, runID, 2).
		Scan(&total, &locked)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("0.25")))
	require.True(t, locked)

	// a second write of the same run violates the primary key and rolls back
	require.Error(t, store.WriteSnapshots(ctx, snaps[:1]))

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM account_snapshots WHERE run_id = $1`, runID).Scan(&count))
	require.Equal(t, 2, count)
}
