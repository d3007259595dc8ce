package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" driver

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces" // interface SnapshotWriter
	"github.com/sheikh-saqib/payments-engine/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS account_snapshots (
	run_id     uuid        NOT NULL,
	client_id  integer     NOT NULL,
	available  numeric     NOT NULL,
	held       numeric     NOT NULL,
	total      numeric     NOT NULL,
	locked     boolean     NOT NULL,
	created_at timestamptz NOT NULL,
	PRIMARY KEY (run_id, client_id)
)`

// SnapshotStore writes the final account snapshots of one run.
type SnapshotStore struct {
	db    *sql.DB
	runID string
}

// Open connects to Postgres using a lib/pq connection string.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return db, nil
}

func NewSnapshotStore(db *sql.DB, runID string) *SnapshotStore {
	return &SnapshotStore{
		db:    db,
		runID: runID,
	}
}

func (p *SnapshotStore) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

func (p *SnapshotStore) saveSnapshot(ctx context.Context, s models.AccountSnapshot, createdAt time.Time, dbTx *sql.Tx) error {
	const query = `INSERT INTO account_snapshots (run_id, client_id, available, held, total, locked, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := dbTx.ExecContext(ctx, query, p.runID, int(s.ClientID), s.Available, s.Held, s.Total, s.Locked, createdAt)
	return err
}

// WriteSnapshots stores every snapshot in a single transaction; either the
// whole run is saved or nothing is.
func (p *SnapshotStore) WriteSnapshots(ctx context.Context, snapshots []models.AccountSnapshot) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	createdAt := time.Now().UTC()
	for _, s := range snapshots {
		if err = p.saveSnapshot(ctx, s, createdAt, dbTx); err != nil {
			return fmt.Errorf("postgres: save client %d: %w", s.ClientID, err)
		}
	}
	return dbTx.Commit()
}

var _ interfaces.SnapshotWriter = (*SnapshotStore)(nil)
