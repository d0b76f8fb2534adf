// Package postgres persists account summaries to a Postgres table, one
// row per account per run.
package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/bozkayasalihx/roinstxs/internal/interfaces"
	"github.com/bozkayasalihx/roinstxs/internal/models"
)

type PostgresSnapshotStore struct {
	db *sql.DB
}

func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

// Open dials Postgres with the lib/pq driver and verifies the
// connection before handing back a store.
func Open(ctx context.Context, dsn string) (*PostgresSnapshotStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return NewPostgresSnapshotStore(db), nil
}

// EnsureSchema creates the snapshots table when it does not exist yet.
func (p *PostgresSnapshotStore) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS account_snapshots (
		run_id     TEXT        NOT NULL,
		client_id  INTEGER     NOT NULL,
		available  NUMERIC     NOT NULL,
		held       NUMERIC     NOT NULL,
		total      NUMERIC     NOT NULL,
		locked     BOOLEAN     NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (run_id, client_id)
	)`

	_, err := p.db.ExecContext(ctx, query)
	return err
}

func (p *PostgresSnapshotStore) SaveSnapshots(ctx context.Context, runID string, snaps []models.AccountSnapshot) error {
	const query = `INSERT INTO account_snapshots (run_id, client_id, available, held, total, locked)
	VALUES ($1, $2, $3, $4, $5, $6)`

	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	for _, s := range snaps {
		_, err = dbTx.ExecContext(ctx, query,
			runID, int64(s.ClientID), s.Available, s.Held, s.Total, s.Locked)
		if err != nil {
			return err
		}
	}
	return dbTx.Commit()
}

func (p *PostgresSnapshotStore) SnapshotsByRun(ctx context.Context, runID string) ([]models.AccountSnapshot, error) {
	const query = `SELECT client_id, available, held, total, locked FROM account_snapshots
	WHERE run_id = $1 ORDER BY client_id`

	rows, err := p.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []models.AccountSnapshot
	for rows.Next() {
		var s models.AccountSnapshot
		var client int64
		if err := rows.Scan(&client, &s.Available, &s.Held, &s.Total, &s.Locked); err != nil {
			return nil, err
		}
		s.ClientID = uint16(client)
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snaps, nil
}

func (p *PostgresSnapshotStore) Close() error { return p.db.Close() }

var _ interfaces.SnapshotStore = (*PostgresSnapshotStore)(nil)
