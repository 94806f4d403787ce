// internal/snapshot/postgres.go
package snapshot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PGStore persists snapshots in three Postgres tables. Each save replaces
// the previous snapshot inside one transaction; loads read the tables in
// dependency order.
type PGStore struct {
	db *sqlx.DB
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS snapshot_items (
	position SERIAL PRIMARY KEY,
	id       TEXT NOT NULL UNIQUE,
	title    TEXT NOT NULL,
	author   TEXT NOT NULL,
	category TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshot_holders (
	position SERIAL PRIMARY KEY,
	id       TEXT NOT NULL UNIQUE,
	name     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshot_loans (
	item_id   TEXT PRIMARY KEY REFERENCES snapshot_items (id),
	holder_id TEXT NOT NULL REFERENCES snapshot_holders (id)
);`

// NewPGStore connects to dsn and ensures the snapshot tables exist.
func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot tables: %w", err)
	}
	return &PGStore{db: db}, nil
}

// Close releases the database connection.
func (s *PGStore) Close() error { return s.db.Close() }

// Save replaces the stored snapshot transactionally.
func (s *PGStore) Save(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_loans`); err != nil {
		return fmt.Errorf("failed to clear loans: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_items`); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_holders`); err != nil {
		return fmt.Errorf("failed to clear holders: %w", err)
	}

	for _, rec := range snap.Items {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO snapshot_items (id, title, author, category)
			 VALUES (:id, :title, :author, :category)`, rec); err != nil {
			return fmt.Errorf("failed to insert item %q: %w", rec.ID, err)
		}
	}
	for _, rec := range snap.Holders {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO snapshot_holders (id, name) VALUES (:id, :name)`, rec); err != nil {
			return fmt.Errorf("failed to insert holder %q: %w", rec.ID, err)
		}
	}
	for _, rec := range snap.Loans {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO snapshot_loans (item_id, holder_id)
			 VALUES (:item_id, :holder_id)`, rec); err != nil {
			return fmt.Errorf("failed to insert loan %q: %w", rec.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. An empty database yields
// ErrSnapshotNotFound.
func (s *PGStore) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if err := s.db.SelectContext(ctx, &snap.Items,
		`SELECT id, title, author, category FROM snapshot_items ORDER BY position`); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load items: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.Holders,
		`SELECT id, name FROM snapshot_holders ORDER BY position`); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load holders: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.Loans,
		`SELECT item_id, holder_id FROM snapshot_loans ORDER BY item_id`); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load loans: %w", err)
	}
	if len(snap.Items) == 0 && len(snap.Holders) == 0 && len(snap.Loans) == 0 {
		return Snapshot{}, ErrSnapshotNotFound
	}
	return snap, nil
}

var _ Store = (*PGStore)(nil)
