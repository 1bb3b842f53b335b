package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/kairos/internal/db"
)

// SQLiteSyncSnapshotRepo persists one opaque CRDT snapshot per document id,
// over the sync_snapshots table. It implements syncdoc.Persistence without
// internal/repository importing internal/syncdoc: the method set matches
// structurally.
type SQLiteSyncSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSyncSnapshotRepo(conn db.DBTX) *SQLiteSyncSnapshotRepo {
	return &SQLiteSyncSnapshotRepo{db: conn}
}

// Load returns the stored snapshot for documentID, or found=false if none
// has ever been saved.
func (r *SQLiteSyncSnapshotRepo) Load(ctx context.Context, documentID string) ([]byte, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM sync_snapshots WHERE document_id = ?`, documentID)
	var data []byte
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading sync snapshot: %w", err)
	}
	return data, true, nil
}

// Save upserts documentID's snapshot.
func (r *SQLiteSyncSnapshotRepo) Save(ctx context.Context, documentID string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_snapshots (document_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		documentID, data, nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("saving sync snapshot: %w", err)
	}
	return nil
}

// Clear deletes documentID's stored snapshot, if any.
func (r *SQLiteSyncSnapshotRepo) Clear(ctx context.Context, documentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sync_snapshots WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("clearing sync snapshot: %w", err)
	}
	return nil
}
