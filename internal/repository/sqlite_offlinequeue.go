package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/offlinequeue"
)

const offlineOperationColumns = `id, document_id, collection, entity_id, op, payload, origin, op_timestamp, recorded_at`

// SQLiteOfflineQueueStore implements offlinequeue.Store over the
// offline_operations and sync_metadata tables. DocumentID scopes which
// document's queue a given Store instance serves; a process typically opens
// one per synced document.
type SQLiteOfflineQueueStore struct {
	db         db.DBTX
	documentID string
}

func NewSQLiteOfflineQueueStore(conn db.DBTX, documentID string) *SQLiteOfflineQueueStore {
	return &SQLiteOfflineQueueStore{db: conn, documentID: documentID}
}

func (r *SQLiteOfflineQueueStore) Save(ctx context.Context, namespace, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_metadata (namespace, key, value) VALUES (?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value`,
		namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("saving metadata %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *SQLiteOfflineQueueStore) Load(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM sync_metadata WHERE namespace = ? AND key = ?`, namespace, key)
	var value []byte
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading metadata %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

func (r *SQLiteOfflineQueueStore) QueueOperation(ctx context.Context, op offlinequeue.Operation) error {
	query := `INSERT INTO offline_operations (` + offlineOperationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		op.ID, r.documentID, op.Entity, op.EntityID, string(op.Type), []byte(op.Data), "local", op.Timestamp, nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("queuing operation: %w", err)
	}
	return nil
}

// PendingOperations returns every un-applied operation for this document,
// ordered by op_timestamp ascending, ties broken by rowid (insertion order).
func (r *SQLiteOfflineQueueStore) PendingOperations(ctx context.Context) ([]offlinequeue.Operation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+offlineOperationColumns+` FROM offline_operations
		WHERE document_id = ? AND applied = 0
		ORDER BY op_timestamp ASC, rowid ASC`, r.documentID)
	if err != nil {
		return nil, fmt.Errorf("listing pending operations: %w", err)
	}
	defer rows.Close()

	var out []offlinequeue.Operation
	for rows.Next() {
		op, err := scanOfflineOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		out = append(out, op)
	}
	return out, rows.Err()
}

func (r *SQLiteOfflineQueueStore) RemoveOperation(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM offline_operations WHERE id = ? AND document_id = ?`, id, r.documentID); err != nil {
		return fmt.Errorf("removing operation: %w", err)
	}
	return nil
}

func (r *SQLiteOfflineQueueStore) QueueCount(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM offline_operations WHERE document_id = ? AND applied = 0`, r.documentID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting queue: %w", err)
	}
	return n, nil
}

func (r *SQLiteOfflineQueueStore) ClearQueue(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM offline_operations WHERE document_id = ?`, r.documentID); err != nil {
		return fmt.Errorf("clearing queue: %w", err)
	}
	return nil
}

func (r *SQLiteOfflineQueueStore) EstimateStorageSize(ctx context.Context) (int64, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE((SELECT SUM(LENGTH(payload)) FROM offline_operations WHERE document_id = ?), 0)
		     + COALESCE((SELECT SUM(LENGTH(value)) FROM sync_metadata), 0)`, r.documentID)
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("estimating storage size: %w", err)
	}
	return n, nil
}

func (r *SQLiteOfflineQueueStore) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM offline_operations WHERE document_id = ?`, r.documentID); err != nil {
		return fmt.Errorf("clearing operations: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sync_metadata`); err != nil {
		return fmt.Errorf("clearing metadata: %w", err)
	}
	return nil
}

func scanOfflineOperation(s scanner) (offlinequeue.Operation, error) {
	var op offlinequeue.Operation
	var documentID, opType, origin, recordedAt string
	var payload []byte
	err := s.Scan(&op.ID, &documentID, &op.Entity, &op.EntityID, &opType, &payload, &origin, &op.Timestamp, &recordedAt)
	if err != nil {
		return offlinequeue.Operation{}, err
	}
	op.Type = offlinequeue.OpType(opType)
	op.Data = payload
	return op, nil
}
