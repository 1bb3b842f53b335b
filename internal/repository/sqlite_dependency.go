package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO dependencies (predecessor_id, successor_id, type, lag_days) VALUES (?, ?, ?, ?)
		ON CONFLICT(predecessor_id, successor_id) DO UPDATE SET type=excluded.type, lag_days=excluded.lag_days`
	_, err := r.db.ExecContext(ctx, query, d.PredecessorID, d.SuccessorID, string(d.Type), d.LagDays)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Dependency, error) {
	query := `SELECT d.predecessor_id, d.successor_id, d.type, d.lag_days
		FROM dependencies d
		JOIN tasks t ON t.id = d.successor_id
		WHERE t.project_id = ?`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	var out []*domain.Dependency
	for rows.Next() {
		var d domain.Dependency
		var typeStr string
		if err := rows.Scan(&d.PredecessorID, &d.SuccessorID, &typeStr, &d.LagDays); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		d.Type = domain.DependencyType(typeStr)
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, predecessorID, successorID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dependencies WHERE predecessor_id = ? AND successor_id = ?`, predecessorID, successorID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return checkRowsAffected(res)
}
