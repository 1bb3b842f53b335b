package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

func (r *SQLiteAssignmentRepo) Upsert(ctx context.Context, a *domain.TaskAssignment) error {
	query := `INSERT INTO task_assignments (task_id, user_id, allocated_hours, actual_hours, start_date, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id, user_id) DO UPDATE SET
			allocated_hours=excluded.allocated_hours, actual_hours=excluded.actual_hours,
			start_date=excluded.start_date, notes=excluded.notes`
	_, err := r.db.ExecContext(ctx, query,
		a.TaskID, a.UserID, a.AllocatedHours, a.ActualHours, nullableTimeToString(a.StartDate, dateLayout), a.Notes)
	if err != nil {
		return fmt.Errorf("upserting task assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.TaskAssignment, error) {
	query := `SELECT task_id, user_id, allocated_hours, actual_hours, start_date, notes
		FROM task_assignments WHERE task_id = ?`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing task assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.TaskAssignment
	for rows.Next() {
		var a domain.TaskAssignment
		var startDateStr sql.NullString
		if err := rows.Scan(&a.TaskID, &a.UserID, &a.AllocatedHours, &a.ActualHours, &startDateStr, &a.Notes); err != nil {
			return nil, fmt.Errorf("scanning task assignment: %w", err)
		}
		a.StartDate = parseNullableTime(startDateStr, dateLayout)
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, taskID, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_assignments WHERE task_id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return fmt.Errorf("deleting task assignment: %w", err)
	}
	return checkRowsAffected(res)
}
