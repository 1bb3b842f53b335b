package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/domain"
)

const taskColumns = `id, project_id, phase_id, title, description, type, priority, status,
	duration, scheduling_mode, constraint_type, constraint_date, start_date, end_date,
	assignee_id, percent_complete, actual_start_date, actual_finish_date, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	// Unset enum fields are stored as the schema's column defaults.
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.ProjectID, t.PhaseID, t.Title, t.Description,
		domain.CoalesceStr(string(t.Type), string(domain.TaskTypeTask)),
		domain.CoalesceStr(string(t.Priority), string(domain.PriorityMedium)),
		domain.CoalesceStr(string(t.Status), string(domain.TaskPending)),
		t.Duration,
		domain.CoalesceStr(string(t.SchedulingMode), string(domain.SchedulingAuto)),
		domain.CoalesceStr(string(t.ConstraintType), string(domain.ConstraintNone)),
		nullableTimeToString(t.ConstraintDate, dateLayout),
		nullableTimeToString(t.StartDate, dateLayout), nullableTimeToString(t.EndDate, dateLayout),
		t.AssigneeID, t.PercentComplete,
		nullableTimeToString(t.ActualStartDate, dateLayout), nullableTimeToString(t.ActualFinishDate, dateLayout),
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET phase_id=?, title=?, description=?, type=?, priority=?, status=?,
		duration=?, scheduling_mode=?, constraint_type=?, constraint_date=?, start_date=?, end_date=?,
		assignee_id=?, percent_complete=?, actual_start_date=?, actual_finish_date=?, updated_at=?
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, query,
		t.PhaseID, t.Title, t.Description, string(t.Type), string(t.Priority), string(t.Status),
		t.Duration, string(t.SchedulingMode), string(t.ConstraintType),
		nullableTimeToString(t.ConstraintDate, dateLayout),
		nullableTimeToString(t.StartDate, dateLayout), nullableTimeToString(t.EndDate, dateLayout),
		t.AssigneeID, t.PercentComplete,
		nullableTimeToString(t.ActualStartDate, dateLayout), nullableTimeToString(t.ActualFinishDate, dateLayout),
		t.UpdatedAt.Format(time.RFC3339), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return checkRowsAffected(res)
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var typeStr, priorityStr, statusStr, modeStr, constraintStr string
	var constraintDateStr, startDateStr, endDateStr, actualStartStr, actualFinishStr sql.NullString
	var phaseID, assigneeID sql.NullString
	var createdAtStr, updatedAtStr string

	err := s.Scan(&t.ID, &t.ProjectID, &phaseID, &t.Title, &t.Description, &typeStr, &priorityStr, &statusStr,
		&t.Duration, &modeStr, &constraintStr, &constraintDateStr, &startDateStr, &endDateStr,
		&assigneeID, &t.PercentComplete, &actualStartStr, &actualFinishStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}
	if phaseID.Valid {
		v := phaseID.String
		t.PhaseID = &v
	}

	t.Type = domain.TaskType(typeStr)
	t.Priority = domain.Priority(priorityStr)
	t.Status = domain.TaskStatus(statusStr)
	t.SchedulingMode = domain.SchedulingMode(modeStr)
	t.ConstraintType = domain.ConstraintType(constraintStr)
	t.ConstraintDate = parseNullableTime(constraintDateStr, dateLayout)
	t.StartDate = parseNullableTime(startDateStr, dateLayout)
	t.EndDate = parseNullableTime(endDateStr, dateLayout)
	t.ActualStartDate = parseNullableTime(actualStartStr, dateLayout)
	t.ActualFinishDate = parseNullableTime(actualFinishStr, dateLayout)
	if assigneeID.Valid {
		v := assigneeID.String
		t.AssigneeID = &v
	}

	t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
