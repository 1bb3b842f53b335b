package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/domain"
)

const projectColumns = `id, organization_id, name, status, start_date, end_date,
	working_days_mask, default_work_hours, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.OrganizationID, p.Name, string(p.Status),
		p.StartDate.Format(dateLayout), nullableTimeToString(p.EndDate, dateLayout),
		int(p.WorkingDays), p.DefaultWorkHours,
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []*domain.Project
	for rows.Next() {
		p, err := scanProjectRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET organization_id=?, name=?, status=?, start_date=?, end_date=?,
		working_days_mask=?, default_work_hours=?, updated_at=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, query,
		p.OrganizationID, p.Name, string(p.Status),
		p.StartDate.Format(dateLayout), nullableTimeToString(p.EndDate, dateLayout),
		int(p.WorkingDays), p.DefaultWorkHours, p.UpdatedAt.Format(time.RFC3339), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return checkRowsAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	p, err := scanProjectScanner(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

func scanProjectRows(rows *sql.Rows) (*domain.Project, error) {
	return scanProjectScanner(rows)
}

func scanProjectScanner(s scanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr string
	var endDateStr sql.NullString
	var createdAtStr, updatedAtStr, startDateStr string
	var workingDaysMask int

	err := s.Scan(&p.ID, &p.OrganizationID, &p.Name, &statusStr, &startDateStr, &endDateStr,
		&workingDaysMask, &p.DefaultWorkHours, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	p.Status = domain.ProjectStatus(statusStr)
	p.WorkingDays = domain.WeekdaySet(workingDaysMask)
	p.EndDate = parseNullableTime(endDateStr, dateLayout)

	p.StartDate, err = time.Parse(dateLayout, startDateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
