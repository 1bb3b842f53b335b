package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/domain"
)

const phaseColumns = `id, project_id, name, phase_order, status, start_date, end_date`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.ProjectPhase) error {
	query := `INSERT INTO project_phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ProjectID, p.Name, p.PhaseOrder, domain.CoalesceStr(string(p.Status), string(domain.PhasePending)),
		nullableTimeToString(p.StartDate, dateLayout), nullableTimeToString(p.EndDate, dateLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting project phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+phaseColumns+` FROM project_phases WHERE project_id = ? ORDER BY phase_order`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var out []*domain.ProjectPhase
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning phase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.ProjectPhase) error {
	query := `UPDATE project_phases SET name=?, phase_order=?, status=?, start_date=?, end_date=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.PhaseOrder, string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout), nullableTimeToString(p.EndDate, dateLayout), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project phase: %w", err)
	}
	return checkRowsAffected(res)
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_phases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project phase: %w", err)
	}
	return checkRowsAffected(res)
}

func scanPhase(s scanner) (*domain.ProjectPhase, error) {
	var p domain.ProjectPhase
	var statusStr string
	var startDateStr, endDateStr sql.NullString
	if err := s.Scan(&p.ID, &p.ProjectID, &p.Name, &p.PhaseOrder, &statusStr, &startDateStr, &endDateStr); err != nil {
		return nil, err
	}
	p.Status = domain.PhaseStatus(statusStr)
	p.StartDate = parseNullableTime(startDateStr, dateLayout)
	p.EndDate = parseNullableTime(endDateStr, dateLayout)
	return &p, nil
}
