package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/domain"
)

const teamMemberColumns = `id, user_id, display_name, role, employment_type,
	work_hours_per_day, work_days_mask, has_work_days, weekly_capacity_hours, hourly_rate`

// SQLiteTeamMemberRepo implements TeamMemberRepo using a SQLite database.
type SQLiteTeamMemberRepo struct {
	db db.DBTX
}

func NewSQLiteTeamMemberRepo(conn db.DBTX) *SQLiteTeamMemberRepo {
	return &SQLiteTeamMemberRepo{db: conn}
}

func (r *SQLiteTeamMemberRepo) Create(ctx context.Context, m *domain.TeamMember) error {
	query := `INSERT INTO team_members (` + teamMemberColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.DisplayName, m.Role, domain.CoalesceStr(string(m.EmploymentType), string(domain.EmploymentFullTime)),
		m.WorkHoursPerDay, int(m.WorkDays), boolToInt(m.HasWorkDays), m.WeeklyCapacityHours, m.HourlyRate,
	)
	if err != nil {
		return fmt.Errorf("inserting team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamMemberRepo) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+teamMemberColumns+` FROM team_members WHERE id = ?`, id)
	m, err := scanTeamMember(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *SQLiteTeamMemberRepo) GetByUserID(ctx context.Context, userID string) (*domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+teamMemberColumns+` FROM team_members WHERE user_id = ?`, userID)
	m, err := scanTeamMember(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *SQLiteTeamMemberRepo) List(ctx context.Context) ([]*domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+teamMemberColumns+` FROM team_members ORDER BY display_name`)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var out []*domain.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteTeamMemberRepo) Update(ctx context.Context, m *domain.TeamMember) error {
	query := `UPDATE team_members SET display_name=?, role=?, employment_type=?,
		work_hours_per_day=?, work_days_mask=?, has_work_days=?, weekly_capacity_hours=?, hourly_rate=?
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, query,
		m.DisplayName, m.Role, string(m.EmploymentType),
		m.WorkHoursPerDay, int(m.WorkDays), boolToInt(m.HasWorkDays), m.WeeklyCapacityHours, m.HourlyRate, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating team member: %w", err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteTeamMemberRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting team member: %w", err)
	}
	return checkRowsAffected(res)
}

func scanTeamMember(s scanner) (*domain.TeamMember, error) {
	var m domain.TeamMember
	var employmentStr string
	var workDaysMask, hasWorkDaysInt int
	if err := s.Scan(&m.ID, &m.UserID, &m.DisplayName, &m.Role, &employmentStr,
		&m.WorkHoursPerDay, &workDaysMask, &hasWorkDaysInt, &m.WeeklyCapacityHours, &m.HourlyRate); err != nil {
		return nil, err
	}
	m.EmploymentType = domain.EmploymentType(employmentStr)
	m.WorkDays = domain.WeekdaySet(workDaysMask)
	m.HasWorkDays = intToBool(hasWorkDaysInt)
	return &m, nil
}
