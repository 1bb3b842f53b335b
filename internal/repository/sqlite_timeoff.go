package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/domain"
)

const timeOffColumns = `id, team_member_id, start_date, end_date, type, status`

// SQLiteTimeOffRepo implements TimeOffRepo using a SQLite database.
type SQLiteTimeOffRepo struct {
	db db.DBTX
}

func NewSQLiteTimeOffRepo(conn db.DBTX) *SQLiteTimeOffRepo {
	return &SQLiteTimeOffRepo{db: conn}
}

func (r *SQLiteTimeOffRepo) Create(ctx context.Context, t *domain.TimeOff) error {
	query := `INSERT INTO time_off (` + timeOffColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.TeamMemberID, t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout),
		string(t.Type), string(t.Status))
	if err != nil {
		return fmt.Errorf("inserting time off: %w", err)
	}
	return nil
}

func (r *SQLiteTimeOffRepo) ListByMember(ctx context.Context, teamMemberID string) ([]*domain.TimeOff, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+timeOffColumns+` FROM time_off WHERE team_member_id = ?`, teamMemberID)
	if err != nil {
		return nil, fmt.Errorf("listing time off: %w", err)
	}
	defer rows.Close()
	return scanTimeOffRows(rows)
}

func (r *SQLiteTimeOffRepo) ListByMembers(ctx context.Context, teamMemberIDs []string) ([]*domain.TimeOff, error) {
	if len(teamMemberIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(teamMemberIDs)), ",")
	args := make([]any, len(teamMemberIDs))
	for i, id := range teamMemberIDs {
		args[i] = id
	}
	query := `SELECT ` + timeOffColumns + ` FROM time_off WHERE team_member_id IN (` + placeholders + `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time off for members: %w", err)
	}
	defer rows.Close()
	return scanTimeOffRows(rows)
}

func (r *SQLiteTimeOffRepo) Update(ctx context.Context, t *domain.TimeOff) error {
	query := `UPDATE time_off SET start_date=?, end_date=?, type=?, status=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, query,
		t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout), string(t.Type), string(t.Status), t.ID)
	if err != nil {
		return fmt.Errorf("updating time off: %w", err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteTimeOffRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_off WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time off: %w", err)
	}
	return checkRowsAffected(res)
}

func scanTimeOffRows(rows *sql.Rows) ([]*domain.TimeOff, error) {
	var out []*domain.TimeOff
	for rows.Next() {
		var t domain.TimeOff
		var typeStr, statusStr, startStr, endStr string
		if err := rows.Scan(&t.ID, &t.TeamMemberID, &startStr, &endStr, &typeStr, &statusStr); err != nil {
			return nil, fmt.Errorf("scanning time off: %w", err)
		}
		t.Type = domain.TimeOffType(typeStr)
		t.Status = domain.TimeOffStatus(statusStr)
		var err error
		t.StartDate, err = parseRequiredDate(startStr)
		if err != nil {
			return nil, err
		}
		t.EndDate, err = parseRequiredDate(endStr)
		if err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
