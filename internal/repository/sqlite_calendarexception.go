package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/domain"
)

const calendarExceptionColumns = `id, project_id, date, end_date, type, name`

// SQLiteCalendarExceptionRepo implements CalendarExceptionRepo using a SQLite database.
type SQLiteCalendarExceptionRepo struct {
	db db.DBTX
}

func NewSQLiteCalendarExceptionRepo(conn db.DBTX) *SQLiteCalendarExceptionRepo {
	return &SQLiteCalendarExceptionRepo{db: conn}
}

func (r *SQLiteCalendarExceptionRepo) Create(ctx context.Context, e *domain.CalendarException) error {
	query := `INSERT INTO calendar_exceptions (` + calendarExceptionColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.ProjectID, e.Date.Format(dateLayout), nullableTimeToString(e.EndDate, dateLayout),
		string(e.Type), e.Name)
	if err != nil {
		return fmt.Errorf("inserting calendar exception: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarExceptionRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.CalendarException, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+calendarExceptionColumns+` FROM calendar_exceptions WHERE project_id = ? ORDER BY date`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing calendar exceptions: %w", err)
	}
	defer rows.Close()

	var out []*domain.CalendarException
	for rows.Next() {
		var e domain.CalendarException
		var typeStr, dateStr string
		var endDateStr sql.NullString
		if err := rows.Scan(&e.ID, &e.ProjectID, &dateStr, &endDateStr, &typeStr, &e.Name); err != nil {
			return nil, fmt.Errorf("scanning calendar exception: %w", err)
		}
		e.Type = domain.CalendarExceptionType(typeStr)
		e.EndDate = parseNullableTime(endDateStr, dateLayout)
		var err error
		e.Date, err = parseRequiredDate(dateStr)
		if err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *SQLiteCalendarExceptionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_exceptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar exception: %w", err)
	}
	return checkRowsAffected(res)
}
