package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE since
			// the migration system re-runs all statements on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                  TEXT PRIMARY KEY,
		organization_id     TEXT NOT NULL DEFAULT '',
		name                TEXT NOT NULL,
		status              TEXT NOT NULL DEFAULT 'active'
		                    CHECK(status IN ('active','paused','done','archived')),
		start_date          TEXT NOT NULL,
		end_date            TEXT,
		working_days_mask   INTEGER NOT NULL DEFAULT 31,
		default_work_hours  INTEGER NOT NULL DEFAULT 8,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_phases (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		phase_order INTEGER NOT NULL DEFAULT 0,
		status      TEXT NOT NULL DEFAULT 'pending'
		            CHECK(status IN ('pending','active','completed')),
		start_date  TEXT,
		end_date    TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_phases_project ON project_phases(project_id)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id                    TEXT PRIMARY KEY,
		user_id               TEXT NOT NULL,
		display_name          TEXT NOT NULL,
		role                  TEXT NOT NULL DEFAULT '',
		employment_type       TEXT NOT NULL DEFAULT 'full_time'
		                      CHECK(employment_type IN ('full_time','part_time','contractor')),
		work_hours_per_day    INTEGER NOT NULL DEFAULT 8,
		work_days_mask        INTEGER NOT NULL DEFAULT 0,
		has_work_days         INTEGER NOT NULL DEFAULT 0,
		weekly_capacity_hours REAL NOT NULL DEFAULT 40,
		hourly_rate           REAL NOT NULL DEFAULT 0
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_team_members_user ON team_members(user_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                    TEXT PRIMARY KEY,
		project_id            TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		phase_id              TEXT REFERENCES project_phases(id) ON DELETE SET NULL,
		title                 TEXT NOT NULL,
		description           TEXT NOT NULL DEFAULT '',
		type                  TEXT NOT NULL DEFAULT 'task'
		                      CHECK(type IN ('task','milestone')),
		priority              TEXT NOT NULL DEFAULT 'medium'
		                      CHECK(priority IN ('low','medium','high','critical')),
		status                TEXT NOT NULL DEFAULT 'pending'
		                      CHECK(status IN ('pending','in_progress','done')),
		duration              INTEGER NOT NULL DEFAULT 0,
		scheduling_mode       TEXT NOT NULL DEFAULT 'auto'
		                      CHECK(scheduling_mode IN ('auto','manual')),
		constraint_type       TEXT NOT NULL DEFAULT 'none'
		                      CHECK(constraint_type IN ('none','MSO','SNET','FNLT')),
		constraint_date       TEXT,
		start_date            TEXT,
		end_date              TEXT,
		assignee_id           TEXT,
		percent_complete      INTEGER NOT NULL DEFAULT 0,
		actual_start_date     TEXT,
		actual_finish_date    TEXT,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_phase ON tasks(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		predecessor_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		successor_id   TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		type           TEXT NOT NULL DEFAULT 'FS' CHECK(type IN ('FS','SS','FF','SF')),
		lag_days       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (predecessor_id, successor_id)
	)`,

	`CREATE TABLE IF NOT EXISTS task_assignments (
		task_id         TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		user_id         TEXT NOT NULL,
		allocated_hours REAL NOT NULL DEFAULT 0,
		actual_hours    REAL NOT NULL DEFAULT 0,
		start_date      TEXT,
		notes           TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (task_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS time_off (
		id             TEXT PRIMARY KEY,
		team_member_id TEXT NOT NULL REFERENCES team_members(id) ON DELETE CASCADE,
		start_date     TEXT NOT NULL,
		end_date       TEXT NOT NULL,
		type           TEXT NOT NULL DEFAULT 'vacation'
		               CHECK(type IN ('vacation','sick','personal','other')),
		status         TEXT NOT NULL DEFAULT 'pending'
		               CHECK(status IN ('pending','approved','rejected'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_off_member ON time_off(team_member_id)`,

	`CREATE TABLE IF NOT EXISTS calendar_exceptions (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		end_date   TEXT,
		type       TEXT NOT NULL DEFAULT 'holiday' CHECK(type IN ('holiday','non_working')),
		name       TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_calendar_exceptions_project ON calendar_exceptions(project_id)`,

	// Sync persistence: one opaque CRDT snapshot per document,
	// plus the queue of operations recorded while offline.
	`CREATE TABLE IF NOT EXISTS sync_snapshots (
		document_id TEXT PRIMARY KEY,
		data        BLOB NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS offline_operations (
		id           TEXT PRIMARY KEY,
		document_id  TEXT NOT NULL DEFAULT '',
		collection   TEXT NOT NULL,
		entity_id    TEXT NOT NULL,
		op           TEXT NOT NULL CHECK(op IN ('create','update','delete')),
		payload      BLOB,
		origin       TEXT NOT NULL DEFAULT 'local',
		op_timestamp INTEGER NOT NULL DEFAULT 0,
		recorded_at  TEXT NOT NULL,
		applied      INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_offline_operations_doc ON offline_operations(document_id, applied)`,
	`CREATE INDEX IF NOT EXISTS idx_offline_operations_entity ON offline_operations(collection, entity_id)`,

	// Small key-value sidecar for the offline queue's metadata surface,
	// namespaced so unrelated callers can't collide.
	`CREATE TABLE IF NOT EXISTS sync_metadata (
		namespace TEXT NOT NULL,
		key       TEXT NOT NULL,
		value     BLOB NOT NULL,
		PRIMARY KEY (namespace, key)
	)`,
}
