package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/kairos/internal/repository"
	"github.com/alexanderramin/kairos/internal/testutil"
)

type testRepos struct {
	conn       *sql.DB
	projects   repository.ProjectRepo
	phases     repository.PhaseRepo
	members    repository.TeamMemberRepo
	tasks      repository.TaskRepo
	deps       repository.DependencyRepo
	timeOff    repository.TimeOffRepo
	exceptions repository.CalendarExceptionRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	conn := testutil.NewTestDB(t)
	return testRepos{
		conn:       conn,
		projects:   repository.NewSQLiteProjectRepo(conn),
		phases:     repository.NewSQLitePhaseRepo(conn),
		members:    repository.NewSQLiteTeamMemberRepo(conn),
		tasks:      repository.NewSQLiteTaskRepo(conn),
		deps:       repository.NewSQLiteDependencyRepo(conn),
		timeOff:    repository.NewSQLiteTimeOffRepo(conn),
		exceptions: repository.NewSQLiteCalendarExceptionRepo(conn),
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d.UTC()
}
