package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/kairos/internal/cli"
	"github.com/alexanderramin/kairos/internal/config"
	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/repository"
	"github.com/alexanderramin/kairos/internal/service"
	"github.com/alexanderramin/kairos/internal/transport"
	"github.com/google/uuid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath := os.Getenv("KAIROS_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".kairos", "kairos.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	configPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if envEnabled("KAIROS_LOG_USECASES") {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Wire repositories.
	uow := db.NewSQLiteUnitOfWork(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	teamMemberRepo := repository.NewSQLiteTeamMemberRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	dependencyRepo := repository.NewSQLiteDependencyRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	timeOffRepo := repository.NewSQLiteTimeOffRepo(database)
	calendarExceptionRepo := repository.NewSQLiteCalendarExceptionRepo(database)
	syncSnapshotRepo := repository.NewSQLiteSyncSnapshotRepo(database)

	app := &cli.App{
		Projects:           service.NewProjectService(projectRepo),
		Tasks:              service.NewTaskService(taskRepo),
		Dependencies:       service.NewDependencyService(dependencyRepo),
		Phases:             service.NewPhaseService(phaseRepo, taskRepo),
		TeamMembers:        service.NewTeamMemberService(teamMemberRepo),
		TimeOff:            service.NewTimeOffService(timeOffRepo),
		CalendarExceptions: service.NewCalendarExceptionService(calendarExceptionRepo),
		Assignments:        service.NewAssignmentService(assignmentRepo),
		Scheduling:         service.NewSchedulingService(projectRepo, taskRepo, dependencyRepo, calendarExceptionRepo, teamMemberRepo, timeOffRepo, observer),
		Progress:           service.NewProgressService(taskRepo),

		NewSync: func(documentID string) (*service.SyncSession, error) {
			queueStore := repository.NewSQLiteOfflineQueueStore(database, documentID)
			return service.NewSyncSession(uuid.NewString(), syncSnapshotRepo, documentID, uow, queueStore), nil
		},
		Transport: transport.NewHTTPTransport(http.DefaultClient),
		Config:    cfg,
	}

	return cli.NewRootCmd(app).Execute()
}

func envEnabled(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
