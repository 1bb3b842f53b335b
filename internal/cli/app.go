// Package cli exposes the scheduler's operations as a cobra command tree: one
// subcommand per component (project/task/dependency/phase/schedule/progress/
// sync). It is deliberately thin — each RunE loads a service, calls it, and
// renders the result — but it is the concrete entrypoint that exercises every
// component end to end.
package cli

import (
	"github.com/alexanderramin/kairos/internal/config"
	"github.com/alexanderramin/kairos/internal/service"
	"github.com/alexanderramin/kairos/internal/syncdoc"
)

// App holds every service the CLI dispatches to.
type App struct {
	Projects           service.ProjectService
	Tasks              service.TaskService
	Dependencies       service.DependencyService
	Phases             service.PhaseService
	TeamMembers        service.TeamMemberService
	TimeOff            service.TimeOffService
	CalendarExceptions service.CalendarExceptionService
	Assignments        service.AssignmentService
	Scheduling         service.SchedulingService
	Progress           service.ProgressService

	// NewSync opens a fresh SyncSession for a document id, lazily (a
	// session holds a live CRDT document and should not be shared across
	// unrelated commands).
	NewSync func(documentID string) (*service.SyncSession, error)

	// Transport is the realtime transport "sync watch" connects through.
	// It is nil in configurations that only exercise offline/queued sync.
	Transport syncdoc.Transport

	// Config holds kairos.toml's project/sync defaults.
	Config config.Config
}
