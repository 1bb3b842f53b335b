// Package service orchestrates the pure components (calendar,
// scheduler, phasegate, progress) against the relational store (internal/db +
// internal/repository) and the replicated document (internal/syncdoc +
// internal/offlinequeue). Each service is a thin façade: it loads the
// repository ports it needs, delegates the actual computation to the pure
// packages, and persists the result through a unit of work when the
// operation spans more than one write.
package service

import (
	"context"
	"time"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/progress"
)

// ProjectService manages project records.
type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// TaskService manages task records, independent of scheduling.
type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	Get(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// DependencyService manages dependency edges between tasks.
type DependencyService interface {
	Link(ctx context.Context, d *domain.Dependency) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Dependency, error)
	Unlink(ctx context.Context, predecessorID, successorID string) error
}

// SchedulingService runs the CPM scheduler over a project's current data.
type SchedulingService interface {
	// Schedule loads projectID's tasks/dependencies/calendar and runs the
	// plain (non-resource-aware) CPM pass.
	Schedule(ctx context.Context, projectID string) (domain.SchedulingResult, error)
	// ScheduleResourceAware additionally loads team members and approved
	// time off, and composes a per-assignee calendar for the forward pass.
	ScheduleResourceAware(ctx context.Context, projectID string) (domain.SchedulingResult, error)
}

// PhaseService manages phase records and exposes the Phase Gate.
type PhaseService interface {
	Create(ctx context.Context, p *domain.ProjectPhase) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error)
	Update(ctx context.Context, p *domain.ProjectPhase) error
	Delete(ctx context.Context, id string) error
	// Locks computes every phase's PhaseLockInfo from the phase order and
	// current task statuses; it reads, never writes.
	Locks(ctx context.Context, projectID string) ([]domain.PhaseLockInfo, error)
}

// ProgressService reconciles a task's percent_complete/status/actual dates
// under a single injected change and persists the result.
type ProgressService interface {
	Apply(ctx context.Context, taskID string, change progress.Change, today time.Time) (*domain.Task, error)
}

// TeamMemberService manages team member records.
type TeamMemberService interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	Get(ctx context.Context, id string) (*domain.TeamMember, error)
	List(ctx context.Context) ([]*domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// TimeOffService manages time-off requests.
type TimeOffService interface {
	Create(ctx context.Context, t *domain.TimeOff) error
	ListByMember(ctx context.Context, teamMemberID string) ([]*domain.TimeOff, error)
	Update(ctx context.Context, t *domain.TimeOff) error
	Delete(ctx context.Context, id string) error
}

// CalendarExceptionService manages a project's holidays/non-working blocks.
type CalendarExceptionService interface {
	Create(ctx context.Context, e *domain.CalendarException) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.CalendarException, error)
	Delete(ctx context.Context, id string) error
}

// AssignmentService manages task-to-member assignments.
type AssignmentService interface {
	Upsert(ctx context.Context, a *domain.TaskAssignment) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.TaskAssignment, error)
	Delete(ctx context.Context, taskID, userID string) error
}
