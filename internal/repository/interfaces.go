package repository

import (
	"context"

	"github.com/alexanderramin/kairos/internal/domain"
)

// ProjectRepo persists projects.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// PhaseRepo persists project phases.
type PhaseRepo interface {
	Create(ctx context.Context, p *domain.ProjectPhase) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error)
	Update(ctx context.Context, p *domain.ProjectPhase) error
	Delete(ctx context.Context, id string) error
}

// TeamMemberRepo persists team members.
type TeamMemberRepo interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	GetByUserID(ctx context.Context, userID string) (*domain.TeamMember, error)
	List(ctx context.Context) ([]*domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// TaskRepo persists tasks.
type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// DependencyRepo persists dependency edges.
type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Dependency, error)
	Delete(ctx context.Context, predecessorID, successorID string) error
}

// AssignmentRepo persists task-to-member assignments.
type AssignmentRepo interface {
	Upsert(ctx context.Context, a *domain.TaskAssignment) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.TaskAssignment, error)
	Delete(ctx context.Context, taskID, userID string) error
}

// TimeOffRepo persists approved/pending time off.
type TimeOffRepo interface {
	Create(ctx context.Context, t *domain.TimeOff) error
	ListByMember(ctx context.Context, teamMemberID string) ([]*domain.TimeOff, error)
	ListByMembers(ctx context.Context, teamMemberIDs []string) ([]*domain.TimeOff, error)
	Update(ctx context.Context, t *domain.TimeOff) error
	Delete(ctx context.Context, id string) error
}

// CalendarExceptionRepo persists project holidays and non-working blocks.
type CalendarExceptionRepo interface {
	Create(ctx context.Context, e *domain.CalendarException) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.CalendarException, error)
	Delete(ctx context.Context, id string) error
}
