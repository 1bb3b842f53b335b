package service

import (
	"context"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/phasegate"
	"github.com/alexanderramin/kairos/internal/repository"
)

type phaseService struct {
	phases repository.PhaseRepo
	tasks  repository.TaskRepo
}

// NewPhaseService wraps phases and tasks as a PhaseService. tasks is needed
// because Locks reads task completion, not just phase records.
func NewPhaseService(phases repository.PhaseRepo, tasks repository.TaskRepo) PhaseService {
	return &phaseService{phases: phases, tasks: tasks}
}

func (s *phaseService) Create(ctx context.Context, p *domain.ProjectPhase) error {
	return s.phases.Create(ctx, p)
}

func (s *phaseService) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error) {
	return s.phases.ListByProject(ctx, projectID)
}

func (s *phaseService) Update(ctx context.Context, p *domain.ProjectPhase) error {
	return s.phases.Update(ctx, p)
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	return s.phases.Delete(ctx, id)
}

// Locks computes every phase's lock state from the phase order and the
// project's current tasks. It is read-only: phase lock state is advisory
// and never written back to the store.
func (s *phaseService) Locks(ctx context.Context, projectID string) ([]domain.PhaseLockInfo, error) {
	phases, err := s.phases.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	phaseVals := make([]domain.ProjectPhase, len(phases))
	for i, p := range phases {
		phaseVals[i] = *p
	}
	taskVals := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		taskVals[i] = *t
	}

	return phasegate.Compute(phaseVals, taskVals), nil
}
