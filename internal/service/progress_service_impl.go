package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/progress"
	"github.com/alexanderramin/kairos/internal/repository"
)

type progressService struct {
	tasks repository.TaskRepo
}

// NewProgressService wraps tasks as a ProgressService.
func NewProgressService(tasks repository.TaskRepo) ProgressService {
	return &progressService{tasks: tasks}
}

// Apply loads taskID, reconciles it against change via progress.Apply, and
// persists the result.
func (s *progressService) Apply(ctx context.Context, taskID string, change progress.Change, today time.Time) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("loading task %s: %w", taskID, err)
	}

	updated := progress.Apply(*t, change, today)
	updated.UpdatedAt = today
	if err := s.tasks.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("persisting reconciled task %s: %w", taskID, err)
	}
	return &updated, nil
}
