package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/repository"
)

type assignmentService struct {
	repo repository.AssignmentRepo
}

// NewAssignmentService wraps repo as an AssignmentService.
func NewAssignmentService(repo repository.AssignmentRepo) AssignmentService {
	return &assignmentService{repo: repo}
}

// Upsert records a task assignment. AllocatedHours > 0 is a domain
// invariant, so it is checked here rather than
// left to a constraint violation deep in the repository.
func (s *assignmentService) Upsert(ctx context.Context, a *domain.TaskAssignment) error {
	if a.AllocatedHours <= 0 {
		return fmt.Errorf("assignment %s/%s: allocated hours must be positive", a.TaskID, a.UserID)
	}
	return s.repo.Upsert(ctx, a)
}

func (s *assignmentService) ListByTask(ctx context.Context, taskID string) ([]*domain.TaskAssignment, error) {
	return s.repo.ListByTask(ctx, taskID)
}

func (s *assignmentService) Delete(ctx context.Context, taskID, userID string) error {
	return s.repo.Delete(ctx, taskID, userID)
}
