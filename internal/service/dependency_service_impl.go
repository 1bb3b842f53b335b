package service

import (
	"context"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/repository"
)

type dependencyService struct {
	repo repository.DependencyRepo
}

// NewDependencyService wraps repo as a DependencyService.
func NewDependencyService(repo repository.DependencyRepo) DependencyService {
	return &dependencyService{repo: repo}
}

// Link records a dependency edge. Duplicate (predecessor, successor) pairs
// collapse to the most recently asserted (type, lag); the repository's
// INSERT ... ON CONFLICT upsert enforces that, not this layer.
func (s *dependencyService) Link(ctx context.Context, d *domain.Dependency) error {
	return s.repo.Create(ctx, d)
}

func (s *dependencyService) ListByProject(ctx context.Context, projectID string) ([]*domain.Dependency, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *dependencyService) Unlink(ctx context.Context, predecessorID, successorID string) error {
	return s.repo.Delete(ctx, predecessorID, successorID)
}
