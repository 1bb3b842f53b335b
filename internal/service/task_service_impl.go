package service

import (
	"context"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/repository"
)

type taskService struct {
	repo repository.TaskRepo
}

// NewTaskService wraps repo as a TaskService.
func NewTaskService(repo repository.TaskRepo) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	return s.repo.Create(ctx, t)
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	return s.repo.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
