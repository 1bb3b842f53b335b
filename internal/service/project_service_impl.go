package service

import (
	"context"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/repository"
)

// projectService is the default ProjectService: a direct pass-through onto
// ProjectRepo. Projects have no cross-aggregate invariants at write time
// (the CPM scheduler validates the graph, not the store), so no unit of
// work is needed here.
type projectService struct {
	repo repository.ProjectRepo
}

// NewProjectService wraps repo as a ProjectService.
func NewProjectService(repo repository.ProjectRepo) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	return s.repo.Create(ctx, p)
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	return s.repo.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
