package service

import (
	"context"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/repository"
)

type teamMemberService struct {
	repo repository.TeamMemberRepo
}

// NewTeamMemberService wraps repo as a TeamMemberService.
func NewTeamMemberService(repo repository.TeamMemberRepo) TeamMemberService {
	return &teamMemberService{repo: repo}
}

func (s *teamMemberService) Create(ctx context.Context, m *domain.TeamMember) error {
	return s.repo.Create(ctx, m)
}

func (s *teamMemberService) Get(ctx context.Context, id string) (*domain.TeamMember, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *teamMemberService) List(ctx context.Context) ([]*domain.TeamMember, error) {
	return s.repo.List(ctx)
}

func (s *teamMemberService) Update(ctx context.Context, m *domain.TeamMember) error {
	return s.repo.Update(ctx, m)
}

func (s *teamMemberService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
