package service

import (
	"context"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/repository"
)

type timeOffService struct {
	repo repository.TimeOffRepo
}

// NewTimeOffService wraps repo as a TimeOffService.
func NewTimeOffService(repo repository.TimeOffRepo) TimeOffService {
	return &timeOffService{repo: repo}
}

func (s *timeOffService) Create(ctx context.Context, t *domain.TimeOff) error {
	return s.repo.Create(ctx, t)
}

func (s *timeOffService) ListByMember(ctx context.Context, teamMemberID string) ([]*domain.TimeOff, error) {
	return s.repo.ListByMember(ctx, teamMemberID)
}

func (s *timeOffService) Update(ctx context.Context, t *domain.TimeOff) error {
	return s.repo.Update(ctx, t)
}

func (s *timeOffService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
