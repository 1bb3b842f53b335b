package service

import (
	"context"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/repository"
)

type calendarExceptionService struct {
	repo repository.CalendarExceptionRepo
}

// NewCalendarExceptionService wraps repo as a CalendarExceptionService.
func NewCalendarExceptionService(repo repository.CalendarExceptionRepo) CalendarExceptionService {
	return &calendarExceptionService{repo: repo}
}

func (s *calendarExceptionService) Create(ctx context.Context, e *domain.CalendarException) error {
	return s.repo.Create(ctx, e)
}

func (s *calendarExceptionService) ListByProject(ctx context.Context, projectID string) ([]*domain.CalendarException, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *calendarExceptionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
