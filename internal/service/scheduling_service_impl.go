package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kairos/internal/calendar"
	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/repository"
	"github.com/alexanderramin/kairos/internal/scheduler"
)

// schedulingService loads a project's tasks, dependencies, and calendar
// data from the relational store and runs the CPM scheduler (internal/scheduler)
// over them. It persists nothing: the schedule is recomputed on demand and
// the result is the caller's to render or store.
type schedulingService struct {
	projects   repository.ProjectRepo
	tasks      repository.TaskRepo
	deps       repository.DependencyRepo
	exceptions repository.CalendarExceptionRepo
	members    repository.TeamMemberRepo
	timeOff    repository.TimeOffRepo
	observer   UseCaseObserver
}

// NewSchedulingService wires the repositories needed to assemble a
// scheduler.Input (or scheduler.ResourceAwareInput) for a project.
func NewSchedulingService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	deps repository.DependencyRepo,
	exceptions repository.CalendarExceptionRepo,
	members repository.TeamMemberRepo,
	timeOff repository.TimeOffRepo,
	observers ...UseCaseObserver,
) SchedulingService {
	return &schedulingService{
		projects:   projects,
		tasks:      tasks,
		deps:       deps,
		exceptions: exceptions,
		members:    members,
		timeOff:    timeOff,
		observer:   useCaseObserverOrNoop(observers),
	}
}

type loadedCore struct {
	project    *domain.Project
	tasks      []domain.Task
	deps       []domain.Dependency
	exceptions []domain.CalendarException
	calendar   calendar.Calendar
}

func (s *schedulingService) loadCore(ctx context.Context, projectID string) (loadedCore, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return loadedCore{}, fmt.Errorf("loading project %s: %w", projectID, err)
	}

	taskPtrs, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return loadedCore{}, fmt.Errorf("listing tasks: %w", err)
	}
	tasks := make([]domain.Task, len(taskPtrs))
	for i, t := range taskPtrs {
		tasks[i] = *t
	}

	depPtrs, err := s.deps.ListByProject(ctx, projectID)
	if err != nil {
		return loadedCore{}, fmt.Errorf("listing dependencies: %w", err)
	}
	deps := make([]domain.Dependency, len(depPtrs))
	for i, d := range depPtrs {
		deps[i] = *d
	}

	excPtrs, err := s.exceptions.ListByProject(ctx, projectID)
	if err != nil {
		return loadedCore{}, fmt.Errorf("listing calendar exceptions: %w", err)
	}
	exceptions := make([]domain.CalendarException, len(excPtrs))
	for i, e := range excPtrs {
		exceptions[i] = *e
	}

	cal := calendar.New(project.WorkingDays, calendar.ExpandExceptions(exceptions))
	return loadedCore{project: project, tasks: tasks, deps: deps, exceptions: exceptions, calendar: cal}, nil
}

// Schedule runs the plain CPM pass.
func (s *schedulingService) Schedule(ctx context.Context, projectID string) (result domain.SchedulingResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project_id": projectID},
		})
	}()

	core, err := s.loadCore(ctx, projectID)
	if err != nil {
		return domain.SchedulingResult{}, err
	}
	return scheduler.Schedule(scheduler.Input{
		Tasks:        core.tasks,
		Dependencies: core.deps,
		ProjectStart: core.project.StartDate,
		Calendar:     core.calendar,
	})
}

// ScheduleResourceAware additionally loads the team roster and approved
// time off so the forward pass can compose a per-assignee calendar.
func (s *schedulingService) ScheduleResourceAware(ctx context.Context, projectID string) (result domain.SchedulingResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule-resource-aware",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project_id": projectID},
		})
	}()

	core, err := s.loadCore(ctx, projectID)
	if err != nil {
		return domain.SchedulingResult{}, err
	}

	memberPtrs, err := s.members.List(ctx)
	if err != nil {
		return domain.SchedulingResult{}, fmt.Errorf("listing team members: %w", err)
	}
	members := make([]domain.TeamMember, len(memberPtrs))
	memberIDs := make([]string, len(memberPtrs))
	for i, m := range memberPtrs {
		members[i] = *m
		memberIDs[i] = m.ID
	}

	timeOffPtrs, err := s.timeOff.ListByMembers(ctx, memberIDs)
	if err != nil {
		return domain.SchedulingResult{}, fmt.Errorf("listing time off: %w", err)
	}
	var approved []domain.TimeOff
	for _, t := range timeOffPtrs {
		if t.Approved() {
			approved = append(approved, *t)
		}
	}

	return scheduler.ScheduleResourceAware(scheduler.ResourceAwareInput{
		Input: scheduler.Input{
			Tasks:        core.tasks,
			Dependencies: core.deps,
			ProjectStart: core.project.StartDate,
			Calendar:     core.calendar,
		},
		ProjectWorkingDays: core.project.WorkingDays,
		ProjectExceptions:  core.exceptions,
		Members:            members,
		TimeOff:            approved,
	})
}
