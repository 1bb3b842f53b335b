package testutil

import (
	"time"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/google/uuid"
)

// Project options.
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) { p.Status = s }
}

func WithWorkingDays(d domain.WeekdaySet) ProjectOption {
	return func(p *domain.Project) { p.WorkingDays = d }
}

func WithEndDate(t time.Time) ProjectOption {
	return func(p *domain.Project) { p.EndDate = &t }
}

// NewTestProject builds a project with the stock defaults
// (Sun-Thu working days, 8 hour days).
func NewTestProject(name string, startDate time.Time, opts ...ProjectOption) *domain.Project {
	p := domain.NewProject(uuid.NewString(), name, startDate)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options.
type TaskOption func(*domain.Task)

func WithPhase(phaseID string) TaskOption {
	return func(t *domain.Task) { t.PhaseID = &phaseID }
}

func WithTaskType(tt domain.TaskType) TaskOption {
	return func(t *domain.Task) { t.Type = tt }
}

func WithSchedulingMode(m domain.SchedulingMode) TaskOption {
	return func(t *domain.Task) { t.SchedulingMode = m }
}

func WithConstraint(ct domain.ConstraintType, date time.Time) TaskOption {
	return func(t *domain.Task) {
		t.ConstraintType = ct
		t.ConstraintDate = &date
	}
}

func WithManualStart(start time.Time) TaskOption {
	return func(t *domain.Task) {
		t.SchedulingMode = domain.SchedulingManual
		t.StartDate = &start
	}
}

func WithAssignee(userID string) TaskOption {
	return func(t *domain.Task) { t.AssigneeID = &userID }
}

func WithPercentComplete(pct int) TaskOption {
	return func(t *domain.Task) { t.PercentComplete = pct }
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

// NewTestTask builds a task with a positive duration and no scheduling
// outputs populated (those come only from scheduler.Schedule).
func NewTestTask(projectID, title string, durationDays int, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		Title:          title,
		Type:           domain.TaskTypeTask,
		Priority:       domain.PriorityMedium,
		Status:         domain.TaskPending,
		Duration:       durationDays,
		SchedulingMode: domain.SchedulingAuto,
		ConstraintType: domain.ConstraintNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestMilestone builds a zero-duration milestone task.
func NewTestMilestone(projectID, title string, opts ...TaskOption) *domain.Task {
	opts = append([]TaskOption{func(t *domain.Task) { t.Type = domain.TaskTypeMilestone }}, opts...)
	return NewTestTask(projectID, title, 0, opts...)
}

// NewTestDependency links predecessor to successor with the given kind and
// lag (FS/0 by default via the zero value of DependencyType would be wrong,
// so kind is always explicit here).
func NewTestDependency(predecessorID, successorID string, kind domain.DependencyType, lagDays int) *domain.Dependency {
	return &domain.Dependency{
		PredecessorID: predecessorID,
		SuccessorID:   successorID,
		Type:          kind,
		LagDays:       lagDays,
	}
}

// Phase options.
type PhaseOption func(*domain.ProjectPhase)

func WithPhaseStatus(s domain.PhaseStatus) PhaseOption {
	return func(p *domain.ProjectPhase) { p.Status = s }
}

func NewTestPhase(projectID, name string, order int, opts ...PhaseOption) *domain.ProjectPhase {
	p := &domain.ProjectPhase{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		Name:       name,
		PhaseOrder: order,
		Status:     domain.PhasePending,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TeamMember options.
type MemberOption func(*domain.TeamMember)

func WithMemberWorkDays(d domain.WeekdaySet) MemberOption {
	return func(m *domain.TeamMember) {
		m.WorkDays = d
		m.HasWorkDays = true
	}
}

func WithWorkHoursPerDay(h int) MemberOption {
	return func(m *domain.TeamMember) { m.WorkHoursPerDay = h }
}

func NewTestMember(displayName string, opts ...MemberOption) *domain.TeamMember {
	m := &domain.TeamMember{
		ID:              uuid.NewString(),
		UserID:          uuid.NewString(),
		DisplayName:     displayName,
		EmploymentType:  domain.EmploymentFullTime,
		WorkHoursPerDay: 8,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTestTimeOff builds an approved time-off range by default.
func NewTestTimeOff(memberID string, start, end time.Time, opts ...func(*domain.TimeOff)) *domain.TimeOff {
	t := &domain.TimeOff{
		ID:           uuid.NewString(),
		TeamMemberID: memberID,
		StartDate:    start,
		EndDate:      end,
		Type:         domain.TimeOffVacation,
		Status:       domain.TimeOffApproved,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestCalendarException builds a single-day holiday exception.
func NewTestCalendarException(projectID string, date time.Time, name string) *domain.CalendarException {
	return &domain.CalendarException{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Date:      date,
		Type:      domain.ExceptionHoliday,
		Name:      name,
	}
}

// NewTestAssignment builds an assignment with a positive hours budget.
func NewTestAssignment(taskID, userID string, allocatedHours float64) *domain.TaskAssignment {
	return &domain.TaskAssignment{
		TaskID:         taskID,
		UserID:         userID,
		AllocatedHours: allocatedHours,
	}
}
