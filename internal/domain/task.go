package domain

import "time"

// Task is the unit of schedulable work. Scheduling outputs (ES/EF/LS/LF/slack/
// is_critical) are filled in by the CPM scheduler and never persisted by the
// task's owner; callers treat a SchedulingResult as the authoritative view.
type Task struct {
	ID        string
	ProjectID string
	PhaseID   *string

	Title       string
	Description string
	Type        TaskType
	Priority    Priority
	Status      TaskStatus

	// Scheduling inputs.
	Duration       int // non-negative working days; 0 for milestones
	SchedulingMode SchedulingMode
	ConstraintType ConstraintType
	ConstraintDate *time.Time
	StartDate      *time.Time // user-pinned, honored only when mode = manual
	EndDate        *time.Time

	// Assignment.
	AssigneeID *string // legacy single assignee

	// Progress.
	PercentComplete  int
	ActualStartDate  *time.Time
	ActualFinishDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Scheduling outputs, populated by scheduler.Schedule.
	ES         time.Time
	EF         time.Time
	LS         time.Time
	LF         time.Time
	Slack      int
	IsCritical bool

	// Non-fatal diagnostics attached by the forward pass.
	ConstraintOverridden bool
	FNLTViolation        bool
}

// IsMilestone reports whether the task is a zero-duration milestone.
func (t Task) IsMilestone() bool {
	return t.Type == TaskTypeMilestone
}
