package domain

import "time"

// TaskAssignment binds a team member to a task with an hours budget.
type TaskAssignment struct {
	TaskID         string
	UserID         string
	AllocatedHours float64
	ActualHours    float64
	StartDate      *time.Time
	Notes          string
}
