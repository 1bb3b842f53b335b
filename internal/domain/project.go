package domain

import "time"

// Project is the CPM origin: StartDate anchors the forward pass. EndDate is
// stored with the project but is not read by the scheduler: a terminal
// task's late finish is the latest early finish in the project.
type Project struct {
	ID             string
	OrganizationID string
	Name           string
	Status         ProjectStatus

	StartDate time.Time
	EndDate   *time.Time

	WorkingDays      WeekdaySet
	DefaultWorkHours int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProject fills in the defaults: Sun-Thu working days, 8hr days.
func NewProject(id, name string, startDate time.Time) *Project {
	now := startDate
	return &Project{
		ID:               id,
		Name:             name,
		Status:           ProjectActive,
		StartDate:        startDate,
		WorkingDays:      DefaultWorkingDays,
		DefaultWorkHours: 8,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
