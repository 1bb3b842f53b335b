package domain

// TeamMember is a resource that can be assigned to tasks. WorkDays defaults to
// the project's working days when unset (see scheduler.ComposeCalendar).
type TeamMember struct {
	ID                  string
	UserID              string
	DisplayName         string
	Role                string
	EmploymentType      EmploymentType
	WorkHoursPerDay     int
	WorkDays            WeekdaySet
	HasWorkDays         bool // distinguishes "unset" from an empty (all days off) set
	WeeklyCapacityHours float64
	HourlyRate          float64
}

// EffectiveWorkDays returns the member's own work-day mask if set, else the
// project's working days.
func (m TeamMember) EffectiveWorkDays(projectDays WeekdaySet) WeekdaySet {
	if m.HasWorkDays {
		return m.WorkDays
	}
	return projectDays
}
