package domain

import "time"

// TimeOff is a date range during which a team member is unavailable. Only
// TimeOffApproved ranges affect scheduling.
type TimeOff struct {
	ID           string
	TeamMemberID string
	StartDate    time.Time
	EndDate      time.Time
	Type         TimeOffType
	Status       TimeOffStatus
}

// Approved reports whether this time-off range should affect scheduling.
func (t TimeOff) Approved() bool {
	return t.Status == TimeOffApproved
}
