package scheduler

import (
	"testing"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleResourceAware_TimeOffDelaysAssignee(t *testing.T) {
	assignee := "u1"
	a := autoTask("A", 3)
	a.AssigneeID = &assignee

	member := domain.TeamMember{ID: "m1", UserID: assignee, HasWorkDays: false}
	timeOff := []domain.TimeOff{{
		TeamMemberID: "m1",
		StartDate:    date("2026-01-18"),
		EndDate:      date("2026-01-19"),
		Status:       domain.TimeOffApproved,
	}}

	withTimeOff, err := ScheduleResourceAware(ResourceAwareInput{
		Input: Input{
			Tasks:        []domain.Task{a},
			ProjectStart: date("2026-01-18"),
			Calendar:     sunThu(),
		},
		ProjectWorkingDays: domain.DefaultWorkingDays,
		Members:            []domain.TeamMember{member},
		TimeOff:            timeOff,
	})
	require.NoError(t, err)

	without, err := Schedule(Input{
		Tasks:        []domain.Task{a},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.NoError(t, err)

	assert.True(t, withTimeOff.Tasks[0].EF.After(without.Tasks[0].EF))
}

func TestScheduleResourceAware_FallsBackToProjectCalendar(t *testing.T) {
	a := autoTask("A", 3)
	result, err := ScheduleResourceAware(ResourceAwareInput{
		Input: Input{
			Tasks:        []domain.Task{a},
			ProjectStart: date("2026-01-18"),
			Calendar:     sunThu(),
		},
		ProjectWorkingDays: domain.DefaultWorkingDays,
	})
	require.NoError(t, err)
	assert.Equal(t, date("2026-01-18"), result.Tasks[0].ES)
}

func TestCalculateDurationWithTimeOff(t *testing.T) {
	member := domain.TeamMember{ID: "m1", WorkHoursPerDay: 8}
	timeOff := []domain.TimeOff{{
		ID:           "to1",
		TeamMemberID: "m1",
		StartDate:    date("2026-01-20"),
		EndDate:      date("2026-01-21"),
		Status:       domain.TimeOffApproved,
	}}

	// 40 estimated hours at 8h/day is 5 working days: Sun 18 .. Thu 22.
	// The approved range covers Tue 20 and Wed 21, both working, so the
	// effective duration stretches by two days.
	impact := CalculateDurationWithTimeOff(40, date("2026-01-18"), member, timeOff, domain.DefaultWorkingDays, nil)
	assert.Equal(t, 5, impact.BaseDuration)
	assert.Equal(t, date("2026-01-22"), impact.InitialEnd)
	assert.Equal(t, 7, impact.EffectiveDuration)
	require.Len(t, impact.Conflicts, 1)
	assert.Equal(t, "to1", impact.Conflicts[0].ID)
}

func TestCalculateDurationWithTimeOff_IgnoresUnapprovedAndOutOfWindow(t *testing.T) {
	member := domain.TeamMember{ID: "m1", WorkHoursPerDay: 8}
	timeOff := []domain.TimeOff{
		{ID: "pending", TeamMemberID: "m1", StartDate: date("2026-01-19"), EndDate: date("2026-01-19"), Status: domain.TimeOffPending},
		{ID: "later", TeamMemberID: "m1", StartDate: date("2026-02-01"), EndDate: date("2026-02-03"), Status: domain.TimeOffApproved},
	}

	impact := CalculateDurationWithTimeOff(16, date("2026-01-18"), member, timeOff, domain.DefaultWorkingDays, nil)
	assert.Equal(t, 2, impact.BaseDuration)
	assert.Equal(t, 2, impact.EffectiveDuration)
	assert.Empty(t, impact.Conflicts)
}
