package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/kairos/internal/calendar"
	"github.com/alexanderramin/kairos/internal/domain"
)

// ComposeCalendar builds the calendar a single assignee works under: their
// own work-day mask if known, else the project's, with the project's
// exceptions and the member's approved time off both excluded.
func ComposeCalendar(projectDays domain.WeekdaySet, projectExceptions []domain.CalendarException, member domain.TeamMember, timeOff []domain.TimeOff) calendar.Calendar {
	workDays := member.EffectiveWorkDays(projectDays)
	excluded := calendar.ExpandExceptions(projectExceptions)
	excluded = append(excluded, calendar.ExpandTimeOff(timeOff)...)
	return calendar.New(workDays, excluded)
}

// ResourceAwareInput extends Input with the team roster and approved time
// off needed to compose a per-assignee calendar for the forward pass.
type ResourceAwareInput struct {
	Input
	ProjectWorkingDays domain.WeekdaySet
	ProjectExceptions  []domain.CalendarException
	Members            []domain.TeamMember
	TimeOff            []domain.TimeOff
}

// ScheduleResourceAware runs the same CPM as Schedule, except each task's
// forward-pass arithmetic uses its assignee's composed calendar rather than
// the plain project calendar. The backward pass deliberately keeps using the
// project calendar throughout — computing a second,
// reverse-direction composed calendar per assignee would require knowing an
// assignee's LS/LF before they're computed, which is circular; using one
// fixed calendar for the whole backward pass avoids that and keeps slack
// comparable across tasks with different assignees.
func ScheduleResourceAware(in ResourceAwareInput) (domain.SchedulingResult, error) {
	if len(in.Tasks) == 0 {
		return domain.SchedulingResult{}, nil
	}

	membersByUser := make(map[string]domain.TeamMember, len(in.Members))
	for _, m := range in.Members {
		membersByUser[m.UserID] = m
	}
	timeOffByMember := make(map[string][]domain.TimeOff, len(in.TimeOff))
	for _, to := range in.TimeOff {
		timeOffByMember[to.TeamMemberID] = append(timeOffByMember[to.TeamMemberID], to)
	}

	g, err := buildGraph(append([]domain.Task(nil), in.Tasks...), in.Dependencies)
	if err != nil {
		return domain.SchedulingResult{}, err
	}

	order, err := topoSort(g)
	if err != nil {
		return domain.SchedulingResult{}, err
	}

	calFor := func(idx int) calendar.Calendar {
		t := g.tasks[idx]
		if t.AssigneeID == nil {
			return in.Calendar
		}
		member, ok := membersByUser[*t.AssigneeID]
		if !ok {
			return in.Calendar
		}
		return ComposeCalendar(in.ProjectWorkingDays, in.ProjectExceptions, member, timeOffByMember[member.ID])
	}

	if err := forwardPass(g, order, in.ProjectStart, calFor); err != nil {
		return domain.SchedulingResult{}, err
	}

	projectEnd := maxEF(g)
	backwardPass(g, order, projectEnd, in.Calendar)
	computeSlack(g, in.Calendar)

	end := projectEnd
	return domain.SchedulingResult{
		Tasks:          g.tasks,
		CriticalPath:   criticalPath(g, order),
		ProjectEndDate: &end,
	}, nil
}

// TimeOffImpact reports how approved time off stretches an estimate for one
// assignee: the working-day duration the estimate alone implies, the inclusive
// finish date that duration reaches on the assignee's mask, and the duration
// after adding back the time-off days lost inside that window. It is
// diagnostic only: nothing here feeds back into ES/EF.
type TimeOffImpact struct {
	BaseDuration      int
	EffectiveDuration int
	InitialEnd        time.Time
	Conflicts         []domain.TimeOff
}

// CalculateDurationWithTimeOff converts an hour estimate into working days on
// the member's mask (ceiling division by their hours per day, defaulting to
// 8), walks that duration out from start to an initial finish date, then
// scans the member's approved time off for ranges overlapping
// [start, initial finish]. Overlap days that would otherwise be working are
// added back onto the duration; each overlapping range is returned so callers
// can surface the conflict.
func CalculateDurationWithTimeOff(estHours float64, start time.Time, member domain.TeamMember, timeOff []domain.TimeOff, workDays domain.WeekdaySet, holidays []domain.CalendarException) TimeOffImpact {
	hoursPerDay := member.WorkHoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = 8
	}
	base := int(math.Ceil(estHours / float64(hoursPerDay)))

	cal := calendar.New(member.EffectiveWorkDays(workDays), calendar.ExpandExceptions(holidays))
	windowStart := calendar.Civil(start)
	windowEnd := cal.AddWorkingDays(start, base)

	lost := 0
	var conflicts []domain.TimeOff
	for _, to := range timeOff {
		if !to.Approved() {
			continue
		}
		toStart, toEnd := calendar.Civil(to.StartDate), calendar.Civil(to.EndDate)
		if toEnd.Before(windowStart) || toStart.After(windowEnd) {
			continue
		}
		conflicts = append(conflicts, to)
		for d := laterOf(toStart, windowStart); !d.After(earlierOf(toEnd, windowEnd)); d = d.AddDate(0, 0, 1) {
			if cal.IsWorkingDay(d) {
				lost++
			}
		}
	}

	return TimeOffImpact{
		BaseDuration:      base,
		EffectiveDuration: base + lost,
		InitialEnd:        windowEnd,
		Conflicts:         conflicts,
	}
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
