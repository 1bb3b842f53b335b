// Package calendar implements the scheduler's working-day arithmetic: a weekly
// work-day mask plus a set of date-range exceptions (holidays, non-working
// blocks, approved time off). All operations are pure and use no timezone
// arithmetic — every time.Time is normalized to a civil (UTC, midnight) date
// before any comparison, per the "no timezone" design note.
package calendar

import (
	"time"

	"github.com/alexanderramin/kairos/internal/domain"
)

// DateLayout is the canonical day-precision serialization, matching the
// repository layer's convention.
const DateLayout = "2006-01-02"

// Calendar is a working-day mask plus a set of excluded dates.
type Calendar struct {
	WorkDays   domain.WeekdaySet
	exceptions map[civilDate]struct{}
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

// Civil truncates t to a UTC, time-of-day-free date. All calendar math is
// done on these civil dates, never on wall-clock time, so callers can pass
// times from any timezone without skewing results.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toCivilDate(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

// New builds a Calendar from a working-day mask and a flat list of excluded
// dates (already expanded from CalendarException/TimeOff ranges).
func New(workDays domain.WeekdaySet, excludedDates []time.Time) Calendar {
	set := make(map[civilDate]struct{}, len(excludedDates))
	for _, d := range excludedDates {
		set[toCivilDate(d)] = struct{}{}
	}
	return Calendar{WorkDays: workDays, exceptions: set}
}

// ExpandExceptions turns a set of CalendarException rows into the flat list
// of excluded dates New expects.
func ExpandExceptions(exceptions []domain.CalendarException) []time.Time {
	var out []time.Time
	for _, ex := range exceptions {
		start := Civil(ex.Date)
		end := start
		if ex.EndDate != nil {
			end = Civil(*ex.EndDate)
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			out = append(out, d)
		}
	}
	return out
}

// ExpandTimeOff turns approved TimeOff rows into the flat list of excluded
// dates New expects. Pending and rejected rows are ignored; only approved
// time off affects scheduling.
func ExpandTimeOff(timeOff []domain.TimeOff) []time.Time {
	var out []time.Time
	for _, to := range timeOff {
		if !to.Approved() {
			continue
		}
		start := Civil(to.StartDate)
		end := Civil(to.EndDate)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			out = append(out, d)
		}
	}
	return out
}

// IsWorkingDay reports whether date is working: its weekday is in the mask
// and it is not excluded.
func (c Calendar) IsWorkingDay(date time.Time) bool {
	cd := toCivilDate(date)
	if _, excluded := c.exceptions[cd]; excluded {
		return false
	}
	return c.WorkDays.Contains(date.Weekday())
}

// NextWorkingDay advances forward one calendar day at a time until a working
// day is found. If date is already working, it is returned unchanged.
func (c Calendar) NextWorkingDay(date time.Time) time.Time {
	d := Civil(date)
	for !c.IsWorkingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// PreviousWorkingDay is the symmetric backward search.
func (c Calendar) PreviousWorkingDay(date time.Time) time.Time {
	d := Civil(date)
	for !c.IsWorkingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// AddWorkingDays returns the inclusive finish date of a task of length n
// working days starting on start. n must be >= 0.
//
// start is first snapped forward to the nearest working day. n=0 or n=1
// both return that snapped start (a duration of 1 means the task completes
// on its start day). For n>1, calendar days are walked one at a time,
// incrementing a counter only on working days, until the counter reaches
// n-1; the day the counter reaches n-1 is the result.
func (c Calendar) AddWorkingDays(start time.Time, n int) time.Time {
	d := c.NextWorkingDay(start)
	if n <= 1 {
		return d
	}
	counter := 0
	for counter < n-1 {
		d = d.AddDate(0, 0, 1)
		if c.IsWorkingDay(d) {
			counter++
		}
	}
	return c.NextWorkingDay(d)
}

// SubtractWorkingDays is the backward symmetric operation: it returns the
// start date of a task of length n working days that finishes (inclusive)
// on end.
func (c Calendar) SubtractWorkingDays(end time.Time, n int) time.Time {
	d := c.PreviousWorkingDay(end)
	if n <= 1 {
		return d
	}
	counter := 0
	for counter < n-1 {
		d = d.AddDate(0, 0, -1)
		if c.IsWorkingDay(d) {
			counter++
		}
	}
	return c.PreviousWorkingDay(d)
}

// ShiftByLag advances base by a signed lag measured in working days, snapping
// the result to a working day. A lag of 0 returns the next working day at or
// after base (same-day alignment); positive lag advances further forward,
// negative lag (a "lead") moves backward. This is the shared primitive behind
// every dependency kind's candidate-date formula in the CPM forward/backward
// passes — it reduces to AddWorkingDays/SubtractWorkingDays with the usual
// "duration 1 == no movement" convention applied to the lag itself.
func (c Calendar) ShiftByLag(base time.Time, lag int) time.Time {
	if lag >= 0 {
		return c.AddWorkingDays(base, lag+1)
	}
	return c.SubtractWorkingDays(base, -lag+1)
}

// WorkingDaysBetween counts working days walked day-by-day from start to end:
// start itself is not counted, end is counted when it is a working day; see
// the calendar identity law: WorkingDaysBetween(d, AddWorkingDays(d, n))+1 == n.
// The result is signed: negative when end is before start.
func (c Calendar) WorkingDaysBetween(start, end time.Time) int {
	s, e := Civil(start), Civil(end)
	if s.Equal(e) {
		return 0
	}
	if e.After(s) {
		count := 0
		for d := s.AddDate(0, 0, 1); !d.After(e); d = d.AddDate(0, 0, 1) {
			if c.IsWorkingDay(d) {
				count++
			}
		}
		return count
	}
	count := 0
	for d := s.AddDate(0, 0, -1); !d.Before(e); d = d.AddDate(0, 0, -1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return -count
}
