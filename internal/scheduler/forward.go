package scheduler

import (
	"time"

	"github.com/alexanderramin/kairos/internal/calendar"
	"github.com/alexanderramin/kairos/internal/domain"
)

// calendarFunc resolves the calendar to use for a task's own working-day
// arithmetic, indexed by its position in the graph. The plain scheduler
// returns the project calendar for every task; the resource-aware variant
// composes a per-assignee calendar (§4.B.5).
type calendarFunc func(idx int) calendar.Calendar

// forwardPass computes ES/EF for every task in topological order.
func forwardPass(g *graph, order []int, projectStart time.Time, calFor calendarFunc) error {
	for _, idx := range order {
		t := &g.tasks[idx]
		if t.Duration < 0 {
			return &InvalidDurationError{TaskID: t.ID}
		}
		cal := calFor(idx)

		if t.SchedulingMode == domain.SchedulingManual {
			es := projectStart
			if t.StartDate != nil {
				es = *t.StartDate
			}
			t.ES = es
			t.EF = cal.AddWorkingDays(es, t.Duration)
			continue
		}

		floor := cal.NextWorkingDay(projectStart)
		var es time.Time
		preds := g.predecessors[idx]
		if len(preds) == 0 {
			es = floor
		} else {
			es = candidateES(cal, g.tasks[preds[0].otherIdx], t.Duration, preds[0].dep)
			for _, rd := range preds[1:] {
				c := candidateES(cal, g.tasks[rd.otherIdx], t.Duration, rd.dep)
				if c.After(es) {
					es = c
				}
			}
			if es.Before(floor) {
				es = floor
			}
			es = cal.NextWorkingDay(es)
		}

		if (t.ConstraintType == domain.ConstraintMSO || t.ConstraintType == domain.ConstraintSNET) && t.ConstraintDate != nil {
			c := cal.NextWorkingDay(*t.ConstraintDate)
			original := es
			if c.After(es) {
				es = c
			}
			t.ConstraintOverridden = original.After(c)
		}

		t.ES = es
		t.EF = cal.AddWorkingDays(es, t.Duration)

		if t.ConstraintType == domain.ConstraintFNLT && t.ConstraintDate != nil {
			t.FNLTViolation = t.EF.After(*t.ConstraintDate)
		}
	}
	return nil
}

// candidateES computes the candidate early start implied by a single
// predecessor dependency.
func candidateES(cal calendar.Calendar, pred domain.Task, durT int, dep domain.Dependency) time.Time {
	switch dep.Type {
	case domain.DependencySS:
		return cal.ShiftByLag(pred.ES, dep.LagDays)
	case domain.DependencyFF:
		candEF := cal.ShiftByLag(pred.EF, dep.LagDays)
		return cal.SubtractWorkingDays(candEF, durT)
	case domain.DependencySF:
		candEF := cal.ShiftByLag(pred.ES, dep.LagDays)
		return cal.SubtractWorkingDays(candEF, durT)
	default: // FS
		base := pred.EF.AddDate(0, 0, 1)
		return cal.ShiftByLag(base, dep.LagDays)
	}
}
