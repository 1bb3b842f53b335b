package scheduler

import (
	"time"

	"github.com/alexanderramin/kairos/internal/calendar"
	"github.com/alexanderramin/kairos/internal/domain"
)

// backwardPass computes LS/LF for every task in reverse topological order.
// It always uses the project calendar, even for the resource-aware variant
// (see ScheduleResourceAware).
func backwardPass(g *graph, order []int, projectEnd time.Time, cal calendar.Calendar) {
	for i := len(order) - 1; i >= 0; i-- {
		idx := order[i]
		t := &g.tasks[idx]

		if t.SchedulingMode == domain.SchedulingManual {
			t.LS = t.ES
			t.LF = t.EF
			continue
		}

		succs := g.successors[idx]
		var lf time.Time
		if len(succs) == 0 {
			lf = projectEnd
		} else {
			lf = candidateLF(cal, g.tasks[succs[0].otherIdx], t.Duration, succs[0].dep)
			for _, rd := range succs[1:] {
				c := candidateLF(cal, g.tasks[rd.otherIdx], t.Duration, rd.dep)
				if c.Before(lf) {
					lf = c
				}
			}
		}

		t.LF = lf
		t.LS = cal.SubtractWorkingDays(lf, t.Duration)
	}
}

// candidateLF computes the candidate late finish T.lf implied by a single
// successor dependency. It mirrors candidateES: each case solves the same
// forward equation for the predecessor's side, given the successor's already
// computed LS/LF.
func candidateLF(cal calendar.Calendar, succ domain.Task, durT int, dep domain.Dependency) time.Time {
	switch dep.Type {
	case domain.DependencySS:
		es := cal.ShiftByLag(succ.LS, -dep.LagDays)
		return cal.AddWorkingDays(es, durT)
	case domain.DependencyFF:
		return cal.ShiftByLag(succ.LF, -dep.LagDays)
	case domain.DependencySF:
		es := cal.ShiftByLag(succ.LF, -dep.LagDays)
		return cal.AddWorkingDays(es, durT)
	default: // FS
		base := cal.ShiftByLag(succ.LS, -dep.LagDays).AddDate(0, 0, -1)
		return cal.PreviousWorkingDay(base)
	}
}
