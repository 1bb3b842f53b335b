// Package scheduler implements the Critical Path Method: a forward pass
// computing early start/finish, a backward pass computing late start/finish,
// and slack derived from their working-day distance. Dates are the civil
// (timezone-free) values produced by internal/calendar; all arithmetic runs
// through a Calendar so non-contiguous work weeks and calendar exceptions are
// honored uniformly.
package scheduler

import (
	"time"

	"github.com/alexanderramin/kairos/internal/calendar"
	"github.com/alexanderramin/kairos/internal/domain"
)

// Input is the full set of facts needed to schedule a project: its tasks,
// their dependencies, and the calendar governing non-working days.
type Input struct {
	Tasks        []domain.Task
	Dependencies []domain.Dependency
	ProjectStart time.Time
	Calendar     calendar.Calendar
}

// Schedule runs the Critical Path Method over Input and returns a
// SchedulingResult with every task's ES/EF/LS/LF, slack, and criticality
// filled in, plus the project's critical path and computed end date.
//
// An empty task set is not an error: it returns an empty result.
func Schedule(in Input) (domain.SchedulingResult, error) {
	if len(in.Tasks) == 0 {
		return domain.SchedulingResult{}, nil
	}

	g, err := buildGraph(append([]domain.Task(nil), in.Tasks...), in.Dependencies)
	if err != nil {
		return domain.SchedulingResult{}, err
	}

	order, err := topoSort(g)
	if err != nil {
		return domain.SchedulingResult{}, err
	}

	projectCal := func(int) calendar.Calendar { return in.Calendar }
	if err := forwardPass(g, order, in.ProjectStart, projectCal); err != nil {
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

func maxEF(g *graph) time.Time {
	end := g.tasks[0].EF
	for _, t := range g.tasks[1:] {
		if t.EF.After(end) {
			end = t.EF
		}
	}
	return end
}
