// Package progress maintains the invariant between a task's percent_complete,
// status, and actual start/finish dates under MS-Project conventions.
package progress

import (
	"time"

	"github.com/alexanderramin/kairos/internal/domain"
)

// Change is a single incoming edit: exactly one of Percent or Status should
// be set. Setting both is treated as a percent-driven change.
type Change struct {
	Percent *int
	Status  *domain.TaskStatus
}

// Apply reconciles a Task against a single Change, given "today" for
// determinism, and returns the updated Task. The input Task is not mutated.
func Apply(t domain.Task, change Change, today time.Time) domain.Task {
	switch {
	case change.Percent != nil:
		return applyPercent(t, clamp(*change.Percent), today)
	case change.Status != nil:
		return applyStatus(t, *change.Status, today)
	default:
		return t
	}
}

func applyPercent(t domain.Task, percent int, today time.Time) domain.Task {
	t.PercentComplete = percent
	switch {
	case percent == 0:
		t.Status = domain.TaskPending
	case percent == 100:
		t.Status = domain.TaskDone
	default:
		t.Status = domain.TaskInProgress
	}

	if percent > 0 && t.ActualStartDate == nil {
		t.ActualStartDate = &today
	}

	if percent == 100 {
		t.ActualFinishDate = &today
	} else {
		t.ActualFinishDate = nil
	}

	return t
}

func applyStatus(t domain.Task, status domain.TaskStatus, today time.Time) domain.Task {
	t.Status = status
	switch status {
	case domain.TaskDone:
		t.PercentComplete = 100
		t.ActualFinishDate = &today
		if t.ActualStartDate == nil {
			t.ActualStartDate = &today
		}
	case domain.TaskPending:
		t.PercentComplete = 0
		t.ActualFinishDate = nil
	case domain.TaskInProgress:
		if t.PercentComplete < 1 {
			t.PercentComplete = 1
		}
		t.ActualFinishDate = nil
		if t.ActualStartDate == nil {
			t.ActualStartDate = &today
		}
	}
	return t
}

func clamp(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
