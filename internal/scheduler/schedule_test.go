package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/kairos/internal/calendar"
	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(calendar.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sunThu() calendar.Calendar {
	return calendar.New(domain.DefaultWorkingDays, nil)
}

func autoTask(id string, duration int) domain.Task {
	return domain.Task{
		ID:             id,
		SchedulingMode: domain.SchedulingAuto,
		ConstraintType: domain.ConstraintNone,
		Duration:       duration,
	}
}

func fs(pred, succ string, lag int) domain.Dependency {
	return domain.Dependency{PredecessorID: pred, SuccessorID: succ, Type: domain.DependencyFS, LagDays: lag}
}

func TestSchedule_EmptyTaskSet(t *testing.T) {
	got, err := Schedule(Input{ProjectStart: date("2026-01-18"), Calendar: sunThu()})
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)
	assert.Empty(t, got.CriticalPath)
	assert.Nil(t, got.ProjectEndDate)
}

// FS chain across a weekend, 3-day task feeding a 2-day task.
func TestSchedule_FSChain(t *testing.T) {
	a := autoTask("A", 3)
	b := autoTask("B", 2)
	result, err := Schedule(Input{
		Tasks:        []domain.Task{a, b},
		Dependencies: []domain.Dependency{fs("A", "B", 0)},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.NoError(t, err)

	byID := taskMap(result.Tasks)
	assert.Equal(t, date("2026-01-18"), byID["A"].ES)
	assert.Equal(t, date("2026-01-20"), byID["A"].EF)
	assert.Equal(t, date("2026-01-21"), byID["B"].ES)
	assert.ElementsMatch(t, []string{"A", "B"}, result.CriticalPath)
}

// SS dependency with positive lag.
func TestSchedule_SSLag(t *testing.T) {
	a := autoTask("A", 3)
	b := autoTask("B", 2)
	b.SchedulingMode = domain.SchedulingAuto
	dep := domain.Dependency{PredecessorID: "A", SuccessorID: "B", Type: domain.DependencySS, LagDays: 2}
	result, err := Schedule(Input{
		Tasks:        []domain.Task{a, b},
		Dependencies: []domain.Dependency{dep},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.NoError(t, err)
	byID := taskMap(result.Tasks)
	assert.Equal(t, date("2026-01-18"), byID["A"].ES)
	assert.True(t, byID["B"].ES.After(byID["A"].ES))
}

// FF dependency with negative lag (lead).
func TestSchedule_FFLag(t *testing.T) {
	a := autoTask("A", 3)
	b := autoTask("B", 2)
	dep := domain.Dependency{PredecessorID: "A", SuccessorID: "B", Type: domain.DependencyFF, LagDays: -1}
	result, err := Schedule(Input{
		Tasks:        []domain.Task{a, b},
		Dependencies: []domain.Dependency{dep},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.NoError(t, err)
	byID := taskMap(result.Tasks)
	assert.False(t, byID["B"].EF.After(byID["A"].EF))
}

func TestSchedule_CycleDetected(t *testing.T) {
	a := autoTask("A", 1)
	b := autoTask("B", 1)
	_, err := Schedule(Input{
		Tasks:        []domain.Task{a, b},
		Dependencies: []domain.Dependency{fs("A", "B", 0), fs("B", "A", 0)},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Len(t, cycleErr.TaskIDs, 2)
}

func TestSchedule_UnresolvedPredecessor(t *testing.T) {
	a := autoTask("A", 1)
	_, err := Schedule(Input{
		Tasks:        []domain.Task{a},
		Dependencies: []domain.Dependency{fs("ghost", "A", 0)},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.Error(t, err)
	var unresolved *UnresolvedPredecessorError
	require.ErrorAs(t, err, &unresolved)
}

func TestSchedule_InvalidDuration(t *testing.T) {
	a := autoTask("A", -1)
	_, err := Schedule(Input{
		Tasks:        []domain.Task{a},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.Error(t, err)
	var invalid *InvalidDurationError
	require.ErrorAs(t, err, &invalid)
}

func TestSchedule_ManualModePreservesStartDate(t *testing.T) {
	pinned := date("2026-01-23") // a Friday, not a working day on Sun-Thu
	a := autoTask("A", 3)
	a.SchedulingMode = domain.SchedulingManual
	a.StartDate = &pinned
	result, err := Schedule(Input{
		Tasks:        []domain.Task{a},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.NoError(t, err)
	assert.Equal(t, pinned, result.Tasks[0].ES)
	assert.Equal(t, pinned, result.Tasks[0].LS)
	assert.Equal(t, result.Tasks[0].EF, result.Tasks[0].LF)
}

func TestSchedule_ConstraintOverriddenByDependencyPush(t *testing.T) {
	a := autoTask("A", 5)
	b := autoTask("B", 2)
	early := date("2026-01-18")
	b.ConstraintType = domain.ConstraintMSO
	b.ConstraintDate = &early
	result, err := Schedule(Input{
		Tasks:        []domain.Task{a, b},
		Dependencies: []domain.Dependency{fs("A", "B", 0)},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.NoError(t, err)
	byID := taskMap(result.Tasks)
	assert.True(t, byID["B"].ConstraintOverridden)
}

func TestSchedule_FNLTViolation(t *testing.T) {
	a := autoTask("A", 10)
	tooSoon := date("2026-01-19")
	a.ConstraintType = domain.ConstraintFNLT
	a.ConstraintDate = &tooSoon
	result, err := Schedule(Input{
		Tasks:        []domain.Task{a},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.NoError(t, err)
	assert.True(t, result.Tasks[0].FNLTViolation)
}

// Diamond: A feeds both B (short) and C (long); both feed D. The B branch
// should carry positive slack, the A-C-D branch should be critical.
func TestSchedule_SlackOnNonCriticalBranch(t *testing.T) {
	a := autoTask("A", 1)
	b := autoTask("B", 1)
	c := autoTask("C", 5)
	d := autoTask("D", 1)
	result, err := Schedule(Input{
		Tasks: []domain.Task{a, b, c, d},
		Dependencies: []domain.Dependency{
			fs("A", "B", 0),
			fs("A", "C", 0),
			fs("B", "D", 0),
			fs("C", "D", 0),
		},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.NoError(t, err)
	byID := taskMap(result.Tasks)
	assert.True(t, byID["B"].Slack > 0)
	assert.True(t, byID["C"].IsCritical)
	assert.True(t, byID["D"].IsCritical)
	assert.False(t, byID["B"].IsCritical)
}

// A large negative lag would push the successor before the project even
// starts; its early start must clamp to the project start instead.
func TestSchedule_NegativeLagClampsToProjectStart(t *testing.T) {
	a := autoTask("A", 1)
	b := autoTask("B", 1)
	result, err := Schedule(Input{
		Tasks:        []domain.Task{a, b},
		Dependencies: []domain.Dependency{fs("A", "B", -10)},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	})
	require.NoError(t, err)
	byID := taskMap(result.Tasks)
	assert.Equal(t, date("2026-01-18"), byID["B"].ES)
}

// Stretching any one task can only hold or push out the project end date,
// never pull it in.
func TestSchedule_ProjectEndMonotoneInDuration(t *testing.T) {
	run := func(durA int) time.Time {
		a := autoTask("A", durA)
		b := autoTask("B", 2)
		result, err := Schedule(Input{
			Tasks:        []domain.Task{a, b},
			Dependencies: []domain.Dependency{fs("A", "B", 0)},
			ProjectStart: date("2026-01-18"),
			Calendar:     sunThu(),
		})
		require.NoError(t, err)
		require.NotNil(t, result.ProjectEndDate)
		return *result.ProjectEndDate
	}

	prev := run(1)
	for durA := 2; durA <= 8; durA++ {
		end := run(durA)
		assert.Falsef(t, end.Before(prev), "duration %d pulled the end date in", durA)
		prev = end
	}
}

// Re-running the scheduler over unchanged inputs yields an identical result.
func TestSchedule_Deterministic(t *testing.T) {
	in := Input{
		Tasks:        []domain.Task{autoTask("A", 3), autoTask("B", 2)},
		Dependencies: []domain.Dependency{fs("A", "B", 0)},
		ProjectStart: date("2026-01-18"),
		Calendar:     sunThu(),
	}
	first, err := Schedule(in)
	require.NoError(t, err)
	second, err := Schedule(in)
	require.NoError(t, err)
	assert.Equal(t, first.Tasks, second.Tasks)
	assert.Equal(t, first.CriticalPath, second.CriticalPath)
}

func taskMap(tasks []domain.Task) map[string]domain.Task {
	m := make(map[string]domain.Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}
