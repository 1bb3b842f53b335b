package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/progress"
	"github.com/alexanderramin/kairos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Three phases: the first fully done, the second in progress, the third
// waiting. Only the third should come back locked, blamed on the second.
func TestPhaseService_LockChain(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Audit 2026", date("2026-01-18"))
	require.NoError(t, repos.projects.Create(ctx, proj))

	p1 := testutil.NewTestPhase(proj.ID, "Planning", 1)
	p2 := testutil.NewTestPhase(proj.ID, "Fieldwork", 2)
	p3 := testutil.NewTestPhase(proj.ID, "Reporting", 3)
	for _, p := range []*domain.ProjectPhase{p1, p2, p3} {
		require.NoError(t, repos.phases.Create(ctx, p))
	}

	done1 := testutil.NewTestTask(proj.ID, "Kickoff", 1, testutil.WithPhase(p1.ID), testutil.WithTaskStatus(domain.TaskDone))
	done2 := testutil.NewTestTask(proj.ID, "Scope", 1, testutil.WithPhase(p1.ID), testutil.WithTaskStatus(domain.TaskDone))
	open := testutil.NewTestTask(proj.ID, "Interviews", 3, testutil.WithPhase(p2.ID), testutil.WithTaskStatus(domain.TaskInProgress))
	idle := testutil.NewTestTask(proj.ID, "Draft report", 2, testutil.WithPhase(p3.ID))
	for _, task := range []*domain.Task{done1, done2, open, idle} {
		require.NoError(t, repos.tasks.Create(ctx, task))
	}

	svc := NewPhaseService(repos.phases, repos.tasks)
	locks, err := svc.Locks(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, locks, 3)

	assert.False(t, locks[0].IsLocked)
	assert.Equal(t, domain.ReasonFirstPhase, locks[0].Reason)

	assert.False(t, locks[1].IsLocked)
	assert.Equal(t, domain.ReasonPreviousPhaseComplete, locks[1].Reason)

	assert.True(t, locks[2].IsLocked)
	assert.Equal(t, domain.ReasonPreviousPhaseIncomplete, locks[2].Reason)
	require.NotNil(t, locks[2].BlockedByPhaseID)
	assert.Equal(t, p2.ID, *locks[2].BlockedByPhaseID)
	require.NotNil(t, locks[2].BlockedByPhaseName)
	assert.Equal(t, "Fieldwork", *locks[2].BlockedByPhaseName)
}

// Walks a task through percent and status edits across several days and
// checks what the store holds after each step: the first actual start date
// survives a reset to zero, and closing the task stamps the finish date.
func TestProgressService_ReconcileAndPersist(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Audit 2026", date("2026-01-18"))
	require.NoError(t, repos.projects.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "Fieldwork", 3)
	require.NoError(t, repos.tasks.Create(ctx, task))

	svc := NewProgressService(repos.tasks)

	fifty := 50
	updated, err := svc.Apply(ctx, task.ID, progress.Change{Percent: &fifty}, date("2026-02-10"))
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, updated.Status)
	require.NotNil(t, updated.ActualStartDate)
	assert.Equal(t, date("2026-02-10"), *updated.ActualStartDate)
	assert.Nil(t, updated.ActualFinishDate)

	zero := 0
	updated, err = svc.Apply(ctx, task.ID, progress.Change{Percent: &zero}, date("2026-02-12"))
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, updated.Status)
	require.NotNil(t, updated.ActualStartDate)
	assert.Equal(t, date("2026-02-10"), *updated.ActualStartDate) // first start survives

	doneStatus := domain.TaskDone
	updated, err = svc.Apply(ctx, task.ID, progress.Change{Status: &doneStatus}, date("2026-02-15"))
	require.NoError(t, err)
	assert.Equal(t, 100, updated.PercentComplete)
	require.NotNil(t, updated.ActualFinishDate)
	assert.Equal(t, date("2026-02-15"), *updated.ActualFinishDate)

	// The store's copy matches what the service handed back.
	stored, err := repos.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, stored.Status)
	assert.Equal(t, 100, stored.PercentComplete)
	require.NotNil(t, stored.ActualStartDate)
	assert.Equal(t, date("2026-02-10"), *stored.ActualStartDate)
}
