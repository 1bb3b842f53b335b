package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/offlinequeue"
	"github.com/alexanderramin/kairos/internal/repository"
	"github.com/alexanderramin/kairos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReplaySession(t *testing.T, repos testRepos, documentID string) *SyncSession {
	t.Helper()
	return NewSyncSession(
		"replica-1",
		repository.NewSQLiteSyncSnapshotRepo(repos.conn),
		documentID,
		testutil.NewTestUoW(repos.conn),
		repository.NewSQLiteOfflineQueueStore(repos.conn, documentID),
	)
}

func queuedCreate(t *testing.T, task *domain.Task, id, entityID string, ts int64) offlinequeue.Operation {
	t.Helper()
	data, err := json.Marshal(task)
	require.NoError(t, err)
	return offlinequeue.Operation{
		ID:        id,
		Type:      offlinequeue.OpCreate,
		Entity:    "task",
		EntityID:  entityID,
		Data:      data,
		Timestamp: ts,
	}
}

// Two queued creates replay in order, land in the store, and leave the
// queue empty.
func TestSyncSession_ReplayQueueAppliesAndClears(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Audit 2026", date("2026-01-18"))
	require.NoError(t, repos.projects.Create(ctx, proj))

	t1 := testutil.NewTestTask(proj.ID, "Fieldwork", 3)
	t2 := testutil.NewTestTask(proj.ID, "Reporting", 2)

	session := newReplaySession(t, repos, "doc-1")
	require.NoError(t, session.Queue.QueueOperation(ctx, queuedCreate(t, t1, "op1", t1.ID, 100)))
	require.NoError(t, session.Queue.QueueOperation(ctx, queuedCreate(t, t2, "op2", t2.ID, 200)))

	applied, err := session.ReplayQueue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	stored, err := repos.tasks.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	count, err := session.Queue.GetQueueCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// A mid-batch failure rolls the whole replay back: the earlier operation's
// task is not in the store and both operations stay queued for a retry.
func TestSyncSession_ReplayQueueRollsBackWholeBatch(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Audit 2026", date("2026-01-18"))
	require.NoError(t, repos.projects.Create(ctx, proj))

	t1 := testutil.NewTestTask(proj.ID, "Fieldwork", 3)
	session := newReplaySession(t, repos, "doc-1")
	require.NoError(t, session.Queue.QueueOperation(ctx, queuedCreate(t, t1, "op1", t1.ID, 100)))
	require.NoError(t, session.Queue.QueueOperation(ctx, offlinequeue.Operation{
		ID:        "op2",
		Type:      offlinequeue.OpCreate,
		Entity:    "task",
		EntityID:  "broken",
		Data:      json.RawMessage(`{`), // undecodable payload
		Timestamp: 200,
	}))

	applied, err := session.ReplayQueue(ctx)
	require.Error(t, err)
	assert.Equal(t, 0, applied)

	stored, err := repos.tasks.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, stored, "rolled-back create must not reach the store")

	count, err := session.Queue.GetQueueCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "both operations stay queued after rollback")
}
