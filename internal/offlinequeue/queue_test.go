package offlinequeue

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store fake for exercising Queue's logic in
// isolation from internal/repository's SQLite adapter.
type memStore struct {
	kv    map[string][]byte
	queue []Operation
}

func newMemStore() *memStore {
	return &memStore{kv: map[string][]byte{}}
}

func (m *memStore) Save(_ context.Context, namespace, key string, value []byte) error {
	m.kv[namespace+"/"+key] = value
	return nil
}

func (m *memStore) Load(_ context.Context, namespace, key string) ([]byte, bool, error) {
	v, ok := m.kv[namespace+"/"+key]
	return v, ok, nil
}

func (m *memStore) QueueOperation(_ context.Context, op Operation) error {
	m.queue = append(m.queue, op)
	return nil
}

func (m *memStore) PendingOperations(_ context.Context) ([]Operation, error) {
	out := append([]Operation{}, m.queue...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func (m *memStore) RemoveOperation(_ context.Context, id string) error {
	for i, op := range m.queue {
		if op.ID == id {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) QueueCount(_ context.Context) (int, error) { return len(m.queue), nil }

func (m *memStore) ClearQueue(_ context.Context) error {
	m.queue = nil
	return nil
}

func (m *memStore) EstimateStorageSize(_ context.Context) (int64, error) {
	var n int64
	for _, op := range m.queue {
		n += int64(len(op.Data))
	}
	for _, v := range m.kv {
		n += int64(len(v))
	}
	return n, nil
}

func (m *memStore) ClearAll(_ context.Context) error {
	m.queue = nil
	m.kv = map[string][]byte{}
	return nil
}

func fields(t *testing.T, pairs map[string]any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(pairs)
	require.NoError(t, err)
	return raw
}

func TestQueue_GetPendingOperationsOrderedByTimestamp(t *testing.T) {
	q := New(newMemStore())
	ctx := context.Background()

	require.NoError(t, q.QueueOperation(ctx, Operation{ID: "3", Entity: "task", EntityID: "t1", Timestamp: 30}))
	require.NoError(t, q.QueueOperation(ctx, Operation{ID: "1", Entity: "task", EntityID: "t1", Timestamp: 10}))
	require.NoError(t, q.QueueOperation(ctx, Operation{ID: "2", Entity: "task", EntityID: "t1", Timestamp: 20}))

	ops, err := q.GetPendingOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{ops[0].ID, ops[1].ID, ops[2].ID})
}

func TestQueue_RemoveOperationShrinksQueue(t *testing.T) {
	q := New(newMemStore())
	ctx := context.Background()
	require.NoError(t, q.QueueOperation(ctx, Operation{ID: "1", Entity: "task", EntityID: "t1", Timestamp: 1}))

	count, err := q.GetQueueCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, q.RemoveOperation(ctx, "1"))
	count, err = q.GetQueueCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestQueue_ClearQueue(t *testing.T) {
	q := New(newMemStore())
	ctx := context.Background()
	require.NoError(t, q.QueueOperation(ctx, Operation{ID: "1", Entity: "task", EntityID: "t1", Timestamp: 1}))
	require.NoError(t, q.ClearQueue(ctx))
	count, err := q.GetQueueCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestQueue_DetectConflictsOnlyMatchesSameEntity(t *testing.T) {
	q := New(newMemStore())
	ctx := context.Background()
	require.NoError(t, q.QueueOperation(ctx, Operation{ID: "1", Entity: "task", EntityID: "t1", Timestamp: 1}))
	require.NoError(t, q.QueueOperation(ctx, Operation{ID: "2", Entity: "task", EntityID: "t2", Timestamp: 2}))
	require.NoError(t, q.QueueOperation(ctx, Operation{ID: "3", Entity: "task", EntityID: "t1", Timestamp: 3}))

	conflicts, err := q.DetectConflicts(ctx, "task", "t1")
	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	assert.ElementsMatch(t, []string{"1", "3"}, []string{conflicts[0].ID, conflicts[1].ID})
}

func TestQueue_ResolveConflicts_LastWriteWinsOnOverlap(t *testing.T) {
	q := New(newMemStore())
	ctx := context.Background()
	require.NoError(t, q.QueueOperation(ctx, Operation{
		ID: "1", Type: OpUpdate, Entity: "task", EntityID: "t1", Timestamp: 10,
		Data: fields(t, map[string]any{"title": "Design", "priority": "low"}),
	}))
	require.NoError(t, q.QueueOperation(ctx, Operation{
		ID: "2", Type: OpUpdate, Entity: "task", EntityID: "t1", Timestamp: 20,
		Data: fields(t, map[string]any{"title": "Design v2", "status": "in_progress"}),
	}))

	merged, err := q.ResolveConflicts(ctx, "task", "t1", LastWriteWins)
	require.NoError(t, err)

	var title, priority, status string
	require.NoError(t, json.Unmarshal(merged["title"], &title))
	require.NoError(t, json.Unmarshal(merged["priority"], &priority))
	require.NoError(t, json.Unmarshal(merged["status"], &status))
	assert.Equal(t, "Design v2", title, "higher-timestamp op wins the overlapping title field")
	assert.Equal(t, "low", priority, "non-overlapping fields are unioned in regardless of strategy")
	assert.Equal(t, "in_progress", status)
}

func TestQueue_ResolveConflicts_FirstWriteWinsOnOverlap(t *testing.T) {
	q := New(newMemStore())
	ctx := context.Background()
	require.NoError(t, q.QueueOperation(ctx, Operation{
		ID: "1", Type: OpUpdate, Entity: "task", EntityID: "t1", Timestamp: 10,
		Data: fields(t, map[string]any{"title": "Design", "priority": "low"}),
	}))
	require.NoError(t, q.QueueOperation(ctx, Operation{
		ID: "2", Type: OpUpdate, Entity: "task", EntityID: "t1", Timestamp: 20,
		Data: fields(t, map[string]any{"title": "Design v2", "status": "in_progress"}),
	}))

	merged, err := q.ResolveConflicts(ctx, "task", "t1", FirstWriteWins)
	require.NoError(t, err)

	var title string
	require.NoError(t, json.Unmarshal(merged["title"], &title))
	assert.Equal(t, "Design", title, "lower-timestamp op wins the overlapping title field")
	assert.Contains(t, merged, "status", "non-overlapping fields are still unioned in")
}

func TestQueue_ResolveConflicts_NoOperationsReturnsEmptyMap(t *testing.T) {
	q := New(newMemStore())
	merged, err := q.ResolveConflicts(context.Background(), "task", "missing", LastWriteWins)
	require.NoError(t, err)
	assert.Empty(t, merged)
}

func TestQueue_EstimateStorageSizeAndClearAll(t *testing.T) {
	q := New(newMemStore())
	ctx := context.Background()
	require.NoError(t, q.Save(ctx, "meta", "k", []byte("hello")))
	require.NoError(t, q.QueueOperation(ctx, Operation{ID: "1", Entity: "task", EntityID: "t1", Timestamp: 1, Data: fields(t, map[string]any{"a": 1})}))

	size, err := q.EstimateStorageSize(ctx)
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	require.NoError(t, q.ClearAll(ctx))
	size, err = q.EstimateStorageSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)

	_, ok, err := q.Load(ctx, "meta", "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
