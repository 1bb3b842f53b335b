package syncdoc

import (
	"testing"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTask(id, title string) domain.Task {
	return domain.Task{ID: id, Title: title, Duration: 1, Type: domain.TaskTypeTask}
}

func TestDocument_TransactionBatchesOneChangeEvent(t *testing.T) {
	d := New("r1")
	var events []ChangeEvent
	d.OnChange(func(e ChangeEvent) { events = append(events, e) })

	err := d.Transaction(OriginLocal, func(tx *Tx) error {
		require.NoError(t, tx.SetTask("t1", sampleTask("t1", "A")))
		require.NoError(t, tx.SetTask("t2", sampleTask("t2", "B")))
		return nil
	})
	require.NoError(t, err)

	require.Len(t, events, 1, "multiple writes in one transaction fire one change event")
	assert.ElementsMatch(t, []string{"t1", "t2"}, events[0].Tasks)
}

func TestDocument_SetAndGetTask(t *testing.T) {
	d := New("r1")
	require.NoError(t, d.Transaction(OriginLocal, func(tx *Tx) error {
		return tx.SetTask("t1", sampleTask("t1", "Design"))
	}))

	got, ok, err := d.Task("t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Design", got.Title)
}

func TestDocument_DeleteTaskRemovesIt(t *testing.T) {
	d := New("r1")
	require.NoError(t, d.Transaction(OriginLocal, func(tx *Tx) error {
		return tx.SetTask("t1", sampleTask("t1", "Design"))
	}))
	require.NoError(t, d.Transaction(OriginLocal, func(tx *Tx) error {
		tx.DeleteTask("t1")
		return nil
	}))

	_, ok, err := d.Task("t1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDocument_UndoRemovesCreatedTask(t *testing.T) {
	d := New("r1")
	require.NoError(t, d.Transaction(OriginLocal, func(tx *Tx) error {
		return tx.SetTask("t1", sampleTask("t1", "Design"))
	}))

	assert.True(t, d.Undo())
	_, ok, err := d.Task("t1")
	require.NoError(t, err)
	assert.False(t, ok, "undoing a set that created a task removes it")
}

func TestDocument_RedoRestoresTask(t *testing.T) {
	d := New("r1")
	require.NoError(t, d.Transaction(OriginLocal, func(tx *Tx) error {
		return tx.SetTask("t1", sampleTask("t1", "Design"))
	}))
	require.True(t, d.Undo())
	require.True(t, d.Redo())

	got, ok, err := d.Task("t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Design", got.Title)
}

func TestDocument_UndoOnlyAffectsLocalOrigin(t *testing.T) {
	d := New("r1")
	require.NoError(t, d.Transaction("replica-2", func(tx *Tx) error {
		return tx.SetTask("t1", sampleTask("t1", "Remote"))
	}))
	assert.False(t, d.Undo(), "a remote-origin transaction is not in the local undo history")
}

func TestDocument_UndoEmptyIsNoop(t *testing.T) {
	d := New("r1")
	assert.False(t, d.Undo())
	assert.False(t, d.Redo())
}

func TestDocument_SnapshotRoundTrip(t *testing.T) {
	d := New("r1")
	require.NoError(t, d.Transaction(OriginLocal, func(tx *Tx) error {
		require.NoError(t, tx.SetTask("t1", sampleTask("t1", "Design")))
		_, err := tx.AppendFinding(domain.AuditFinding{ID: "f1", Title: "slack negative"})
		return err
	}))

	snap := d.CreateSnapshot()

	other := New("r2")
	require.NoError(t, other.RestoreFromSnapshot(snap))

	gotTasks, err := other.Tasks()
	require.NoError(t, err)
	assert.Contains(t, gotTasks, "t1")

	findings, err := other.Findings()
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "f1", findings[0].ID)
}

func TestDocument_ConvergesRegardlessOfApplyOrder(t *testing.T) {
	a := New("a")
	require.NoError(t, a.Transaction(OriginLocal, func(tx *Tx) error {
		return tx.SetTask("t1", sampleTask("t1", "From A"))
	}))
	snapA := a.CreateSnapshot()

	b := New("b")
	require.NoError(t, b.Transaction(OriginLocal, func(tx *Tx) error {
		return tx.SetTask("t2", sampleTask("t2", "From B"))
	}))
	snapB := b.CreateSnapshot()

	replica1 := New("x")
	require.NoError(t, replica1.RestoreFromSnapshot(snapA))
	require.NoError(t, replica1.RestoreFromSnapshot(snapB))

	replica2 := New("y")
	require.NoError(t, replica2.RestoreFromSnapshot(snapB))
	require.NoError(t, replica2.RestoreFromSnapshot(snapA))

	t1, err := replica1.Tasks()
	require.NoError(t, err)
	t2, err := replica2.Tasks()
	require.NoError(t, err)
	assert.Equal(t, t1, t2, "two replicas applying the same updates in any order converge")
}

func TestDocument_GetStatusReturnsCopyNotReference(t *testing.T) {
	d := New("r1")
	s1 := d.GetStatus()
	s1.Connected = true
	s2 := d.GetStatus()
	assert.False(t, s2.Connected, "mutating a returned Status must not affect the document's view")
}

func TestDocument_AwarenessSetAndSubscribe(t *testing.T) {
	d := New("r1")
	var seen []string
	d.OnAwarenessChange(func(replicaID string, _ AwarenessState) { seen = append(seen, replicaID) })

	d.SetAwarenessState(AwarenessState{"name": "Ada", "color": "#fff"})
	assert.Equal(t, []string{"r1"}, seen)
	assert.Equal(t, "Ada", d.GetLocalAwarenessState()["name"])

	d.ApplyRemoteAwareness("r2", AwarenessState{"name": "Grace"})
	all := d.GetAllAwarenessStates()
	assert.Equal(t, "Grace", all["r2"]["name"])
	assert.Equal(t, "Ada", all["r1"]["name"])
}
