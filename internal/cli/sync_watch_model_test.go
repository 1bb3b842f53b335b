package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/offlinequeue"
	"github.com/alexanderramin/kairos/internal/service"
	"github.com/alexanderramin/kairos/internal/syncdoc"
	"github.com/alexanderramin/kairos/internal/teatest"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	kv map[string][]byte
}

func newMemStore() *memStore { return &memStore{kv: make(map[string][]byte)} }

func (m *memStore) Save(ctx context.Context, namespace, key string, value []byte) error {
	m.kv[namespace+"/"+key] = value
	return nil
}
func (m *memStore) Load(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	v, ok := m.kv[namespace+"/"+key]
	return v, ok, nil
}
func (m *memStore) QueueOperation(ctx context.Context, op offlinequeue.Operation) error { return nil }
func (m *memStore) PendingOperations(ctx context.Context) ([]offlinequeue.Operation, error) {
	return nil, nil
}
func (m *memStore) RemoveOperation(ctx context.Context, id string) error        { return nil }
func (m *memStore) QueueCount(ctx context.Context) (int, error)                 { return 0, nil }
func (m *memStore) ClearQueue(ctx context.Context) error                        { return nil }
func (m *memStore) EstimateStorageSize(ctx context.Context) (int64, error)      { return 0, nil }
func (m *memStore) ClearAll(ctx context.Context) error                          { return nil }

type memPersistence struct{ store *memStore }

func (p memPersistence) Load(ctx context.Context, documentID string) ([]byte, bool, error) {
	return p.store.Load(ctx, "snapshot", documentID)
}
func (p memPersistence) Save(ctx context.Context, documentID string, data []byte) error {
	return p.store.Save(ctx, "snapshot", documentID, data)
}
func (p memPersistence) Clear(ctx context.Context, documentID string) error { return nil }

// nopUnitOfWork satisfies db.UnitOfWork for tests that never reach the
// store; the watch model only reads document status and awareness.
type nopUnitOfWork struct{}

func (nopUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTransport struct{}

func (fakeTransport) Open(ctx context.Context, url, documentID string) (syncdoc.Conn, error) {
	return nil, context.Canceled
}

func newTestSession(t *testing.T) *service.SyncSession {
	t.Helper()
	store := newMemStore()
	return service.NewSyncSession("replica-1", memPersistence{store: store}, "doc-1", nopUnitOfWork{}, store)
}

func TestWatchModel_ShowsDisconnectedAndQuits(t *testing.T) {
	session := newTestSession(t)
	model := newWatchModel(session, fakeTransport{}, "http://example.invalid", "doc-1")

	d := teatest.New(t, model)
	d.DrainInit()

	view := d.View()
	require.Contains(t, view, "watching document doc-1")
	require.Contains(t, view, "disconnected")

	d.PressKey('q')
	require.True(t, d.Quitting)
}

func TestWatchModel_AppliesStatusUpdates(t *testing.T) {
	session := newTestSession(t)
	model := newWatchModel(session, nil, "", "doc-1")

	d := teatest.New(t, model)
	d.DrainInit()

	d.Send(statusMsg(syncdoc.Status{Connected: true, Syncing: true, PendingChanges: 3}))

	view := d.View()
	require.Contains(t, view, "connected")
	require.Contains(t, view, "pending:   3")
}
