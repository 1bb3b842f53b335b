package syncdoc

import "context"

// Persistence is the local persistence sink's port: a place to
// durably store one document's snapshot so it survives a process restart.
// internal/repository provides a SQLite-backed implementation over the
// sync_snapshots table.
type Persistence interface {
	Load(ctx context.Context, documentID string) ([]byte, bool, error)
	Save(ctx context.Context, documentID string, data []byte) error
	Clear(ctx context.Context, documentID string) error
}

// PersistenceStatus is the snapshot returned by GetPersistenceStatus.
type PersistenceStatus struct {
	Enabled bool
	Synced  bool
	Name    string
}

type persistenceBinding struct {
	store      Persistence
	documentID string
	name       string
	synced     bool
}

// EnablePersistence wires store as this document's local persistence sink.
// It does not itself load existing data — call WaitForPersistence for that.
func (d *Document) EnablePersistence(store Persistence, documentID, name string) {
	d.mu.Lock()
	d.persistence = &persistenceBinding{store: store, documentID: documentID, name: name}
	d.mu.Unlock()
}

// IsPersistenceEnabled reports whether a persistence sink is wired.
func (d *Document) IsPersistenceEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.persistence != nil
}

// WaitForPersistence loads the sink's stored snapshot (if any) and merges it
// into the local replica, then marks persistence synced. It resolves true
// once the local store has finished loading into the replica, whether or not
// a prior snapshot actually existed.
func (d *Document) WaitForPersistence(ctx context.Context) (bool, error) {
	d.mu.Lock()
	binding := d.persistence
	d.mu.Unlock()
	if binding == nil {
		return false, nil
	}

	data, found, err := binding.store.Load(ctx, binding.documentID)
	if err != nil {
		return false, err
	}
	if found {
		if err := d.RestoreFromSnapshot(data); err != nil {
			return false, err
		}
	}

	d.mu.Lock()
	binding.synced = true
	d.mu.Unlock()
	return true, nil
}

// GetPersistenceStatus returns a fresh copy of the persistence binding's
// current status.
func (d *Document) GetPersistenceStatus() PersistenceStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.persistence == nil {
		return PersistenceStatus{}
	}
	return PersistenceStatus{Enabled: true, Synced: d.persistence.synced, Name: d.persistence.name}
}

// ClearPersistence erases the sink's stored snapshot for this document.
func (d *Document) ClearPersistence(ctx context.Context) error {
	d.mu.Lock()
	binding := d.persistence
	d.mu.Unlock()
	if binding == nil {
		return nil
	}
	return binding.store.Clear(ctx, binding.documentID)
}

// persistLocal best-effort saves the current snapshot to the sink. Failures
// are recorded on status rather than surfaced to the
// transaction that triggered them — the document stays usable in memory
// either way.
func (d *Document) persistLocal(ctx context.Context) {
	d.mu.Lock()
	binding := d.persistence
	d.mu.Unlock()
	if binding == nil {
		return
	}
	if err := binding.store.Save(ctx, binding.documentID, d.CreateSnapshot()); err != nil {
		s := d.GetStatus()
		s.Error = "persistence: " + err.Error()
		d.setStatus(s)
	}
}
