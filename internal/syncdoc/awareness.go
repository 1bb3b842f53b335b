package syncdoc

// AwarenessState is a replica's small transient presence payload: display
// name, color, cursor position, or whatever the UI wants other replicas to
// see live. Unlike the document's CRDT maps, awareness is not persisted or
// merged with history — it is last-write-wins per replica and expected to go
// stale the moment a replica disconnects.
type AwarenessState map[string]any

type awarenessState struct {
	local    AwarenessState
	remote   map[string]AwarenessState
	handlers []func(replicaID string, state AwarenessState)
}

func newAwarenessState() *awarenessState {
	return &awarenessState{remote: make(map[string]AwarenessState)}
}

// SetAwarenessState replaces this replica's own awareness payload and
// notifies local subscribers. To publish it to other replicas, wire it
// through a Transport (see ApplyRemoteAwareness / awareness wire messages).
func (d *Document) SetAwarenessState(state AwarenessState) {
	d.mu.Lock()
	d.awareness.local = state
	handlers := append([]func(string, AwarenessState){}, d.awareness.handlers...)
	d.mu.Unlock()

	for _, h := range handlers {
		h(d.replicaID, state)
	}
}

// GetLocalAwarenessState returns this replica's own last-set awareness state.
func (d *Document) GetLocalAwarenessState() AwarenessState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.awareness.local
}

// GetAllAwarenessStates returns every known replica's awareness state,
// including this replica's own (under its ReplicaID).
func (d *Document) GetAllAwarenessStates() map[string]AwarenessState {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]AwarenessState, len(d.awareness.remote)+1)
	for id, s := range d.awareness.remote {
		out[id] = s
	}
	if d.awareness.local != nil {
		out[d.replicaID] = d.awareness.local
	}
	return out
}

// OnAwarenessChange subscribes fn to every awareness update, local or remote.
func (d *Document) OnAwarenessChange(fn func(replicaID string, state AwarenessState)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.awareness.handlers = append(d.awareness.handlers, fn)
}

// ApplyRemoteAwareness records another replica's awareness state, as
// delivered by the Transport, and fires OnAwarenessChange subscribers.
func (d *Document) ApplyRemoteAwareness(replicaID string, state AwarenessState) {
	if replicaID == d.replicaID {
		return
	}
	d.mu.Lock()
	d.awareness.remote[replicaID] = state
	handlers := append([]func(string, AwarenessState){}, d.awareness.handlers...)
	d.mu.Unlock()

	for _, h := range handlers {
		h(replicaID, state)
	}
}
