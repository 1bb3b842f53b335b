// Package syncdoc implements the offline-capable sync layer: a small conflict-free
// replicated document (tasks/projects/team_members maps plus an ordered
// audit-findings sequence), transactional mutation, undo/redo, awareness,
// snapshotting, and a pluggable Transport for exchanging updates with other
// replicas. Every mutation converges regardless of delivery order — the
// defining CRDT property exercised by the convergence tests.
package syncdoc

import "encoding/json"

// Tag totally orders concurrent writes to the same key. Replica is the
// tie-breaker when two writes share a Timestamp (e.g. two replicas created in
// the same nanosecond, or a merge replaying history). Comparing by
// (Timestamp, Replica) rather than arrival order is what makes the map CRDT
// commutative: the same set of tagged writes always resolves to the same
// winner no matter which replica applies them in which order.
type Tag struct {
	Timestamp int64
	Replica   string
}

// After reports whether t should win over o under last-write-wins.
func (t Tag) After(o Tag) bool {
	if t.Timestamp != o.Timestamp {
		return t.Timestamp > o.Timestamp
	}
	return t.Replica > o.Replica
}

// entry is one key's current value (or tombstone) in a Map, along with the
// Tag of the write that produced it.
type entry struct {
	Tag       Tag             `json:"tag"`
	Tombstone bool            `json:"tombstone"`
	Value     json.RawMessage `json:"value,omitempty"`
}

// Map is a last-write-wins register per key: the CRDT behind the document's
// tasks/projects/team_members collections. Concurrent Set/Delete calls on the
// same key converge to whichever carries the later Tag, independent of the
// order replicas observe them in.
type Map struct {
	entries map[string]entry
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{entries: make(map[string]entry)}
}

// Set installs value under key if tag wins against the key's current entry
// (or the key is absent). Returns true if the write took effect.
func (m *Map) Set(key string, tag Tag, value json.RawMessage) bool {
	cur, ok := m.entries[key]
	if ok && !tag.After(cur.Tag) {
		return false
	}
	m.entries[key] = entry{Tag: tag, Value: value}
	return true
}

// Delete tombstones key if tag wins against its current entry. A tombstoned
// key is excluded from Keys/Get but still participates in merge so a late
// concurrent Set cannot resurrect an intentionally-deleted value unless its
// Tag is actually later.
func (m *Map) Delete(key string, tag Tag) bool {
	cur, ok := m.entries[key]
	if ok && !tag.After(cur.Tag) {
		return false
	}
	m.entries[key] = entry{Tag: tag, Tombstone: true}
	return true
}

// Get returns the raw value stored under key and whether it is present
// (live, not tombstoned).
func (m *Map) Get(key string) (json.RawMessage, bool) {
	e, ok := m.entries[key]
	if !ok || e.Tombstone {
		return nil, false
	}
	return e.Value, true
}

// Keys returns the live (non-tombstoned) keys, in no particular order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k, e := range m.entries {
		if !e.Tombstone {
			keys = append(keys, k)
		}
	}
	return keys
}

// Merge folds other's entries into m, keeping the later Tag per key. Merge is
// commutative, associative, and idempotent, so repeated or reordered merges
// of the same update set always leave m in the same observable state.
func (m *Map) Merge(other *Map) {
	for k, e := range other.entries {
		cur, ok := m.entries[k]
		if !ok || e.Tag.After(cur.Tag) {
			m.entries[k] = e
		}
	}
}

// snapshot returns a deep-enough copy of the entries for encoding.
func (m *Map) snapshot() map[string]entry {
	out := make(map[string]entry, len(m.entries))
	for k, e := range m.entries {
		out[k] = e
	}
	return out
}

func (m *Map) restore(snap map[string]entry) {
	other := &Map{entries: snap}
	m.Merge(other)
}
