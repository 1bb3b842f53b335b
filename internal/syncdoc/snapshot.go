package syncdoc

import (
	"encoding/json"
	"fmt"
)

// wireSnapshot is the on-the-wire/on-disk encoding of a Document's full
// state. A snapshot is just an update that happens to encode everything, so
// the same struct backs both CreateSnapshot and the update payloads Connect
// publishes over the Transport.
type wireSnapshot struct {
	Tasks       map[string]entry      `json:"tasks"`
	Projects    map[string]entry      `json:"projects"`
	TeamMembers map[string]entry      `json:"team_members"`
	Findings    map[string]seqElement `json:"findings"`
}

// CreateSnapshot serializes the document's full current state to opaque
// bytes, suitable for local persistence or for sending as a Transport update.
func (d *Document) CreateSnapshot() []byte {
	d.mu.Lock()
	snap := wireSnapshot{
		Tasks:       d.tasks.snapshot(),
		Projects:    d.projects.snapshot(),
		TeamMembers: d.teamMembers.snapshot(),
		Findings:    d.findings.snapshot(),
	}
	d.mu.Unlock()

	data, _ := json.Marshal(snap)
	return data
}

// RestoreFromSnapshot merges a snapshot's state into the local replica via
// the same CRDT merge Transport updates use. This is never destructive:
// concurrent edits the snapshot doesn't know about survive, because Merge
// only overwrites entries whose Tag is older than the snapshot's.
func (d *Document) RestoreFromSnapshot(data []byte) error {
	var snap wireSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	d.mu.Lock()
	d.tasks.restore(snap.Tasks)
	d.projects.restore(snap.Projects)
	d.teamMembers.restore(snap.TeamMembers)
	d.findings.restore(snap.Findings)
	d.mu.Unlock()

	d.fireChange(ChangeEvent{
		Origin:      "remote",
		Tasks:       mapKeys(snap.Tasks),
		Projects:    mapKeys(snap.Projects),
		TeamMembers: mapKeys(snap.TeamMembers),
		Findings:    mapKeys(snap.Findings),
	})
	return nil
}

func mapKeys[K comparable, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
