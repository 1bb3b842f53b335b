package syncdoc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/kairos/internal/domain"
)

// ChangeEvent describes the keys touched by one transaction. A single
// transaction produces exactly one ChangeEvent, even if it wrote many keys
// across many collections.
type ChangeEvent struct {
	Origin      string
	Tasks       []string
	Projects    []string
	TeamMembers []string
	Findings    []string
}

func (c ChangeEvent) empty() bool {
	return len(c.Tasks) == 0 && len(c.Projects) == 0 && len(c.TeamMembers) == 0 && len(c.Findings) == 0
}

// Document is the replicated project document: tasks/projects/team_members
// maps plus an ordered audit_findings sequence, each a CRDT, mutated only
// through transactions so observers see whole transactions or nothing.
//
// Document serializes all mutation onto its own mutex. Change, awareness and
// status callbacks run synchronously on the mutating goroutine after that
// mutex is released; a Transaction's fn runs while the mutex is held and
// must not call back into the Document.
type Document struct {
	mu sync.Mutex

	replicaID string
	clock     uint64

	tasks       *Map
	projects    *Map
	teamMembers *Map
	findings    *Sequence

	changeHandlers []func(ChangeEvent)

	history *undoHistory

	awareness *awarenessState

	status         Status
	statusHandlers []func(Status)

	conn   Conn
	cancel func()

	persistence *persistenceBinding
}

// New creates an empty Document replicated under replicaID (typically a
// google/uuid value; see cli wiring).
func New(replicaID string) *Document {
	return &Document{
		replicaID:   replicaID,
		tasks:       NewMap(),
		projects:    NewMap(),
		teamMembers: NewMap(),
		findings:    NewSequence(),
		history:     newUndoHistory(),
		awareness:   newAwarenessState(),
	}
}

// ReplicaID returns this replica's identity.
func (d *Document) ReplicaID() string { return d.replicaID }

func (d *Document) nextTag() Tag {
	d.clock++
	return Tag{Timestamp: time.Now().UnixNano(), Replica: fmt.Sprintf("%s#%d", d.replicaID, d.clock)}
}

// OnChange subscribes fn to every future transaction's ChangeEvent.
func (d *Document) OnChange(fn func(ChangeEvent)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changeHandlers = append(d.changeHandlers, fn)
}

func (d *Document) fireChange(evt ChangeEvent) {
	if evt.empty() {
		return
	}
	d.mu.Lock()
	handlers := append([]func(ChangeEvent){}, d.changeHandlers...)
	d.mu.Unlock()
	for _, h := range handlers {
		h(evt)
	}
}

// Tx is the mutation surface available inside Transaction. Every call is
// applied immediately to the underlying CRDTs (so later calls in the same
// transaction see earlier ones) but the ChangeEvent they collectively
// produce is only delivered to observers once, after the transaction's fn
// returns without error.
type Tx struct {
	doc    *Document
	origin string
	evt    ChangeEvent
	undo   []undoStep
}

// SetTask upserts a task under id.
func (tx *Tx) SetTask(id string, t domain.Task) error {
	return tx.set(tx.doc.tasks, &tx.evt.Tasks, id, t)
}

// DeleteTask removes a task.
func (tx *Tx) DeleteTask(id string) {
	tx.delete(tx.doc.tasks, &tx.evt.Tasks, id)
}

// SetProject upserts a project under id.
func (tx *Tx) SetProject(id string, p domain.Project) error {
	return tx.set(tx.doc.projects, &tx.evt.Projects, id, p)
}

// DeleteProject removes a project.
func (tx *Tx) DeleteProject(id string) {
	tx.delete(tx.doc.projects, &tx.evt.Projects, id)
}

// SetTeamMember upserts a team member under id.
func (tx *Tx) SetTeamMember(id string, m domain.TeamMember) error {
	return tx.set(tx.doc.teamMembers, &tx.evt.TeamMembers, id, m)
}

// DeleteTeamMember removes a team member.
func (tx *Tx) DeleteTeamMember(id string) {
	tx.delete(tx.doc.teamMembers, &tx.evt.TeamMembers, id)
}

// AppendFinding inserts a finding at the end of the audit trail (after the
// sequence's current last live element) and returns its assigned id.
func (tx *Tx) AppendFinding(f domain.AuditFinding) (string, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("marshaling finding: %w", err)
	}
	id := tx.doc.nextElementID()
	after := tx.doc.lastFindingID()
	tx.doc.findings.Insert(id, after, raw)
	tx.evt.Findings = append(tx.evt.Findings, id)
	tx.undo = append(tx.undo, undoStep{kind: undoInsertFinding, id: id})
	return id, nil
}

// DeleteFinding tombstones a finding.
func (tx *Tx) DeleteFinding(id string) {
	tag := tx.doc.nextTag()
	before, existed := tx.doc.findingEntrySnapshot(id)
	if tx.doc.findings.Delete(id, tag) {
		tx.evt.Findings = append(tx.evt.Findings, id)
		tx.undo = append(tx.undo, undoStep{kind: undoDeleteFinding, id: id, beforeElement: before, elementExisted: existed})
	}
}

func (tx *Tx) set(m *Map, touched *[]string, id string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", id, err)
	}
	tag := tx.doc.nextTag()
	before, existed := m.entries[id]
	if m.Set(id, tag, raw) {
		*touched = append(*touched, id)
		tx.undo = append(tx.undo, undoStep{kind: undoSetMap, collection: m, id: id, before: before, beforeExisted: existed})
	}
	return nil
}

func (tx *Tx) delete(m *Map, touched *[]string, id string) {
	tag := tx.doc.nextTag()
	before, existed := m.entries[id]
	if m.Delete(id, tag) {
		*touched = append(*touched, id)
		tx.undo = append(tx.undo, undoStep{kind: undoSetMap, collection: m, id: id, before: before, beforeExisted: existed})
	}
}

// Transaction runs fn with a Tx that mutates the document, then fires a
// single ChangeEvent covering everything fn touched. If fn returns an error,
// the partial mutations it already applied are NOT rolled back (CRDT writes
// are individually valid operations); callers that need atomicity should
// validate before calling Transaction.
func (d *Document) Transaction(origin string, fn func(tx *Tx) error) error {
	d.mu.Lock()
	tx := &Tx{doc: d, origin: origin}
	err := fn(tx)
	if err == nil {
		tx.evt.Origin = origin
		if origin == OriginLocal && len(tx.undo) > 0 {
			d.history.pushLocal(tx.undo)
		}
	}
	d.mu.Unlock()

	if err != nil {
		return err
	}
	d.fireChange(tx.evt)
	d.persistLocal(context.Background())
	d.notifyLocalTransaction()
	return nil
}

// OriginLocal marks a transaction as this replica's own edit, eligible for
// undo/redo. Any other origin string (e.g. a replica id) is treated as
// remote and excluded from the local undo history.
const OriginLocal = "local"

// nextElementID mints a globally-unique sequence element id.
func (d *Document) nextElementID() string {
	d.clock++
	return fmt.Sprintf("%s#%d", d.replicaID, d.clock)
}

func (d *Document) lastFindingID() string {
	ids := d.findings.IDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1]
}

func (d *Document) findingEntrySnapshot(id string) (seqElement, bool) {
	e, ok := d.findings.elements[id]
	return e, ok
}

// Tasks returns every live task, decoded, keyed by id.
func (d *Document) Tasks() (map[string]domain.Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return decodeMap[domain.Task](d.tasks)
}

// Task returns one decoded task.
func (d *Document) Task(id string) (domain.Task, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, ok := d.tasks.Get(id)
	if !ok {
		return domain.Task{}, false, nil
	}
	var t domain.Task
	if err := json.Unmarshal(raw, &t); err != nil {
		return domain.Task{}, false, fmt.Errorf("decoding task %s: %w", id, err)
	}
	return t, true, nil
}

// Projects returns every live project, decoded, keyed by id.
func (d *Document) Projects() (map[string]domain.Project, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return decodeMap[domain.Project](d.projects)
}

// TeamMembers returns every live team member, decoded, keyed by id.
func (d *Document) TeamMembers() (map[string]domain.TeamMember, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return decodeMap[domain.TeamMember](d.teamMembers)
}

// Findings returns every live finding, in audit-trail order.
func (d *Document) Findings() ([]domain.AuditFinding, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []domain.AuditFinding
	for _, raw := range d.findings.Values() {
		var f domain.AuditFinding
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decoding finding: %w", err)
		}
		out = append(out, f)
	}
	return out, nil
}

func decodeMap[T any](m *Map) (map[string]T, error) {
	out := make(map[string]T, len(m.entries))
	for _, key := range m.Keys() {
		raw, _ := m.Get(key)
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}
