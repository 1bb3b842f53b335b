// Package offlinequeue implements the offline operation queue, a companion
// store to the replicated CRDT document. Where the
// CRDT document merges concurrent edits into one converged value, the queue
// instead remembers each individual edit made while disconnected, in order,
// so a caller can inspect what is still pending, detect operations that
// touch the same entity, and resolve them into a single merged value before
// replaying them against the document.
package offlinequeue

import (
	"context"
	"encoding/json"
	"fmt"
)

// OpType is the kind of change a queued Operation records.
type OpType string

const (
	OpCreate OpType = "create"
	OpUpdate OpType = "update"
	OpDelete OpType = "delete"
)

// Operation is one offline mutation recorded against an entity.
type Operation struct {
	ID        string
	Type      OpType
	Entity    string
	EntityID  string
	Data      json.RawMessage
	Timestamp int64
}

// Strategy picks which side of a conflicting pair of operations wins on
// overlapping fields when ResolveConflicts merges them.
type Strategy string

const (
	LastWriteWins  Strategy = "last_write_wins"
	FirstWriteWins Strategy = "first_write_wins"
)

// Store is the companion key-value + operation-queue persistence port.
// internal/repository provides a SQLite-backed implementation over the
// offline_operations table; save/load also cover the small user-settable
// metadata map that sits alongside the CRDT snapshot.
type Store interface {
	Save(ctx context.Context, namespace, key string, value []byte) error
	Load(ctx context.Context, namespace, key string) ([]byte, bool, error)

	QueueOperation(ctx context.Context, op Operation) error
	PendingOperations(ctx context.Context) ([]Operation, error)
	RemoveOperation(ctx context.Context, id string) error
	QueueCount(ctx context.Context) (int, error)
	ClearQueue(ctx context.Context) error

	EstimateStorageSize(ctx context.Context) (int64, error)
	ClearAll(ctx context.Context) error
}

// Queue is the offline queue's in-process API: a thin, ordering-aware
// wrapper over a Store. It does not hold any state of its own beyond the
// store handle, so multiple Queue values over the same Store see the same
// data.
type Queue struct {
	store Store
}

// New wraps store as a Queue.
func New(store Store) *Queue {
	return &Queue{store: store}
}

// Save persists a namespaced key-value pair (the metadata surface).
func (q *Queue) Save(ctx context.Context, namespace, key string, value []byte) error {
	return q.store.Save(ctx, namespace, key, value)
}

// Load retrieves a namespaced key-value pair.
func (q *Queue) Load(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	return q.store.Load(ctx, namespace, key)
}

// QueueOperation records one offline mutation.
func (q *Queue) QueueOperation(ctx context.Context, op Operation) error {
	if op.ID == "" {
		return fmt.Errorf("offlinequeue: operation id is required")
	}
	return q.store.QueueOperation(ctx, op)
}

// GetPendingOperations returns every queued operation ordered by timestamp
// ascending, ties broken by insertion order.
func (q *Queue) GetPendingOperations(ctx context.Context) ([]Operation, error) {
	ops, err := q.store.PendingOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pending operations: %w", err)
	}
	return ops, nil
}

// RemoveOperation deletes a queued operation once it has been applied.
func (q *Queue) RemoveOperation(ctx context.Context, id string) error {
	return q.store.RemoveOperation(ctx, id)
}

// GetQueueCount reports how many operations are still pending.
func (q *Queue) GetQueueCount(ctx context.Context) (int, error) {
	return q.store.QueueCount(ctx)
}

// ClearQueue discards every pending operation without applying them.
func (q *Queue) ClearQueue(ctx context.Context) error {
	return q.store.ClearQueue(ctx)
}

// DetectConflicts returns every queued operation touching entity/entityID,
// in queue order. Fewer than two results means there is nothing to resolve.
func (q *Queue) DetectConflicts(ctx context.Context, entity, entityID string) ([]Operation, error) {
	all, err := q.store.PendingOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("detecting conflicts: %w", err)
	}
	var out []Operation
	for _, op := range all {
		if op.Entity == entity && op.EntityID == entityID {
			out = append(out, op)
		}
	}
	return out, nil
}

// ResolveConflicts merges every queued operation touching entity/entityID
// into a single JSON object: both strategies union
// every key across all operations' Data; they differ only in which
// operation's value wins when a key appears in more than one. A delete
// operation contributes no fields and is skipped, so it does not remove
// fields contributed by other operations on the same entity.
func (q *Queue) ResolveConflicts(ctx context.Context, entity, entityID string, strategy Strategy) (map[string]json.RawMessage, error) {
	ops, err := q.DetectConflicts(ctx, entity, entityID)
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	ordered := make([]Operation, len(ops))
	copy(ordered, ops)
	sortByTimestamp(ordered)
	if strategy == FirstWriteWins {
		reverse(ordered)
	}
	// ordered now runs from the losing side to the winning side: later
	// iterations overwrite earlier ones on overlapping keys, which is exactly
	// what both strategies need once the iteration order above is picked.

	merged := map[string]json.RawMessage{}
	for _, op := range ordered {
		if op.Type == OpDelete || len(op.Data) == 0 {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(op.Data, &fields); err != nil {
			return nil, fmt.Errorf("decoding operation %s: %w", op.ID, err)
		}
		for k, v := range fields {
			merged[k] = v
		}
	}
	return merged, nil
}

// EstimateStorageSize reports the queue and key-value store's on-disk size
// in bytes.
func (q *Queue) EstimateStorageSize(ctx context.Context) (int64, error) {
	return q.store.EstimateStorageSize(ctx)
}

// ClearAll erases the queue and every saved key-value entry.
func (q *Queue) ClearAll(ctx context.Context) error {
	return q.store.ClearAll(ctx)
}

func sortByTimestamp(ops []Operation) {
	// insertion sort: queues are small and this keeps equal-timestamp
	// operations in their original (insertion) order, which is the queue's
	// documented tie-break.
	for i := 1; i < len(ops); i++ {
		for j := i; j > 0 && ops[j].Timestamp < ops[j-1].Timestamp; j-- {
			ops[j], ops[j-1] = ops[j-1], ops[j]
		}
	}
}

func reverse(ops []Operation) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}
