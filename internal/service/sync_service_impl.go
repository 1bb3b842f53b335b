package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/kairos/internal/db"
	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/alexanderramin/kairos/internal/offlinequeue"
	"github.com/alexanderramin/kairos/internal/repository"
	"github.com/alexanderramin/kairos/internal/syncdoc"
)

// SyncSession composes the replicated document (internal/syncdoc) with its
// companion offline queue (internal/offlinequeue) for one document id, and
// bridges both to the relational store (internal/repository). The CRDT and
// the relational store have different merge semantics and different failure
// modes, so neither package knows about the other; SyncSession is the
// orchestrator that reconciles them, kept outside internal/syncdoc so the
// CRDT package stays store-agnostic.
type SyncSession struct {
	Document *syncdoc.Document
	Queue    *offlinequeue.Queue

	uow        db.UnitOfWork
	documentID string
}

// NewSyncSession builds a session for documentID under replicaID, wiring
// persistence and the offline queue store. Store writes that span multiple
// rows (queue replay, project pulls) run through uow so a mid-batch failure
// rolls back cleanly. Callers that also want realtime sync call
// Document.Connect separately with an internal/transport.Transport.
func NewSyncSession(replicaID string, persistence syncdoc.Persistence, documentID string, uow db.UnitOfWork, queueStore offlinequeue.Store) *SyncSession {
	doc := syncdoc.New(replicaID)
	doc.EnablePersistence(persistence, documentID, "sqlite")
	return &SyncSession{
		Document:   doc,
		Queue:      offlinequeue.New(queueStore),
		uow:        uow,
		documentID: documentID,
	}
}

// PullProjectTasks loads projectID's current tasks from the relational store
// and writes them into the document in a single document transaction, so a
// newly-opened replica starts from the store's view rather than an empty
// document. The read runs inside a store transaction so the document seeds
// from one consistent snapshot of the task set.
func (s *SyncSession) PullProjectTasks(ctx context.Context, projectID string) error {
	var taskPtrs []*domain.Task
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		taskPtrs, err = repository.NewSQLiteTaskRepo(tx).ListByProject(ctx, projectID)
		return err
	})
	if err != nil {
		return fmt.Errorf("loading tasks for project %s: %w", projectID, err)
	}
	return s.Document.Transaction(syncdoc.OriginLocal, func(tx *syncdoc.Tx) error {
		for _, t := range taskPtrs {
			if err := tx.SetTask(t.ID, *t); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplayQueue applies every pending task operation to the relational store,
// in timestamp order, removing each one as it is applied; operations on any
// other entity are skipped and stay queued. The whole
// batch runs in one store transaction: if any operation fails to apply, the
// transaction rolls back and every operation stays queued, so a later retry
// (or a conflict resolution pass via Queue.ResolveConflicts) sees the queue
// exactly as it was.
func (s *SyncSession) ReplayQueue(ctx context.Context) (int, error) {
	ops, err := s.Queue.GetPendingOperations(ctx)
	if err != nil {
		return 0, err
	}
	if len(ops) == 0 {
		return 0, nil
	}

	applied := 0
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txQueue := offlinequeue.New(repository.NewSQLiteOfflineQueueStore(tx, s.documentID))
		for _, op := range ops {
			if op.Entity != "task" {
				continue
			}
			if err := applyTaskOp(ctx, txTasks, op); err != nil {
				return fmt.Errorf("replaying operation %s: %w", op.ID, err)
			}
			if err := txQueue.RemoveOperation(ctx, op.ID); err != nil {
				return fmt.Errorf("removing applied operation %s: %w", op.ID, err)
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err // rolled back: nothing was applied or removed
	}
	return applied, nil
}

func applyTaskOp(ctx context.Context, tasks repository.TaskRepo, op offlinequeue.Operation) error {
	switch op.Type {
	case offlinequeue.OpDelete:
		return tasks.Delete(ctx, op.EntityID)
	case offlinequeue.OpCreate, offlinequeue.OpUpdate:
		var t domain.Task
		if err := json.Unmarshal(op.Data, &t); err != nil {
			return fmt.Errorf("decoding queued task %s: %w", op.EntityID, err)
		}
		if op.Type == offlinequeue.OpCreate {
			return tasks.Create(ctx, &t)
		}
		return tasks.Update(ctx, &t)
	default:
		return fmt.Errorf("unknown operation type %q", op.Type)
	}
}
