package syncdoc

import (
	"context"
	"errors"
	"time"
)

// Connect opens a transport session for documentID at url and starts
// exchanging CRDT updates: the replica's current state is published
// immediately, every subsequent local transaction republishes it, and
// inbound updates are merged as they arrive. Connect is cancellable via ctx;
// cancellation during the dial transitions status to
// {connected:false, error:"cancelled"} rather than leaving it pending.
func (d *Document) Connect(ctx context.Context, transport Transport, url, documentID string) error {
	cctx, cancel := context.WithCancel(ctx)

	conn, err := transport.Open(cctx, url, documentID)
	if err != nil {
		cancel()
		msg := err.Error()
		if errors.Is(err, context.Canceled) {
			msg = "cancelled"
		}
		d.setStatus(Status{Connected: false, Error: msg})
		return err
	}

	d.mu.Lock()
	d.conn = conn
	d.cancel = cancel
	d.mu.Unlock()

	d.setStatus(Status{Connected: true})

	go d.readLoop(cctx, conn)

	snap := d.CreateSnapshot()
	return d.publish(cctx, snap)
}

// Disconnect tears down the current transport session, if any. The document
// remains fully usable in memory; reconnecting resumes from the same state
// plus whatever remote updates are merged afterward.
func (d *Document) Disconnect() {
	d.mu.Lock()
	conn := d.conn
	cancel := d.cancel
	d.conn = nil
	d.cancel = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close()
	}
	d.setStatus(Status{Connected: false})
}

func (d *Document) readLoop(ctx context.Context, conn Conn) {
	updates := conn.Updates()
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-updates:
			if !ok {
				return
			}
			d.mergeUpdate(data)
		}
	}
}

func (d *Document) mergeUpdate(data []byte) {
	prev := d.GetStatus()
	prev.Syncing = true
	d.setStatus(prev)

	if err := d.RestoreFromSnapshot(data); err != nil {
		s := d.GetStatus()
		s.Syncing = false
		s.Error = err.Error()
		d.setStatus(s)
		return
	}

	d.persistLocal(context.Background())

	now := time.Now()
	d.setStatus(Status{Connected: true, Syncing: false, LastSyncTime: &now})
}

// notifyLocalTransaction republishes the document's current state after a
// local transaction, if currently connected.
func (d *Document) notifyLocalTransaction() {
	d.mu.Lock()
	conn := d.conn
	d.mu.Unlock()
	if conn == nil {
		return
	}
	s := d.GetStatus()
	s.PendingChanges++
	d.setStatus(s)

	_ = d.publish(context.Background(), d.CreateSnapshot())
}

func (d *Document) publish(ctx context.Context, snap []byte) error {
	d.mu.Lock()
	conn := d.conn
	d.mu.Unlock()
	if conn == nil {
		return nil
	}
	if err := conn.Send(ctx, snap); err != nil {
		s := d.GetStatus()
		s.Error = err.Error()
		d.setStatus(s)
		return err
	}
	now := time.Now()
	s := d.GetStatus()
	s.PendingChanges = 0
	s.LastSyncTime = &now
	d.setStatus(s)
	return nil
}
