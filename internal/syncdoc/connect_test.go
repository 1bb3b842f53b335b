package syncdoc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memConn and memTransport are an in-memory fake Transport for tests: both
// endpoints of a pipe, so two Documents can Connect to the "same document"
// and exchange updates without a real network.
type memConn struct {
	mu     sync.Mutex
	peer   *memConn
	ch     chan []byte
	closed bool
}

func newMemPipe() (*memConn, *memConn) {
	a := &memConn{ch: make(chan []byte, 16)}
	b := &memConn{ch: make(chan []byte, 16)}
	a.peer, b.peer = b, a
	return a, b
}

func (c *memConn) Send(ctx context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("closed")
	}
	select {
	case c.peer.ch <- data:
	default:
	}
	return nil
}

func (c *memConn) Updates() <-chan []byte { return c.ch }

func (c *memConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
	return nil
}

type fakeTransport struct {
	conn      Conn
	failErr   error
	blockChan chan struct{}
}

func (f *fakeTransport) Open(ctx context.Context, url, documentID string) (Conn, error) {
	if f.blockChan != nil {
		select {
		case <-f.blockChan:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.conn, nil
}

func TestConnect_PublishesInitialState(t *testing.T) {
	connA, connB := newMemPipe()

	a := New("a")
	require.NoError(t, a.Transaction(OriginLocal, func(tx *Tx) error {
		return tx.SetTask("t1", sampleTask("t1", "Design"))
	}))

	b := New("b")
	require.NoError(t, a.Connect(context.Background(), &fakeTransport{conn: connA}, "ws://x", "doc1"))
	require.NoError(t, b.Connect(context.Background(), &fakeTransport{conn: connB}, "ws://x", "doc1"))

	require.Eventually(t, func() bool {
		tasks, err := b.Tasks()
		return err == nil && len(tasks) == 1
	}, time.Second, 5*time.Millisecond)

	assert.True(t, a.GetStatus().Connected)
	assert.True(t, b.GetStatus().Connected)
}

func TestConnect_CancellationSetsCancelledError(t *testing.T) {
	d := New("a")
	block := make(chan struct{}) // never closed: Open blocks until ctx is done
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		_ = d.Connect(ctx, &fakeTransport{blockChan: block}, "ws://x", "doc1")
		close(done)
	}()

	cancel()
	<-done

	s := d.GetStatus()
	assert.False(t, s.Connected)
	assert.Equal(t, "cancelled", s.Error)
}

func TestDisconnectThenReconnect_Converges(t *testing.T) {
	connA, connB := newMemPipe()

	a := New("a")
	b := New("b")
	require.NoError(t, a.Connect(context.Background(), &fakeTransport{conn: connA}, "ws://x", "doc1"))
	require.NoError(t, b.Connect(context.Background(), &fakeTransport{conn: connB}, "ws://x", "doc1"))

	a.Disconnect()
	assert.False(t, a.GetStatus().Connected)

	// Edit while disconnected: B should still receive it once reconnected.
	require.NoError(t, a.Transaction(OriginLocal, func(tx *Tx) error {
		return tx.SetTask("offline", sampleTask("offline", "Made while disconnected"))
	}))

	connA2, connB2 := newMemPipe()
	_ = connB // retire old pipe ends
	require.NoError(t, a.Connect(context.Background(), &fakeTransport{conn: connA2}, "ws://x", "doc1"))
	require.NoError(t, b.Connect(context.Background(), &fakeTransport{conn: connB2}, "ws://x", "doc1"))

	require.Eventually(t, func() bool {
		tasks, err := b.Tasks()
		return err == nil && len(tasks) >= 1
	}, time.Second, 5*time.Millisecond)

	tasksB, err := b.Tasks()
	require.NoError(t, err)
	assert.Contains(t, tasksB, "offline")
}
