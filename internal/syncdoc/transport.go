package syncdoc

import "context"

// Conn is one open transport session for a document, as returned by
// Transport.Open. Updates delivers inbound CRDT update messages (opaque
// bytes, same format as a Document snapshot) until the
// connection closes, at which point the channel is closed.
type Conn interface {
	Send(ctx context.Context, update []byte) error
	Updates() <-chan []byte
	Close() error
}

// Transport is the document's port onto the realtime transport
// (§1's "Transport" external collaborator). internal/transport provides a
// concrete HTTP long-poll implementation; tests use an in-memory fake.
type Transport interface {
	Open(ctx context.Context, url, documentID string) (Conn, error)
}
