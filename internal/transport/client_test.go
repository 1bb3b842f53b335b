package transport

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTPTransportRoundTrip(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Router())
	defer srv.Close()

	tr := NewHTTPTransport(srv.Client())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connA, err := tr.Open(ctx, srv.URL, "doc-1")
	require.NoError(t, err)
	defer connA.Close()

	connB, err := tr.Open(ctx, srv.URL, "doc-1")
	require.NoError(t, err)
	defer connB.Close()

	require.NoError(t, connA.Send(ctx, []byte(`{"hello":"world"}`)))

	select {
	case data := <-connB.Updates():
		require.JSONEq(t, `{"hello":"world"}`, string(data))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for broadcast update")
	}
}

func TestHTTPTransportScopesByDocumentID(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Router())
	defer srv.Close()

	tr := NewHTTPTransport(srv.Client())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connA, err := tr.Open(ctx, srv.URL, "doc-a")
	require.NoError(t, err)
	defer connA.Close()

	connOther, err := tr.Open(ctx, srv.URL, "doc-b")
	require.NoError(t, err)
	defer connOther.Close()

	require.NoError(t, connA.Send(ctx, []byte(`{"scoped":true}`)))

	select {
	case data := <-connOther.Updates():
		t.Fatalf("unexpected cross-document update: %s", data)
	case <-time.After(200 * time.Millisecond):
	}
}
