// Package transport provides a concrete realtime transport for
// internal/syncdoc: an HTTP long-poll hub. syncdoc.Document depends only on
// the syncdoc.Transport/Conn ports; this package is one implementation of
// them, swappable for any other message channel.
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// longPollTimeout bounds how long a GET .../updates request blocks waiting
// for a new update before returning 204 No Content.
const longPollTimeout = 25 * time.Second

// Hub fans opaque CRDT update messages out to every replica currently
// long-polling a document. It holds no document state of its own: the
// messages it relays are syncdoc wire-format snapshots, and the hub
// never decodes them.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string][]chan []byte
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string][]chan []byte)}
}

// Router builds a gorilla/mux router exposing the hub's publish/subscribe
// endpoints for every document id.
func (h *Hub) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/documents/{id}/updates", h.handlePublish).Methods(http.MethodPost)
	r.HandleFunc("/documents/{id}/updates", h.handlePoll).Methods(http.MethodGet)
	return r
}

func (h *Hub) handlePublish(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		Data []byte `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.broadcast(id, body.Data)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Hub) handlePoll(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sub := h.subscribe(id)
	defer h.unsubscribe(id, sub)

	ctx, cancel := context.WithTimeout(r.Context(), longPollTimeout)
	defer cancel()

	select {
	case data := <-sub:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Data []byte `json:"data"`
		}{Data: data})
	case <-ctx.Done():
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Hub) subscribe(documentID string) chan []byte {
	ch := make(chan []byte, 8)
	h.mu.Lock()
	h.subscribers[documentID] = append(h.subscribers[documentID], ch)
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(documentID string, ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subscribers[documentID]
	for i, s := range subs {
		if s == ch {
			h.subscribers[documentID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

func (h *Hub) broadcast(documentID string, data []byte) {
	h.mu.Lock()
	subs := append([]chan []byte(nil), h.subscribers[documentID]...)
	h.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- data:
		default:
		}
	}
}
