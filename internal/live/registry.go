// Package live holds the real-time core: the registry of open per-user
// connections and the dispatcher that fans events out to them. Nothing in
// this package touches durable state.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Registry maps a user id to their currently open connections. It is shared
// between the connection lifecycle and the dispatch path, so every access
// goes through the lock. Registrations for the same user are additive.
type Registry struct {
	mu    sync.RWMutex
	conns map[uint]map[*Client]struct{}
	log   *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		conns: make(map[uint]map[*Client]struct{}),
		log:   log,
	}
}

// Register adds the client and immediately acknowledges it with a
// "connected" event carrying the assigned identity.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	set, ok := r.conns[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		r.conns[c.UserID] = set
	}
	set[c] = struct{}{}
	total := len(set)
	r.mu.Unlock()

	r.log.Info("connection registered", "connection", c.ID, "user", c.UserID, "open", total)

	ack, _ := json.Marshal(Event{
		Type:      EventConnected,
		UserID:    c.UserID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	c.Enqueue(ack)
}

// Unregister removes the client and closes it. Removing a client that was
// never registered, or was already removed, is a no-op.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	if set, ok := r.conns[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(r.conns, c.UserID)
		}
	}
	r.mu.Unlock()

	c.Close()
	r.log.Info("connection unregistered", "connection", c.ID, "user", c.UserID)
}

// ConnectionsFor returns a snapshot of the user's open connections, possibly
// empty. The snapshot is safe to iterate while the registry keeps moving.
func (r *Registry) ConnectionsFor(userID uint) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.conns[userID]
	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	return clients
}

// Shutdown closes every open connection. Used at process teardown.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, set := range r.conns {
		for c := range set {
			c.Close()
		}
	}
	r.conns = make(map[uint]map[*Client]struct{})
}
