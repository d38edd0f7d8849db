/*
Package chat contains the core logic for presence tracking and real-time message delivery.

This file defines the connection Registry, the single piece of shared mutable state in
the process. It maps each authenticated user ID to at most one live connection and
exposes a minimal atomic API; callers never inspect-then-mutate across two calls.
*/
package chat

import (
	"sort"
	"sync"
)

// Peer is the registry's view of one live connection bound to a user.
// The concrete implementation is the WebSocket Client; tests substitute stubs.
type Peer interface {
	// UserID returns the authenticated identity the connection is bound to.
	UserID() string

	// Enqueue places an encoded event on the connection's outbound queue without
	// blocking. It returns an error when the queue is full or already closed.
	Enqueue(data []byte) error

	// Kick closes the connection, signalling the given reason to the client.
	Kick(reason string)
}

// Registry is a concurrency-safe mapping from user ID to the user's single live
// connection. A new connection for the same identity supersedes the previous one.
type Registry struct {
	// mu protects access to the peers map.
	mu sync.RWMutex

	// peers holds the currently registered connections, keyed by user ID.
	peers map[string]Peer
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		peers: make(map[string]Peer),
	}
}

// Register inserts the connection under its user ID. If an entry already exists
// for that identity it is replaced atomically and returned to the caller, which
// is responsible for closing it (single-live-connection-per-user policy).
func (r *Registry) Register(p Peer) Peer {
	r.mu.Lock()
	defer r.mu.Unlock()

	superseded := r.peers[p.UserID()]
	if superseded == p {
		return nil
	}
	r.peers[p.UserID()] = p

	return superseded
}

// Unregister removes the mapping only if the stored connection is the one passed
// in. A stale disconnect from a superseded connection must not evict a newer one.
// It reports whether a removal occurred.
func (r *Registry) Unregister(p Peer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.peers[p.UserID()]
	if !ok || current != p {
		return false
	}

	delete(r.peers, p.UserID())
	return true
}

// Lookup returns the current connection for the user, or nil when offline.
func (r *Registry) Lookup(userID string) Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.peers[userID]
}

// OnlineIDs returns a sorted snapshot of the user IDs currently holding a live
// connection. The online set is derived from the registry keys and never cached.
func (r *Registry) OnlineIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.peers))
	for id := range r.peers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Snapshot returns the currently registered connections for fan-out iteration.
func (r *Registry) Snapshot() []Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	peers := make([]Peer, 0, len(r.peers))
	for _, p := range r.peers {
		peers = append(peers, p)
	}

	return peers
}
