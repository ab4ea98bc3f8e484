package presence

import (
	"sync"

	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

// Conn is a live, addressable connection capable of receiving events.
// Implementations must be comparable (pointer types), since the registry
// removes entries by matching the stored handle value.
type Conn interface {
	Send(event string, payload interface{}) error
}

// Registry is the process-wide mapping from identity to its active
// connection. At most one entry per identity; the newest registration wins.
// All access goes through Register/Unregister/Lookup under one mutex; the
// raw map never escapes.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.IdentityID]Conn
}

// NewRegistry returns an empty presence registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.IdentityID]Conn)}
}

// Register inserts or overwrites the mapping for identityID. An existing
// mapping to a different connection is silently superseded.
func (r *Registry) Register(identityID domain.IdentityID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[identityID] = conn
}

// Unregister removes every identity currently mapped to this exact
// connection; a connection that re-identified under a second identity is
// cleared from both. A connection that never identified, or that was
// already superseded by a newer registration for the same identity, is a
// no-op: removal is keyed by the stored handle value, not by identity.
func (r *Registry) Unregister(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.conns {
		if c == conn {
			delete(r.conns, id)
		}
	}
}

// Lookup returns the live connection for identityID, or false when absent.
func (r *Registry) Lookup(identityID domain.IdentityID) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[identityID]
	return c, ok
}

// Len reports the number of live entries. Used for the connected-clients
// metric.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
