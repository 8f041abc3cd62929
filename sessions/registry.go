// Package sessions keeps short-lived per-tenant sessions in memory.
package sessions

import (
	"sync"
	"time"

	"propdesk/utils"
)

// Session is anything the registry can hold and reap.
type Session interface {
	Tenant() string
	LastSeen() time.Time
	Close()
}

// Registry maps session ids to sessions. Lookups check the tenant so one
// tenant can never reach another tenant's session by id.
type Registry[T Session] struct {
	mu       sync.RWMutex
	sessions map[string]T
}

func NewRegistry[T Session]() *Registry[T] {
	return &Registry[T]{sessions: make(map[string]T)}
}

func (r *Registry[T]) Put(id string, s T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = s
}

func (r *Registry[T]) Get(tenantID, id string) (T, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	var zero T
	if !ok || s.Tenant() != tenantID {
		return zero, utils.ErrSessionNotFound
	}
	return s, nil
}

// Remove closes and forgets a session. Removing an unknown id is a no-op.
func (r *Registry[T]) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.Close()
	}
}

// Prune closes every session idle for longer than idle and returns how many
// were removed.
func (r *Registry[T]) Prune(idle time.Duration, now time.Time) int {
	r.mu.Lock()
	var stale []T
	for id, s := range r.sessions {
		if now.Sub(s.LastSeen()) > idle {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	return len(stale)
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
