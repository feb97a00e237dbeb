// Package session keeps one cart per browsing session for as long as the session is
// active.
package session

import (
	"sync"
	"time"

	"github.com/Skotchmaster/kaos_shop/internal/cart"
)

type entry struct {
	store    *cart.Store
	lastSeen time.Time
}

type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry

	now func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:     ttl,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Cart returns the session's store, creating an empty one on first use, and marks
// the session active.
func (r *Registry) Cart(id string) *cart.Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		e = &entry{store: cart.NewStore()}
		r.entries[id] = e
	}
	e.lastSeen = r.now()
	return e.store
}

// Sweep ends every session idle for longer than the ttl and returns how many it ended.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
