// Package registry records, per media type, whether its player implementation was requested and whether it finished loading.
//
// One Registry is shared by every spawned instance for the lifetime of the process so that a type is fetched at most once.
package registry

import (
	"sync"

	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/media"
)

// State is the load state of one media type.
type State int

const (
	NotRequested State = iota
	Pending
	Loaded
)

func (s State) String() string {
	switch s {
	case NotRequested:
		return "not-requested"
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

type entry struct {
	state State
	ready chan struct{}
}

// Registry is safe for concurrent use. Entries are created lazily and never removed.
type Registry struct {
	mu      sync.Mutex
	entries map[media.Type]*entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[media.Type]*entry)}
}

func (r *Registry) get(t media.Type) *entry {
	e, ok := r.entries[t]
	if !ok {
		e = &entry{ready: make(chan struct{})}
		r.entries[t] = e
	}
	return e
}

// TryClaim moves t from NotRequested to Pending and reports whether this caller did it.
// The winner is responsible for fetching t.
func (r *Registry) TryClaim(t media.Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.get(t)
	if e.state != NotRequested {
		return false
	}
	e.state = Pending
	log.Component("registry").WithField("type", t).Debug("claimed")
	return true
}

// MarkLoaded moves t to Loaded and releases every Ready waiter. Calling it again is a no-op.
func (r *Registry) MarkLoaded(t media.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.get(t)
	if e.state == Loaded {
		return
	}
	e.state = Loaded
	close(e.ready)
	log.Component("registry").WithField("type", t).Debug("loaded")
}

// IsLoaded reports whether t finished loading.
func (r *Registry) IsLoaded(t media.Type) bool {
	return r.State(t) == Loaded
}

// State returns the current state of t without creating an entry.
func (r *Registry) State(t media.Type) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[t]; ok {
		return e.state
	}
	return NotRequested
}

// Ready returns a channel closed once t is loaded.
func (r *Registry) Ready(t media.Type) <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(t).ready
}

// Snapshot copies the states of every referenced type.
func (r *Registry) Snapshot() map[media.Type]State {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[media.Type]State, len(r.entries))
	for t, e := range r.entries {
		out[t] = e.state
	}
	return out
}
