// Package namespace is the global symbol table player scripts define themselves into.
package namespace

import (
	"sort"
	"sync"
)

// Namespace maps symbol names to values. It is safe for concurrent use.
type Namespace struct {
	mu      sync.RWMutex
	symbols map[string]any
}

// New returns an empty namespace.
func New() *Namespace {
	return &Namespace{symbols: make(map[string]any)}
}

// Define binds name to value, replacing any previous binding.
func (n *Namespace) Define(name string, value any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.symbols[name] = value
}

// Lookup returns the value bound to name.
func (n *Namespace) Lookup(name string) (any, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.symbols[name]
	return v, ok
}

// Has reports whether name is defined.
func (n *Namespace) Has(name string) bool {
	_, ok := n.Lookup(name)
	return ok
}

// Probe returns a poller probe for name.
func (n *Namespace) Probe(name string) func() bool {
	return func() bool { return n.Has(name) }
}

// Names returns the defined names in sorted order.
func (n *Namespace) Names() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	names := make([]string, 0, len(n.symbols))
	for name := range n.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
