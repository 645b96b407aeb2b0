// Package watch tracks which files the inclusion engine pulled into pages
// and keeps the filesystem watch list in sync between rebuild cycles, so
// editing an included file outside the docs tree still triggers a rebuild.
package watch

import (
	"sort"
	"sync"
)

// Registrar collects the include targets of one rebuild cycle. The engine
// registers every locally resolved path; after the cycle, Rotate diffs the
// collected set against the previous cycle's.
type Registrar struct {
	mu      sync.Mutex
	current map[string]struct{}
	prev    map[string]struct{}
}

func NewRegistrar() *Registrar {
	return &Registrar{
		current: make(map[string]struct{}),
		prev:    make(map[string]struct{}),
	}
}

// Register records one included file path for the current cycle.
func (r *Registrar) Register(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current[path] = struct{}{}
}

// Rotate closes the current cycle. It returns the paths included for the
// first time and the paths no longer included, then promotes the current
// set to previous and starts an empty cycle.
func (r *Registrar) Rotate() (added, removed []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for p := range r.current {
		if _, ok := r.prev[p]; !ok {
			added = append(added, p)
		}
	}
	for p := range r.prev {
		if _, ok := r.current[p]; !ok {
			removed = append(removed, p)
		}
	}

	r.prev = r.current
	r.current = make(map[string]struct{})

	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}
