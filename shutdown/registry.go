package shutdown

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// registryEntry holds one registered cleanup function with metadata.
type registryEntry struct {
	name     string
	fn       ShutdownFunc
	priority int // lower = earlier execution
}

// Registry maintains an ordered collection of cleanup functions run at
// process exit.
//
// Usage:
//
//	registry := NewRegistry()
//
//	// Register handlers (lower priority runs first)
//	registry.Register("engine", 10, func(ctx context.Context) error {
//	    return eng.Close()
//	})
//	registry.Register("logger", 40, func(ctx context.Context) error {
//	    return logger.Sync()
//	})
//
//	// During shutdown:
//	for _, err := range registry.Shutdown(ctx) {
//	    log.Printf("cleanup error: %v", err)
//	}
type Registry struct {
	mu      sync.Mutex
	entries []registryEntry
	closed  bool
}

// NewRegistry creates a Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a cleanup function. Registration after Shutdown has run
// is ignored.
func (r *Registry) Register(name string, priority int, fn ShutdownFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.entries = append(r.entries, registryEntry{name: name, fn: fn, priority: priority})
}

// Shutdown runs every registered function in priority order (ties run
// in registration order) and collects their errors. Each error is
// prefixed with the handler name. A failing handler does not stop the
// remaining ones.
func (r *Registry) Shutdown(ctx context.Context) []error {
	r.mu.Lock()
	r.closed = true
	entries := make([]registryEntry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})

	var errs []error
	for _, e := range entries {
		if err := e.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}
	return errs
}

// Len returns the number of registered cleanup functions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
