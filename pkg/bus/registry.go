package bus

import (
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
)

// Registry holds the live handler set for one bus side, plus the
// resolution cache. It is an explicit, shareable object: construct it
// once, pass it by reference, and register handlers before (or while)
// sends are in flight.
//
// Cache entries are immutable once inserted and are never evicted for
// the life of the process.
type Registry struct {
	mu       sync.RWMutex
	handlers []domain.Handler
	cache    map[string]domain.Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[string]domain.Handler),
	}
}

// Register appends handlers to the candidate set.
// Registration order matters: when several handlers declare the same
// message name, the first one registered wins (first-found policy).
func (r *Registry) Register(handlers ...domain.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, handlers...)
}

// Len reports how many handlers are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Resolve returns the handler serving the given message name, or false
// when no registered handler declares it.
func (r *Registry) Resolve(messageName string) (domain.Handler, bool) {
	h, _, ok := r.resolve(messageName)
	return h, ok
}

// resolve additionally reports whether the lookup was served from the
// cache, which the bus feeds into its metrics.
func (r *Registry) resolve(messageName string) (handler domain.Handler, cached bool, ok bool) {
	r.mu.RLock()
	if h, hit := r.cache[messageName]; hit {
		r.mu.RUnlock()
		return h, true, true
	}
	handlers := r.handlers
	r.mu.RUnlock()

	h, found := firstMatch(handlers, messageName)
	if !found {
		return nil, false, false
	}

	r.mu.Lock()
	// A concurrent send may have resolved the same name already; keep
	// the first inserted entry so callers always see one stable handler.
	if prior, hit := r.cache[messageName]; hit {
		r.mu.Unlock()
		return prior, false, true
	}
	r.cache[messageName] = h
	r.mu.Unlock()
	return h, false, true
}
