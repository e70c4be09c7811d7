package game

import (
	"context"
	"sync"
)

// Registry tracks the live engine for every connected player. The tick
// driver fans out through it, and the autosave worker walks it to find
// cloud-enabled sessions. All access goes through its methods.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]*Engine
}

func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]*Engine),
	}
}

// Add registers an engine for an owner. A player may only have one
// live session at a time.
func (r *Registry) Add(e *Engine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[e.OwnerId()]; exists {
		return ErrSessionExists
	}
	r.engines[e.OwnerId()] = e
	return nil
}

// Remove drops the owner's engine. Removing an absent owner is a
// no-op.
func (r *Registry) Remove(ownerId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.engines, ownerId)
}

// Get returns the owner's live engine, or nil.
func (r *Registry) Get(ownerId string) *Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.engines[ownerId]
}

// ForEach calls fn for every live engine. The registry lock is not
// held during fn, so fn may call back into engine methods freely.
func (r *Registry) ForEach(fn func(*Engine)) {
	r.mu.RLock()
	engines := make([]*Engine, 0, len(r.engines))
	for _, e := range r.engines {
		engines = append(engines, e)
	}
	r.mu.RUnlock()

	for _, e := range engines {
		fn(e)
	}
}

// Tick advances every live engine by one tick.
func (r *Registry) Tick(ctx context.Context) error {
	var firstErr error
	r.ForEach(func(e *Engine) {
		if err := e.Tick(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}
