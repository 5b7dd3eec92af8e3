// Package registry owns the mapping from physics body handle to entity
// metadata. It is the side table that keeps gameplay data out of the
// physics engine: the world stores geometry, the registry stores meaning.
package registry

import (
	"fmt"
	"iter"
	"slices"

	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/physics"
)

// Registry maps live handles to their entities. Each simulation owns one.
// It is not safe for concurrent use; all access happens on the tick.
type Registry struct {
	entries map[physics.Handle]entity.Entity
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[physics.Handle]entity.Entity)}
}

// Register attaches e to h.
// Panics if h is already registered, since that would orphan the old entity.
func (r *Registry) Register(h physics.Handle, e entity.Entity) {
	if _, exists := r.entries[h]; exists {
		panic(fmt.Sprintf("registry: handle %d already registered", h))
	}
	r.entries[h] = e
}

// Unregister removes h and returns its entity, or false if h was absent.
func (r *Registry) Unregister(h physics.Handle) (entity.Entity, bool) {
	e, ok := r.entries[h]
	if !ok {
		return nil, false
	}
	delete(r.entries, h)
	return e, true
}

// Get returns the entity attached to h.
func (r *Registry) Get(h physics.Handle) (entity.Entity, bool) {
	e, ok := r.entries[h]
	return e, ok
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.entries)
}

// All returns the registered pairs in ascending handle order.
//
// The handle set is captured when All is called, so the sequence is finite
// and each handle is visited at most once. Callers must not mutate the
// registry while ranging; collect candidates first, then act on them.
// Ranging the same sequence again takes a fresh snapshot.
func (r *Registry) All() iter.Seq2[physics.Handle, entity.Entity] {
	return func(yield func(physics.Handle, entity.Entity) bool) {
		handles := make([]physics.Handle, 0, len(r.entries))
		for h := range r.entries {
			handles = append(handles, h)
		}
		slices.Sort(handles)

		for _, h := range handles {
			e, ok := r.entries[h]
			if !ok {
				continue
			}
			if !yield(h, e) {
				return
			}
		}
	}
}

// Clear drops every entry.
func (r *Registry) Clear() {
	clear(r.entries)
}
