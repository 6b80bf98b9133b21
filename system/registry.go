package system

import (
	"maps"
	"slices"
)

// Registry is the set of live enemies. The World owns the enemies; the
// registry only observes them.
type Registry struct {
	live map[int]*Enemy
}

func NewRegistry() *Registry {
	return &Registry{live: make(map[int]*Enemy)}
}

func (r *Registry) Register(e *Enemy) {
	if r == nil || e == nil {
		return
	}
	r.live[e.ID()] = e
}

// Deregister removes e and reports whether it was registered.
func (r *Registry) Deregister(e *Enemy) bool {
	if r == nil || e == nil {
		return false
	}
	if r.live[e.ID()] != e {
		return false
	}
	delete(r.live, e.ID())
	return true
}

func (r *Registry) Contains(e *Enemy) bool {
	return r != nil && e != nil && r.live[e.ID()] == e
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.live)
}

// Live returns the registered enemies ordered by ID.
func (r *Registry) Live() []*Enemy {
	if r == nil {
		return nil
	}
	ids := slices.Sorted(maps.Keys(r.live))
	out := make([]*Enemy, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.live[id])
	}
	return out
}
