package storage

import (
	"reflect"

	"github.com/rotisserie/eris"

	"pkg.ignition.dev/ignition-engine/genesis/types"
)

var ErrPoolNotFound = eris.New("component pool not found")

// Registry owns one pool per component type, keyed by the component's runtime
// type identity. T and []T are distinct keys, so scalar and collection
// components of the same element type live in wholly separate pools. Pools
// are created lazily and live as long as the registry; deleting an entity
// empties its slots but never tears a pool down.
type Registry struct {
	pools map[reflect.Type]Pool
	// creation order, so sweeps and snapshots are deterministic
	order []Pool
}

func NewRegistry() *Registry {
	return &Registry{pools: make(map[reflect.Type]Pool)}
}

// Pools returns every pool in creation order. The slice is borrowed.
func (r *Registry) Pools() []Pool {
	return r.order
}

func (r *Registry) Len() int {
	return len(r.order)
}

// RemoveEntity drops id's component from every pool that has one and reports
// how many pools were affected.
func (r *Registry) RemoveEntity(id types.EntityID) int {
	removed := 0
	for _, pool := range r.order {
		if pool.Remove(id) {
			removed++
		}
	}
	return removed
}

// PoolByName returns the pool with the given stable type tag. Snapshot
// restore resolves pools by the name they were stored under.
func (r *Registry) PoolByName(name string) (Pool, error) {
	for _, pool := range r.order {
		if pool.Name() == name {
			return pool, nil
		}
	}
	return nil, eris.Wrapf(ErrPoolNotFound, "pool %q", name)
}

func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// PoolExists reports whether a pool for T has been created.
func PoolExists[T any](r *Registry) bool {
	_, ok := r.pools[typeOf[T]()]
	return ok
}

// GetPool returns the pool for T, failing with ErrPoolNotFound when no entity
// has ever been assigned a T. The cast back from the erased Pool is safe by
// construction: the map key is the same type identity used at creation.
func GetPool[T any](r *Registry) (*SparseSet[T], error) {
	pool, ok := r.pools[typeOf[T]()]
	if !ok {
		return nil, eris.Wrapf(ErrPoolNotFound, "pool %s", typeOf[T]().String())
	}
	return pool.(*SparseSet[T]), nil
}

// GetOrCreatePool returns the pool for T, creating an empty one on first
// access. Idempotent thereafter.
func GetOrCreatePool[T any](r *Registry) *SparseSet[T] {
	key := typeOf[T]()
	if pool, ok := r.pools[key]; ok {
		return pool.(*SparseSet[T])
	}
	pool := NewSparseSet[T]()
	r.pools[key] = pool
	r.order = append(r.order, pool)
	return pool
}
