package genesis

import (
	"pkg.ignition.dev/ignition-engine/genesis/storage"
	"pkg.ignition.dev/ignition-engine/genesis/types"
)

// RegisterComponent pre-creates the pool for T. Assignment creates pools
// lazily, so registration is only required when a pool must exist before any
// value is assigned, e.g. ahead of a snapshot Restore.
func RegisterComponent[T any](s *Scene) {
	pool := storage.GetOrCreatePool[T](s.registry)
	s.logger.Debug().Str("pool_name", pool.Name()).Msg("registered component pool")
}

// SetComponent attaches value to id as its single T component, overwriting in
// place when id already has one. The first assignment of a given type creates
// that type's pool. IDs are not validated here; attaching components to a
// deleted entity's ID is a caller error.
func SetComponent[T any](s *Scene, id types.EntityID, value T) {
	storage.GetOrCreatePool[T](s.registry).Assign(id, value)
}

// AppendComponent treats the component type as a growable collection of T:
// id's component is a []T that value is appended to, preserving assignment
// order. The []T pool is wholly separate from the T pool, so scalar and
// collection components of the same element type never mix.
func AppendComponent[T any](s *Scene, id types.EntityID, value T) {
	pool := storage.GetOrCreatePool[[]T](s.registry)
	if existing, err := pool.Get(id); err == nil {
		*existing = append(*existing, value)
		return
	}
	pool.Assign(id, []T{value})
}

// GetComponent returns a pointer to id's T component. The pointer is valid
// only until the next mutating call on the T pool. Fails with
// storage.ErrPoolNotFound when no T has ever been assigned or registered, and
// with storage.ErrComponentNotFound when the pool exists but id has no entry.
func GetComponent[T any](s *Scene, id types.EntityID) (*T, error) {
	pool, err := storage.GetPool[T](s.registry)
	if err != nil {
		return nil, err
	}
	return pool.Get(id)
}

func HasComponent[T any](s *Scene, id types.EntityID) bool {
	pool, err := storage.GetPool[T](s.registry)
	if err != nil {
		return false
	}
	return pool.Has(id)
}

// RemoveComponent drops id's T component, compacting the pool. Removing a
// component the entity does not have is a no-op.
func RemoveComponent[T any](s *Scene, id types.EntityID) {
	pool, err := storage.GetPool[T](s.registry)
	if err != nil {
		return
	}
	pool.Remove(id)
}

// GetAll returns the dense value array of the T pool in current dense order.
// The slice is borrowed: it is valid only until the next mutating call on the
// pool. Fails with storage.ErrPoolNotFound when the scene has never seen T.
func GetAll[T any](s *Scene) ([]T, error) {
	pool, err := storage.GetPool[T](s.registry)
	if err != nil {
		return nil, err
	}
	return pool.Values(), nil
}

// EachComponent iterates the T pool in dense order until fn returns false.
// The scene must not be mutated during iteration.
func EachComponent[T any](s *Scene, fn func(id types.EntityID, value T) bool) error {
	pool, err := storage.GetPool[T](s.registry)
	if err != nil {
		return err
	}
	pool.Each(fn)
	return nil
}
