package storage

import (
	"pkg.ignition.dev/ignition-engine/genesis/types"
)

// Iterator walks a pool's dense values in order. It is lazy and restartable
// via Reset. The pool must not be mutated while an iterator is being
// consumed.
type Iterator[T any] struct {
	current int
	pool    *SparseSet[T]
}

// NewIterator returns an iterator positioned at the first dense slot of pool.
func NewIterator[T any](pool *SparseSet[T]) *Iterator[T] {
	return &Iterator[T]{
		current: 0,
		pool:    pool,
	}
}

// HasNext returns true if there are more components to iterate over.
func (it *Iterator[T]) HasNext() bool {
	return it.current < len(it.pool.values)
}

// Next returns the next component and its owning entity.
func (it *Iterator[T]) Next() (types.EntityID, T) {
	i := it.current
	it.current++
	return it.pool.owners[i], it.pool.values[i]
}

// Reset rewinds the iterator to the first dense slot.
func (it *Iterator[T]) Reset() {
	it.current = 0
}
