package storage

import (
	"math"

	"github.com/rotisserie/eris"

	"pkg.ignition.dev/ignition-engine/genesis/types"
)

var (
	ErrEntityIDExhausted = eris.New("entity id space exhausted")
	ErrInvalidRecycle    = eris.New("entity is not live")
)

// EntityAllocator issues entity IDs and recycles freed ones. Fresh IDs come
// from a monotonically increasing high-water mark starting at zero; recycled
// IDs are reused LIFO, so the most recently freed ID is the next one handed
// out. Every ID below the high-water mark is either live or on the free-list
// exactly once.
type EntityAllocator struct {
	next    types.EntityID
	free    []types.EntityID
	freeSet map[types.EntityID]struct{}
}

func NewEntityAllocator() *EntityAllocator {
	return &EntityAllocator{
		free:    make([]types.EntityID, 0, 256),
		freeSet: make(map[types.EntityID]struct{}),
	}
}

// Allocate returns a recycled ID when one is available, otherwise the next
// fresh ID. Exhaustion of the uint64 ID space is unrecoverable.
func (a *EntityAllocator) Allocate() (types.EntityID, error) {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		delete(a.freeSet, id)
		return id, nil
	}
	if a.next == math.MaxUint64 {
		return 0, eris.Wrap(ErrEntityIDExhausted, "allocate")
	}
	id := a.next
	a.next++
	return id, nil
}

// Recycle pushes id onto the free-list. Recycling an ID that was never
// allocated, or one already on the free-list, indicates double deletion and
// fails fast with ErrInvalidRecycle.
func (a *EntityAllocator) Recycle(id types.EntityID) error {
	if !a.Live(id) {
		return eris.Wrapf(ErrInvalidRecycle, "entity %d", id)
	}
	a.free = append(a.free, id)
	a.freeSet[id] = struct{}{}
	return nil
}

// Live reports whether id has been allocated and not recycled since.
func (a *EntityAllocator) Live(id types.EntityID) bool {
	if id >= a.next {
		return false
	}
	_, recycled := a.freeSet[id]
	return !recycled
}

func (a *EntityAllocator) LiveCount() int {
	return int(a.next) - len(a.free)
}

// NextID returns the high-water mark: the lowest ID never yet issued.
func (a *EntityAllocator) NextID() types.EntityID {
	return a.next
}

// FreeList returns a copy of the recycle list in push order.
func (a *EntityAllocator) FreeList() []types.EntityID {
	return append([]types.EntityID(nil), a.free...)
}

// Load replaces the allocator state with a previously captured high-water
// mark and free-list. Used by snapshot restore.
func (a *EntityAllocator) Load(next types.EntityID, free []types.EntityID) error {
	freeSet := make(map[types.EntityID]struct{}, len(free))
	for _, id := range free {
		if id >= next {
			return eris.Wrapf(ErrInvalidRecycle, "free-list entry %d is beyond the high-water mark %d", id, next)
		}
		if _, ok := freeSet[id]; ok {
			return eris.Wrapf(ErrInvalidRecycle, "free-list entry %d appears twice", id)
		}
		freeSet[id] = struct{}{}
	}
	a.next = next
	a.free = append(a.free[:0], free...)
	a.freeSet = freeSet
	return nil
}
