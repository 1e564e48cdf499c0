package storage

import (
	"reflect"

	"github.com/rotisserie/eris"

	"pkg.ignition.dev/ignition-engine/genesis/codec"
	"pkg.ignition.dev/ignition-engine/genesis/schema"
	"pkg.ignition.dev/ignition-engine/genesis/types"
)

// absent marks a sparse slot that maps to no dense index.
const absent = -1

var ErrComponentNotFound = eris.New("component not found")

// Pool is the type-erased view of a SparseSet. The registry stores every pool
// behind this interface; the generic accessors in registry.go are the only
// place an erased pool is cast back to its concrete type.
type Pool interface {
	// Name returns the stable type tag of the pool's component type.
	Name() string
	Len() int
	Has(id types.EntityID) bool
	// Remove drops id's component, compacting the dense arrays via swap-pop.
	// It reports whether a component was removed; removing an absent
	// component is a no-op.
	Remove(id types.EntityID) bool
	// Owners returns the dense owner array. The slice is borrowed: it is
	// valid only until the next mutating call on the pool.
	Owners() []types.EntityID
	// Schema returns the JSON schema of the component type.
	Schema() ([]byte, error)
	// EncodeValues marshals the dense value array to JSON.
	EncodeValues() ([]byte, error)
	// DecodeValues replaces the pool contents from a dense owner array and a
	// JSON value array produced by EncodeValues.
	DecodeValues(owners []types.EntityID, data []byte) error
}

var _ Pool = &SparseSet[int]{}

// SparseSet stores every component of a single type T. Component values live
// in a densely packed array with a parallel array of owning entity IDs; a
// directly indexed sparse array maps an entity ID to its dense slot, or
// absent. Membership test, insert, update and removal are all O(1).
type SparseSet[T any] struct {
	typ    reflect.Type
	sparse []int
	owners []types.EntityID
	values []T
}

func NewSparseSet[T any]() *SparseSet[T] {
	var zero T
	return &SparseSet[T]{typ: reflect.TypeOf(zero)}
}

// Name returns the component type tag, e.g. "game.Vertex" or "[]game.Vertex".
// The tag is stable for the lifetime of the process and across processes
// built from the same source.
func (p *SparseSet[T]) Name() string {
	return p.typ.String()
}

func (p *SparseSet[T]) Len() int {
	return len(p.values)
}

func (p *SparseSet[T]) Has(id types.EntityID) bool {
	idx := int(id)
	return idx < len(p.sparse) && p.sparse[idx] != absent
}

// Get returns a pointer to id's component. The pointer is valid only until
// the next mutating call on the pool.
func (p *SparseSet[T]) Get(id types.EntityID) (*T, error) {
	if !p.Has(id) {
		return nil, eris.Wrapf(ErrComponentNotFound, "entity %d has no %s", id, p.Name())
	}
	return &p.values[p.sparse[id]], nil
}

// Assign sets id's component to value. When id already has a component the
// value is overwritten in place and the pool's density and ordering are
// unchanged; otherwise the value is appended to the dense arrays and the
// sparse array is grown to cover id.
func (p *SparseSet[T]) Assign(id types.EntityID, value T) {
	if p.Has(id) {
		p.values[p.sparse[id]] = value
		return
	}
	p.prolong(id)
	p.sparse[id] = len(p.values)
	p.owners = append(p.owners, id)
	p.values = append(p.values, value)
}

// prolong grows the sparse array to cover id, padding new slots with absent.
// Existing slots are untouched and the array never shrinks.
func (p *SparseSet[T]) prolong(id types.EntityID) {
	for len(p.sparse) < int(id)+1 {
		p.sparse = append(p.sparse, absent)
	}
}

// Remove swaps id's dense slot with the last one, pops the last slot, and
// remaps the moved entity. Dense ordering is not preserved across removals.
func (p *SparseSet[T]) Remove(id types.EntityID) bool {
	if !p.Has(id) {
		return false
	}
	i := p.sparse[id]
	last := len(p.values) - 1
	moved := p.owners[last]
	p.values[i] = p.values[last]
	p.owners[i] = moved
	p.values = p.values[:last]
	p.owners = p.owners[:last]
	p.sparse[moved] = i
	p.sparse[id] = absent
	return true
}

// Each calls fn for every component in dense order until fn returns false.
// The pool must not be mutated while Each runs; swap-pop removal invalidates
// dense indices mid-iteration.
func (p *SparseSet[T]) Each(fn func(id types.EntityID, value T) bool) {
	for i := range p.values {
		if !fn(p.owners[i], p.values[i]) {
			return
		}
	}
}

// Values returns the dense value array in current dense order. The slice is
// borrowed: it is valid only until the next mutating call on the pool.
func (p *SparseSet[T]) Values() []T {
	return p.values
}

func (p *SparseSet[T]) Owners() []types.EntityID {
	return p.owners
}

func (p *SparseSet[T]) Schema() ([]byte, error) {
	var zero T
	return schema.Serialize(zero)
}

func (p *SparseSet[T]) EncodeValues() ([]byte, error) {
	return codec.Encode(p.values)
}

func (p *SparseSet[T]) DecodeValues(owners []types.EntityID, data []byte) error {
	values, err := codec.Decode[[]T](data)
	if err != nil {
		return eris.Wrapf(err, "failed to decode values for %s", p.Name())
	}
	if len(values) != len(owners) {
		return eris.Errorf("pool %s: owner count %d does not match value count %d", p.Name(), len(owners), len(values))
	}
	p.sparse = p.sparse[:0]
	p.owners = p.owners[:0]
	p.values = p.values[:0]
	for i, id := range owners {
		if p.Has(id) {
			return eris.Errorf("pool %s: entity %d owns two dense slots", p.Name(), id)
		}
		p.prolong(id)
		p.sparse[id] = i
	}
	p.owners = append(p.owners, owners...)
	p.values = append(p.values, values...)
	return nil
}
