package types

// EntityID is the unique identifier of an entity. It is a key into component
// pools, not a container of data. IDs are recycled after deletion, so a stale
// copy of a deleted ID held elsewhere becomes a dangling key; callers must not
// retain IDs past deletion without external validity tracking.
type EntityID uint64
