package ecs

// EntityId encodes both the slot generation (upper 32 bits) and the slot index (lower 32 bits)
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID.
// Generations start at 1, so the zero EntityId never refers to a live entity.
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// location is the entity index entry for one slot.
type location struct {
	table      int
	row        int
	generation uint32
	alive      bool
}
