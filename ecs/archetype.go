package ecs

import (
	"sync"
)

// Archetype is the table holding every entity whose component mask is exactly Mask().
// It stores one column per kind; row i of every column and of the entity column
// describes the same entity. Row order carries no meaning: removal swaps the last
// row into the hole.
type Archetype struct {
	id       int
	mask     Mask
	kinds    []Kind
	slots    [MaxKinds]int8
	storages []iComponentStorage
	entities []EntityId

	// token is held by the scheduler while a system works on this table
	token sync.Mutex
}

// newArchetype creates the table for the given mask with one empty column per kind.
func newArchetype(id int, mask Mask, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		mask:     mask,
		kinds:    make([]Kind, 0, mask.Len()),
		storages: make([]iComponentStorage, 0, mask.Len()),
	}
	for i := range a.slots {
		a.slots[i] = -1
	}

	for kind := range mask.Kinds() {
		factory := registry.getFactory(kind)
		if factory == nil {
			panic("component kind " + registry.Name(kind) + " not registered")
		}
		a.slots[kind] = int8(len(a.storages))
		a.kinds = append(a.kinds, kind)
		a.storages = append(a.storages, factory())
	}

	return a
}

// ID returns the table's position in the storage arena. IDs are stable for the
// lifetime of the storage.
func (a *Archetype) ID() int {
	return a.id
}

// Mask returns the exact component set of this table.
func (a *Archetype) Mask() Mask {
	return a.mask
}

// Kinds returns the table's component kinds in ascending order.
func (a *Archetype) Kinds() []Kind {
	return a.kinds
}

// HasComponent checks if this table has a column for the given kind.
func (a *Archetype) HasComponent(kind Kind) bool {
	return a.mask.Has(kind)
}

// Len returns the number of rows.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Entities returns the entity column. The slice is owned by the table and is
// only valid until the next structural change.
func (a *Archetype) Entities() []EntityId {
	return a.entities
}

// GetComponent returns a pointer to the component of the given kind at row, or nil.
func (a *Archetype) GetComponent(row int, kind Kind) any {
	storage := a.storage(kind)
	if storage == nil {
		return nil
	}
	return storage.Get(row)
}

func (a *Archetype) storage(kind Kind) iComponentStorage {
	if kind >= MaxKinds {
		return nil
	}
	slot := a.slots[kind]
	if slot < 0 {
		return nil
	}
	return a.storages[slot]
}

// pushDefault appends a row of default values for entity and returns the row.
func (a *Archetype) pushDefault(entity EntityId) int {
	for _, storage := range a.storages {
		storage.AppendDefault()
	}
	a.entities = append(a.entities, entity)
	return len(a.entities) - 1
}

// pushFrom appends a row for entity, copying every column shared with src at
// srcRow and filling the rest with defaults. Returns the new row.
func (a *Archetype) pushFrom(entity EntityId, src *Archetype, srcRow int) int {
	for i, kind := range a.kinds {
		if from := src.storage(kind); from != nil {
			a.storages[i].AppendFrom(from, srcRow)
		} else {
			a.storages[i].AppendDefault()
		}
	}
	a.entities = append(a.entities, entity)
	return len(a.entities) - 1
}

// swapRemove deletes row, moving the last row into its place. It returns the
// entity that now occupies row, if any.
func (a *Archetype) swapRemove(row int) (EntityId, bool) {
	for _, storage := range a.storages {
		storage.SwapRemove(row)
	}
	last := len(a.entities) - 1
	moved := row != last
	if moved {
		a.entities[row] = a.entities[last]
	}
	a.entities = a.entities[:last]
	if !moved {
		return 0, false
	}
	return a.entities[row], true
}

// Column returns the live column of kind T in the table, or nil if the table
// has no such column. Elements may be mutated in place; the slice must not be
// retained across structural changes.
func Column[T any](a *Archetype, kind Kind) []T {
	storage, ok := a.storage(kind).(*genericComponentStorage[T])
	if !ok {
		return nil
	}
	return storage.data
}

// Iter returns an iterator over all EntityIds in this table
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		for _, id := range a.entities {
			if !yield(id) {
				return
			}
		}
	}
}
