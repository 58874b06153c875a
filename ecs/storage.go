package ecs

import (
	"errors"
	"iter"
	"reflect"
	"sync/atomic"

	"github.com/kamstrup/intmap"
)

// ErrComponentNotPresent is returned by RemoveComponents when a live entity does
// not carry one of the kinds being removed. The entity is left untouched.
var ErrComponentNotPresent = errors.New("ecs: component not present")

// Storage is the main ECS storage interface
type Storage struct {
	registry   *ComponentRegistry
	archetypes []*Archetype
	byMask     *intmap.Map[Mask, int]
	locations  []location
	freeSlots  []uint32
	alive      int
	singletons map[reflect.Type]any

	// parallel is non-zero while the scheduler runs a parallel phase
	parallel atomic.Int32
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make([]*Archetype, 0, 16),
		byMask:     intmap.New[Mask, int](16),
		singletons: make(map[reflect.Type]any),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// GetArchetypes returns every table in creation order. The slice is owned by
// the storage.
func (s *Storage) GetArchetypes() []*Archetype {
	return s.archetypes
}

// GetArchetype returns the table for exactly the given mask, if one exists.
func (s *Storage) GetArchetype(mask Mask) *Archetype {
	idx, ok := s.byMask.Get(mask)
	if !ok {
		return nil
	}
	return s.archetypes[idx]
}

// GetArchetypeById returns the table with the given arena id, or nil.
func (s *Storage) GetArchetypeById(id int) *Archetype {
	if id < 0 || id >= len(s.archetypes) {
		return nil
	}
	return s.archetypes[id]
}

func (s *Storage) archetypeFor(mask Mask) *Archetype {
	if idx, ok := s.byMask.Get(mask); ok {
		return s.archetypes[idx]
	}
	if !s.registry.Registered().Contains(mask) {
		panic("ecs: mask " + mask.String() + " contains unregistered component kinds")
	}
	archetype := newArchetype(len(s.archetypes), mask, s.registry)
	s.archetypes = append(s.archetypes, archetype)
	s.byMask.Put(mask, archetype.id)
	return archetype
}

func (s *Storage) checkStructural() {
	if s.parallel.Load() != 0 {
		panic("ecs: structural change during parallel system execution; queue it on UpdateFrame.Commands")
	}
}

// allocate pops a free slot or grows the index, returning the new entity's id.
func (s *Storage) allocate() EntityId {
	if n := len(s.freeSlots); n > 0 {
		index := s.freeSlots[n-1]
		s.freeSlots = s.freeSlots[:n-1]
		return NewEntityId(index, s.locations[index].generation)
	}
	index := uint32(len(s.locations))
	s.locations = append(s.locations, location{generation: 1})
	return NewEntityId(index, 1)
}

// Spawn creates count entities carrying the default value of every kind in mask,
// and returns their ids in creation order. An empty mask is allowed.
func (s *Storage) Spawn(mask Mask, count int) []EntityId {
	s.checkStructural()
	if count <= 0 {
		return nil
	}

	archetype := s.archetypeFor(mask)
	ids := make([]EntityId, count)
	for i := range ids {
		id := s.allocate()
		row := archetype.pushDefault(id)
		loc := &s.locations[id.Index()]
		loc.table = archetype.id
		loc.row = row
		loc.alive = true
		ids[i] = id
	}
	s.alive += count
	return ids
}

// SpawnComponents creates one entity from the given component values. The mask
// is inferred from the value types; values may be T or *T.
func (s *Storage) SpawnComponents(components ...any) EntityId {
	var mask Mask
	kinds := make([]Kind, len(components))
	for i, comp := range components {
		kind, ok := s.registry.KindOfType(reflect.TypeOf(comp))
		if !ok {
			panic("component type " + reflect.TypeOf(comp).String() + " not registered")
		}
		kinds[i] = kind
		mask |= kind.Mask()
	}

	id := s.Spawn(mask, 1)[0]
	loc := s.locations[id.Index()]
	archetype := s.archetypes[loc.table]
	for i, comp := range components {
		archetype.storage(kinds[i]).Set(loc.row, comp)
	}
	return id
}

// lookup resolves a live entity to its index entry.
func (s *Storage) lookup(id EntityId) (*location, bool) {
	index := id.Index()
	if int(index) >= len(s.locations) {
		return nil, false
	}
	loc := &s.locations[index]
	if !loc.alive || loc.generation != id.Generation() {
		return nil, false
	}
	return loc, true
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.lookup(id)
	return ok
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.alive
}

// MaskOf returns the current component mask of the entity.
func (s *Storage) MaskOf(id EntityId) (Mask, bool) {
	loc, ok := s.lookup(id)
	if !ok {
		return 0, false
	}
	return s.archetypes[loc.table].mask, true
}

// Delete removes the entity's row, bumps the slot generation and frees the slot.
// Every id carrying the old generation becomes permanently invalid. Deleting a
// dead entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	s.checkStructural()
	loc, ok := s.lookup(id)
	if !ok {
		return
	}

	s.removeRow(loc)
	loc.alive = false
	loc.table = -1
	loc.row = -1
	loc.generation++
	if loc.generation == 0 {
		loc.generation = 1
	}
	s.freeSlots = append(s.freeSlots, id.Index())
	s.alive--
}

// Despawn is an alias for Delete.
func (s *Storage) Despawn(id EntityId) {
	s.Delete(id)
}

func (s *Storage) removeRow(loc *location) {
	archetype := s.archetypes[loc.table]
	if moved, ok := archetype.swapRemove(loc.row); ok {
		s.locations[moved.Index()].row = loc.row
	}
}

// move relocates the entity to the table for newMask, keeping every surviving
// component value and defaulting the new ones.
func (s *Storage) move(loc *location, id EntityId, newMask Mask) {
	src := s.archetypes[loc.table]
	if src.mask == newMask {
		return
	}
	dst := s.archetypeFor(newMask)
	newRow := dst.pushFrom(id, src, loc.row)
	s.removeRow(loc)
	loc.table = dst.id
	loc.row = newRow
}

// AddComponents adds every kind in mask the entity does not already carry, using
// the registered defaults. Existing values are kept. Returns false for a dead entity.
func (s *Storage) AddComponents(id EntityId, mask Mask) bool {
	s.checkStructural()
	loc, ok := s.lookup(id)
	if !ok {
		return false
	}
	s.move(loc, id, s.archetypes[loc.table].mask|mask)
	return true
}

// AddComponent adds (or overwrites) a single component given by value.
// Returns false for a dead entity or an unregistered type.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	kind, ok := s.registry.KindOfType(reflect.TypeOf(component))
	if !ok {
		return false
	}
	return s.SetComponent(id, kind, component)
}

// SetComponent writes value into the entity's kind column, adding the kind first
// if the entity does not carry it. Returns false for a dead entity, a nil
// pointer or a value of the wrong type.
func (s *Storage) SetComponent(id EntityId, kind Kind, value any) bool {
	loc, ok := s.lookup(id)
	if !ok {
		return false
	}
	expected := s.registry.Type(kind)
	if expected == nil {
		return false
	}
	valueType := reflect.TypeOf(value)
	if valueType == nil || (valueType != expected && valueType != reflect.PointerTo(expected)) {
		return false
	}
	if valueType.Kind() == reflect.Ptr && reflect.ValueOf(value).IsNil() {
		return false
	}

	if !s.archetypes[loc.table].mask.Has(kind) {
		s.checkStructural()
		s.move(loc, id, s.archetypes[loc.table].mask|kind.Mask())
	}
	return s.archetypes[loc.table].storage(kind).Set(loc.row, value)
}

// RemoveComponents removes every kind in mask from the entity. If the entity
// lacks any of them, ErrComponentNotPresent is returned and nothing changes.
// A dead entity is a silent no-op.
func (s *Storage) RemoveComponents(id EntityId, mask Mask) error {
	s.checkStructural()
	loc, ok := s.lookup(id)
	if !ok {
		return nil
	}
	current := s.archetypes[loc.table].mask
	if !current.Contains(mask) {
		return ErrComponentNotPresent
	}
	s.move(loc, id, current.Without(mask))
	return nil
}

// RemoveComponent removes a single kind; see RemoveComponents.
func (s *Storage) RemoveComponent(id EntityId, kind Kind) error {
	return s.RemoveComponents(id, kind.Mask())
}

// GetComponent returns a pointer to the entity's component of the given kind,
// or nil if the entity is dead or does not carry the kind.
func (s *Storage) GetComponent(id EntityId, kind Kind) any {
	loc, ok := s.lookup(id)
	if !ok {
		return nil
	}
	return s.archetypes[loc.table].GetComponent(loc.row, kind)
}

// HasComponent checks if an entity has a specific component kind
func (s *Storage) HasComponent(id EntityId, kind Kind) bool {
	loc, ok := s.lookup(id)
	if !ok {
		return false
	}
	return s.archetypes[loc.table].mask.Has(kind)
}

// QueryFirstEntity returns the first entity, in table creation order, whose mask
// is a superset of mask.
func (s *Storage) QueryFirstEntity(mask Mask) (EntityId, bool) {
	for _, archetype := range s.archetypes {
		if archetype.mask.Contains(mask) && len(archetype.entities) > 0 {
			return archetype.entities[0], true
		}
	}
	return 0, false
}

// Matching iterates the tables whose mask is a superset of mask.
func (s *Storage) Matching(mask Mask) iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, archetype := range s.archetypes {
			if archetype.mask.Contains(mask) {
				if !yield(archetype) {
					return
				}
			}
		}
	}
}

// Entities iterates every entity whose mask is a superset of mask.
func (s *Storage) Entities(mask Mask) iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for archetype := range s.Matching(mask) {
			for _, id := range archetype.entities {
				if !yield(id) {
					return
				}
			}
		}
	}
}

// AddSingleton stores value as the singleton of its type, replacing any previous one.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = ptr.Interface()
}

// getSingletonEntry returns the *T stored for t, or nil.
func (s *Storage) getSingletonEntry(t reflect.Type) any {
	return s.singletons[t]
}

type ComponentReader interface {
	GetComponent(EntityId, Kind) any
	Registry() *ComponentRegistry
}

// Get returns the entity's component of type T, or nil if the entity is dead,
// T is not registered, or the entity does not carry it.
func Get[T any](reader ComponentReader, id EntityId) *T {
	kind, ok := KindOf[T](reader.Registry())
	if !ok {
		return nil
	}
	comp, _ := reader.GetComponent(id, kind).(*T)
	return comp
}
