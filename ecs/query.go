package ecs

import (
	"iter"
	"unsafe"
)

// Query wraps a View with caching for repeated iteration.
// It caches the matching tables and pre-builds the entity/component arrays per frame.
type Query[T any] struct {
	view             *View[T]
	storage          *Storage
	cachedTables     []*Archetype
	lastTableCount   int
	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query with table-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedTables = nil
	q.lastTableCount = -1
	q.cacheValid = false
}

// Mask returns the kinds every matching entity carries.
func (q *Query[T]) Mask() Mask {
	return q.view.required
}

// Execute builds the entity and component caches for this frame.
// Called automatically by the Scheduler before systems run.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	var result T
	resultPtr := unsafe.Pointer(&result)
	for _, archetype := range q.Tables() {
		for row, id := range archetype.entities {
			q.view.populate(resultPtr, archetype, row)
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, result)
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) invalidateCache() {
	q.cacheValid = false
}

// Tables returns the tables matching the query. Tables are never removed, so
// the cache only grows when new tables appear.
func (q *Query[T]) Tables() []*Archetype {
	current := len(q.storage.archetypes)
	if current == q.lastTableCount {
		return q.cachedTables
	}
	start := max(q.lastTableCount, 0)
	for _, archetype := range q.storage.archetypes[start:] {
		if q.view.matches(archetype) {
			q.cachedTables = append(q.cachedTables, archetype)
		}
	}
	q.lastTableCount = current
	return q.cachedTables
}

// Get returns the view struct for a single entity, or nil.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
