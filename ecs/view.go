package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// eface mirrors the runtime layout of an interface value.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// View is a typed accessor for entities carrying a combination of components.
// T must be a struct whose fields are pointers to registered component types.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag;
// embedded fields are always required.
type View[T any] struct {
	storage     *Storage
	kinds       []Kind
	optional    []bool
	fieldOffset []uintptr
	required    Mask
}

// NewView creates a new view for the given struct type. It panics if T is not a
// struct of pointers to registered component types.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		storage:     storage,
		kinds:       make([]Kind, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		kind, ok := storage.registry.KindOfType(field.Type.Elem())
		if !ok {
			panic("View field " + field.Name + ": component type " + field.Type.Elem().String() + " not registered")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.kinds = append(v.kinds, kind)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		if !isOptional {
			v.required |= kind.Mask()
		}
	}

	return v
}

// Mask returns the kinds every matching entity must carry.
func (v *View[T]) Mask() Mask {
	return v.required
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is dead or missing any required component.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	loc, ok := v.storage.lookup(id)
	if !ok {
		return false
	}
	archetype := v.storage.archetypes[loc.table]
	if !archetype.mask.Contains(v.required) {
		return false
	}
	v.populate(unsafe.Pointer(ptr), archetype, loc.row)
	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) matches(archetype *Archetype) bool {
	return archetype.mask.Contains(v.required)
}

// populate writes the column addresses of row into the struct at resultPtr.
// The caller has checked that the table carries every required kind.
func (v *View[T]) populate(resultPtr unsafe.Pointer, archetype *Archetype, row int) {
	for i, kind := range v.kinds {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		storage := archetype.storage(kind)
		if storage == nil {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		component := storage.Get(row)
		*(*unsafe.Pointer)(fieldPtr) = (*eface)(unsafe.Pointer(&component)).data
	}
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		resultPtr := unsafe.Pointer(&result)
		for row, id := range archetype.entities {
			v.populate(resultPtr, archetype, row)
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter returns an iterator over all entities that have all the required components for this view.
// Structural changes must not be made while iterating.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for archetype := range v.storage.Matching(v.required) {
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with the components pointed to by data.
// Nil optional fields are skipped; a nil required field panics.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.kinds))
	for i, kind := range v.kinds {
		componentPtr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i]))
		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		componentType := v.storage.registry.Type(kind)
		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
	}

	return v.storage.SpawnComponents(components...)
}
