package ecs

import (
	"reflect"
	"strconv"
)

type componentInfo struct {
	kind    Kind
	typ     reflect.Type
	name    string
	factory func() iComponentStorage
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each registered type is assigned the next free Kind bit. Each Storage instance
// has its own ComponentRegistry, allowing multiple independent ECS systems to
// coexist without interference.
type ComponentRegistry struct {
	components []componentInfo
	byType     map[reflect.Type]Kind
	byName     map[string]Kind
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byType: make(map[reflect.Type]Kind),
		byName: make(map[string]Kind),
	}
}

// RegisterComponent registers a new component type with the given registry and
// returns its Kind. The optional value becomes the default used by Storage.Spawn;
// otherwise the zero value of T is used. Registering the same type twice returns
// the existing kind.
func RegisterComponent[T any](r *ComponentRegistry, defaultValue ...T) Kind {
	t := reflect.TypeFor[T]()
	if kind, ok := r.byType[t]; ok {
		return kind
	}
	if len(r.components) >= MaxKinds {
		panic("ecs: too many component types (max " + strconv.Itoa(MaxKinds) + ")")
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}

	var def T
	if len(defaultValue) > 0 {
		def = defaultValue[0]
	}

	kind := Kind(len(r.components))
	r.components = append(r.components, componentInfo{
		kind: kind,
		typ:  t,
		name: t.Name(),
		factory: func() iComponentStorage {
			return &genericComponentStorage[T]{def: def}
		},
	})
	r.byType[t] = kind
	if t.Name() != "" {
		r.byName[t.Name()] = kind
	}
	return kind
}

// KindOf returns the kind registered for T.
func KindOf[T any](r *ComponentRegistry) (Kind, bool) {
	kind, ok := r.byType[reflect.TypeFor[T]()]
	return kind, ok
}

// KindOfType returns the kind registered for the given type.
func (r *ComponentRegistry) KindOfType(t reflect.Type) (Kind, bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	kind, ok := r.byType[t]
	return kind, ok
}

// KindByName looks a kind up by its Go type name.
func (r *ComponentRegistry) KindByName(name string) (Kind, bool) {
	kind, ok := r.byName[name]
	return kind, ok
}

// Name returns the type name registered for the kind.
func (r *ComponentRegistry) Name(kind Kind) string {
	if int(kind) >= len(r.components) {
		return "Kind(" + strconv.Itoa(int(kind)) + ")"
	}
	return r.components[kind].name
}

// Type returns the Go type registered for the kind, or nil.
func (r *ComponentRegistry) Type(kind Kind) reflect.Type {
	if int(kind) >= len(r.components) {
		return nil
	}
	return r.components[kind].typ
}

// Len returns the number of registered kinds.
func (r *ComponentRegistry) Len() int {
	return len(r.components)
}

// Registered returns the mask of all registered kinds.
func (r *ComponentRegistry) Registered() Mask {
	if len(r.components) == MaxKinds {
		return ^Mask(0)
	}
	return Mask(1)<<len(r.components) - 1
}

// Names returns the names of the kinds in the mask, in kind order.
func (r *ComponentRegistry) Names(mask Mask) []string {
	names := make([]string, 0, mask.Len())
	for kind := range mask.Kinds() {
		names = append(names, r.Name(kind))
	}
	return names
}

// getFactory returns the column factory for the kind.
// Returns nil if the kind is not registered.
func (r *ComponentRegistry) getFactory(kind Kind) func() iComponentStorage {
	if int(kind) >= len(r.components) {
		return nil
	}
	return r.components[kind].factory
}

// genericComponentStorage is a generic implementation of iComponentStorage.
// It stores components of a specific type `T` densely; removal swaps the last
// row into the hole.
type genericComponentStorage[T any] struct {
	data []T
	def  T
}

func (cs *genericComponentStorage[T]) AppendDefault() {
	cs.data = append(cs.data, cs.def)
}

func (cs *genericComponentStorage[T]) AppendFrom(src iComponentStorage, row int) {
	other := src.(*genericComponentStorage[T])
	cs.data = append(cs.data, other.data[row])
}

// AppendValue adds a component to the column. It accepts T or a non-nil *T.
func (cs *genericComponentStorage[T]) AppendValue(item any) bool {
	if ptr, ok := item.(*T); ok {
		if ptr == nil {
			return false
		}
		cs.data = append(cs.data, *ptr)
		return true
	}
	if val, ok := item.(T); ok {
		cs.data = append(cs.data, val)
		return true
	}
	return false
}

func (cs *genericComponentStorage[T]) SwapRemove(row int) {
	last := len(cs.data) - 1
	if row != last {
		cs.data[row] = cs.data[last]
	}
	var zero T
	cs.data[last] = zero // drop references held by the removed value
	cs.data = cs.data[:last]
}

// Get returns a pointer to the component at the given row.
func (cs *genericComponentStorage[T]) Get(row int) any {
	if row < 0 || row >= len(cs.data) {
		return nil
	}
	return &cs.data[row]
}

// Set overwrites the component at the given row. It accepts T or a non-nil *T.
func (cs *genericComponentStorage[T]) Set(row int, item any) bool {
	if row < 0 || row >= len(cs.data) {
		return false
	}
	if ptr, ok := item.(*T); ok {
		if ptr == nil {
			return false
		}
		cs.data[row] = *ptr
		return true
	}
	if val, ok := item.(T); ok {
		cs.data[row] = val
		return true
	}
	return false
}

func (cs *genericComponentStorage[T]) Len() int {
	return len(cs.data)
}

func (cs *genericComponentStorage[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}
