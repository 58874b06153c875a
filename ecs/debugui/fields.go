package debugui

import (
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name  string
	Type  reflect.Type
	Index int
}

// ReflectionCache memoizes the exported fields of component struct types.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of t, or nil if t is not a struct.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{Name: field.Name, Type: field.Type, Index: i})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()

// setInt stores x into an addressable signed integer value. It refuses values
// that would overflow.
func setInt(v reflect.Value, x int64) bool {
	if !v.CanSet() || v.OverflowInt(x) {
		return false
	}
	v.SetInt(x)
	return true
}

func setUint(v reflect.Value, x int64) bool {
	if !v.CanSet() || x < 0 || v.OverflowUint(uint64(x)) {
		return false
	}
	v.SetUint(uint64(x))
	return true
}

func setFloat(v reflect.Value, x float64) bool {
	if !v.CanSet() || v.OverflowFloat(x) {
		return false
	}
	v.SetFloat(x)
	return true
}

// smallFloatArray reports whether v is a float array short enough to edit
// element by element, such as a vector or a color.
func smallFloatArray(v reflect.Value) bool {
	if v.Kind() != reflect.Array || v.Len() > 4 {
		return false
	}
	k := v.Type().Elem().Kind()
	return k == reflect.Float32 || k == reflect.Float64
}
