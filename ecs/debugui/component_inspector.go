package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spree/ecs"
)

// ComponentInspector edits the components of the selected entity in place.
type ComponentInspector struct {
	selection *ecs.Singleton[Selection]
}

func NewComponentInspector(selection *ecs.Singleton[Selection]) *ComponentInspector {
	return &ComponentInspector{selection: selection}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	id := ci.selection.Get().Entity
	if id == 0 {
		imgui.Text("No entity selected")
		return
	}
	mask, ok := storage.MaskOf(id)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %s is dead", entityLabel(id)))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", entityLabel(id)))
	imgui.Text(fmt.Sprintf("Mask: %s", mask))
	imgui.Separator()

	registry := storage.Registry()
	for kind := range mask.Kinds() {
		component := storage.GetComponent(id, kind)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(registry.Name(kind)) {
			renderValue("value", reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
	if imgui.Button("Despawn") {
		storage.Delete(id)
		ci.selection.Get().Entity = 0
	}
}

// renderValue draws v and writes edits through it. v must be addressable for
// edits to stick.
func renderValue(name string, v reflect.Value) {
	if !v.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x := int32(v.Int())
		label(name)
		if imgui.InputInt("##"+name, &x) {
			setInt(v, int64(x))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		x := int32(v.Uint())
		label(name)
		if imgui.InputInt("##"+name, &x) {
			setUint(v, int64(x))
		}

	case reflect.Float32, reflect.Float64:
		x := float32(v.Float())
		label(name)
		if imgui.InputFloat("##"+name, &x) {
			setFloat(v, float64(x))
		}

	case reflect.Bool:
		x := v.Bool()
		if imgui.Checkbox(name, &x) && v.CanSet() {
			v.SetBool(x)
		}

	case reflect.String:
		x := v.String()
		label(name)
		if imgui.InputTextWithHint("##"+name, "", &x, imgui.InputTextFlagsNone, nil) && v.CanSet() {
			v.SetString(x)
		}

	case reflect.Struct:
		fields := globalReflectionCache.GetFields(v.Type())
		if len(fields) == 0 {
			imgui.Text(fmt.Sprintf("%s: %s", name, v.Type()))
			return
		}
		if imgui.TreeNodeStr(name) {
			for _, f := range fields {
				renderValue(f.Name, v.Field(f.Index))
			}
			imgui.TreePop()
		}

	case reflect.Array:
		if smallFloatArray(v) {
			if imgui.TreeNodeStr(name) {
				for i := range v.Len() {
					renderValue(fmt.Sprintf("%s[%d]", name, i), v.Index(i))
				}
				imgui.TreePop()
			}
			return
		}
		imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))

	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		renderValue(name, v.Elem())

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, v.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, v.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))
	}
}

func label(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
