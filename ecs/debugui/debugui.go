// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spree/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Hosts consult it before forwarding input to the world.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Selection is the singleton shared by the inspector windows. Entity is the
// entity shown by the component inspector; Table, when set, restricts the
// entity browser to one table.
type Selection struct {
	Entity ecs.EntityId
	Table  *int
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the debugui kinds with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) ecs.Kind {
	return ecs.RegisterComponent[ImguiItem](registry)
}

// Windows holds the inspector windows spawned by Install.
type Windows struct {
	TableViewer        *TableViewer
	EntityBrowser      *EntityBrowser
	ComponentInspector *ComponentInspector
	QueryDebugger      *QueryDebugger
	PerformanceStats   *PerformanceStats
}

// Install registers the debugui kinds and singletons, schedules ImguiSystem
// and spawns one ImguiItem per inspector window. It must be called outside a
// scheduler tick.
func Install(storage *ecs.Storage, scheduler *ecs.Scheduler) *Windows {
	RegisterComponents(storage.Registry())
	ecs.NewSingleton(storage, ImguiInputState{})
	selection := ecs.NewSingleton(storage, Selection{})

	w := &Windows{
		TableViewer:        NewTableViewer(selection),
		EntityBrowser:      NewEntityBrowser(selection, 100),
		ComponentInspector: NewComponentInspector(selection),
		QueryDebugger:      NewQueryDebugger(),
		PerformanceStats:   NewPerformanceStats(120),
	}

	storage.SpawnComponents(ImguiItem{Render: func() { w.TableViewer.Render(storage) }})
	storage.SpawnComponents(ImguiItem{Render: func() { w.EntityBrowser.Render(storage) }})
	storage.SpawnComponents(ImguiItem{Render: func() { w.ComponentInspector.Render(storage) }})
	storage.SpawnComponents(ImguiItem{Render: func() { w.QueryDebugger.Render(storage) }})
	storage.SpawnComponents(ImguiItem{Render: func() { w.PerformanceStats.Render(storage, scheduler) }})

	scheduler.Register(&ImguiSystem{})
	return w
}
