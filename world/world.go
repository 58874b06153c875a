package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/ecs"
)

// World bundles the entity storage, the system schedule and the resources the
// host updates every tick.
type World struct {
	Registry  *ecs.ComponentRegistry
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	Time     *ecs.Singleton[Time]
	Keyboard *ecs.Singleton[Keyboard]
	Mouse    *ecs.Singleton[Mouse]
	Viewport *ecs.Singleton[Viewport]
}

// New creates a world with the component kinds registered, the resources
// initialized and the built-in systems scheduled: fly camera, transform
// propagation, then hierarchy.
func New(opts ...ecs.SchedulerOption) *World {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		Registry:  registry,
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage, opts...),
		Time:      ecs.NewSingleton(storage, Time{}),
		Keyboard:  ecs.NewSingleton(storage, NewKeyboard()),
		Mouse:     ecs.NewSingleton(storage, Mouse{}),
		Viewport:  ecs.NewSingleton(storage, Viewport{Width: 1, Height: 1}),
	}

	w.Scheduler.Register(NewFlyCameraSystem())
	w.Scheduler.Register(&TransformSystem{})
	w.Scheduler.Register(&HierarchySystem{})
	return w
}

// Update advances the clock by dt seconds and runs one scheduler tick.
func (w *World) Update(dt float32) error {
	clock := w.Time.Get()
	clock.Delta = dt
	clock.Elapsed += dt
	clock.Frame++
	return w.Scheduler.Once(float64(dt))
}

// ResetInput clears the per-tick input deltas.
func (w *World) ResetInput() {
	w.Mouse.Get().ResetFrame()
}

// Resize records the drawable size.
func (w *World) Resize(width, height uint32) {
	*w.Viewport.Get() = Viewport{Width: width, Height: height}
}

// ActiveCameraMatrices runs the camera query against the current viewport.
func (w *World) ActiveCameraMatrices() (ecs.EntityId, CameraMatrices, bool) {
	return ActiveCameraMatrices(w.Storage, *w.Viewport.Get())
}

// Spawn creates an entity from component values. Entities with a
// LocalTransform always get a GlobalTransform computed from it.
func (w *World) Spawn(components ...any) ecs.EntityId {
	id := w.Storage.SpawnComponents(components...)
	if local := ecs.Get[LocalTransform](w.Storage, id); local != nil {
		w.Storage.SetComponent(id, GlobalTransformKind, GlobalTransform{Matrix: local.Matrix()})
	}
	return id
}

// SpawnCamera creates a camera at translation looking down -Z. When active is
// true it also carries ActiveCamera.
func (w *World) SpawnCamera(translation mgl32.Vec3, camera Camera, active bool) ecs.EntityId {
	local := DefaultLocalTransform()
	local.Translation = translation
	components := []any{local, camera, Name("Camera")}
	if active {
		components = append(components, ActiveCamera{})
	}
	return w.Spawn(components...)
}

// Activate moves the ActiveCamera marker to id.
func (w *World) Activate(id ecs.EntityId) bool {
	if !w.Storage.HasComponent(id, CameraKind) {
		return false
	}
	for {
		current, ok := w.Storage.QueryFirstEntity(ActiveCameraMask)
		if !ok {
			break
		}
		if err := w.Storage.RemoveComponents(current, ActiveCameraMask); err != nil {
			return false
		}
	}
	return w.Storage.AddComponents(id, ActiveCameraMask)
}
