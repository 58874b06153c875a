package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/ecs"
)

// TransformSystem writes each entity's local matrix into its GlobalTransform.
// Tables are processed in parallel; HierarchySystem fixes up parented entities
// afterwards.
type TransformSystem struct{}

func (s *TransformSystem) Execute(frame *ecs.UpdateFrame) {}

func (s *TransformSystem) Requires() ecs.Mask {
	return LocalTransformMask | GlobalTransformMask
}

func (s *TransformSystem) ExecuteTable(frame *ecs.UpdateFrame, table *ecs.Archetype) {
	if table.HasComponent(ParentKind) {
		return
	}
	locals := ecs.Column[LocalTransform](table, LocalTransformKind)
	globals := ecs.Column[GlobalTransform](table, GlobalTransformKind)
	for i := range locals {
		globals[i].Matrix = locals[i].Matrix()
	}
}

// HierarchySystem composes GlobalTransform = parent global * local for every
// entity with a Parent. Dead parents and cycles are treated as roots.
type HierarchySystem struct {
	Children ecs.Query[struct {
		Parent *Parent
		Local  *LocalTransform
		Global *GlobalTransform
	}]

	resolved map[ecs.EntityId]mgl32.Mat4
	visiting map[ecs.EntityId]bool
}

func (s *HierarchySystem) Execute(frame *ecs.UpdateFrame) {
	if s.resolved == nil {
		s.resolved = make(map[ecs.EntityId]mgl32.Mat4)
		s.visiting = make(map[ecs.EntityId]bool)
	}
	clear(s.resolved)
	clear(s.visiting)

	for id, child := range s.Children.Iter() {
		child.Global.Matrix = s.resolve(frame.Storage, id)
	}
}

// resolve returns the world matrix of id, computing parents first.
func (s *HierarchySystem) resolve(storage *ecs.Storage, id ecs.EntityId) mgl32.Mat4 {
	if m, ok := s.resolved[id]; ok {
		return m
	}

	local := mgl32.Ident4()
	if lt, ok := storage.GetComponent(id, LocalTransformKind).(*LocalTransform); ok {
		local = lt.Matrix()
	} else if gt, ok := storage.GetComponent(id, GlobalTransformKind).(*GlobalTransform); ok {
		s.resolved[id] = gt.Matrix
		return gt.Matrix
	}

	m := local
	if parent, ok := storage.GetComponent(id, ParentKind).(*Parent); ok &&
		parent.Entity != id && storage.Alive(parent.Entity) && !s.visiting[id] {
		s.visiting[id] = true
		m = s.resolve(storage, parent.Entity).Mul4(local)
		delete(s.visiting, id)
	}

	s.resolved[id] = m
	return m
}

// FlyCameraSystem moves the active camera: WASD moves in the view plane,
// Space and LeftShift move along world up, and dragging with the right button
// held turns the camera. Camera.Sensitivity scales mouse look per axis.
type FlyCameraSystem struct {
	Keyboard ecs.Singleton[Keyboard]
	Mouse    ecs.Singleton[Mouse]
	Time     ecs.Singleton[Time]

	// Speed is in world units per second.
	Speed float32
	// LookSpeed is in radians per pixel.
	LookSpeed float32
}

func NewFlyCameraSystem() *FlyCameraSystem {
	return &FlyCameraSystem{Speed: 5, LookSpeed: 0.0025}
}

func (s *FlyCameraSystem) Execute(frame *ecs.UpdateFrame) {
	id, ok := frame.Storage.QueryFirstEntity(ActiveCameraQuery)
	if !ok {
		return
	}
	camera := ecs.Get[Camera](frame.Storage, id)
	local := ecs.Get[LocalTransform](frame.Storage, id)
	keyboard, mouse, clock := s.Keyboard.Get(), s.Mouse.Get(), s.Time.Get()
	if camera == nil || local == nil || keyboard == nil || mouse == nil || clock == nil {
		return
	}

	rotation := local.Rotation.Normalize()
	forward := rotation.Rotate(mgl32.Vec3{0, 0, -1})
	right := rotation.Rotate(mgl32.Vec3{1, 0, 0})
	up := mgl32.Vec3{0, 1, 0}

	var direction mgl32.Vec3
	if keyboard.IsPressed(KeyW) {
		direction = direction.Add(forward)
	}
	if keyboard.IsPressed(KeyS) {
		direction = direction.Sub(forward)
	}
	if keyboard.IsPressed(KeyD) {
		direction = direction.Add(right)
	}
	if keyboard.IsPressed(KeyA) {
		direction = direction.Sub(right)
	}
	if keyboard.IsPressed(KeySpace) {
		direction = direction.Add(up)
	}
	if keyboard.IsPressed(KeyLeftShift) {
		direction = direction.Sub(up)
	}
	if direction.Len() > 0 {
		local.Translation = local.Translation.Add(direction.Normalize().Mul(s.Speed * clock.Delta))
	}

	if mouse.Buttons.Has(RightClicked) && mouse.Buttons.Has(Moved) {
		yaw := -mouse.PositionDelta.X() * camera.Sensitivity.X() * s.LookSpeed
		pitch := -mouse.PositionDelta.Y() * camera.Sensitivity.Y() * s.LookSpeed
		rotation = mgl32.QuatRotate(yaw, up).Mul(rotation).Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}))
		local.Rotation = rotation.Normalize()
	}
}
