package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/ecs"
	"github.com/plus3/spree/world"
)

// DemoState populates a small scene: a fly camera, an overhead camera and a
// sun with an orbiting planet and moon. Tab switches cameras.
type DemoState struct {
	NopState

	// SpinSpeed is the sun's rotation in radians per second.
	SpinSpeed float32

	Sun     ecs.EntityId
	Cameras []ecs.EntityId
	active  int
}

func NewDemoState() *DemoState {
	return &DemoState{SpinSpeed: 0.5}
}

func (d *DemoState) Initialize(w *world.World) {
	main := w.SpawnCamera(mgl32.Vec3{0, 2, 8}, world.DefaultCamera(), true)
	w.Storage.AddComponent(main, world.Player{Slot: 0})

	overhead := w.SpawnCamera(mgl32.Vec3{0, 20, 0}, world.Camera{
		Projection:  world.OrthographicProjection{XMag: 12, YMag: 12, ZNear: 0.1, ZFar: 100},
		Sensitivity: mgl32.Vec2{1, 1},
	}, false)
	if local := ecs.Get[world.LocalTransform](w.Storage, overhead); local != nil {
		local.Rotation = mgl32.QuatRotate(-mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0})
	}
	w.Storage.SetComponent(overhead, world.NameKind, world.Name("Overhead"))
	d.Cameras = []ecs.EntityId{main, overhead}

	d.Sun = w.Spawn(world.DefaultLocalTransform(), world.Name("Sun"), world.Color{1, 0.85, 0.3, 1})

	planetLocal := world.DefaultLocalTransform()
	planetLocal.Translation = mgl32.Vec3{4, 0, 0}
	planetLocal.Scale = mgl32.Vec3{0.5, 0.5, 0.5}
	planet := w.Spawn(planetLocal, world.Name("Planet"), world.Color{0.2, 0.4, 1, 1}, world.Parent{Entity: d.Sun})

	moonLocal := world.DefaultLocalTransform()
	moonLocal.Translation = mgl32.Vec3{1.5, 0, 0}
	moonLocal.Scale = mgl32.Vec3{0.3, 0.3, 0.3}
	w.Spawn(moonLocal, world.Name("Moon"), world.DefaultColor(), world.Parent{Entity: planet})
}

func (d *DemoState) ReceiveEvent(w *world.World, e Event) {
	key, ok := e.(KeyEvent)
	if !ok || key.Key != world.KeyTab || key.State != world.Pressed || len(d.Cameras) == 0 {
		return
	}
	d.active = (d.active + 1) % len(d.Cameras)
	w.Activate(d.Cameras[d.active])
}

func (d *DemoState) Update(w *world.World) {
	local := ecs.Get[world.LocalTransform](w.Storage, d.Sun)
	if local == nil {
		return
	}
	angle := d.SpinSpeed * w.Time.Get().Delta
	local.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0}).Mul(local.Rotation).Normalize()
}
