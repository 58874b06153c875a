package main

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/ecs"
	"github.com/plus3/spree/world"
)

// SpinSystem rotates every root transform around Y, one table per worker.
type SpinSystem struct {
	Speed float32
}

func (s *SpinSystem) Execute(*ecs.UpdateFrame) {}

func (s *SpinSystem) Requires() ecs.Mask { return world.LocalTransformMask }

func (s *SpinSystem) ExecuteTable(frame *ecs.UpdateFrame, table *ecs.Archetype) {
	if table.HasComponent(world.ParentKind) {
		return
	}
	spin := mgl32.QuatRotate(s.Speed*float32(frame.DeltaTime), mgl32.Vec3{0, 1, 0})
	locals := ecs.Column[world.LocalTransform](table, world.LocalTransformKind)
	for i := range locals {
		locals[i].Rotation = spin.Mul(locals[i].Rotation).Normalize()
	}
}

// TintSystem fades colors toward white.
type TintSystem struct{}

func (s *TintSystem) Execute(*ecs.UpdateFrame) {}

func (s *TintSystem) Requires() ecs.Mask { return world.ColorMask }

func (s *TintSystem) ExecuteTable(frame *ecs.UpdateFrame, table *ecs.Archetype) {
	t := float32(frame.DeltaTime) * 0.1
	colors := ecs.Column[world.Color](table, world.ColorKind)
	for i := range colors {
		c := mgl32.Vec4(colors[i])
		colors[i] = world.Color(c.Add(mgl32.Vec4{1, 1, 1, 1}.Sub(c).Mul(t)))
	}
}

// ChurnSystem despawns and respawns entities through deferred commands to
// exercise slot reuse and table moves.
type ChurnSystem struct {
	PerTick int
	Named   ecs.Query[struct {
		Local *world.LocalTransform
		Name  *world.Name
	}]

	rng *rand.Rand
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	touched, deleted := 0, 0
	for id := range s.Named.Iter() {
		if touched == s.PerTick {
			break
		}
		touched++
		switch s.rng.IntN(3) {
		case 0:
			frame.Commands.Delete(id)
			deleted++
		case 1:
			frame.Commands.RemoveComponents(id, world.NameMask)
		default:
			frame.Commands.AddComponents(id, world.PlayerMask)
		}
	}
	for range deleted {
		local := world.DefaultLocalTransform()
		local.Translation = mgl32.Vec3{s.rng.Float32(), s.rng.Float32(), s.rng.Float32()}
		frame.Commands.Spawn(local, world.DefaultGlobalTransform(), world.Name("churn"))
	}
}
