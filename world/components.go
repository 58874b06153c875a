package world

//go:generate go run ../cmd/kindgen -pkg . -out components_gen.go

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/ecs"
)

// LocalTransform is the entity's transform relative to its Parent, or to the
// world origin when it has none.
//
//kindgen:component
type LocalTransform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

func DefaultLocalTransform() LocalTransform {
	return LocalTransform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix returns translation * rotation * scale.
func (t LocalTransform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(t.Rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// GlobalTransform is the world-space matrix derived from LocalTransform and the
// Parent chain. Systems overwrite it every tick.
//
//kindgen:component
type GlobalTransform struct {
	Matrix mgl32.Mat4
}

func DefaultGlobalTransform() GlobalTransform {
	return GlobalTransform{Matrix: mgl32.Ident4()}
}

// Translation returns column 3 of the matrix.
func (g GlobalTransform) Translation() mgl32.Vec3 {
	return g.Matrix.Col(3).Vec3()
}

// Parent refers to another entity. It does not keep the parent alive; a dead
// parent is treated as absent.
//
//kindgen:component
type Parent struct {
	Entity ecs.EntityId
}

//kindgen:component
type Name string

// Color is linear RGBA.
//
//kindgen:component
type Color mgl32.Vec4

func DefaultColor() Color {
	return Color{1, 1, 1, 1}
}

// Camera holds the projection used when the entity is the active camera.
//
//kindgen:component
type Camera struct {
	Projection  Projection
	Sensitivity mgl32.Vec2
}

func DefaultCamera() Camera {
	return Camera{
		Projection:  DefaultPerspective(),
		Sensitivity: mgl32.Vec2{1, 1},
	}
}

// ActiveCamera marks the camera whose matrices drive the frame.
//
//kindgen:component
type ActiveCamera struct{}

//kindgen:component
type Player struct {
	Slot uint8
}
