package world_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/ecs"
	"github.com/plus3/spree/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveCameraMatricesNeedsAllThreeKinds(t *testing.T) {
	w := world.New()
	w.Resize(1600, 900)

	_, _, ok := w.ActiveCameraMatrices()
	assert.False(t, ok, "empty world")

	w.Spawn(world.DefaultLocalTransform(), world.DefaultCamera())
	w.Spawn(world.DefaultLocalTransform(), world.ActiveCamera{})
	w.Spawn(world.DefaultCamera(), world.ActiveCamera{})

	_, _, ok = w.ActiveCameraMatrices()
	assert.False(t, ok, "no entity carries all three kinds")

	id := w.SpawnCamera(mgl32.Vec3{0, 0, 5}, world.DefaultCamera(), true)

	got, matrices, ok := w.ActiveCameraMatrices()
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, matrices.CameraPosition)
	assert.Equal(t, world.DefaultPerspective().Matrix(1600.0/900.0), matrices.Projection)
	assert.True(t, matrices.View.ApproxEqual(mgl32.LookAtV(
		mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 1, 0})))
}

func TestActiveCameraMatricesWithoutGlobalTransform(t *testing.T) {
	w := world.New()
	w.Resize(16, 9)

	local := world.DefaultLocalTransform()
	local.Translation = mgl32.Vec3{0, 0, 3}
	id := w.Storage.SpawnComponents(local, world.DefaultCamera(), world.ActiveCamera{})
	got, m, ok := w.ActiveCameraMatrices()
	require.True(t, ok, "the three required kinds are enough")
	assert.Equal(t, id, got)
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, m.CameraPosition)

	require.True(t, w.Storage.SetComponent(id, world.GlobalTransformKind, world.GlobalTransform{Matrix: mgl32.Translate3D(1, 2, 3)}))
	_, m, ok = w.ActiveCameraMatrices()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, m.CameraPosition, "GlobalTransform wins when present")
}

func TestActiveCameraUsesGlobalPositionAndNormalizedRotation(t *testing.T) {
	w := world.New()
	w.Resize(800, 0)

	pivot := w.Spawn(world.LocalTransform{
		Translation: mgl32.Vec3{10, 0, 0},
		Rotation:    mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{1, 1, 1},
	})
	camera := w.SpawnCamera(mgl32.Vec3{0, 2, 0}, world.DefaultCamera(), true)
	require.True(t, w.Storage.SetComponent(camera, world.ParentKind, world.Parent{Entity: pivot}))

	local := ecs.Get[world.LocalTransform](w.Storage, camera)
	require.NotNil(t, local)
	local.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}).Scale(3)

	require.NoError(t, w.Update(0))

	_, matrices, ok := w.ActiveCameraMatrices()
	require.True(t, ok)
	assert.True(t, matrices.CameraPosition.ApproxEqual(mgl32.Vec3{10, 2, 0}))
	assert.Equal(t, world.DefaultPerspective().Matrix(800), matrices.Projection, "zero height is treated as 1")

	// turned 90 degrees left, the camera looks down -X
	forward := matrices.View.Mul4x1(mgl32.Vec4{9, 2, 0, 1})
	assert.InDelta(t, -1, forward.Z(), 1e-5)
	assert.InDelta(t, 0, forward.X(), 1e-5)
}

func TestActiveCameraPicksFirstTableInCreationOrder(t *testing.T) {
	w := world.New()
	first := w.SpawnCamera(mgl32.Vec3{1, 0, 0}, world.DefaultCamera(), true)
	w.Spawn(world.DefaultLocalTransform(), world.DefaultCamera(), world.ActiveCamera{}, world.Player{Slot: 1})

	got, _, ok := w.ActiveCameraMatrices()
	require.True(t, ok)
	assert.Equal(t, first, got)
}

func TestActivateMovesMarker(t *testing.T) {
	w := world.New()
	a := w.SpawnCamera(mgl32.Vec3{1, 0, 0}, world.DefaultCamera(), true)
	b := w.SpawnCamera(mgl32.Vec3{2, 0, 0}, world.DefaultCamera(), false)

	require.True(t, w.Activate(b))
	got, m, ok := w.ActiveCameraMatrices()
	require.True(t, ok)
	assert.Equal(t, b, got)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, m.CameraPosition)
	assert.False(t, w.Storage.HasComponent(a, world.ActiveCameraKind))

	named := w.Spawn(world.Name("not a camera"))
	assert.False(t, w.Activate(named))
}

func TestSpawnedCameraCarriesGlobalTransform(t *testing.T) {
	w := world.New()
	w.Resize(16, 9)

	id := w.SpawnCamera(mgl32.Vec3{4, 5, 6}, world.DefaultCamera(), true)
	assert.True(t, w.Storage.HasComponent(id, world.GlobalTransformKind))

	_, m, ok := w.ActiveCameraMatrices()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, m.CameraPosition)
}
