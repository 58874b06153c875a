package app_test

import (
	"testing"

	"github.com/plus3/spree/app"
	"github.com/plus3/spree/ecs"
	"github.com/plus3/spree/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoStateBuildsScene(t *testing.T) {
	demo := app.NewDemoState()
	a, _ := newApp(t, demo)

	require.Len(t, demo.Cameras, 2)
	id, _, ok := a.World.ActiveCameraMatrices()
	require.True(t, ok)
	assert.Equal(t, demo.Cameras[0], id)
	assert.True(t, a.World.Storage.HasComponent(id, world.PlayerKind))

	parented := 0
	for range a.World.Storage.Entities(world.ParentMask) {
		parented++
	}
	assert.Equal(t, 2, parented)
	assert.Equal(t, world.Name("Sun"), *ecs.Get[world.Name](a.World.Storage, demo.Sun))
}

func TestDemoStateTabCyclesCameras(t *testing.T) {
	demo := app.NewDemoState()
	a, _ := newApp(t, demo)

	require.NoError(t, a.HandleEvent(app.KeyEvent{Key: world.KeyTab, State: world.Pressed}))
	id, _, ok := a.World.ActiveCameraMatrices()
	require.True(t, ok)
	assert.Equal(t, demo.Cameras[1], id)

	require.NoError(t, a.HandleEvent(app.KeyEvent{Key: world.KeyTab, State: world.Released}))
	require.NoError(t, a.HandleEvent(app.KeyEvent{Key: world.KeyTab, State: world.Pressed}))
	id, _, _ = a.World.ActiveCameraMatrices()
	assert.Equal(t, demo.Cameras[0], id)
}

func TestDemoStateSpinsSunAndPropagates(t *testing.T) {
	demo := app.NewDemoState()
	demo.SpinSpeed = 1
	a, _ := newApp(t, demo)

	before := ecs.Get[world.LocalTransform](a.World.Storage, demo.Sun).Rotation
	require.NoError(t, a.Tick())
	require.NoError(t, a.Tick())
	after := ecs.Get[world.LocalTransform](a.World.Storage, demo.Sun).Rotation
	assert.False(t, before.ApproxEqual(after))

	for id := range a.World.Storage.Entities(world.ParentMask) {
		global := ecs.Get[world.GlobalTransform](a.World.Storage, id)
		require.NotNil(t, global)
		assert.NotEqual(t, world.DefaultGlobalTransform(), *global)
	}
}
