package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spree/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMapIsInjective(t *testing.T) {
	seen := make(map[world.Key]ebiten.Key)
	for key, k := range keyMap {
		prev, dup := seen[k]
		require.False(t, dup, "%v and %v both map to %v", prev, key, k)
		seen[k] = key
	}
	assert.Equal(t, world.KeyEscape, keyMap[ebiten.KeyEscape])
	assert.Equal(t, world.KeyTab, keyMap[ebiten.KeyTab])
	assert.Equal(t, world.KeyLeftShift, keyMap[ebiten.KeyShiftLeft])
}

func TestMouseMap(t *testing.T) {
	assert.Len(t, mouseMap, 3)
	assert.Equal(t, world.MouseRight, mouseMap[ebiten.MouseButtonRight])
}

func TestClearColor(t *testing.T) {
	c := clearColor([4]float32{0.5, 0.25, 1, 1})
	assert.InDelta(t, 0.5, c.R, 1e-6)
	assert.InDelta(t, 0.25, c.G, 1e-6)
	assert.InDelta(t, 1.0, c.B, 1e-6)
	assert.InDelta(t, 1.0, c.A, 1e-6)
}
