package world_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/world"
	"github.com/stretchr/testify/assert"
)

func finite(m mgl32.Mat4) bool {
	for _, v := range m {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

// clipDepth projects a point at view-space distance d in front of the camera
// and returns its normalized depth.
func clipDepth(m mgl32.Mat4, d float32) float32 {
	clip := m.Mul4x1(mgl32.Vec4{0, 0, -d, 1})
	return clip.Z() / clip.W()
}

func TestPerspectiveFiniteAndInfinite(t *testing.T) {
	far := float32(100)
	aspect := float32(16) / 9

	withFar := world.PerspectiveProjection{YFov: mgl32.DegToRad(90), ZNear: 0.01, ZFar: &far}.Matrix(aspect)
	infinite := world.DefaultPerspective().Matrix(aspect)

	assert.True(t, finite(withFar))
	assert.True(t, finite(infinite))
	assert.NotEqual(t, withFar, infinite)

	assert.InDelta(t, 0, clipDepth(withFar, 0.01), 1e-5)
	assert.InDelta(t, 1, clipDepth(withFar, 100), 1e-5)
	assert.InDelta(t, 0, clipDepth(infinite, 0.01), 1e-5)

	for _, d := range []float32{10, 1e3, 1e5} {
		depth := clipDepth(infinite, d)
		assert.Less(t, depth, float32(1), "distance %v", d)
		assert.Greater(t, depth, float32(0.99), "distance %v", d)
	}

	assert.InDelta(t, 1/aspect, withFar[0], 1e-5, "f is 1 for a 90 degree fov")
	assert.InDelta(t, 1, withFar[5], 1e-5)
	assert.Equal(t, float32(-1), withFar[11])
}

func TestPerspectiveAspectOverride(t *testing.T) {
	square := float32(1)
	p := world.DefaultPerspective()
	p.AspectRatio = &square

	assert.Equal(t, p.Matrix(1), p.Matrix(16.0/9.0))
	assert.NotEqual(t, world.DefaultPerspective().Matrix(1), world.DefaultPerspective().Matrix(2))
}

func TestOrthographic(t *testing.T) {
	o := world.OrthographicProjection{XMag: 2, YMag: 1, ZNear: 0.1, ZFar: 10}
	m := o.Matrix(3)

	assert.Equal(t, mgl32.Ortho(-2, 2, -1, 1, 0.1, 10), m)
	assert.Equal(t, m, o.Matrix(1), "orthographic ignores the viewport aspect")
}

func TestProjectionMatrixDispatch(t *testing.T) {
	ortho := world.OrthographicProjection{XMag: 1, YMag: 1, ZNear: 0, ZFar: 1}

	cam := world.Camera{Projection: ortho}
	assert.Equal(t, ortho.Matrix(1), world.ProjectionMatrix(&cam, 1))

	cam.Projection = &ortho
	assert.Equal(t, ortho.Matrix(1), world.ProjectionMatrix(&cam, 1))

	cam.Projection = nil
	assert.Equal(t, world.DefaultPerspective().Matrix(2), world.ProjectionMatrix(&cam, 2))
}
