package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection is either a PerspectiveProjection or an OrthographicProjection.
type Projection interface {
	// Matrix returns the clip-space projection for the given viewport aspect ratio.
	Matrix(aspect float32) mgl32.Mat4
	projection()
}

// PerspectiveProjection maps depth to [0, 1] in a right-handed view space.
// A nil ZFar selects an infinite far plane. A nil AspectRatio uses the viewport's.
type PerspectiveProjection struct {
	AspectRatio *float32
	YFov        float32
	ZNear       float32
	ZFar        *float32
}

// DefaultPerspective returns a 90 degree perspective with z-near 0.01 and no far plane.
func DefaultPerspective() PerspectiveProjection {
	return PerspectiveProjection{
		YFov:  mgl32.DegToRad(90),
		ZNear: 0.01,
	}
}

func (PerspectiveProjection) projection() {}

func (p PerspectiveProjection) Matrix(aspect float32) mgl32.Mat4 {
	if p.AspectRatio != nil {
		aspect = *p.AspectRatio
	}
	if p.ZFar != nil {
		return PerspectiveZO(p.YFov, aspect, p.ZNear, *p.ZFar)
	}
	return InfinitePerspectiveZO(p.YFov, aspect, p.ZNear)
}

// OrthographicProjection is a symmetric box of half extents XMag and YMag.
type OrthographicProjection struct {
	XMag  float32
	YMag  float32
	ZNear float32
	ZFar  float32
}

func (OrthographicProjection) projection() {}

func (o OrthographicProjection) Matrix(float32) mgl32.Mat4 {
	return mgl32.Ortho(-o.XMag, o.XMag, -o.YMag, o.YMag, o.ZNear, o.ZFar)
}

// ProjectionMatrix returns the camera's projection for the given aspect ratio.
// A camera without a projection gets the default perspective.
func ProjectionMatrix(camera *Camera, aspect float32) mgl32.Mat4 {
	switch p := camera.Projection.(type) {
	case PerspectiveProjection:
		return p.Matrix(aspect)
	case *PerspectiveProjection:
		return p.Matrix(aspect)
	case OrthographicProjection:
		return p.Matrix(aspect)
	case *OrthographicProjection:
		return p.Matrix(aspect)
	default:
		return DefaultPerspective().Matrix(aspect)
	}
}

// PerspectiveZO is a right-handed perspective projection with depth in [0, 1].
func PerspectiveZO(fovy, aspect, near, far float32) mgl32.Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = far * near / (near - far)
	return m
}

// InfinitePerspectiveZO is PerspectiveZO with the far plane at infinity.
func InfinitePerspectiveZO(fovy, aspect, near float32) mgl32.Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = -1
	m[11] = -1
	m[14] = -near
	return m
}
