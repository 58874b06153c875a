package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/ecs"
)

// ActiveCameraQuery is the mask an entity needs to be picked as the active camera.
const ActiveCameraQuery = ActiveCameraMask | CameraMask | LocalTransformMask

// CameraMatrices is what the renderer needs from the active camera.
type CameraMatrices struct {
	CameraPosition mgl32.Vec3
	Projection     mgl32.Mat4
	View           mgl32.Mat4
}

// ActiveCameraMatrices finds the first entity carrying ActiveCamera, Camera and
// LocalTransform and derives its view and projection for the viewport. It
// returns false if no such entity exists.
//
// GlobalTransform is optional here. A camera without one is not a miss: its eye
// position is LocalTransform.Translation, which is only correct for a camera
// with no Parent. Cameras spawned through World always carry a GlobalTransform.
func ActiveCameraMatrices(s *ecs.Storage, viewport Viewport) (ecs.EntityId, CameraMatrices, bool) {
	id, ok := s.QueryFirstEntity(ActiveCameraQuery)
	if !ok {
		return 0, CameraMatrices{}, false
	}

	camera, _ := s.GetComponent(id, CameraKind).(*Camera)
	local, _ := s.GetComponent(id, LocalTransformKind).(*LocalTransform)
	if camera == nil || local == nil {
		return 0, CameraMatrices{}, false
	}

	position := local.Translation
	if global, ok := s.GetComponent(id, GlobalTransformKind).(*GlobalTransform); ok {
		position = global.Translation()
	}
	rotation := local.Rotation.Normalize()
	target := position.Add(rotation.Rotate(mgl32.Vec3{0, 0, -1}))
	up := rotation.Rotate(mgl32.Vec3{0, 1, 0})

	return id, CameraMatrices{
		CameraPosition: position,
		Projection:     ProjectionMatrix(camera, viewport.AspectRatio()),
		View:           mgl32.LookAtV(position, target, up),
	}, true
}
