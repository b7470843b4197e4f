// Package orbit provides the viewer's inspection camera, which orbits a
// center point to look at the camera rig from outside.
package orbit

import (
	"github.com/Faultbox/camrig/internal/engine/picking"
	"github.com/Faultbox/camrig/pkg/math"
)

// Camera orbits around a center point. Angles are in degrees, Z is up.
type Camera struct {
	// Center point to orbit around
	Center math.Vec3

	Distance float32 // Distance from center
	Pitch    float32 // View pitch, negative looks down
	Yaw      float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32 // Degrees per pixel
	ZoomSensitivity float32
}

// New creates an orbit camera with default settings.
func New() *Camera {
	return &Camera{
		Distance:        1200,
		Pitch:           -45,
		MinDistance:     100,
		MaxDistance:     10000,
		MinPitch:        -89,
		MaxPitch:        -5,
		DragSensitivity: 0.25,
		ZoomSensitivity: 0.1,
	}
}

// Rotation returns the view rotation.
func (c *Camera) Rotation() math.Rotator {
	return math.Rotator{Pitch: c.Pitch, Yaw: c.Yaw}
}

// Position returns the camera position in world space.
func (c *Camera) Position() math.Vec3 {
	return c.Center.Sub(c.Rotation().Vector().Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.ViewMatrix(c.Position(), c.Rotation())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *Camera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw = math.NormalizeAxis(c.Yaw + deltaX*c.DragSensitivity)
	c.Pitch = math.Clamp(c.Pitch-deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *Camera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point on the ground plane relative to the
// current yaw. up moves it vertically.
func (c *Camera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	yaw := math.Rotator{Yaw: c.Yaw}
	fwd, rt, _ := yaw.Axes()
	move := fwd.Scale(forward).Add(rt.Scale(right)).Add(math.Vec3{Z: up})
	c.Center = c.Center.Add(move.Scale(speed))
}

// FitToBounds centers the camera on box and backs off far enough to see it.
func (c *Camera) FitToBounds(box picking.AABB) {
	c.Center = box.Center()

	ext := box.Extent()
	c.Distance = math.Clamp(2*max(ext.X, ext.Y, ext.Z), c.MinDistance, c.MaxDistance)
	c.Pitch = -35
}
