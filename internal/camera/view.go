// Package camera implements the gameplay camera rig: a stack of weighted
// camera modes that are evaluated and blended every frame into one view,
// plus the third-person penetration avoidance and auto-framing strategies.
//
// All evaluation is single-threaded and frame-stepped. The host threads a
// Frame through every tick; nothing in this package blocks.
package camera

import (
	"fmt"

	"github.com/Faultbox/camrig/pkg/math"
)

// DefaultFOV is the horizontal field of view (degrees) of a fresh view.
const DefaultFOV = 80.0

// Default pitch limits in degrees.
const (
	DefaultPitchMin = -89.0
	DefaultPitchMax = 89.0
)

// View is one camera sample produced by a mode.
type View struct {
	Location        math.Vec3
	Rotation        math.Rotator
	ControlRotation math.Rotator
	FieldOfView     float32
}

// NewView returns a view at the origin with the default FOV.
func NewView() View {
	return View{FieldOfView: DefaultFOV}
}

// Blend moves v toward other by weight. Rotations take the shortest path.
//
// Blend is not commutative. A stack is composed by starting from the bottom
// view and blending each higher view in with that view's own weight.
// Weights at or outside [0, 1] return v or other exactly.
func (v *View) Blend(other View, weight float32) {
	if weight <= 0 {
		return
	}
	if weight >= 1 {
		*v = other
		return
	}

	v.Location = math.LerpV(v.Location, other.Location, weight)

	delta := other.Rotation.Sub(v.Rotation).Normalized()
	v.Rotation = v.Rotation.Add(delta.Scale(weight))

	deltaControl := other.ControlRotation.Sub(v.ControlRotation).Normalized()
	v.ControlRotation = v.ControlRotation.Add(deltaControl.Scale(weight))

	v.FieldOfView = math.Lerp(v.FieldOfView, other.FieldOfView, weight)
}

func (v View) String() string {
	return fmt.Sprintf("loc=(%.1f %.1f %.1f) rot=(P=%.1f Y=%.1f R=%.1f) fov=%.1f",
		v.Location.X, v.Location.Y, v.Location.Z,
		v.Rotation.Pitch, v.Rotation.Yaw, v.Rotation.Roll,
		v.FieldOfView)
}
