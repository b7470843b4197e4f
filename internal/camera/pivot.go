package camera

import (
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

func mustTarget(target world.Actor) {
	if target == nil {
		panic("camera: mode updated without a target actor")
	}
}

// PivotLocation is the point the camera orbits.
//
// For a character the pivot sits at eye height, corrected so a crouched
// capsule (which is shorter and lower) still pivots at the standing eye point:
// the crouch easing is applied separately by the third-person mode.
func (b *Base) PivotLocation(target world.Actor) math.Vec3 {
	mustTarget(target)

	if ch, ok := target.(world.Character); ok {
		loc := ch.Location()
		heightAdjust := ch.DefaultHalfHeight() - ch.HalfHeight()
		loc.Z += heightAdjust + ch.BaseEyeHeight()
		return loc
	}
	if p, ok := target.(world.Pawn); ok {
		return p.ViewLocation()
	}
	return target.Location()
}

// PivotRotation is the orbit orientation: the pawn's view rotation, or the
// actor's own rotation.
func (b *Base) PivotRotation(target world.Actor) math.Rotator {
	mustTarget(target)

	if p, ok := target.(world.Pawn); ok {
		return p.ViewRotation()
	}
	return target.Rotation()
}
