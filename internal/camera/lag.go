package camera

import (
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// LagSettings configure smoothing of the pivot toward its raw target.
type LagSettings struct {
	Enabled         bool
	RotationEnabled bool
	// Substepping advances the filter in chunks of at most MaxTimeStep when
	// the frame is longer than that, keeping it stable at low frame rates.
	Substepping   bool
	Speed         float32
	RotationSpeed float32
	MaxTimeStep   float32
	// MaxDistance bounds how far the lagged location may trail the target.
	// Zero disables the bound.
	MaxDistance float32
	DrawMarkers bool
}

// DefaultLagSettings returns lag disabled with stock rates.
func DefaultLagSettings() LagSettings {
	return LagSettings{
		Substepping:   true,
		Speed:         10,
		RotationSpeed: 10,
		MaxTimeStep:   1.0 / 60.0,
	}
}

// LagFilter is the stateful pivot smoother of a mode.
type LagFilter struct {
	LagSettings

	prevLoc     math.Vec3
	prevRot     math.Rotator
	initialized bool
}

// Apply returns the lagged pivot for the raw pivot (loc, rot). The first call
// and any call with reset set snap to the raw pivot. A frame with no elapsed
// time holds the lagged pivot.
func (l *LagFilter) Apply(dt float32, loc math.Vec3, rot math.Rotator, reset bool, dbg world.DebugDraw) (math.Vec3, math.Rotator) {
	if !l.Enabled && !l.RotationEnabled {
		return loc, rot
	}
	if reset || !l.initialized {
		l.prevLoc, l.prevRot, l.initialized = loc, rot, true
		return loc, rot
	}
	if dt <= 0 {
		if l.Enabled {
			loc = l.prevLoc
		}
		if l.RotationEnabled {
			rot = l.prevRot
		}
		return loc, rot
	}

	substep := l.Substepping && l.MaxTimeStep > 0 && dt > l.MaxTimeStep

	outRot := rot
	if l.RotationEnabled {
		if substep && l.RotationSpeed > 0 {
			outRot = l.substepRotation(dt, rot)
		} else {
			outRot = math.QInterpTo(l.prevRot.Quat(), rot.Quat(), dt, l.RotationSpeed).Rotator()
		}
	}

	outLoc := loc
	if l.Enabled {
		if substep && l.Speed > 0 {
			outLoc = l.substepLocation(dt, loc)
		} else {
			outLoc = math.VInterpTo(l.prevLoc, loc, dt, l.Speed)
		}

		if l.MaxDistance > 0 {
			fromTarget := outLoc.Sub(loc)
			if fromTarget.LengthSquared() > l.MaxDistance*l.MaxDistance {
				outLoc = loc.Add(fromTarget.ClampedToMaxSize(l.MaxDistance))
			}
		}

		if l.DrawMarkers && dbg != nil {
			dbg.Sphere(l.prevLoc, 5, world.ColorGreen)
			dbg.Sphere(outLoc, 5, world.ColorYellow)
			dbg.Line(l.prevLoc, outLoc, world.ColorWhite)
		}
	}

	l.prevLoc = outLoc
	l.prevRot = outRot
	return outLoc, outRot
}

// substepLocation walks a lerp target from the previous location toward loc
// in equal time slices and interpolates toward it each slice.
func (l *LagFilter) substepLocation(dt float32, loc math.Vec3) math.Vec3 {
	step := loc.Sub(l.prevLoc).Scale(1 / dt)
	lerpTarget := l.prevLoc
	out := l.prevLoc
	for remaining := dt; remaining > math.KindaSmallNumber; {
		amount := min(l.MaxTimeStep, remaining)
		lerpTarget = lerpTarget.Add(step.Scale(amount))
		remaining -= amount
		out = math.VInterpTo(out, lerpTarget, amount, l.Speed)
	}
	return out
}

func (l *LagFilter) substepRotation(dt float32, rot math.Rotator) math.Rotator {
	step := rot.Sub(l.prevRot).Normalized().Scale(1 / dt)
	lerpTarget := l.prevRot
	out := l.prevRot.Quat()
	for remaining := dt; remaining > math.KindaSmallNumber; {
		amount := min(l.MaxTimeStep, remaining)
		lerpTarget = lerpTarget.Add(step.Scale(amount))
		remaining -= amount
		out = math.QInterpTo(out, lerpTarget.Quat(), amount, l.RotationSpeed)
	}
	return out.Rotator()
}
