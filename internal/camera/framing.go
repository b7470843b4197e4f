package camera

import (
	"fmt"

	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// FramingSettings configure auto-framing of the target and its focus.
type FramingSettings struct {
	Enabled bool
	// MinSeparationAngle is the smallest angle, seen from the camera, allowed
	// between the two framed actors before the view is yawed to open it up.
	MinSeparationAngle float32
	MinFOV             float32
	MaxFOV             float32
	FOVStep            float32
	MaxIterations      int
	// GroupPadding grows the bounds of a framed group on every side.
	GroupPadding float32
	DrawDebug    bool
}

// DefaultFramingSettings returns the stock auto-framing tuning.
func DefaultFramingSettings() FramingSettings {
	return FramingSettings{
		Enabled:            true,
		MinSeparationAngle: 30,
		MinFOV:             5,
		MaxFOV:             120,
		FOVStep:            5,
		MaxIterations:      32,
		GroupPadding:       200,
	}
}

// Framer keeps two or more actors of interest on screen.
type Framer struct {
	FramingSettings

	currentAngle  float32
	adjustedAngle float32
	iterations    int
}

// NewFramer returns a framer with s.
func NewFramer(s FramingSettings) *Framer {
	return &Framer{FramingSettings: s}
}

// FramePair turns the view toward the midpoint of a and b, backs it off far
// enough to fit both, and widens the FOV until both are inside half of it.
// pitch is the control pitch used to shape the fit distance. Degenerate
// geometry leaves the view untouched and returns false.
func (fr *Framer) FramePair(view *View, a, b math.Vec3, pitch float32, dbg world.DebugDraw) bool {
	if a.IsNaN() || b.IsNaN() || view.Location.IsNaN() {
		return false
	}
	mid := a.Add(b).Scale(0.5)
	toMid := mid.Sub(view.Location)
	if toMid.LengthSquared() < math.KindaSmallNumber || a.NearlyEqual(b, math.KindaSmallNumber) {
		return false
	}

	rot := toMid.Rotation()
	rot.Roll = view.Rotation.Roll

	fr.currentAngle = separationAngle(view.Location, a, b)
	if fr.currentAngle < fr.MinSeparationAngle {
		rot.Yaw = math.NormalizeAxis(rot.Yaw - (fr.MinSeparationAngle - fr.currentAngle))
	}

	minDist := fr.minDistanceFromMidpoint(a.Distance(b), pitch, view.FieldOfView)
	dist := max(minDist, toMid.Length())

	view.Rotation = rot
	view.Location = mid.Sub(rot.Vector().Scale(dist))
	fr.adjustedAngle = separationAngle(view.Location, a, b)

	fr.fitFOV(view, a, b)

	if fr.DrawDebug && dbg != nil {
		dbg.Sphere(mid, 10, world.ColorBlue)
		dbg.Line(a, b, world.ColorBlue)
		dbg.String(b.Add(math.Vec3{Y: 10}), fmt.Sprintf("separation %.1f", a.Distance(b)), world.ColorWhite)
	}
	return true
}

// fitFOV widens the FOV in steps until both points are inside half of it.
// The loop is bounded by MaxFOV and MaxIterations.
func (fr *Framer) fitFOV(view *View, a, b math.Vec3) {
	maxFOV := fr.MaxFOV
	if maxFOV <= 0 {
		maxFOV = 120
	}
	step := fr.FOVStep
	if step <= 0 {
		step = 5
	}
	view.FieldOfView = math.Clamp(view.FieldOfView, fr.MinFOV, maxFOV)

	fr.iterations = 0
	for ; fr.iterations < fr.MaxIterations; fr.iterations++ {
		if InFOV(*view, a) && InFOV(*view, b) {
			break
		}
		if view.FieldOfView >= maxFOV {
			break
		}
		view.FieldOfView = min(view.FieldOfView+step, maxFOV)
	}
}

// minDistanceFromMidpoint is how far from the midpoint the camera must sit to
// fit a pair separated by sep. The fit angle narrows from the full FOV at
// level pitch to a quarter of it looking straight up or down.
func (fr *Framer) minDistanceFromMidpoint(sep, pitch, fov float32) float32 {
	t := math.Pow(math.Abs(math.Clamp(pitch, -90, 90))/90, 0.1)
	angle := math.Clamp(math.Lerp(fov, fov/4, t), 1, 89)
	return (sep / 2) / math.TanDeg(angle)
}

// InFOV reports whether p lies within half the view's field of view of its
// forward axis.
func InFOV(view View, p math.Vec3) bool {
	dir := p.Sub(view.Location).SafeNormal()
	if dir == (math.Vec3{}) {
		return true
	}
	angle := math.AcosDeg(view.Rotation.Vector().Dot(dir))
	return angle <= view.FieldOfView/2
}

func separationAngle(from, a, b math.Vec3) float32 {
	return math.AcosDeg(a.Sub(from).SafeNormal().Dot(b.Sub(from).SafeNormal()))
}

// FrameGroup places the camera so the padded bounds of target and others fit
// the horizontal FOV, looking along the current view rotation. The bounds
// center is held at pivotZ. It returns false when there is nothing to frame.
func (fr *Framer) FrameGroup(view *View, target math.Vec3, others []world.Actor, pivotZ float32) bool {
	minB, maxB := target, target
	n := 0
	for _, o := range others {
		if o == nil {
			continue
		}
		l := o.Location()
		minB = math.Vec3{X: min(minB.X, l.X), Y: min(minB.Y, l.Y), Z: min(minB.Z, l.Z)}
		maxB = math.Vec3{X: max(maxB.X, l.X), Y: max(maxB.Y, l.Y), Z: max(maxB.Z, l.Z)}
		n++
	}
	if n == 0 {
		return false
	}
	pad := math.Vec3{X: fr.GroupPadding, Y: fr.GroupPadding, Z: fr.GroupPadding}
	minB, maxB = minB.Sub(pad), maxB.Add(pad)

	center := minB.Add(maxB).Scale(0.5)
	center.Z = pivotZ
	radius := maxB.Sub(minB).Scale(0.5).Length()

	halfFOV := math.Clamp(view.FieldOfView/2, 1, 89)
	dist := radius / math.TanDeg(halfFOV)

	view.Location = center.Sub(view.Rotation.Vector().Scale(dist))
	return true
}

// DebugLines describes the last framing pass.
func (fr *Framer) DebugLines() []string {
	return []string{fmt.Sprintf("  framing angle=%.1f adjusted=%.1f iterations=%d",
		fr.currentAngle, fr.adjustedAngle, fr.iterations)}
}
