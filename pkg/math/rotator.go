package math

import "math"

// Degree/radian conversion factors.
const (
	DegToRad = float32(math.Pi / 180)
	RadToDeg = float32(180 / math.Pi)
)

// Rotator is an orientation expressed as Euler angles in degrees.
// Pitch rotates about the right axis (positive looks up), Yaw about the up
// axis (positive turns from X toward Y), Roll about the forward axis.
type Rotator struct {
	Pitch, Yaw, Roll float32
}

// Add returns r + other, component-wise.
func (r Rotator) Add(other Rotator) Rotator {
	return Rotator{r.Pitch + other.Pitch, r.Yaw + other.Yaw, r.Roll + other.Roll}
}

// Sub returns r - other, component-wise.
func (r Rotator) Sub(other Rotator) Rotator {
	return Rotator{r.Pitch - other.Pitch, r.Yaw - other.Yaw, r.Roll - other.Roll}
}

// Scale multiplies every component by s.
func (r Rotator) Scale(s float32) Rotator {
	return Rotator{r.Pitch * s, r.Yaw * s, r.Roll * s}
}

// Normalized returns r with every axis wrapped into (-180, 180].
func (r Rotator) Normalized() Rotator {
	return Rotator{NormalizeAxis(r.Pitch), NormalizeAxis(r.Yaw), NormalizeAxis(r.Roll)}
}

// NearlyEqual compares two rotators axis by axis, modulo 360.
func (r Rotator) NearlyEqual(other Rotator, tol float32) bool {
	d := r.Sub(other).Normalized()
	return Abs(d.Pitch) <= tol && Abs(d.Yaw) <= tol && Abs(d.Roll) <= tol
}

// Vector returns the unit forward vector of r.
func (r Rotator) Vector() Vec3 {
	sp, cp := math.Sincos(float64(r.Pitch * DegToRad))
	sy, cy := math.Sincos(float64(r.Yaw * DegToRad))
	return Vec3{float32(cp * cy), float32(cp * sy), float32(sp)}
}

// Axes returns the forward, right and up unit vectors of r.
func (r Rotator) Axes() (forward, right, up Vec3) {
	sp, cp := math.Sincos(float64(r.Pitch * DegToRad))
	sy, cy := math.Sincos(float64(r.Yaw * DegToRad))
	sr, cr := math.Sincos(float64(r.Roll * DegToRad))

	forward = Vec3{float32(cp * cy), float32(cp * sy), float32(sp)}
	right = Vec3{float32(sr*sp*cy - cr*sy), float32(sr*sp*sy + cr*cy), float32(-sr * cp)}
	up = Vec3{float32(-(cr*sp*cy + sr*sy)), float32(cy*sr - cr*sp*sy), float32(cr * cp)}
	return forward, right, up
}

// RotateVector transforms a vector from r's local frame into world space.
func (r Rotator) RotateVector(v Vec3) Vec3 {
	f, rt, u := r.Axes()
	return f.Scale(v.X).Add(rt.Scale(v.Y)).Add(u.Scale(v.Z))
}

// Quat converts r to a unit quaternion.
func (r Rotator) Quat() Quat {
	sp, cp := math.Sincos(float64(r.Pitch * DegToRad / 2))
	sy, cy := math.Sincos(float64(r.Yaw * DegToRad / 2))
	sr, cr := math.Sincos(float64(r.Roll * DegToRad / 2))

	return Quat{
		X: float32(cr*sp*sy - sr*cp*cy),
		Y: float32(-cr*sp*cy - sr*cp*sy),
		Z: float32(cr*cp*sy - sr*sp*cy),
		W: float32(cr*cp*cy + sr*sp*sy),
	}
}

// ClampAxis wraps angle into [0, 360).
func ClampAxis(angle float32) float32 {
	a := float32(math.Mod(float64(angle), 360))
	if a < 0 {
		a += 360
	}
	return a
}

// NormalizeAxis wraps angle into (-180, 180].
func NormalizeAxis(angle float32) float32 {
	a := ClampAxis(angle)
	if a > 180 {
		a -= 360
	}
	return a
}

// ClampAngle clamps angle into the arc running from minAngle to maxAngle,
// taking wrap-around into account. The result is normalized.
func ClampAngle(angle, minAngle, maxAngle float32) float32 {
	maxDelta := ClampAxis(maxAngle-minAngle) * 0.5
	center := ClampAxis(minAngle + maxDelta)
	delta := NormalizeAxis(angle - center)

	if delta > maxDelta {
		return NormalizeAxis(center + maxDelta)
	}
	if delta < -maxDelta {
		return NormalizeAxis(center - maxDelta)
	}
	return NormalizeAxis(angle)
}
