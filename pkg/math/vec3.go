// Package math provides the small set of vector, rotation and interpolation
// types the camera rig needs. World space is Z-up: X forward, Y right.
package math

import "math"

// SmallNumber is the squared-length threshold below which a vector is treated as zero.
const SmallNumber = 1e-8

// KindaSmallNumber is the general purpose tolerance for float comparisons.
const KindaSmallNumber = 1e-4

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Common axes.
var (
	Vec3Zero    = Vec3{}
	Vec3Forward = Vec3{1, 0, 0}
	Vec3Right   = Vec3{0, 1, 0}
	Vec3Up      = Vec3{0, 0, 1}
)

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// LengthSquared returns the squared magnitude.
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// SafeNormal returns a unit vector, or zero if v is nearly zero.
func (v Vec3) SafeNormal() Vec3 {
	if v.LengthSquared() < SmallNumber {
		return Vec3{}
	}
	return v.Normalize()
}

// SafeNormal2D returns the normalized XY projection of v, or zero.
func (v Vec3) SafeNormal2D() Vec3 {
	return Vec3{v.X, v.Y, 0}.SafeNormal()
}

// ClampedToMaxSize returns v shortened to at most maxSize.
func (v Vec3) ClampedToMaxSize(maxSize float32) Vec3 {
	if maxSize < KindaSmallNumber {
		return Vec3{}
	}
	l2 := v.LengthSquared()
	if l2 > maxSize*maxSize {
		return v.Scale(maxSize / float32(math.Sqrt(float64(l2))))
	}
	return v
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// NearlyEqual reports whether v and other differ by at most tol per component.
func (v Vec3) NearlyEqual(other Vec3, tol float32) bool {
	return Abs(v.X-other.X) <= tol && Abs(v.Y-other.Y) <= tol && Abs(v.Z-other.Z) <= tol
}

// IsNaN reports whether any component is NaN or infinite.
func (v Vec3) IsNaN() bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return true
		}
	}
	return false
}

// Rotation returns the rotator that points the forward axis along v. Roll is zero.
func (v Vec3) Rotation() Rotator {
	yaw := float32(math.Atan2(float64(v.Y), float64(v.X))) * RadToDeg
	pitch := float32(math.Atan2(float64(v.Z), math.Sqrt(float64(v.X*v.X+v.Y*v.Y)))) * RadToDeg
	return Rotator{Pitch: pitch, Yaw: yaw}
}

// RotateAngleAxis rotates v around axis by angleDeg degrees (right-hand rule about axis).
func (v Vec3) RotateAngleAxis(angleDeg float32, axis Vec3) Vec3 {
	s, c := math.Sincos(float64(angleDeg * DegToRad))
	sf, cf := float32(s), float32(c)
	axis = axis.SafeNormal()
	// Rodrigues: v*c + (k x v)*s + k*(k.v)*(1-c)
	return v.Scale(cf).
		Add(axis.Cross(v).Scale(sf)).
		Add(axis.Scale(axis.Dot(v) * (1 - cf)))
}

// LerpV returns a + (b-a)*t.
func LerpV(a, b Vec3, t float32) Vec3 {
	return Vec3{
		a.X + t*(b.X-a.X),
		a.Y + t*(b.Y-a.Y),
		a.Z + t*(b.Z-a.Z),
	}
}

// ClosestPointOnLine returns the point on the infinite line through origin
// with direction dir that is closest to point, plus the distance between them.
func ClosestPointOnLine(point, dir, origin Vec3) (Vec3, float32) {
	d := dir.SafeNormal()
	closest := origin.Add(d.Scale(point.Sub(origin).Dot(d)))
	return closest, point.Distance(closest)
}
