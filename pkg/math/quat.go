package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Slerp performs spherical linear interpolation between two quaternions.
// t should be in range [0, 1].
func (q Quat) Slerp(other Quat, t float32) Quat {
	dot := q.Dot(other)

	// Take the shorter path
	if dot < 0 {
		other = Quat{X: -other.X, Y: -other.Y, Z: -other.Z, W: -other.W}
		dot = -dot
	}

	// Nearly parallel: lerp avoids dividing by sin(~0)
	if dot > 0.9995 {
		return Quat{
			X: q.X + t*(other.X-q.X),
			Y: q.Y + t*(other.Y-q.Y),
			Z: q.Z + t*(other.Z-q.Z),
			W: q.W + t*(other.W-q.W),
		}.Normalize()
	}

	theta0 := float32(math.Acos(float64(dot)))
	theta := theta0 * t
	sinTheta := float32(math.Sin(float64(theta)))
	sinTheta0 := float32(math.Sin(float64(theta0)))

	s0 := float32(math.Cos(float64(theta))) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quat{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// RotateVector rotates v by the (unit) quaternion q.
func (q Quat) RotateVector(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Rotator converts q to Euler angles in degrees.
func (q Quat) Rotator() Rotator {
	const singularity = 0.4999995

	test := q.Z*q.X - q.W*q.Y
	yawY := 2 * (q.W*q.Z + q.X*q.Y)
	yawX := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	yaw := float32(math.Atan2(float64(yawY), float64(yawX))) * RadToDeg

	switch {
	case test < -singularity:
		roll := NormalizeAxis(-yaw - 2*float32(math.Atan2(float64(q.X), float64(q.W)))*RadToDeg)
		return Rotator{Pitch: -90, Yaw: yaw, Roll: roll}
	case test > singularity:
		roll := NormalizeAxis(yaw - 2*float32(math.Atan2(float64(q.X), float64(q.W)))*RadToDeg)
		return Rotator{Pitch: 90, Yaw: yaw, Roll: roll}
	}

	pitch := float32(math.Asin(float64(2*test))) * RadToDeg
	roll := float32(math.Atan2(float64(-2*(q.W*q.X+q.Y*q.Z)), float64(1-2*(q.X*q.X+q.Y*q.Y)))) * RadToDeg
	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}
}
