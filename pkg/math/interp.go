package math

import "math"

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Pow is a float32 wrapper for math.Pow.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// TanDeg returns tan of an angle given in degrees.
func TanDeg(deg float32) float32 {
	return float32(math.Tan(float64(deg * DegToRad)))
}

// AcosDeg returns acos(x) in degrees, with x clamped into [-1, 1].
func AcosDeg(x float32) float32 {
	return float32(math.Acos(float64(Clamp(x, -1, 1)))) * RadToDeg
}

// InterpEaseIn eases from a to b, accelerating from zero velocity.
func InterpEaseIn(a, b, alpha, exp float32) float32 {
	return Lerp(a, b, Pow(alpha, exp))
}

// InterpEaseOut eases from a to b, decelerating to zero velocity.
func InterpEaseOut(a, b, alpha, exp float32) float32 {
	return Lerp(a, b, 1-Pow(1-alpha, exp))
}

// InterpEaseInOut accelerates for the first half and decelerates for the second.
func InterpEaseInOut(a, b, alpha, exp float32) float32 {
	var t float32
	if alpha < 0.5 {
		t = 0.5 * InterpEaseIn(0, 1, alpha*2, exp)
	} else {
		t = 0.5*InterpEaseOut(0, 1, alpha*2-1, exp) + 0.5
	}
	return Lerp(a, b, t)
}

// InterpEaseInOutV applies InterpEaseInOut to each component.
func InterpEaseInOutV(a, b Vec3, alpha, exp float32) Vec3 {
	return Vec3{
		InterpEaseInOut(a.X, b.X, alpha, exp),
		InterpEaseInOut(a.Y, b.Y, alpha, exp),
		InterpEaseInOut(a.Z, b.Z, alpha, exp),
	}
}

// FInterpTo moves current toward target at a rate proportional to the remaining distance.
// A speed of zero or less snaps to target.
func FInterpTo(current, target, dt, speed float32) float32 {
	if speed <= 0 {
		return target
	}
	dist := target - current
	if dist*dist < SmallNumber {
		return target
	}
	return current + dist*Clamp(dt*speed, 0, 1)
}

// VInterpTo is the vector form of FInterpTo.
func VInterpTo(current, target Vec3, dt, speed float32) Vec3 {
	if speed <= 0 {
		return target
	}
	dist := target.Sub(current)
	if dist.LengthSquared() < KindaSmallNumber {
		return target
	}
	return current.Add(dist.Scale(Clamp(dt*speed, 0, 1)))
}

// QInterpTo spherically interpolates current toward target. A speed of zero or less snaps.
func QInterpTo(current, target Quat, dt, speed float32) Quat {
	if speed <= 0 {
		return target
	}
	if Abs(current.Dot(target)) > 1-KindaSmallNumber {
		return target
	}
	return current.Slerp(target, Clamp(dt*speed, 0, 1)).Normalize()
}
