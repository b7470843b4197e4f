// Package picking provides ray casting and swept-sphere intersection against
// simple shapes.
package picking

import (
	gomath "math"

	"github.com/Faultbox/camrig/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay converts screen coordinates to a world-space ray leaving a
// camera at loc with rotation rot and horizontal field of view fovDeg.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, loc math.Vec3, rot math.Rotator, fovDeg float32) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	halfW := math.TanDeg(fovDeg / 2)
	halfH := halfW * viewportH / viewportW

	fwd, right, up := rot.Axes()
	dir := fwd.Add(right.Scale(ndcX * halfW)).Add(up.Scale(ndcY * halfH))
	return Ray{Origin: loc, Direction: dir.SafeNormal()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the entry distance, the face normal at entry and whether an
// intersection occurred. A ray starting inside the box hits at t = 0 with
// a normal opposing the ray.
func (r Ray) IntersectAABB(box AABB) (t float32, normal math.Vec3, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	entryAxis := -1

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, math.Vec3{}, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			entryAxis = axis
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, math.Vec3{}, false
	}

	if tmin < 0 || entryAxis < 0 {
		return 0, r.Direction.Scale(-1), true
	}

	var n [3]float32
	if dir[entryAxis] > 0 {
		n[entryAxis] = -1
	} else {
		n[entryAxis] = 1
	}
	return tmin, math.Vec3{X: n[0], Y: n[1], Z: n[2]}, true
}

// IntersectSphere tests ray intersection with a sphere. A ray starting
// inside the sphere hits at t = 0.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, normal math.Vec3, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.LengthSquared() - radius*radius
	if c <= 0 {
		return 0, oc.SafeNormal(), true
	}
	h := b*b - c
	if h < 0 || b > 0 {
		return 0, math.Vec3{}, false
	}
	t = -b - sqrtf32(h)
	return t, r.At(t).Sub(center).SafeNormal(), true
}

// IntersectCapsule tests ray intersection with a capsule whose core segment
// runs from a to b. A ray starting inside the capsule hits at t = 0.
func (r Ray) IntersectCapsule(a, b math.Vec3, radius float32) (t float32, normal math.Vec3, hit bool) {
	if q, d2 := ClosestPointOnSegment(r.Origin, a, b); d2 <= radius*radius {
		return 0, r.Origin.Sub(q).SafeNormal(), true
	}

	ba := b.Sub(a)
	oa := r.Origin.Sub(a)
	baba := ba.Dot(ba)
	bard := ba.Dot(r.Direction)
	baoa := ba.Dot(oa)

	// Cylinder body.
	if qa := baba - bard*bard; qa > 1e-6 {
		qb := baba*r.Direction.Dot(oa) - baoa*bard
		qc := baba*oa.Dot(oa) - baoa*baoa - radius*radius*baba
		if h := qb*qb - qa*qc; h >= 0 {
			t = (-qb - sqrtf32(h)) / qa
			if y := baoa + t*bard; t >= 0 && y > 0 && y < baba {
				p := r.At(t)
				q, _ := ClosestPointOnSegment(p, a, b)
				return t, p.Sub(q).SafeNormal(), true
			}
		}
	}

	// End caps.
	ta, na, hitA := r.IntersectSphere(a, radius)
	tb, nb, hitB := r.IntersectSphere(b, radius)
	switch {
	case hitA && (!hitB || ta <= tb):
		return ta, na, true
	case hitB:
		return tb, nb, true
	}
	return 0, math.Vec3{}, false
}

// ClosestPointOnSegment returns the point of segment ab nearest to p and the
// squared distance to it.
func ClosestPointOnSegment(p, a, b math.Vec3) (math.Vec3, float32) {
	ab := b.Sub(a)
	denom := ab.LengthSquared()
	var s float32
	if denom > 0 {
		s = math.Clamp(p.Sub(a).Dot(ab)/denom, 0, 1)
	}
	q := a.Add(ab.Scale(s))
	return q, p.Sub(q).LengthSquared()
}

// NewAABB creates an AABB from two corners, handling swapped components.
func NewAABB(minCorner, maxCorner math.Vec3) AABB {
	box := AABB{Min: minCorner, Max: maxCorner}
	// Ensure min < max for each axis
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

// CenteredAABB creates an AABB from a center and half extents.
func CenteredAABB(center, extent math.Vec3) AABB {
	return NewAABB(center.Sub(extent), center.Add(extent))
}

// Center returns the center of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the half size of the box.
func (b AABB) Extent() math.Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// Expand grows the box by d on every side.
func (b AABB) Expand(d float32) AABB {
	pad := math.Vec3{X: d, Y: d, Z: d}
	return AABB{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Union returns the smallest box holding both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: math.Vec3{X: min(b.Min.X, o.Min.X), Y: min(b.Min.Y, o.Min.Y), Z: min(b.Min.Z, o.Min.Z)},
		Max: math.Vec3{X: max(b.Max.X, o.Max.X), Y: max(b.Max.Y, o.Max.Y), Z: max(b.Max.Z, o.Max.Z)},
	}
}

// Contains reports whether p is inside the box.
func (b AABB) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ClosestPoint returns the point of the box nearest to p.
func (b AABB) ClosestPoint(p math.Vec3) math.Vec3 {
	return math.Vec3{
		X: math.Clamp(p.X, b.Min.X, b.Max.X),
		Y: math.Clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: math.Clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

func sqrtf32(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}
