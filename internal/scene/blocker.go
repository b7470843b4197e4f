package scene

import (
	"fmt"

	"github.com/Faultbox/camrig/internal/engine/picking"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// Shape names the geometry of a static blocker.
type Shape string

const (
	ShapeBox     Shape = "box"
	ShapeSphere  Shape = "sphere"
	ShapeCapsule Shape = "capsule"
)

// Blocker is static level geometry. Camera-only blockers act as camera
// blocking volumes: they stop camera sweeps and nothing else.
type Blocker struct {
	name       string
	shape      Shape
	center     math.Vec3
	extent     math.Vec3 // Box half size
	radius     float32   // Sphere and capsule radius
	halfHeight float32   // Capsule half height, including the caps
	cameraOnly bool
}

// NewBox creates a box blocker from a center and half extents.
func NewBox(name string, center, extent math.Vec3) *Blocker {
	return &Blocker{name: name, shape: ShapeBox, center: center, extent: extent}
}

// NewSphere creates a sphere blocker.
func NewSphere(name string, center math.Vec3, radius float32) *Blocker {
	return &Blocker{name: name, shape: ShapeSphere, center: center, radius: radius}
}

// NewCapsule creates an upright capsule blocker.
func NewCapsule(name string, center math.Vec3, radius, halfHeight float32) *Blocker {
	return &Blocker{name: name, shape: ShapeCapsule, center: center, radius: radius, halfHeight: halfHeight}
}

// NewVolume creates a camera blocking volume.
func NewVolume(name string, center, extent math.Vec3) *Blocker {
	b := NewBox(name, center, extent)
	b.cameraOnly = true
	return b
}

func (b *Blocker) Name() string           { return b.name }
func (b *Blocker) Location() math.Vec3    { return b.center }
func (b *Blocker) Rotation() math.Rotator { return math.Rotator{} }
func (b *Blocker) Shape() Shape           { return b.shape }

// IsCameraBlockingVolume reports whether the blocker only blocks cameras.
func (b *Blocker) IsCameraBlockingVolume() bool {
	return b.cameraOnly
}

// Blocks reports whether sweeps on ch collide with the blocker.
func (b *Blocker) Blocks(ch world.Channel) bool {
	if b.cameraOnly {
		return ch == world.ChannelCamera
	}
	return true
}

// Bounds returns the blocker's bounding box.
func (b *Blocker) Bounds() picking.AABB {
	switch b.shape {
	case ShapeSphere:
		return picking.CenteredAABB(b.center, math.Vec3{X: b.radius, Y: b.radius, Z: b.radius})
	case ShapeCapsule:
		return picking.CenteredAABB(b.center, math.Vec3{X: b.radius, Y: b.radius, Z: b.halfHeight})
	default:
		return picking.CenteredAABB(b.center, b.extent)
	}
}

// Radius returns the sphere or capsule radius.
func (b *Blocker) Radius() float32 {
	return b.radius
}

// HalfHeight returns the capsule half height.
func (b *Blocker) HalfHeight() float32 {
	return b.halfHeight
}

func (b *Blocker) segment() (math.Vec3, math.Vec3) {
	h := math.Vec3{Z: b.halfHeight - b.radius}
	if h.Z < 0 {
		h.Z = 0
	}
	return b.center.Sub(h), b.center.Add(h)
}

// sweep intersects a sphere of radius moving along r with the blocker by
// tracing r against the blocker grown by radius. Box corners are grown as
// boxes, which slightly overestimates contact there.
func (b *Blocker) sweep(r picking.Ray, radius float32) (float32, math.Vec3, bool) {
	switch b.shape {
	case ShapeSphere:
		return r.IntersectSphere(b.center, b.radius+radius)
	case ShapeCapsule:
		lo, hi := b.segment()
		return r.IntersectCapsule(lo, hi, b.radius+radius)
	default:
		return r.IntersectAABB(b.Bounds().Expand(radius))
	}
}

func (b *Blocker) String() string {
	return fmt.Sprintf("%s(%s @ %v)", b.name, b.shape, b.center)
}

var _ world.BlockingVolume = (*Blocker)(nil)
