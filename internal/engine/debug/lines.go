// Package debug provides debug draw sinks: a line recorder feeding the
// viewer's renderer and a trace sink writing primitives to the log.
package debug

import (
	gomath "math"

	"github.com/Faultbox/camrig/internal/engine/picking"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// CircleSegments is the number of line segments per debug circle.
const CircleSegments = 16

// LineVertex represents a vertex for line rendering.
type LineVertex struct {
	X, Y, Z    float32 // Position
	R, G, B, A float32 // Color
}

// Label is a debug string anchored in world space.
type Label struct {
	At    math.Vec3
	Text  string
	Color world.Color
}

// Recorder collects debug primitives as line vertex pairs. It is reset by
// the owner once per frame.
type Recorder struct {
	vertices []LineVertex
	labels   []Label
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Reset drops everything recorded so far, keeping capacity.
func (r *Recorder) Reset() {
	r.vertices = r.vertices[:0]
	r.labels = r.labels[:0]
}

// Vertices returns the recorded line list, two vertices per segment.
func (r *Recorder) Vertices() []LineVertex {
	return r.vertices
}

// Labels returns the recorded strings.
func (r *Recorder) Labels() []Label {
	return r.labels
}

// Line records a segment.
func (r *Recorder) Line(a, b math.Vec3, c world.Color) {
	r.vertices = append(r.vertices, vertex(a, c), vertex(b, c))
}

// Sphere records three axis-aligned great circles.
func (r *Recorder) Sphere(center math.Vec3, radius float32, c world.Color) {
	x := math.Vec3{X: radius}
	y := math.Vec3{Y: radius}
	z := math.Vec3{Z: radius}
	r.circle(center, x, y, c)
	r.circle(center, x, z, c)
	r.circle(center, y, z, c)
}

// String records a label and a small cross marking its anchor.
func (r *Recorder) String(at math.Vec3, text string, c world.Color) {
	r.labels = append(r.labels, Label{At: at, Text: text, Color: c})
	const s = 4
	r.Line(at.Sub(math.Vec3{X: s}), at.Add(math.Vec3{X: s}), c)
	r.Line(at.Sub(math.Vec3{Y: s}), at.Add(math.Vec3{Y: s}), c)
}

// Box records a wireframe box.
func (r *Recorder) Box(box picking.AABB, c world.Color) {
	v := GenerateBBoxWireframeVertices(box)
	for i := 0; i+2 < len(v); i += 3 {
		r.vertices = append(r.vertices, vertex(math.Vec3{X: v[i], Y: v[i+1], Z: v[i+2]}, c))
	}
}

// Capsule records an upright capsule wireframe around center.
func (r *Recorder) Capsule(center math.Vec3, radius, halfHeight float32, c world.Color) {
	h := max(halfHeight-radius, 0)
	top := center.Add(math.Vec3{Z: h})
	bottom := center.Sub(math.Vec3{Z: h})

	x := math.Vec3{X: radius}
	y := math.Vec3{Y: radius}
	z := math.Vec3{Z: radius}
	r.circle(top, x, y, c)
	r.circle(bottom, x, y, c)
	r.arc(top, x, z, c)
	r.arc(top, y, z, c)
	r.arc(bottom, x, z.Scale(-1), c)
	r.arc(bottom, y, z.Scale(-1), c)
	for _, side := range []math.Vec3{x, x.Scale(-1), y, y.Scale(-1)} {
		r.Line(bottom.Add(side), top.Add(side), c)
	}
}

// Frustum records the outline of a view frustum of the given length.
func (r *Recorder) Frustum(loc math.Vec3, rot math.Rotator, fovDeg, aspect, length float32, c world.Color) {
	fwd, right, up := rot.Axes()
	halfW := math.TanDeg(fovDeg/2) * length
	halfH := halfW / aspect
	center := loc.Add(fwd.Scale(length))

	corners := [4]math.Vec3{
		center.Add(right.Scale(halfW)).Add(up.Scale(halfH)),
		center.Sub(right.Scale(halfW)).Add(up.Scale(halfH)),
		center.Sub(right.Scale(halfW)).Sub(up.Scale(halfH)),
		center.Add(right.Scale(halfW)).Sub(up.Scale(halfH)),
	}
	for i, p := range corners {
		r.Line(loc, p, c)
		r.Line(p, corners[(i+1)%4], c)
	}
}

// circle records a full circle spanned by the radius vectors u and v.
func (r *Recorder) circle(center, u, v math.Vec3, c world.Color) {
	r.sweep(center, u, v, 2*gomath.Pi, CircleSegments, c)
}

// arc records a half circle from u through v to -u.
func (r *Recorder) arc(center, u, v math.Vec3, c world.Color) {
	r.sweep(center, u, v, gomath.Pi, CircleSegments/2, c)
}

func (r *Recorder) sweep(center, u, v math.Vec3, angle float64, segments int, c world.Color) {
	prev := center.Add(u)
	for i := 1; i <= segments; i++ {
		s, co := gomath.Sincos(angle * float64(i) / float64(segments))
		p := center.Add(u.Scale(float32(co))).Add(v.Scale(float32(s)))
		r.Line(prev, p, c)
		prev = p
	}
}

func vertex(p math.Vec3, c world.Color) LineVertex {
	return LineVertex{
		X: p.X, Y: p.Y, Z: p.Z,
		R: float32(c[0]) / 255, G: float32(c[1]) / 255, B: float32(c[2]) / 255, A: float32(c[3]) / 255,
	}
}

var _ world.DebugDraw = (*Recorder)(nil)
