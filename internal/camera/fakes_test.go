package camera

import (
	gomath "math"

	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

const eps = 1e-4

func near(a, b float32) bool { return math.Abs(a-b) <= eps }

func float32NaN() float32 { return float32(gomath.NaN()) }

type fakeActor struct {
	name string
	loc  math.Vec3
	rot  math.Rotator
}

func (a *fakeActor) Name() string           { return a.name }
func (a *fakeActor) Location() math.Vec3    { return a.loc }
func (a *fakeActor) Rotation() math.Rotator { return a.rot }

type fakeController struct {
	rot      math.Rotator
	assisted int
	proxy    world.Actor
}

func (c *fakeController) ControlRotation() math.Rotator     { return c.rot }
func (c *fakeController) SetControlRotation(r math.Rotator) { c.rot = r }
func (c *fakeController) PreventPenetrationTarget() (world.Actor, bool) {
	return c.proxy, c.proxy != nil
}
func (c *fakeController) OnCameraPenetratingTarget() { c.assisted++ }

type fakeCapsule struct {
	owner      world.Actor
	radius     float32
	halfHeight float32
}

func (c *fakeCapsule) SimpleHalfHeight() float32 { return c.halfHeight }

func (c *fakeCapsule) ClosestPoint(p math.Vec3) (math.Vec3, float32) {
	center := c.owner.Location()
	segHalf := max(c.halfHeight-c.radius, 0)
	onSeg := math.Vec3{X: center.X, Y: center.Y, Z: math.Clamp(p.Z, center.Z-segHalf, center.Z+segHalf)}
	d := p.Sub(onSeg)
	if d.Length() <= c.radius {
		return p, 0
	}
	surface := onSeg.Add(d.SafeNormal().Scale(c.radius))
	return surface, p.Sub(surface).LengthSquared()
}

type fakeCharacter struct {
	fakeActor
	ctrl       *fakeController
	capsule    *fakeCapsule
	crouched   bool
	halfHeight float32
	sockets    map[string]math.Vec3
}

func newCharacter(name string, loc math.Vec3) *fakeCharacter {
	c := &fakeCharacter{
		fakeActor:  fakeActor{name: name, loc: loc},
		ctrl:       &fakeController{},
		halfHeight: 88,
		sockets:    map[string]math.Vec3{},
	}
	c.capsule = &fakeCapsule{owner: c, radius: 34, halfHeight: 88}
	return c
}

func (c *fakeCharacter) ViewLocation() math.Vec3 {
	return c.loc.Add(math.Vec3{Z: c.BaseEyeHeight()})
}
func (c *fakeCharacter) ViewRotation() math.Rotator   { return c.ctrl.rot }
func (c *fakeCharacter) Controller() world.Controller { return c.ctrl }
func (c *fakeCharacter) DefaultHalfHeight() float32   { return 88 }
func (c *fakeCharacter) HalfHeight() float32          { return c.halfHeight }
func (c *fakeCharacter) BaseEyeHeight() float32       { return 64 }
func (c *fakeCharacter) CrouchedEyeHeight() float32   { return 40 }
func (c *fakeCharacter) IsCrouched() bool             { return c.crouched }
func (c *fakeCharacter) CollisionPrimitive() world.CollisionPrimitive {
	if c.capsule == nil {
		return nil
	}
	return c.capsule
}
func (c *fakeCharacter) SocketLocation(name string) (math.Vec3, bool) {
	p, ok := c.sockets[name]
	return p, ok
}

// proxiedCharacter names another actor to keep the camera out of.
type proxiedCharacter struct {
	*fakeCharacter
	proxy    world.Actor
	assisted int
}

func (c *proxiedCharacter) PreventPenetrationTarget() (world.Actor, bool) {
	return c.proxy, c.proxy != nil
}
func (c *proxiedCharacter) OnCameraPenetratingTarget() { c.assisted++ }

type fakePawn struct {
	fakeActor
	ctrl *fakeController
}

func (p *fakePawn) ViewLocation() math.Vec3      { return p.loc.Add(math.Vec3{Z: 50}) }
func (p *fakePawn) ViewRotation() math.Rotator   { return p.ctrl.rot }
func (p *fakePawn) Controller() world.Controller { return p.ctrl }

type fakeVolume struct{ fakeActor }

func (v *fakeVolume) IsCameraBlockingVolume() bool { return true }

// wallQuery blocks every sweep that crosses the plane x = wallX, reporting
// blocker as the hit actor. Ignored actors never block.
type wallQuery struct {
	wallX   float32
	blocker world.Actor
	calls   int
	ignores [][]world.Actor
}

func (q *wallQuery) SweepSphere(start, end math.Vec3, radius float32, ch world.Channel, ignore []world.Actor) (world.Hit, bool) {
	q.calls++
	q.ignores = append(q.ignores, append([]world.Actor(nil), ignore...))
	for _, a := range ignore {
		if a == q.blocker {
			return world.Hit{}, false
		}
	}
	if (start.X-q.wallX)*(end.X-q.wallX) > 0 || start.X == end.X {
		return world.Hit{}, false
	}
	t := (start.X - q.wallX) / (start.X - end.X)
	loc := math.LerpV(start, end, t)
	return world.Hit{Actor: q.blocker, Location: loc, ImpactPoint: loc, Normal: math.Vec3{X: -1}, Time: t}, true
}

// sideQuery blocks only sweeps that leave the XZ plane, so a camera looking
// down the X axis sees hits on its yawed feelers and none on the center ray.
// Blocked sweeps stop at frac of their length.
type sideQuery struct {
	frac    float32
	blocker world.Actor
}

func (q *sideQuery) SweepSphere(start, end math.Vec3, radius float32, ch world.Channel, ignore []world.Actor) (world.Hit, bool) {
	if math.Abs(end.Y-start.Y) < 1 {
		return world.Hit{}, false
	}
	loc := math.LerpV(start, end, q.frac)
	return world.Hit{Actor: q.blocker, Location: loc, ImpactPoint: loc, Time: q.frac}, true
}

// fixedMode reports a constant view. It counts lifecycle calls.
type fixedMode struct {
	Base
	at            math.Vec3
	activations   int
	deactivations int
}

func newFixed(t ModeType, blendTime float32, fn BlendFunction, at math.Vec3) *fixedMode {
	s := DefaultSettings()
	s.BlendTime = blendTime
	s.BlendFunction = fn
	s.Tag = "tag." + string(t)
	m := &fixedMode{at: at}
	m.init(t, s)
	return m
}

func (m *fixedMode) UpdateView(f *Frame) {
	m.view.Location = m.at
	m.view.Rotation = math.Rotator{Yaw: m.at.X}
	m.view.FieldOfView = 90
}

func (m *fixedMode) OnActivation()   { m.activations++ }
func (m *fixedMode) OnDeactivation() { m.deactivations++ }

func registryOf(modes ...Mode) *Registry {
	r := NewRegistry()
	for _, m := range modes {
		m := m
		r.Register(m.Type(), func() Mode { return m })
	}
	return r
}

func frame(dt float32, target world.Actor) *Frame {
	return &Frame{DeltaTime: dt, Target: target}
}
