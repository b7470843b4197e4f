package scene

import (
	"github.com/Faultbox/camrig/internal/engine/picking"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// Character defaults, in Unreal units.
const (
	DefaultCapsuleRadius      = 34
	DefaultCapsuleHalfHeight  = 88
	DefaultCrouchedHalfHeight = 60
	DefaultBaseEyeHeight      = 64
	DefaultCrouchedEyeHeight  = 40
	DefaultMoveSpeed          = 300

	arrivalThreshold = 5
)

// Controller holds a player's control rotation.
type Controller struct {
	rot math.Rotator
}

// ControlRotation returns the current control rotation.
func (c *Controller) ControlRotation() math.Rotator {
	return c.rot
}

// SetControlRotation replaces the control rotation.
func (c *Controller) SetControlRotation(r math.Rotator) {
	c.rot = r
}

// AddInput turns the controller by the given pitch and yaw deltas in degrees.
func (c *Controller) AddInput(pitch, yaw float32) {
	c.rot.Pitch = math.NormalizeAxis(c.rot.Pitch + pitch)
	c.rot.Yaw = math.NormalizeAxis(c.rot.Yaw + yaw)
}

// Character is a capsule pawn that can crouch, walk to destinations and
// patrol a loop of waypoints.
type Character struct {
	name string
	loc  math.Vec3 // Capsule center
	rot  math.Rotator

	Radius             float32
	DefaultHeight      float32
	CrouchedHalfHeight float32
	EyeHeight          float32
	CrouchedEye        float32
	MoveSpeed          float32

	halfHeight float32
	crouched   bool
	sockets    map[string]math.Vec3 // Offsets from the capsule center, actor space
	controller *Controller
	proxy      world.Actor

	// Click-to-move destination
	dest    math.Vec3
	hasDest bool
	moving  bool

	patrol      []math.Vec3
	patrolIndex int

	penetrating  bool
	penetrations int
}

// NewCharacter creates a standing character whose feet rest at feet.
func NewCharacter(name string, feet math.Vec3) *Character {
	c := &Character{
		name:               name,
		Radius:             DefaultCapsuleRadius,
		DefaultHeight:      DefaultCapsuleHalfHeight,
		CrouchedHalfHeight: DefaultCrouchedHalfHeight,
		EyeHeight:          DefaultBaseEyeHeight,
		CrouchedEye:        DefaultCrouchedEyeHeight,
		MoveSpeed:          DefaultMoveSpeed,
		halfHeight:         DefaultCapsuleHalfHeight,
		sockets:            make(map[string]math.Vec3),
	}
	c.loc = feet.Add(math.Vec3{Z: c.halfHeight})
	return c
}

func (c *Character) Name() string           { return c.name }
func (c *Character) Location() math.Vec3    { return c.loc }
func (c *Character) Rotation() math.Rotator { return c.rot }

// SetLocation moves the capsule center to loc.
func (c *Character) SetLocation(loc math.Vec3) {
	c.loc = loc
}

// SetRotation replaces the actor rotation.
func (c *Character) SetRotation(r math.Rotator) {
	c.rot = r
}

// Feet returns the bottom of the capsule.
func (c *Character) Feet() math.Vec3 {
	return c.loc.Sub(math.Vec3{Z: c.halfHeight})
}

// Possess attaches a controller to the character.
func (c *Character) Possess(ctrl *Controller) {
	c.controller = ctrl
}

// Controller returns the possessing controller, or nil.
func (c *Character) Controller() world.Controller {
	if c.controller == nil {
		return nil
	}
	return c.controller
}

// PlayerController returns the concrete controller, or nil.
func (c *Character) PlayerController() *Controller {
	return c.controller
}

// ViewLocation returns the eye point.
func (c *Character) ViewLocation() math.Vec3 {
	eye := c.EyeHeight
	if c.crouched {
		eye = c.CrouchedEye
	}
	return c.loc.Add(math.Vec3{Z: eye})
}

// ViewRotation returns the control rotation when possessed, else the actor rotation.
func (c *Character) ViewRotation() math.Rotator {
	if c.controller != nil {
		return c.controller.rot
	}
	return c.rot
}

func (c *Character) DefaultHalfHeight() float32 { return c.DefaultHeight }
func (c *Character) HalfHeight() float32        { return c.halfHeight }
func (c *Character) BaseEyeHeight() float32     { return c.EyeHeight }
func (c *Character) CrouchedEyeHeight() float32 { return c.CrouchedEye }
func (c *Character) IsCrouched() bool           { return c.crouched }

// SetCrouched shrinks or restores the capsule, keeping the feet in place.
func (c *Character) SetCrouched(crouched bool) {
	if crouched == c.crouched {
		return
	}
	feet := c.Feet()
	c.crouched = crouched
	if crouched {
		c.halfHeight = c.CrouchedHalfHeight
	} else {
		c.halfHeight = c.DefaultHeight
	}
	c.loc = feet.Add(math.Vec3{Z: c.halfHeight})
}

// SetSocket registers a named socket at an offset from the capsule center.
func (c *Character) SetSocket(name string, offset math.Vec3) {
	c.sockets[name] = offset
}

// SocketLocation returns the world location of a named socket.
func (c *Character) SocketLocation(name string) (math.Vec3, bool) {
	off, ok := c.sockets[name]
	if !ok {
		return math.Vec3{}, false
	}
	return c.loc.Add(c.rot.RotateVector(off)), true
}

// CollisionPrimitive returns the character's capsule.
func (c *Character) CollisionPrimitive() world.CollisionPrimitive {
	return capsule{c}
}

// SetPenetrationProxy makes the camera avoid proxy instead of the character.
func (c *Character) SetPenetrationProxy(proxy world.Actor) {
	c.proxy = proxy
}

// PreventPenetrationTarget returns the penetration proxy if one is set.
func (c *Character) PreventPenetrationTarget() (world.Actor, bool) {
	return c.proxy, c.proxy != nil
}

// OnCameraPenetratingTarget marks the character as penetrated for this step.
func (c *Character) OnCameraPenetratingTarget() {
	c.penetrating = true
	c.penetrations++
}

// CameraPenetrating reports whether the camera was inside the character
// since the last Step.
func (c *Character) CameraPenetrating() bool {
	return c.penetrating
}

// Penetrations returns the total number of penetration reports.
func (c *Character) Penetrations() int {
	return c.penetrations
}

// segment returns the core segment of the capsule.
func (c *Character) segment() (a, b math.Vec3) {
	h := math.Vec3{Z: c.halfHeight - c.Radius}
	if h.Z < 0 {
		h.Z = 0
	}
	return c.loc.Sub(h), c.loc.Add(h)
}

func (c *Character) sweep(r picking.Ray, radius float32) (float32, math.Vec3, bool) {
	a, b := c.segment()
	return r.IntersectCapsule(a, b, c.Radius+radius)
}

// Bounds returns the capsule's bounding box.
func (c *Character) Bounds() picking.AABB {
	return picking.CenteredAABB(c.loc, math.Vec3{X: c.Radius, Y: c.Radius, Z: c.halfHeight})
}

// SetDestination sets a walk-to destination on the ground plane.
func (c *Character) SetDestination(x, y float32) {
	c.dest = math.Vec3{X: x, Y: y}
	c.hasDest = true
}

// ClearDestination stops walking.
func (c *Character) ClearDestination() {
	c.hasDest = false
	c.moving = false
}

// HasDestination reports whether the character is walking somewhere.
func (c *Character) HasDestination() bool {
	return c.hasDest
}

// IsMoving reports whether the character moved during the last step.
func (c *Character) IsMoving() bool {
	return c.moving
}

// SetPatrol sets a loop of ground waypoints to walk.
func (c *Character) SetPatrol(points []math.Vec3) {
	c.patrol = points
	c.patrolIndex = 0
	if len(points) > 0 {
		c.setNextWaypoint()
	}
}

func (c *Character) setNextWaypoint() {
	p := c.patrol[c.patrolIndex]
	c.SetDestination(p.X, p.Y)
	c.patrolIndex = (c.patrolIndex + 1) % len(c.patrol)
}

// Update advances movement toward the destination and along the patrol loop.
func (c *Character) Update(dt float32) {
	c.penetrating = false

	if !c.hasDest {
		if len(c.patrol) > 0 {
			c.setNextWaypoint()
		}
		return
	}

	delta := c.dest.Sub(c.loc)
	delta.Z = 0
	dist := delta.Length()
	if dist < arrivalThreshold {
		c.ClearDestination()
		return
	}

	step := c.MoveSpeed * dt
	if step > dist {
		step = dist
	}
	dir := delta.Scale(1 / dist)
	c.loc = c.loc.Add(dir.Scale(step))
	c.rot.Yaw = dir.Rotation().Yaw
	c.moving = true
}

// Walk moves the character by axis input relative to its control yaw.
// forward and right are in [-1, 1].
func (c *Character) Walk(forward, right, dt float32) {
	input := math.Vec3{X: forward, Y: right}
	if input.LengthSquared() < 0.0001 {
		c.moving = false
		return
	}
	c.ClearDestination()
	input = input.ClampedToMaxSize(1)

	yaw := c.ViewRotation()
	yaw.Pitch, yaw.Roll = 0, 0
	move := yaw.RotateVector(input)
	c.loc = c.loc.Add(move.Scale(c.MoveSpeed * dt))
	c.rot.Yaw = move.Rotation().Yaw
	c.moving = true
}

// capsule exposes a character's capsule as a collision primitive.
type capsule struct {
	c *Character
}

func (p capsule) SimpleHalfHeight() float32 {
	return p.c.halfHeight
}

func (p capsule) ClosestPoint(q math.Vec3) (math.Vec3, float32) {
	a, b := p.c.segment()
	onSeg, d2 := picking.ClosestPointOnSegment(q, a, b)
	r := p.c.Radius
	if d2 <= r*r {
		return q, 0
	}
	d := q.Sub(onSeg)
	dist := d.Length()
	surface := onSeg.Add(d.Scale(r / dist))
	return surface, (dist - r) * (dist - r)
}

var (
	_ world.Character    = (*Character)(nil)
	_ world.Collidable   = (*Character)(nil)
	_ world.CameraAssist = (*Character)(nil)
	_ world.Controller   = (*Controller)(nil)
)
