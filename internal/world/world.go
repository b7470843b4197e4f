// Package world declares the host capabilities the camera rig consumes:
// actor introspection, scene queries and debug drawing. Implementations live
// with the host (see internal/scene for the reference one).
package world

import (
	"fmt"

	"github.com/Faultbox/camrig/pkg/math"
)

// Actor is anything with a transform in the world.
type Actor interface {
	Name() string
	Location() math.Vec3
	Rotation() math.Rotator
}

// Forward returns the actor's forward vector.
func Forward(a Actor) math.Vec3 {
	return a.Rotation().Vector()
}

// Pawn is an actor that can be possessed and has an eye point.
type Pawn interface {
	Actor
	ViewLocation() math.Vec3
	ViewRotation() math.Rotator
	Controller() Controller
}

// Controller owns a pawn's control rotation.
type Controller interface {
	ControlRotation() math.Rotator
	SetControlRotation(r math.Rotator)
}

// Character is a pawn with a crouch-capable capsule and a skeletal mesh.
type Character interface {
	Pawn
	// DefaultHalfHeight is the unscaled capsule half height of the standing archetype.
	DefaultHalfHeight() float32
	// HalfHeight is the current unscaled capsule half height.
	HalfHeight() float32
	BaseEyeHeight() float32
	CrouchedEyeHeight() float32
	IsCrouched() bool
	// SocketLocation returns the world location of a named mesh socket.
	SocketLocation(name string) (math.Vec3, bool)
}

// CollisionPrimitive is the root collision volume of an actor.
type CollisionPrimitive interface {
	// SimpleHalfHeight is the half height of the simplified collision shape.
	SimpleHalfHeight() float32
	// ClosestPoint returns the point on the collision surface nearest to p and
	// the squared distance to it (zero when p is inside).
	ClosestPoint(p math.Vec3) (math.Vec3, float32)
}

// Collidable is implemented by actors that own a collision primitive.
type Collidable interface {
	CollisionPrimitive() CollisionPrimitive
}

// BlockingVolume marks invisible geometry that only blocks cameras.
type BlockingVolume interface {
	Actor
	IsCameraBlockingVolume() bool
}

// Hit describes the first blocking contact of a sweep.
type Hit struct {
	Actor Actor
	// Location is the center of the swept sphere at the time of contact.
	Location math.Vec3
	// ImpactPoint is the contact point on the blocking surface.
	ImpactPoint math.Vec3
	Normal      math.Vec3
	// Time is the fraction along start->end at which contact happened.
	Time float32
}

// Channel names a collision channel.
type Channel uint8

const (
	ChannelCamera Channel = iota
	ChannelVisibility
	ChannelPawn
)

var channelNames = [...]string{"camera", "visibility", "pawn"}

func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", c)
}

// ParseChannel returns the channel with the given name.
func ParseChannel(name string) (Channel, error) {
	for i, n := range channelNames {
		if n == name {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown collision channel %q", name)
}

// SceneQuery answers synchronous collision queries.
type SceneQuery interface {
	// SweepSphere sweeps a sphere of radius from start to end on channel and
	// returns the first blocking hit not owned by an ignored actor.
	SweepSphere(start, end math.Vec3, radius float32, channel Channel, ignore []Actor) (Hit, bool)
}

// Color is an 8-bit RGBA debug color.
type Color [4]uint8

// Debug colors.
var (
	ColorRed    = Color{255, 0, 0, 255}
	ColorGreen  = Color{0, 255, 0, 255}
	ColorBlue   = Color{0, 0, 255, 255}
	ColorYellow = Color{255, 255, 0, 255}
	ColorWhite  = Color{255, 255, 255, 255}
)

// DebugDraw receives purely observational overlay primitives.
type DebugDraw interface {
	Line(a, b math.Vec3, c Color)
	Sphere(center math.Vec3, radius float32, c Color)
	String(at math.Vec3, text string, c Color)
}

// NopDraw discards all debug primitives.
type NopDraw struct{}

func (NopDraw) Line(math.Vec3, math.Vec3, Color) {}
func (NopDraw) Sphere(math.Vec3, float32, Color) {}
func (NopDraw) String(math.Vec3, string, Color) {}

// CameraAssist lets a target, its controller or its penetration proxy take
// part in penetration avoidance.
type CameraAssist interface {
	// PreventPenetrationTarget returns the actor to keep the camera out of,
	// or ok=false to use the view target itself.
	PreventPenetrationTarget() (target Actor, ok bool)
	// OnCameraPenetratingTarget is called when the camera is pushed closer
	// than the report threshold.
	OnCameraPenetratingTarget()
}
