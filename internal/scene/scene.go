// Package scene is a small reference world for the camera rig: capsule
// characters, static blockers and camera blocking volumes, answering
// swept-sphere queries against all of them.
package scene

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/camrig/internal/engine/picking"
	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

const minSweepLength = 1e-4

// Scene holds every actor of the reference world.
type Scene struct {
	characters []*Character
	blockers   []*Blocker
	player     *Character

	log *zap.Logger
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{log: logger.Named("scene")}
}

// AddCharacter adds a character. The first possessed character becomes the player.
func (s *Scene) AddCharacter(c *Character) {
	s.characters = append(s.characters, c)
	if s.player == nil && c.controller != nil {
		s.player = c
	}
}

// AddBlocker adds static geometry.
func (s *Scene) AddBlocker(b *Blocker) {
	s.blockers = append(s.blockers, b)
}

// Player returns the possessed character, or nil.
func (s *Scene) Player() *Character {
	return s.player
}

// SetPlayer possesses c with a fresh controller if it has none.
func (s *Scene) SetPlayer(c *Character) {
	if c.controller == nil {
		c.Possess(&Controller{rot: c.rot})
	}
	s.player = c
}

// Characters returns all characters in insertion order.
func (s *Scene) Characters() []*Character {
	return s.characters
}

// Blockers returns all static blockers in insertion order.
func (s *Scene) Blockers() []*Blocker {
	return s.blockers
}

// Actor finds an actor by name.
func (s *Scene) Actor(name string) (world.Actor, bool) {
	for _, c := range s.characters {
		if c.name == name {
			return c, true
		}
	}
	for _, b := range s.blockers {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

// Character finds a character by name.
func (s *Scene) Character(name string) (*Character, bool) {
	for _, c := range s.characters {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Others returns every character except the player, sorted by distance to it.
func (s *Scene) Others() []world.Actor {
	var out []*Character
	for _, c := range s.characters {
		if c != s.player {
			out = append(out, c)
		}
	}
	if s.player != nil {
		from := s.player.loc
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].loc.Sub(from).LengthSquared() < out[j].loc.Sub(from).LengthSquared()
		})
	}
	actors := make([]world.Actor, len(out))
	for i, c := range out {
		actors[i] = c
	}
	return actors
}

// Step advances every character by dt seconds.
func (s *Scene) Step(dt float32) {
	for _, c := range s.characters {
		c.Update(dt)
	}
}

// SweepSphere sweeps a sphere from start to end and returns the nearest
// blocking hit on channel, skipping actors in ignore.
func (s *Scene) SweepSphere(start, end math.Vec3, radius float32, channel world.Channel, ignore []world.Actor) (world.Hit, bool) {
	delta := end.Sub(start)
	length := delta.Length()
	if length < minSweepLength {
		return world.Hit{}, false
	}
	ray := picking.Ray{Origin: start, Direction: delta.Scale(1 / length)}

	var (
		best   world.Hit
		bestT  = length
		hitAny bool
	)
	consider := func(a world.Actor, t float32, n math.Vec3, ok bool) {
		if !ok || t > bestT {
			return
		}
		bestT = t
		hitAny = true
		loc := ray.At(t)
		best = world.Hit{
			Actor:       a,
			Location:    loc,
			ImpactPoint: loc.Sub(n.Scale(radius)),
			Normal:      n,
			Time:        t / length,
		}
	}

	for _, c := range s.characters {
		if ignored(c, ignore) {
			continue
		}
		t, n, ok := c.sweep(ray, radius)
		consider(c, t, n, ok)
	}
	for _, b := range s.blockers {
		if !b.Blocks(channel) || ignored(b, ignore) {
			continue
		}
		t, n, ok := b.sweep(ray, radius)
		consider(b, t, n, ok)
	}

	if hitAny {
		s.log.Debug("sweep hit",
			zap.String("actor", best.Actor.Name()),
			zap.Float32("time", best.Time),
			logger.Vec3("location", best.Location))
	}
	return best, hitAny
}

// Pick returns the nearest actor under a ray, ignoring camera-only volumes.
func (s *Scene) Pick(r picking.Ray) (world.Actor, bool) {
	var (
		best  world.Actor
		bestT = float32(-1)
	)
	for _, c := range s.characters {
		if t, _, ok := c.sweep(r, 0); ok && (bestT < 0 || t < bestT) {
			best, bestT = c, t
		}
	}
	for _, b := range s.blockers {
		if b.cameraOnly {
			continue
		}
		if t, _, ok := b.sweep(r, 0); ok && (bestT < 0 || t < bestT) {
			best, bestT = b, t
		}
	}
	return best, best != nil
}

func ignored(a world.Actor, ignore []world.Actor) bool {
	for _, ig := range ignore {
		if ig == a {
			return true
		}
	}
	return false
}

var _ world.SceneQuery = (*Scene)(nil)
