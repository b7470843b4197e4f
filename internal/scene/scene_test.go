package scene

import (
	"testing"

	"github.com/Faultbox/camrig/internal/engine/picking"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

func near(a, b float32) bool {
	return math.Abs(a-b) < 1e-3
}

func TestSweepSphereNearestHit(t *testing.T) {
	s := New()
	far := NewBox("far", math.Vec3{X: -500}, math.Vec3{X: 10, Y: 100, Z: 100})
	wall := NewBox("close", math.Vec3{X: -200}, math.Vec3{X: 10, Y: 100, Z: 100})
	s.AddBlocker(far)
	s.AddBlocker(wall)

	hit, ok := s.SweepSphere(math.Vec3{}, math.Vec3{X: -1000}, 12, world.ChannelCamera, nil)
	if !ok {
		t.Fatal("SweepSphere() ok = false")
	}
	if hit.Actor != world.Actor(wall) {
		t.Errorf("Actor = %v, want close", hit.Actor.Name())
	}
	// Face at -190, sphere center stops radius short of it.
	if !near(hit.Location.X, -178) {
		t.Errorf("Location.X = %v, want -178", hit.Location.X)
	}
	if !near(hit.ImpactPoint.X, -190) {
		t.Errorf("ImpactPoint.X = %v, want -190", hit.ImpactPoint.X)
	}
	if !near(hit.Time, 0.178) {
		t.Errorf("Time = %v, want 0.178", hit.Time)
	}
	if !hit.Normal.NearlyEqual(math.Vec3{X: 1}, 1e-4) {
		t.Errorf("Normal = %v, want +X", hit.Normal)
	}
}

func TestSweepSphereChannelsAndIgnore(t *testing.T) {
	s := New()
	vol := NewVolume("vol", math.Vec3{X: -100}, math.Vec3{X: 10, Y: 100, Z: 100})
	s.AddBlocker(vol)

	tests := []struct {
		name    string
		channel world.Channel
		ignore  []world.Actor
		want    bool
	}{
		{"camera", world.ChannelCamera, nil, true},
		{"visibility", world.ChannelVisibility, nil, false},
		{"ignored", world.ChannelCamera, []world.Actor{vol}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.SweepSphere(math.Vec3{}, math.Vec3{X: -300}, 5, tt.channel, tt.ignore)
			if ok != tt.want {
				t.Errorf("SweepSphere() ok = %v, want %v", ok, tt.want)
			}
		})
	}

	if !vol.IsCameraBlockingVolume() {
		t.Error("IsCameraBlockingVolume() = false")
	}
}

func TestSweepSphereShapes(t *testing.T) {
	tests := []struct {
		name  string
		b     *Blocker
		wantX float32
	}{
		{"sphere", NewSphere("ball", math.Vec3{X: 100}, 20), 70},
		{"capsule", NewCapsule("post", math.Vec3{X: 100}, 20, 100), 70},
		{"box", NewBox("crate", math.Vec3{X: 100}, math.Vec3{X: 20, Y: 20, Z: 20}), 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.AddBlocker(tt.b)
			hit, ok := s.SweepSphere(math.Vec3{}, math.Vec3{X: 300}, 10, world.ChannelCamera, nil)
			if !ok {
				t.Fatal("SweepSphere() ok = false")
			}
			if !near(hit.Location.X, tt.wantX) {
				t.Errorf("Location.X = %v, want %v", hit.Location.X, tt.wantX)
			}
		})
	}
}

func TestSweepSphereZeroLength(t *testing.T) {
	s := New()
	s.AddBlocker(NewSphere("ball", math.Vec3{}, 50))
	if _, ok := s.SweepSphere(math.Vec3{}, math.Vec3{}, 10, world.ChannelCamera, nil); ok {
		t.Error("SweepSphere(zero length) ok = true")
	}
}

func TestSweepSphereHitsCharacters(t *testing.T) {
	s := New()
	hero := NewCharacter("hero", math.Vec3{})
	s.AddCharacter(hero)

	hit, ok := s.SweepSphere(math.Vec3{X: -300, Z: 88}, math.Vec3{X: 300, Z: 88}, 10, world.ChannelCamera, nil)
	if !ok {
		t.Fatal("SweepSphere() ok = false")
	}
	if hit.Actor != world.Actor(hero) {
		t.Errorf("Actor = %v, want hero", hit.Actor)
	}
	if !near(hit.Location.X, -44) {
		t.Errorf("Location.X = %v, want -44", hit.Location.X)
	}
	if _, ok := s.SweepSphere(math.Vec3{X: -300, Z: 88}, math.Vec3{X: 300, Z: 88}, 10, world.ChannelCamera, []world.Actor{hero}); ok {
		t.Error("SweepSphere() hit an ignored character")
	}
}

func TestPickSkipsVolumes(t *testing.T) {
	s := New()
	s.AddBlocker(NewVolume("vol", math.Vec3{X: 50}, math.Vec3{X: 5, Y: 50, Z: 50}))
	crate := NewBox("crate", math.Vec3{X: 200}, math.Vec3{X: 10, Y: 10, Z: 10})
	s.AddBlocker(crate)

	got, ok := s.Pick(picking.Ray{Direction: math.Vec3{X: 1}})
	if !ok || got != world.Actor(crate) {
		t.Errorf("Pick() = %v, %v, want crate", got, ok)
	}
	if _, ok := s.Pick(picking.Ray{Direction: math.Vec3{X: -1}}); ok {
		t.Error("Pick(away) ok = true")
	}
}

func TestOthersSortedByDistance(t *testing.T) {
	s := New()
	hero := NewCharacter("hero", math.Vec3{})
	s.AddCharacter(hero)
	s.SetPlayer(hero)
	s.AddCharacter(NewCharacter("far", math.Vec3{X: 900}))
	s.AddCharacter(NewCharacter("near", math.Vec3{Y: 100}))

	others := s.Others()
	if len(others) != 2 {
		t.Fatalf("len(Others()) = %d, want 2", len(others))
	}
	if others[0].Name() != "near" || others[1].Name() != "far" {
		t.Errorf("Others() = [%s %s], want [near far]", others[0].Name(), others[1].Name())
	}
	if s.Player() != hero {
		t.Errorf("Player() = %v, want hero", s.Player())
	}
}
