package camera

import (
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

func baseRegistry() *Registry {
	r := NewRegistry()
	r.Register("base", func() Mode { return NewBase("base", DefaultSettings()) })
	r.Register("tp", func() Mode { return NewThirdPerson("tp", DefaultSettings(), quietThirdPerson()) })
	return r
}

func TestComponentSyncsControlRotation(t *testing.T) {
	ch := newCharacter("hero", math.Vec3{})
	ch.ctrl.rot = math.Rotator{Pitch: -120, Yaw: 10}

	c, err := NewComponent(NewStack(baseRegistry()), ch, "base")
	if err != nil {
		t.Fatal(err)
	}
	v, ok := c.CameraView(&Frame{DeltaTime: 1.0 / 60})
	if !ok {
		t.Fatal("CameraView() ok = false")
	}
	if ch.ctrl.rot != v.ControlRotation {
		t.Errorf("controller rotation = %v, want %v", ch.ctrl.rot, v.ControlRotation)
	}
	if !near(ch.ctrl.rot.Pitch, DefaultPitchMin) {
		t.Errorf("controller pitch = %v, want clamped %v", ch.ctrl.rot.Pitch, DefaultPitchMin)
	}
}

func TestComponentFOVOffsetLastsOneFrame(t *testing.T) {
	ch := newCharacter("hero", math.Vec3{})
	c, err := NewComponent(NewStack(baseRegistry()), ch, "base")
	if err != nil {
		t.Fatal(err)
	}

	c.AddFieldOfViewOffset(10)
	v, _ := c.CameraView(&Frame{DeltaTime: 1.0 / 60})
	if !near(v.FieldOfView, DefaultFOV+10) {
		t.Errorf("FOV = %v, want %v", v.FieldOfView, DefaultFOV+10)
	}
	v, _ = c.CameraView(&Frame{DeltaTime: 1.0 / 60})
	if !near(v.FieldOfView, DefaultFOV) {
		t.Errorf("FOV next frame = %v, want %v", v.FieldOfView, DefaultFOV)
	}
}

func TestComponentModeSelector(t *testing.T) {
	ch := newCharacter("hero", math.Vec3{})
	c, err := NewComponent(NewStack(baseRegistry()), ch, "base")
	if err != nil {
		t.Fatal(err)
	}

	c.SetModeSelector(func() (ModeType, bool) { return "tp", true })
	c.CameraView(&Frame{DeltaTime: 1.0 / 60})

	top := c.Stack().Active()[0]
	if top.Type() != "tp" {
		t.Errorf("top mode = %q, want tp", top.Type())
	}
	if _, tag := c.BlendInfo(); tag != "" {
		t.Errorf("BlendInfo tag = %q, want empty", tag)
	}
}

func TestComponentUnknownDefaultMode(t *testing.T) {
	if _, err := NewComponent(NewStack(baseRegistry()), &fakeActor{}, "nope"); err == nil {
		t.Error("NewComponent(unknown default) error = nil")
	}
}

func TestComponentFocusGroupNeedsTwo(t *testing.T) {
	ch := newCharacter("hero", math.Vec3{})
	c, err := NewComponent(NewStack(baseRegistry()), ch, "tp")
	if err != nil {
		t.Fatal(err)
	}
	one := []world.Actor{&fakeActor{name: "a"}, nil}
	if err := c.SetFocusActors("tp", one); err != nil {
		t.Fatal(err)
	}
	m, _ := c.Stack().Instance("tp")
	if got := len(m.(*ThirdPerson).focusActors); got != 0 {
		t.Errorf("focus group size = %d, want 0", got)
	}

	two := []world.Actor{&fakeActor{name: "a"}, &fakeActor{name: "b"}}
	c.SetFocusActors("tp", two)
	if got := len(m.(*ThirdPerson).focusActors); got != 2 {
		t.Errorf("focus group size = %d, want 2", got)
	}
}

func TestComponentShake(t *testing.T) {
	prop := &fakeActor{name: "prop", loc: math.Vec3{X: 1, Y: 2, Z: 3}}
	c, err := NewComponent(NewStack(baseRegistry()), prop, "base")
	if err != nil {
		t.Fatal(err)
	}
	c.AddShake(NewShake(ImpactShakeSettings(), rand.New(rand.NewPCG(7, 7))))

	moved := false
	for i := 0; i < 40; i++ {
		v, _ := c.CameraView(&Frame{DeltaTime: 1.0 / 60})
		if v.Location != prop.loc {
			moved = true
		}
	}
	if !moved {
		t.Error("shake never moved the view")
	}
	if len(c.shakes) != 0 {
		t.Errorf("%d shakes still running after their duration", len(c.shakes))
	}
	v, _ := c.CameraView(&Frame{DeltaTime: 1.0 / 60})
	if v.Location != prop.loc {
		t.Errorf("Location = %v after shake, want %v", v.Location, prop.loc)
	}
}

func TestShakeEnvelope(t *testing.T) {
	s := NewShake(ImpactShakeSettings(), nil)
	tests := []struct {
		elapsed float32
		want    float32
	}{
		{0.05, 0.5},
		{0.2, 1},
		{0.4, 0.5},
		{0.5, 0},
	}
	for _, tt := range tests {
		s.elapsed = tt.elapsed
		if got := s.weight(); !near(got, tt.want) {
			t.Errorf("weight at %v = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestNoiseBounded(t *testing.T) {
	for x := float32(-20); x < 20; x += 0.037 {
		if n := noise1D(x); n < -1.01 || n > 1.01 {
			t.Fatalf("noise1D(%v) = %v, out of [-1, 1]", x, n)
		}
	}
	if noise1D(3) != 0 {
		t.Errorf("noise1D(3) = %v, want 0 on lattice points", noise1D(3))
	}
}
