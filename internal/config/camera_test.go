package config

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/camrig/internal/camera"
	"github.com/Faultbox/camrig/internal/world"
)

func TestDefaultCameraRegistry(t *testing.T) {
	cc := DefaultCameraConfig()
	reg, err := cc.Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}

	tests := []struct {
		mode string
		want string
	}{
		{"third_person", "*camera.ThirdPerson"},
		{"aim", "*camera.ThirdPerson"},
		{"lock_on", "*camera.Dynamic"},
	}
	for _, tt := range tests {
		m, err := reg.New(camera.ModeType(tt.mode))
		if err != nil {
			t.Errorf("New(%s) error = %v", tt.mode, err)
			continue
		}
		var got string
		switch m.(type) {
		case *camera.Dynamic:
			got = "*camera.Dynamic"
		case *camera.ThirdPerson:
			got = "*camera.ThirdPerson"
		}
		if got != tt.want {
			t.Errorf("New(%s) = %T, want %s", tt.mode, m, tt.want)
		}
	}

	aim, _ := reg.New("aim")
	if aim.Tag() != "Camera.Type.Aim" || aim.BlendTime() != 0.2 {
		t.Errorf("aim mode tag %q blend %v", aim.Tag(), aim.BlendTime())
	}
}

func TestModeFactoryKinds(t *testing.T) {
	src := `
- type: fixed
  kind: base
  fov: 60
- type: orbit
  blend_time: 0
  penetration:
    channel: visibility
    feelers:
      - {radius: 10, world_weight: 1, pawn_weight: 1}
- type: duel
  kind: dynamic
  offset_strategy: pitch
  offset_curve:
    interp: linear
    keys:
      - {time: -90, value: [0, 0, 0]}
      - {time: 90, value: [0, 100, 0]}
`
	var modes []ModeConfig
	if err := yaml.Unmarshal([]byte(src), &modes); err != nil {
		t.Fatal(err)
	}

	fixed, err := modes[0].Factory()
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := fixed().(*camera.Base); !ok || m.Settings.FieldOfView != 60 {
		t.Errorf("fixed mode = %T", fixed())
	}

	orbit, err := modes[1].ThirdPersonSettings()
	if err != nil {
		t.Fatal(err)
	}
	if orbit.Penetration.Channel != world.ChannelVisibility || len(orbit.Penetration.Feelers) != 1 {
		t.Errorf("orbit penetration = %+v", orbit.Penetration)
	}
	if orbit.TargetOffset == nil || orbit.TargetOffset.Empty() {
		t.Error("orbit lost the default target offset curve")
	}

	duel, err := modes[2].Factory()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := duel().(*camera.Dynamic); !ok {
		t.Errorf("duel mode = %T, want *camera.Dynamic", duel())
	}
}

func TestCameraConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *CameraConfig)
		want string
	}{
		{"empty type", func(c *CameraConfig) { c.Modes[0].Type = "" }, "empty type"},
		{"duplicate", func(c *CameraConfig) { c.Modes[1].Type = c.Modes[0].Type }, "defined twice"},
		{"unknown kind", func(c *CameraConfig) { c.Modes[0].Kind = "cinematic" }, "unknown kind"},
		{"bad blend", func(c *CameraConfig) { c.Modes[0].BlendFunction = "bounce" }, "bounce"},
		{"pitch order", func(c *CameraConfig) { c.Modes[0].PitchMin = 50; c.Modes[0].PitchMax = 10 }, "pitch_min"},
		{"negative blend", func(c *CameraConfig) { c.Modes[0].BlendTime = -1 }, "negative"},
		{"bad channel", func(c *CameraConfig) { c.Modes[0].Penetration.Channel = "water" }, "water"},
		{"no feelers", func(c *CameraConfig) { c.Modes[0].Penetration.Feelers = nil }, "feeler"},
		{"bad strategy", func(c *CameraConfig) { c.Modes[2].OffsetStrategy = "spiral" }, "spiral"},
		{"missing default", func(c *CameraConfig) { c.DefaultMode = "ghost" }, "ghost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCameraConfig()
			tt.edit(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.want)
			}
			if _, err := c.Registry(); err == nil {
				t.Error("Registry() error = nil for invalid config")
			}
		})
	}
}

func TestCameraConfigMode(t *testing.T) {
	c := DefaultCameraConfig()
	if m, ok := c.Mode("lock_on"); !ok || m.Kind != KindDynamic {
		t.Errorf("Mode(lock_on) = %+v, %v", m, ok)
	}
	if _, ok := c.Mode("nope"); ok {
		t.Error("Mode(nope) ok = true")
	}
}
