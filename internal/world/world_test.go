package world

import (
	"testing"

	"github.com/Faultbox/camrig/pkg/math"
)

func TestParseChannel(t *testing.T) {
	for _, ch := range []Channel{ChannelCamera, ChannelVisibility, ChannelPawn} {
		got, err := ParseChannel(ch.String())
		if err != nil || got != ch {
			t.Errorf("ParseChannel(%q) = %v, %v, want %v", ch.String(), got, err, ch)
		}
	}
	if _, err := ParseChannel("water"); err == nil {
		t.Error("ParseChannel(water) error = nil")
	}
	if got := Channel(9).String(); got != "Channel(9)" {
		t.Errorf("String() = %q, want Channel(9)", got)
	}
}

type statue struct{ rot math.Rotator }

func (statue) Name() string             { return "statue" }
func (statue) Location() math.Vec3      { return math.Vec3{} }
func (s statue) Rotation() math.Rotator { return s.rot }

func TestForward(t *testing.T) {
	got := Forward(statue{rot: math.Rotator{Yaw: 90}})
	if !got.NearlyEqual(math.Vec3{Y: 1}, 1e-5) {
		t.Errorf("Forward() = %v, want +Y", got)
	}
}
