package camera

import (
	"fmt"
	"strings"

	"github.com/Faultbox/camrig/internal/curve"
	"github.com/Faultbox/camrig/pkg/math"
)

// OffsetInput is what an offset strategy may key its curve on.
type OffsetInput struct {
	// Pitch is the clamped control pitch.
	Pitch float32
	// Elapsed is the time the focus actor has been framed.
	Elapsed float32
	// SeparationAngle is the angle in degrees between the target's forward
	// vector and the direction from the target to the focus actor.
	SeparationAngle float32
	// Base is the third-person offset for this frame.
	Base math.Vec3
}

// OffsetStrategy turns a dynamic offset curve into a pivot-local offset.
type OffsetStrategy interface {
	Name() string
	Offset(in OffsetInput, c *curve.Vector) math.Vec3
}

// PitchCurveOffset keys the curve on control pitch.
type PitchCurveOffset struct{}

func (PitchCurveOffset) Name() string { return "pitch" }
func (PitchCurveOffset) Offset(in OffsetInput, c *curve.Vector) math.Vec3 {
	return c.Eval(in.Pitch)
}

// ElapsedTimeOffset keys the curve on framing time and adds it to the
// third-person offset, so the camera drifts as an encounter goes on.
type ElapsedTimeOffset struct{}

func (ElapsedTimeOffset) Name() string { return "elapsed_time" }
func (ElapsedTimeOffset) Offset(in OffsetInput, c *curve.Vector) math.Vec3 {
	return c.Eval(in.Elapsed).Add(in.Base)
}

// SeparationAngleOffset keys the curve on how far the focus actor is from
// straight ahead of the target.
type SeparationAngleOffset struct{}

func (SeparationAngleOffset) Name() string { return "separation_angle" }
func (SeparationAngleOffset) Offset(in OffsetInput, c *curve.Vector) math.Vec3 {
	return c.Eval(in.SeparationAngle)
}

// ParseOffsetStrategy returns the strategy with the given config name. An
// empty name selects ElapsedTimeOffset.
func ParseOffsetStrategy(name string) (OffsetStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "elapsed_time":
		return ElapsedTimeOffset{}, nil
	case "pitch":
		return PitchCurveOffset{}, nil
	case "separation_angle":
		return SeparationAngleOffset{}, nil
	}
	return nil, fmt.Errorf("unknown offset strategy %q", name)
}
