package camera

import (
	"fmt"
	"strings"

	"github.com/Faultbox/camrig/pkg/math"
)

// BlendFunction shapes a mode's linear blend alpha into its blend weight.
type BlendFunction uint8

const (
	// BlendLinear uses alpha as the weight.
	BlendLinear BlendFunction = iota
	// BlendEaseIn accelerates from zero, arriving at full speed.
	BlendEaseIn
	// BlendEaseOut starts at full speed and decelerates into the target.
	BlendEaseOut
	// BlendEaseInOut accelerates then decelerates.
	BlendEaseInOut
)

// DefaultBlendExponent controls the ease curve shape.
const DefaultBlendExponent = 4.0

var blendNames = [...]string{"linear", "ease_in", "ease_out", "ease_in_out"}

func (b BlendFunction) String() string {
	if int(b) < len(blendNames) {
		return blendNames[b]
	}
	return fmt.Sprintf("BlendFunction(%d)", uint8(b))
}

// ParseBlendFunction parses a config name such as "ease_out".
func ParseBlendFunction(s string) (BlendFunction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return BlendEaseOut, nil
	}
	for i, n := range blendNames {
		if n == name {
			return BlendFunction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown blend function %q", s)
}

// shape maps x through b with the given exponent. An exponent of 1/e inverts
// the shape produced by e, which is how a weight is back-solved into an alpha.
func (b BlendFunction) shape(x, exp float32) float32 {
	switch b {
	case BlendLinear:
		return x
	case BlendEaseIn:
		return math.InterpEaseIn(0, 1, x, exp)
	case BlendEaseOut:
		return math.InterpEaseOut(0, 1, x, exp)
	case BlendEaseInOut:
		return math.InterpEaseInOut(0, 1, x, exp)
	}
	panic(fmt.Sprintf("camera: invalid blend function %d", uint8(b)))
}

// Weight returns the blend weight for alpha.
func (b BlendFunction) Weight(alpha, exp float32) float32 {
	if exp <= 0 {
		exp = 1
	}
	return b.shape(alpha, exp)
}

// Alpha back-solves the alpha that produces weight.
func (b BlendFunction) Alpha(weight, exp float32) float32 {
	inv := float32(1)
	if exp > 0 {
		inv = 1 / exp
	}
	return b.shape(weight, inv)
}
