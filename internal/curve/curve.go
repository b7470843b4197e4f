// Package curve implements keyed float and vector curves used to author
// camera offsets (pitch to offset, elapsed time to offset).
package curve

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/camrig/pkg/math"
)

// Interp selects how values between two keys are computed.
type Interp string

const (
	InterpLinear   Interp = "linear"
	InterpConstant Interp = "constant"
	InterpCubic    Interp = "cubic" // Catmull-Rom style auto tangents
)

// Key is one keyframe of a float curve.
type Key struct {
	Time  float32 `yaml:"time"`
	Value float32 `yaml:"value"`
}

// Float is a piecewise curve over float keys. Outside the key range the
// first/last value is held.
type Float struct {
	Keys   []Key  `yaml:"keys"`
	Interp Interp `yaml:"interp,omitempty"`
}

// NewFloat builds a curve with keys sorted by time.
func NewFloat(interp Interp, keys ...Key) *Float {
	c := &Float{Keys: append([]Key(nil), keys...), Interp: interp}
	c.sortKeys()
	return c
}

func (c *Float) sortKeys() {
	sort.SliceStable(c.Keys, func(i, j int) bool { return c.Keys[i].Time < c.Keys[j].Time })
}

// Empty reports whether the curve has no keys.
func (c *Float) Empty() bool {
	return c == nil || len(c.Keys) == 0
}

// Eval returns the curve value at t. An empty curve evaluates to zero.
func (c *Float) Eval(t float32) float32 {
	if c.Empty() {
		return 0
	}
	keys := c.Keys
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := len(keys) - 1
	if t >= keys[last].Time {
		return keys[last].Value
	}

	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t }) - 1
	k0, k1 := keys[i], keys[i+1]
	span := k1.Time - k0.Time
	if span <= 0 {
		return k1.Value
	}
	u := (t - k0.Time) / span

	switch c.Interp {
	case InterpConstant:
		return k0.Value
	case InterpCubic:
		m0 := c.tangent(i) * span
		m1 := c.tangent(i+1) * span
		return hermite(k0.Value, m0, k1.Value, m1, u)
	default:
		return math.Lerp(k0.Value, k1.Value, u)
	}
}

// tangent is the finite-difference slope at key i; flat at the ends.
func (c *Float) tangent(i int) float32 {
	keys := c.Keys
	if i <= 0 || i >= len(keys)-1 {
		return 0
	}
	dt := keys[i+1].Time - keys[i-1].Time
	if dt <= 0 {
		return 0
	}
	return (keys[i+1].Value - keys[i-1].Value) / dt
}

func hermite(p0, m0, p1, m1, u float32) float32 {
	u2 := u * u
	u3 := u2 * u
	return (2*u3-3*u2+1)*p0 + (u3-2*u2+u)*m0 + (-2*u3+3*u2)*p1 + (u3-u2)*m1
}

// UnmarshalYAML decodes the curve and sorts its keys.
func (c *Float) UnmarshalYAML(node *yaml.Node) error {
	type raw Float
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*c = Float(r)
	if err := c.validate(); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	c.sortKeys()
	return nil
}

func (c *Float) validate() error {
	switch c.Interp {
	case "", InterpLinear, InterpConstant, InterpCubic:
		return nil
	}
	return fmt.Errorf("unknown curve interpolation %q", c.Interp)
}

// VectorKey is one keyframe of a vector curve.
type VectorKey struct {
	Time  float32    `yaml:"time"`
	Value [3]float32 `yaml:"value"`
}

// Vector evaluates three float curves sharing the same key times.
type Vector struct {
	X, Y, Z Float
}

// NewVector builds a vector curve from vector keys.
func NewVector(interp Interp, keys ...VectorKey) *Vector {
	v := &Vector{}
	v.setKeys(interp, keys)
	return v
}

func (v *Vector) setKeys(interp Interp, keys []VectorKey) {
	v.X = Float{Interp: interp}
	v.Y = Float{Interp: interp}
	v.Z = Float{Interp: interp}
	for _, k := range keys {
		v.X.Keys = append(v.X.Keys, Key{k.Time, k.Value[0]})
		v.Y.Keys = append(v.Y.Keys, Key{k.Time, k.Value[1]})
		v.Z.Keys = append(v.Z.Keys, Key{k.Time, k.Value[2]})
	}
	v.X.sortKeys()
	v.Y.sortKeys()
	v.Z.sortKeys()
}

// Empty reports whether the curve has no keys on any axis.
func (v *Vector) Empty() bool {
	return v == nil || (v.X.Empty() && v.Y.Empty() && v.Z.Empty())
}

// Eval returns the vector value at t.
func (v *Vector) Eval(t float32) math.Vec3 {
	if v == nil {
		return math.Vec3{}
	}
	return math.Vec3{X: v.X.Eval(t), Y: v.Y.Eval(t), Z: v.Z.Eval(t)}
}

// vectorDoc is the YAML shape of a vector curve.
type vectorDoc struct {
	Interp Interp      `yaml:"interp,omitempty"`
	Keys   []VectorKey `yaml:"keys"`
}

// UnmarshalYAML decodes a vector curve written as a list of vector keys.
func (v *Vector) UnmarshalYAML(node *yaml.Node) error {
	var doc vectorDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	v.setKeys(doc.Interp, doc.Keys)
	if err := v.X.validate(); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// MarshalYAML writes the curve back as vector keys.
func (v Vector) MarshalYAML() (interface{}, error) {
	doc := vectorDoc{Interp: v.X.Interp}
	for i, k := range v.X.Keys {
		var y, z float32
		if i < len(v.Y.Keys) {
			y = v.Y.Keys[i].Value
		}
		if i < len(v.Z.Keys) {
			z = v.Z.Keys[i].Value
		}
		doc.Keys = append(doc.Keys, VectorKey{Time: k.Time, Value: [3]float32{k.Value, y, z}})
	}
	return doc, nil
}
