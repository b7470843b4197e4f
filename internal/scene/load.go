package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/camrig/pkg/math"
)

// File is the YAML layout of a scene file.
type File struct {
	Player     string          `yaml:"player"`
	Characters []CharacterSpec `yaml:"characters"`
	Blockers   []BlockerSpec   `yaml:"blockers"`
}

// CharacterSpec describes one character. Zero sizes take the defaults.
type CharacterSpec struct {
	Name               string                `yaml:"name"`
	Feet               [3]float32            `yaml:"feet"`
	Yaw                float32               `yaml:"yaw"`
	Radius             float32               `yaml:"radius,omitempty"`
	HalfHeight         float32               `yaml:"half_height,omitempty"`
	CrouchedHalfHeight float32               `yaml:"crouched_half_height,omitempty"`
	EyeHeight          float32               `yaml:"eye_height,omitempty"`
	CrouchedEyeHeight  float32               `yaml:"crouched_eye_height,omitempty"`
	MoveSpeed          float32               `yaml:"move_speed,omitempty"`
	Sockets            map[string][3]float32 `yaml:"sockets,omitempty"`
	Patrol             [][2]float32          `yaml:"patrol,omitempty"`
	PenetrationProxy   string                `yaml:"penetration_proxy,omitempty"`
}

// BlockerSpec describes one static blocker.
type BlockerSpec struct {
	Name       string     `yaml:"name"`
	Shape      Shape      `yaml:"shape"`
	Center     [3]float32 `yaml:"center"`
	Extent     [3]float32 `yaml:"extent,omitempty"`
	Radius     float32    `yaml:"radius,omitempty"`
	HalfHeight float32    `yaml:"half_height,omitempty"`
	CameraOnly bool       `yaml:"camera_only,omitempty"`
}

// Load reads a scene from a YAML file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading scene from %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Build()
}

// Build creates the scene described by f.
func (f *File) Build() (*Scene, error) {
	s := New()
	names := make(map[string]bool)

	for _, bs := range f.Blockers {
		if err := checkName(names, bs.Name); err != nil {
			return nil, err
		}
		b, err := bs.build()
		if err != nil {
			return nil, err
		}
		s.AddBlocker(b)
	}

	for i := range f.Characters {
		cs := &f.Characters[i]
		if err := checkName(names, cs.Name); err != nil {
			return nil, err
		}
		s.AddCharacter(cs.build())
	}

	// Proxies may refer to any actor, so resolve them once everything exists.
	for _, cs := range f.Characters {
		if cs.PenetrationProxy == "" {
			continue
		}
		proxy, ok := s.Actor(cs.PenetrationProxy)
		if !ok {
			return nil, fmt.Errorf("character %q: unknown penetration proxy %q", cs.Name, cs.PenetrationProxy)
		}
		c, _ := s.Character(cs.Name)
		c.SetPenetrationProxy(proxy)
	}

	if f.Player != "" {
		c, ok := s.Character(f.Player)
		if !ok {
			return nil, fmt.Errorf("unknown player character %q", f.Player)
		}
		s.SetPlayer(c)
	}
	return s, nil
}

func checkName(seen map[string]bool, name string) error {
	if name == "" {
		return errors.New("actor without a name")
	}
	if seen[name] {
		return fmt.Errorf("duplicate actor name %q", name)
	}
	seen[name] = true
	return nil
}

func (cs *CharacterSpec) build() *Character {
	c := NewCharacter(cs.Name, vec(cs.Feet))
	setIfPositive(&c.Radius, cs.Radius)
	setIfPositive(&c.CrouchedHalfHeight, cs.CrouchedHalfHeight)
	setIfPositive(&c.EyeHeight, cs.EyeHeight)
	setIfPositive(&c.CrouchedEye, cs.CrouchedEyeHeight)
	setIfPositive(&c.MoveSpeed, cs.MoveSpeed)
	if cs.HalfHeight > 0 {
		c.DefaultHeight = cs.HalfHeight
		c.halfHeight = cs.HalfHeight
		c.loc = vec(cs.Feet).Add(math.Vec3{Z: cs.HalfHeight})
	}
	c.rot.Yaw = cs.Yaw
	for name, off := range cs.Sockets {
		c.SetSocket(name, vec(off))
	}
	if len(cs.Patrol) > 0 {
		points := make([]math.Vec3, len(cs.Patrol))
		for i, p := range cs.Patrol {
			points[i] = math.Vec3{X: p[0], Y: p[1]}
		}
		c.SetPatrol(points)
	}
	return c
}

func (bs *BlockerSpec) build() (*Blocker, error) {
	center := vec(bs.Center)
	var b *Blocker
	switch bs.Shape {
	case ShapeBox, "":
		b = NewBox(bs.Name, center, vec(bs.Extent))
	case ShapeSphere:
		b = NewSphere(bs.Name, center, bs.Radius)
	case ShapeCapsule:
		b = NewCapsule(bs.Name, center, bs.Radius, bs.HalfHeight)
	default:
		return nil, fmt.Errorf("blocker %q: unknown shape %q", bs.Name, bs.Shape)
	}
	if bs.CameraOnly {
		if b.shape != ShapeBox {
			return nil, fmt.Errorf("blocker %q: camera-only volumes must be boxes", bs.Name)
		}
		b.cameraOnly = true
	}
	return b, nil
}

func setIfPositive(dst *float32, v float32) {
	if v > 0 {
		*dst = v
	}
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
