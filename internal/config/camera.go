package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/camrig/internal/camera"
	"github.com/Faultbox/camrig/internal/curve"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// Mode kinds select which camera mode implementation a mode entry builds.
const (
	KindBase        = "base"
	KindThirdPerson = "third_person"
	KindDynamic     = "dynamic"
)

// CameraConfig holds the mode definitions and the default mode.
type CameraConfig struct {
	DefaultMode string       `yaml:"default_mode"`
	Modes       []ModeConfig `yaml:"modes"`
}

// ModeConfig defines one camera mode type. Absent keys keep the stock
// camera tuning.
type ModeConfig struct {
	Type          string  `yaml:"type"`
	Kind          string  `yaml:"kind"`
	Tag           string  `yaml:"tag,omitempty"`
	FieldOfView   float32 `yaml:"fov"`
	PitchMin      float32 `yaml:"pitch_min"`
	PitchMax      float32 `yaml:"pitch_max"`
	BlendTime     float32 `yaml:"blend_time"`
	BlendFunction string  `yaml:"blend_function"`
	BlendExponent float32 `yaml:"blend_exponent"`

	Lag LagConfig `yaml:"lag"`

	// Third-person and dynamic modes.
	TargetOffset      *curve.Vector     `yaml:"target_offset,omitempty"`
	FocusOffset       [3]float32        `yaml:"focus_offset"`
	FocusLeadDistance float32           `yaml:"focus_lead_distance"`
	CrouchBlendRate   float32           `yaml:"crouch_blend_rate"`
	Framing           FramingConfig     `yaml:"framing"`
	Penetration       PenetrationConfig `yaml:"penetration"`

	// Dynamic modes.
	OffsetStrategy string        `yaml:"offset_strategy,omitempty"`
	OffsetCurve    *curve.Vector `yaml:"offset_curve,omitempty"`
}

// LagConfig mirrors camera.LagSettings.
type LagConfig struct {
	Enabled         bool    `yaml:"enabled"`
	RotationEnabled bool    `yaml:"rotation_enabled"`
	Substepping     bool    `yaml:"substepping"`
	Speed           float32 `yaml:"speed"`
	RotationSpeed   float32 `yaml:"rotation_speed"`
	MaxTimeStep     float32 `yaml:"max_time_step"`
	MaxDistance     float32 `yaml:"max_distance"`
	DrawMarkers     bool    `yaml:"draw_markers"`
}

// FramingConfig mirrors camera.FramingSettings.
type FramingConfig struct {
	Enabled            bool    `yaml:"enabled"`
	MinSeparationAngle float32 `yaml:"min_separation_angle"`
	MinFOV             float32 `yaml:"min_fov"`
	MaxFOV             float32 `yaml:"max_fov"`
	FOVStep            float32 `yaml:"fov_step"`
	MaxIterations      int     `yaml:"max_iterations"`
	GroupPadding       float32 `yaml:"group_padding"`
	DrawDebug          bool    `yaml:"draw_debug"`
}

// PenetrationConfig mirrors camera.PenetrationSettings.
type PenetrationConfig struct {
	Enabled         bool           `yaml:"enabled"`
	Predictive      bool           `yaml:"predictive"`
	IgnorePawns     bool           `yaml:"ignore_pawns"`
	BlendInTime     float32        `yaml:"blend_in_time"`
	BlendOutTime    float32        `yaml:"blend_out_time"`
	PushOutDistance float32        `yaml:"push_out_distance"`
	ReportPercent   float32        `yaml:"report_percent"`
	Channel         string         `yaml:"channel"`
	Feelers         []FeelerConfig `yaml:"feelers"`
	DrawDebug       bool           `yaml:"draw_debug"`
}

// FeelerConfig mirrors camera.Feeler.
type FeelerConfig struct {
	Pitch         float32 `yaml:"pitch"`
	Yaw           float32 `yaml:"yaw"`
	WorldWeight   float32 `yaml:"world_weight"`
	PawnWeight    float32 `yaml:"pawn_weight"`
	Radius        float32 `yaml:"radius"`
	TraceInterval int     `yaml:"trace_interval"`
}

// DefaultModeConfig returns a mode entry holding the stock camera tuning.
func DefaultModeConfig() ModeConfig {
	s := camera.DefaultSettings()
	ds := camera.DefaultDynamicSettings()
	m := ModeConfig{
		Kind:          KindThirdPerson,
		FieldOfView:   s.FieldOfView,
		PitchMin:      s.PitchMin,
		PitchMax:      s.PitchMax,
		BlendTime:     s.BlendTime,
		BlendFunction: s.BlendFunction.String(),
		BlendExponent: s.BlendExponent,
		Lag:           LagConfig(s.Lag),

		FocusOffset:       vecArray(ds.FocusOffset),
		FocusLeadDistance: ds.FocusLeadDistance,
		CrouchBlendRate:   ds.CrouchBlendRate,
		Framing:           FramingConfig(ds.Framing),
		OffsetStrategy:    ds.Strategy.Name(),
	}

	p := ds.Penetration
	m.Penetration = PenetrationConfig{
		Enabled:         p.Enabled,
		Predictive:      p.Predictive,
		IgnorePawns:     p.IgnorePawns,
		BlendInTime:     p.BlendInTime,
		BlendOutTime:    p.BlendOutTime,
		PushOutDistance: p.PushOutDistance,
		ReportPercent:   p.ReportPercent,
		Channel:         p.Channel.String(),
		DrawDebug:       p.DrawDebug,
	}
	for _, f := range p.Feelers {
		m.Penetration.Feelers = append(m.Penetration.Feelers, FeelerConfig{
			Pitch:         f.Rotation.Pitch,
			Yaw:           f.Rotation.Yaw,
			WorldWeight:   f.WorldWeight,
			PawnWeight:    f.PawnWeight,
			Radius:        f.Radius,
			TraceInterval: f.TraceInterval,
		})
	}
	return m
}

// UnmarshalYAML fills absent keys from DefaultModeConfig.
func (m *ModeConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain ModeConfig
	p := plain(DefaultModeConfig())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*m = ModeConfig(p)
	return nil
}

// DefaultCameraConfig returns the stock mode set: an orbiting third-person
// camera, a tighter aim camera and a dynamic lock-on camera.
func DefaultCameraConfig() CameraConfig {
	tp := DefaultModeConfig()
	tp.Type = "third_person"
	tp.Tag = "Camera.Type.ThirdPerson"

	aim := DefaultModeConfig()
	aim.Type = "aim"
	aim.Tag = "Camera.Type.Aim"
	aim.FieldOfView = 55
	aim.BlendTime = 0.2
	aim.BlendFunction = camera.BlendEaseInOut.String()
	aim.FocusLeadDistance = 1000

	dyn := DefaultModeConfig()
	dyn.Type = "lock_on"
	dyn.Kind = KindDynamic
	dyn.Tag = "Camera.Type.LockOn"
	dyn.BlendTime = 0.35

	modes := []ModeConfig{tp, aim, dyn}
	for i := range modes {
		// Report once the camera sits closer than a quarter of its full distance.
		modes[i].Penetration.ReportPercent = 0.25
	}
	return CameraConfig{
		DefaultMode: tp.Type,
		Modes:       modes,
	}
}

// Mode returns the mode entry for a type.
func (c *CameraConfig) Mode(t string) (ModeConfig, bool) {
	for _, m := range c.Modes {
		if m.Type == t {
			return m, true
		}
	}
	return ModeConfig{}, false
}

// Validate checks every mode entry can be built.
func (c *CameraConfig) Validate() error {
	seen := make(map[string]bool)
	for i := range c.Modes {
		m := &c.Modes[i]
		if m.Type == "" {
			return fmt.Errorf("camera mode %d: empty type", i)
		}
		if seen[m.Type] {
			return fmt.Errorf("camera mode %q defined twice", m.Type)
		}
		seen[m.Type] = true
		if _, err := m.Factory(); err != nil {
			return err
		}
	}
	if c.DefaultMode != "" && !seen[c.DefaultMode] {
		return fmt.Errorf("default camera mode %q is not defined", c.DefaultMode)
	}
	return nil
}

// Registry builds a camera mode registry holding every configured mode.
func (c *CameraConfig) Registry() (*camera.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	reg := camera.NewRegistry()
	for i := range c.Modes {
		m := &c.Modes[i]
		f, _ := m.Factory()
		reg.Register(camera.ModeType(m.Type), f)
	}
	return reg, nil
}

// Settings converts the common mode tunables.
func (m *ModeConfig) Settings() (camera.Settings, error) {
	fn, err := camera.ParseBlendFunction(m.BlendFunction)
	if err != nil {
		return camera.Settings{}, fmt.Errorf("camera mode %q: %w", m.Type, err)
	}
	if m.PitchMin > m.PitchMax {
		return camera.Settings{}, fmt.Errorf("camera mode %q: pitch_min %v above pitch_max %v", m.Type, m.PitchMin, m.PitchMax)
	}
	if m.BlendTime < 0 {
		return camera.Settings{}, fmt.Errorf("camera mode %q: negative blend_time", m.Type)
	}
	return camera.Settings{
		Tag:           m.Tag,
		FieldOfView:   m.FieldOfView,
		PitchMin:      m.PitchMin,
		PitchMax:      m.PitchMax,
		BlendTime:     m.BlendTime,
		BlendFunction: fn,
		BlendExponent: m.BlendExponent,
		Lag:           camera.LagSettings(m.Lag),
	}, nil
}

// ThirdPersonSettings converts the third-person tunables.
func (m *ModeConfig) ThirdPersonSettings() (camera.ThirdPersonSettings, error) {
	tp := camera.DefaultThirdPersonSettings()
	if m.TargetOffset != nil && !m.TargetOffset.Empty() {
		tp.TargetOffset = m.TargetOffset
	}
	tp.FocusOffset = arrayVec(m.FocusOffset)
	tp.FocusLeadDistance = m.FocusLeadDistance
	tp.CrouchBlendRate = m.CrouchBlendRate
	tp.Framing = camera.FramingSettings(m.Framing)

	ch, err := world.ParseChannel(m.Penetration.Channel)
	if err != nil {
		return tp, fmt.Errorf("camera mode %q: %w", m.Type, err)
	}
	p := m.Penetration
	tp.Penetration = camera.PenetrationSettings{
		Enabled:         p.Enabled,
		Predictive:      p.Predictive,
		IgnorePawns:     p.IgnorePawns,
		BlendInTime:     p.BlendInTime,
		BlendOutTime:    p.BlendOutTime,
		PushOutDistance: p.PushOutDistance,
		ReportPercent:   p.ReportPercent,
		Channel:         ch,
		DrawDebug:       p.DrawDebug,
	}
	if len(p.Feelers) == 0 {
		return tp, fmt.Errorf("camera mode %q: penetration needs at least one feeler", m.Type)
	}
	for _, f := range p.Feelers {
		tp.Penetration.Feelers = append(tp.Penetration.Feelers, camera.Feeler{
			Rotation:      math.Rotator{Pitch: f.Pitch, Yaw: f.Yaw},
			WorldWeight:   f.WorldWeight,
			PawnWeight:    f.PawnWeight,
			Radius:        f.Radius,
			TraceInterval: f.TraceInterval,
		})
	}
	return tp, nil
}

// Factory returns a constructor for the configured mode.
func (m *ModeConfig) Factory() (camera.Factory, error) {
	s, err := m.Settings()
	if err != nil {
		return nil, err
	}
	t := camera.ModeType(m.Type)

	switch m.Kind {
	case KindBase:
		return func() camera.Mode { return camera.NewBase(t, s) }, nil
	case KindThirdPerson, "":
		tp, err := m.ThirdPersonSettings()
		if err != nil {
			return nil, err
		}
		return func() camera.Mode { return camera.NewThirdPerson(t, s, tp) }, nil
	case KindDynamic:
		tp, err := m.ThirdPersonSettings()
		if err != nil {
			return nil, err
		}
		strategy, err := camera.ParseOffsetStrategy(m.OffsetStrategy)
		if err != nil {
			return nil, fmt.Errorf("camera mode %q: %w", m.Type, err)
		}
		ds := camera.DynamicSettings{ThirdPersonSettings: tp, Strategy: strategy}
		if m.OffsetCurve != nil && !m.OffsetCurve.Empty() {
			ds.OffsetCurve = m.OffsetCurve
		}
		return func() camera.Mode { return camera.NewDynamic(t, s, ds) }, nil
	default:
		return nil, fmt.Errorf("camera mode %q: unknown kind %q", m.Type, m.Kind)
	}
}

func vecArray(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func arrayVec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
