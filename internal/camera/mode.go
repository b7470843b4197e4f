package camera

import (
	"fmt"
	"strings"

	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// ModeType identifies a registered camera mode. The stack holds at most one
// instance per type.
type ModeType string

// Frame carries per-tick inputs into mode evaluation.
type Frame struct {
	DeltaTime float32
	// Target is the actor being viewed. It must be non-nil while a mode updates.
	Target world.Actor
	Query  world.SceneQuery
	Debug  world.DebugDraw
}

func (f *Frame) draw() world.DebugDraw {
	if f.Debug == nil {
		return world.NopDraw{}
	}
	return f.Debug
}

// Mode is one camera behaviour living on the stack.
type Mode interface {
	Type() ModeType
	Tag() string
	View() View
	BlendTime() float32
	BlendWeight() float32
	// SetBlendWeight sets the weight directly and back-solves the matching
	// alpha so blending continues smoothly from there.
	SetBlendWeight(weight float32)
	// UpdateBlending advances alpha by dt/BlendTime and reshapes the weight.
	UpdateBlending(dt float32)
	// UpdateView computes View for the frame.
	UpdateView(f *Frame)

	OnActivation()
	OnDeactivation()

	SetFocusActor(a world.Actor)
	SetFocusActors(actors []world.Actor)
	SetFocusSocket(name string)
	// ResetInterpolation snaps every smoothed quantity on the next update.
	ResetInterpolation()

	DebugLines() []string
}

// UpdateCameraMode runs one tick of m: view first, then blending.
func UpdateCameraMode(m Mode, f *Frame) {
	m.UpdateView(f)
	m.UpdateBlending(f.DeltaTime)
}

// Settings are the tunables shared by every mode.
type Settings struct {
	Tag           string
	FieldOfView   float32
	PitchMin      float32
	PitchMax      float32
	BlendTime     float32
	BlendFunction BlendFunction
	BlendExponent float32
	Lag           LagSettings
}

// DefaultSettings returns the stock mode tunables.
func DefaultSettings() Settings {
	return Settings{
		FieldOfView:   DefaultFOV,
		PitchMin:      DefaultPitchMin,
		PitchMax:      DefaultPitchMax,
		BlendTime:     0.5,
		BlendFunction: BlendEaseOut,
		BlendExponent: DefaultBlendExponent,
		Lag:           DefaultLagSettings(),
	}
}

// Base is the plain pivot-following mode. Richer modes embed it and
// override UpdateView.
type Base struct {
	Settings

	modeType ModeType
	view     View

	blendAlpha  float32
	blendWeight float32

	focusActor  world.Actor
	focusActors []world.Actor
	focusSocket string

	lag   LagFilter
	reset bool
}

// NewBase returns a base mode of type t.
func NewBase(t ModeType, s Settings) *Base {
	b := &Base{}
	b.init(t, s)
	return b
}

func (b *Base) init(t ModeType, s Settings) {
	b.Settings = s
	b.modeType = t
	b.view = NewView()
	b.view.FieldOfView = s.FieldOfView
	b.blendAlpha = 1
	b.blendWeight = 1
	b.lag = LagFilter{LagSettings: s.Lag}
}

func (b *Base) Type() ModeType     { return b.modeType }
func (b *Base) Tag() string        { return b.Settings.Tag }
func (b *Base) View() View         { return b.view }
func (b *Base) BlendTime() float32 { return b.Settings.BlendTime }

func (b *Base) BlendWeight() float32 { return b.blendWeight }

func (b *Base) SetBlendWeight(weight float32) {
	b.blendWeight = math.Clamp(weight, 0, 1)
	b.blendAlpha = b.BlendFunction.Alpha(b.blendWeight, b.BlendExponent)
}

func (b *Base) UpdateBlending(dt float32) {
	if b.Settings.BlendTime > 0 {
		b.blendAlpha += dt / b.Settings.BlendTime
		b.blendAlpha = min(b.blendAlpha, 1)
	} else {
		b.blendAlpha = 1
	}
	b.blendWeight = b.BlendFunction.Weight(b.blendAlpha, b.BlendExponent)
}

func (b *Base) OnActivation()   {}
func (b *Base) OnDeactivation() {}

// SetFocusActor sets the actor to frame. nil clears it.
func (b *Base) SetFocusActor(a world.Actor)         { b.focusActor = a }
func (b *Base) SetFocusActors(actors []world.Actor) { b.focusActors = append(b.focusActors[:0], actors...) }
func (b *Base) SetFocusSocket(name string)          { b.focusSocket = name }

// FocusActor returns the secondary actor of interest, if any.
func (b *Base) FocusActor() world.Actor { return b.focusActor }

func (b *Base) ResetInterpolation() { b.reset = true }

// UpdateView places the camera on the pivot, clamping pitch.
func (b *Base) UpdateView(f *Frame) {
	loc := b.PivotLocation(f.Target)
	rot := b.PivotRotation(f.Target)
	rot.Pitch = math.ClampAngle(rot.Pitch, b.PitchMin, b.PitchMax)

	b.view.ControlRotation = rot
	loc, rot = b.lag.Apply(f.DeltaTime, loc, rot, b.consumeReset(), f.draw())

	b.view.Location = loc
	b.view.Rotation = rot
	b.view.FieldOfView = b.Settings.FieldOfView
}

// consumeReset reports and clears a pending interpolation reset.
func (b *Base) consumeReset() bool {
	r := b.reset
	b.reset = false
	return r
}

func (b *Base) DebugLines() []string {
	lines := []string{
		fmt.Sprintf("%s (%s) weight=%.3f alpha=%.3f", b.modeType, b.BlendFunction, b.blendWeight, b.blendAlpha),
		"  " + b.view.String(),
	}
	if b.focusActor != nil {
		lines = append(lines, "  focus="+b.focusActor.Name())
	}
	if len(b.focusActors) > 0 {
		names := make([]string, 0, len(b.focusActors))
		for _, a := range b.focusActors {
			if a != nil {
				names = append(names, a.Name())
			}
		}
		lines = append(lines, "  group=["+strings.Join(names, ", ")+"]")
	}
	return lines
}

var (
	_ Mode              = (*Base)(nil)
	_ Mode              = (*ThirdPerson)(nil)
	_ Mode              = (*Dynamic)(nil)
	_ OffsetCurveSetter = (*Dynamic)(nil)
)
