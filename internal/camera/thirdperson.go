package camera

import (
	"github.com/Faultbox/camrig/internal/curve"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// ThirdPersonSettings configure the over-the-shoulder mode.
type ThirdPersonSettings struct {
	// TargetOffset maps pivot pitch to a pivot-local camera offset.
	TargetOffset *curve.Vector
	// FocusOffset is added to the curve offset while a focus actor is set.
	FocusOffset math.Vec3
	// FocusLeadDistance places the focus point ahead of the target when no
	// focus actor is set.
	FocusLeadDistance float32
	// CrouchBlendRate is how fast the crouch offset eases in, per second.
	CrouchBlendRate float32
	Framing         FramingSettings
	Penetration     PenetrationSettings
}

// DefaultThirdPersonSettings returns the stock third-person tuning.
func DefaultThirdPersonSettings() ThirdPersonSettings {
	return ThirdPersonSettings{
		TargetOffset: curve.NewVector(curve.InterpCubic,
			curve.VectorKey{Time: -90, Value: [3]float32{-100, 40, 150}},
			curve.VectorKey{Time: 0, Value: [3]float32{-300, 50, 50}},
			curve.VectorKey{Time: 90, Value: [3]float32{-200, 50, -100}},
		),
		FocusOffset:       math.Vec3{Y: 60, Z: 100},
		FocusLeadDistance: 400,
		CrouchBlendRate:   5,
		Framing:           DefaultFramingSettings(),
		Penetration:       DefaultPenetrationSettings(),
	}
}

// ThirdPerson orbits the target on a pitch-driven offset curve, optionally
// frames a focus actor, and keeps the camera out of geometry.
type ThirdPerson struct {
	Base
	tp ThirdPersonSettings

	crouch OffsetTracker
	// Framer and Avoider are nil when the feature is disabled.
	Framer  *Framer
	Avoider *Avoider

	focusPoint math.Vec3
	offset     math.Vec3
}

// NewThirdPerson returns a third-person mode of type t.
func NewThirdPerson(t ModeType, s Settings, tp ThirdPersonSettings) *ThirdPerson {
	m := &ThirdPerson{}
	m.initThirdPerson(t, s, tp)
	return m
}

func (m *ThirdPerson) initThirdPerson(t ModeType, s Settings, tp ThirdPersonSettings) {
	m.init(t, s)
	m.tp = tp
	m.crouch = NewOffsetTracker(tp.CrouchBlendRate, 1)
	if tp.Framing.Enabled {
		m.Framer = NewFramer(tp.Framing)
	}
	if tp.Penetration.Enabled {
		m.Avoider = NewAvoider(tp.Penetration)
	}
}

// Tuning returns the third-person settings.
func (m *ThirdPerson) Tuning() ThirdPersonSettings { return m.tp }

// CrouchOffset is the current eased crouch adjustment of the pivot.
func (m *ThirdPerson) CrouchOffset() math.Vec3 { return m.crouch.Current }

// FocusPoint is the focus location computed on the last update.
func (m *ThirdPerson) FocusPoint() math.Vec3 { return m.focusPoint }

func (m *ThirdPerson) UpdateView(f *Frame) {
	pivotLoc, pivotRot, reset := m.updateOrbit(f)
	m.updateFocus(f, pivotLoc, pivotRot)
	m.avoid(f, reset)
}

// updateOrbit runs the pivot, crouch, lag and offset-curve stages and leaves
// the desired camera in m.view. It returns the lagged pivot.
func (m *ThirdPerson) updateOrbit(f *Frame) (math.Vec3, math.Rotator, bool) {
	mustTarget(f.Target)
	reset := m.consumeReset()

	m.updateCrouchTarget(f.Target)
	if reset {
		m.crouch.Snap()
	} else {
		m.crouch.Update(f.DeltaTime)
	}

	pivotLoc := m.PivotLocation(f.Target).Add(m.crouch.Current)
	pivotRot := m.PivotRotation(f.Target)
	pivotRot.Pitch = math.ClampAngle(pivotRot.Pitch, m.PitchMin, m.PitchMax)

	m.view.ControlRotation = pivotRot
	m.view.FieldOfView = m.Settings.FieldOfView

	pivotLoc, pivotRot = m.lag.Apply(f.DeltaTime, pivotLoc, pivotRot, reset, f.draw())

	m.view.Location = pivotLoc
	m.view.Rotation = pivotRot

	if !m.tp.TargetOffset.Empty() {
		m.offset = m.tp.TargetOffset.Eval(pivotRot.Pitch)
		if m.focusActor != nil {
			m.offset = m.offset.Add(m.tp.FocusOffset)
		}
		m.view.Location = pivotLoc.Add(pivotRot.RotateVector(m.offset))
	}
	return pivotLoc, pivotRot, reset
}

// updateCrouchTarget retargets the crouch tracker only when the crouch
// state actually changes, so the ease is not restarted every frame.
func (m *ThirdPerson) updateCrouchTarget(target world.Actor) {
	var offset math.Vec3
	if ch, ok := target.(world.Character); ok && ch.IsCrouched() {
		offset.Z = ch.CrouchedEyeHeight() - ch.BaseEyeHeight()
	}
	m.crouch.SetTarget(offset)
}

// focusLocation is the focus actor, else a point ahead of the character or
// the pivot.
func (m *ThirdPerson) focusLocation(target world.Actor, pivotLoc math.Vec3, pivotRot math.Rotator) math.Vec3 {
	if m.focusActor != nil {
		return m.focusActor.Location()
	}
	if _, ok := target.(world.Character); ok {
		return pivotLoc.Add(world.Forward(target).Scale(m.tp.FocusLeadDistance))
	}
	return pivotLoc.Add(pivotRot.Vector().Scale(m.tp.FocusLeadDistance))
}

// updateFocus frames the focus actor, or the focus group, with the target.
func (m *ThirdPerson) updateFocus(f *Frame, pivotLoc math.Vec3, pivotRot math.Rotator) {
	m.focusPoint = m.focusLocation(f.Target, pivotLoc, pivotRot)
	if m.Framer == nil {
		return
	}
	switch {
	case m.focusActor != nil:
		m.Framer.FramePair(&m.view, pivotLoc, m.focusPoint, m.view.ControlRotation.Pitch, f.draw())
	case len(m.focusActors) > 0:
		m.Framer.FrameGroup(&m.view, f.Target.Location(), m.focusActors, pivotLoc.Z)
	}
}

func (m *ThirdPerson) avoid(f *Frame, reset bool) {
	if m.Avoider == nil {
		return
	}
	m.Avoider.Update(f, &m.view, reset)
}

func (m *ThirdPerson) DebugLines() []string {
	lines := m.Base.DebugLines()
	if m.Framer != nil && m.focusActor != nil {
		lines = append(lines, m.Framer.DebugLines()...)
	}
	if m.Avoider != nil {
		lines = append(lines, m.Avoider.DebugLines()...)
	}
	return lines
}
