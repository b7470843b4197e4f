package camera

import (
	"fmt"

	"github.com/Faultbox/camrig/internal/curve"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// DynamicSettings configure the focus-driven mode on top of the third-person
// pipeline.
type DynamicSettings struct {
	ThirdPersonSettings
	Strategy OffsetStrategy
	// OffsetCurve is the curve in use at activation. The owner may swap it at
	// runtime through SetDynamicOffsetCurve.
	OffsetCurve *curve.Vector
}

// DefaultDynamicSettings returns third-person defaults with the
// elapsed-time strategy and no curve.
func DefaultDynamicSettings() DynamicSettings {
	return DynamicSettings{
		ThirdPersonSettings: DefaultThirdPersonSettings(),
		Strategy:            ElapsedTimeOffset{},
	}
}

// OffsetCurveSetter is implemented by modes that accept a runtime offset curve.
type OffsetCurveSetter interface {
	SetDynamicOffsetCurve(c *curve.Vector)
}

// Dynamic frames a focus actor with a strategy-driven offset, or looks at a
// socket of the target when there is no focus actor.
type Dynamic struct {
	ThirdPerson

	strategy     OffsetStrategy
	defaultCurve *curve.Vector
	offsetCurve  *curve.Vector
	elapsed      float32
}

// NewDynamic returns a dynamic mode of type t.
func NewDynamic(t ModeType, s Settings, ds DynamicSettings) *Dynamic {
	m := &Dynamic{
		strategy:     ds.Strategy,
		defaultCurve: ds.OffsetCurve,
		offsetCurve:  ds.OffsetCurve,
	}
	if m.strategy == nil {
		m.strategy = ElapsedTimeOffset{}
	}
	m.initThirdPerson(t, s, ds.ThirdPersonSettings)
	return m
}

// SetDynamicOffsetCurve replaces the offset curve. Nil disables the offset.
func (m *Dynamic) SetDynamicOffsetCurve(c *curve.Vector) {
	m.offsetCurve = c
}

// Elapsed is the time the current focus actor has been framed.
func (m *Dynamic) Elapsed() float32 { return m.elapsed }

func (m *Dynamic) OnActivation() {
	if m.offsetCurve == nil {
		m.offsetCurve = m.defaultCurve
	}
}

func (m *Dynamic) OnDeactivation() {
	m.elapsed = 0
	m.offsetCurve = nil
	m.focusActor = nil
}

func (m *Dynamic) UpdateView(f *Frame) {
	pivotLoc, _, reset := m.updateOrbit(f)
	m.focusPoint = m.focusLocation(f.Target, pivotLoc, m.view.Rotation)

	switch {
	case m.focusActor != nil:
		m.updateFocusActor(f, pivotLoc)
	case m.focusSocket != "":
		if ch, ok := f.Target.(world.Character); ok {
			if socket, ok := ch.SocketLocation(m.focusSocket); ok {
				m.lookAt(socket)
			}
		}
	}

	m.avoid(f, reset)
}

func (m *Dynamic) updateFocusActor(f *Frame, pivotLoc math.Vec3) {
	rot := m.view.ControlRotation
	rot.Pitch = 0

	if !m.offsetCurve.Empty() {
		in := OffsetInput{
			Pitch:           m.view.ControlRotation.Pitch,
			Elapsed:         m.elapsed,
			SeparationAngle: separationAngle(f.Target.Location(), f.Target.Location().Add(world.Forward(f.Target)), m.focusPoint),
			Base:            m.offset,
		}
		m.view.Location = pivotLoc.Add(rot.RotateVector(m.strategy.Offset(in, m.offsetCurve)))
		m.elapsed += f.DeltaTime
	}

	m.lookAt(m.focusPoint)
	if m.Framer != nil {
		m.Framer.FramePair(&m.view, pivotLoc, m.focusPoint, m.view.ControlRotation.Pitch, f.draw())
	}
}

func (m *Dynamic) lookAt(p math.Vec3) {
	dir := p.Sub(m.view.Location)
	if dir.LengthSquared() < math.KindaSmallNumber {
		return
	}
	m.view.Rotation = dir.Rotation()
}

func (m *Dynamic) DebugLines() []string {
	lines := m.ThirdPerson.DebugLines()
	return append(lines, fmt.Sprintf("  dynamic strategy=%s elapsed=%.2f curve=%t",
		m.strategy.Name(), m.elapsed, !m.offsetCurve.Empty()))
}
