package camera

import "github.com/Faultbox/camrig/pkg/math"

// OffsetTracker eases a vector offset toward a target whenever the target
// changes, such as the pivot drop when a character crouches.
type OffsetTracker struct {
	Initial math.Vec3
	Target  math.Vec3
	Current math.Vec3
	Pct     float32
	// Rate is the fraction of the transition covered per second.
	Rate     float32
	Exponent float32
}

// NewOffsetTracker returns a settled tracker at zero.
func NewOffsetTracker(rate, exponent float32) OffsetTracker {
	return OffsetTracker{Pct: 1, Rate: rate, Exponent: exponent}
}

// SetTarget starts a new transition from the current value. Setting the
// target it already has does nothing.
func (t *OffsetTracker) SetTarget(target math.Vec3) {
	if target == t.Target {
		return
	}
	t.Initial = t.Current
	t.Target = target
	t.Pct = 0
}

// Snap jumps straight to the target.
func (t *OffsetTracker) Snap() {
	t.Current = t.Target
	t.Initial = t.Target
	t.Pct = 1
}

// Update advances the transition by dt.
func (t *OffsetTracker) Update(dt float32) {
	if t.Pct >= 1 {
		t.Current = t.Target
		return
	}
	t.Pct = min(t.Pct+dt*t.Rate, 1)
	t.Current = math.InterpEaseInOutV(t.Initial, t.Target, t.Pct, t.Exponent)
}
