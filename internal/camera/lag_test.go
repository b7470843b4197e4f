package camera

import (
	"testing"

	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

func TestLagZeroSpeedIsPassThrough(t *testing.T) {
	for _, substep := range []bool{false, true} {
		l := LagFilter{LagSettings: LagSettings{
			Enabled:         true,
			RotationEnabled: true,
			Substepping:     substep,
			MaxTimeStep:     1.0 / 60,
		}}
		for i := 0; i < 10; i++ {
			raw := math.Vec3{X: float32(i) * 37, Y: float32(i*i) - 3, Z: 5}
			rawRot := math.Rotator{Yaw: float32(i) * 20}
			loc, rot := l.Apply(0.1, raw, rawRot, false, world.NopDraw{})
			if loc != raw {
				t.Errorf("substep=%v tick %d: loc = %v, want %v", substep, i, loc, raw)
			}
			if !rot.NearlyEqual(rawRot, 0.01) {
				t.Errorf("substep=%v tick %d: rot = %v, want %v", substep, i, rot, rawRot)
			}
		}
	}
}

func TestLagFirstApplySnaps(t *testing.T) {
	l := LagFilter{LagSettings: DefaultLagSettings()}
	l.Enabled = true
	loc, _ := l.Apply(0.016, math.Vec3{X: 500}, math.Rotator{}, false, nil)
	if loc != (math.Vec3{X: 500}) {
		t.Errorf("first Apply = %v, want raw", loc)
	}
}

func TestLagTrailsTarget(t *testing.T) {
	l := LagFilter{LagSettings: DefaultLagSettings()}
	l.Enabled = true
	l.Apply(0.016, math.Vec3{}, math.Rotator{}, false, nil)

	loc, _ := l.Apply(0.016, math.Vec3{X: 100}, math.Rotator{}, false, nil)
	if loc.X <= 0 || loc.X >= 100 {
		t.Errorf("lagged X = %v, want strictly between 0 and 100", loc.X)
	}
}

func TestLagZeroDeltaHoldsPivot(t *testing.T) {
	tests := []struct {
		name     string
		location bool
		rotation bool
	}{
		{"location", true, false},
		{"rotation", false, true},
		{"both", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LagFilter{LagSettings: DefaultLagSettings()}
			l.Enabled, l.RotationEnabled = tt.location, tt.rotation
			l.Speed, l.RotationSpeed = 2, 2

			raw, rawRot := math.Vec3{X: 100}, math.Rotator{Yaw: 90}
			l.Apply(0.016, math.Vec3{}, math.Rotator{}, false, nil)
			wantLoc, wantRot := l.Apply(0.016, raw, rawRot, false, nil)

			loc, rot := l.Apply(0, raw, rawRot, false, nil)
			if loc != wantLoc {
				t.Errorf("Apply(0) loc = %v, want %v", loc, wantLoc)
			}
			if !rot.NearlyEqual(wantRot, 1e-3) {
				t.Errorf("Apply(0) rot = %v, want %v", rot, wantRot)
			}
			if tt.location && !near(loc.X, 3.2) {
				t.Errorf("Apply(0) loc.X = %v, want 3.2", loc.X)
			}
			if !tt.location && loc != raw {
				t.Errorf("Apply(0) loc = %v, want raw %v", loc, raw)
			}
		})
	}
}

func TestLagSubsteppingMatchesSmallSteps(t *testing.T) {
	settings := DefaultLagSettings()
	settings.Enabled = true

	// One long frame with substeps.
	long := LagFilter{LagSettings: settings}
	long.Apply(0.1, math.Vec3{}, math.Rotator{}, false, nil)
	gotLong, _ := long.Apply(0.1, math.Vec3{X: 100}, math.Rotator{}, false, nil)

	// One long frame without substeps overshoots less smoothly.
	settings.Substepping = false
	flat := LagFilter{LagSettings: settings}
	flat.Apply(0.1, math.Vec3{}, math.Rotator{}, false, nil)
	gotFlat, _ := flat.Apply(0.1, math.Vec3{X: 100}, math.Rotator{}, false, nil)

	if gotLong.X <= 0 || gotLong.X >= 100 {
		t.Errorf("substepped X = %v, want inside (0, 100)", gotLong.X)
	}
	if gotLong.X >= gotFlat.X {
		t.Errorf("substepped X = %v, want less than single-step %v", gotLong.X, gotFlat.X)
	}
}

func TestLagMaxDistance(t *testing.T) {
	l := LagFilter{LagSettings: DefaultLagSettings()}
	l.Enabled = true
	l.Speed = 1
	l.Substepping = false
	l.MaxDistance = 50

	l.Apply(0.016, math.Vec3{}, math.Rotator{}, false, nil)
	loc, _ := l.Apply(0.016, math.Vec3{X: 1000}, math.Rotator{}, false, nil)
	if !near(loc.X, 950) {
		t.Errorf("clamped X = %v, want 950", loc.X)
	}
}

func TestLagResetSnaps(t *testing.T) {
	l := LagFilter{LagSettings: DefaultLagSettings()}
	l.Enabled = true
	l.Apply(0.016, math.Vec3{}, math.Rotator{}, false, nil)

	loc, _ := l.Apply(0.016, math.Vec3{Z: 300}, math.Rotator{}, true, nil)
	if loc != (math.Vec3{Z: 300}) {
		t.Errorf("reset Apply = %v, want raw", loc)
	}
}

func TestOffsetTracker(t *testing.T) {
	tr := NewOffsetTracker(5, 1)
	tr.SetTarget(math.Vec3{Z: -24})

	tr.Update(0.1)
	if !(tr.Current.Z < 0 && tr.Current.Z > -24) {
		t.Errorf("mid-transition Z = %v, want inside (-24, 0)", tr.Current.Z)
	}
	pct := tr.Pct

	// Re-setting the same target must not restart the ease.
	tr.SetTarget(math.Vec3{Z: -24})
	if tr.Pct != pct {
		t.Errorf("Pct = %v after same-target SetTarget, want %v", tr.Pct, pct)
	}

	tr.Update(1)
	if tr.Current.Z != -24 {
		t.Errorf("settled Z = %v, want -24", tr.Current.Z)
	}
}
