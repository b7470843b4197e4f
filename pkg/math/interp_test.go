package math

import "testing"

func TestEaseEndpoints(t *testing.T) {
	fns := map[string]func(a, b, alpha, exp float32) float32{
		"in":    InterpEaseIn,
		"out":   InterpEaseOut,
		"inout": InterpEaseInOut,
	}
	for name, fn := range fns {
		if got := fn(0, 1, 0, 4); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(0, 1, 1, 4); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
	if got := InterpEaseInOut(0, 1, 0.5, 4); abs(got-0.5) > 1e-6 {
		t.Errorf("InterpEaseInOut(0.5) = %v, want 0.5", got)
	}
}

func TestEaseInverseExponent(t *testing.T) {
	// Easing with 1/exp undoes easing with exp.
	const exp = 4
	for _, w := range []float32{0.1, 0.3, 0.6, 0.9} {
		alpha := InterpEaseOut(0, 1, w, 1/float32(exp))
		if got := InterpEaseOut(0, 1, alpha, exp); abs(got-w) > 1e-5 {
			t.Errorf("ease out inverse of %v = %v", w, got)
		}
		alpha = InterpEaseInOut(0, 1, w, 1/float32(exp))
		if got := InterpEaseInOut(0, 1, alpha, exp); abs(got-w) > 1e-5 {
			t.Errorf("ease in-out inverse of %v = %v", w, got)
		}
	}
}

func TestVInterpTo(t *testing.T) {
	cur := Vec3{0, 0, 0}
	target := Vec3{100, 0, 0}

	if got := VInterpTo(cur, target, 0.016, 0); got != target {
		t.Errorf("speed 0 should snap, got %v", got)
	}
	got := VInterpTo(cur, target, 0.1, 5)
	if abs(got.X-50) > 1e-4 {
		t.Errorf("VInterpTo() = %v, want X=50", got)
	}
	if got := VInterpTo(cur, target, 1, 5); got != target {
		t.Errorf("alpha clamps at 1, got %v", got)
	}
}

func TestQInterpTo(t *testing.T) {
	a := Rotator{}.Quat()
	b := Rotator{Yaw: 90}.Quat()

	if got := QInterpTo(a, b, 0.1, 0); got != b {
		t.Errorf("speed 0 should snap")
	}
	mid := QInterpTo(a, b, 0.1, 5).Rotator()
	if abs(mid.Yaw-45) > 0.01 {
		t.Errorf("QInterpTo halfway yaw = %v, want 45", mid.Yaw)
	}
}

func TestFInterpTo(t *testing.T) {
	if got := FInterpTo(0, 10, 0.5, 1); abs(got-5) > 1e-5 {
		t.Errorf("FInterpTo() = %v, want 5", got)
	}
	if got := FInterpTo(3, 10, 0.5, -1); got != 10 {
		t.Errorf("FInterpTo() with negative speed = %v, want 10", got)
	}
}
