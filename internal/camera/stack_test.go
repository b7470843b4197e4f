package camera

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/camrig/pkg/math"
)

func TestStackZeroBlendTimeTakesOverNextTick(t *testing.T) {
	a := newFixed("a", 0, BlendLinear, math.Vec3{X: 10})
	b := newFixed("b", 0, BlendLinear, math.Vec3{X: 20})
	s := NewStack(registryOf(a, b))

	if err := s.Push("a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Push("b"); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Evaluate(frame(1.0/60, &fakeActor{}))
	if !ok {
		t.Fatal("Evaluate() ok = false")
	}
	if got != b.View() {
		t.Errorf("Evaluate() = %v, want exactly %v", got, b.View())
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after retiring a", s.Len())
	}
	if a.deactivations != 1 {
		t.Errorf("a deactivations = %d, want 1", a.deactivations)
	}
}

func TestStackPushTopIsNoop(t *testing.T) {
	a := newFixed("a", 1, BlendLinear, math.Vec3{X: 10})
	b := newFixed("b", 1, BlendLinear, math.Vec3{X: 20})
	s := NewStack(registryOf(a, b))
	s.Push("a")
	s.Push("b")
	s.Update(frame(0.3, &fakeActor{}))

	before := s.Active()
	wa, wb := a.BlendWeight(), b.BlendWeight()
	if err := s.Push("b"); err != nil {
		t.Fatal(err)
	}

	after := s.Active()
	if len(after) != len(before) || after[0] != before[0] || after[1] != before[1] {
		t.Errorf("stack changed: %v -> %v", before, after)
	}
	if a.BlendWeight() != wa || b.BlendWeight() != wb {
		t.Errorf("weights changed: a %v->%v b %v->%v", wa, a.BlendWeight(), wb, b.BlendWeight())
	}
	if b.activations != 1 {
		t.Errorf("b activations = %d, want 1", b.activations)
	}
}

func TestStackBottomWeightAlwaysOne(t *testing.T) {
	types := []ModeType{"a", "b", "c", "d"}
	fns := []BlendFunction{BlendLinear, BlendEaseIn, BlendEaseOut, BlendEaseInOut}
	var modes []Mode
	for i, ty := range types {
		modes = append(modes, newFixed(ty, 0.5, fns[i], math.Vec3{X: float32(i)}))
	}
	s := NewStack(registryOf(modes...))
	rng := rand.New(rand.NewPCG(1, 2))

	for step := 0; step < 500; step++ {
		if rng.IntN(3) == 0 {
			s.Update(frame(rng.Float32()*0.2, &fakeActor{}))
		} else {
			s.Push(types[rng.IntN(len(types))])
		}
		active := s.Active()
		if len(active) == 0 {
			t.Fatalf("step %d: empty stack", step)
		}
		if w := active[len(active)-1].BlendWeight(); w != 1 {
			t.Fatalf("step %d: bottom weight = %v, want 1", step, w)
		}
	}
}

func TestStackRepromotionContinuity(t *testing.T) {
	for _, fn := range []BlendFunction{BlendLinear, BlendEaseOut, BlendEaseInOut} {
		t.Run(fn.String(), func(t *testing.T) {
			base := newFixed("base", 1, fn, math.Vec3{})
			m := newFixed("m", 1, fn, math.Vec3{X: 100})
			other := newFixed("other", 1, fn, math.Vec3{X: 200})
			s := NewStack(registryOf(base, m, other))

			s.Push("base")
			s.Push("m")
			m.SetBlendWeight(0.6)
			s.Push("other")

			if err := s.Push("m"); err != nil {
				t.Fatal(err)
			}
			if got := m.BlendWeight(); !near(got, 0.6) {
				t.Errorf("re-pushed weight = %v, want 0.6", got)
			}
			if got := fn.Weight(m.blendAlpha, m.BlendExponent); !near(got, 0.6) {
				t.Errorf("back-solved alpha gives weight %v, want 0.6", got)
			}
			if m.activations != 1 {
				t.Errorf("activations = %d, want 1 (re-promotion is not a new activation)", m.activations)
			}

			s.Update(frame(0.01, &fakeActor{}))
			if got := m.BlendWeight(); got < 0.6 {
				t.Errorf("weight after update = %v, want to continue from 0.6", got)
			}
		})
	}
}

func TestStackRepromotionAfterRealBlend(t *testing.T) {
	base := newFixed("base", 1, BlendLinear, math.Vec3{})
	m := newFixed("m", 1, BlendLinear, math.Vec3{X: 100})
	other := newFixed("other", 1, BlendLinear, math.Vec3{X: 200})
	s := NewStack(registryOf(base, m, other))

	s.Push("base")
	s.Push("m")
	s.Update(frame(0.6, &fakeActor{}))
	s.Push("other")
	s.Update(frame(0.25, &fakeActor{}))

	// other contributes 0.25, m keeps (1-0.25) * 0.85 of what reaches the base.
	want := (1 - other.BlendWeight()) * m.BlendWeight()
	s.Push("m")
	if got := m.BlendWeight(); !near(got, want) {
		t.Errorf("re-pushed weight = %v, want %v", got, want)
	}
}

func TestStackEvaluateBlendsBottomUp(t *testing.T) {
	base := newFixed("base", 0, BlendLinear, math.Vec3{X: 0})
	top := newFixed("top", 1, BlendLinear, math.Vec3{X: 100})
	s := NewStack(registryOf(base, top))
	s.Push("base")
	s.Push("top")

	v, ok := s.Evaluate(frame(0.25, &fakeActor{}))
	if !ok {
		t.Fatal("Evaluate() ok = false")
	}
	if !near(v.Location.X, 25) {
		t.Errorf("Location.X = %v, want 25", v.Location.X)
	}
}

func TestStackDeactivated(t *testing.T) {
	a := newFixed("a", 0, BlendLinear, math.Vec3{})
	s := NewStack(registryOf(a))
	s.Push("a")
	s.Deactivate()

	if _, ok := s.Evaluate(frame(0.1, &fakeActor{})); ok {
		t.Error("Evaluate() ok = true on deactivated stack")
	}
	s.Activate()
	if _, ok := s.Evaluate(frame(0.1, &fakeActor{})); !ok {
		t.Error("Evaluate() ok = false after Activate")
	}
}

func TestStackEmpty(t *testing.T) {
	s := NewStack(NewRegistry())
	if _, ok := s.Evaluate(frame(0.1, &fakeActor{})); ok {
		t.Error("Evaluate() ok = true on empty stack")
	}
	w, tag := s.TopLayerBlendInfo()
	if w != 1 || tag != "" {
		t.Errorf("TopLayerBlendInfo() = (%v, %q), want (1, \"\")", w, tag)
	}
}

func TestStackUnknownMode(t *testing.T) {
	s := NewStack(NewRegistry())
	if err := s.Push("nope"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Push(unknown) error = %v, want ErrUnknownMode", err)
	}
	if err := s.Push(""); err != nil {
		t.Errorf("Push(\"\") error = %v, want nil", err)
	}
}

func TestStackTopLayerBlendInfo(t *testing.T) {
	a := newFixed("a", 0, BlendLinear, math.Vec3{})
	b := newFixed("b", 1, BlendLinear, math.Vec3{})
	s := NewStack(registryOf(a, b))
	s.Push("a")
	s.Push("b")
	s.Update(frame(0.4, &fakeActor{}))

	w, tag := s.TopLayerBlendInfo()
	if !near(w, 0.4) || tag != "tag.b" {
		t.Errorf("TopLayerBlendInfo() = (%v, %q), want (0.4, \"tag.b\")", w, tag)
	}
}

func TestStackClear(t *testing.T) {
	a := newFixed("a", 0, BlendLinear, math.Vec3{})
	b := newFixed("b", 1, BlendLinear, math.Vec3{})
	s := NewStack(registryOf(a, b))
	s.Push("a")
	s.Push("b")

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
	if a.deactivations != 1 || b.deactivations != 1 {
		t.Errorf("deactivations a=%d b=%d, want 1 each", a.deactivations, b.deactivations)
	}
	if _, ok := s.Instance("a"); !ok {
		t.Error("Instance(a) dropped by Clear, want it pooled")
	}
}

func TestStackFocusRouting(t *testing.T) {
	a := newFixed("a", 0, BlendLinear, math.Vec3{})
	s := NewStack(registryOf(a))
	enemy := &fakeActor{name: "enemy"}

	if err := s.SetFocusActor("a", enemy); err != nil {
		t.Fatal(err)
	}
	if a.FocusActor() != enemy {
		t.Errorf("FocusActor() = %v, want enemy", a.FocusActor())
	}
	if err := s.SetFocusSocket("a", "head"); err != nil {
		t.Fatal(err)
	}
	if a.focusSocket != "head" {
		t.Errorf("focusSocket = %q, want head", a.focusSocket)
	}
	if err := s.SetFocusActor("missing", enemy); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("SetFocusActor(missing) error = %v, want ErrUnknownMode", err)
	}
}
