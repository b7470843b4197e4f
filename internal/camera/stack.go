package camera

import (
	"go.uber.org/zap"

	"github.com/Faultbox/camrig/internal/curve"
	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/internal/world"
)

// ModeID indexes a mode instance in a stack's arena.
type ModeID int

// Stack owns one instance per mode type and blends the active ones.
//
// active[0] is the top (highest priority). The bottom active entry always
// has weight 1. Instances are created on first push and live for the
// lifetime of the stack.
type Stack struct {
	registry  *Registry
	instances []Mode
	ids       map[ModeType]ModeID
	active    []ModeID
	isActive  bool

	log *zap.Logger
}

// NewStack returns an active, empty stack resolving modes through reg.
func NewStack(reg *Registry) *Stack {
	if reg == nil {
		panic("camera: NewStack with nil registry")
	}
	return &Stack{
		registry: reg,
		ids:      make(map[ModeType]ModeID),
		isActive: true,
		log:      logger.Named("camera"),
	}
}

// Activate resumes evaluation.
func (s *Stack) Activate() { s.isActive = true }

// Deactivate stops evaluation. Evaluate reports false until reactivated.
func (s *Stack) Deactivate() { s.isActive = false }

// IsActive reports whether the stack evaluates.
func (s *Stack) IsActive() bool { return s.isActive }

// Len is the number of active entries.
func (s *Stack) Len() int { return len(s.active) }

// Active returns the active modes, top first.
func (s *Stack) Active() []Mode {
	out := make([]Mode, len(s.active))
	for i, id := range s.active {
		out[i] = s.instances[id]
	}
	return out
}

// Instance returns the pooled instance of t, if it was ever created.
func (s *Stack) Instance(t ModeType) (Mode, bool) {
	id, ok := s.ids[t]
	if !ok {
		return nil, false
	}
	return s.instances[id], true
}

func (s *Stack) instance(t ModeType) (ModeID, error) {
	if id, ok := s.ids[t]; ok {
		return id, nil
	}
	m, err := s.registry.New(t)
	if err != nil {
		return 0, err
	}
	id := ModeID(len(s.instances))
	s.instances = append(s.instances, m)
	s.ids[t] = id
	return id, nil
}

// Push makes t the top mode. Pushing the current top does nothing.
//
// A mode already further down the stack is moved to the top and starts from
// the share of the final view it was contributing, so re-promoting a mode
// that is still blending does not pop.
func (s *Stack) Push(t ModeType) error {
	if t == "" {
		return nil
	}
	id, err := s.instance(t)
	if err != nil {
		return err
	}
	if len(s.active) > 0 && s.active[0] == id {
		return nil
	}
	mode := s.instances[id]

	existingIndex := -1
	existingContribution := float32(1)
	for i, aid := range s.active {
		m := s.instances[aid]
		if aid == id {
			existingIndex = i
			existingContribution *= m.BlendWeight()
			break
		}
		existingContribution *= 1 - m.BlendWeight()
	}

	if existingIndex >= 0 {
		s.active = append(s.active[:existingIndex], s.active[existingIndex+1:]...)
	} else {
		existingContribution = 0
	}

	shouldBlend := mode.BlendTime() > 0 && len(s.active) > 0
	if shouldBlend {
		mode.SetBlendWeight(existingContribution)
	} else {
		mode.SetBlendWeight(1)
	}

	s.active = append([]ModeID{id}, s.active...)
	s.instances[s.active[len(s.active)-1]].SetBlendWeight(1)

	if existingIndex < 0 {
		mode.OnActivation()
	}

	s.log.Debug("push camera mode",
		zap.String("mode", string(t)),
		zap.Bool("repromoted", existingIndex >= 0),
		zap.Float32("weight", mode.BlendWeight()),
		zap.Int("depth", len(s.active)),
	)
	return nil
}

// Evaluate updates and blends the stack. It reports false when the stack is
// deactivated or empty.
func (s *Stack) Evaluate(f *Frame) (View, bool) {
	if !s.isActive {
		return View{}, false
	}
	s.Update(f)
	return s.Blend()
}

// Update advances every active mode top-down, then retires the entries
// beneath the first one that is fully blended in.
func (s *Stack) Update(f *Frame) {
	if len(s.active) == 0 {
		return
	}

	removeCount := 0
	removeIndex := -1
	for i, id := range s.active {
		m := s.instances[id]
		UpdateCameraMode(m, f)

		if m.BlendWeight() >= 1 {
			removeIndex = i + 1
			removeCount = len(s.active) - removeIndex
			break
		}
	}

	if removeCount > 0 {
		for _, id := range s.active[removeIndex:] {
			m := s.instances[id]
			m.OnDeactivation()
			s.log.Debug("retire camera mode", zap.String("mode", string(m.Type())))
		}
		s.active = s.active[:removeIndex]
	}
}

// Blend folds the active views from the bottom up without updating.
func (s *Stack) Blend() (View, bool) {
	if len(s.active) == 0 {
		return View{}, false
	}
	last := len(s.active) - 1
	out := s.instances[s.active[last]].View()
	for i := last - 1; i >= 0; i-- {
		m := s.instances[s.active[i]]
		out.Blend(m.View(), m.BlendWeight())
	}
	return out, true
}

// Clear drops every active entry immediately, deactivating each.
func (s *Stack) Clear() {
	for _, id := range s.active {
		s.instances[id].OnDeactivation()
	}
	s.active = s.active[:0]
}

// TopLayerBlendInfo returns the weight and tag of the top mode. An empty
// stack reports a settled, untagged layer.
func (s *Stack) TopLayerBlendInfo() (weight float32, tag string) {
	if len(s.active) == 0 {
		return 1, ""
	}
	top := s.instances[s.active[0]]
	return top.BlendWeight(), top.Tag()
}

func (s *Stack) withMode(t ModeType, fn func(Mode)) error {
	id, err := s.instance(t)
	if err != nil {
		return err
	}
	fn(s.instances[id])
	return nil
}

// SetFocusActor sets the focus actor of mode t, creating it if needed.
func (s *Stack) SetFocusActor(t ModeType, a world.Actor) error {
	return s.withMode(t, func(m Mode) { m.SetFocusActor(a) })
}

// SetFocusActors sets the focus group of mode t.
func (s *Stack) SetFocusActors(t ModeType, actors []world.Actor) error {
	return s.withMode(t, func(m Mode) { m.SetFocusActors(actors) })
}

// SetFocusSocket sets the look-at socket of mode t.
func (s *Stack) SetFocusSocket(t ModeType, name string) error {
	return s.withMode(t, func(m Mode) { m.SetFocusSocket(name) })
}

// SetDynamicOffsetCurve hands c to mode t. Modes without a dynamic offset
// ignore it.
func (s *Stack) SetDynamicOffsetCurve(t ModeType, c *curve.Vector) error {
	return s.withMode(t, func(m Mode) {
		if setter, ok := m.(OffsetCurveSetter); ok {
			setter.SetDynamicOffsetCurve(c)
		}
	})
}

// ResetInterpolation snaps every active mode on its next update.
func (s *Stack) ResetInterpolation() {
	for _, id := range s.active {
		s.instances[id].ResetInterpolation()
	}
}

// DebugLines dumps the stack top-down.
func (s *Stack) DebugLines() []string {
	lines := []string{"camera mode stack:"}
	for _, id := range s.active {
		lines = append(lines, s.instances[id].DebugLines()...)
	}
	return lines
}
