package camera

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/camrig/internal/curve"
	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/internal/world"
)

// ModeSelector picks the mode to push this frame. ok=false keeps the stack as is.
type ModeSelector func() (t ModeType, ok bool)

// Component is the camera attached to one viewed actor. It drives a Stack
// and applies per-frame extras on top of the blended view.
type Component struct {
	stack    *Stack
	target   world.Actor
	selector ModeSelector

	fovOffset float32
	shakes    []*Shake
	last      View

	log *zap.Logger
}

// NewComponent returns a component viewing target through stack and pushes
// defaultMode when it is not empty.
func NewComponent(stack *Stack, target world.Actor, defaultMode ModeType) (*Component, error) {
	if stack == nil {
		panic("camera: NewComponent with nil stack")
	}
	c := &Component{
		stack:  stack,
		target: target,
		last:   NewView(),
		log:    logger.Named("camera"),
	}
	if err := stack.Push(defaultMode); err != nil {
		return nil, fmt.Errorf("push default mode: %w", err)
	}
	return c, nil
}

// Stack returns the driven mode stack.
func (c *Component) Stack() *Stack { return c.stack }

// Target returns the viewed actor.
func (c *Component) Target() world.Actor { return c.target }

// SetTarget changes the viewed actor and snaps all smoothing.
func (c *Component) SetTarget(a world.Actor) {
	c.target = a
	c.stack.ResetInterpolation()
}

// SetModeSelector installs the per-frame mode selection hook.
func (c *Component) SetModeSelector(fn ModeSelector) { c.selector = fn }

// SetCameraMode pushes t.
func (c *Component) SetCameraMode(t ModeType) error { return c.stack.Push(t) }

// SetFocusActor sets the focus actor of mode t.
func (c *Component) SetFocusActor(t ModeType, a world.Actor) error {
	return c.stack.SetFocusActor(t, a)
}

// SetFocusActors sets the focus group of mode t. Groups of fewer than two
// actors are ignored.
func (c *Component) SetFocusActors(t ModeType, actors []world.Actor) error {
	valid := make([]world.Actor, 0, len(actors))
	for _, a := range actors {
		if a != nil {
			valid = append(valid, a)
		}
	}
	if len(valid) < 2 {
		return nil
	}
	return c.stack.SetFocusActors(t, valid)
}

// SetFocusSocket sets the look-at socket of mode t.
func (c *Component) SetFocusSocket(t ModeType, name string) error {
	return c.stack.SetFocusSocket(t, name)
}

// SetDynamicOffsetCurve hands a runtime offset curve to mode t.
func (c *Component) SetDynamicOffsetCurve(t ModeType, cv *curve.Vector) error {
	return c.stack.SetDynamicOffsetCurve(t, cv)
}

// AddFieldOfViewOffset widens the next evaluated view by deg. The offset
// lasts one frame.
func (c *Component) AddFieldOfViewOffset(deg float32) { c.fovOffset += deg }

// AddShake starts playing s on top of the view.
func (c *Component) AddShake(s *Shake) {
	if s != nil {
		c.shakes = append(c.shakes, s)
	}
}

// BlendInfo returns the weight and tag of the top mode.
func (c *Component) BlendInfo() (float32, string) { return c.stack.TopLayerBlendInfo() }

// LastView is the most recent evaluated view.
func (c *Component) LastView() View { return c.last }

// CameraView selects, evaluates and post-processes the view for this frame.
// f.Target is filled in from the component when unset.
func (c *Component) CameraView(f *Frame) (View, bool) {
	if f.Target == nil {
		f.Target = c.target
	}

	if c.stack.IsActive() && c.selector != nil {
		if t, ok := c.selector(); ok {
			if err := c.stack.Push(t); err != nil {
				c.log.Warn("mode selector picked an unusable mode", zap.String("mode", string(t)), zap.Error(err))
			}
		}
	}

	view, ok := c.stack.Evaluate(f)
	if !ok {
		return c.last, false
	}

	if p, isPawn := f.Target.(world.Pawn); isPawn {
		if ctrl := p.Controller(); ctrl != nil {
			ctrl.SetControlRotation(view.ControlRotation)
		}
	}

	view.FieldOfView += c.fovOffset
	c.fovOffset = 0

	live := c.shakes[:0]
	for _, s := range c.shakes {
		s.Apply(&view, f.DeltaTime)
		if !s.Done() {
			live = append(live, s)
		}
	}
	c.shakes = live

	c.last = view
	return view, true
}

// DebugLines describes the component and its stack.
func (c *Component) DebugLines() []string {
	name := "<none>"
	if c.target != nil {
		name = c.target.Name()
	}
	lines := []string{
		"camera component: " + name,
		"  " + c.last.String(),
	}
	return append(lines, c.stack.DebugLines()...)
}
