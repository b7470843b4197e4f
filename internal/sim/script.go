package sim

import (
	"sort"

	"github.com/Faultbox/camrig/internal/camera"
)

// Action is one scripted step, run once simulated time reaches At seconds.
type Action struct {
	At   float32
	Name string
	Do   func(r *Rig) error
}

// Script is a list of actions. Play sorts it by time.
type Script []Action

// Cursor plays a script against a rig as time advances.
type Cursor struct {
	actions Script
	next    int
}

// Play returns a cursor at the start of s.
func (s Script) Play() *Cursor {
	sorted := append(Script(nil), s...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Cursor{actions: sorted}
}

// Advance runs every pending action due at or before now. Errors do not stop
// later actions; they are returned with the failing action.
func (c *Cursor) Advance(r *Rig, now float32, onErr func(a Action, err error)) {
	for c.next < len(c.actions) && c.actions[c.next].At <= now {
		a := c.actions[c.next]
		c.next++
		if err := a.Do(r); err != nil && onErr != nil {
			onErr(a, err)
		}
	}
}

// Done reports whether every action has run.
func (c *Cursor) Done() bool {
	return c.next >= len(c.actions)
}

// Hold sets the held input.
func Hold(in Input) func(*Rig) error {
	return func(r *Rig) error {
		r.SetInput(in)
		return nil
	}
}

// Crouch toggles the player's crouch.
func Crouch(on bool) func(*Rig) error {
	return func(r *Rig) error {
		r.Player().SetCrouched(on)
		return nil
	}
}

// Mode pushes a camera mode.
func Mode(t camera.ModeType) func(*Rig) error {
	return func(r *Rig) error {
		return r.SetMode(t)
	}
}

// FocusOn sets mode t's focus actor and pushes t.
func FocusOn(t camera.ModeType, actor string) func(*Rig) error {
	return func(r *Rig) error {
		if err := r.Focus(t, actor); err != nil {
			return err
		}
		return r.SetMode(t)
	}
}

// Impact plays the impact shake.
func Impact() func(*Rig) error {
	return func(r *Rig) error {
		r.Shake(camera.ImpactShakeSettings())
		return nil
	}
}

// DefaultScript walks the player around the arena and cycles through the
// stock camera modes: orbit, crouch, aim, lock-on and an impact shake.
func DefaultScript() Script {
	return Script{
		{At: 0, Name: "walk", Do: Hold(Input{Forward: 1})},
		{At: 1, Name: "turn", Do: Hold(Input{Forward: 1, Yaw: 60})},
		{At: 2.5, Name: "stop", Do: Hold(Input{})},
		{At: 2.5, Name: "crouch", Do: Crouch(true)},
		{At: 3.5, Name: "stand", Do: Crouch(false)},
		{At: 3.5, Name: "aim", Do: Mode("aim")},
		{At: 5, Name: "release aim", Do: Mode("third_person")},
		{At: 5.5, Name: "lock on", Do: FocusOn("lock_on", "enemy")},
		{At: 6, Name: "strafe", Do: Hold(Input{Right: 1})},
		{At: 7.5, Name: "hit", Do: Impact()},
		{At: 8, Name: "stop", Do: Hold(Input{})},
		{At: 8.5, Name: "release lock", Do: Mode("third_person")},
		{At: 9, Name: "back up", Do: Hold(Input{Forward: -1, Pitch: -10})},
	}
}
