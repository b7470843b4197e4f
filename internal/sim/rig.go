// Package sim drives a camera component over a scene: a fixed-step rig
// shared by the headless runner and the viewer, plus timed input scripts.
package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/camrig/internal/camera"
	"github.com/Faultbox/camrig/internal/config"
	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/internal/scene"
	"github.com/Faultbox/camrig/internal/world"
)

// ErrNoPlayer is returned when the scene has no possessed character.
var ErrNoPlayer = errors.New("scene has no player")

// Input is the player's held input. Turn rates are degrees per second.
type Input struct {
	Forward float32
	Right   float32
	Pitch   float32
	Yaw     float32
}

// Rig owns a scene and the camera viewing its player.
type Rig struct {
	Scene  *scene.Scene
	Camera *camera.Component

	modes []camera.ModeType
	input Input
	rng   *rand.Rand
	time  float32
	log   *zap.Logger
}

// NewRig builds the mode registry from cc and attaches a camera to the
// scene's player.
func NewRig(cc config.CameraConfig, sc *scene.Scene) (*Rig, error) {
	player := sc.Player()
	if player == nil {
		return nil, ErrNoPlayer
	}

	reg, err := cc.Registry()
	if err != nil {
		return nil, fmt.Errorf("camera config: %w", err)
	}
	comp, err := camera.NewComponent(camera.NewStack(reg), player, camera.ModeType(cc.DefaultMode))
	if err != nil {
		return nil, err
	}

	r := &Rig{
		Scene:  sc,
		Camera: comp,
		rng:    rand.New(rand.NewPCG(1, 2)),
		log:    logger.Named("sim"),
	}
	for _, m := range cc.Modes {
		r.modes = append(r.modes, camera.ModeType(m.Type))
	}
	return r, nil
}

// Modes returns the configured mode types in config order.
func (r *Rig) Modes() []camera.ModeType {
	return r.modes
}

// Player returns the viewed character.
func (r *Rig) Player() *scene.Character {
	return r.Scene.Player()
}

// Time returns the simulated seconds so far.
func (r *Rig) Time() float32 {
	return r.time
}

// SetInput replaces the held input.
func (r *Rig) SetInput(in Input) {
	r.input = in
}

// Input returns the held input.
func (r *Rig) Input() Input {
	return r.input
}

// SetMode pushes t on the camera stack.
func (r *Rig) SetMode(t camera.ModeType) error {
	if err := r.Camera.SetCameraMode(t); err != nil {
		return err
	}
	r.log.Info("camera mode", zap.String("mode", string(t)))
	return nil
}

// Focus sets the focus actor of mode t by name. An empty name clears it.
func (r *Rig) Focus(t camera.ModeType, name string) error {
	if name == "" {
		return r.Camera.SetFocusActor(t, nil)
	}
	a, ok := r.Scene.Actor(name)
	if !ok {
		return fmt.Errorf("focus: unknown actor %q", name)
	}
	return r.Camera.SetFocusActor(t, a)
}

// FocusGroup frames every named actor in mode t.
func (r *Rig) FocusGroup(t camera.ModeType, names ...string) error {
	actors := make([]world.Actor, 0, len(names))
	for _, n := range names {
		a, ok := r.Scene.Actor(n)
		if !ok {
			return fmt.Errorf("focus group: unknown actor %q", n)
		}
		actors = append(actors, a)
	}
	return r.Camera.SetFocusActors(t, actors)
}

// Shake starts a camera shake.
func (r *Rig) Shake(s camera.ShakeSettings) {
	r.Camera.AddShake(camera.NewShake(s, r.rng))
}

// Tick applies input, steps the scene and evaluates the camera.
func (r *Rig) Tick(dt float32, dbg world.DebugDraw) (camera.View, bool) {
	player := r.Scene.Player()
	if ctrl := player.PlayerController(); ctrl != nil && (r.input.Pitch != 0 || r.input.Yaw != 0) {
		ctrl.AddInput(r.input.Pitch*dt, r.input.Yaw*dt)
	}
	if r.input.Forward != 0 || r.input.Right != 0 {
		player.Walk(r.input.Forward, r.input.Right, dt)
	}

	r.Scene.Step(dt)
	r.time += dt

	return r.Camera.CameraView(&camera.Frame{
		DeltaTime: dt,
		Target:    player,
		Query:     r.Scene,
		Debug:     dbg,
	})
}
