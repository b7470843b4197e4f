// Package viewer implements the interactive camera rig viewer: an SDL window
// rendering the scene as wireframes through the rig's camera.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/camrig/internal/camera"
	"github.com/Faultbox/camrig/internal/config"
	"github.com/Faultbox/camrig/internal/engine/debug"
	"github.com/Faultbox/camrig/internal/engine/input"
	"github.com/Faultbox/camrig/internal/engine/orbit"
	"github.com/Faultbox/camrig/internal/engine/picking"
	"github.com/Faultbox/camrig/internal/engine/renderer"
	"github.com/Faultbox/camrig/internal/engine/window"
	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/internal/scene"
	"github.com/Faultbox/camrig/internal/sim"
	"github.com/Faultbox/camrig/internal/watch"
	"github.com/Faultbox/camrig/internal/world"
)

// maxDeltaTime caps a frame's step after stalls such as window drags.
const maxDeltaTime = 0.1

// Viewer is the main viewer instance.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	watcher  *watch.Watcher

	rig      *sim.Rig
	recorder *debug.Recorder
	inspect  *orbit.Camera

	inspecting bool
	captured   bool
	showDebug  bool

	log *zap.Logger
}

// New creates the window, renderer and rig.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:       cfg,
		recorder:  debug.NewRecorder(),
		inspect:   orbit.New(),
		showDebug: cfg.Viewer.ShowDebug,
		log:       logger.Named("viewer"),
	}

	if err := v.loadRig(); err != nil {
		return nil, err
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "camrig",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come AFTER the window, since the OpenGL context must exist
	w, h := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.setCaptured(true)

	if cfg.Sim.Watch {
		files := []string{cfg.Sim.Scene}
		if p := cfg.Path(); p != "" {
			files = append(files, p)
		}
		v.watcher, err = watch.New(cfg.Sim.Debounce, files...)
		if err != nil {
			v.log.Warn("file watching disabled", zap.Error(err))
		}
	}

	v.log.Info("viewer initialized",
		zap.String("scene", cfg.Sim.Scene),
		zap.Int("modes", len(v.rig.Modes())),
	)
	return v, nil
}

// loadRig (re)builds the scene and camera rig from the current config.
func (v *Viewer) loadRig() error {
	sc, err := scene.Load(v.cfg.Sim.Scene)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	rig, err := sim.NewRig(v.cfg.Camera, sc)
	if err != nil {
		return err
	}
	v.rig = rig

	if blockers := sc.Blockers(); len(blockers) > 0 {
		bounds := blockers[0].Bounds()
		for _, b := range blockers[1:] {
			bounds = bounds.Union(b.Bounds())
		}
		v.inspect.FitToBounds(bounds)
	}
	return nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := min(float32(now.Sub(lastTime).Seconds()), maxDeltaTime)
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.pollWatcher()

		view := v.update(dt)
		v.render(view)

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			weight, tag := v.rig.Camera.BlendInfo()
			v.window.SetTitle(fmt.Sprintf("camrig | %s %.2f | %d fps", tag, weight, frameCount))
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) setCaptured(on bool) {
	v.captured = on
	v.window.SetMouseCaptured(on)
}

// handleEvents applies one-shot key and mouse actions.
func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.renderer.Resize(e.Width, e.Height)

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				if !v.captured {
					v.setCaptured(true)
					continue
				}
				v.pick()
			}

		case input.EventKeyDown:
			v.handleKey(e.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		if v.captured {
			v.setCaptured(false)
			return
		}
		v.running = false
	case sdl.SCANCODE_C:
		p := v.rig.Player()
		p.SetCrouched(!p.IsCrouched())
	case sdl.SCANCODE_F:
		v.toggleFocus()
	case sdl.SCANCODE_G:
		v.focusGroup()
	case sdl.SCANCODE_SPACE:
		v.rig.Shake(camera.ImpactShakeSettings())
	case sdl.SCANCODE_TAB:
		v.inspecting = !v.inspecting
	case sdl.SCANCODE_F1:
		v.showDebug = !v.showDebug
	case sdl.SCANCODE_R:
		v.reload("manual")
	default:
		if key >= sdl.SCANCODE_1 && key <= sdl.SCANCODE_9 {
			v.selectMode(int(key - sdl.SCANCODE_1))
		}
	}
}

func (v *Viewer) selectMode(i int) {
	modes := v.rig.Modes()
	if i >= len(modes) {
		return
	}
	if err := v.rig.SetMode(modes[i]); err != nil {
		v.log.Warn("set mode", zap.String("mode", string(modes[i])), zap.Error(err))
	}
}

// topMode returns the type of the top mode on the stack.
func (v *Viewer) topMode() (camera.ModeType, bool) {
	active := v.rig.Camera.Stack().Active()
	if len(active) == 0 {
		return "", false
	}
	return active[0].Type(), true
}

// toggleFocus focuses the top mode on the nearest other character, or clears
// an existing focus.
func (v *Viewer) toggleFocus() {
	t, ok := v.topMode()
	if !ok {
		return
	}
	m, _ := v.rig.Camera.Stack().Instance(t)
	if fa, ok := m.(interface{ FocusActor() world.Actor }); ok && fa.FocusActor() != nil {
		v.setFocus(t, "")
		return
	}
	others := v.rig.Scene.Others()
	if len(others) == 0 {
		return
	}
	v.setFocus(t, others[0].Name())
}

func (v *Viewer) setFocus(t camera.ModeType, name string) {
	if err := v.rig.Focus(t, name); err != nil {
		v.log.Warn("focus", zap.String("actor", name), zap.Error(err))
		return
	}
	v.log.Info("focus", zap.String("mode", string(t)), zap.String("actor", name))
}

func (v *Viewer) focusGroup() {
	t, ok := v.topMode()
	if !ok {
		return
	}
	var names []string
	for _, a := range v.rig.Scene.Others() {
		names = append(names, a.Name())
	}
	if err := v.rig.FocusGroup(t, names...); err != nil {
		v.log.Warn("focus group", zap.Error(err))
	}
}

// pick focuses the actor under the screen center.
func (v *Viewer) pick() {
	w, h := v.window.GetSize()
	view := v.rig.Camera.LastView()
	ray := picking.ScreenToRay(float32(w)/2, float32(h)/2, float32(w), float32(h), view.Location, view.Rotation, view.FieldOfView)

	a, ok := v.rig.Scene.Pick(ray)
	if !ok {
		return
	}
	v.log.Info("picked", zap.String("actor", a.Name()))
	if _, isChar := a.(*scene.Character); isChar && a != world.Actor(v.rig.Player()) {
		if t, ok := v.topMode(); ok {
			v.setFocus(t, a.Name())
		}
	}
}

func (v *Viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	select {
	case path, ok := <-v.watcher.Events:
		if ok {
			v.reload(path)
		}
	case err, ok := <-v.watcher.Errors:
		if ok {
			v.log.Warn("watch error", zap.Error(err))
		}
	default:
	}
}

// reload re-reads the config file and scene, keeping the old rig on error.
func (v *Viewer) reload(reason string) {
	if p := v.cfg.Path(); p != "" {
		cfg, err := config.LoadFile(p)
		if err != nil {
			v.log.Error("reload config", zap.Error(err))
			return
		}
		cfg.Sim.Scene = v.cfg.Sim.Scene
		cfg.Sim.Watch = v.cfg.Sim.Watch
		v.cfg = cfg
	}

	old := v.rig
	if err := v.loadRig(); err != nil {
		v.log.Error("reload scene", zap.Error(err))
		v.rig = old
		return
	}
	v.log.Info("reloaded", zap.String("reason", reason))
}

// update applies held input and ticks the rig.
func (v *Viewer) update(dt float32) camera.View {
	in := sim.Input{}
	if v.inspecting {
		v.updateInspect()
	} else if v.captured {
		in.Forward = v.input.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S)
		in.Right = v.input.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A)

		// Mouse turns by pixels, not by time, so convert to a rate.
		dx, dy := v.input.MouseDelta()
		if dt > 0 {
			sens := v.cfg.Viewer.MouseSensitivity
			in.Yaw = dx * sens / dt
			in.Pitch = -dy * sens / dt
		}
	}
	v.rig.SetInput(in)

	v.recorder.Reset()
	var dbg world.DebugDraw
	if v.showDebug {
		dbg = v.recorder
	}
	view, _ := v.rig.Tick(dt, dbg)
	return view
}

func (v *Viewer) updateInspect() {
	if v.captured || v.input.IsButtonHeld(sdl.BUTTON_RIGHT) {
		dx, dy := v.input.MouseDelta()
		v.inspect.HandleDrag(dx, dy)
	}
	if w := v.input.Wheel(); w != 0 {
		v.inspect.HandleZoom(w)
	}
	v.inspect.HandleMovement(
		v.input.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
		v.input.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A),
		v.input.Axis(sdl.SCANCODE_E, sdl.SCANCODE_Q),
	)
}

// render draws the scene and debug primitives through the rig camera, or
// through the inspection camera with the rig's frustum visible.
func (v *Viewer) render(view camera.View) {
	sim.DrawScene(v.recorder, v.rig.Scene)

	v.renderer.Begin()
	if v.inspecting {
		sim.DrawView(v.recorder, view, v.renderer.Aspect())
		v.renderer.SetViewMatrix(v.inspect.ViewMatrix(), camera.DefaultFOV)
	} else {
		v.renderer.SetView(view.Location, view.Rotation, view.FieldOfView)
	}
	v.renderer.DrawLines(v.recorder.Vertices())
	v.renderer.End()
}
