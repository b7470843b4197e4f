package sim

import (
	"github.com/Faultbox/camrig/internal/camera"
	"github.com/Faultbox/camrig/internal/engine/debug"
	"github.com/Faultbox/camrig/internal/scene"
	"github.com/Faultbox/camrig/internal/world"
)

var (
	colorBlocker = world.Color{150, 150, 160, 255}
	colorVolume  = world.Color{80, 160, 255, 120}
	colorOther   = world.Color{230, 120, 60, 255}
	colorCamera  = world.Color{255, 255, 255, 200}
)

// DrawScene records wireframes for every blocker and character. The player
// turns red while the camera is inside it.
func DrawScene(rec *debug.Recorder, sc *scene.Scene) {
	for _, b := range sc.Blockers() {
		c := colorBlocker
		if b.IsCameraBlockingVolume() {
			c = colorVolume
		}
		switch b.Shape() {
		case scene.ShapeSphere:
			rec.Sphere(b.Location(), b.Radius(), c)
		case scene.ShapeCapsule:
			rec.Capsule(b.Location(), b.Radius(), b.HalfHeight(), c)
		default:
			rec.Box(b.Bounds(), c)
		}
	}

	player := sc.Player()
	for _, ch := range sc.Characters() {
		c := colorOther
		if ch == player {
			c = world.ColorGreen
			if ch.CameraPenetrating() {
				c = world.ColorRed
			}
		}
		rec.Capsule(ch.Location(), ch.Radius, ch.HalfHeight(), c)
		rec.String(ch.ViewLocation(), ch.Name(), c)
	}
}

// DrawView records the camera frustum of view, seen from outside.
func DrawView(rec *debug.Recorder, view camera.View, aspect float32) {
	rec.Frustum(view.Location, view.Rotation, view.FieldOfView, aspect, 100, colorCamera)
	rec.Line(view.Location, view.Location.Add(view.Rotation.Vector().Scale(400)), world.ColorYellow)
}
