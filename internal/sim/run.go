package sim

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/camrig/internal/camera"
	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/internal/world"
)

// Options configure a headless run.
type Options struct {
	Ticks     int
	DeltaTime float32
	// LogEvery samples the view every N ticks. The final tick is always sampled.
	LogEvery int
	Script   Script
	Debug    world.DebugDraw
}

// Sample is the camera state recorded at one tick.
type Sample struct {
	Tick   int
	Time   float32
	View   camera.View
	Tag    string
	Weight float32
}

// Run steps the rig for opts.Ticks ticks, playing the script, and returns
// the sampled views. It stops early with ctx.Err() when ctx is done.
func Run(ctx context.Context, r *Rig, opts Options) ([]Sample, error) {
	cursor := opts.Script.Play()
	var samples []Sample

	for tick := range opts.Ticks {
		if err := ctx.Err(); err != nil {
			return samples, err
		}

		cursor.Advance(r, r.Time(), func(a Action, err error) {
			r.log.Warn("script action failed", zap.String("action", a.Name), zap.Error(err))
		})

		view, ok := r.Tick(opts.DeltaTime, opts.Debug)
		if !ok {
			continue
		}

		last := tick == opts.Ticks-1
		if !last && (opts.LogEvery <= 0 || (tick+1)%opts.LogEvery != 0) {
			continue
		}

		weight, tag := r.Camera.BlendInfo()
		s := Sample{Tick: tick + 1, Time: r.Time(), View: view, Tag: tag, Weight: weight}
		samples = append(samples, s)

		r.log.Info("view",
			zap.Int("tick", s.Tick),
			zap.Float32("time", s.Time),
			logger.Vec3("location", view.Location),
			logger.Rotator("rotation", view.Rotation),
			zap.Float32("fov", view.FieldOfView),
			zap.String("tag", tag),
			zap.Float32("weight", weight),
			zap.Bool("penetrating", r.Player().CameraPenetrating()),
		)
		if ce := r.log.Check(zap.DebugLevel, "camera state"); ce != nil {
			ce.Write(zap.Strings("lines", r.Camera.DebugLines()))
		}
	}
	return samples, nil
}
