// Package main is the headless camera rig simulator. It loads a scene, plays
// a scripted player through it and logs the camera view.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/camrig/internal/config"
	"github.com/Faultbox/camrig/internal/engine/debug"
	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/internal/scene"
	"github.com/Faultbox/camrig/internal/sim"
	"github.com/Faultbox/camrig/internal/watch"
	"github.com/Faultbox/camrig/internal/world"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Draw traces are debug entries.
	if cfg.Sim.TraceDraw {
		cfg.Logging.Level = "debug"
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== camsim ===",
		zap.String("config", cfg.Path()),
		zap.String("scene", cfg.Sim.Scene),
		zap.String("mode", cfg.Camera.DefaultMode),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = simulate(ctx, cfg)
	if !cfg.Sim.Watch {
		if err != nil {
			logger.Error("simulation failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
	}

	if err := watchLoop(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watch failed", zap.Error(err))
		os.Exit(1)
	}
}

// simulate runs the default script once over the configured scene.
func simulate(ctx context.Context, cfg *config.Config) error {
	sc, err := scene.Load(cfg.Sim.Scene)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	rig, err := sim.NewRig(cfg.Camera, sc)
	if err != nil {
		return err
	}

	var dbg world.DebugDraw
	if cfg.Sim.TraceDraw {
		dbg = debug.NewTrace(nil)
	}

	samples, err := sim.Run(ctx, rig, sim.Options{
		Ticks:     cfg.Sim.Ticks,
		DeltaTime: cfg.Sim.DeltaTime(),
		LogEvery:  cfg.Sim.LogEvery,
		Script:    sim.DefaultScript(),
		Debug:     dbg,
	})
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.Int("ticks", cfg.Sim.Ticks),
		zap.Int("samples", len(samples)),
		zap.Int("penetrations", rig.Player().Penetrations()),
	}
	if n := len(samples); n > 0 {
		fields = append(fields, logger.Vec3("final", samples[n-1].View.Location), zap.String("tag", samples[n-1].Tag))
	}
	logger.Info("simulation complete", fields...)
	return nil
}

// watchLoop re-runs the simulation whenever the config or scene file changes.
func watchLoop(ctx context.Context, cfg *config.Config) error {
	files := []string{cfg.Sim.Scene}
	if p := cfg.Path(); p != "" {
		files = append(files, p)
	}

	w, err := watch.New(cfg.Sim.Debounce, files...)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching for changes", zap.Strings("files", files))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Info("change detected, re-running", zap.String("path", path))

			next, err := config.Load()
			if err != nil {
				logger.Error("reload config", zap.Error(err))
				continue
			}
			if err := simulate(ctx, next); err != nil {
				logger.Error("simulation failed", zap.Error(err))
			}
		}
	}
}
