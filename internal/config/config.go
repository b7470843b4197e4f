// Package config handles camera rig configuration loading and management.
package config

import "time"

// Config holds all settings.
type Config struct {
	Camera  CameraConfig  `yaml:"camera"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Sim     SimConfig     `yaml:"sim"`
	Logging LoggingConfig `yaml:"logging"`

	path string
}

// ViewerConfig holds display and input settings for the interactive viewer.
type ViewerConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Fullscreen       bool    `yaml:"fullscreen"`
	VSync            bool    `yaml:"vsync"`
	FPSLimit         int     `yaml:"fps_limit"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	ShowDebug        bool    `yaml:"show_debug"`
}

// SimConfig holds headless simulation settings.
type SimConfig struct {
	Scene     string        `yaml:"scene"`
	Ticks     int           `yaml:"ticks"`
	TickRate  int           `yaml:"tick_rate"` // Ticks per simulated second
	LogEvery  int           `yaml:"log_every"` // Log the view every N ticks, 0 = final only
	Watch     bool          `yaml:"watch"`
	Debounce  time.Duration `yaml:"debounce"`
	TraceDraw bool          `yaml:"trace_draw"` // Log debug-draw primitives
}

// DeltaTime returns the fixed simulation step in seconds.
func (s SimConfig) DeltaTime() float32 {
	if s.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float32(s.TickRate)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Camera: DefaultCameraConfig(),
		Viewer: ViewerConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			FPSLimit:         0,
			MouseSensitivity: 0.15,
			ShowDebug:        true,
		},
		Sim: SimConfig{
			Scene:    "scenes/arena.yaml",
			Ticks:    600,
			TickRate: 60,
			LogEvery: 60,
			Debounce: 200 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
