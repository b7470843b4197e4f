package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagScene      = flag.String("scene", "", "Path to scene file")
	flagMode       = flag.String("mode", "", "Default camera mode type")
	flagTicks      = flag.Int("ticks", 0, "Number of simulation ticks")
	flagWatch      = flag.Bool("watch", false, "Reload and re-run when config or scene files change")
	flagTraceDraw  = flag.Bool("trace-draw", false, "Log debug-draw primitives")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Viewer.ShowDebug = true
	}
	if *flagScene != "" {
		cfg.Sim.Scene = *flagScene
	}
	if *flagMode != "" {
		cfg.Camera.DefaultMode = *flagMode
	}
	if *flagTicks > 0 {
		cfg.Sim.Ticks = *flagTicks
	}
	if *flagWatch {
		cfg.Sim.Watch = true
	}
	if *flagTraceDraw {
		cfg.Sim.TraceDraw = true
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
