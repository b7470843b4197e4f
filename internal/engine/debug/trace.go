package debug

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// Trace writes debug primitives to a logger as debug-level events.
type Trace struct {
	log *zap.Logger
}

// NewTrace creates a trace sink on log, or on the "draw" logger when log is nil.
func NewTrace(log *zap.Logger) *Trace {
	if log == nil {
		log = logger.Named("draw")
	}
	return &Trace{log: log}
}

func (t *Trace) enabled() bool {
	return t.log.Core().Enabled(zapcore.DebugLevel)
}

// Line logs a segment.
func (t *Trace) Line(a, b math.Vec3, c world.Color) {
	if !t.enabled() {
		return
	}
	t.log.Debug("line", logger.Vec3("from", a), logger.Vec3("to", b), colorField(c))
}

// Sphere logs a sphere.
func (t *Trace) Sphere(center math.Vec3, radius float32, c world.Color) {
	if !t.enabled() {
		return
	}
	t.log.Debug("sphere", logger.Vec3("center", center), zap.Float32("radius", radius), colorField(c))
}

// String logs a label.
func (t *Trace) String(at math.Vec3, text string, c world.Color) {
	if !t.enabled() {
		return
	}
	t.log.Debug("string", logger.Vec3("at", at), zap.String("text", text), colorField(c))
}

func colorField(c world.Color) zap.Field {
	return zap.Uint32("color", uint32(c[0])<<24|uint32(c[1])<<16|uint32(c[2])<<8|uint32(c[3]))
}

// Multi fans primitives out to several sinks.
type Multi []world.DebugDraw

func (m Multi) Line(a, b math.Vec3, c world.Color) {
	for _, d := range m {
		d.Line(a, b, c)
	}
}

func (m Multi) Sphere(center math.Vec3, radius float32, c world.Color) {
	for _, d := range m {
		d.Sphere(center, radius, c)
	}
}

func (m Multi) String(at math.Vec3, text string, c world.Color) {
	for _, d := range m {
		d.String(at, text, c)
	}
}

var (
	_ world.DebugDraw = (*Trace)(nil)
	_ world.DebugDraw = Multi(nil)
)
