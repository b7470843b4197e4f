package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/camrig/pkg/math"
)

type vec3Marshaler math.Vec3

func (v vec3Marshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddFloat32("x", v.X)
	enc.AddFloat32("y", v.Y)
	enc.AddFloat32("z", v.Z)
	return nil
}

type rotatorMarshaler math.Rotator

func (r rotatorMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddFloat32("pitch", r.Pitch)
	enc.AddFloat32("yaw", r.Yaw)
	enc.AddFloat32("roll", r.Roll)
	return nil
}

// Vec3 logs a vector as {x, y, z}.
func Vec3(key string, v math.Vec3) zap.Field {
	return zap.Object(key, vec3Marshaler(v))
}

// Rotator logs a rotator as {pitch, yaw, roll}.
func Rotator(key string, r math.Rotator) zap.Field {
	return zap.Object(key, rotatorMarshaler(r))
}
