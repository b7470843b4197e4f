package camera

import (
	gomath "math"
	"math/rand/v2"

	"github.com/Faultbox/camrig/pkg/math"
)

// Waveform selects an oscillator shape.
type Waveform uint8

const (
	WaveSine Waveform = iota
	WaveNoise
)

// Oscillator is one shaking channel. Its phase advances by Frequency
// radians per second.
type Oscillator struct {
	Amplitude float32
	Frequency float32
	Waveform  Waveform
	// RandomPhase starts the oscillator at a random point of its cycle.
	RandomPhase bool

	offset float32
}

func (o *Oscillator) start(rng *rand.Rand) {
	o.offset = 0
	if o.RandomPhase && rng != nil {
		o.offset = rng.Float32() * 2 * gomath.Pi
	}
}

func (o *Oscillator) advance(dt float32) float32 {
	if o.Amplitude == 0 {
		return 0
	}
	o.offset += dt * o.Frequency
	if o.Waveform == WaveNoise {
		return o.Amplitude * noise1D(o.offset)
	}
	return o.Amplitude * float32(gomath.Sin(float64(o.offset)))
}

// ShakeSettings describe an oscillating shake.
type ShakeSettings struct {
	Duration     float32
	BlendInTime  float32
	BlendOutTime float32
	Pitch        Oscillator
	Yaw          Oscillator
	LocY         Oscillator
	LocZ         Oscillator
}

// ImpactShakeSettings is the short jolt played when the character is hit.
func ImpactShakeSettings() ShakeSettings {
	return ShakeSettings{
		Duration:     0.5,
		BlendInTime:  0.1,
		BlendOutTime: 0.2,
		Pitch:        Oscillator{Amplitude: 3, Frequency: 3, Waveform: WaveNoise, RandomPhase: true},
		LocY:         Oscillator{Amplitude: 5, Frequency: 3, RandomPhase: true},
		LocZ:         Oscillator{Amplitude: 5, Frequency: 3, RandomPhase: true},
	}
}

// Shake is a running shake instance.
type Shake struct {
	ShakeSettings
	elapsed float32
}

// NewShake starts a shake. rng seeds the random phases and may be nil.
func NewShake(s ShakeSettings, rng *rand.Rand) *Shake {
	sh := &Shake{ShakeSettings: s}
	sh.Pitch.start(rng)
	sh.Yaw.start(rng)
	sh.LocY.start(rng)
	sh.LocZ.start(rng)
	return sh
}

// Done reports whether the shake has run its duration.
func (s *Shake) Done() bool {
	return s.Duration > 0 && s.elapsed >= s.Duration
}

func (s *Shake) weight() float32 {
	w := float32(1)
	if s.BlendInTime > 0 && s.elapsed < s.BlendInTime {
		w = s.elapsed / s.BlendInTime
	}
	if s.Duration > 0 && s.BlendOutTime > 0 {
		if left := s.Duration - s.elapsed; left < s.BlendOutTime {
			w = min(w, left/s.BlendOutTime)
		}
	}
	return math.Clamp(w, 0, 1)
}

// Apply advances the shake by dt and offsets view. Location offsets are in
// view space.
func (s *Shake) Apply(view *View, dt float32) {
	if s.Done() {
		return
	}
	s.elapsed += dt
	w := s.weight()

	loc := math.Vec3{Y: s.LocY.advance(dt), Z: s.LocZ.advance(dt)}.Scale(w)
	rot := math.Rotator{Pitch: s.Pitch.advance(dt), Yaw: s.Yaw.advance(dt)}.Scale(w)

	view.Location = view.Location.Add(view.Rotation.RotateVector(loc))
	view.Rotation = view.Rotation.Add(rot)
}

// noise1D is smooth gradient noise in [-1, 1] with integer lattice points at zero.
func noise1D(x float32) float32 {
	i := gomath.Floor(float64(x))
	f := float32(float64(x) - i)
	g0 := lattice(int64(i))
	g1 := lattice(int64(i) + 1)
	u := f * f * f * (f*(f*6-15) + 10)
	return 2 * math.Lerp(g0*f, g1*(f-1), u)
}

// lattice hashes n into a gradient in [-1, 1].
func lattice(n int64) float32 {
	h := uint64(n) * 0x9E3779B97F4A7C15
	h ^= h >> 32
	h *= 0xD6E8FEB86659FD93
	h ^= h >> 32
	return float32(h&0xFFFF)/0x7FFF - 1
}
