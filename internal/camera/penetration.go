package camera

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/camrig/internal/logger"
	"github.com/Faultbox/camrig/internal/world"
	"github.com/Faultbox/camrig/pkg/math"
)

// unblockedThreshold is how close to 1 a blocked fraction may get before the
// camera is treated as fully unblocked.
const unblockedThreshold = 0.00001

// Feeler is one sphere swept from the safe anchor toward the camera.
type Feeler struct {
	// Rotation offsets the feeler from the anchor-to-camera ray. Yaw turns
	// around the ray's up axis and pitch around its right axis.
	Rotation    math.Rotator
	WorldWeight float32
	PawnWeight  float32
	Radius      float32
	// TraceInterval is how many frames to skip after a miss.
	TraceInterval int

	FramesUntilNextTrace int
}

// DefaultFeelers returns the stock feeler fan: a center ray that sets the hard
// limit plus side and vertical whiskers that predict upcoming occlusion.
func DefaultFeelers() []Feeler {
	return []Feeler{
		{Rotation: math.Rotator{}, WorldWeight: 1, PawnWeight: 1, Radius: 14, TraceInterval: 0},
		{Rotation: math.Rotator{Yaw: 16}, WorldWeight: 0.75, PawnWeight: 0.75, TraceInterval: 3},
		{Rotation: math.Rotator{Yaw: -16}, WorldWeight: 0.75, PawnWeight: 0.75, TraceInterval: 3},
		{Rotation: math.Rotator{Yaw: 32}, WorldWeight: 0.5, PawnWeight: 0.5, TraceInterval: 5},
		{Rotation: math.Rotator{Yaw: -32}, WorldWeight: 0.5, PawnWeight: 0.5, TraceInterval: 5},
		{Rotation: math.Rotator{Pitch: 20}, WorldWeight: 1, PawnWeight: 1, TraceInterval: 4},
		{Rotation: math.Rotator{Pitch: -20}, WorldWeight: 0.5, PawnWeight: 0.5, TraceInterval: 4},
	}
}

// PenetrationSettings configure the Avoider.
type PenetrationSettings struct {
	Enabled bool
	// Predictive enables the side feelers. Without it only feeler 0 runs.
	Predictive bool
	// IgnorePawns skips pawn hits, adding each hit pawn to the ignore list for
	// the rest of the tick. When false, pawn hits count with PawnWeight.
	IgnorePawns  bool
	BlendInTime  float32
	BlendOutTime float32
	// PushOutDistance is subtracted from every hit distance so the camera
	// stays a little in front of the blocking surface.
	PushOutDistance float32
	// ReportPercent notifies camera assists when the camera is pulled in
	// further than this fraction. Zero disables reporting.
	ReportPercent float32
	Channel       world.Channel
	Feelers       []Feeler
	DrawDebug     bool
}

// DefaultPenetrationSettings returns the stock avoidance tuning.
func DefaultPenetrationSettings() PenetrationSettings {
	return PenetrationSettings{
		Enabled:         true,
		Predictive:      true,
		IgnorePawns:     true,
		BlendInTime:     0.1,
		BlendOutTime:    0.15,
		PushOutDistance: 2,
		Channel:         world.ChannelCamera,
		Feelers:         DefaultFeelers(),
	}
}

// Avoider keeps the camera out of geometry between the target and the
// desired camera location.
type Avoider struct {
	settings PenetrationSettings
	feelers  []Feeler

	blockedPct float32
	hardPct    float32
	softPct    float32
	hits       []world.Actor

	log *zap.Logger
}

// NewAvoider returns an unblocked avoider.
func NewAvoider(s PenetrationSettings) *Avoider {
	return &Avoider{
		settings:   s,
		feelers:    append([]Feeler(nil), s.Feelers...),
		blockedPct: 1,
		hardPct:    1,
		softPct:    1,
		log:        logger.Named("penetration"),
	}
}

// Settings returns the avoider configuration.
func (a *Avoider) Settings() PenetrationSettings { return a.settings }

// BlockedPct is the smoothed fraction of the anchor-to-camera line that is
// clear. 1 means unblocked.
func (a *Avoider) BlockedPct() float32 { return a.blockedPct }

// HardPct is the last value reported by feeler 0.
func (a *Avoider) HardPct() float32 { return a.hardPct }

// SoftPct is the last value reported by the side feelers.
func (a *Avoider) SoftPct() float32 { return a.softPct }

// Feelers exposes the live feeler state.
func (a *Avoider) Feelers() []Feeler { return a.feelers }

// Update pulls view.Location toward the target when the line to it is blocked.
// Only the target itself may name a proxy to avoid in its place. It is skipped
// when the avoidance target has no collision primitive.
func (a *Avoider) Update(f *Frame, view *View, reset bool) {
	if !a.settings.Enabled || len(a.feelers) == 0 {
		return
	}
	mustTarget(f.Target)
	if f.Query == nil {
		a.log.Debug("no scene query, skipping penetration avoidance")
		return
	}

	ppActor := f.Target
	if assist, ok := f.Target.(world.CameraAssist); ok {
		if proxy, ok := assist.PreventPenetrationTarget(); ok && proxy != nil {
			ppActor = proxy
		}
	}

	safe, ok := a.SafeLocation(ppActor, *view)
	if !ok {
		a.log.Debug("target has no collision primitive, skipping penetration avoidance",
			zap.String("target", ppActor.Name()))
		return
	}

	singleRay := !a.settings.Predictive
	view.Location = a.PreventPenetration(f, f.Target, safe, view.Location, singleRay, reset)

	if a.blockedPct < a.settings.ReportPercent {
		assists := cameraAssists(f.Target)
		if proxyAssist, ok := ppActor.(world.CameraAssist); ok && ppActor != f.Target {
			assists = append(assists, proxyAssist)
		}
		for _, assist := range assists {
			assist.OnCameraPenetratingTarget()
		}
	}
}

// cameraAssists collects the assists of the target's controller and the
// target itself, in that order.
func cameraAssists(target world.Actor) []world.CameraAssist {
	var out []world.CameraAssist
	if p, ok := target.(world.Pawn); ok {
		if c, ok := p.Controller().(world.CameraAssist); ok {
			out = append(out, c)
		}
	}
	if a, ok := target.(world.CameraAssist); ok {
		out = append(out, a)
	}
	return out
}

// SafeLocation computes the anchor the feelers are swept from: the point of
// the actor's collision closest to the aim line, with the query point held
// inside the capsule height and pushed off the aim line by the center feeler
// radius plus the push-out distance.
func (a *Avoider) SafeLocation(actor world.Actor, view View) (math.Vec3, bool) {
	col, ok := actor.(world.Collidable)
	if !ok {
		return math.Vec3{}, false
	}
	prim := col.CollisionPrimitive()
	if prim == nil {
		return math.Vec3{}, false
	}

	center := actor.Location()
	closestOnLine, _ := math.ClosestPointOnLine(center, view.Rotation.Vector(), view.Location)

	pushIn := a.feelers[0].Radius + a.settings.PushOutDistance
	maxHalfHeight := max(prim.SimpleHalfHeight()-pushIn, 0)
	query := closestOnLine
	query.Z = math.Clamp(query.Z, center.Z-maxHalfHeight, center.Z+maxHalfHeight)

	safe, _ := prim.ClosestPoint(query)
	safe = safe.Add(safe.Sub(closestOnLine).SafeNormal().Scale(pushIn))
	return safe, true
}

// PreventPenetration sweeps the feelers from safe toward desired and returns
// the adjusted camera location. singleRay limits the pass to feeler 0 and
// reset snaps the smoothed value.
func (a *Avoider) PreventPenetration(f *Frame, target world.Actor, safe, desired math.Vec3, singleRay, reset bool) math.Vec3 {
	hard := a.blockedPct
	soft := a.blockedPct

	baseRay := desired.Sub(safe)
	_, right, up := baseRay.Rotation().Axes()

	thisFrame := float32(1)
	count := len(a.feelers)
	if singleRay {
		count = 1
	}

	ignore := []world.Actor{target}
	targetFwdXY := world.Forward(target).SafeNormal2D()
	a.hits = a.hits[:0]
	dbg := f.draw()

	for i := 0; i < count; i++ {
		fe := &a.feelers[i]
		if fe.FramesUntilNextTrace > 0 {
			fe.FramesUntilNextTrace--
			continue
		}

		ray := baseRay.RotateAngleAxis(fe.Rotation.Yaw, up).RotateAngleAxis(fe.Rotation.Pitch, right)
		rayTarget := safe.Add(ray)

		hit, blocked := f.Query.SweepSphere(safe, rayTarget, fe.Radius, a.settings.Channel, ignore)
		fe.FramesUntilNextTrace = fe.TraceInterval

		if blocked && hit.Actor != nil {
			weight, counts := a.hitWeight(fe, hit, target, targetFwdXY)
			if !counts {
				ignore = append(ignore, hit.Actor)
			} else {
				castLen := rayTarget.Sub(safe).Length()
				if castLen > math.SmallNumber {
					raw := (hit.Location.Sub(safe).Length() - a.settings.PushOutDistance) / castLen
					pct := raw + (1-raw)*(1-weight)
					thisFrame = min(thisFrame, pct)
				}
				fe.FramesUntilNextTrace = 0
				a.hits = append(a.hits, hit.Actor)
			}
			if a.settings.DrawDebug {
				dbg.Sphere(hit.Location, max(fe.Radius, 2), world.ColorRed)
				dbg.Line(safe, hit.Location, world.ColorRed)
			}
		} else if a.settings.DrawDebug {
			dbg.Line(safe, rayTarget, world.ColorGreen)
		}

		if i == 0 {
			hard = thisFrame
		} else {
			soft = thisFrame
		}
	}
	a.hardPct, a.softPct = hard, soft

	switch {
	case reset:
		a.blockedPct = thisFrame
	case a.blockedPct < thisFrame:
		// Relax outward.
		if a.settings.BlendOutTime > f.DeltaTime {
			a.blockedPct += f.DeltaTime / a.settings.BlendOutTime * (thisFrame - a.blockedPct)
		} else {
			a.blockedPct = thisFrame
		}
	default:
		if a.blockedPct > hard {
			a.blockedPct = hard
		} else if a.blockedPct > soft {
			if a.settings.BlendInTime > f.DeltaTime {
				a.blockedPct -= f.DeltaTime / a.settings.BlendInTime * (a.blockedPct - soft)
			} else {
				a.blockedPct = soft
			}
		}
	}

	a.blockedPct = math.Clamp(a.blockedPct, 0, 1)
	if a.blockedPct < 1-unblockedThreshold {
		return safe.Add(desired.Sub(safe).Scale(a.blockedPct))
	}
	return desired
}

// hitWeight returns the feeler weight for hit, or counts=false when the hit
// actor must be ignored for the rest of the tick.
func (a *Avoider) hitWeight(fe *Feeler, hit world.Hit, target world.Actor, targetFwdXY math.Vec3) (weight float32, counts bool) {
	if _, isPawn := hit.Actor.(world.Pawn); isPawn {
		if a.settings.IgnorePawns {
			return 0, false
		}
		return fe.PawnWeight, true
	}
	if vol, ok := hit.Actor.(world.BlockingVolume); ok && vol.IsCameraBlockingVolume() {
		dirXY := hit.Location.Sub(target.Location()).SafeNormal2D()
		if targetFwdXY.Dot(dirXY) > 0 {
			return 0, false
		}
	}
	return fe.WorldWeight, true
}

// DebugLines describes the avoider state.
func (a *Avoider) DebugLines() []string {
	lines := []string{fmt.Sprintf("  penetration blocked=%.3f hard=%.3f soft=%.3f", a.blockedPct, a.hardPct, a.softPct)}
	for _, h := range a.hits {
		lines = append(lines, "    hit "+h.Name())
	}
	return lines
}
