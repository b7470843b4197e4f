package orbit

import (
	"testing"

	"github.com/Faultbox/camrig/internal/engine/picking"
	"github.com/Faultbox/camrig/pkg/math"
)

func TestPositionLooksAtCenter(t *testing.T) {
	c := New()
	c.Center = math.Vec3{X: 100, Y: 50}
	c.Yaw = 30

	dir := c.Center.Sub(c.Position()).SafeNormal()
	if !dir.NearlyEqual(c.Rotation().Vector(), 1e-4) {
		t.Errorf("camera at %v does not face center %v", c.Position(), c.Center)
	}
	if got := c.Position().Distance(c.Center); math.Abs(got-c.Distance) > 1e-2 {
		t.Errorf("distance = %v, want %v", got, c.Distance)
	}
	if c.Position().Z <= c.Center.Z {
		t.Errorf("Position().Z = %v, want above center when pitched down", c.Position().Z)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	tests := []struct {
		name      string
		dy        float32
		wantPitch float32
	}{
		{"down to limit", 1000, -89},
		{"up to limit", -1000, -5},
		{"small", 20, -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.HandleDrag(0, tt.dy)
			if c.Pitch != tt.wantPitch {
				t.Errorf("Pitch = %v, want %v", c.Pitch, tt.wantPitch)
			}
		})
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := New()
	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want min %v", c.Distance, c.MinDistance)
	}
	c.HandleZoom(-1000)
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want max %v", c.Distance, c.MaxDistance)
	}
}

func TestHandleMovementFollowsYaw(t *testing.T) {
	c := New()
	c.Distance = 1000
	c.Yaw = 90
	c.HandleMovement(1, 0, 0)

	if !c.Center.NearlyEqual(math.Vec3{Y: 10}, 1e-3) {
		t.Errorf("Center = %v, want (0, 10, 0)", c.Center)
	}
}

func TestFitToBounds(t *testing.T) {
	c := New()
	c.FitToBounds(picking.NewAABB(math.Vec3{X: -500, Y: -200}, math.Vec3{X: 500, Y: 200, Z: 100}))

	if !c.Center.NearlyEqual(math.Vec3{Z: 50}, 1e-3) {
		t.Errorf("Center = %v, want (0, 0, 50)", c.Center)
	}
	if c.Distance != 1000 {
		t.Errorf("Distance = %v, want 1000", c.Distance)
	}
}
