package math

import (
	"math"
	"testing"
)

func TestNormalizeAxis(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{720, 0},
		{359, -1},
	}
	for _, tt := range tests {
		if got := NormalizeAxis(tt.in); abs(got-tt.want) > 1e-4 {
			t.Errorf("NormalizeAxis(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampAngle(t *testing.T) {
	tests := []struct {
		angle, lo, hi, want float32
	}{
		{10, -89, 89, 10},
		{95, -89, 89, 89},
		{-120, -89, 89, -89},
		{350, -89, 89, -10},
		{270, -89, 89, -89},
	}
	for _, tt := range tests {
		if got := ClampAngle(tt.angle, tt.lo, tt.hi); abs(got-tt.want) > 1e-3 {
			t.Errorf("ClampAngle(%v, %v, %v) = %v, want %v", tt.angle, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRotatorAxesOrthonormal(t *testing.T) {
	r := Rotator{Pitch: 23, Yaw: -71, Roll: 12}
	f, rt, u := r.Axes()
	for name, v := range map[string]Vec3{"forward": f, "right": rt, "up": u} {
		if abs(v.Length()-1) > 1e-5 {
			t.Errorf("%s axis length = %v, want 1", name, v.Length())
		}
	}
	if d := f.Dot(rt); abs(d) > 1e-5 {
		t.Errorf("forward.right = %v, want 0", d)
	}
	if d := f.Dot(u); abs(d) > 1e-5 {
		t.Errorf("forward.up = %v, want 0", d)
	}
	if d := rt.Dot(u); abs(d) > 1e-5 {
		t.Errorf("right.up = %v, want 0", d)
	}
}

func TestRotatorRotateVector(t *testing.T) {
	r := Rotator{Yaw: 90}
	got := r.RotateVector(Vec3{100, 0, 50})
	want := Vec3{0, 100, 50}
	if !got.NearlyEqual(want, 1e-3) {
		t.Errorf("RotateVector() = %v, want %v", got, want)
	}
}

func TestRotatorQuatMatchesMatrix(t *testing.T) {
	rots := []Rotator{
		{},
		{Pitch: 30},
		{Yaw: 135},
		{Roll: -40},
		{Pitch: -15, Yaw: 60, Roll: 25},
	}
	v := Vec3{1, 2, 3}
	for _, r := range rots {
		fromMatrix := r.RotateVector(v)
		fromQuat := r.Quat().RotateVector(v)
		if !fromMatrix.NearlyEqual(fromQuat, 1e-4) {
			t.Errorf("%v: matrix %v != quat %v", r, fromMatrix, fromQuat)
		}
	}
}

func TestQuatRotatorRoundTrip(t *testing.T) {
	rots := []Rotator{
		{Pitch: 10, Yaw: 20, Roll: 30},
		{Pitch: -60, Yaw: -170},
		{Yaw: 179},
	}
	for _, r := range rots {
		got := r.Quat().Rotator()
		if !got.NearlyEqual(r, 1e-2) {
			t.Errorf("round trip of %v = %v", r, got)
		}
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := Rotator{Yaw: 90}.Quat()

	if r := q1.Slerp(q2, 0); abs(r.W-q1.W) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}
	if r := q1.Slerp(q2, 1); abs(r.W-q2.W) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// For a 90 degree rotation, halfway is 45 degrees
	result5 := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(float64(math.Pi / 8)))
	if abs(result5.W-expectedW) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func transformPoint(m Mat4, v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

func TestViewMatrixLooksDownForward(t *testing.T) {
	m := ViewMatrix(Vec3{}, Rotator{})
	p := transformPoint(m, Vec3{10, 0, 0})
	if abs(p.Z+10) > 1e-4 || abs(p.X) > 1e-4 || abs(p.Y) > 1e-4 {
		t.Errorf("point ahead maps to %v, want (0,0,-10)", p)
	}

	up := transformPoint(m, Vec3{10, 0, 5})
	if up.Y <= 0 {
		t.Errorf("point above forward axis maps to %v, want positive view Y", up)
	}
}

func TestVerticalFOV(t *testing.T) {
	tests := []struct {
		name   string
		fov    float32
		aspect float32
		want   float32
	}{
		{"square", 90, 1, math.Pi / 2},
		{"wide", 90, 2, float32(2 * math.Atan(0.5))},
		{"bad aspect", 90, 0, math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerticalFOV(tt.fov, tt.aspect); abs(got-tt.want) > 1e-5 {
				t.Errorf("VerticalFOV(%v, %v) = %v, want %v", tt.fov, tt.aspect, got, tt.want)
			}
		})
	}
}
