package camera

import (
	"math"
	"testing"

	"github.com/automoto/doomerang-predict/shared/gamemath"
)

const eps = 1e-9

func near(a, b gamemath.Vec3) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestBasisUnavailableUntilPlaced(t *testing.T) {
	o := NewOrbit(-0.5, 0.1)
	if _, _, ok := o.Basis(); ok {
		t.Fatal("basis available before the camera was placed")
	}
	var missing *Orbit
	if _, _, ok := missing.Basis(); ok {
		t.Fatal("nil camera reported a basis")
	}
}

func TestBasisIsHorizontalAndOrthonormal(t *testing.T) {
	cases := []struct {
		name        string
		yaw, pitch  float64
		wantForward gamemath.Vec3
		wantRight   gamemath.Vec3
	}{
		{name: "default", wantForward: gamemath.Vec3{Z: -1}, wantRight: gamemath.Vec3{X: 1}},
		{name: "pitched down", pitch: -1.2, wantForward: gamemath.Vec3{Z: -1}, wantRight: gamemath.Vec3{X: 1}},
		{name: "quarter turn", yaw: math.Pi / 2, wantForward: gamemath.Vec3{X: 1}, wantRight: gamemath.Vec3{Z: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOrbit(tc.pitch, 1)
			o.Turn(tc.yaw)
			o.Snap(gamemath.Vec3{})

			forward, right, ok := o.Basis()
			if !ok {
				t.Fatal("basis unavailable")
			}
			if !near(forward, tc.wantForward) || !near(right, tc.wantRight) {
				t.Fatalf("Basis = %+v, %+v; want %+v, %+v", forward, right, tc.wantForward, tc.wantRight)
			}
			if math.Abs(forward.Dot(right)) > eps {
				t.Fatalf("forward and right not orthogonal: dot=%v", forward.Dot(right))
			}
		})
	}
}

func TestFollowSmoothsTowardTarget(t *testing.T) {
	o := NewOrbit(0, 0.5)
	o.Follow(gamemath.Vec3{})
	o.Follow(gamemath.Vec3{X: 10})
	if o.Position.X != 5 {
		t.Fatalf("Position.X = %v, want 5", o.Position.X)
	}
}

func TestPitchIsClamped(t *testing.T) {
	o := NewOrbit(-math.Pi, 1)
	o.Snap(gamemath.Vec3{})
	if _, _, ok := o.Basis(); !ok {
		t.Fatal("clamped pitch should still yield a basis")
	}
}
