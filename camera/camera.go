// Package camera provides the view orientation the prediction engine resolves
// movement intent against.
package camera

import (
	"math"

	"github.com/automoto/doomerang-predict/shared/gamemath"
)

// maxPitch keeps the view off the poles, where the horizontal forward vector
// would vanish.
const maxPitch = math.Pi/2 - 0.01

// Orbit is a yaw/pitch camera that trails a target. Yaw 0 looks down -Z with
// +X to the right.
type Orbit struct {
	Yaw       float64 // Radians, positive turns right
	Pitch     float64 // Radians, negative looks down
	Smoothing float64 // Per-frame follow factor in (0, 1]

	Position gamemath.Vec3
	ready    bool
}

// NewOrbit creates a camera looking down at the given pitch.
func NewOrbit(pitch, smoothing float64) *Orbit {
	o := &Orbit{Smoothing: smoothing}
	o.SetPitch(pitch)
	return o
}

// Basis returns the view's forward and right vectors projected onto the
// horizontal plane. ok is false until the camera has been placed with Follow
// or Snap.
func (o *Orbit) Basis() (forward, right gamemath.Vec3, ok bool) {
	if o == nil || !o.ready {
		return gamemath.Vec3{}, gamemath.Vec3{}, false
	}
	sy, cy := math.Sincos(o.Yaw)
	cp := math.Cos(o.Pitch)
	forward = gamemath.Vec3{X: sy * cp, Y: math.Sin(o.Pitch), Z: -cy * cp}.Horizontal().Normalize()
	_, right = gamemath.YawBasis(o.Yaw)
	if forward.LengthSq() == 0 {
		return gamemath.Vec3{}, gamemath.Vec3{}, false
	}
	return forward, right, true
}

// Turn rotates the view by delta radians of yaw, wrapped to (-pi, pi].
func (o *Orbit) Turn(delta float64) {
	o.Yaw = math.Remainder(o.Yaw+delta, 2*math.Pi)
}

func (o *Orbit) SetPitch(pitch float64) {
	o.Pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))
}

// Snap places the camera on target immediately.
func (o *Orbit) Snap(target gamemath.Vec3) {
	o.Position = target
	o.ready = true
}

// Follow moves the camera toward target by the smoothing factor.
func (o *Orbit) Follow(target gamemath.Vec3) {
	if !o.ready {
		o.Snap(target)
		return
	}
	o.Position = o.Position.Add(target.Sub(o.Position).Scale(o.Smoothing))
}
