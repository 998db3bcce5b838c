package gamemath

import "math"

// ReferenceHz is the frame rate the per-frame blend factors were tuned at.
const ReferenceHz = 60.0

// IntentAxes converts four movement flags into an intent-space direction:
// x is strafe (right positive), y is forward. Opposing flags cancel and
// diagonals are normalised to unit length.
func IntentAxes(forward, backward, left, right bool) (x, y float64) {
	if right {
		x++
	}
	if left {
		x--
	}
	if forward {
		y++
	}
	if backward {
		y--
	}
	if x != 0 && y != 0 {
		x *= math.Sqrt2 / 2
		y *= math.Sqrt2 / 2
	}
	return x, y
}

// ResolveDirection maps intent axes onto the horizontal plane using a view
// basis. Both basis vectors are flattened and re-normalised first, so a
// pitched camera does not slow horizontal movement down.
func ResolveDirection(x, y float64, forward, right Vec3) Vec3 {
	f := forward.Horizontal().Normalize()
	r := right.Horizontal().Normalize()
	return f.Scale(y).Add(r.Scale(x)).Normalize()
}

// YawBasis returns the horizontal forward and right vectors for a view yaw.
// Yaw 0 looks down -Z with +X to the right; positive yaw turns right.
func YawBasis(yaw float64) (forward, right Vec3) {
	sy, cy := math.Sincos(yaw)
	return Vec3{X: sy, Z: -cy}, Vec3{X: cy, Z: sy}
}

// FrameBlend converts a per-frame smoothing factor tuned at ReferenceHz into
// the equivalent factor for a step of dt seconds. At dt = 1/ReferenceHz it
// returns factor unchanged.
func FrameBlend(factor, dt float64) float64 {
	if factor <= 0 {
		return 0
	}
	if factor >= 1 {
		return 1
	}
	if dt <= 0 {
		return factor
	}
	return 1 - math.Pow(1-factor, dt*ReferenceHz)
}

// BlendHorizontal moves the horizontal part of vel toward target by alpha.
// The vertical component of vel is kept as is.
func BlendHorizontal(vel, target Vec3, alpha float64) Vec3 {
	return Vec3{
		X: vel.X + (target.X-vel.X)*alpha,
		Y: vel.Y,
		Z: vel.Z + (target.Z-vel.Z)*alpha,
	}
}

// DampHorizontal decays horizontal velocity by factor and snaps it to zero
// once its magnitude drops below stopSpeed. stopped reports the snap.
func DampHorizontal(vel Vec3, factor, stopSpeed float64) (out Vec3, stopped bool) {
	out = Vec3{X: vel.X * factor, Y: vel.Y, Z: vel.Z * factor}
	if out.Horizontal().LengthSq() < stopSpeed*stopSpeed {
		out.X, out.Z = 0, 0
		return out, true
	}
	return out, false
}
