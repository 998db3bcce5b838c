package components

import (
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/yohamta/donburi"
)

// NetInterpData stores interpolation state for smooth rendering of remote
// networked entities between server snapshots.
type NetInterpData struct {
	Prev        gamemath.Vec3
	Target      gamemath.Vec3
	T           float64
	Initialized bool
	Vel         gamemath.Vec3 // Velocity at snapshot (for extrapolation)
}

// Retarget starts a new interpolation leg from the currently drawn position.
func (n *NetInterpData) Retarget(current, target, vel gamemath.Vec3) {
	if !n.Initialized {
		current = target
		n.Initialized = true
	}
	n.Prev = current
	n.Target = target
	n.Vel = vel
	n.T = 0
}

// Advance moves t forward by step and returns the position to draw. Past the
// target it extrapolates along the snapshot velocity for at most one more leg.
func (n *NetInterpData) Advance(step, legSeconds float64) gamemath.Vec3 {
	n.T += step
	if n.T <= 1 {
		return n.Prev.Add(n.Target.Sub(n.Prev).Scale(n.T))
	}
	over := n.T - 1
	if over > 1 {
		over = 1
	}
	return n.Target.Add(n.Vel.Horizontal().Scale(over * legSeconds))
}

var NetInterp = donburi.NewComponentType[NetInterpData]()
