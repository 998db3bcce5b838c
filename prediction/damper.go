package prediction

import (
	"time"

	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/netconfig"
)

// Damper decays residual horizontal velocity once movement intent stops, so a
// grounded entity does not slide forever.
type Damper struct {
	cfg        netconfig.PredictionConfig
	state      *entityState
	moving     bool
	lastMoveAt time.Time
	damping    bool
}

func (d *Damper) noteMovement(now time.Time) {
	d.moving = true
	d.lastMoveAt = now
	d.damping = false
}

func (d *Damper) release() {
	d.moving = false
}

// Tick runs once per frame. While no intent is active and the body is
// grounded it scales horizontal velocity by the damping factor, snapping to
// zero below the stop speed. Vertical velocity is never touched.
func (d *Damper) Tick(now time.Time) {
	body := d.state.body
	if body == nil || d.moving || d.state.attacking() || !body.IsGrounded() {
		d.damping = false
		return
	}

	vel := body.LinearVelocity()
	if vel.X == 0 && vel.Z == 0 {
		d.damping = false
		return
	}

	next, stopped := gamemath.DampHorizontal(vel, d.cfg.DampingFactor, d.cfg.DampingStopSpeed)
	body.SetLinearVelocity(next)
	d.damping = !stopped
}

// Damping reports whether a decay is in progress.
func (d *Damper) Damping() bool {
	return d.damping
}

// SinceMovement returns the time since the last directional input, or zero
// if there has been none.
func (d *Damper) SinceMovement(now time.Time) time.Duration {
	if d.lastMoveAt.IsZero() {
		return 0
	}
	return now.Sub(d.lastMoveAt)
}

func (d *Damper) reset() {
	d.moving = false
	d.damping = false
	d.lastMoveAt = time.Time{}
}
