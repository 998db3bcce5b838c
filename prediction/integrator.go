package prediction

import (
	"log"
	"time"

	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/netconfig"
)

// Integrator turns intent into velocity on the physics body.
type Integrator struct {
	cfg       netconfig.PredictionConfig
	state     *entityState
	damper    *Damper
	view      View
	transport Transport
	animator  Animator
	now       func() time.Time
}

// ApplyInput applies one intent sample over dt seconds and reports whether
// its jump fired.
//
// With isReplay set only the body's velocity is touched: no notifications
// are sent, no timers start and damping bookkeeping is left alone. A replayed
// sample never starts a jump on its own; see Replay.
// A panic during application is logged and swallowed so one bad frame cannot
// take down the frame loop.
func (in *Integrator) ApplyInput(intent IntentSample, dt float64, isReplay bool) bool {
	return in.apply(intent, dt, isReplay, false)
}

// Replay re-applies a pending input after a correction. Its jump impulse is
// restored only when the jump fired live, is still in progress and the body
// has been put back on the ground.
func (in *Integrator) Replay(p PendingInput, dt float64) {
	in.apply(p.Intent, dt, true, p.JumpTriggered)
}

func (in *Integrator) apply(intent IntentSample, dt float64, isReplay, jumpedLive bool) (jumped bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[prediction] apply input failed (replay=%t): %v", isReplay, r)
			jumped = false
		}
	}()

	body := in.state.body
	if body == nil || in.view == nil {
		return false
	}
	forward, right, ok := in.view.Basis()
	if !ok {
		return false
	}

	x, y := gamemath.IntentAxes(intent.Forward, intent.Backward, intent.Left, intent.Right)
	dir := gamemath.ResolveDirection(x, y, forward, right)
	moving := dir.LengthSq() > 0

	switch {
	case moving:
		target := dir.Scale(in.cfg.MoveSpeed)
		alpha := gamemath.FrameBlend(in.cfg.VelocityBlend, dt)
		wake(body)
		body.SetLinearVelocity(gamemath.BlendHorizontal(body.LinearVelocity(), target, alpha))
		if !isReplay {
			in.damper.noteMovement(in.now())
		}
	case in.state.attacking():
		// Attack lock holds the entity in place.
		vel := body.LinearVelocity()
		if vel.X != 0 || vel.Z != 0 {
			body.SetLinearVelocity(Vec3{Y: vel.Y})
		}
	case !isReplay:
		in.damper.release()
	}

	if !isReplay && in.animator != nil {
		in.animator.MovementIntent(dir, moving)
	}

	if !intent.Jump {
		return false
	}
	if isReplay {
		if jumpedLive && in.state.jumping && body.IsGrounded() {
			in.impulse(body)
		}
		return false
	}
	return in.jump(body)
}

func (in *Integrator) jump(body Physics) bool {
	if in.state.jumping || in.state.jumpCooldown.active() || !body.IsGrounded() {
		return false
	}

	in.impulse(body)
	in.state.jumping = true
	in.state.jumpCooldown.start(in.cfg.JumpCooldown)
	in.state.jumpReset.start(in.cfg.JumpStateReset)
	if in.transport != nil {
		in.transport.NotifyJump()
	}
	return true
}

func (in *Integrator) impulse(body Physics) {
	vel := body.LinearVelocity()
	vel.Y = in.cfg.JumpImpulse
	wake(body)
	body.SetLinearVelocity(vel)
}
