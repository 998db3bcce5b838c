package core

import (
	"github.com/automoto/doomerang-predict/physics"
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/messages"
	"github.com/automoto/doomerang-predict/shared/netconfig"
)

// Inputs claiming more time than this are clamped so a stalled client cannot
// push a player through a wall in one step.
const maxInputDelta = 0.1

// moveState is per-player movement bookkeeping that never leaves the server.
type moveState struct {
	jumpCooldown float64 // Seconds until another jump may start
	jumpReset    float64 // Seconds until the current jump counts as over
}

// stepInput advances one player by one client input. It runs the same
// movement rules the client predicts with, in the same order: intent, then
// damping, then integration.
func stepInput(body *physics.Body, st *moveState, in messages.PlayerInput, cfg netconfig.PredictionConfig) {
	dt := in.DeltaTime
	if dt <= 0 {
		dt = 1 / gamemath.ReferenceHz
	}
	if dt > maxInputDelta {
		dt = maxInputDelta
	}

	forward, right := gamemath.YawBasis(in.Yaw)
	x, y := gamemath.IntentAxes(in.Intent.Forward, in.Intent.Backward, in.Intent.Left, in.Intent.Right)
	dir := gamemath.ResolveDirection(x, y, forward, right)

	if dir.LengthSq() > 0 {
		body.Activate(true)
		target := dir.Scale(cfg.MoveSpeed)
		body.SetLinearVelocity(gamemath.BlendHorizontal(body.LinearVelocity(), target, gamemath.FrameBlend(cfg.VelocityBlend, dt)))
	}

	if in.Intent.Jump && st.jumpCooldown <= 0 && st.jumpReset <= 0 && body.IsGrounded() {
		vel := body.LinearVelocity()
		vel.Y = cfg.JumpImpulse
		body.Activate(true)
		body.SetLinearVelocity(vel)
		st.jumpCooldown = cfg.JumpCooldown.Seconds()
		st.jumpReset = cfg.JumpStateReset.Seconds()
	}
	st.jumpCooldown -= dt
	st.jumpReset -= dt

	if dir.LengthSq() == 0 && body.IsGrounded() {
		if vel := body.LinearVelocity(); vel.X != 0 || vel.Z != 0 {
			damped, _ := gamemath.DampHorizontal(vel, cfg.DampingFactor, cfg.DampingStopSpeed)
			body.SetLinearVelocity(damped)
		}
	}

	body.Step(dt)
}
