package core

import (
	"math"
	"testing"

	"github.com/automoto/doomerang-predict/camera"
	"github.com/automoto/doomerang-predict/physics"
	"github.com/automoto/doomerang-predict/prediction"
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/messages"
	"github.com/automoto/doomerang-predict/shared/netconfig"
)

const frame = 1.0 / 60

func newTestBody(cfg netconfig.PredictionConfig) *physics.Body {
	return physics.NewBody(nil, gamemath.Vec3{X: 4, Z: 4}, physics.DefaultBodyConfig(cfg.Gravity, cfg.MaxFallSpeed))
}

func input(seq uint64, intent messages.IntentSample) messages.PlayerInput {
	in := messages.NewPlayerInput(seq, intent)
	in.DeltaTime = frame
	return in
}

func TestStepInputMovesAlongYaw(t *testing.T) {
	cfg := netconfig.DefaultPrediction()
	cases := []struct {
		name   string
		yaw    float64
		intent messages.IntentSample
		want   gamemath.Vec3 // direction of travel
	}{
		{name: "forward", intent: messages.IntentSample{Forward: true}, want: gamemath.Vec3{Z: -1}},
		{name: "strafe right", intent: messages.IntentSample{Right: true}, want: gamemath.Vec3{X: 1}},
		{name: "forward turned right", yaw: math.Pi / 2, intent: messages.IntentSample{Forward: true}, want: gamemath.Vec3{X: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := newTestBody(cfg)
			start := body.Position()
			var st moveState
			for i := 0; i < 30; i++ {
				in := input(uint64(i+1), tc.intent)
				in.Yaw = tc.yaw
				stepInput(body, &st, in, cfg)
			}
			moved := body.Position().Sub(start)
			if moved.Normalize().Dot(tc.want) < 0.999 {
				t.Fatalf("moved %+v, want along %+v", moved, tc.want)
			}
		})
	}
}

func TestStepInputDampsToRest(t *testing.T) {
	cfg := netconfig.DefaultPrediction()
	body := newTestBody(cfg)
	var st moveState

	seq := uint64(0)
	for i := 0; i < 30; i++ {
		seq++
		stepInput(body, &st, input(seq, messages.IntentSample{Forward: true}), cfg)
	}
	for i := 0; i < 600 && body.IsActive(); i++ {
		seq++
		stepInput(body, &st, input(seq, messages.IntentSample{}), cfg)
	}

	if vel := body.LinearVelocity(); vel != (gamemath.Vec3{}) {
		t.Fatalf("velocity = %+v, want rest", vel)
	}
	if body.IsActive() {
		t.Fatal("body should sleep once at rest")
	}
}

func TestStepInputJumpCooldown(t *testing.T) {
	cfg := netconfig.DefaultPrediction()
	body := newTestBody(cfg)
	var st moveState

	stepInput(body, &st, input(1, messages.IntentSample{Jump: true}), cfg)
	if body.Position().Y <= 0 {
		t.Fatal("jump did not leave the ground")
	}

	// Hold jump: the next jump may only start once both timers ran out.
	jumps := 1
	for i := 0; i < 90; i++ {
		wasGrounded := body.IsGrounded()
		stepInput(body, &st, input(uint64(i+2), messages.IntentSample{Jump: true}), cfg)
		if wasGrounded && !body.IsGrounded() {
			jumps++
			if elapsed := float64(i+1) * frame; elapsed < cfg.JumpStateReset.Seconds()-frame/2 {
				t.Fatalf("second jump after %.3fs, before the %v reset", elapsed, cfg.JumpStateReset)
			}
		}
	}
	if jumps != 2 {
		t.Fatalf("jumps = %d over 1.5s of held jump, want 2", jumps)
	}
}

func TestStepInputClampsDelta(t *testing.T) {
	cfg := netconfig.DefaultPrediction()
	body := newTestBody(cfg)
	body.SetLinearVelocity(gamemath.Vec3{X: 5})
	var st moveState

	in := input(1, messages.IntentSample{Right: true})
	in.DeltaTime = 10
	stepInput(body, &st, in, cfg)

	if dx := body.Position().X - 4; dx > cfg.MoveSpeed*maxInputDelta+1e-9 {
		t.Fatalf("moved %v in one input, want at most %v", dx, cfg.MoveSpeed*maxInputDelta)
	}
}

// The authority must land exactly where a client predicting the same inputs
// does, otherwise every snapshot would trigger a correction.
func TestServerMatchesClientPrediction(t *testing.T) {
	cfg := netconfig.DefaultPrediction()

	clientBody := newTestBody(cfg)
	view := camera.NewOrbit(-0.6, 1)
	view.Snap(clientBody.Position())
	ctrl := prediction.New(1, prediction.Deps{Body: clientBody, View: view}, cfg)

	serverBody := newTestBody(cfg)
	var st moveState

	script := func(i int) messages.IntentSample {
		switch {
		case i == 0:
			return messages.IntentSample{Forward: true, Jump: true}
		case i < 30:
			return messages.IntentSample{Forward: true}
		case i < 60:
			return messages.IntentSample{Forward: true, Right: true}
		case i < 90:
			return messages.IntentSample{}
		case i == 90:
			return messages.IntentSample{Jump: true}
		default:
			return messages.IntentSample{Left: true}
		}
	}

	for i := 0; i < 150; i++ {
		intent := script(i)

		seq := ctrl.ProcessInput(intent, frame)
		ctrl.Update(frame)
		clientBody.Step(frame)

		in := input(seq, intent)
		in.Yaw = view.Yaw
		stepInput(serverBody, &st, in, cfg)

		c, s := clientBody.Position(), serverBody.Position()
		if gamemath.DistanceSq(c, s) > 1e-12 {
			t.Fatalf("frame %d: client %+v, server %+v", i, c, s)
		}
	}
}

func TestPlayerEnqueueOrdering(t *testing.T) {
	p := &player{name: "tester", lastSeq: 3}

	for _, seq := range []uint64{2, 3, 4, 4, 6, 5} {
		p.enqueue(messages.PlayerInput{Sequence: seq})
	}

	if len(p.queue) != 2 || p.queue[0].Sequence != 4 || p.queue[1].Sequence != 6 {
		t.Fatalf("queue = %+v, want sequences [4 6]", p.queue)
	}
}

func TestPlayerEnqueueBacklog(t *testing.T) {
	p := &player{name: "tester"}
	for seq := uint64(1); seq <= maxQueuedInputs+5; seq++ {
		p.enqueue(messages.PlayerInput{Sequence: seq})
	}

	if len(p.queue) != maxQueuedInputs {
		t.Fatalf("queue length = %d, want %d", len(p.queue), maxQueuedInputs)
	}
	if p.queue[0].Sequence != 6 {
		t.Fatalf("oldest queued = %d, want 6", p.queue[0].Sequence)
	}
}
