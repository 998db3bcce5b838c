package prediction

import (
	"math"
	"testing"
	"time"
)

func TestForwardInputBlendsTowardTargetVelocity(t *testing.T) {
	h := newHarness()
	h.body.vel = Vec3{Y: -2}

	h.ctrl.ProcessInput(IntentSample{Forward: true}, frame)

	vel := h.body.vel
	if !approx(vel.Z, -1) || vel.X != 0 {
		t.Fatalf("velocity = %+v, want one blend step (0.2 * 5) toward -Z", vel)
	}
	if vel.Y != -2 {
		t.Fatalf("vertical velocity changed to %v", vel.Y)
	}
	if h.animator.calls != 1 || !h.animator.lastMoving {
		t.Fatalf("animator calls=%d moving=%v, want one moving notification", h.animator.calls, h.animator.lastMoving)
	}
}

func TestRepeatedInputApproachesMoveSpeedWithoutOvershoot(t *testing.T) {
	h := newHarness()
	prev := 0.0
	for i := 0; i < 120; i++ {
		h.ctrl.ProcessInput(IntentSample{Right: true}, frame)
		if h.body.vel.X < prev {
			t.Fatalf("frame %d: speed dropped from %v to %v", i, prev, h.body.vel.X)
		}
		if h.body.vel.X > 5 {
			t.Fatalf("frame %d: speed %v overshot move speed", i, h.body.vel.X)
		}
		prev = h.body.vel.X
	}
	if prev < 4.99 {
		t.Fatalf("speed %v did not converge to move speed", prev)
	}
}

func TestDiagonalInputIsNormalised(t *testing.T) {
	h := newHarness()
	h.ctrl.ProcessInput(IntentSample{Forward: true, Right: true}, frame)

	speed := math.Hypot(h.body.vel.X, h.body.vel.Z)
	if !approx(speed, 1) {
		t.Fatalf("diagonal speed after one step = %v, want 1", speed)
	}
	if h.body.vel.X <= 0 || h.body.vel.Z >= 0 {
		t.Fatalf("diagonal velocity %+v not toward +X/-Z", h.body.vel)
	}
}

func TestMissingViewIsNoOp(t *testing.T) {
	cases := []struct {
		name string
		view View
	}{
		{name: "nil view"},
		{name: "orientation unavailable", view: fixedView{unavailable: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := newFakeBody(Vec3{})
			transport := &countingTransport{}
			ctrl := New(testEntity, Deps{Body: body, View: tc.view, Transport: transport}, testConfig())

			seq := ctrl.ProcessInput(IntentSample{Forward: true, Jump: true}, frame)
			if seq != 1 {
				t.Fatalf("sequence = %d, want 1", seq)
			}
			if body.setVelocityCalls != 0 || transport.jumps != 0 {
				t.Fatalf("movement applied without a view: velocity writes=%d jumps=%d", body.setVelocityCalls, transport.jumps)
			}
		})
	}
}

func TestMissingBodyIsNoOp(t *testing.T) {
	ctrl := New(testEntity, Deps{View: fixedView{}}, testConfig())

	if seq := ctrl.ProcessInput(IntentSample{Forward: true}, frame); seq != 1 {
		t.Fatalf("sequence = %d, want 1", seq)
	}
	ctrl.Update(frame)

	body := newFakeBody(Vec3{})
	ctrl.AttachBody(body)
	ctrl.ProcessInput(IntentSample{Forward: true}, frame)
	if body.vel.Z >= 0 {
		t.Fatalf("attached body did not move: %+v", body.vel)
	}
}

func TestJumpTriggersOncePerCooldownAndReset(t *testing.T) {
	h := newHarness()
	jump := IntentSample{Jump: true}

	h.ctrl.ProcessInput(jump, frame)
	if h.transport.jumps != 1 || !h.ctrl.Jumping() {
		t.Fatalf("first jump: notifications=%d jumping=%v", h.transport.jumps, h.ctrl.Jumping())
	}
	if h.body.vel.Y != testConfig().JumpImpulse {
		t.Fatalf("vertical velocity = %v, want jump impulse", h.body.vel.Y)
	}

	h.ctrl.ProcessInput(jump, frame)
	if h.transport.jumps != 1 {
		t.Fatal("jumped again while already jumping")
	}

	// Past the 500ms cooldown but inside the 1000ms jump-state reset.
	for i := 0; i < 40; i++ {
		h.frameTick()
	}
	h.ctrl.ProcessInput(jump, frame)
	if h.transport.jumps != 1 {
		t.Fatal("jumped before the jump state reset")
	}

	for i := 0; i < 30; i++ {
		h.frameTick()
	}
	if h.ctrl.Jumping() {
		t.Fatal("jump state not reset after 1000ms")
	}
	h.ctrl.ProcessInput(jump, frame)
	if h.transport.jumps != 2 {
		t.Fatalf("notifications = %d, want second jump", h.transport.jumps)
	}
}

func TestJumpRequiresGround(t *testing.T) {
	h := newHarness()
	h.body.grounded = false
	h.ctrl.ProcessInput(IntentSample{Jump: true}, frame)
	if h.transport.jumps != 0 || h.ctrl.Jumping() {
		t.Fatal("airborne body jumped")
	}
}

func TestAttackLockFreezesIdleMovement(t *testing.T) {
	h := newHarness()
	h.body.vel = Vec3{X: 3, Y: 1, Z: -2}
	h.ctrl.StartAttackLock(300 * time.Millisecond)

	h.ctrl.ProcessInput(IntentSample{}, frame)
	if h.body.vel != (Vec3{Y: 1}) {
		t.Fatalf("velocity during attack lock = %+v, want horizontal frozen", h.body.vel)
	}

	h.body.vel = Vec3{X: 2}
	h.frameTick()
	if h.body.vel.X != 2 {
		t.Fatalf("damping ran during attack lock: %+v", h.body.vel)
	}
}

func TestApplyInputRecoversFromPanic(t *testing.T) {
	h := newHarness()
	h.body.panicOnVelocity = true

	seq := h.ctrl.ProcessInput(IntentSample{Forward: true}, frame)
	if seq != 1 {
		t.Fatalf("sequence = %d, want 1 after recovered fault", seq)
	}

	h.body.panicOnVelocity = false
	h.ctrl.ProcessInput(IntentSample{Forward: true}, frame)
	if h.body.vel.Z >= 0 {
		t.Fatal("frame after a fault did not apply movement")
	}
}

func TestPredictionDisabledRecordsWithoutApplying(t *testing.T) {
	h := newHarness()
	h.ctrl.SetPredictionEnabled(false)

	seq := h.ctrl.ProcessInput(IntentSample{Forward: true, Jump: true}, frame)
	if seq != 1 || len(h.ctrl.Pending()) != 1 {
		t.Fatalf("input not recorded: seq=%d pending=%d", seq, len(h.ctrl.Pending()))
	}
	if h.body.setVelocityCalls != 0 || h.transport.jumps != 0 || h.animator.calls != 0 {
		t.Fatal("input applied with prediction disabled")
	}
}

