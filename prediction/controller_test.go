package prediction

import (
	"testing"
	"time"
)

func TestResetClearsStateAndIgnoresLateTimers(t *testing.T) {
	h := newHarness()

	h.ctrl.ProcessInput(IntentSample{Forward: true, Jump: true}, frame)
	h.ctrl.ProcessInput(IntentSample{Forward: true}, frame)
	if !h.ctrl.Jumping() || h.transport.jumps != 1 {
		t.Fatalf("jumping=%v jumps=%d, want one jump in progress", h.ctrl.Jumping(), h.transport.jumps)
	}
	// Three quarters of the way through the first jump's reset window.
	for i := 0; i < 45; i++ {
		h.frameTick()
	}
	if !h.ctrl.Jumping() {
		t.Fatal("jump flag cleared early")
	}

	h.ctrl.Reset()

	if len(h.ctrl.Pending()) != 0 {
		t.Fatalf("pending = %d after reset, want 0", len(h.ctrl.Pending()))
	}
	if h.ctrl.Jumping() {
		t.Fatal("jump flag survived reset")
	}

	// With the flag cleared, a jump right after respawn goes through.
	if seq := h.ctrl.ProcessInput(IntentSample{Jump: true}, frame); seq != 3 {
		t.Fatalf("sequence after reset = %d, want numbering to continue at 3", seq)
	}
	if h.transport.jumps != 2 || !h.ctrl.Jumping() {
		t.Fatalf("jumps=%d jumping=%v, want immediate jump after reset", h.transport.jumps, h.ctrl.Jumping())
	}

	// The first jump's reset would have fired during these frames.
	for i := 0; i < 30; i++ {
		h.frameTick()
	}
	if !h.ctrl.Jumping() {
		t.Fatal("timer from before the reset cleared the jump flag")
	}
	for i := 0; i < 40; i++ {
		h.frameTick()
	}
	if h.ctrl.Jumping() {
		t.Fatal("jump flag not cleared by its own reset timer")
	}
}

func TestResetSnapshotAcknowledgesNothingNew(t *testing.T) {
	h := newHarness()
	h.ctrl.ProcessInput(IntentSample{}, frame)
	h.ctrl.ProcessInput(IntentSample{}, frame)
	h.ctrl.Reset()

	// An in-flight snapshot acknowledging a pre-reset input is stale.
	h.ctrl.ProcessServerUpdate(h.snapshotAt(h.body.Position(), 1))
	if got := h.ctrl.Stats().StaleSnapshots; got != 1 {
		t.Fatalf("StaleSnapshots = %d, want 1", got)
	}
}

func TestToggles(t *testing.T) {
	h := newHarness()
	if !h.ctrl.PredictionEnabled() || !h.ctrl.ReconciliationEnabled() {
		t.Fatal("controller should start with prediction and reconciliation enabled")
	}

	h.ctrl.SetPredictionEnabled(false)
	h.ctrl.SetReconciliationEnabled(false)
	if h.ctrl.PredictionEnabled() || h.ctrl.ReconciliationEnabled() {
		t.Fatal("toggles did not take effect")
	}
	if h.ctrl.ID() != testEntity {
		t.Fatalf("ID = %d, want %d", h.ctrl.ID(), testEntity)
	}
}

func TestAttackLockExpires(t *testing.T) {
	h := newHarness()
	h.body.vel = Vec3{X: 3}
	h.ctrl.StartAttackLock(100 * time.Millisecond)

	h.ctrl.ProcessInput(IntentSample{}, frame)
	if h.body.vel.X != 0 {
		t.Fatalf("velocity = %+v during attack lock, want frozen", h.body.vel)
	}

	for i := 0; i < 10; i++ {
		h.frameTick()
	}
	h.ctrl.ProcessInput(IntentSample{Right: true}, frame)
	if h.body.vel.X <= 0 {
		t.Fatalf("velocity = %+v after lock expired, want movement", h.body.vel)
	}
}

func TestDefaultClockIsUsed(t *testing.T) {
	body := newFakeBody(Vec3{})
	ctrl := New(testEntity, Deps{Body: body, View: fixedView{}}, testConfig())

	before := time.Now()
	ctrl.ProcessInput(IntentSample{}, frame)
	pending := ctrl.Pending()
	if len(pending) != 1 || pending[0].IssuedAtMs < uint64(before.UnixMilli()) {
		t.Fatalf("pending = %+v, want entry stamped with wall clock", pending)
	}
}
