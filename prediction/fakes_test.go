package prediction

import (
	"math"
	"time"

	"github.com/automoto/doomerang-predict/shared/netconfig"
)

type fakeBody struct {
	pos      Vec3
	vel      Vec3
	grounded bool
	active   bool

	setPositionCalls int
	setVelocityCalls int
	panicOnVelocity  bool
}

func newFakeBody(pos Vec3) *fakeBody {
	return &fakeBody{pos: pos, grounded: true, active: true}
}

func (b *fakeBody) LinearVelocity() Vec3 {
	if b.panicOnVelocity {
		panic("body torn down")
	}
	return b.vel
}

func (b *fakeBody) SetLinearVelocity(v Vec3) {
	b.setVelocityCalls++
	b.vel = v
}

func (b *fakeBody) Position() Vec3 { return b.pos }

func (b *fakeBody) SetPosition(p Vec3) {
	b.setPositionCalls++
	b.pos = p
}

func (b *fakeBody) IsGrounded() bool { return b.grounded }
func (b *fakeBody) IsActive() bool { return b.active }
func (b *fakeBody) Activate(active bool) { b.active = active }

// fixedView looks down -Z with +X to the right.
type fixedView struct {
	unavailable bool
}

func (v fixedView) Basis() (Vec3, Vec3, bool) {
	if v.unavailable {
		return Vec3{}, Vec3{}, false
	}
	return Vec3{Z: -1}, Vec3{X: 1}, true
}

type countingTransport struct {
	jumps int
}

func (t *countingTransport) NotifyJump() { t.jumps++ }

type countingAnimator struct {
	calls      int
	lastMoving bool
}

func (a *countingAnimator) MovementIntent(_ Vec3, moving bool) {
	a.calls++
	a.lastMoving = moving
}

type recordingObserver struct {
	corrections []float64
	replays     []int
}

func (o *recordingObserver) ObserveCorrection(_ Vec3, distance float64) {
	o.corrections = append(o.corrections, distance)
}

func (o *recordingObserver) ObserveReplay(n int) {
	o.replays = append(o.replays, n)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

const (
	testEntity   EntityID = 7
	frame                 = 1.0 / 60
	tickDuration          = time.Second / 60
)

type harness struct {
	ctrl      *Controller
	body      *fakeBody
	transport *countingTransport
	animator  *countingAnimator
	observer  *recordingObserver
	clock     *fakeClock
}

func testConfig() netconfig.PredictionConfig {
	return netconfig.DefaultPrediction()
}

func newHarness() *harness {
	return newHarnessWith(testConfig())
}

func newHarnessWith(cfg netconfig.PredictionConfig) *harness {
	h := &harness{
		body:      newFakeBody(Vec3{X: 4, Z: 4}),
		transport: &countingTransport{},
		animator:  &countingAnimator{},
		observer:  &recordingObserver{},
		clock:     &fakeClock{t: time.UnixMilli(1_700_000_000_000)},
	}
	h.ctrl = New(testEntity, Deps{
		Body:      h.body,
		View:      fixedView{},
		Transport: h.transport,
		Animator:  h.animator,
		Observer:  h.observer,
		Now:       h.clock.Now,
	}, cfg)
	return h
}

// frameTick advances the clock one frame and runs Update.
func (h *harness) frameTick() {
	h.clock.Advance(tickDuration)
	h.ctrl.Update(frame)
}

func (h *harness) snapshotAt(pos Vec3, seq uint64) Snapshot {
	return Snapshot{testEntity: {Position: pos, LastProcessedSequence: seq}}
}

func distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
