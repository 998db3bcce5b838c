package prediction

import (
	"time"

	"github.com/automoto/doomerang-predict/network"
	"github.com/automoto/doomerang-predict/shared/netconfig"
)

// Deps are the collaborators a Controller drives. Body may be nil until the
// entity spawns; see AttachBody. Now defaults to time.Now.
type Deps struct {
	Body      Physics
	View      View
	Transport Transport
	Animator  Animator
	Observer  StatsObserver
	Now       func() time.Time
}

// Controller is the prediction engine for one locally controlled entity.
type Controller struct {
	id  EntityID
	cfg netconfig.PredictionConfig
	now func() time.Time

	state      *entityState
	ledger     *network.Ledger
	integrator *Integrator
	damper     *Damper
	reconciler *Reconciler

	predictionEnabled bool
}

// New creates a controller for entity id with prediction and reconciliation
// enabled.
func New(id EntityID, deps Deps, cfg netconfig.PredictionConfig) *Controller {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	state := &entityState{body: deps.Body}
	ledger := network.NewLedger(cfg.LedgerHorizon)
	damper := &Damper{cfg: cfg, state: state}
	integrator := &Integrator{
		cfg:       cfg,
		state:     state,
		damper:    damper,
		view:      deps.View,
		transport: deps.Transport,
		animator:  deps.Animator,
		now:       now,
	}

	return &Controller{
		id:         id,
		cfg:        cfg,
		now:        now,
		state:      state,
		ledger:     ledger,
		integrator: integrator,
		damper:     damper,
		reconciler: &Reconciler{
			cfg:        cfg,
			state:      state,
			ledger:     ledger,
			integrator: integrator,
			observer:   deps.Observer,
			now:        now,
			enabled:    true,
		},
		predictionEnabled: true,
	}
}

// ID returns the entity this controller predicts.
func (c *Controller) ID() EntityID {
	return c.id
}

// AttachBody sets the physics body once the entity exists locally.
func (c *Controller) AttachBody(body Physics) {
	c.state.body = body
}

// ProcessInput applies intent locally (when prediction is enabled), records
// it in the ledger and returns its sequence number for the outgoing message.
func (c *Controller) ProcessInput(intent IntentSample, dt float64) uint64 {
	jumped := false
	if c.predictionEnabled {
		jumped = c.integrator.ApplyInput(intent, dt, false)
	}

	var pos Vec3
	if c.state.body != nil {
		pos = c.state.body.Position()
	}
	seq := c.ledger.Record(intent, pos, c.now())
	if jumped {
		c.ledger.MarkJumpTriggered(seq)
	}
	return seq
}

// ProcessServerUpdate reconciles against this entity's entry in snapshot.
// Snapshots that do not include the entity are skipped.
func (c *Controller) ProcessServerUpdate(snapshot Snapshot) {
	auth, ok := snapshot[c.id]
	if !ok {
		c.reconciler.skip()
		return
	}
	c.reconciler.Reconcile(auth)
}

// Update advances timers, runs damping and prunes expired ledger entries.
// Call it once per frame after input has been processed.
func (c *Controller) Update(dt float64) {
	c.state.jumpCooldown.advance(dt)
	if c.state.jumpReset.advance(dt) {
		c.state.jumping = false
	}
	c.state.attackLock.advance(dt)

	now := c.now()
	c.damper.Tick(now)
	c.ledger.Prune(now)
}

// StartAttackLock freezes horizontal movement for d while an attack plays.
func (c *Controller) StartAttackLock(d time.Duration) {
	c.state.attackLock.start(d)
}

// Reset clears pending inputs, flags and timers, e.g. on respawn. Timers are
// stopped rather than left to finish, so nothing from before the reset can
// flip a flag afterwards.
func (c *Controller) Reset() {
	c.ledger.Reset()
	c.state.jumping = false
	c.state.jumpCooldown.stop()
	c.state.jumpReset.stop()
	c.state.attackLock.stop()
	c.damper.reset()
}

// Stats returns a copy of the reconciliation counters.
func (c *Controller) Stats() Stats {
	return c.reconciler.Stats()
}

// SetPredictionEnabled controls whether ProcessInput moves the body. Inputs
// are recorded either way.
func (c *Controller) SetPredictionEnabled(enabled bool) {
	c.predictionEnabled = enabled
}

// SetReconciliationEnabled turns snapshot correction on or off.
func (c *Controller) SetReconciliationEnabled(enabled bool) {
	c.reconciler.enabled = enabled
}

// PredictionEnabled reports whether inputs are applied locally.
func (c *Controller) PredictionEnabled() bool {
	return c.predictionEnabled
}

// ReconciliationEnabled reports whether snapshots correct the body.
func (c *Controller) ReconciliationEnabled() bool {
	return c.reconciler.enabled
}

// Pending returns the unacknowledged inputs in sequence order.
func (c *Controller) Pending() []PendingInput {
	return c.ledger.Entries()
}

// Jumping reports whether a jump is in progress.
func (c *Controller) Jumping() bool {
	return c.state.jumping
}

// Damping reports whether residual velocity is currently being decayed.
func (c *Controller) Damping() bool {
	return c.damper.Damping()
}
