package prediction

import (
	"log"
	"time"

	"github.com/automoto/doomerang-predict/network"
	"github.com/automoto/doomerang-predict/shared/netconfig"
)

// Reconciler corrects the local body toward authoritative state and replays
// unacknowledged inputs on top of the correction.
type Reconciler struct {
	cfg        netconfig.PredictionConfig
	state      *entityState
	ledger     *network.Ledger
	integrator *Integrator
	observer   StatsObserver
	now        func() time.Time

	enabled bool
	stats   Stats
}

// Reconcile consumes one authoritative state for the controlled entity.
func (r *Reconciler) Reconcile(auth AuthoritativeState) {
	if !r.enabled {
		return
	}
	if !auth.Position.IsFinite() {
		r.stats.SnapshotsSkipped++
		return
	}

	switch lastAcked := r.ledger.LastAcked(); {
	case auth.LastProcessedSequence > lastAcked:
		// Measured before the ack drops the entry it compares against.
		r.stats.LastPredictionError = r.ledger.PredictionError(auth.LastProcessedSequence, auth.Position)
		r.ledger.Acknowledge(auth.LastProcessedSequence)
	case auth.LastProcessedSequence < lastAcked:
		// Delivered out of order; its position predates state we already hold.
		r.stats.StaleSnapshots++
		log.Printf("[prediction] dropping stale snapshot: seq=%d last=%d",
			auth.LastProcessedSequence, lastAcked)
		return
	}

	body := r.state.body
	if body == nil {
		r.stats.SnapshotsSkipped++
		return
	}
	r.stats.SnapshotsApplied++

	local := body.Position()
	delta := auth.Position.Sub(local)
	threshold := r.cfg.PositionThreshold
	if delta.LengthSq() <= threshold*threshold {
		return
	}

	blend := r.cfg.AirBlend
	if body.IsGrounded() {
		blend = r.cfg.GroundBlend
	}
	wake(body)
	body.SetPosition(local.Add(delta.Scale(blend)))

	pending := r.ledger.Entries()
	step := r.cfg.ReplayStep()
	for _, p := range pending {
		r.integrator.Replay(p, step)
	}

	r.stats.CorrectionCount++
	r.stats.LastCorrection = delta
	r.stats.LastCorrectionAt = r.now()
	r.stats.InputsReplayed += uint64(len(pending))

	if r.observer != nil {
		r.observer.ObserveCorrection(delta, delta.Length())
		r.observer.ObserveReplay(len(pending))
	}
}

func (r *Reconciler) skip() {
	if r.enabled {
		r.stats.SnapshotsSkipped++
	}
}

// Stats returns a copy of the counters.
func (r *Reconciler) Stats() Stats {
	return r.stats
}
