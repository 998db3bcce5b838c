// Package prediction is the client-side prediction and server reconciliation
// engine for a locally controlled entity.
//
// Input is applied immediately and recorded in a ledger. When the authority
// reports a position, the engine compares it with the local one, blends
// toward it if they diverge beyond a threshold, and replays every input the
// authority has not yet acknowledged on top of the corrected position.
//
// Everything here runs on the frame loop. ProcessInput, ProcessServerUpdate
// and Update must not be called concurrently for the same Controller.
package prediction

import (
	"time"

	"github.com/automoto/doomerang-predict/network"
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/messages"
)

type (
	Vec3         = gamemath.Vec3
	IntentSample = messages.IntentSample
	PendingInput = network.PendingInput
)

// EntityID identifies a controlled entity in authority snapshots.
type EntityID uint64

// AuthoritativeState is the authority's view of one entity.
type AuthoritativeState struct {
	Position              Vec3
	LastProcessedSequence uint64
}

// Snapshot is one authority update. An entity missing from the map has not
// been spawned server-side yet.
type Snapshot map[EntityID]AuthoritativeState

// Physics is the body the engine reads and writes every frame.
type Physics interface {
	LinearVelocity() Vec3
	SetLinearVelocity(v Vec3)
	Position() Vec3
	SetPosition(p Vec3)
	IsGrounded() bool
	IsActive() bool
	Activate(active bool)
}

// View supplies the camera orientation. Both vectors are horizontal; ok is
// false when no orientation is available yet.
type View interface {
	Basis() (forward, right Vec3, ok bool)
}

// Transport receives fire-and-forget notifications for the authority.
type Transport interface {
	NotifyJump()
}

// Animator receives the movement intent resolved each live frame.
type Animator interface {
	MovementIntent(direction Vec3, moving bool)
}

// StatsObserver is told about every correction and replay.
type StatsObserver interface {
	ObserveCorrection(delta Vec3, distance float64)
	ObserveReplay(inputs int)
}

// Stats accumulates reconciliation counters for the session.
type Stats struct {
	CorrectionCount  uint64
	LastCorrection   Vec3
	LastCorrectionAt time.Time
	SnapshotsApplied uint64
	SnapshotsSkipped uint64
	StaleSnapshots   uint64
	InputsReplayed   uint64

	// Distance between where the local body was when the newest acknowledged
	// input was applied and where the server put it after that input.
	LastPredictionError float64
}

// entityState is the per-entity state shared by the integrator, damper and
// reconciler. Timer completions only flip flags here.
type entityState struct {
	body         Physics
	jumping      bool
	jumpCooldown timer
	jumpReset    timer
	attackLock   timer
}

func (s *entityState) attacking() bool {
	return s.attackLock.active()
}

// wake activates a sleeping body before it is written to.
func wake(body Physics) {
	if !body.IsActive() {
		body.Activate(true)
	}
}
