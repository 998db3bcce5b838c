package network

import (
	"time"

	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/messages"
)

// DefaultLedgerHorizon bounds how long an unacknowledged input is kept.
const DefaultLedgerHorizon = 1000 * time.Millisecond

// PendingInput is an input applied locally that the server has not yet
// acknowledged.
type PendingInput struct {
	Sequence             uint64
	Intent               messages.IntentSample
	LocalPositionAtApply gamemath.Vec3
	IssuedAtMs           uint64
	JumpTriggered        bool // The jump in Intent fired when applied live
}

// Ledger stores locally applied inputs until the server acknowledges them or
// they age past the horizon. Entries are always held in sequence order.
// It is not safe for concurrent use; the frame loop owns it.
type Ledger struct {
	entries   []PendingInput
	nextSeq   uint64
	lastAcked uint64
	horizon   time.Duration
}

// NewLedger creates an empty ledger. A non-positive horizon selects
// DefaultLedgerHorizon.
func NewLedger(horizon time.Duration) *Ledger {
	if horizon <= 0 {
		horizon = DefaultLedgerHorizon
	}
	return &Ledger{nextSeq: 1, horizon: horizon}
}

// Record appends an input with the next sequence number and returns it.
// Sequences start at 1 and strictly increase for the life of the ledger.
func (l *Ledger) Record(intent messages.IntentSample, position gamemath.Vec3, now time.Time) uint64 {
	seq := l.nextSeq
	l.nextSeq++
	l.entries = append(l.entries, PendingInput{
		Sequence:             seq,
		Intent:               intent,
		LocalPositionAtApply: position,
		IssuedAtMs:           toMs(now),
	})
	return seq
}

// Acknowledge drops every entry with sequence <= seq. Acknowledgements that
// do not advance past the last one seen are ignored.
func (l *Ledger) Acknowledge(seq uint64) {
	if seq <= l.lastAcked {
		return
	}
	l.lastAcked = seq

	i := 0
	for i < len(l.entries) && l.entries[i].Sequence <= seq {
		i++
	}
	l.entries = l.dropFront(i)
}

// Prune drops entries older than the horizon relative to now, acknowledged or
// not.
func (l *Ledger) Prune(now time.Time) {
	nowMs := toMs(now)
	horizonMs := uint64(l.horizon.Milliseconds())

	kept := l.entries[:0]
	for _, e := range l.entries {
		if nowMs > e.IssuedAtMs && nowMs-e.IssuedAtMs > horizonMs {
			continue
		}
		kept = append(kept, e)
	}
	clear(l.entries[len(kept):])
	l.entries = kept
}

// Entries returns a copy of the pending inputs in sequence order.
func (l *Ledger) Entries() []PendingInput {
	out := make([]PendingInput, len(l.entries))
	copy(out, l.entries)
	return out
}

// Get retrieves a pending entry by sequence number.
func (l *Ledger) Get(seq uint64) (PendingInput, bool) {
	i := l.index(seq)
	if i < 0 {
		return PendingInput{}, false
	}
	return l.entries[i], true
}

// MarkJumpTriggered records that the jump in seq's intent fired. Replay uses
// it to tell accepted jumps from rejected ones. Unknown sequences are ignored.
func (l *Ledger) MarkJumpTriggered(seq uint64) {
	if i := l.index(seq); i >= 0 {
		l.entries[i].JumpTriggered = true
	}
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// LastAcked returns the highest sequence acknowledged so far.
func (l *Ledger) LastAcked() uint64 {
	return l.lastAcked
}

// Reset empties the ledger and forgets acknowledgements. Sequence numbering
// continues so inputs from before the reset can never be confused with new ones.
func (l *Ledger) Reset() {
	l.entries = nil
	l.lastAcked = l.nextSeq - 1
}

// PredictionError returns the distance between the position recorded for seq
// and the server's position for the same input, or 0 if seq is not pending.
func (l *Ledger) PredictionError(seq uint64, server gamemath.Vec3) float64 {
	e, ok := l.Get(seq)
	if !ok {
		return 0
	}
	return e.LocalPositionAtApply.Sub(server).Length()
}

func (l *Ledger) index(seq uint64) int {
	for i, e := range l.entries {
		if e.Sequence == seq {
			return i
		}
		if e.Sequence > seq {
			break
		}
	}
	return -1
}

func (l *Ledger) dropFront(n int) []PendingInput {
	if n == 0 {
		return l.entries
	}
	rest := copy(l.entries, l.entries[n:])
	clear(l.entries[rest:])
	return l.entries[:rest]
}

func toMs(t time.Time) uint64 {
	ms := t.UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}
