package core

import (
	"log"

	"github.com/automoto/doomerang-predict/physics"
	"github.com/automoto/doomerang-predict/shared/messages"
	"github.com/yohamta/donburi"
)

// maxQueuedInputs bounds a player's backlog; older inputs are dropped first.
const maxQueuedInputs = 120

// player holds per-player server state. This is not a donburi component; it
// exists only on the server and is never synced.
type player struct {
	entity donburi.Entity
	body   *physics.Body
	token  string
	name   string

	move    moveState
	queue   []messages.PlayerInput
	lastSeq uint64 // Last input sequence applied (for client-side reconciliation)
}

// enqueue adds an input unless it is a duplicate or older than what has
// already been queued or processed.
func (p *player) enqueue(in messages.PlayerInput) {
	last := p.lastSeq
	if n := len(p.queue); n > 0 {
		last = p.queue[n-1].Sequence
	}
	if in.Sequence <= last {
		return
	}
	if len(p.queue) >= maxQueuedInputs {
		log.Printf("[server] input backlog full for %s, dropping seq=%d", p.name, p.queue[0].Sequence)
		p.queue = p.queue[1:]
	}
	p.queue = append(p.queue, in)
}
