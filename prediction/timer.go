package prediction

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// timer is a one-shot countdown advanced by the frame loop. It never fires on
// its own goroutine, so completion cannot interleave with a frame.
type timer struct {
	tween   *gween.Tween
	running bool
}

func (t *timer) start(d time.Duration) {
	t.tween = gween.New(0, 1, float32(d.Seconds()), ease.Linear)
	t.running = true
}

// advance moves the timer forward by dt seconds and reports whether it
// finished during this call.
func (t *timer) advance(dt float64) bool {
	if !t.running {
		return false
	}
	if _, finished := t.tween.Update(float32(dt)); finished {
		t.running = false
		return true
	}
	return false
}

func (t *timer) active() bool {
	return t.running
}

func (t *timer) stop() {
	t.running = false
	t.tween = nil
}
