package core

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

const defaultTickRate = 20

// TickStage is one step of a server tick. An error is logged and the
// remaining stages still run.
type TickStage struct {
	Name string
	Run  func() error
}

// TickLoop runs its stages in order at a fixed rate until stopped.
type TickLoop struct {
	interval time.Duration
	stages   []TickStage

	ticks    atomic.Uint64
	overruns atomic.Uint64

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewTickLoop(tickRate int, stages ...TickStage) *TickLoop {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return &TickLoop{
		interval: time.Second / time.Duration(tickRate),
		stages:   stages,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks until Stop is called.
func (l *TickLoop) Run() {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	log.Printf("[tick] running %d stages every %s", len(l.stages), l.interval)

	for {
		select {
		case <-l.stop:
			log.Printf("[tick] stopped after %d ticks (%d over budget)", l.Ticks(), l.Overruns())
			return
		case <-ticker.C:
			l.Step()
		}
	}
}

// Step runs one tick immediately.
func (l *TickLoop) Step() {
	start := time.Now()
	for _, stage := range l.stages {
		if err := stage.Run(); err != nil {
			log.Printf("[tick] %s: %v", stage.Name, err)
		}
	}
	n := l.ticks.Add(1)

	if took := time.Since(start); took > l.interval {
		// Log the first overrun and then every hundredth.
		if l.overruns.Add(1)%100 == 1 {
			log.Printf("[tick] tick %d took %s, budget %s", n, took, l.interval)
		}
	}
}

// Stop ends Run once the tick in progress finishes. Safe to call more than
// once, and before Run.
func (l *TickLoop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Wait blocks until Run has returned.
func (l *TickLoop) Wait() {
	<-l.done
}

// Ticks is the number of completed ticks.
func (l *TickLoop) Ticks() uint64 {
	return l.ticks.Load()
}

// Overruns is the number of ticks that took longer than the interval.
func (l *TickLoop) Overruns() uint64 {
	return l.overruns.Load()
}
