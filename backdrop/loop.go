package backdrop

import (
	"sync"
	"time"
)

// Loop runs a callback once per frame on a Scheduler until stopped.
// The pending frame handle and the stopped flag live here rather than in the
// callback, so Stop is effective no matter where it is called from.
type Loop struct {
	sched Scheduler
	fn    FrameCallback

	mu      sync.Mutex
	pending FrameHandle
	hasNext bool
	started bool
	stopped bool
	frames  uint64
}

// NewLoop creates a stopped loop running fn on sched
func NewLoop(sched Scheduler, fn FrameCallback) *Loop {
	return &Loop{sched: sched, fn: fn}
}

// Start schedules the first frame. Calling Start again, or after Stop, does nothing.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.stopped {
		return
	}
	l.started = true
	l.scheduleLocked()
}

// Stop cancels the pending frame and prevents any further reschedule.
// It is idempotent and may be called from inside the callback.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	if l.hasNext {
		l.sched.CancelFrame(l.pending)
		l.hasNext = false
	}
}

// Running reports whether a next frame is scheduled
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasNext && !l.stopped
}

// Frames returns how many times the callback has run
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

func (l *Loop) tick(ts time.Duration) {
	l.mu.Lock()
	l.hasNext = false
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.frames++
	l.mu.Unlock()

	// The lock is not held while fn runs so fn may call Stop
	l.fn(ts)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.stopped {
		l.scheduleLocked()
	}
}

func (l *Loop) scheduleLocked() {
	l.pending = l.sched.RequestFrame(l.tick)
	l.hasNext = true
}
