package backdrop

import (
	"math"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// ScrollTracker maps document scroll metrics to a damped progress value in [0, 1].
// Observe may be called from any goroutine; Progress is a lock-free read.
type ScrollTracker struct {
	damping float64 // seconds; 0 snaps

	target   atomic.Float64
	progress atomic.Float64

	// Only touched by step, which runs on the scheduler
	lastTS  time.Duration
	hasLast bool

	loop *Loop

	mu     sync.Mutex
	sub    Subscription
	closed bool
}

// NewScrollTracker creates a tracker smoothing with the given time constant in seconds
func NewScrollTracker(damping float64) *ScrollTracker {
	if damping < 0 || math.IsNaN(damping) {
		damping = 0
	}
	return &ScrollTracker{damping: damping}
}

// ScrollProgress returns the fraction of the scrollable extent covered by m, clamped to [0, 1].
// A document that does not scroll has progress 0.
func ScrollProgress(m ScrollMetrics) float64 {
	extent := m.Height - m.Viewport
	if !(extent > 0) {
		return 0
	}
	p := m.Top / extent
	if math.IsNaN(p) {
		return 0
	}
	return clamp01(p)
}

// Attach starts from the host's current scroll position, subscribes to its
// scroll events and starts smoothing on its scheduler.
// Attaching a closed tracker does nothing.
func (t *ScrollTracker) Attach(h Host) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.sub != nil {
		return
	}
	t.Reset(h.ScrollMetrics())
	t.sub = h.OnScroll(t.Observe)
	t.loop = NewLoop(h, t.step)
	t.loop.Start()
}

// Observe records new scroll metrics as the smoothing target
func (t *ScrollTracker) Observe(m ScrollMetrics) {
	target := ScrollProgress(m)
	t.target.Store(target)
	if t.damping == 0 {
		t.progress.Store(target)
	}
}

// Reset jumps straight to the progress of m without smoothing
func (t *ScrollTracker) Reset(m ScrollMetrics) {
	p := ScrollProgress(m)
	t.target.Store(p)
	t.progress.Store(p)
}

// Progress returns the current smoothed progress
func (t *ScrollTracker) Progress() float64 {
	return t.progress.Load()
}

// Target returns the last observed, unsmoothed progress
func (t *ScrollTracker) Target() float64 {
	return t.target.Load()
}

// Step advances the smoothed value toward the target by the time elapsed since
// the previous step. It is the frame callback of the tracker's loop and is
// exported for hosts that drive smoothing themselves.
func (t *ScrollTracker) Step(dt time.Duration) {
	target := t.target.Load()
	if t.damping == 0 {
		t.progress.Store(target)
		return
	}
	if dt <= 0 {
		return
	}
	cur := t.progress.Load()
	alpha := 1 - math.Exp(-dt.Seconds()/t.damping)
	t.progress.Store(clamp01(cur + (target-cur)*alpha))
}

func (t *ScrollTracker) step(ts time.Duration) {
	if !t.hasLast {
		t.hasLast = true
		t.lastTS = ts
		return
	}
	dt := ts - t.lastTS
	t.lastTS = ts
	t.Step(dt)
}

// Close stops observing and smoothing. It is idempotent.
func (t *ScrollTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	if t.loop != nil {
		t.loop.Stop()
	}
	if t.sub != nil {
		t.sub.Close()
	}
}
