// Package headless provides a backdrop host driven entirely by its caller:
// frames run when Advance is called and viewport and scroll changes are injected.
package headless

import (
	"errors"
	"sync"
	"time"

	"portfoliobg/backdrop"
	"portfoliobg/hostkit"
)

// ErrNoSurface is returned by Surface when the host was created without one
var ErrNoSurface = errors.New("headless: no surface")

// Host is a manually driven backdrop.Host
type Host struct {
	mu       sync.Mutex
	viewport backdrop.Viewport
	surface  backdrop.Surface
	now      time.Duration
	metrics  backdrop.ScrollMetrics

	frames hostkit.FrameQueue
	resize hostkit.Listeners[backdrop.Viewport]
	scroll hostkit.Listeners[backdrop.ScrollMetrics]
}

// NewHost creates a host with the given viewport and surface. A nil surface
// makes Surface fail, which mounting treats as a setup failure.
func NewHost(vp backdrop.Viewport, s backdrop.Surface) *Host {
	return &Host{viewport: vp, surface: s}
}

// Viewport returns the current viewport
func (h *Host) Viewport() backdrop.Viewport {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewport
}

// Surface returns the drawing surface
func (h *Host) Surface() (backdrop.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.surface == nil {
		return nil, ErrNoSurface
	}
	return h.surface, nil
}

// RequestFrame queues cb for the next Advance
func (h *Host) RequestFrame(cb backdrop.FrameCallback) backdrop.FrameHandle {
	return h.frames.Request(cb)
}

// CancelFrame drops a queued callback
func (h *Host) CancelFrame(handle backdrop.FrameHandle) {
	h.frames.Cancel(handle)
}

// Advance moves the clock to ts and runs the callbacks queued before the call.
// It returns the number of callbacks run.
func (h *Host) Advance(ts time.Duration) int {
	h.mu.Lock()
	h.now = ts
	h.mu.Unlock()
	return h.frames.Run(ts)
}

// Step advances the clock by d and runs the queued callbacks
func (h *Host) Step(d time.Duration) int {
	return h.Advance(h.Now() + d)
}

// Now returns the timestamp of the last Advance
func (h *Host) Now() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

// PendingFrames returns the number of queued frame callbacks
func (h *Host) PendingFrames() int {
	return h.frames.Len()
}

// OnResize registers a resize listener
func (h *Host) OnResize(fn func(backdrop.Viewport)) backdrop.Subscription {
	return h.resize.Add(fn)
}

// OnScroll registers a scroll listener
func (h *Host) OnScroll(fn func(backdrop.ScrollMetrics)) backdrop.Subscription {
	return h.scroll.Add(fn)
}

// Listeners returns the number of active resize and scroll listeners
func (h *Host) Listeners() (resize, scroll int) {
	return h.resize.Len(), h.scroll.Len()
}

// SetViewport changes the viewport and notifies resize listeners synchronously
func (h *Host) SetViewport(vp backdrop.Viewport) {
	h.mu.Lock()
	h.viewport = vp
	h.mu.Unlock()
	h.resize.Emit(vp)
}

// Scroll records m as the document's scroll state and notifies scroll listeners synchronously
func (h *Host) Scroll(m backdrop.ScrollMetrics) {
	h.mu.Lock()
	h.metrics = m
	h.mu.Unlock()
	h.scroll.Emit(m)
}

// ScrollMetrics returns the metrics of the last Scroll
func (h *Host) ScrollMetrics() backdrop.ScrollMetrics {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.metrics
}

// ScrollTo scrolls a document of docHeight to top, using the current viewport height
func (h *Host) ScrollTo(top, docHeight float64) {
	h.Scroll(backdrop.ScrollMetrics{Top: top, Height: docHeight, Viewport: h.Viewport().Height})
}
