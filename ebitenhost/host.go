// Package ebitenhost runs a backdrop in a desktop window. The window plays the
// part of a browser page: its size is the viewport, the monitor scale factor is
// the device pixel ratio, wheel and keyboard scroll a virtual document and
// every Draw is a display refresh.
package ebitenhost

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"portfoliobg/backdrop"
	"portfoliobg/hostkit"
)

// ErrClosed is returned by Surface after Close
var ErrClosed = errors.New("ebitenhost: host closed")

// Mountable is anything with a mount lifecycle, normally a *backdrop.Component
type Mountable interface {
	Mount(h backdrop.Host) error
	Unmount()
}

type statsSource interface {
	Stats() backdrop.Stats
}

// Options configures a Host
type Options struct {
	// DocumentViewports is the height of the virtual document in viewport heights
	DocumentViewports float64

	// ScrollStep is the scroll distance of one wheel notch or arrow key press in logical pixels
	ScrollStep float64

	// DebugOverlay shows the debug overlay from the start. F1 toggles it.
	DebugOverlay bool

	// ProfileDir enables FPS drop profiling into this directory when set
	ProfileDir string

	// FPSThreshold is the average frame rate below which a profile is captured
	FPSThreshold float64
}

// DefaultOptions returns the default host options
func DefaultOptions() Options {
	return Options{
		DocumentViewports: 4,
		ScrollStep:        60,
		FPSThreshold:      45,
	}
}

// Host implements ebiten.Game and backdrop.Host
type Host struct {
	opts     Options
	log      *zap.Logger
	surface  *Surface
	profiler *Profiler

	frames hostkit.FrameQueue
	resize hostkit.Listeners[backdrop.Viewport]
	scroll hostkit.Listeners[backdrop.ScrollMetrics]

	mu            sync.Mutex
	viewport      backdrop.Viewport
	hasViewport   bool
	resizePending bool
	closed        bool

	component  Mountable
	mountTried bool
	doc        Document

	start      time.Time
	lastUpdate time.Time
	fps        fpsMeter
}

// New creates a window host. A nil logger disables logging.
func New(opts Options, logger *zap.Logger) (*Host, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ebitenhost")

	h := &Host{
		opts:       opts,
		log:        logger,
		surface:    NewSurface(),
		doc:        Document{Viewports: opts.DocumentViewports},
		start:      time.Now(),
		lastUpdate: time.Now(),
		fps:        newFPSMeter(),
	}
	if opts.ProfileDir != "" {
		p, err := NewProfiler(opts.ProfileDir, logger)
		if err != nil {
			return nil, fmt.Errorf("ebitenhost: %w", err)
		}
		h.profiler = p
	}
	GetDebugState().ShowOverlay = opts.DebugOverlay
	return h, nil
}

// Attach sets the component mounted on the first update after the window has a size
func (h *Host) Attach(m Mountable) {
	h.component = m
}

// Close unmounts the component and releases the surface
func (h *Host) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	if h.component != nil {
		h.component.Unmount()
	}
	h.surface.release()
	if h.profiler != nil {
		h.profiler.Wait()
	}
}

// Viewport returns the last window size seen by Layout
func (h *Host) Viewport() backdrop.Viewport {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewport
}

// Surface returns the offscreen drawing surface
func (h *Host) Surface() (backdrop.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	return h.surface, nil
}

// RequestFrame queues cb for the next Draw
func (h *Host) RequestFrame(cb backdrop.FrameCallback) backdrop.FrameHandle {
	return h.frames.Request(cb)
}

// CancelFrame drops a queued callback
func (h *Host) CancelFrame(handle backdrop.FrameHandle) {
	h.frames.Cancel(handle)
}

// OnResize registers a listener called from Update after the window size changes
func (h *Host) OnResize(fn func(backdrop.Viewport)) backdrop.Subscription {
	return h.resize.Add(fn)
}

// OnScroll registers a listener called from Update when the virtual document scrolls
func (h *Host) OnScroll(fn func(backdrop.ScrollMetrics)) backdrop.Subscription {
	return h.scroll.Add(fn)
}

// ScrollMetrics returns the scroll state of the virtual document
func (h *Host) ScrollMetrics() backdrop.ScrollMetrics {
	return h.doc.Metrics(h.Viewport().Height)
}

// Update handles input, delivers resize and scroll events and mounts the component
func (h *Host) Update() error {
	now := time.Now()
	dt := clampDelta(now.Sub(h.lastUpdate).Seconds())
	h.lastUpdate = now

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		debugState := GetDebugState()
		debugState.ShowOverlay = !debugState.ShowOverlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if h.fps.tick(dt) {
		h.checkFPS()
	}

	vp, ok := h.peekViewport()
	if !ok {
		return nil
	}
	h.deliver(readScrollInput(h.opts.ScrollStep, vp.Height))
	return nil
}

// deliver mounts the component on the first call after the window has a size,
// then sends a pending resize followed by the clamped scroll position, then
// applies cmd. The mount tick sends no resize.
func (h *Host) deliver(cmd scrollCommand) {
	vp, ok, resized := h.takeViewport()
	if !ok {
		return
	}

	if h.component != nil && !h.mountTried {
		h.mountTried = true
		resized = false
		if err := h.component.Mount(h); err != nil {
			h.log.Warn("backdrop mount failed, showing plain background", zap.Error(err))
		}
	}

	if resized {
		h.doc.Clamp(vp.Height)
		h.resize.Emit(vp)
		h.scroll.Emit(h.doc.Metrics(vp.Height))
	}

	if h.doc.Apply(cmd, vp.Height) {
		h.scroll.Emit(h.doc.Metrics(vp.Height))
	}
}

// Draw runs the frame callbacks queued since the previous Draw and shows the visible part of the surface
func (h *Host) Draw(screen *ebiten.Image) {
	h.frames.Run(time.Since(h.start))

	screen.Fill(backdrop.BackgroundColor)
	if img := h.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
	}

	if GetDebugState().ShowOverlay {
		ebitenutil.DebugPrint(screen, h.overlayText())
	}
}

// Layout records the window size as the viewport and returns the screen size
// in physical pixels: the top half of the backing store once it exists.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil {
		dpr = m.DeviceScaleFactor()
	}
	h.setViewport(backdrop.Viewport{
		Width:            float64(outsideWidth),
		Height:           float64(outsideHeight),
		DevicePixelRatio: dpr,
	})

	if b := h.surface.Backing(); b.X > 0 && b.Y > 1 {
		return b.X, b.Y / 2
	}
	return max(1, int(math.Floor(float64(outsideWidth)*dpr))), max(1, int(math.Floor(float64(outsideHeight)*dpr)))
}

func (h *Host) setViewport(vp backdrop.Viewport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hasViewport && vp == h.viewport {
		return
	}
	h.resizePending = h.hasViewport
	h.viewport = vp
	h.hasViewport = true
}

func (h *Host) peekViewport() (backdrop.Viewport, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewport, h.hasViewport
}

// takeViewport returns the viewport and whether a resize is waiting to be delivered
func (h *Host) takeViewport() (vp backdrop.Viewport, ok, resized bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	resized = h.resizePending
	h.resizePending = false
	return h.viewport, h.hasViewport, resized
}

func (h *Host) checkFPS() {
	if h.profiler == nil || !shouldProfile(h.fps.fps, h.opts.FPSThreshold, time.Since(h.start)) {
		return
	}
	reason := fmt.Sprintf("fps%.0f", h.fps.fps)
	if err := h.profiler.CaptureProfile(reason); err != nil {
		if !errors.Is(err, ErrProfileCooldown) {
			h.log.Debug("profile not captured", zap.Error(err))
		}
		return
	}
	h.log.Warn("fps drop detected, capturing profile", zap.Float64("fps", h.fps.fps))
}

func (h *Host) overlayText() string {
	text := fmt.Sprintf("FPS: %0.1f (avg %0.1f)\nTPS: %0.1f", ebiten.ActualFPS(), h.fps.fps, ebiten.ActualTPS())
	if s, ok := h.component.(statsSource); ok {
		st := s.Stats()
		text += fmt.Sprintf("\nParticles: %d (generation %d)\nFrames: %d\nProgress: %0.3f\nBacking: %dx%d @%0.2fx",
			st.Particles, st.Generation, st.Frames, st.Progress,
			st.Metrics.Backing.X, st.Metrics.Backing.Y, st.Metrics.DPR)
	}
	text += fmt.Sprintf("\nScroll: %0.0f / %0.0f", h.doc.Top, h.doc.Height(h.Viewport().Height))
	return text
}
