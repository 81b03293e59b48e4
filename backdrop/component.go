package backdrop

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Component is the animated particle backdrop. It is mounted into a Host, which
// supplies the viewport, scroll events, a frame scheduler and a drawing surface.
type Component struct {
	cfg      Config
	log      *zap.Logger
	layout   *Layout
	renderer *Renderer

	// Swapped whole on every regeneration; frames read it without locking
	field atomic.Pointer[Field]

	// Held while a frame is painted and while the surface is resized, so a
	// resize delivered on another goroutine never lands mid-frame
	renderMu sync.Mutex

	mu         sync.Mutex
	rng        *rand.Rand
	surface    Surface
	loop       *Loop
	scroll     *ScrollTracker
	resizeSub  Subscription
	mounted    bool
	generation uint64
	frames     atomic.Uint64
}

// Stats is a snapshot of the component state
type Stats struct {
	Mounted    bool
	Particles  int
	Generation uint64
	Frames     uint64
	Progress   float64
	Metrics    Metrics
}

// NewComponent creates an unmounted component. A nil logger disables logging.
func NewComponent(cfg Config, logger *zap.Logger) (*Component, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Component{
		cfg:      cfg,
		log:      logger.Named("backdrop"),
		layout:   NewLayout(cfg.MaxDevicePixelRatio),
		renderer: NewRenderer(cfg),
		rng:      newRand(cfg.Seed),
	}, nil
}

// Config returns the component configuration
func (c *Component) Config() Config {
	return c.cfg
}

// Mount sizes the surface, generates the particle field, starts the render loop
// and subscribes to scroll and resize events.
// If the host has no surface Mount returns an error wrapping ErrNoSurface and
// the component stays unmounted and renders nothing.
func (c *Component) Mount(h Host) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted {
		return ErrMounted
	}

	s, err := h.Surface()
	if err == nil && s == nil {
		err = ErrNoSurface
	}
	if err != nil {
		if !errors.Is(err, ErrNoSurface) {
			err = fmt.Errorf("%w: %v", ErrNoSurface, err)
		}
		c.log.Warn("backdrop disabled", zap.Error(err))
		return err
	}

	c.surface = s
	c.mounted = true
	c.regenerateLocked(h.Viewport())

	c.scroll = NewScrollTracker(c.cfg.ScrollDamping)
	c.scroll.Attach(h)

	c.loop = NewLoop(h, c.draw)
	c.loop.Start()

	c.resizeSub = h.OnResize(c.onResize)

	m := c.layout.Current()
	c.log.Info("backdrop mounted",
		zap.Float64("width", m.Viewport.Width),
		zap.Float64("height", m.Viewport.Height),
		zap.Float64("dpr", m.DPR),
		zap.Int("particles", c.field.Load().Len()),
	)
	return nil
}

// Unmount cancels the render loop and releases the scroll and resize subscriptions.
// It is idempotent and safe to call on a component whose Mount failed or never ran.
func (c *Component) Unmount() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loop != nil {
		c.loop.Stop()
		c.loop = nil
	}
	if c.scroll != nil {
		c.scroll.Close()
	}
	if c.resizeSub != nil {
		c.resizeSub.Close()
		c.resizeSub = nil
	}
	if c.mounted {
		c.log.Info("backdrop unmounted", zap.Uint64("frames", c.frames.Load()))
	}
	c.mounted = false
	c.surface = nil
	c.field.Store(nil)
}

// Stats returns a snapshot of the component state
func (c *Component) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Stats{
		Mounted:    c.mounted,
		Generation: c.generation,
		Frames:     c.frames.Load(),
		Metrics:    c.layout.Current(),
	}
	if f := c.field.Load(); f != nil {
		st.Particles = f.Len()
	}
	if c.scroll != nil {
		st.Progress = c.scroll.Progress()
	}
	return st
}

// Field returns the current particle field, nil while unmounted
func (c *Component) Field() *Field {
	return c.field.Load()
}

// Renderer returns the renderer used for every frame
func (c *Component) Renderer() *Renderer {
	return c.renderer
}

func (c *Component) onResize(vp Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	c.regenerateLocked(vp)
}

// regenerateLocked re-runs layout and replaces the whole particle field.
// The particle count is chosen from the viewport of this generation.
func (c *Component) regenerateLocked(vp Viewport) {
	c.renderMu.Lock()
	m := c.layout.Resize(c.surface, vp)
	n := c.cfg.ParticleCount(m.Viewport.Width)

	c.generation++
	bounds := FieldBounds{ViewportWidth: m.Viewport.Width, ViewportHeight: m.Viewport.Height}
	c.field.Store(NewField(n, bounds, c.rng, c.generation))
	c.renderMu.Unlock()

	c.log.Debug("particle field regenerated",
		zap.Uint64("generation", c.generation),
		zap.Int("particles", n),
		zap.Int("backing_width", m.Backing.X),
		zap.Int("backing_height", m.Backing.Y),
	)
}

func (c *Component) draw(ts time.Duration) {
	c.mu.Lock()
	s, tracker := c.surface, c.scroll
	c.mu.Unlock()
	if s == nil || tracker == nil {
		return
	}

	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	f := c.field.Load()
	if f == nil {
		return
	}
	c.renderer.Draw(s, Frame{
		Timestamp: ts,
		Progress:  tracker.Progress(),
		Field:     f,
	})
	c.frames.Inc()
}
