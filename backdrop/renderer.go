package backdrop

import (
	"time"
)

const (
	// edgeFade is the fraction of viewport height covered by each edge fade
	edgeFade = 0.15
)

// Frame is everything the renderer needs to paint one frame
type Frame struct {
	Timestamp time.Duration
	Progress  float64 // Smoothed scroll progress in [0, 1]
	Field     *Field  // Laid out for Field.Bounds()
}

// Renderer paints frames onto a Surface
type Renderer struct {
	parallax  float64
	amplitude float64
	blur      float64
}

// NewRenderer creates a renderer from the drawing parameters in cfg
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		parallax:  cfg.ParallaxFactor,
		amplitude: cfg.DriftAmplitude,
		blur:      cfg.GlowBlur,
	}
}

// ParallaxOffset returns the upward shift applied to every particle for the given progress
func (r *Renderer) ParallaxOffset(progress, viewportHeight float64) float64 {
	return progress * viewportHeight * r.parallax
}

// Position returns the on-surface position of p at frame f
func (r *Renderer) Position(p Particle, f Frame) (x, y float64) {
	ms := float64(f.Timestamp) / float64(time.Millisecond)
	dx, dy := Drift(ms, p.Seed, r.amplitude)

	b := f.Field.Bounds()
	vw, vh := b.ViewportWidth, b.ViewportHeight
	x = vw*0.5 + p.X + dx
	y = vh + p.Y + dy - r.ParallaxOffset(f.Progress, vh)
	return x, y
}

// Draw paints one frame: clear, top and bottom edge fades, then every particle
func (r *Renderer) Draw(s Surface, f Frame) {
	b := f.Field.Bounds()
	vw, vh := b.ViewportWidth, b.ViewportHeight

	// Browsers clear on resize but the previous frame is still here otherwise
	s.Clear(Rect{X: 0, Y: 0, W: vw, H: vh * 2})

	// Edge fades mask particles entering at the top and bottom
	s.FillVerticalGradient(Rect{X: 0, Y: 0, W: vw, H: vh * edgeFade}, BackgroundColor, backgroundClear)
	s.FillVerticalGradient(Rect{X: 0, Y: vh * (2 - edgeFade), W: vw, H: vh * edgeFade}, backgroundClear, BackgroundColor)

	f.Field.Each(func(_ int, p Particle) {
		x, y := r.Position(p, f)
		fill, glow := ParticleColors(p.Hue)
		s.FillCircle(x, y, p.Radius, fill, Glow{Color: glow, Blur: r.blur})
	})
}
