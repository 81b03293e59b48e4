package backdrop

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Metrics is the result of a layout pass
type Metrics struct {
	Viewport  Viewport
	DPR       float64     // Effective device pixel ratio after capping
	Backing   image.Point // Backing store size in physical pixels
	Display   Size        // Displayed size in logical pixels
	Transform f64.Aff3    // Logical to backing store transform
}

// Layout sizes the drawing surface from the viewport
type Layout struct {
	maxDPR  float64
	current Metrics
}

// NewLayout creates a layout manager capping the device pixel ratio at maxDPR
func NewLayout(maxDPR float64) *Layout {
	if !(maxDPR > 0) {
		maxDPR = 1
	}
	return &Layout{maxDPR: maxDPR}
}

// Compute returns the metrics for vp without touching any surface.
// The surface is twice the viewport height so particles below the fold are
// already painted when the page scrolls.
func (l *Layout) Compute(vp Viewport) Metrics {
	dpr := vp.DevicePixelRatio
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	dpr = math.Min(dpr, l.maxDPR)

	vw := math.Max(vp.Width, 0)
	vh := math.Max(vp.Height, 0)

	backing := image.Pt(int(math.Floor(vw*dpr)), int(math.Floor(vh*dpr*2)))

	return Metrics{
		Viewport:  Viewport{Width: vw, Height: vh, DevicePixelRatio: vp.DevicePixelRatio},
		DPR:       dpr,
		Backing:   backing,
		Display:   Size{W: vw, H: vh * 2},
		Transform: f64.Aff3{dpr, 0, 0, 0, dpr, 0},
	}
}

// Resize computes the metrics for vp and applies them to s.
// Resizing discards the surface contents.
func (l *Layout) Resize(s Surface, vp Viewport) Metrics {
	m := l.Compute(vp)
	s.Resize(m.Backing, m.Display, m.Transform)
	l.current = m
	return m
}

// Current returns the metrics of the last Resize
func (l *Layout) Current() Metrics {
	return l.current
}

// Apply maps a logical point through the transform
func Apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Scale returns the uniform scale factor of m, used to scale radii and line widths
func Scale(m f64.Aff3) float64 {
	return math.Sqrt(math.Abs(m[0]*m[4] - m[1]*m[3]))
}

// DeviceRect maps a logical rectangle through m to the smallest covering
// rectangle of whole device pixels. The result is not clipped.
func DeviceRect(m f64.Aff3, r Rect) image.Rectangle {
	x0, y0 := Apply(m, r.X, r.Y)
	x1, y1 := Apply(m, r.X+r.W, r.Y+r.H)
	return image.Rect(
		int(math.Floor(math.Min(x0, x1))), int(math.Floor(math.Min(y0, y1))),
		int(math.Ceil(math.Max(x0, x1))), int(math.Ceil(math.Max(y0, y1))),
	)
}
