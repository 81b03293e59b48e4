package headless

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/math/f64"

	"portfoliobg/backdrop"
)

// OpKind identifies a recorded drawing operation
type OpKind int

const (
	OpResize OpKind = iota
	OpClear
	OpGradient
	OpCircle
)

func (k OpKind) String() string {
	switch k {
	case OpResize:
		return "resize"
	case OpClear:
		return "clear"
	case OpGradient:
		return "gradient"
	case OpCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Op is one recorded drawing call
type Op struct {
	Kind OpKind
	Rect backdrop.Rect

	// Gradient
	Top, Bottom color.NRGBA

	// Circle
	X, Y, Radius float64
	Fill         color.NRGBA
	Glow         backdrop.Glow
}

// Recorder is a backdrop.Surface that records calls instead of drawing
type Recorder struct {
	mu        sync.Mutex
	ops       []Op
	backing   image.Point
	display   backdrop.Size
	transform f64.Aff3
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Resize records the new dimensions. Like a canvas, resizing drops what was drawn.
func (r *Recorder) Resize(backing image.Point, display backdrop.Size, m f64.Aff3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backing = backing
	r.display = display
	r.transform = m
	r.ops = append(r.ops, Op{Kind: OpResize, Rect: backdrop.Rect{W: display.W, H: display.H}})
}

// Clear records a clear
func (r *Recorder) Clear(rect backdrop.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: OpClear, Rect: rect})
}

// FillVerticalGradient records a gradient fill
func (r *Recorder) FillVerticalGradient(rect backdrop.Rect, top, bottom color.NRGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: OpGradient, Rect: rect, Top: top, Bottom: bottom})
}

// FillCircle records a circle
func (r *Recorder) FillCircle(cx, cy, radius float64, fill color.NRGBA, glow backdrop.Glow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, Op{Kind: OpCircle, X: cx, Y: cy, Radius: radius, Fill: fill, Glow: glow})
}

// Ops returns a copy of the recorded operations
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Reset forgets recorded operations but keeps the dimensions
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = r.ops[:0]
}

// Backing returns the backing store size from the last Resize
func (r *Recorder) Backing() image.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backing
}

// Display returns the displayed size from the last Resize
func (r *Recorder) Display() backdrop.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.display
}

// Transform returns the drawing transform from the last Resize
func (r *Recorder) Transform() f64.Aff3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transform
}

// Count returns how many operations of kind k were recorded
func (r *Recorder) Count(k OpKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}
