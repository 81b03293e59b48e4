package backdrop

import (
	"image"
	"image/color"
	"sync"
	"time"

	"golang.org/x/image/math/f64"
)

// Viewport describes the host's visible area
type Viewport struct {
	Width            float64 // Logical pixels
	Height           float64 // Logical pixels
	DevicePixelRatio float64 // Physical pixels per logical pixel
}

// ScrollMetrics is a snapshot of the host document's scroll state, in logical pixels
type ScrollMetrics struct {
	Top      float64 // Distance scrolled from the top of the document
	Height   float64 // Total document height
	Viewport float64 // Visible height
}

// FrameCallback is invoked once per display refresh with a monotonic timestamp
type FrameCallback func(ts time.Duration)

// FrameHandle identifies a pending frame request
type FrameHandle uint64

// Scheduler is the host's per-refresh callback primitive.
// A callback registered with RequestFrame runs at most once; it must request
// again to keep running.
type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameHandle
	CancelFrame(h FrameHandle)
}

// Subscription is an active event registration. Close is idempotent.
type Subscription interface {
	Close()
}

// Host is the environment a Component is mounted into.
// Frame, resize and scroll callbacks may arrive on any goroutine.
type Host interface {
	Scheduler

	// Viewport returns the current viewport
	Viewport() Viewport

	// OnResize registers fn to be called after every viewport change
	OnResize(fn func(Viewport)) Subscription

	// OnScroll registers fn to be called with every scroll update
	OnScroll(fn func(ScrollMetrics)) Subscription

	// ScrollMetrics returns the current scroll state of the document
	ScrollMetrics() ScrollMetrics

	// Surface returns the drawing surface, or an error if none is available
	Surface() (Surface, error)
}

// Size is a width/height pair in logical pixels
type Size struct {
	W, H float64
}

// Rect is an axis aligned rectangle in logical pixels
type Rect struct {
	X, Y, W, H float64
}

// Glow describes the soft halo painted around a circle
type Glow struct {
	Color color.NRGBA
	Blur  float64
}

// Surface is a 2D drawing context. All drawing coordinates are logical pixels,
// mapped to the backing store through the transform given to Resize.
type Surface interface {
	// Resize reallocates the backing store, records the displayed size and the
	// drawing transform, and discards previous contents
	Resize(backing image.Point, display Size, m f64.Aff3)

	// Clear makes the rectangle fully transparent
	Clear(r Rect)

	// FillVerticalGradient fills r blending linearly from top to bottom
	FillVerticalGradient(r Rect, top, bottom color.NRGBA)

	// FillCircle fills a circle and paints its glow underneath
	FillCircle(cx, cy, radius float64, fill color.NRGBA, glow Glow)
}

// FuncSubscription adapts a function to Subscription, running it at most once
type FuncSubscription struct {
	once sync.Once
	fn   func()
}

// NewFuncSubscription returns a Subscription that calls fn on the first Close
func NewFuncSubscription(fn func()) *FuncSubscription {
	return &FuncSubscription{fn: fn}
}

// Close runs the release function the first time it is called
func (s *FuncSubscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.fn != nil {
			s.fn()
		}
	})
}
