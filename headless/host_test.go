package headless

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"

	"portfoliobg/backdrop"
)

func TestHostAdvance(t *testing.T) {
	h := NewHost(backdrop.Viewport{Width: 800, Height: 600, DevicePixelRatio: 1}, NewRecorder())
	var stamps []time.Duration
	h.RequestFrame(func(ts time.Duration) { stamps = append(stamps, ts) })
	cancelled := h.RequestFrame(func(time.Duration) { t.Fatal("cancelled frame ran") })
	h.CancelFrame(cancelled)
	assert.Equal(t, 1, h.PendingFrames())

	assert.Equal(t, 1, h.Advance(10*time.Millisecond))
	assert.Equal(t, 10*time.Millisecond, h.Now())

	h.RequestFrame(func(ts time.Duration) { stamps = append(stamps, ts) })
	assert.Equal(t, 1, h.Step(5*time.Millisecond))
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}, stamps)
	assert.Zero(t, h.Step(time.Millisecond))
}

func TestHostEvents(t *testing.T) {
	h := NewHost(backdrop.Viewport{Width: 800, Height: 600, DevicePixelRatio: 1}, NewRecorder())

	var vps []backdrop.Viewport
	var scrolls []backdrop.ScrollMetrics
	rs := h.OnResize(func(vp backdrop.Viewport) { vps = append(vps, vp) })
	ss := h.OnScroll(func(m backdrop.ScrollMetrics) { scrolls = append(scrolls, m) })
	resize, scroll := h.Listeners()
	assert.Equal(t, 1, resize)
	assert.Equal(t, 1, scroll)

	next := backdrop.Viewport{Width: 400, Height: 700, DevicePixelRatio: 2}
	h.SetViewport(next)
	assert.Equal(t, []backdrop.Viewport{next}, vps)
	assert.Equal(t, next, h.Viewport())

	assert.Equal(t, backdrop.ScrollMetrics{}, h.ScrollMetrics())
	h.ScrollTo(300, 2800)
	assert.Equal(t, []backdrop.ScrollMetrics{{Top: 300, Height: 2800, Viewport: 700}}, scrolls)
	assert.Equal(t, scrolls[0], h.ScrollMetrics())

	rs.Close()
	ss.Close()
	h.SetViewport(backdrop.Viewport{Width: 1, Height: 1})
	h.Scroll(backdrop.ScrollMetrics{})
	assert.Len(t, vps, 1)
	assert.Len(t, scrolls, 1)
}

func TestHostSurface(t *testing.T) {
	rec := NewRecorder()
	s, err := NewHost(backdrop.Viewport{}, rec).Surface()
	require.NoError(t, err)
	assert.Same(t, rec, s)

	_, err = NewHost(backdrop.Viewport{}, nil).Surface()
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	m := f64.Aff3{2, 0, 0, 0, 2, 0}
	r.Resize(image.Pt(200, 400), backdrop.Size{W: 100, H: 200}, m)
	r.Clear(backdrop.Rect{W: 100, H: 200})
	r.FillVerticalGradient(backdrop.Rect{W: 100, H: 15}, backdrop.BackgroundColor, backdrop.BackgroundColor)
	r.FillCircle(10, 20, 3, backdrop.BackgroundColor, backdrop.Glow{Blur: 6})

	assert.Equal(t, image.Pt(200, 400), r.Backing())
	assert.Equal(t, backdrop.Size{W: 100, H: 200}, r.Display())
	assert.Equal(t, m, r.Transform())

	ops := r.Ops()
	require.Len(t, ops, 4)
	kinds := []OpKind{ops[0].Kind, ops[1].Kind, ops[2].Kind, ops[3].Kind}
	assert.Equal(t, []OpKind{OpResize, OpClear, OpGradient, OpCircle}, kinds)
	assert.Equal(t, 3.0, ops[3].Radius)
	assert.Equal(t, "circle", OpCircle.String())
	assert.Equal(t, "unknown", OpKind(99).String())

	r.Reset()
	assert.Empty(t, r.Ops())
	assert.Equal(t, image.Pt(200, 400), r.Backing())
}
