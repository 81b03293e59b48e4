package backdrop

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

type drawCall struct {
	op     string
	rect   Rect
	top    color.NRGBA
	bottom color.NRGBA
	x, y   float64
	radius float64
	fill   color.NRGBA
	glow   Glow
}

type callSurface struct {
	calls []drawCall
}

func (s *callSurface) Resize(image.Point, Size, f64.Aff3) {}

func (s *callSurface) Clear(r Rect) {
	s.calls = append(s.calls, drawCall{op: "clear", rect: r})
}

func (s *callSurface) FillVerticalGradient(r Rect, top, bottom color.NRGBA) {
	s.calls = append(s.calls, drawCall{op: "gradient", rect: r, top: top, bottom: bottom})
}

func (s *callSurface) FillCircle(cx, cy, radius float64, fill color.NRGBA, glow Glow) {
	s.calls = append(s.calls, drawCall{op: "circle", x: cx, y: cy, radius: radius, fill: fill, glow: glow})
}

func TestRendererDrawOrder(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	field := NewField(5, FieldBounds{ViewportWidth: 1000, ViewportHeight: 800}, newRand(3), 1)
	s := &callSurface{}

	r.Draw(s, Frame{Timestamp: 1500 * time.Millisecond, Field: field})

	require.Len(t, s.calls, 3+5)
	assert.Equal(t, drawCall{op: "clear", rect: Rect{W: 1000, H: 1600}}, s.calls[0])

	top := s.calls[1]
	assert.Equal(t, "gradient", top.op)
	assert.InDelta(t, 0, top.rect.Y, 1e-9)
	assert.InDelta(t, 120, top.rect.H, 1e-9)
	assert.Equal(t, BackgroundColor, top.top)
	assert.Zero(t, top.bottom.A)

	bottom := s.calls[2]
	assert.Equal(t, "gradient", bottom.op)
	assert.InDelta(t, 1480, bottom.rect.Y, 1e-9)
	assert.InDelta(t, 120, bottom.rect.H, 1e-9)
	assert.Zero(t, bottom.top.A)
	assert.Equal(t, BackgroundColor, bottom.bottom)

	for i, c := range s.calls[3:] {
		p := field.At(i)
		assert.Equal(t, "circle", c.op)
		assert.Equal(t, p.Radius, c.radius)
		fill, glow := ParticleColors(p.Hue)
		assert.Equal(t, fill, c.fill)
		assert.Equal(t, Glow{Color: glow, Blur: 6}, c.glow)
	}
}

func TestRendererPosition(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	field := NewField(1, FieldBounds{ViewportWidth: 1000, ViewportHeight: 800}, newRand(9), 1)
	p := field.At(0)

	f := Frame{Timestamp: 2 * time.Second, Field: field}
	x, y := r.Position(p, f)
	dx, dy := Drift(2000, p.Seed, 40)
	assert.InDelta(t, 500+p.X+dx, x, 1e-9)
	assert.InDelta(t, 800+p.Y+dy, y, 1e-9)

	f.Progress = 0.5
	x2, y2 := r.Position(p, f)
	assert.InDelta(t, x, x2, 1e-9, "parallax is vertical only")
	assert.InDelta(t, 0.5*800*0.6, y-y2, 1e-9)
}

func TestParallaxOffset(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	assert.Zero(t, r.ParallaxOffset(0, 900))
	assert.InDelta(t, 270, r.ParallaxOffset(0.5, 900), 1e-9)
	assert.InDelta(t, 540, r.ParallaxOffset(1, 900), 1e-9)
}

func TestRendererEmptyField(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	s := &callSurface{}
	r.Draw(s, Frame{Field: NewField(0, FieldBounds{ViewportWidth: 10, ViewportHeight: 10}, newRand(1), 1)})
	assert.Len(t, s.calls, 3)
}
