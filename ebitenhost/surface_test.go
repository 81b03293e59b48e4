package ebitenhost

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"

	"portfoliobg/backdrop"
)

var _ backdrop.Surface = (*Surface)(nil)

func TestSurfaceWithoutBacking(t *testing.T) {
	s := NewSurface()
	assert.Nil(t, s.Image())
	assert.Equal(t, image.Point{}, s.Backing())

	s.Resize(image.Pt(0, 300), backdrop.Size{H: 150}, f64.Aff3{2, 0, 0, 0, 2, 0})
	assert.Nil(t, s.Image(), "an empty backing store allocates nothing")
	assert.Equal(t, 2.0, s.scale)

	assert.NotPanics(t, func() {
		s.Clear(backdrop.Rect{W: 10, H: 10})
		s.FillVerticalGradient(backdrop.Rect{W: 10, H: 10}, backdrop.BackgroundColor, color.NRGBA{})
		s.FillCircle(5, 5, 2, color.NRGBA{R: 255, A: 255}, backdrop.Glow{Blur: 6})
	})
}

func TestSurfaceResize(t *testing.T) {
	s := NewSurface()
	s.Resize(image.Pt(200, 300), backdrop.Size{W: 100, H: 150}, f64.Aff3{2, 0, 0, 0, 2, 0})
	require.NotNil(t, s.Image())
	assert.Equal(t, image.Pt(200, 300), s.Backing())
	assert.Equal(t, image.Rect(0, 0, 200, 300), s.Image().Bounds())

	dr, ok := s.deviceRect(backdrop.Rect{X: 90, Y: 140, W: 50, H: 50})
	assert.True(t, ok)
	assert.Equal(t, image.Rect(180, 280, 200, 300), dr, "clipped to the backing image")

	_, ok = s.deviceRect(backdrop.Rect{X: 500, Y: 500, W: 5, H: 5})
	assert.False(t, ok)

	s.Resize(image.Pt(64, 64), backdrop.Size{W: 64, H: 64}, f64.Aff3{1, 0, 0, 0, 1, 0})
	assert.Equal(t, image.Rect(0, 0, 64, 64), s.Image().Bounds())

	s.release()
	assert.Nil(t, s.Image())
	assert.Equal(t, image.Point{}, s.Backing())
}
