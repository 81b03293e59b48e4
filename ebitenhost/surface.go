package ebitenhost

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/math/f64"

	"portfoliobg/backdrop"
)

// Surface is a backdrop.Surface over an offscreen ebiten image
type Surface struct {
	img     *ebiten.Image
	backing image.Point
	display backdrop.Size
	m       f64.Aff3
	scale   float64
}

// NewSurface creates a surface with no backing image; the first Resize allocates it
func NewSurface() *Surface {
	return &Surface{m: f64.Aff3{1, 0, 0, 0, 1, 0}, scale: 1}
}

// Resize replaces the backing image. The new image starts transparent.
func (s *Surface) Resize(backing image.Point, display backdrop.Size, m f64.Aff3) {
	s.release()
	if backing.X > 0 && backing.Y > 0 {
		s.img = ebiten.NewImage(backing.X, backing.Y)
		s.backing = backing
	}
	s.display = display
	s.m = m
	s.scale = backdrop.Scale(m)
}

// Image returns the backing image, nil before the first non-empty Resize
func (s *Surface) Image() *ebiten.Image {
	return s.img
}

// Backing returns the backing image size in physical pixels
func (s *Surface) Backing() image.Point {
	return s.backing
}

// Clear makes r fully transparent
func (s *Surface) Clear(r backdrop.Rect) {
	dr, ok := s.deviceRect(r)
	if !ok {
		return
	}
	s.img.SubImage(dr).(*ebiten.Image).Clear()
}

// FillVerticalGradient draws a top-to-bottom gradient over r as one-pixel rows
func (s *Surface) FillVerticalGradient(r backdrop.Rect, top, bottom color.NRGBA) {
	dr, ok := s.deviceRect(r)
	if !ok {
		return
	}
	_, y0 := backdrop.Apply(s.m, r.X, r.Y)
	_, y1 := backdrop.Apply(s.m, r.X, r.Y+r.H)
	span := y1 - y0
	if !(span > 0) {
		return
	}
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		t := (float64(py) + 0.5 - y0) / span
		vector.DrawFilledRect(s.img,
			float32(dr.Min.X), float32(py), float32(dr.Dx()), 1,
			backdrop.LerpColor(top, bottom, t), false)
	}
}

// FillCircle draws the glow rings and then the circle, antialiased
func (s *Surface) FillCircle(cx, cy, radius float64, fill color.NRGBA, glow backdrop.Glow) {
	if s.img == nil {
		return
	}
	dx, dy := backdrop.Apply(s.m, cx, cy)
	for _, ring := range backdrop.GlowRings(radius, glow) {
		s.disc(dx, dy, ring.Radius*s.scale, ring.Color)
	}
	s.disc(dx, dy, radius*s.scale, fill)
}

func (s *Surface) disc(cx, cy, r float64, col color.NRGBA) {
	if !(r > 0) || col.A == 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), col, true)
}

func (s *Surface) deviceRect(r backdrop.Rect) (image.Rectangle, bool) {
	if s.img == nil {
		return image.Rectangle{}, false
	}
	dr := backdrop.DeviceRect(s.m, r).Intersect(s.img.Bounds())
	return dr, !dr.Empty()
}

func (s *Surface) release() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.backing = image.Point{}
}
