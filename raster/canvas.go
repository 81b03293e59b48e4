// Package raster implements backdrop.Surface on an in-memory RGBA image with
// the golang.org/x/image/vector rasterizer, for rendering without a GPU.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"portfoliobg/backdrop"
)

// kappa places cubic Bézier control points so four curves approximate a circle
const kappa = 0.5522847498

// Canvas is a software backdrop.Surface
type Canvas struct {
	img     *image.RGBA
	display backdrop.Size
	m       f64.Aff3
	scale   float64
	rast    *vector.Rasterizer
}

// New creates an empty canvas; it has no pixels until the first Resize
func New() *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rectangle{}),
		m:     f64.Aff3{1, 0, 0, 0, 1, 0},
		scale: 1,
		rast:  vector.NewRasterizer(0, 0),
	}
}

// Resize reallocates the backing image, which starts fully transparent
func (c *Canvas) Resize(backing image.Point, display backdrop.Size, m f64.Aff3) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(backing.X, 0), max(backing.Y, 0)))
	c.display = display
	c.m = m
	c.scale = backdrop.Scale(m)
}

// Image returns the whole backing store
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Visible returns the top half of the backing store, the part a viewport
// showing the doubled-height surface actually displays
func (c *Canvas) Visible() image.Image {
	b := c.img.Bounds()
	return c.img.SubImage(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+b.Dy()/2))
}

// Clear makes r fully transparent
func (c *Canvas) Clear(r backdrop.Rect) {
	dr := c.deviceRect(r)
	draw.Draw(c.img, dr, image.Transparent, image.Point{}, draw.Src)
}

// FillVerticalGradient composites a top-to-bottom linear gradient over r, one row at a time
func (c *Canvas) FillVerticalGradient(r backdrop.Rect, top, bottom color.NRGBA) {
	_, y0 := backdrop.Apply(c.m, r.X, r.Y)
	_, y1 := backdrop.Apply(c.m, r.X, r.Y+r.H)
	span := y1 - y0
	if !(span > 0) {
		return
	}

	dr := c.deviceRect(r)
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		t := (float64(py) + 0.5 - y0) / span
		row := image.Rect(dr.Min.X, py, dr.Max.X, py+1)
		draw.Draw(c.img, row, image.NewUniform(backdrop.LerpColor(top, bottom, t)), image.Point{}, draw.Over)
	}
}

// FillCircle composites the glow rings and then the circle itself
func (c *Canvas) FillCircle(cx, cy, radius float64, fill color.NRGBA, glow backdrop.Glow) {
	dx, dy := backdrop.Apply(c.m, cx, cy)
	for _, ring := range backdrop.GlowRings(radius, glow) {
		c.disc(dx, dy, ring.Radius*c.scale, ring.Color)
	}
	c.disc(dx, dy, radius*c.scale, fill)
}

// disc fills a circle given in device pixels
func (c *Canvas) disc(cx, cy, r float64, col color.NRGBA) {
	if !(r > 0) || col.A == 0 {
		return
	}
	bbox := image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r)), int(math.Ceil(cy+r)),
	)
	clip := bbox.Intersect(c.img.Bounds())
	if clip.Empty() {
		return
	}

	// The rasterizer mask covers only the clipped box and its origin maps to clip.Min.
	// Path segments outside the mask are clamped by the rasterizer.
	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	c.rast.Reset(clip.Dx(), clip.Dy())
	circlePath(c.rast, float32(cx-ox), float32(cy-oy), float32(r))
	c.rast.DrawOp = draw.Over
	c.rast.Draw(c.img, clip, image.NewUniform(col), image.Point{})
}

// circlePath appends a closed circle to z as four cubic curves
func circlePath(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// deviceRect maps a logical rectangle to device pixels, clipped to the image
func (c *Canvas) deviceRect(r backdrop.Rect) image.Rectangle {
	return backdrop.DeviceRect(c.m, r).Intersect(c.img.Bounds())
}

// Composite returns the visible half flattened over an opaque background, as
// the page behind the canvas would show it
func (c *Canvas) Composite(bg color.Color) *image.RGBA {
	vis := c.Visible()
	b := vis.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), vis, b.Min, draw.Over)
	return out
}
