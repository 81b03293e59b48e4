package backdrop

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colour constants
var (
	// BackgroundColor is the page background the edge fades blend into
	BackgroundColor = color.NRGBA{R: 11, G: 21, B: 32, A: 255}

	backgroundClear = color.NRGBA{R: 11, G: 21, B: 32, A: 0}
)

const (
	particleSaturation = 0.7
	particleLightness  = 0.7
	fillAlpha          = 0.35
	glowAlpha          = 0.4
)

// hsla converts hue (degrees), saturation, lightness and alpha (0-1) to a
// non-premultiplied colour
func hsla(h, s, l, a float64) color.NRGBA {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(a)*255 + 0.5)}
}

// ParticleColors returns the fill and glow colours for a hue
func ParticleColors(hue float64) (fill, glow color.NRGBA) {
	fill = hsla(hue, particleSaturation, particleLightness, fillAlpha)
	glow = hsla(hue, particleSaturation, particleLightness, glowAlpha)
	return fill, glow
}

// GlowRing is one translucent ring of a glow approximation
type GlowRing struct {
	Radius float64
	Color  color.NRGBA
}

// glowSteps is the number of rings used to approximate a blurred halo
const glowSteps = 3

// GlowRings approximates a blurred halo around a circle of the given radius with
// a few concentric translucent discs, outermost first. Surfaces without a blur
// filter paint these before the circle itself.
func GlowRings(radius float64, glow Glow) []GlowRing {
	if glow.Blur <= 0 || glow.Color.A == 0 {
		return nil
	}
	rings := make([]GlowRing, 0, glowSteps)
	for i := glowSteps; i >= 1; i-- {
		frac := float64(i) / glowSteps
		c := glow.Color
		// Outer rings fade out; the stacked alpha near the core stays below the glow alpha
		c.A = uint8(float64(glow.Color.A) * (1 - frac + 1.0/glowSteps) / glowSteps)
		rings = append(rings, GlowRing{
			Radius: radius + glow.Blur*frac,
			Color:  c,
		})
	}
	return rings
}

// LerpColor blends a toward b by t in [0, 1], channel by channel
func LerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
