package backdrop

import "math"

// Noise is a cheap smooth pseudo-noise in [-1, 1]: the average of two sine
// waves at unrelated frequencies, phase-shifted by seed.
// It is pure, so the motion of a particle depends only on (t, seed).
func Noise(t, seed float64) float64 {
	return math.Sin(t*0.7+seed*1.3)*0.5 + math.Sin(t*0.23+seed*0.9)*0.5
}

// Drift returns the horizontal and vertical drift of a particle at ms milliseconds,
// each in [-amplitude, amplitude]. The axes use different time scales and the
// vertical axis is offset so the two never move in step.
func Drift(ms, seed, amplitude float64) (dx, dy float64) {
	nx := Noise(ms*0.0006, seed)
	ny := Noise(ms*0.0008+10, seed)
	return nx * amplitude, ny * amplitude
}
