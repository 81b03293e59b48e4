package backdrop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseRange(t *testing.T) {
	for seed := 0.0; seed < 1000; seed += 37.5 {
		for ts := 0.0; ts < 200; ts += 0.73 {
			n := Noise(ts, seed)
			assert.GreaterOrEqual(t, n, -1.0)
			assert.LessOrEqual(t, n, 1.0)
		}
	}
}

func TestNoiseIsPure(t *testing.T) {
	assert.Equal(t, Noise(12.5, 431.2), Noise(12.5, 431.2))
	assert.InDelta(t, 0.0, Noise(0, 0), 1e-12)

	want := 0.5*math.Sin(3*0.7+2*1.3) + 0.5*math.Sin(3*0.23+2*0.9)
	assert.InDelta(t, want, Noise(3, 2), 1e-12)
}

func TestDrift(t *testing.T) {
	dx, dy := Drift(5000, 17, 40)
	assert.InDelta(t, Noise(5000*0.0006, 17)*40, dx, 1e-9)
	assert.InDelta(t, Noise(5000*0.0008+10, 17)*40, dy, 1e-9)
	assert.LessOrEqual(t, math.Abs(dx), 40.0)
	assert.LessOrEqual(t, math.Abs(dy), 40.0)

	dx, dy = Drift(5000, 17, 0)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}
