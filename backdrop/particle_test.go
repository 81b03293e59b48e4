package backdrop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldRanges(t *testing.T) {
	bounds := FieldBounds{ViewportWidth: 1024, ViewportHeight: 768}
	f := NewField(200, bounds, newRand(1), 1)

	require.Equal(t, 200, f.Len())
	assert.Equal(t, uint64(1), f.Generation())
	assert.Equal(t, bounds, f.Bounds())

	f.Each(func(i int, p Particle) {
		assert.GreaterOrEqual(t, p.X, -512.0)
		assert.Less(t, p.X, 512.0)
		assert.GreaterOrEqual(t, p.Y, -768.0)
		assert.Less(t, p.Y, 768.0)
		assert.GreaterOrEqual(t, p.Radius, 1.2)
		assert.Less(t, p.Radius, 3.6)
		assert.GreaterOrEqual(t, p.Seed, 0.0)
		assert.Less(t, p.Seed, 1000.0)
		assert.Equal(t, HueAt(i), p.Hue)
	})
}

func TestHueAt(t *testing.T) {
	assert.Zero(t, HueAt(0))
	assert.InDelta(t, 0.7, HueAt(1), 1e-9)
	assert.InDelta(t, 140, HueAt(200), 1e-9)
	// Wraps past a full turn
	assert.InDelta(t, 60, HueAt(600), 1e-6)
	for i := 0; i < 2000; i++ {
		h := HueAt(i)
		assert.GreaterOrEqual(t, h, 0.0)
		assert.Less(t, h, 360.0)
	}
}

func TestNewFieldSeeded(t *testing.T) {
	bounds := FieldBounds{ViewportWidth: 800, ViewportHeight: 600}
	a := NewField(50, bounds, newRand(42), 1)
	b := NewField(50, bounds, newRand(42), 1)
	c := NewField(50, bounds, newRand(43), 1)

	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.At(i), b.At(i))
	}
	assert.NotEqual(t, a.At(0), c.At(0))
}

func TestFieldNilAndEmpty(t *testing.T) {
	var f *Field
	assert.Zero(t, f.Len())
	assert.Zero(t, f.Generation())
	assert.Equal(t, FieldBounds{}, f.Bounds())
	f.Each(func(int, Particle) { t.Fatal("nil field has no particles") })

	empty := NewField(-3, FieldBounds{ViewportWidth: 10, ViewportHeight: 10}, newRand(1), 2)
	assert.Zero(t, empty.Len())
}

func TestFieldAtNil(t *testing.T) {
	var f *Field
	assert.NotPanics(t, func() {
		assert.Equal(t, Particle{}, f.At(0))
	})

	g := NewField(2, FieldBounds{ViewportWidth: 10, ViewportHeight: 10}, newRand(1), 1)
	assert.Panics(t, func() { g.At(2) })
}
