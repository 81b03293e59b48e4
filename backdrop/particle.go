package backdrop

import (
	"math"
	"math/rand/v2"
)

const (
	minRadius   = 1.2
	radiusRange = 2.4
	maxSeed     = 1000.0
	hueStep     = 0.7
)

// Particle is a single decorative dot.
// X and Y are offsets from the field origin: X from the horizontal centre of the
// viewport, Y from a point one viewport height below the top of the surface.
type Particle struct {
	X, Y   float64
	Radius float64
	Hue    float64 // Degrees in [0, 360)
	Seed   float64 // Drift phase in [0, 1000)
}

// Field is one generation of particles. It is never mutated after NewField
// returns; regeneration builds a new Field.
type Field struct {
	particles  []Particle
	bounds     FieldBounds
	generation uint64
}

// FieldBounds is the logical area a field is spread over
type FieldBounds struct {
	ViewportWidth  float64
	ViewportHeight float64
}

// NewField generates n particles spread uniformly over the doubled-height area
// described by bounds
func NewField(n int, bounds FieldBounds, rng *rand.Rand, generation uint64) *Field {
	if n < 0 {
		n = 0
	}
	vw, vh := bounds.ViewportWidth, bounds.ViewportHeight

	particles := make([]Particle, n)
	for i := range particles {
		seed := rng.Float64() * maxSeed
		particles[i] = Particle{
			X:      rng.Float64()*vw - vw*0.5,
			Y:      rng.Float64()*vh*2 - vh,
			Radius: minRadius + rng.Float64()*radiusRange,
			Hue:    HueAt(i),
			Seed:   seed,
		}
	}

	return &Field{particles: particles, bounds: bounds, generation: generation}
}

// HueAt returns the hue assigned to the particle at index i
func HueAt(i int) float64 {
	return math.Mod(float64(i)*hueStep, 360)
}

// Len returns the number of particles
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.particles)
}

// Generation returns the sequence number of this field, starting at 1 on mount
func (f *Field) Generation() uint64 {
	if f == nil {
		return 0
	}
	return f.generation
}

// Bounds returns the area the field was generated for
func (f *Field) Bounds() FieldBounds {
	if f == nil {
		return FieldBounds{}
	}
	return f.bounds
}

// At returns a copy of particle i. A nil field returns the zero Particle;
// an index outside [0, Len) panics.
func (f *Field) At(i int) Particle {
	if f == nil {
		return Particle{}
	}
	return f.particles[i]
}

// Each calls fn for every particle in index order
func (f *Field) Each(fn func(i int, p Particle)) {
	if f == nil {
		return
	}
	for i, p := range f.particles {
		fn(i, p)
	}
}

// newRand returns a generator seeded from seed, or from the runtime's entropy when seed is zero
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
