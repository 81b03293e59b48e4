package backdrop

import (
	"fmt"
	"math"
)

// Config holds the backdrop tuning parameters
type Config struct {
	// DesktopCount is the number of particles generated above the mobile breakpoint
	DesktopCount int `yaml:"desktop_count"`

	// MobileCount is the number of particles generated at or below the mobile breakpoint
	MobileCount int `yaml:"mobile_count"`

	// MobileBreakpoint is the viewport width in logical pixels at or below which
	// the viewport counts as narrow
	MobileBreakpoint float64 `yaml:"mobile_breakpoint"`

	// MaxDevicePixelRatio caps the backing store resolution on high density displays
	MaxDevicePixelRatio float64 `yaml:"max_device_pixel_ratio"`

	// ScrollDamping is the time constant in seconds used to smooth scroll progress.
	// Zero snaps to the observed value.
	ScrollDamping float64 `yaml:"scroll_damping"`

	// ParallaxFactor scales the vertical shift applied per unit of scroll progress,
	// in viewport heights
	ParallaxFactor float64 `yaml:"parallax_factor"`

	// DriftAmplitude is the maximum drift away from a particle's base position in logical pixels
	DriftAmplitude float64 `yaml:"drift_amplitude"`

	// GlowBlur is the glow radius painted around every particle
	GlowBlur float64 `yaml:"glow_blur"`

	// Seed makes particle generation reproducible when non-zero
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		DesktopCount:        200,
		MobileCount:         100,
		MobileBreakpoint:    768,
		MaxDevicePixelRatio: 2,
		ScrollDamping:       0.6,
		ParallaxFactor:      0.6,
		DriftAmplitude:      40,
		GlowBlur:            6,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig
func (c Config) Validate() error {
	switch {
	case c.DesktopCount <= 0:
		return fmt.Errorf("%w: desktop_count must be positive, got %d", ErrInvalidConfig, c.DesktopCount)
	case c.MobileCount <= 0:
		return fmt.Errorf("%w: mobile_count must be positive, got %d", ErrInvalidConfig, c.MobileCount)
	case !(c.MobileBreakpoint > 0):
		return fmt.Errorf("%w: mobile_breakpoint must be positive, got %v", ErrInvalidConfig, c.MobileBreakpoint)
	case !(c.MaxDevicePixelRatio > 0):
		return fmt.Errorf("%w: max_device_pixel_ratio must be positive, got %v", ErrInvalidConfig, c.MaxDevicePixelRatio)
	case c.ScrollDamping < 0 || math.IsNaN(c.ScrollDamping):
		return fmt.Errorf("%w: scroll_damping must not be negative, got %v", ErrInvalidConfig, c.ScrollDamping)
	case c.GlowBlur < 0 || math.IsNaN(c.GlowBlur):
		return fmt.Errorf("%w: glow_blur must not be negative, got %v", ErrInvalidConfig, c.GlowBlur)
	}
	return nil
}

// ParticleCount returns the particle count for a viewport of the given width
func (c Config) ParticleCount(viewportWidth float64) int {
	if viewportWidth <= c.MobileBreakpoint {
		return c.MobileCount
	}
	return c.DesktopCount
}
