package ebitenhost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSMeter(t *testing.T) {
	m := newFPSMeter()
	assert.Equal(t, 60.0, m.fps)

	updated := false
	for i := 0; i < 15; i++ {
		updated = m.tick(1.0 / 30)
	}
	assert.False(t, updated)
	assert.True(t, m.tick(1.0/30))
	assert.InDelta(t, 30, m.fps, 0.5)
	assert.Zero(t, m.frames)
}

func TestShouldProfile(t *testing.T) {
	assert.True(t, shouldProfile(30, 45, 5*time.Second))
	assert.False(t, shouldProfile(50, 45, 5*time.Second))
	assert.False(t, shouldProfile(30, 45, time.Second), "startup grace")
	assert.False(t, shouldProfile(30, 0, 5*time.Second), "disabled")
}

func TestClampDelta(t *testing.T) {
	assert.Equal(t, 0.016, clampDelta(0.016))
	assert.Equal(t, maxDeltaTime, clampDelta(3))
	assert.Zero(t, clampDelta(-1))
}
