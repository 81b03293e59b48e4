package ebitenhost

import "time"

const (
	fpsWindow        = 0.5 // seconds per average
	maxDeltaTime     = 0.1
	profileGrace     = 3 * time.Second
	defaultTargetFPS = 60
)

// fpsMeter averages the update rate over half-second windows
type fpsMeter struct {
	fps     float64
	frames  int
	elapsed float64
}

func newFPSMeter() fpsMeter {
	return fpsMeter{fps: defaultTargetFPS}
}

// tick records one update lasting dt seconds and reports whether a new average is ready
func (m *fpsMeter) tick(dt float64) bool {
	m.elapsed += dt
	m.frames++
	if m.elapsed < fpsWindow {
		return false
	}
	m.fps = float64(m.frames) / m.elapsed
	m.frames = 0
	m.elapsed = 0
	return true
}

// shouldProfile reports whether a new average warrants a profile capture.
// Drops during the first seconds after start are ignored.
func shouldProfile(fps, threshold float64, sinceStart time.Duration) bool {
	return threshold > 0 && fps < threshold && sinceStart >= profileGrace
}

// clampDelta bounds the time step so a stalled window does not produce a jump
func clampDelta(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > maxDeltaTime {
		return maxDeltaTime
	}
	return dt
}
