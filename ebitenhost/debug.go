package ebitenhost

// DebugState holds debug flags that persist for the lifetime of the process
type DebugState struct {
	ShowOverlay bool // FPS, particle count, field generation and scroll progress
}

// Global debug state instance, shared by every host in the process
var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
