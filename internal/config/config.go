package config

import "sync"

// RenderSettings holds render configuration shared by the game loop and the chunk manager.
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
	tasksPerFrame  int
	fpsLimit       int // 0 = unlimited
}

var globalRenderSettings = &RenderSettings{
	renderDistance: 5,
	tasksPerFrame:  4,
	fpsLimit:       120,
}

const (
	MinRenderDistance = 1
	MaxRenderDistance = 32
	MinTasksPerFrame  = 1
	MaxTasksPerFrame  = 64
)

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.renderDistance = clamp(distance, MinRenderDistance, MaxRenderDistance)
}

// GetTasksPerFrame returns how many mesh tasks may be dispatched per frame
func GetTasksPerFrame() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.tasksPerFrame
}

// SetTasksPerFrame sets the per-frame mesh dispatch budget
func SetTasksPerFrame(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.tasksPerFrame = clamp(n, MinTasksPerFrame, MaxTasksPerFrame)
}

// GetFPSLimit returns the frame cap, 0 meaning unlimited
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap; negative values disable it
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.fpsLimit = max(limit, 0)
}

// Apply copies the render section of a loaded config into the global settings.
func Apply(cfg *Config) {
	SetRenderDistance(cfg.Render.Distance)
	SetTasksPerFrame(cfg.Render.TasksPerFrame)
	SetFPSLimit(cfg.Render.FPSLimit)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
