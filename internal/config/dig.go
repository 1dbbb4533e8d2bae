package config

import "sync"

const (
	MinStencilRadius = 0
	MaxStencilRadius = 32
)

// DigSettings holds the dig tool settings that can change while running.
type DigSettings struct {
	mu            sync.RWMutex
	stencilRadius int
	showOutlines  bool
}

var globalDigSettings = &DigSettings{
	stencilRadius: 3,
	showOutlines:  true,
}

// GetStencilRadius returns the current dig radius in voxels
func GetStencilRadius() int {
	globalDigSettings.mu.RLock()
	defer globalDigSettings.mu.RUnlock()
	return globalDigSettings.stencilRadius
}

// SetStencilRadius sets the dig radius in voxels
func SetStencilRadius(radius int) {
	globalDigSettings.mu.Lock()
	defer globalDigSettings.mu.Unlock()

	// Clamp to reasonable values
	if radius < MinStencilRadius {
		radius = MinStencilRadius
	}
	if radius > MaxStencilRadius {
		radius = MaxStencilRadius
	}

	globalDigSettings.stencilRadius = radius
}

// GetShowOutlines returns whether collision outlines are drawn
func GetShowOutlines() bool {
	globalDigSettings.mu.RLock()
	defer globalDigSettings.mu.RUnlock()
	return globalDigSettings.showOutlines
}

// SetShowOutlines sets whether collision outlines are drawn
func SetShowOutlines(show bool) {
	globalDigSettings.mu.Lock()
	defer globalDigSettings.mu.Unlock()
	globalDigSettings.showOutlines = show
}
