package world

import (
	"pixeldig/internal/config"

	"github.com/aquilax/go-perlin"
)

const (
	caveAlpha   = 2.0 // noise smoothing
	caveBeta    = 2.0 // frequency step between octaves
	caveOctaves = int32(3)
)

// CaveOccupancy returns an initial occupancy function that leaves voxels
// empty wherever 2D perlin noise rises above cfg.Threshold. Pass it to
// WithOccupancy. A disabled config keeps every voxel filled.
func CaveOccupancy(cfg config.CaveConfig) func(gx, gy int) bool {
	if !cfg.Enabled {
		return func(int, int) bool { return true }
	}
	p := perlin.NewPerlin(caveAlpha, caveBeta, caveOctaves, cfg.Seed)
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return func(gx, gy int) bool {
		// Noise2D is roughly in [-1, 1]; map to [0, 1].
		n := (p.Noise2D(float64(gx)*scale, float64(gy)*scale) + 1) / 2
		return n <= cfg.Threshold
	}
}
