package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLayout is returned when a grid layout cannot be built.
var ErrInvalidLayout = errors.New("invalid grid layout")

// Config is the top-level file format.
type Config struct {
	Grid   Layout       `yaml:"grid"`
	Dig    DigConfig    `yaml:"dig"`
	Caves  CaveConfig   `yaml:"caves"`
	Viewer ViewerConfig `yaml:"viewer"`
}

// Layout holds the global grid parameters. Everything else about a grid is
// derived from it.
type Layout struct {
	VoxelSize              float32    `yaml:"voxel_size"`
	ChunkResolution        [2]int     `yaml:"chunk_resolution"` // voxels per chunk
	GridResolution         [2]int     `yaml:"grid_resolution"`  // chunks per grid
	ExtrusionHeight        float32    `yaml:"extrusion_height"`
	TextureVoxelResolution float32    `yaml:"texture_voxel_resolution"` // voxels per texture repeat
	Origin                 [2]float32 `yaml:"origin"`                   // world-space grid center
}

// DigConfig holds the default dig tool.
type DigConfig struct {
	StencilRadius int `yaml:"stencil_radius"`
}

// CaveConfig controls optional perlin pre-carving of a fresh grid.
type CaveConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Seed      int64   `yaml:"seed"`
	Scale     float64 `yaml:"scale"`     // noise units per voxel
	Threshold float64 `yaml:"threshold"` // voxels with noise above this start empty
}

// ViewerConfig holds window settings for cmd/pixeldig.
type ViewerConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Grid: Layout{
			VoxelSize:              0.1,
			ChunkResolution:        [2]int{16, 16},
			GridResolution:         [2]int{4, 4},
			ExtrusionHeight:        0.5,
			TextureVoxelResolution: 16,
		},
		Dig: DigConfig{StencilRadius: 3},
		Caves: CaveConfig{
			Seed:      1,
			Scale:     0.08,
			Threshold: 0.62,
		},
		Viewer: ViewerConfig{Width: 900, Height: 600},
	}
}

// Load reads a yaml file on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if c.Dig.StencilRadius < 0 {
		return fmt.Errorf("dig.stencil_radius must not be negative, got %d", c.Dig.StencilRadius)
	}
	return nil
}

// Validate reports the first unusable field.
func (l Layout) Validate() error {
	switch {
	case l.VoxelSize <= 0:
		return fmt.Errorf("%w: voxel_size must be positive, got %v", ErrInvalidLayout, l.VoxelSize)
	case l.ChunkResolution[0] <= 0 || l.ChunkResolution[1] <= 0:
		return fmt.Errorf("%w: chunk_resolution must be positive, got %v", ErrInvalidLayout, l.ChunkResolution)
	case l.GridResolution[0] <= 0 || l.GridResolution[1] <= 0:
		return fmt.Errorf("%w: grid_resolution must be positive, got %v", ErrInvalidLayout, l.GridResolution)
	case l.ExtrusionHeight < 0:
		return fmt.Errorf("%w: extrusion_height must not be negative, got %v", ErrInvalidLayout, l.ExtrusionHeight)
	case l.TextureVoxelResolution <= 0:
		return fmt.Errorf("%w: texture_voxel_resolution must be positive, got %v", ErrInvalidLayout, l.TextureVoxelResolution)
	}
	return nil
}

// ChunkSize is the world-space size of one chunk.
func (l Layout) ChunkSize() mgl32.Vec2 {
	return mgl32.Vec2{
		l.VoxelSize * float32(l.ChunkResolution[0]),
		l.VoxelSize * float32(l.ChunkResolution[1]),
	}
}

// GridSize is the world-space size of the whole grid.
func (l Layout) GridSize() mgl32.Vec2 {
	cs := l.ChunkSize()
	return mgl32.Vec2{
		cs.X() * float32(l.GridResolution[0]),
		cs.Y() * float32(l.GridResolution[1]),
	}
}

// VoxelResolution is the number of voxels across the whole grid.
func (l Layout) VoxelResolution() [2]int {
	return [2]int{
		l.ChunkResolution[0] * l.GridResolution[0],
		l.ChunkResolution[1] * l.GridResolution[1],
	}
}

// OriginVec returns Origin as a vector.
func (l Layout) OriginVec() mgl32.Vec2 {
	return mgl32.Vec2{l.Origin[0], l.Origin[1]}
}
