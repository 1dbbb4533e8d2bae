package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixeldig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
grid:
  voxel_size: 0.25
  chunk_resolution: [8, 4]
dig:
  stencil_radius: 5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float32(0.25), cfg.Grid.VoxelSize)
	assert.Equal(t, [2]int{8, 4}, cfg.Grid.ChunkResolution)
	assert.Equal(t, Default().Grid.GridResolution, cfg.Grid.GridResolution, "unset fields keep defaults")
	assert.Equal(t, 5, cfg.Dig.StencilRadius)
}

func TestLoadRejectsInvalidLayout(t *testing.T) {
	path := writeFile(t, `
grid:
  chunk_resolution: [0, 4]
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "grid: [")
	_, err := Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidLayout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLayoutDerivedSizes(t *testing.T) {
	l := Layout{
		VoxelSize:              0.5,
		ChunkResolution:        [2]int{4, 2},
		GridResolution:         [2]int{3, 5},
		TextureVoxelResolution: 1,
	}
	require.NoError(t, l.Validate())

	assert.Equal(t, float32(2), l.ChunkSize().X())
	assert.Equal(t, float32(1), l.ChunkSize().Y())
	assert.Equal(t, float32(6), l.GridSize().X())
	assert.Equal(t, float32(5), l.GridSize().Y())
	assert.Equal(t, [2]int{12, 10}, l.VoxelResolution())
}

func TestSetStencilRadiusClamps(t *testing.T) {
	defer SetStencilRadius(GetStencilRadius())

	SetStencilRadius(-4)
	if got := GetStencilRadius(); got != MinStencilRadius {
		t.Fatalf("got %d, want %d", got, MinStencilRadius)
	}
	SetStencilRadius(1000)
	if got := GetStencilRadius(); got != MaxStencilRadius {
		t.Fatalf("got %d, want %d", got, MaxStencilRadius)
	}
	SetStencilRadius(7)
	if got := GetStencilRadius(); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}
