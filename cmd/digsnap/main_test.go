package main

import (
	"os"
	"path/filepath"
	"testing"

	"pixeldig/internal/snapshot"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoints(t *testing.T) {
	got, err := parsePoints(" 0,0; 0.5 , -0.25 ;")
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec2{{0, 0}, {0.5, -0.25}}, got)

	got, err = parsePoints("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parsePoints("1")
	assert.Error(t, err)
	_, err = parsePoints("a,1")
	assert.Error(t, err)
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "grid.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
grid:
  voxel_size: 1
  chunk_resolution: [4, 4]
  grid_resolution: [2, 2]
  extrusion_height: 1
  texture_voxel_resolution: 1
`), 0o644))

	snapPath := filepath.Join(dir, "out.snap")
	pngPath := filepath.Join(dir, "out.png")
	err := run(options{
		configPath: cfgPath,
		digs:       "0.5,0.5;100,100",
		radius:     1,
		savePath:   snapPath,
		pngPath:    pngPath,
		ppu:        4,
	})
	require.NoError(t, err)
	assert.FileExists(t, pngPath)

	snap, err := snapshot.Load(snapPath)
	require.NoError(t, err)
	assert.Equal(t, 64-5, snap.Count())

	// Digging again from the saved state at the same point changes nothing.
	err = run(options{loadPath: snapPath, digs: "0.5,0.5", radius: 1, savePath: snapPath})
	require.NoError(t, err)
	snap, err = snapshot.Load(snapPath)
	require.NoError(t, err)
	assert.Equal(t, 64-5, snap.Count())
}
