package render

import (
	"testing"

	"pixeldig/internal/config"
	"pixeldig/internal/meshing"
	"pixeldig/internal/physics"
	"pixeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterleave(t *testing.T) {
	m := &meshing.Mesh{
		Positions: []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}},
		Normals:   []mgl32.Vec3{{0, 0, -1}},
		UVs:       []mgl32.Vec2{{0.5, 0.25}, {1, 1}},
	}
	got := interleave(nil, m)
	want := []float32{
		1, 2, 3, 0, 0, -1, 0.5, 0.25,
		4, 5, 6, 0, 0, 0, 1, 1,
	}
	assert.Equal(t, want, got)
}

func TestChunkMeshCopiesOnSet(t *testing.T) {
	m := &meshing.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 2, 1},
	}
	c := NewChunkMesh(mgl32.Vec2{})
	c.SetMesh(m)
	require.True(t, c.Dirty())

	m.Positions[0] = mgl32.Vec3{9, 9, 9}
	m.Indices[0] = 7
	assert.Equal(t, float32(0), c.vertices[0])
	assert.Equal(t, []uint32{0, 2, 1}, c.indices)
}

func TestOutlineSetFlattens(t *testing.T) {
	o := NewOutlineSet()
	o.SetOutlines([][]mgl32.Vec2{
		{{0, 0}, {1, 0}, {1, 1}},
		{{5, 5}},
		{{2, 2}, {3, 3}},
	})
	require.Equal(t, 2, o.Strips())
	assert.Equal(t, []strip{{0, 3}, {3, 2}}, o.strips)
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1, 2, 2, 3, 3}, o.vertices)

	o.SetOutlines(nil)
	assert.Zero(t, o.Strips())
}

func TestSceneBindsEveryChunk(t *testing.T) {
	s := NewScene()
	g, err := world.NewGrid(config.Layout{
		VoxelSize:              1,
		ChunkResolution:        [2]int{4, 4},
		GridResolution:         [2]int{3, 2},
		ExtrusionHeight:        1,
		TextureVoxelResolution: 1,
	}, world.WithBinder(s.Binder()))
	require.NoError(t, err)

	assert.Equal(t, 6, s.Len())
	v := s.chunks[world.Coord{X: 2, Y: 1}]
	require.NotNil(t, v)
	assert.True(t, v.surface.Dirty())
	assert.Equal(t, 1, v.outlines.Strips())
	assert.Len(t, v.surface.indices, 3*g.Chunk(world.Coord{X: 2, Y: 1}).Surface().TriangleCount())
}

func TestCameraRayHitsTarget(t *testing.T) {
	cam := NewCamera(800, 600, mgl32.Vec2{1.5, -2}, 10)

	origin, dir, ok := cam.Ray(400, 300, 800, 600)
	require.True(t, ok)
	p, ok := physics.RaycastPlane(origin, dir, 0)
	require.True(t, ok)
	assert.InDelta(t, 1.5, p.X(), 1e-2)
	assert.InDelta(t, -2, p.Y(), 1e-2)

	// Up and right on screen are +y and +x in the world.
	origin, dir, _ = cam.Ray(700, 100, 800, 600)
	p, ok = physics.RaycastPlane(origin, dir, 0)
	require.True(t, ok)
	assert.Greater(t, p.X(), float32(1.5))
	assert.Greater(t, p.Y(), float32(-2))
}

func TestCameraZoomClamps(t *testing.T) {
	cam := NewCamera(1, 1, mgl32.Vec2{}, 10)
	cam.Zoom(1000)
	assert.Equal(t, cam.FarPlane/2, cam.Distance)
	cam.Zoom(0)
	assert.Equal(t, 2*cam.NearPlane, cam.Distance)
}
