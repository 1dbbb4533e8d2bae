package world

import (
	"testing"

	"pixeldig/internal/config"
	"pixeldig/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLayout is a 3x2 grid of 4x4 chunks with unit voxels, centered on the
// origin. The grid spans (-6,-4) to (6,4).
func testLayout() config.Layout {
	return config.Layout{
		VoxelSize:              1,
		ChunkResolution:        [2]int{4, 4},
		GridResolution:         [2]int{3, 2},
		ExtrusionHeight:        1,
		TextureVoxelResolution: 1,
	}
}

// singleChunk builds a one-chunk grid of w x h voxels where only the listed
// voxels are filled. With no voxels listed every voxel is filled.
func singleChunk(t *testing.T, w, h int, filled ...Coord) *Chunk {
	t.Helper()
	l := testLayout()
	l.ChunkResolution = [2]int{w, h}
	l.GridResolution = [2]int{1, 1}

	var opts []Option
	if len(filled) > 0 {
		set := map[Coord]bool{}
		for _, c := range filled {
			set[c] = true
		}
		opts = append(opts, WithOccupancy(func(gx, gy int) bool { return set[Coord{gx, gy}] }))
	}
	g, err := NewGrid(l, opts...)
	require.NoError(t, err)
	return g.Chunk(Coord{0, 0})
}

type meshCopy struct {
	positions []mgl32.Vec3
	indices   []uint32
}

func copyMesh(m *meshing.Mesh) meshCopy {
	return meshCopy{
		positions: append([]mgl32.Vec3(nil), m.Positions...),
		indices:   append([]uint32(nil), m.Indices...),
	}
}

func copyPaths(paths [][]int) [][]int {
	out := make([][]int, len(paths))
	for i, p := range paths {
		out[i] = append([]int(nil), p...)
	}
	return out
}

func TestFullChunkCoverage(t *testing.T) {
	const w, h = 4, 3
	c := singleChunk(t, w, h)

	surface := c.Surface()
	if got := surface.TriangleCount(); got != 2*w*h {
		t.Fatalf("surface triangles: got %d, want %d", got, 2*w*h)
	}
	if got := surface.VertexCount(); got != (w+1)*(h+1) {
		t.Fatalf("surface vertices: got %d, want %d", got, (w+1)*(h+1))
	}

	// Only the chunk perimeter is exposed: no interior walls.
	perimeter := 2 * (w + h)
	ext := c.Extrusion()
	if got := ext.VertexCount(); got != 2*perimeter {
		t.Fatalf("extrusion vertices: got %d, want %d", got, 2*perimeter)
	}
	if got := ext.TriangleCount(); got != 2*perimeter {
		t.Fatalf("extrusion triangles: got %d, want %d", got, 2*perimeter)
	}

	paths := c.Paths()
	require.Len(t, paths, 1)
	assert.Len(t, paths[0], perimeter+1)
	assert.Equal(t, paths[0][0], paths[0][len(paths[0])-1], "perimeter outline must be closed")
}

func TestEnclosedCellsHaveNoWalls(t *testing.T) {
	c := singleChunk(t, 3, 3)
	if got := c.CellType(1, 1); got != meshing.Enclosed {
		t.Fatalf("center cell: got %v, want enclosed", got)
	}
	// Corner cell only has its up and right neighbors inside the chunk.
	if got := c.CellType(0, 0); got != meshing.UpFilled|meshing.RightFilled {
		t.Fatalf("corner cell: got %v", got)
	}
}

func TestIsolatedCellOutline(t *testing.T) {
	c := singleChunk(t, 3, 3, Coord{1, 1})

	assert.Equal(t, meshing.CellType(0), c.CellType(1, 1))
	paths := c.Paths()
	require.Len(t, paths, 1)
	require.Len(t, paths[0], 5)

	v, ok := c.Voxel(1, 1)
	require.True(t, ok)
	want := []mgl32.Vec2{v.A(), v.B(), v.D(), v.C(), v.A()}
	assert.Equal(t, want, c.Outlines()[0])

	// 4 corners doubled, 4 walls of 2 triangles.
	assert.Equal(t, 8, c.Extrusion().VertexCount())
	assert.Equal(t, 8, c.Extrusion().TriangleCount())
	assert.Equal(t, 4, c.Surface().VertexCount())
}

func TestIsolatedStripOutline(t *testing.T) {
	c := singleChunk(t, 5, 3, Coord{1, 1}, Coord{2, 1}, Coord{3, 1})

	paths := c.Paths()
	require.Len(t, paths, 1, "strip must stitch into a single loop")
	assert.Len(t, paths[0], 9)
	assert.Equal(t, paths[0][0], paths[0][8])

	seen := map[int]bool{}
	for _, idx := range paths[0][:8] {
		assert.False(t, seen[idx], "index %d repeated", idx)
		seen[idx] = true
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	c := singleChunk(t, 8, 8)
	s := NewStencil(2)
	s.SetCenter(Coord{4, 4})

	require.True(t, c.Apply(s), "first dig must change the chunk")
	surface := copyMesh(c.Surface())
	extrusion := copyMesh(c.Extrusion())
	paths := copyPaths(c.Paths())

	assert.False(t, c.Apply(s), "second dig must not change the chunk")
	assert.Equal(t, surface, copyMesh(c.Surface()))
	assert.Equal(t, extrusion, copyMesh(c.Extrusion()))
	assert.Equal(t, paths, copyPaths(c.Paths()))
}

func TestApplyClampsToChunk(t *testing.T) {
	c := singleChunk(t, 4, 4)
	s := NewStencil(3)
	s.SetCenter(Coord{-2, -2})

	require.True(t, c.Apply(s))
	assert.False(t, c.Filled(0, 0))
	assert.True(t, c.Filled(3, 3))

	s.SetCenter(Coord{40, 40})
	assert.False(t, c.Apply(s), "stencil entirely outside the chunk")
}

func TestDugHoleOutlineIsClockwise(t *testing.T) {
	c := singleChunk(t, 5, 5)
	s := NewStencil(0)
	s.SetCenter(Coord{2, 2})
	require.True(t, c.Apply(s))

	outlines := c.Outlines()
	require.Len(t, outlines, 2, "perimeter plus hole")
	areas := []float32{signedArea(outlines[0]), signedArea(outlines[1])}
	var positive, negative int
	for _, a := range areas {
		if a > 0 {
			positive++
		} else if a < 0 {
			negative++
		}
	}
	assert.Equal(t, 1, positive, "outer boundary runs counter-clockwise")
	assert.Equal(t, 1, negative, "hole runs clockwise")
}

func signedArea(pts []mgl32.Vec2) float32 {
	var sum float32
	for i := 0; i+1 < len(pts); i++ {
		sum += pts[i].X()*pts[i+1].Y() - pts[i+1].X()*pts[i].Y()
	}
	return sum / 2
}

func BenchmarkChunkRefresh(b *testing.B) {
	l := testLayout()
	l.ChunkResolution = [2]int{32, 32}
	l.GridResolution = [2]int{1, 1}
	g, err := NewGrid(l, WithOccupancy(func(gx, gy int) bool { return (gx/3+gy/5)%2 == 0 }))
	if err != nil {
		b.Fatal(err)
	}
	c := g.Chunk(Coord{0, 0})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Refresh()
	}
}
