package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ExtrusionMesher builds the skirt walls along filled/empty boundaries.
//
// Each cached corner is stored as a pair: the top vertex (z=0) at index i and
// the bottom vertex (z=height) at i+1. Walls never share vertices with the top
// surface, so the fold between them stays hard.
type ExtrusionMesher struct {
	mesh    Mesh
	cache   rowCache
	height  float32
	outline OutlineStitcher
}

// NewExtrusionMesher returns a mesher for a chunk that is width cells wide
// whose walls extend height units along +Z.
func NewExtrusionMesher(width int, height float32) *ExtrusionMesher {
	return &ExtrusionMesher{
		cache:  newRowCache(width),
		height: height,
	}
}

// Clear drops all geometry, cached corners and outline paths.
func (e *ExtrusionMesher) Clear() {
	e.mesh.Reset()
	e.cache.Reset()
	e.outline.Reset()
}

func (e *ExtrusionMesher) IsCornerACached(x int) bool { return e.cache.A(x) != unset }
func (e *ExtrusionMesher) IsCornerBCached(x int) bool { return e.cache.B(x) != unset }
func (e *ExtrusionMesher) IsCornerCCached(x int) bool { return e.cache.C(x) != unset }
func (e *ExtrusionMesher) IsCornerDCached(x int) bool { return e.cache.D(x) != unset }

func (e *ExtrusionMesher) CacheCornerA(p mgl32.Vec2, x int) { e.cache.setA(x, e.addCorner(p)) }
func (e *ExtrusionMesher) CacheCornerB(p mgl32.Vec2, x int) { e.cache.setB(x, e.addCorner(p)) }
func (e *ExtrusionMesher) CacheCornerC(p mgl32.Vec2, x int) { e.cache.setC(x, e.addCorner(p)) }
func (e *ExtrusionMesher) CacheCornerD(p mgl32.Vec2, x int) { e.cache.setD(x, e.addCorner(p)) }

func (e *ExtrusionMesher) addCorner(p mgl32.Vec2) int {
	i := e.mesh.addVertex(p.Vec3(0))
	e.mesh.addVertex(p.Vec3(e.height))
	return i
}

// AddSectionAB adds the wall facing the empty cell below x.
func (e *ExtrusionMesher) AddSectionAB(x int) {
	e.addSection(e.cache.A(x), e.cache.B(x))
}

// AddSectionCA adds the wall facing the empty cell left of x.
func (e *ExtrusionMesher) AddSectionCA(x int) {
	e.addSection(e.cache.C(x), e.cache.A(x))
}

// AddSectionDC adds the wall facing the empty cell above x.
func (e *ExtrusionMesher) AddSectionDC(x int) {
	e.addSection(e.cache.D(x), e.cache.C(x))
}

// AddSectionBD adds the wall facing the empty cell right of x.
func (e *ExtrusionMesher) AddSectionBD(x int) {
	e.addSection(e.cache.B(x), e.cache.D(x))
}

func (e *ExtrusionMesher) addSection(a, b int) {
	e.mesh.addTriangle(a, b, b+1)
	e.mesh.addTriangle(a, b+1, a+1)
}

// AddOutline forwards cell x's exposed edges to the outline stitcher.
func (e *ExtrusionMesher) AddOutline(cell CellType, x int) {
	e.outline.Add(cell, e.cache.A(x), e.cache.B(x), e.cache.C(x), e.cache.D(x))
}

// SwapRowCaches must be called after every cell row.
func (e *ExtrusionMesher) SwapRowCaches() {
	e.cache.Swap()
}

// Finish computes normals and UVs for the geometry built since Clear.
func (e *ExtrusionMesher) Finish(uv UVParams) {
	e.mesh.RecalculateNormals()
	e.mesh.ApplyUVs(uv)
}

// Mesh returns the mesher's buffers. They are reused on the next rebuild.
func (e *ExtrusionMesher) Mesh() *Mesh {
	return &e.mesh
}

// Paths returns the stitched outline paths as vertex indices into Mesh.
func (e *ExtrusionMesher) Paths() [][]int {
	return e.outline.Paths()
}

// Outlines resolves the stitched paths to chunk-local 2D points.
func (e *ExtrusionMesher) Outlines() [][]mgl32.Vec2 {
	paths := e.outline.Paths()
	out := make([][]mgl32.Vec2, 0, len(paths))
	for _, path := range paths {
		pts := make([]mgl32.Vec2, len(path))
		for i, idx := range path {
			pts[i] = e.mesh.Positions[idx].Vec2()
		}
		out = append(out, pts)
	}
	return out
}
