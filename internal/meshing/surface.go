package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SurfaceMesher builds the flat top face of a chunk. Every corner is stored
// once; neighboring cells share it through the row cache.
type SurfaceMesher struct {
	mesh  Mesh
	cache rowCache
}

// NewSurfaceMesher returns a mesher for a chunk that is width cells wide.
func NewSurfaceMesher(width int) *SurfaceMesher {
	return &SurfaceMesher{cache: newRowCache(width)}
}

// Clear drops all geometry and cached corners.
func (s *SurfaceMesher) Clear() {
	s.mesh.Reset()
	s.cache.Reset()
}

func (s *SurfaceMesher) IsCornerACached(x int) bool { return s.cache.A(x) != unset }
func (s *SurfaceMesher) IsCornerBCached(x int) bool { return s.cache.B(x) != unset }
func (s *SurfaceMesher) IsCornerCCached(x int) bool { return s.cache.C(x) != unset }
func (s *SurfaceMesher) IsCornerDCached(x int) bool { return s.cache.D(x) != unset }

func (s *SurfaceMesher) CacheCornerA(p mgl32.Vec2, x int) { s.cache.setA(x, s.addCorner(p)) }
func (s *SurfaceMesher) CacheCornerB(p mgl32.Vec2, x int) { s.cache.setB(x, s.addCorner(p)) }
func (s *SurfaceMesher) CacheCornerC(p mgl32.Vec2, x int) { s.cache.setC(x, s.addCorner(p)) }
func (s *SurfaceMesher) CacheCornerD(p mgl32.Vec2, x int) { s.cache.setD(x, s.addCorner(p)) }

func (s *SurfaceMesher) addCorner(p mgl32.Vec2) int {
	return s.mesh.addVertex(p.Vec3(0))
}

// AddQuad emits the two triangles covering cell x from its cached corners.
func (s *SurfaceMesher) AddQuad(x int) {
	a, b, c, d := s.cache.A(x), s.cache.B(x), s.cache.C(x), s.cache.D(x)
	s.mesh.addTriangle(a, c, d)
	s.mesh.addTriangle(a, d, b)
}

// SwapRowCaches must be called after every cell row.
func (s *SurfaceMesher) SwapRowCaches() {
	s.cache.Swap()
}

// Finish computes normals and UVs for the geometry built since Clear.
func (s *SurfaceMesher) Finish(uv UVParams) {
	s.mesh.RecalculateNormals()
	s.mesh.ApplyUVs(uv)
}

// Mesh returns the mesher's buffers. They are reused on the next rebuild.
func (s *SurfaceMesher) Mesh() *Mesh {
	return &s.mesh
}
