package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle mesh in chunk-local space.
// Indices are grouped in threes; winding is counter-clockwise when viewed
// against the face normal.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// UVParams describes how vertex positions are mapped onto the grid texture.
type UVParams struct {
	// Offset is the chunk's world position; it is added to every vertex.
	Offset mgl32.Vec2
	// GridMin and GridMax are the world-space extents of the whole grid.
	GridMin mgl32.Vec2
	GridMax mgl32.Vec2
	// VoxelResolution is the number of voxels across the grid on each axis.
	VoxelResolution [2]int
	// TexelResolution is how many voxels one texture repeat spans.
	TexelResolution float32
}

// Reset truncates all buffers, keeping their capacity.
func (m *Mesh) Reset() {
	m.Positions = m.Positions[:0]
	m.Normals = m.Normals[:0]
	m.UVs = m.UVs[:0]
	m.Indices = m.Indices[:0]
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) addVertex(p mgl32.Vec3) int {
	m.Positions = append(m.Positions, p)
	return len(m.Positions) - 1
}

func (m *Mesh) addTriangle(a, b, c int) {
	m.Indices = append(m.Indices, uint32(a), uint32(b), uint32(c))
}

// RecalculateNormals rebuilds per-vertex normals from the triangles.
// Face normals are accumulated unnormalized, so larger faces weigh more.
func (m *Mesh) RecalculateNormals() {
	if cap(m.Normals) < len(m.Positions) {
		m.Normals = make([]mgl32.Vec3, len(m.Positions))
	} else {
		m.Normals = m.Normals[:len(m.Positions)]
		for i := range m.Normals {
			m.Normals[i] = mgl32.Vec3{}
		}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a, b, c := m.Positions[ia], m.Positions[ib], m.Positions[ic]
		n := b.Sub(a).Cross(c.Sub(a))
		m.Normals[ia] = m.Normals[ia].Add(n)
		m.Normals[ib] = m.Normals[ib].Add(n)
		m.Normals[ic] = m.Normals[ic].Add(n)
	}

	for i, n := range m.Normals {
		if n.LenSqr() > 0 {
			m.Normals[i] = n.Normalize()
		}
	}
}

// ApplyUVs maps every vertex to texture space. The world-space position is
// normalized against the grid extents and scaled so one texture repeat spans
// TexelResolution voxels.
func (m *Mesh) ApplyUVs(p UVParams) {
	if cap(m.UVs) < len(m.Positions) {
		m.UVs = make([]mgl32.Vec2, len(m.Positions))
	} else {
		m.UVs = m.UVs[:len(m.Positions)]
	}

	texel := p.TexelResolution
	if texel <= 0 {
		texel = 1
	}
	sx := float32(p.VoxelResolution[0]) / texel
	sy := float32(p.VoxelResolution[1]) / texel

	for i, pos := range m.Positions {
		wx := pos.X() + p.Offset.X()
		wy := pos.Y() + p.Offset.Y()
		m.UVs[i] = mgl32.Vec2{
			inverseLerp(p.GridMin.X(), p.GridMax.X(), wx) * sx,
			inverseLerp(p.GridMin.Y(), p.GridMax.Y(), wy) * sy,
		}
	}
}

// inverseLerp returns where v sits between a and b, clamped to [0,1].
func inverseLerp(a, b, v float32) float32 {
	if a == b {
		return 0
	}
	return mgl32.Clamp((v-a)/(b-a), 0, 1)
}
