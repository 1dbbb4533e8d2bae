package render

import (
	"pixeldig/internal/meshing"
	"pixeldig/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// floatsPerVertex is position(3) + normal(3) + uv(2).
const floatsPerVertex = 8

// ChunkMesh is the GPU copy of one chunk mesh. SetMesh only stores a CPU
// copy; the buffers are (re)uploaded by the next Draw on the GL thread.
type ChunkMesh struct {
	model mgl32.Mat4

	vertices []float32
	indices  []uint32
	dirty    bool

	vao, vbo, ebo uint32
	count         int32
}

// NewChunkMesh returns an empty mesh drawn at the given world position.
func NewChunkMesh(position mgl32.Vec2) *ChunkMesh {
	return &ChunkMesh{model: mgl32.Translate3D(position.X(), position.Y(), 0)}
}

// SetMesh copies m.
func (c *ChunkMesh) SetMesh(m *meshing.Mesh) {
	c.vertices = interleave(c.vertices[:0], m)
	c.indices = append(c.indices[:0], m.Indices...)
	c.dirty = true
}

// Dirty reports whether the CPU copy has not been uploaded yet.
func (c *ChunkMesh) Dirty() bool { return c.dirty }

// interleave appends the vertices of m to dst as position, normal, uv.
// Missing normals or uvs are written as zero.
func interleave(dst []float32, m *meshing.Mesh) []float32 {
	for i, p := range m.Positions {
		var n mgl32.Vec3
		var uv mgl32.Vec2
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		dst = append(dst, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return dst
}

func (c *ChunkMesh) upload() {
	defer profiling.Track("render.ChunkMesh.upload")()
	if c.vao == 0 {
		gl.GenVertexArrays(1, &c.vao)
		gl.GenBuffers(1, &c.vbo)
		gl.GenBuffers(1, &c.ebo)

		gl.BindVertexArray(c.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.ebo)
		stride := int32(floatsPerVertex * 4)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	} else {
		gl.BindVertexArray(c.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	}

	c.count = int32(len(c.indices))
	if len(c.vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(c.vertices)*4, gl.Ptr(c.vertices), gl.DYNAMIC_DRAW)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(c.indices)*4, gl.Ptr(c.indices), gl.DYNAMIC_DRAW)
	}
	gl.BindVertexArray(0)
	c.dirty = false
}

// Draw uploads pending changes and draws the mesh with s, which must be in use.
func (c *ChunkMesh) Draw(s *Shader) {
	if c.dirty {
		c.upload()
	}
	if c.count == 0 {
		return
	}
	s.SetMat4("model", c.model)
	gl.BindVertexArray(c.vao)
	gl.DrawElements(gl.TRIANGLES, c.count, gl.UNSIGNED_INT, nil)
}

// Dispose releases the GL buffers.
func (c *ChunkMesh) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		gl.DeleteBuffers(1, &c.vbo)
		gl.DeleteBuffers(1, &c.ebo)
		c.vao, c.vbo, c.ebo = 0, 0, 0
	}
}
