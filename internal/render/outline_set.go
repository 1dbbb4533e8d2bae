package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// strip is a range of vertices drawn as one line strip.
type strip struct {
	first, count int32
}

// OutlineSet draws the world-space collision outlines of one chunk as line
// strips. Like ChunkMesh it uploads lazily.
type OutlineSet struct {
	vertices []float32
	strips   []strip
	dirty    bool

	vao, vbo uint32
}

func NewOutlineSet() *OutlineSet {
	return &OutlineSet{}
}

// SetOutlines replaces the outlines with a copy of outlines.
func (o *OutlineSet) SetOutlines(outlines [][]mgl32.Vec2) {
	o.vertices, o.strips = flatten(o.vertices[:0], o.strips[:0], outlines)
	o.dirty = true
}

// Strips returns the number of line strips.
func (o *OutlineSet) Strips() int { return len(o.strips) }

func flatten(vertices []float32, strips []strip, outlines [][]mgl32.Vec2) ([]float32, []strip) {
	for _, path := range outlines {
		if len(path) < 2 {
			continue
		}
		strips = append(strips, strip{first: int32(len(vertices) / 2), count: int32(len(path))})
		for _, p := range path {
			vertices = append(vertices, p[0], p[1])
		}
	}
	return vertices, strips
}

func (o *OutlineSet) upload() {
	if o.vao == 0 {
		gl.GenVertexArrays(1, &o.vao)
		gl.GenBuffers(1, &o.vbo)
		gl.BindVertexArray(o.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	} else {
		gl.BindVertexArray(o.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	}
	if len(o.vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(o.vertices)*4, gl.Ptr(o.vertices), gl.DYNAMIC_DRAW)
	}
	gl.BindVertexArray(0)
	o.dirty = false
}

// Draw draws every strip with s, which must be in use.
func (o *OutlineSet) Draw(s *Shader) {
	if o.dirty {
		o.upload()
	}
	if len(o.strips) == 0 {
		return
	}
	gl.BindVertexArray(o.vao)
	for _, st := range o.strips {
		gl.DrawArrays(gl.LINE_STRIP, st.first, st.count)
	}
}

func (o *OutlineSet) Dispose() {
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
		gl.DeleteBuffers(1, &o.vbo)
		o.vao, o.vbo = 0, 0
	}
}
