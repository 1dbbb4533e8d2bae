package render

import (
	"pixeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	surfaceColor   = mgl32.Vec3{0.62, 0.47, 0.33}
	extrusionColor = mgl32.Vec3{0.38, 0.27, 0.19}
	outlineColor   = mgl32.Vec3{0.95, 0.85, 0.2}
	lightDir       = mgl32.Vec3{0.3, 0.5, 1}
)

type chunkView struct {
	surface   *ChunkMesh
	extrusion *ChunkMesh
	outlines  *OutlineSet
}

// Scene owns the GPU resources of every chunk of a grid.
type Scene struct {
	chunks map[world.Coord]*chunkView
	order  []world.Coord
}

func NewScene() *Scene {
	return &Scene{chunks: make(map[world.Coord]*chunkView)}
}

// Binder creates the render resources of each chunk as the grid is built.
func (s *Scene) Binder() world.Binder {
	return func(coord world.Coord, pos mgl32.Vec2) world.Binding {
		v, ok := s.chunks[coord]
		if !ok {
			v = &chunkView{
				surface:   NewChunkMesh(pos),
				extrusion: NewChunkMesh(pos),
				outlines:  NewOutlineSet(),
			}
			s.chunks[coord] = v
			s.order = append(s.order, coord)
		}
		return world.Binding{Surface: v.surface, Extrusion: v.extrusion, Colliders: v.outlines}
	}
}

// Len returns the number of bound chunks.
func (s *Scene) Len() int { return len(s.order) }

// Draw renders every chunk. Outlines are drawn just in front of the surface.
func (s *Scene) Draw(mesh, line *Shader, cam *Camera, showOutlines bool) {
	view, proj := cam.View(), cam.Projection()

	mesh.Use()
	mesh.SetMat4("proj", proj)
	mesh.SetMat4("view", view)
	mesh.SetVec3("lightDir", lightDir)
	mesh.SetVec3("color", surfaceColor)
	for _, c := range s.order {
		s.chunks[c].surface.Draw(mesh)
	}
	mesh.SetVec3("color", extrusionColor)
	for _, c := range s.order {
		s.chunks[c].extrusion.Draw(mesh)
	}

	if !showOutlines {
		return
	}
	line.Use()
	line.SetMat4("proj", proj)
	line.SetMat4("view", view)
	line.SetFloat("depth", -0.001)
	line.SetVec3("color", outlineColor)
	for _, c := range s.order {
		s.chunks[c].outlines.Draw(line)
	}
}

// Dispose releases every GL resource.
func (s *Scene) Dispose() {
	for _, v := range s.chunks {
		v.surface.Dispose()
		v.extrusion.Dispose()
		v.outlines.Dispose()
	}
}
