package world

import (
	"pixeldig/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshConsumer receives a rebuilt chunk mesh, once per mesher per edit.
// The mesh is reused by the next rebuild; copy anything that must outlive
// the call.
type MeshConsumer interface {
	SetMesh(m *meshing.Mesh)
}

// CollisionConsumer receives the world-space collision outlines of a chunk,
// once per edit. Each call replaces all outlines previously set for that chunk.
type CollisionConsumer interface {
	SetOutlines(outlines [][]mgl32.Vec2)
}

// ImpactNotifier is told the world position of every voxel that is dug out.
type ImpactNotifier interface {
	NotifyImpact(pos mgl32.Vec2)
}

// MeshConsumerFunc adapts a function to MeshConsumer.
type MeshConsumerFunc func(m *meshing.Mesh)

func (f MeshConsumerFunc) SetMesh(m *meshing.Mesh) { f(m) }

// CollisionConsumerFunc adapts a function to CollisionConsumer.
type CollisionConsumerFunc func(outlines [][]mgl32.Vec2)

func (f CollisionConsumerFunc) SetOutlines(outlines [][]mgl32.Vec2) { f(outlines) }

// ImpactNotifierFunc adapts a function to ImpactNotifier.
type ImpactNotifierFunc func(pos mgl32.Vec2)

func (f ImpactNotifierFunc) NotifyImpact(pos mgl32.Vec2) { f(pos) }

// Binding holds the consumers attached to one chunk. Nil members are skipped.
type Binding struct {
	Surface   MeshConsumer
	Extrusion MeshConsumer
	Colliders CollisionConsumer
}

// Binder creates the binding for the chunk at coord whose center sits at
// position in world space.
type Binder func(coord Coord, position mgl32.Vec2) Binding
