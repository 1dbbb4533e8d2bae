package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Voxel is one occupancy cell. Position is the chunk-local center.
type Voxel struct {
	Position mgl32.Vec2
	Size     float32
	Filled   bool
}

func (v *Voxel) half() float32 { return 0.5 * v.Size }

// A is the bottom-left corner.
func (v *Voxel) A() mgl32.Vec2 { return v.Position.Add(mgl32.Vec2{-v.half(), -v.half()}) }

// B is the bottom-right corner.
func (v *Voxel) B() mgl32.Vec2 { return v.Position.Add(mgl32.Vec2{v.half(), -v.half()}) }

// C is the top-left corner.
func (v *Voxel) C() mgl32.Vec2 { return v.Position.Add(mgl32.Vec2{-v.half(), v.half()}) }

// D is the top-right corner.
func (v *Voxel) D() mgl32.Vec2 { return v.Position.Add(mgl32.Vec2{v.half(), v.half()}) }
