package world

import (
	"pixeldig/internal/meshing"
	"pixeldig/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Coord addresses a chunk in a grid or a voxel in a chunk.
type Coord struct {
	X, Y int
}

// Add returns c+o.
func (c Coord) Add(o Coord) Coord { return Coord{c.X + o.X, c.Y + o.Y} }

// Sub returns c-o.
func (c Coord) Sub(o Coord) Coord { return Coord{c.X - o.X, c.Y - o.Y} }

// Chunk is a fixed-size block of voxels that is meshed on its own.
// Voxel state only changes through Apply.
type Chunk struct {
	coord    Coord
	position mgl32.Vec2 // world-space center
	width    int
	height   int
	voxels   []Voxel // row-major, index y*width+x

	surface   *meshing.SurfaceMesher
	extrusion *meshing.ExtrusionMesher
	uv        meshing.UVParams

	binding  Binding
	notifier ImpactNotifier
}

type chunkParams struct {
	coord      Coord
	position   mgl32.Vec2
	resolution [2]int
	voxelSize  float32
	extrusion  float32
	uv         meshing.UVParams
	binding    Binding
	notifier   ImpactNotifier
	// filled reports the initial state of local voxel (x, y). Nil means filled.
	filled func(x, y int) bool
}

func newChunk(p chunkParams) *Chunk {
	w, h := p.resolution[0], p.resolution[1]
	c := &Chunk{
		coord:     p.coord,
		position:  p.position,
		width:     w,
		height:    h,
		voxels:    make([]Voxel, w*h),
		surface:   meshing.NewSurfaceMesher(w),
		extrusion: meshing.NewExtrusionMesher(w, p.extrusion),
		uv:        p.uv,
		binding:   p.binding,
		notifier:  p.notifier,
	}
	c.uv.Offset = p.position

	halfVoxel := mgl32.Vec2{0.5 * p.voxelSize, 0.5 * p.voxelSize}
	halfChunk := mgl32.Vec2{halfVoxel.X() * float32(w), halfVoxel.Y() * float32(h)}
	origin := halfVoxel.Sub(halfChunk) // center of voxel (0,0)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			filled := true
			if p.filled != nil {
				filled = p.filled(x, y)
			}
			c.voxels[y*w+x] = Voxel{
				Position: origin.Add(mgl32.Vec2{p.voxelSize * float32(x), p.voxelSize * float32(y)}),
				Size:     p.voxelSize,
				Filled:   filled,
			}
		}
	}

	return c
}

func (c *Chunk) voxel(x, y int) *Voxel {
	return &c.voxels[y*c.width+x]
}

// Coord returns the chunk's index in its grid.
func (c *Chunk) Coord() Coord { return c.coord }

// Position returns the world-space center of the chunk. Mesh vertices and
// Outlines are relative to it.
func (c *Chunk) Position() mgl32.Vec2 { return c.position }

// Resolution returns the number of voxels on each axis.
func (c *Chunk) Resolution() Coord { return Coord{c.width, c.height} }

// Filled reports whether local voxel (x, y) is filled. Out of range is empty.
func (c *Chunk) Filled(x, y int) bool {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return false
	}
	return c.voxel(x, y).Filled
}

// Voxel returns a copy of local voxel (x, y).
func (c *Chunk) Voxel(x, y int) (Voxel, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Voxel{}, false
	}
	return *c.voxel(x, y), true
}

// CellType classifies local voxel (x, y) by its filled orthogonal neighbors.
// Neighbors outside the chunk count as empty.
func (c *Chunk) CellType(x, y int) meshing.CellType {
	var t meshing.CellType
	if c.Filled(x, y-1) {
		t |= meshing.DownFilled
	}
	if c.Filled(x-1, y) {
		t |= meshing.LeftFilled
	}
	if c.Filled(x, y+1) {
		t |= meshing.UpFilled
	}
	if c.Filled(x+1, y) {
		t |= meshing.RightFilled
	}
	return t
}

// Surface returns the top mesh from the last rebuild.
func (c *Chunk) Surface() *meshing.Mesh { return c.surface.Mesh() }

// Extrusion returns the skirt mesh from the last rebuild.
func (c *Chunk) Extrusion() *meshing.Mesh { return c.extrusion.Mesh() }

// Paths returns the outline paths from the last rebuild as indices into the
// extrusion mesh.
func (c *Chunk) Paths() [][]int { return c.extrusion.Paths() }

// Outlines returns the collision outlines in chunk-local space.
func (c *Chunk) Outlines() [][]mgl32.Vec2 { return c.extrusion.Outlines() }

// WorldOutlines returns the collision outlines in world space.
func (c *Chunk) WorldOutlines() [][]mgl32.Vec2 {
	out := c.extrusion.Outlines()
	for _, path := range out {
		for i := range path {
			path[i] = path[i].Add(c.position)
		}
	}
	return out
}

// Apply runs the stencil over the voxels under its bounding box and rebuilds
// the chunk if any of them changed. It reports whether a rebuild happened.
func (c *Chunk) Apply(s *Stencil) bool {
	xMin := max(0, s.XMin())
	xMax := min(c.width-1, s.XMax())
	yMin := max(0, s.YMin())
	yMax := min(c.height-1, s.YMax())

	changed := false
	for y := yMin; y <= yMax; y++ {
		for x := xMin; x <= xMax; x++ {
			v := c.voxel(x, y)
			fill := s.Apply(x, y, v.Filled)
			if fill == v.Filled {
				continue
			}
			v.Filled = fill
			if !fill && c.notifier != nil {
				c.notifier.NotifyImpact(v.Position.Add(c.position))
			}
			changed = true
		}
	}

	if changed {
		c.Refresh()
	}
	return changed
}

// Refresh rebuilds both meshes and the outlines from scratch and hands them
// to the chunk's consumers.
func (c *Chunk) Refresh() {
	defer profiling.Track("world.Chunk.Refresh")()

	c.surface.Clear()
	c.extrusion.Clear()

	c.triangulateCells()

	c.surface.Finish(c.uv)
	c.extrusion.Finish(c.uv)

	if c.binding.Surface != nil {
		c.binding.Surface.SetMesh(c.surface.Mesh())
	}
	if c.binding.Extrusion != nil {
		c.binding.Extrusion.SetMesh(c.extrusion.Mesh())
	}
	if c.binding.Colliders != nil {
		c.binding.Colliders.SetOutlines(c.WorldOutlines())
	}
}

func (c *Chunk) triangulateCells() {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if !c.voxel(x, y).Filled {
				continue
			}
			cell := c.CellType(x, y)
			c.cacheCell(x, y, cell)
			c.triangulateCell(x, cell)
			c.extrusion.AddOutline(cell, x)
		}
		c.surface.SwapRowCaches()
		c.extrusion.SwapRowCaches()
	}
}

// cacheCell creates any corner vertices cell (x, y) needs that its left or
// lower neighbors have not created already.
func (c *Chunk) cacheCell(x, y int, cell meshing.CellType) {
	v := c.voxel(x, y)
	s, e := c.surface, c.extrusion

	if !s.IsCornerACached(x) {
		s.CacheCornerA(v.A(), x)
	}
	if !s.IsCornerBCached(x) {
		s.CacheCornerB(v.B(), x)
	}
	if !s.IsCornerCCached(x) {
		s.CacheCornerC(v.C(), x)
	}
	// Cells are visited left to right, bottom to top, so nothing before
	// this cell can have created its top-right corner.
	s.CacheCornerD(v.D(), x)

	// Wall corners are only needed along empty sides.
	if !cell.Has(meshing.DownFilled) {
		if !e.IsCornerACached(x) {
			e.CacheCornerA(v.A(), x)
		}
		if !e.IsCornerBCached(x) {
			e.CacheCornerB(v.B(), x)
		}
	}
	if !cell.Has(meshing.LeftFilled) {
		if !e.IsCornerACached(x) {
			e.CacheCornerA(v.A(), x)
		}
		if !e.IsCornerCCached(x) {
			e.CacheCornerC(v.C(), x)
		}
	}
	if !cell.Has(meshing.UpFilled) {
		if !e.IsCornerCCached(x) {
			e.CacheCornerC(v.C(), x)
		}
		if !e.IsCornerDCached(x) {
			e.CacheCornerD(v.D(), x)
		}
	}
	if !cell.Has(meshing.RightFilled) {
		if !e.IsCornerBCached(x) {
			e.CacheCornerB(v.B(), x)
		}
		if !e.IsCornerDCached(x) {
			e.CacheCornerD(v.D(), x)
		}
	}
}

func (c *Chunk) triangulateCell(x int, cell meshing.CellType) {
	c.surface.AddQuad(x)

	if !cell.Has(meshing.DownFilled) {
		c.extrusion.AddSectionAB(x)
	}
	if !cell.Has(meshing.LeftFilled) {
		c.extrusion.AddSectionCA(x)
	}
	if !cell.Has(meshing.UpFilled) {
		c.extrusion.AddSectionDC(x)
	}
	if !cell.Has(meshing.RightFilled) {
		c.extrusion.AddSectionBD(x)
	}
}
