package world

// Stencil is a circular dig tool measured in voxels. The center is set per
// chunk in that chunk's local voxel coordinates, so one stencil can be reused
// across every chunk a dig touches.
type Stencil struct {
	radius int
	center Coord
}

// NewStencil returns a stencil that empties every voxel within radius of its
// center. A negative radius is treated as zero.
func NewStencil(radius int) *Stencil {
	if radius < 0 {
		radius = 0
	}
	return &Stencil{radius: radius}
}

// Extents is the half-size of the stencil's bounding box.
func (s *Stencil) Extents() int { return s.radius }

// Center returns the current center.
func (s *Stencil) Center() Coord { return s.center }

// SetCenter moves the stencil.
func (s *Stencil) SetCenter(c Coord) { s.center = c }

func (s *Stencil) XMin() int { return s.center.X - s.radius }
func (s *Stencil) XMax() int { return s.center.X + s.radius }
func (s *Stencil) YMin() int { return s.center.Y - s.radius }
func (s *Stencil) YMax() int { return s.center.Y + s.radius }

// Apply returns the new fill state of the voxel at (x, y). Voxels inside the
// circle become empty; everything else keeps its current state, so a stencil
// never fills a voxel.
func (s *Stencil) Apply(x, y int, current bool) bool {
	dx := x - s.center.X
	dy := y - s.center.Y
	if dx*dx+dy*dy <= s.radius*s.radius {
		return false
	}
	return current
}
