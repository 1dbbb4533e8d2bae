package world

import (
	"context"
	"fmt"
	"math"

	"pixeldig/internal/config"
	"pixeldig/internal/meshing"
	"pixeldig/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Grid is a fixed rectangle of chunks centered on the layout origin.
// It is not safe for concurrent use; callers serialize Dig calls.
type Grid struct {
	layout config.Layout
	chunks []*Chunk // row-major, index y*cols+x
	cols   int
	rows   int
	min    mgl32.Vec2
	max    mgl32.Vec2
}

// Option configures a Grid at construction.
type Option func(*gridOptions)

type gridOptions struct {
	binder   Binder
	notifier ImpactNotifier
	filled   func(gx, gy int) bool
	workers  int
}

// WithBinder attaches consumers to every chunk.
func WithBinder(b Binder) Option {
	return func(o *gridOptions) { o.binder = b }
}

// WithImpactNotifier reports every dug voxel to n.
func WithImpactNotifier(n ImpactNotifier) Option {
	return func(o *gridOptions) { o.notifier = n }
}

// WithOccupancy sets the initial state of grid voxel (gx, gy). By default
// every voxel starts filled.
func WithOccupancy(filled func(gx, gy int) bool) Option {
	return func(o *gridOptions) { o.filled = filled }
}

// WithWorkers meshes the initial chunks on n goroutines. Consumers of
// different chunks may then be called concurrently.
func WithWorkers(n int) Option {
	return func(o *gridOptions) { o.workers = n }
}

// NewGrid builds every chunk and meshes it once.
func NewGrid(layout config.Layout, opts ...Option) (*Grid, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	var o gridOptions
	for _, opt := range opts {
		opt(&o)
	}

	halfGrid := layout.GridSize().Mul(0.5)
	halfChunk := layout.ChunkSize().Mul(0.5)
	origin := layout.OriginVec()

	g := &Grid{
		layout: layout,
		cols:   layout.GridResolution[0],
		rows:   layout.GridResolution[1],
		min:    origin.Sub(halfGrid),
		max:    origin.Add(halfGrid),
	}
	g.chunks = make([]*Chunk, g.cols*g.rows)

	uv := meshing.UVParams{
		GridMin:         g.min,
		GridMax:         g.max,
		VoxelResolution: layout.VoxelResolution(),
		TexelResolution: layout.TextureVoxelResolution,
	}
	chunkSize := layout.ChunkSize()
	firstCenter := g.min.Add(halfChunk)

	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			coord := Coord{x, y}
			pos := firstCenter.Add(mgl32.Vec2{chunkSize.X() * float32(x), chunkSize.Y() * float32(y)})

			p := chunkParams{
				coord:      coord,
				position:   pos,
				resolution: layout.ChunkResolution,
				voxelSize:  layout.VoxelSize,
				extrusion:  layout.ExtrusionHeight,
				uv:         uv,
				notifier:   o.notifier,
			}
			if o.binder != nil {
				p.binding = o.binder(coord, pos)
			}
			if o.filled != nil {
				base := Coord{x * layout.ChunkResolution[0], y * layout.ChunkResolution[1]}
				p.filled = func(lx, ly int) bool { return o.filled(base.X+lx, base.Y+ly) }
			}
			g.chunks[y*g.cols+x] = newChunk(p)
		}
	}
	if err := refreshChunks(context.Background(), g.chunks, o.workers); err != nil {
		return nil, err
	}
	return g, nil
}

// RefreshAll rebuilds every chunk on up to workers goroutines and hands the
// results to the consumers. It returns ctx.Err() if ctx ends first.
func (g *Grid) RefreshAll(ctx context.Context, workers int) error {
	return refreshChunks(ctx, g.chunks, workers)
}

// Layout returns the parameters the grid was built with.
func (g *Grid) Layout() config.Layout { return g.layout }

// Bounds returns the world-space corners of the grid.
func (g *Grid) Bounds() (lo, hi mgl32.Vec2) { return g.min, g.max }

// Resolution returns the number of chunks on each axis.
func (g *Grid) Resolution() Coord { return Coord{g.cols, g.rows} }

// VoxelResolution returns the number of voxels on each axis.
func (g *Grid) VoxelResolution() Coord {
	r := g.layout.VoxelResolution()
	return Coord{r[0], r[1]}
}

func (g *Grid) inRange(c Coord) bool {
	return c.X >= 0 && c.X < g.cols && c.Y >= 0 && c.Y < g.rows
}

// Chunk returns the chunk at c, or nil when c is outside the grid.
func (g *Grid) Chunk(c Coord) *Chunk {
	if !g.inRange(c) {
		return nil
	}
	return g.chunks[c.Y*g.cols+c.X]
}

// Chunks returns every chunk in row-major order.
func (g *Grid) Chunks() []*Chunk { return g.chunks }

// Filled reports whether grid voxel (gx, gy) is filled.
func (g *Grid) Filled(gx, gy int) bool {
	res := g.layout.ChunkResolution
	if gx < 0 || gy < 0 {
		return false
	}
	c := g.Chunk(Coord{gx / res[0], gy / res[1]})
	if c == nil {
		return false
	}
	return c.Filled(gx%res[0], gy%res[1])
}

// Dig centers s on voxel in chunk and applies it to every chunk its bounding
// box overlaps. A chunk coordinate outside the grid is ignored.
func (g *Grid) Dig(chunk, voxel Coord, s *Stencil) {
	if !g.inRange(chunk) {
		return
	}
	defer profiling.Track("world.Grid.Dig")()

	lo, hi := g.chunkRange(chunk, voxel, s.Extents())
	res := g.layout.ChunkResolution
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			offset := Coord{(x - chunk.X) * res[0], (y - chunk.Y) * res[1]}
			s.SetCenter(voxel.Sub(offset))
			g.chunks[y*g.cols+x].Apply(s)
		}
	}
}

// chunkRange returns the inclusive range of chunks touched by a stencil of the
// given extents centered on voxel in chunk, clamped to the grid.
func (g *Grid) chunkRange(chunk, voxel Coord, extents int) (lo, hi Coord) {
	res := g.layout.ChunkResolution
	gx := res[0]*chunk.X + voxel.X
	gy := res[1]*chunk.Y + voxel.Y

	lo = Coord{
		max(0, (gx-extents)/res[0]),
		max(0, (gy-extents)/res[1]),
	}
	hi = Coord{
		min(g.cols-1, (gx+extents)/res[0]),
		min(g.rows-1, (gy+extents)/res[1]),
	}
	return lo, hi
}

// Locate translates a world-space point on the grid plane into the chunk and
// local voxel that contain it. ok is false outside the grid.
func (g *Grid) Locate(p mgl32.Vec2) (chunk, voxel Coord, ok bool) {
	rel := p.Sub(g.min)
	size := g.layout.VoxelSize
	gx := int(math.Floor(float64(rel.X() / size)))
	gy := int(math.Floor(float64(rel.Y() / size)))

	vr := g.VoxelResolution()
	if gx < 0 || gy < 0 || gx >= vr.X || gy >= vr.Y {
		return Coord{}, Coord{}, false
	}
	res := g.layout.ChunkResolution
	chunk = Coord{gx / res[0], gy / res[1]}
	voxel = Coord{gx - chunk.X*res[0], gy - chunk.Y*res[1]}
	return chunk, voxel, true
}

// DigAt digs with s at a world-space point. Points outside the grid are
// ignored. It reports whether the point was on the grid.
func (g *Grid) DigAt(p mgl32.Vec2, s *Stencil) bool {
	chunk, voxel, ok := g.Locate(p)
	if !ok {
		return false
	}
	g.Dig(chunk, voxel, s)
	return true
}

func (g *Grid) String() string {
	vr := g.VoxelResolution()
	return fmt.Sprintf("Grid{%dx%d chunks, %dx%d voxels}", g.cols, g.rows, vr.X, vr.Y)
}
