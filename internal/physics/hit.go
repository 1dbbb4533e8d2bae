package physics

import (
	"math"

	"pixeldig/internal/profiling"
	"pixeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// parallelEpsilon is the smallest |dir.z| treated as crossing the plane.
const parallelEpsilon = 1e-6

// HitResult is a ray hit on the dig plane translated to grid addresses.
type HitResult struct {
	Point mgl32.Vec3
	Chunk world.Coord
	Voxel world.Coord
	Hit   bool
}

// RaycastPlane intersects the ray origin+t*dir (t >= 0) with the plane
// z = planeZ. Rays parallel to the plane or pointing away from it miss.
func RaycastPlane(origin, dir mgl32.Vec3, planeZ float32) (mgl32.Vec3, bool) {
	if math.Abs(float64(dir.Z())) < parallelEpsilon {
		return mgl32.Vec3{}, false
	}
	t := (planeZ - origin.Z()) / dir.Z()
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	p := origin.Add(dir.Mul(t))
	p[2] = planeZ
	return p, true
}

// TranslateHit casts a ray at the surface of g (the z = 0 plane) and reports
// the chunk and voxel under the hit point. Hit is false when the ray misses
// the plane or lands outside the grid; Point is still set in the latter case.
func TranslateHit(g *world.Grid, origin, dir mgl32.Vec3) HitResult {
	defer profiling.Track("physics.TranslateHit")()

	p, ok := RaycastPlane(origin, dir, 0)
	if !ok {
		return HitResult{}
	}
	chunk, voxel, ok := g.Locate(p.Vec2())
	return HitResult{Point: p, Chunk: chunk, Voxel: voxel, Hit: ok}
}

// Dig digs with s where the ray hits g and returns the hit.
func Dig(g *world.Grid, origin, dir mgl32.Vec3, s *world.Stencil) HitResult {
	hit := TranslateHit(g, origin, dir)
	if hit.Hit {
		g.Dig(hit.Chunk, hit.Voxel, s)
	}
	return hit
}
