package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// unit cell corners centered on the origin
var (
	cA = mgl32.Vec2{-0.5, -0.5}
	cB = mgl32.Vec2{0.5, -0.5}
	cC = mgl32.Vec2{-0.5, 0.5}
	cD = mgl32.Vec2{0.5, 0.5}
)

func TestRowCacheSwap(t *testing.T) {
	rc := newRowCache(2)
	rc.setA(0, 1)
	rc.setC(0, 7)
	rc.setD(1, 9)

	rc.Swap()
	if got := rc.A(0); got != 7 {
		t.Fatalf("A(0) after swap: got %d, want 7", got)
	}
	if got := rc.B(1); got != 9 {
		t.Fatalf("B(1) after swap: got %d, want 9", got)
	}
	for x := 0; x < 2; x++ {
		if rc.C(x) != unset || rc.D(x) != unset {
			t.Fatalf("top row not cleared at %d: %v", x, rc.max)
		}
	}

	rc.Reset()
	for i := range rc.min {
		if rc.min[i] != unset {
			t.Fatalf("bottom row not cleared at %d: %v", i, rc.min)
		}
	}
}

func TestSurfaceSingleQuad(t *testing.T) {
	s := NewSurfaceMesher(1)
	s.CacheCornerA(cA, 0)
	s.CacheCornerB(cB, 0)
	s.CacheCornerC(cC, 0)
	s.CacheCornerD(cD, 0)
	s.AddQuad(0)
	s.Finish(UVParams{
		GridMin:         mgl32.Vec2{-0.5, -0.5},
		GridMax:         mgl32.Vec2{0.5, 0.5},
		VoxelResolution: [2]int{1, 1},
		TexelResolution: 1,
	})

	m := s.Mesh()
	if m.VertexCount() != 4 {
		t.Fatalf("vertices: got %d, want 4", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("triangles: got %d, want 2", m.TriangleCount())
	}
	want := mgl32.Vec3{0, 0, -1}
	for i, n := range m.Normals {
		if !n.ApproxEqual(want) {
			t.Fatalf("normal %d: got %v, want %v", i, n, want)
		}
	}
	// A maps to the grid minimum, D to the maximum.
	if !m.UVs[0].ApproxEqual(mgl32.Vec2{0, 0}) || !m.UVs[3].ApproxEqual(mgl32.Vec2{1, 1}) {
		t.Fatalf("uvs: got %v", m.UVs)
	}
}

func TestSurfaceSharesCornersAcrossRow(t *testing.T) {
	s := NewSurfaceMesher(2)
	right := mgl32.Vec2{1, 0}
	for x := 0; x < 2; x++ {
		off := right.Mul(float32(x))
		if !s.IsCornerACached(x) {
			s.CacheCornerA(cA.Add(off), x)
		}
		if !s.IsCornerBCached(x) {
			s.CacheCornerB(cB.Add(off), x)
		}
		if !s.IsCornerCCached(x) {
			s.CacheCornerC(cC.Add(off), x)
		}
		s.CacheCornerD(cD.Add(off), x)
		s.AddQuad(x)
	}
	if got := s.Mesh().VertexCount(); got != 6 {
		t.Fatalf("two cells in a row: got %d vertices, want 6", got)
	}
}

func TestExtrusionSingleCell(t *testing.T) {
	e := NewExtrusionMesher(1, 2)
	e.CacheCornerA(cA, 0)
	e.CacheCornerB(cB, 0)
	e.CacheCornerC(cC, 0)
	e.CacheCornerD(cD, 0)
	e.AddSectionAB(0)
	e.AddSectionCA(0)
	e.AddSectionDC(0)
	e.AddSectionBD(0)
	e.AddOutline(0, 0)
	e.Finish(UVParams{VoxelResolution: [2]int{1, 1}, TexelResolution: 1})

	m := e.Mesh()
	if m.VertexCount() != 8 {
		t.Fatalf("vertices: got %d, want 8", m.VertexCount())
	}
	if m.TriangleCount() != 8 {
		t.Fatalf("triangles: got %d, want 8", m.TriangleCount())
	}
	for i := 0; i < len(m.Positions); i += 2 {
		top, bottom := m.Positions[i], m.Positions[i+1]
		if top.Z() != 0 || bottom.Z() != 2 || top.Vec2() != bottom.Vec2() {
			t.Fatalf("corner pair %d: top %v bottom %v", i/2, top, bottom)
		}
	}
	// Corner A sits between the down and left walls, so its normal points
	// outward along -x and -y and has no z part.
	n := m.Normals[0]
	if n.X() >= 0 || n.Y() >= 0 || n.Z() != 0 {
		t.Fatalf("normal at A: got %v, want outward diagonal", n)
	}

	outlines := e.Outlines()
	if len(outlines) != 1 || len(outlines[0]) != 5 {
		t.Fatalf("outlines: got %v, want one closed loop of 5 points", outlines)
	}
	want := []mgl32.Vec2{cA, cB, cD, cC, cA}
	for i, p := range outlines[0] {
		if p != want[i] {
			t.Fatalf("outline point %d: got %v, want %v", i, p, want[i])
		}
	}
}

func TestExtrusionClearResetsOutline(t *testing.T) {
	e := NewExtrusionMesher(1, 1)
	e.CacheCornerA(cA, 0)
	e.CacheCornerB(cB, 0)
	e.CacheCornerC(cC, 0)
	e.CacheCornerD(cD, 0)
	e.AddOutline(0, 0)
	e.Clear()

	if e.Mesh().VertexCount() != 0 || len(e.Paths()) != 0 || e.IsCornerACached(0) {
		t.Fatalf("clear left state behind: %d vertices, %d paths", e.Mesh().VertexCount(), len(e.Paths()))
	}
}

func TestInverseLerpClamps(t *testing.T) {
	cases := []struct {
		a, b, v, want float32
	}{
		{0, 10, 5, 0.5},
		{0, 10, -1, 0},
		{0, 10, 11, 1},
		{3, 3, 3, 0},
	}
	for _, c := range cases {
		if got := inverseLerp(c.a, c.b, c.v); got != c.want {
			t.Errorf("inverseLerp(%v, %v, %v) = %v, want %v", c.a, c.b, c.v, got, c.want)
		}
	}
}

func BenchmarkOutlineStitcherRow(b *testing.B) {
	var o OutlineStitcher
	for i := 0; i < b.N; i++ {
		o.Reset()
		for x := 0; x < 64; x++ {
			a, bb, c, d := stripCell(x)
			o.Add(LeftFilled|RightFilled, a, bb, c, d)
		}
	}
}
