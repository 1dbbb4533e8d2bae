package meshing

import "slices"

type corner uint8

const (
	cornerA corner = iota // bottom-left
	cornerB               // bottom-right
	cornerC               // top-left
	cornerD               // top-right
)

// outlineTable lists, per cell type, the exposed edge runs of a cell. Runs go
// counter-clockwise around the filled region (A, B, D, C), so holes come out
// clockwise.
var outlineTable = [16][][]corner{
	0:  {{cornerA, cornerB, cornerD, cornerC, cornerA}},
	1:  {{cornerB, cornerD, cornerC, cornerA}},
	2:  {{cornerA, cornerB, cornerD, cornerC}},
	3:  {{cornerB, cornerD, cornerC}},
	4:  {{cornerC, cornerA, cornerB, cornerD}},
	5:  {{cornerC, cornerA}, {cornerB, cornerD}},
	6:  {{cornerA, cornerB, cornerD}},
	7:  {{cornerB, cornerD}},
	8:  {{cornerD, cornerC, cornerA, cornerB}},
	9:  {{cornerD, cornerC, cornerA}},
	10: {{cornerA, cornerB}, {cornerD, cornerC}},
	11: {{cornerD, cornerC}},
	12: {{cornerC, cornerA, cornerB}},
	13: {{cornerC, cornerA}},
	14: {{cornerA, cornerB}},
	15: nil,
}

// OutlineStitcher merges per-cell boundary fragments into polylines of vertex
// indices. A path is closed when its first and last index are equal; closed
// paths are never extended again.
//
// Fragments must arrive in row-major cell order. The stitcher then only ever
// needs one extension plus at most one merge per fragment.
type OutlineStitcher struct {
	paths [][]int
}

// Reset drops all paths.
func (o *OutlineStitcher) Reset() {
	o.paths = o.paths[:0]
}

// Paths returns the current paths in creation order.
func (o *OutlineStitcher) Paths() [][]int {
	return o.paths
}

// Add stitches the exposed edges of one filled cell with corner vertex
// indices a, b, c and d.
func (o *OutlineStitcher) Add(cell CellType, a, b, c, d int) {
	idx := [4]int{a, b, c, d}
	for _, run := range outlineTable[cell&Enclosed] {
		frag := make([]int, len(run))
		for i, k := range run {
			frag[i] = idx[k]
		}
		o.addPath(frag)
	}
}

func isClosed(path []int) bool {
	return path[0] == path[len(path)-1]
}

func (o *OutlineStitcher) addPath(frag []int) {
	at, fromBack, ok := o.findExtendable(frag)
	if !ok {
		o.paths = append(o.paths, frag)
		return
	}

	path := o.paths[at]
	if fromBack {
		// frag ends where path starts: prepend frag minus the shared index.
		path = slices.Concat(frag[:len(frag)-1], path)
	} else {
		// frag starts where path ends: append frag minus the shared index.
		path = append(path, frag[1:]...)
	}
	o.paths[at] = path

	// The other end may now meet another open path.
	other, ok := o.findMergeable(at, fromBack)
	if !ok {
		return
	}
	tail := o.paths[other]
	if fromBack {
		path = slices.Concat(tail[:len(tail)-1], path)
	} else {
		path = append(path, tail[1:]...)
	}
	o.paths[at] = path
	o.paths = slices.Delete(o.paths, other, other+1)
}

// findExtendable returns the first open path that frag continues. fromBack is
// set when frag has to be prepended rather than appended.
func (o *OutlineStitcher) findExtendable(frag []int) (at int, fromBack bool, ok bool) {
	first, last := frag[0], frag[len(frag)-1]
	for i, path := range o.paths {
		if isClosed(path) {
			continue
		}
		if first == path[len(path)-1] {
			return i, false, true
		}
		if last == path[0] {
			return i, true, true
		}
	}
	return 0, false, false
}

// findMergeable returns the first open path, other than the one at index at,
// that joins the front (fromBack) or the back of the path at index at.
func (o *OutlineStitcher) findMergeable(at int, fromBack bool) (int, bool) {
	extended := o.paths[at]
	for i, path := range o.paths {
		if i == at || isClosed(path) {
			continue
		}
		if fromBack {
			if extended[0] == path[len(path)-1] {
				return i, true
			}
		} else if extended[len(extended)-1] == path[0] {
			return i, true
		}
	}
	return 0, false
}
