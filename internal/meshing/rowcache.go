package meshing

// unset marks a corner that has no vertex yet in the current row pair.
const unset = -1

// rowCache holds vertex indices for the bottom (min) and top (max) corner rows
// of the cell row being triangulated. Cell x owns corners x and x+1 in each
// row, so a chunk that is w cells wide needs w+1 slots per row.
//
// Traversal is strictly row-major: once a row is done its top corners become
// the bottom corners of the next row, which is all Swap does.
type rowCache struct {
	min []int
	max []int
}

func newRowCache(width int) rowCache {
	rc := rowCache{
		min: make([]int, width+1),
		max: make([]int, width+1),
	}
	rc.Reset()
	return rc
}

func fill(row []int, v int) {
	for i := range row {
		row[i] = v
	}
}

// Reset clears both rows.
func (rc *rowCache) Reset() {
	fill(rc.min, unset)
	fill(rc.max, unset)
}

// Swap promotes the top row to the bottom row and clears the new top row.
func (rc *rowCache) Swap() {
	rc.min, rc.max = rc.max, rc.min
	fill(rc.max, unset)
}

func (rc *rowCache) A(x int) int { return rc.min[x] }
func (rc *rowCache) B(x int) int { return rc.min[x+1] }
func (rc *rowCache) C(x int) int { return rc.max[x] }
func (rc *rowCache) D(x int) int { return rc.max[x+1] }

func (rc *rowCache) setA(x, v int) { rc.min[x] = v }
func (rc *rowCache) setB(x, v int) { rc.min[x+1] = v }
func (rc *rowCache) setC(x, v int) { rc.max[x] = v }
func (rc *rowCache) setD(x, v int) { rc.max[x+1] = v }
