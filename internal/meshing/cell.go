package meshing

import "strings"

// CellType is the 4-bit neighbor signature of a filled cell. Each bit is set
// when the orthogonal neighbor on that side is filled; neighbors outside the
// chunk count as empty.
type CellType uint8

const (
	DownFilled CellType = 1 << iota
	LeftFilled
	UpFilled
	RightFilled

	// Enclosed is a cell with all four neighbors filled. It has no exposed
	// edges, so it gets no wall sections and no outline.
	Enclosed = DownFilled | LeftFilled | UpFilled | RightFilled
)

// Has reports whether every bit of flag is set.
func (c CellType) Has(flag CellType) bool {
	return c&flag == flag
}

func (c CellType) String() string {
	if c == 0 {
		return "none"
	}
	parts := make([]string, 0, 4)
	if c.Has(DownFilled) {
		parts = append(parts, "down")
	}
	if c.Has(LeftFilled) {
		parts = append(parts, "left")
	}
	if c.Has(UpFilled) {
		parts = append(parts, "up")
	}
	if c.Has(RightFilled) {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "|")
}
