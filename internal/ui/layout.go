package ui

import "math"

const (
	cardWidth  = 11 // Cell width including border
	cardHeight = 3  // Cell height including border
	cardGapX   = 1
	cardGapY   = 1
	minColumns = 4
)

// Rect is a screen rectangle.
type Rect struct {
	X, Y          int // Top-left corner position
	Width, Height int
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Columns picks the grid width for n cards: the ceiling of sqrt(n), at least 4.
// 8 cards give 4x2, 16 give 4x4, 20 give 5x4.
func Columns(n int) int {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < minColumns {
		cols = minColumns
	}
	return cols
}

// GridLayout places n cards in rows starting at (originX, originY).
func GridLayout(n, originX, originY int) []Rect {
	cols := Columns(n)
	rects := make([]Rect, n)
	for i := range rects {
		col, row := i%cols, i/cols
		rects[i] = Rect{
			X:      originX + col*(cardWidth+cardGapX),
			Y:      originY + row*(cardHeight+cardGapY),
			Width:  cardWidth,
			Height: cardHeight,
		}
	}
	return rects
}

// CardAt returns the index of the rectangle containing (x, y), or -1.
func CardAt(rects []Rect, x, y int) int {
	for i, r := range rects {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}
