package ui

import "testing"

func TestColumns(t *testing.T) {
	tests := []struct {
		cards    int
		expected int
	}{
		{0, 4},
		{8, 4},
		{16, 4},
		{20, 5},
		{36, 6},
	}

	for _, tt := range tests {
		if got := Columns(tt.cards); got != tt.expected {
			t.Errorf("Columns(%d) = %d, want %d", tt.cards, got, tt.expected)
		}
	}
}

func TestGridLayout(t *testing.T) {
	rects := GridLayout(20, 1, 3)
	if len(rects) != 20 {
		t.Fatalf("len(GridLayout) = %d, want 20", len(rects))
	}

	// Fifth card wraps only when there are four columns; with 20 cards it stays on row 0.
	if rects[4].Y != 3 {
		t.Errorf("rects[4].Y = %d, want 3", rects[4].Y)
	}
	if rects[5].Y != 3+cardHeight+cardGapY || rects[5].X != 1 {
		t.Errorf("rects[5] = %+v, want start of second row", rects[5])
	}

	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			if a.X < b.X+b.Width && a.X+a.Width > b.X && a.Y < b.Y+b.Height && a.Y+a.Height > b.Y {
				t.Fatalf("cards %d and %d overlap", i, j)
			}
		}
	}
}

func TestCardAt(t *testing.T) {
	rects := GridLayout(8, 0, 0)

	tests := []struct {
		name     string
		x, y     int
		expected int
	}{
		{"first card corner", 0, 0, 0},
		{"second card", cardWidth + cardGapX, 1, 1},
		{"gap between cards", cardWidth, 1, -1},
		{"second row", 0, cardHeight + cardGapY, 4},
		{"outside", 200, 200, -1},
	}

	for _, tt := range tests {
		if got := CardAt(rects, tt.x, tt.y); got != tt.expected {
			t.Errorf("CardAt(%s) = %d, want %d", tt.name, got, tt.expected)
		}
	}

	x, y := rects[6].X+rects[6].Width/2, rects[6].Y+rects[6].Height/2
	if got := CardAt(rects, x, y); got != 6 {
		t.Errorf("CardAt(center of 6) = %d, want 6", got)
	}
}
