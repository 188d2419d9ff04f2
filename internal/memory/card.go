// Package memory implements the pair-matching game: deck construction and the
// turn and countdown state machine.
package memory

// Card is one position on the board.
type Card struct {
	Identity string // Image key shared by exactly two cards (e.g., "animal1")
	FaceUp   bool   // Front face currently shown
	Matched  bool   // Part of a found pair; stays face-up
}

// Revealed reports whether the card's front is visible.
func (c Card) Revealed() bool {
	return c.FaceUp || c.Matched
}
