// Package game wires user input and timers to the memory session and its render surface.
package game

// Overlay is what currently covers the board.
type Overlay int

const (
	// OverlayNone - the board is interactive
	OverlayNone Overlay = iota
	// OverlayMessage - a win, loss or error message waits to be closed
	OverlayMessage
	// OverlayConfirm - a reset confirmation waits for yes/no
	OverlayConfirm
)

// String returns a human-readable overlay name.
func (o Overlay) String() string {
	switch o {
	case OverlayNone:
		return "none"
	case OverlayMessage:
		return "message"
	case OverlayConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}
