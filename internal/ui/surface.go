// Package ui projects game state onto render surfaces, including a tcell terminal.
package ui

import "github.com/samdwyer/memorygame/internal/memory"

// MessageKind classifies a modal message.
type MessageKind int

const (
	// MessageNone hides the modal
	MessageNone MessageKind = iota
	// MessageWin - all pairs found
	MessageWin
	// MessageLose - countdown expired
	MessageLose
	// MessageError - invalid user action, e.g. start without difficulty
	MessageError
	// MessageConfirm - yes/no prompt before a reset
	MessageConfirm
)

// String returns the kind name, also used as a CSS class.
func (k MessageKind) String() string {
	switch k {
	case MessageNone:
		return ""
	case MessageWin:
		return "win"
	case MessageLose:
		return "lose"
	case MessageError:
		return "error"
	case MessageConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Surface is anything the game can be drawn on.
type Surface interface {
	// RenderBoard draws one element per card; nil clears the board.
	RenderBoard(cards []memory.Card)
	// RenderScore shows the attempts and countdown readout.
	RenderScore(attempts, seconds int)
	// ClearScore blanks the readout while no game is running.
	ClearScore()
	// ShowMessage opens a modal; MessageNone closes it.
	ShowMessage(text string, kind MessageKind)
}

// MenuSurface is implemented by surfaces that draw the difficulty selector
// and start/reset controls.
type MenuSurface interface {
	RenderMenu(options []string, selected string, playing bool)
}
