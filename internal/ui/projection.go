package ui

import (
	"strconv"

	"github.com/samdwyer/memorygame/internal/gamedata"
	"github.com/samdwyer/memorygame/internal/memory"
)

// TimerLevel is the urgency band of the countdown.
type TimerLevel int

const (
	TimerNominal TimerLevel = iota
	TimerWarning
	TimerCritical
	TimerExpired
)

// String returns the level name, also used as a CSS class suffix.
func (l TimerLevel) String() string {
	switch l {
	case TimerNominal:
		return "nominal"
	case TimerWarning:
		return "warning"
	case TimerCritical:
		return "critical"
	case TimerExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// TimerLevelFor maps remaining seconds to a band:
// above 15 nominal, 6-15 warning, 1-5 critical, 0 expired.
func TimerLevelFor(seconds int) TimerLevel {
	switch {
	case seconds > 15:
		return TimerNominal
	case seconds > 5:
		return TimerWarning
	case seconds > 0:
		return TimerCritical
	default:
		return TimerExpired
	}
}

// ScoreText formats the attempts readout.
func ScoreText(attempts int) string {
	return "attempts: " + strconv.Itoa(attempts)
}

// TimerText formats the countdown readout.
func TimerText(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return "time: " + strconv.Itoa(seconds) + "s"
}

// Face is the visible projection of one card. Identity and Image are empty
// while the card is face-down.
type Face struct {
	Index    int    `json:"index"`
	Revealed bool   `json:"revealed"`
	Matched  bool   `json:"matched"`
	Identity string `json:"identity,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Faces projects the board without leaking hidden identities.
func Faces(cards []memory.Card) []Face {
	faces := make([]Face, len(cards))
	for i, c := range cards {
		faces[i] = Face{Index: i, Revealed: c.Revealed(), Matched: c.Matched}
		if c.Revealed() {
			faces[i].Identity = c.Identity
			faces[i].Image = gamedata.ImagePath(c.Identity)
		}
	}
	return faces
}
