package memory

// Phase is the lifecycle state of a session.
type Phase int

const (
	// PhaseIdle - no deck dealt, difficulty selectable
	PhaseIdle Phase = iota
	// PhasePlaying - deck dealt and countdown running
	PhasePlaying
	// PhaseWon - every pair found before time ran out
	PhaseWon
	// PhaseLost - countdown reached zero with pairs left
	PhaseLost
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the phase ends the game.
func (p Phase) IsTerminal() bool {
	return p == PhaseWon || p == PhaseLost
}
