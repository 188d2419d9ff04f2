package game

// CommandKind identifies a user action.
type CommandKind int

const (
	CmdSelectDifficulty CommandKind = iota
	CmdStart
	CmdFlip
	CmdRequestReset
	CmdReset
	CmdClose
)

// String returns a human-readable command name.
func (k CommandKind) String() string {
	switch k {
	case CmdSelectDifficulty:
		return "select_difficulty"
	case CmdStart:
		return "start"
	case CmdFlip:
		return "flip"
	case CmdRequestReset:
		return "request_reset"
	case CmdReset:
		return "reset"
	case CmdClose:
		return "close"
	default:
		return "unknown"
	}
}

// Command is one user action addressed to a Controller.
type Command struct {
	Kind       CommandKind
	Difficulty string // CmdSelectDifficulty
	Index      int    // CmdFlip
	Confirmed  bool   // CmdReset
}
