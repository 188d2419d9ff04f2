package memory

import (
	"errors"
	"math/rand"
	"time"

	"github.com/samdwyer/memorygame/internal/gamedata"
)

var (
	// ErrNoDifficulty is returned by Start when no difficulty was configured.
	ErrNoDifficulty = errors.New("no difficulty selected")
	// ErrNotIdle is returned when configuring or starting a session that is already in a game.
	ErrNotIdle = errors.New("game already in progress")
	// ErrInvalidDeck is returned by StartWithDeck when the deck breaks the pair invariant.
	ErrInvalidDeck = errors.New("deck must hold every identity exactly twice")
)

// DelayKind identifies a delayed resolution requested by the session.
type DelayKind int

const (
	// DelayFlipBack turns a mismatched pair face-down again.
	DelayFlipBack DelayKind = iota + 1
	// DelayAnnounceWin ends the game after the final pair has been shown.
	DelayAnnounceWin
)

// String returns a human-readable delay name.
func (k DelayKind) String() string {
	switch k {
	case DelayFlipBack:
		return "flip_back"
	case DelayAnnounceWin:
		return "announce_win"
	default:
		return "unknown"
	}
}

// Delay is a request to call Resolve once After has elapsed.
// Seq identifies the request; a session holds at most one at a time.
type Delay struct {
	Kind  DelayKind
	After time.Duration
	Seq   uint64
}

// Timing holds the display delays used when resolving turns.
type Timing struct {
	MismatchDelay time.Duration // How long a mismatched pair stays visible
	WinDelay      time.Duration // How long the final pair shows before the win
}

// DefaultTiming returns the standard 1s mismatch and 500ms win delays.
func DefaultTiming() Timing {
	return Timing{
		MismatchDelay: 1000 * time.Millisecond,
		WinDelay:      500 * time.Millisecond,
	}
}

// FlipResult describes what a Flip call did.
type FlipResult int

const (
	// FlipIgnored - the flip was not allowed and nothing changed
	FlipIgnored FlipResult = iota
	// FlipFirst - first card of a turn revealed
	FlipFirst
	// FlipMatch - second card revealed and it matched the first
	FlipMatch
	// FlipMismatch - second card revealed and it did not match
	FlipMismatch
)

// String returns a human-readable flip result.
func (r FlipResult) String() string {
	switch r {
	case FlipIgnored:
		return "ignored"
	case FlipFirst:
		return "first"
	case FlipMatch:
		return "match"
	case FlipMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Summary is the end-of-game report.
type Summary struct {
	Phase      Phase
	Difficulty string
	Attempts   int
	Matched    int
	Pairs      int
	Elapsed    int // Seconds used: budget minus remaining
}

// Session holds all state for one player's board.
// It is not safe for concurrent use; a single event loop owns it.
type Session struct {
	rng    *rand.Rand
	timing Timing

	def   *gamedata.DifficultyDef
	phase Phase
	deck  Deck
	round int

	first, second int // Pending turn indices, -1 when empty
	attempts      int
	matchedPairs  int
	remaining     int
	locked        bool

	pending *Delay
	seq     uint64
}

// NewSession creates an idle session.
func NewSession(rng *rand.Rand, timing Timing) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		rng:    rng,
		timing: timing,
		phase:  PhaseIdle,
		first:  -1,
		second: -1,
	}
}

// Configure selects the difficulty for the next game.
func (s *Session) Configure(def *gamedata.DifficultyDef) error {
	if s.phase != PhaseIdle {
		return ErrNotIdle
	}
	s.def = def
	s.remaining = 0
	if def != nil {
		s.remaining = def.Seconds
	}
	return nil
}

// Start deals a shuffled deck and starts the countdown.
func (s *Session) Start() error {
	if s.def == nil {
		return ErrNoDifficulty
	}
	if s.phase != PhaseIdle {
		return ErrNotIdle
	}
	return s.StartWithDeck(NewDeck(s.def, s.rng))
}

// StartWithDeck starts a game on a caller-provided deck.
func (s *Session) StartWithDeck(deck Deck) error {
	if s.def == nil {
		return ErrNoDifficulty
	}
	if s.phase != PhaseIdle {
		return ErrNotIdle
	}
	if !deck.ValidFor(s.def) {
		return ErrInvalidDeck
	}

	s.deck = deck.clone()
	for i := range s.deck {
		s.deck[i].FaceUp = false
		s.deck[i].Matched = false
	}
	s.clearTurn()
	s.attempts = 0
	s.matchedPairs = 0
	s.remaining = s.def.Seconds
	s.pending = nil
	s.phase = PhasePlaying
	s.round++
	return nil
}

// Flip reveals the card at index if the board allows it.
func (s *Session) Flip(index int) FlipResult {
	if s.phase != PhasePlaying || s.locked || index < 0 || index >= len(s.deck) {
		return FlipIgnored
	}
	card := &s.deck[index]
	if card.FaceUp || card.Matched {
		return FlipIgnored
	}
	card.FaceUp = true

	if s.first < 0 {
		s.first = index
		return FlipFirst
	}

	s.second = index
	s.locked = true
	s.attempts++

	a, b := &s.deck[s.first], &s.deck[s.second]
	if a.Identity == b.Identity {
		a.Matched, b.Matched = true, true
		s.matchedPairs++
		s.clearTurn()
		if s.allMatched() {
			s.schedule(DelayAnnounceWin, s.timing.WinDelay)
		}
		return FlipMatch
	}

	s.schedule(DelayFlipBack, s.timing.MismatchDelay)
	return FlipMismatch
}

// Resolve performs the pending delayed action identified by d.
// It returns false when d is stale or nothing is pending.
func (s *Session) Resolve(d Delay) bool {
	if s.pending == nil || s.pending.Seq != d.Seq {
		return false
	}
	kind := s.pending.Kind
	s.pending = nil

	switch kind {
	case DelayFlipBack:
		for _, i := range []int{s.first, s.second} {
			if i >= 0 {
				s.deck[i].FaceUp = false
			}
		}
		s.clearTurn()
	case DelayAnnounceWin:
		s.phase = PhaseWon
		s.locked = true
	}
	return true
}

// Tick advances the countdown by one second.
// It returns true when this tick ended the game in a loss.
func (s *Session) Tick() bool {
	if !s.TimerRunning() {
		return false
	}
	s.remaining--
	if s.remaining == 0 && !s.allMatched() {
		s.phase = PhaseLost
		s.locked = true
		s.pending = nil
		return true
	}
	return false
}

// TimerRunning reports whether ticks currently count down.
// The countdown freezes once every pair is matched.
func (s *Session) TimerRunning() bool {
	return s.phase == PhasePlaying && s.remaining > 0 && !s.allMatched()
}

// Reset discards the game and the selected difficulty.
func (s *Session) Reset() {
	s.def = nil
	s.deck = nil
	s.phase = PhaseIdle
	s.clearTurn()
	s.attempts = 0
	s.matchedPairs = 0
	s.remaining = 0
	s.pending = nil
}

// Acknowledge returns a finished session to idle.
// It returns false when the game has not ended.
func (s *Session) Acknowledge() bool {
	if !s.phase.IsTerminal() {
		return false
	}
	s.Reset()
	return true
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Difficulty returns the configured difficulty, or nil.
func (s *Session) Difficulty() *gamedata.DifficultyDef { return s.def }

// Cards returns a copy of the board.
func (s *Session) Cards() []Card { return s.deck.clone() }

// Attempts returns the number of completed turns.
func (s *Session) Attempts() int { return s.attempts }

// MatchedPairs returns the number of pairs found.
func (s *Session) MatchedPairs() int { return s.matchedPairs }

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int { return s.remaining }

// Locked reports whether flips are currently refused.
func (s *Session) Locked() bool { return s.locked }

// Round counts games started on this session.
func (s *Session) Round() int { return s.round }

// Pending returns the outstanding delayed action, if any.
func (s *Session) Pending() (Delay, bool) {
	if s.pending == nil {
		return Delay{}, false
	}
	return *s.pending, true
}

// Summary reports the current counters; Elapsed is budget minus remaining.
func (s *Session) Summary() Summary {
	sum := Summary{
		Phase:    s.phase,
		Attempts: s.attempts,
		Matched:  s.matchedPairs,
	}
	if s.def != nil {
		sum.Difficulty = s.def.ID
		sum.Pairs = s.def.Pairs
		sum.Elapsed = s.def.Seconds - s.remaining
	}
	return sum
}

func (s *Session) allMatched() bool {
	return s.def != nil && s.matchedPairs == s.def.Pairs
}

func (s *Session) clearTurn() {
	s.first = -1
	s.second = -1
	s.locked = false
}

func (s *Session) schedule(kind DelayKind, after time.Duration) {
	s.seq++
	s.pending = &Delay{Kind: kind, After: after, Seq: s.seq}
}
