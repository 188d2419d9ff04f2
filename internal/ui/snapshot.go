package ui

import (
	"sync"

	"github.com/samdwyer/memorygame/internal/memory"
)

// View is a serializable copy of everything a surface has been told to show.
type View struct {
	Cards       []Face      `json:"cards"`
	Columns     int         `json:"columns"`
	ScoreShown  bool        `json:"scoreShown"`
	Attempts    int         `json:"attempts"`
	Seconds     int         `json:"seconds"`
	ScoreText   string      `json:"scoreText,omitempty"`
	TimerText   string      `json:"timerText,omitempty"`
	TimerLevel  string      `json:"timerLevel,omitempty"`
	Message     string      `json:"message,omitempty"`
	MessageKind MessageKind `json:"-"`
	Kind        string      `json:"messageKind,omitempty"`
	Options     []string    `json:"options,omitempty"`
	Selected    string      `json:"selected,omitempty"`
	Playing     bool        `json:"playing"`
}

// Snapshot is a Surface that records the latest projection. It is safe to
// read from other goroutines while an event loop renders into it.
type Snapshot struct {
	mu   sync.RWMutex
	view View
}

// NewSnapshot creates an empty recording surface.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// RenderBoard records the card faces.
func (s *Snapshot) RenderBoard(cards []memory.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Cards = Faces(cards)
	s.view.Columns = 0
	if len(cards) > 0 {
		s.view.Columns = Columns(len(cards))
	}
}

// RenderScore records the readout.
func (s *Snapshot) RenderScore(attempts, seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ScoreShown = true
	s.view.Attempts = attempts
	s.view.Seconds = seconds
	s.view.ScoreText = ScoreText(attempts)
	s.view.TimerText = TimerText(seconds)
	s.view.TimerLevel = TimerLevelFor(seconds).String()
}

// ClearScore blanks the readout.
func (s *Snapshot) ClearScore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ScoreShown = false
	s.view.Attempts = 0
	s.view.Seconds = 0
	s.view.ScoreText = ""
	s.view.TimerText = ""
	s.view.TimerLevel = ""
}

// ShowMessage records the modal.
func (s *Snapshot) ShowMessage(text string, kind MessageKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Message = text
	s.view.MessageKind = kind
	s.view.Kind = kind.String()
}

// RenderMenu records the selector state.
func (s *Snapshot) RenderMenu(options []string, selected string, playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Options = append([]string(nil), options...)
	s.view.Selected = selected
	s.view.Playing = playing
}

// View returns a copy of the recorded state.
func (s *Snapshot) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.view
	v.Cards = make([]Face, len(s.view.Cards))
	copy(v.Cards, s.view.Cards)
	v.Options = append([]string(nil), s.view.Options...)
	return v
}
