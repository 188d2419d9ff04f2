package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/memorygame/internal/gamedata"
	"github.com/samdwyer/memorygame/internal/memory"
)

func newTestRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("sim.Init: %v", err)
	}
	sim.SetSize(80, 24)
	screen := NewScreenFrom(sim)
	t.Cleanup(screen.Close)
	return NewRenderer(screen, gamedata.DefaultPalette()), sim
}

func rowText(sim tcell.SimulationScreen, y int) string {
	w, _ := sim.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(sim tcell.SimulationScreen) string {
	_, h := sim.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(sim, y)
	}
	return strings.Join(rows, "\n")
}

func TestRendererScoreAndTimerColour(t *testing.T) {
	r, sim := newTestRenderer(t)
	palette := gamedata.DefaultPalette()

	tests := []struct {
		seconds int
		color   tcell.Color
	}{
		{20, palette.TimerNominal},
		{10, palette.TimerWarning},
		{3, palette.TimerCritical},
		{0, palette.TimerExpired},
	}

	for _, tt := range tests {
		r.RenderScore(2, tt.seconds)
		row := rowText(sim, scoreRow)
		if !strings.Contains(row, "attempts: 2") || !strings.Contains(row, TimerText(tt.seconds)) {
			t.Fatalf("score row = %q", row)
		}
		x := strings.Index(row, "time:")
		_, _, style, _ := sim.GetContent(x, scoreRow)
		fg, _, _ := style.Decompose()
		if fg != tt.color {
			t.Errorf("timer colour at %ds = %v, want %v", tt.seconds, fg, tt.color)
		}
	}

	r.ClearScore()
	if row := rowText(sim, scoreRow); strings.Contains(row, "attempts") {
		t.Errorf("ClearScore left %q", row)
	}
}

func TestRendererBoardHidesFaceDownCards(t *testing.T) {
	r, sim := newTestRenderer(t)

	r.RenderBoard([]memory.Card{
		{Identity: "animal1", FaceUp: true},
		{Identity: "animal2"},
		{Identity: "animal1", Matched: true, FaceUp: true},
		{Identity: "animal2"},
	})

	text := screenText(sim)
	if strings.Count(text, "animal1") != 2 {
		t.Errorf("expected two visible animal1 cards:\n%s", text)
	}
	if strings.Contains(text, "animal2") {
		t.Errorf("face-down identity leaked:\n%s", text)
	}
}

func TestRendererCursorAndHitTest(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.RenderBoard(make([]memory.Card, 8))

	if r.Cursor() != 0 {
		t.Fatalf("initial cursor = %d", r.Cursor())
	}
	r.MoveCursor(1, 0)
	r.MoveCursor(0, 1)
	if r.Cursor() != 5 {
		t.Errorf("cursor after right+down = %d, want 5", r.Cursor())
	}
	r.MoveCursor(0, 1) // no third row
	r.MoveCursor(-5, 0)
	if r.Cursor() != 5 {
		t.Errorf("cursor should clamp, got %d", r.Cursor())
	}

	x, y := r.rects[3].X+1, r.rects[3].Y+1
	if got := r.CardAt(x, y); got != 3 {
		t.Errorf("CardAt(center of 3) = %d, want 3", got)
	}
	if got := r.CardAt(0, 0); got != -1 {
		t.Errorf("CardAt(0,0) = %d, want -1", got)
	}
}

func TestRendererMessageAndMenu(t *testing.T) {
	r, sim := newTestRenderer(t)

	r.RenderMenu([]string{"Easy", "Medium", "Hard"}, "Medium", false)
	menu := rowText(sim, menuRow)
	for _, want := range []string{"[1] Easy", "[2] Medium", "[3] Hard", "[s] start"} {
		if !strings.Contains(menu, want) {
			t.Errorf("menu row %q missing %q", menu, want)
		}
	}

	r.RenderMenu([]string{"Easy", "Medium", "Hard"}, "Medium", true)
	if menu := rowText(sim, menuRow); !strings.Contains(menu, "[r] reset") {
		t.Errorf("menu while playing = %q", menu)
	}

	r.ShowMessage("Time's up!\nYou made 3 attempts.", MessageLose)
	text := screenText(sim)
	if !strings.Contains(text, "Time's up!") || !strings.Contains(text, "You made 3 attempts.") {
		t.Errorf("message not drawn:\n%s", text)
	}
	if r.MessageKind() != MessageLose {
		t.Errorf("MessageKind() = %v", r.MessageKind())
	}

	r.ShowMessage("Reset the game?", MessageConfirm)
	if text := screenText(sim); !strings.Contains(text, "[y] yes") {
		t.Errorf("confirm prompt missing choices:\n%s", text)
	}

	r.ShowMessage("", MessageNone)
	if text := screenText(sim); strings.Contains(text, "Reset the game?") {
		t.Errorf("message still visible after close:\n%s", text)
	}
}
