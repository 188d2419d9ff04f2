package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/memorygame/internal/gamedata"
	"github.com/samdwyer/memorygame/internal/memory"
)

const (
	menuRow   = 0
	scoreRow  = 1
	boardTop  = 3
	boardLeft = 1
)

// Renderer is the terminal Surface. It keeps the last projected state so any
// call can redraw the whole screen.
type Renderer struct {
	screen  *Screen
	palette gamedata.Palette

	cards    []memory.Card
	rects    []Rect
	cursor   int
	scoreOn  bool
	attempts int
	seconds  int
	message  string
	kind     MessageKind
	options  []string
	selected string
	playing  bool
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen, palette gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// RenderBoard draws the cards in a grid.
func (r *Renderer) RenderBoard(cards []memory.Card) {
	if len(cards) != len(r.cards) {
		r.rects = GridLayout(len(cards), boardLeft, boardTop)
		r.cursor = 0
	}
	r.cards = cards
	r.draw()
}

// RenderScore shows attempts and the colour-coded countdown.
func (r *Renderer) RenderScore(attempts, seconds int) {
	r.scoreOn = true
	r.attempts = attempts
	r.seconds = seconds
	r.draw()
}

// ClearScore blanks the readout.
func (r *Renderer) ClearScore() {
	r.scoreOn = false
	r.draw()
}

// ShowMessage opens or closes the modal box.
func (r *Renderer) ShowMessage(text string, kind MessageKind) {
	r.message = text
	r.kind = kind
	r.draw()
}

// RenderMenu draws the difficulty selector and the available controls.
func (r *Renderer) RenderMenu(options []string, selected string, playing bool) {
	r.options = options
	r.selected = selected
	r.playing = playing
	r.draw()
}

// MessageKind returns the kind of the modal currently shown.
func (r *Renderer) MessageKind() MessageKind {
	return r.kind
}

// Cursor returns the index of the highlighted card.
func (r *Renderer) Cursor() int {
	return r.cursor
}

// MoveCursor moves the highlight within the grid, clamping at the edges.
func (r *Renderer) MoveCursor(dx, dy int) {
	n := len(r.cards)
	if n == 0 {
		return
	}
	cols := Columns(n)
	col, row := r.cursor%cols+dx, r.cursor/cols+dy
	if col < 0 || col >= cols || row < 0 {
		return
	}
	if next := row*cols + col; next < n {
		r.cursor = next
	}
	r.draw()
}

// CardAt maps a screen position to a card index, or -1.
func (r *Renderer) CardAt(x, y int) int {
	return CardAt(r.rects, x, y)
}

// Redraw repaints everything, e.g. after a resize.
func (r *Renderer) Redraw() {
	r.screen.Sync()
	r.draw()
}

func (r *Renderer) draw() {
	r.screen.Clear()
	r.drawMenu()
	r.drawScore()
	for i := range r.cards {
		r.drawCard(i)
	}
	r.drawMessage()
	r.drawHelp()
	r.screen.Show()
}

func (r *Renderer) drawMenu() {
	x := r.screen.DrawText(boardLeft, menuRow, "MEMORY  ", tcell.StyleDefault.Bold(true))
	for i, opt := range r.options {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		if opt == r.selected {
			style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true).Underline(true)
		} else if !r.playing {
			style = tcell.StyleDefault.Foreground(tcell.ColorSilver)
		}
		label := "[" + string(rune('1'+i)) + "] " + opt
		x = r.screen.DrawText(x, menuRow, label, style) + 2
	}
	control := "[s] start"
	if r.playing {
		control = "[r] reset"
	}
	r.screen.DrawText(x+1, menuRow, control, tcell.StyleDefault.Foreground(r.palette.Cursor))
}

func (r *Renderer) drawScore() {
	if !r.scoreOn {
		return
	}
	x := r.screen.DrawText(boardLeft, scoreRow, ScoreText(r.attempts), tcell.StyleDefault)
	r.screen.DrawText(x+3, scoreRow, TimerText(r.seconds), tcell.StyleDefault.Foreground(r.timerColor()).Bold(true))
}

func (r *Renderer) timerColor() tcell.Color {
	switch TimerLevelFor(r.seconds) {
	case TimerNominal:
		return r.palette.TimerNominal
	case TimerWarning:
		return r.palette.TimerWarning
	case TimerCritical:
		return r.palette.TimerCritical
	default:
		return r.palette.TimerExpired
	}
}

func (r *Renderer) drawCard(i int) {
	card := r.cards[i]
	rect := r.rects[i]

	border := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if i == r.cursor && r.playing {
		border = tcell.StyleDefault.Foreground(r.palette.Cursor).Bold(true)
	}

	label, face := "?", tcell.StyleDefault.Background(r.palette.CardBack).Foreground(tcell.ColorWhite)
	switch {
	case card.Matched:
		label, face = card.Identity, tcell.StyleDefault.Foreground(r.palette.CardMatched).Bold(true)
	case card.FaceUp:
		label, face = card.Identity, tcell.StyleDefault.Foreground(r.palette.CardFront).Bold(true)
	}

	right, bottom := rect.X+rect.Width-1, rect.Y+rect.Height-1
	for x := rect.X + 1; x < right; x++ {
		r.screen.SetContent(x, rect.Y, tcell.RuneHLine, border)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, border)
	}
	r.screen.SetContent(rect.X, rect.Y, tcell.RuneULCorner, border)
	r.screen.SetContent(right, rect.Y, tcell.RuneURCorner, border)
	r.screen.SetContent(rect.X, bottom, tcell.RuneLLCorner, border)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, border)

	inner := rect.Width - 2
	for y := rect.Y + 1; y < bottom; y++ {
		r.screen.SetContent(rect.X, y, tcell.RuneVLine, border)
		r.screen.SetContent(right, y, tcell.RuneVLine, border)
		r.screen.DrawText(rect.X+1, y, center(label, inner), face)
	}
}

func (r *Renderer) drawMessage() {
	if r.kind == MessageNone {
		return
	}
	lines := strings.Split(r.message, "\n")
	switch r.kind {
	case MessageConfirm:
		lines = append(lines, "", "[y] yes   [n] no")
	default:
		lines = append(lines, "", "[enter] close")
	}

	width := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	width += 4

	w, _ := r.screen.Size()
	x0 := (w - width) / 2
	if x0 < 0 {
		x0 = 0
	}
	y0 := boardTop + 1

	style := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	switch r.kind {
	case MessageWin:
		style = style.Foreground(r.palette.TimerNominal).Bold(true)
	case MessageLose, MessageError:
		style = style.Foreground(r.palette.TimerCritical).Bold(true)
	}

	for row := -1; row <= len(lines); row++ {
		text := ""
		if row >= 0 && row < len(lines) {
			text = lines[row]
		}
		r.screen.DrawText(x0, y0+row+1, "  "+pad(text, width-2), style)
	}
}

func (r *Renderer) drawHelp() {
	_, h := r.screen.Size()
	help := "arrows move  enter/space flip  click flip  c close  q quit"
	r.screen.DrawText(boardLeft, h-1, help, tcell.StyleDefault.Foreground(tcell.ColorGray))
}

// center pads s on both sides to width runes, truncating if needed.
func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	left := (width - len(runes)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(runes)-left)
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
