package gamedata

import "github.com/gdamore/tcell/v2"

// TimerColors holds the countdown colour for each urgency band.
type TimerColors struct {
	Nominal  string `json:"nominal"`
	Warning  string `json:"warning"`
	Critical string `json:"critical"`
	Expired  string `json:"expired"`
}

// CardColors holds the colours used to draw cards on the board.
type CardColors struct {
	Back    string `json:"back"`
	Front   string `json:"front"`
	Matched string `json:"matched"`
	Cursor  string `json:"cursor"`
}

// ThemeDef is the structure of theme.json.
type ThemeDef struct {
	Timer TimerColors `json:"timer"`
	Card  CardColors  `json:"card"`
}

// Palette is a theme resolved to terminal colours.
type Palette struct {
	TimerNominal  tcell.Color
	TimerWarning  tcell.Color
	TimerCritical tcell.Color
	TimerExpired  tcell.Color
	CardBack      tcell.Color
	CardFront     tcell.Color
	CardMatched   tcell.Color
	Cursor        tcell.Color
}

// LoadTheme loads the embedded theme.json.
func LoadTheme() (*ThemeDef, error) {
	theme, err := Load[ThemeDef]("theme.json")
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// DefaultPalette is used when no theme is available.
func DefaultPalette() Palette {
	return Palette{
		TimerNominal:  tcell.ColorGreen,
		TimerWarning:  tcell.ColorOrange,
		TimerCritical: tcell.ColorRed,
		TimerExpired:  tcell.ColorGray,
		CardBack:      tcell.ColorBlue,
		CardFront:     tcell.ColorWhite,
		CardMatched:   tcell.ColorLimeGreen,
		Cursor:        tcell.ColorYellow,
	}
}

// Palette resolves the theme's hex strings, keeping defaults for bad entries.
func (t *ThemeDef) Palette() Palette {
	p := DefaultPalette()
	if t == nil {
		return p
	}
	p.TimerNominal = colorOr(t.Timer.Nominal, p.TimerNominal)
	p.TimerWarning = colorOr(t.Timer.Warning, p.TimerWarning)
	p.TimerCritical = colorOr(t.Timer.Critical, p.TimerCritical)
	p.TimerExpired = colorOr(t.Timer.Expired, p.TimerExpired)
	p.CardBack = colorOr(t.Card.Back, p.CardBack)
	p.CardFront = colorOr(t.Card.Front, p.CardFront)
	p.CardMatched = colorOr(t.Card.Matched, p.CardMatched)
	p.Cursor = colorOr(t.Card.Cursor, p.Cursor)
	return p
}
