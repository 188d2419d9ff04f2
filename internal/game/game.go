package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/memorygame/internal/gamedata"
	"github.com/samdwyer/memorygame/internal/scores"
	"github.com/samdwyer/memorygame/internal/telemetry"
	"github.com/samdwyer/memorygame/internal/ui"
)

// Options configures a terminal game.
type Options struct {
	Config   Config
	Registry *gamedata.DifficultyRegistry
	Palette  gamedata.Palette
	Recorder scores.Recorder
	Logger   zerolog.Logger
}

// Game is the terminal front end: one tcell screen driving one controller.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	ctrl     *Controller
	registry *gamedata.DifficultyRegistry
	sched    *scheduler
	logger   zerolog.Logger
	running  bool
	buttons  tcell.ButtonMask // Buttons held at the last mouse event
}

// New creates a new game instance on the terminal.
func New(opts Options) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(screen, opts), nil
}

func newGame(screen *ui.Screen, opts Options) *Game {
	cfg := opts.Config.withDefaults()
	renderer := ui.NewRenderer(screen, opts.Palette)
	ctrl := NewController(cfg.NewSession(), opts.Registry, renderer, opts.Recorder, opts.Logger)
	return &Game{
		screen:   screen,
		renderer: renderer,
		ctrl:     ctrl,
		registry: opts.Registry,
		sched:    newScheduler(cfg.TickInterval),
		logger:   opts.Logger,
		running:  true,
	}
}

// Run executes the main game loop until the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	_, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(attribute.Int("difficulties", g.registry.Count()))
	g.ctrl.Init()
	initSpan.End()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go g.pump(events, quit)

	defer func() {
		close(quit)
		g.sched.stop()
		g.screen.Close()
	}()

	for g.running {
		g.sched.sync(g.ctrl.Session())
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			g.handleEvent(ctx, ev)
		case <-g.sched.ticks():
			g.ctrl.Tick(ctx)
		case <-g.sched.fired():
			g.ctrl.Resolve(ctx, g.sched.take())
		}
	}
	return nil
}

// pump forwards terminal events until the screen is closed.
func (g *Game) pump(events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		g.renderer.Redraw()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyEscape:
		if g.ctrl.Overlay() == OverlayNone {
			g.running = false
			return
		}
		g.dispatch(ctx, Command{Kind: CmdClose})

	case tcell.KeyUp:
		g.renderer.MoveCursor(0, -1)
	case tcell.KeyDown:
		g.renderer.MoveCursor(0, 1)
	case tcell.KeyLeft:
		g.renderer.MoveCursor(-1, 0)
	case tcell.KeyRight:
		g.renderer.MoveCursor(1, 0)

	case tcell.KeyEnter:
		g.activate(ctx)

	case tcell.KeyRune:
		g.handleRune(ctx, ev.Rune())
	}
}

func (g *Game) handleRune(ctx context.Context, r rune) {
	switch r {
	case 'q', 'Q':
		g.running = false
	case ' ':
		g.activate(ctx)
	case 's', 'S':
		g.dispatch(ctx, Command{Kind: CmdStart})
	case 'r', 'R':
		g.dispatch(ctx, Command{Kind: CmdRequestReset})
	case 'y', 'Y':
		if g.ctrl.Overlay() == OverlayConfirm {
			g.dispatch(ctx, Command{Kind: CmdReset, Confirmed: true})
		}
	case 'n', 'N':
		g.dispatch(ctx, Command{Kind: CmdReset})
	case 'c', 'C':
		g.dispatch(ctx, Command{Kind: CmdClose})
	default:
		if r >= '1' && r <= '9' {
			if def := g.registry.GetByIndex(int(r - '1')); def != nil {
				g.dispatch(ctx, Command{Kind: CmdSelectDifficulty, Difficulty: def.ID})
			}
		}
	}
}

// activate flips the highlighted card, or closes an open message.
func (g *Game) activate(ctx context.Context) {
	switch g.ctrl.Overlay() {
	case OverlayNone:
		g.dispatch(ctx, Command{Kind: CmdFlip, Index: g.renderer.Cursor()})
	case OverlayMessage:
		g.dispatch(ctx, Command{Kind: CmdClose})
	}
}

// handleMouseEvent flips the card under a left click. Motion with the
// button still held is not a new click.
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0 && g.buttons&tcell.Button1 == 0
	g.buttons = ev.Buttons()
	if !pressed {
		return
	}
	x, y := ev.Position()
	g.click(ctx, x, y)
}

// click flips the card drawn at screen position x, y, if any.
func (g *Game) click(ctx context.Context, x, y int) {
	if i := g.renderer.CardAt(x, y); i >= 0 {
		g.dispatch(ctx, Command{Kind: CmdFlip, Index: i})
	}
}

func (g *Game) dispatch(ctx context.Context, cmd Command) {
	if err := g.ctrl.Dispatch(ctx, cmd); err != nil {
		g.logger.Debug().Err(err).Stringer("command", cmd.Kind).Msg("command rejected")
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
