package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/memorygame/internal/gamedata"
	"github.com/samdwyer/memorygame/internal/memory"
	"github.com/samdwyer/memorygame/internal/scores"
	"github.com/samdwyer/memorygame/internal/telemetry"
	"github.com/samdwyer/memorygame/internal/ui"
)

// ErrUnknownDifficulty is returned when selecting a difficulty id that is not registered.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

const (
	msgNoDifficulty = "Please select a difficulty."
	msgConfirmReset = "Reset the game?"
)

// WinMessage is the text shown when every pair was found.
func WinMessage(attempts, elapsed int) string {
	return fmt.Sprintf("Congratulations, you won!\nAttempts: %d\nTime used: %ds", attempts, elapsed)
}

// LoseMessage is the text shown when the countdown expires.
func LoseMessage(attempts, elapsed int) string {
	return fmt.Sprintf("Time's up!\nYou made %d attempts.\nTime used: %ds", attempts, elapsed)
}

// Controller applies user commands, ticks and delayed actions to a session
// and projects the outcome onto a surface. It is not safe for concurrent use.
type Controller struct {
	session  *memory.Session
	registry *gamedata.DifficultyRegistry
	surface  ui.Surface
	recorder scores.Recorder
	logger   zerolog.Logger
	tracer   trace.Tracer

	overlay Overlay
}

// NewController creates a controller. recorder may be nil.
func NewController(session *memory.Session, registry *gamedata.DifficultyRegistry, surface ui.Surface, recorder scores.Recorder, logger zerolog.Logger) *Controller {
	return &Controller{
		session:  session,
		registry: registry,
		surface:  surface,
		recorder: recorder,
		logger:   logger,
		tracer:   telemetry.Tracer("game"),
	}
}

// Session returns the controlled session.
func (c *Controller) Session() *memory.Session { return c.session }

// Overlay returns what currently covers the board.
func (c *Controller) Overlay() Overlay { return c.overlay }

// Init draws the idle screen.
func (c *Controller) Init() {
	c.renderIdle()
}

// Dispatch applies one command.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CmdSelectDifficulty:
		return c.SelectDifficulty(cmd.Difficulty)
	case CmdStart:
		return c.Start(ctx)
	case CmdFlip:
		c.Flip(ctx, cmd.Index)
		return nil
	case CmdRequestReset:
		c.RequestReset()
		return nil
	case CmdReset:
		c.Reset(cmd.Confirmed)
		return nil
	case CmdClose:
		c.Close()
		return nil
	default:
		return fmt.Errorf("unknown command %d", cmd.Kind)
	}
}

// SelectDifficulty configures the next game. The selector is disabled while
// a game is on the board, so the call is then a no-op.
func (c *Controller) SelectDifficulty(id string) error {
	if c.session.Phase() != memory.PhaseIdle {
		return nil
	}
	def := c.registry.GetByID(id)
	if def == nil {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, id)
	}
	if err := c.session.Configure(def); err != nil {
		return err
	}
	c.logger.Debug().Str("difficulty", def.ID).Msg("difficulty selected")
	c.renderMenu()
	return nil
}

// Start deals a new board. Without a difficulty it shows an error message.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.session.Start(); err != nil {
		if errors.Is(err, memory.ErrNoDifficulty) {
			c.show(msgNoDifficulty, ui.MessageError)
		}
		return err
	}

	def := c.session.Difficulty()
	_, span := c.tracer.Start(ctx, "game.start")
	span.SetAttributes(
		attribute.String("difficulty", def.ID),
		attribute.Int("pairs", def.Pairs),
		attribute.String("budget", def.TimeBudget().String()),
		attribute.Int("round", c.session.Round()),
	)
	span.End()

	c.logger.Info().
		Str("difficulty", def.ID).
		Int("pairs", def.Pairs).
		Dur("budget", def.TimeBudget()).
		Msg("game started")

	c.show("", ui.MessageNone)
	c.renderMenu()
	c.renderBoard()
	c.renderScore()
	return nil
}

// Flip reveals a card unless an overlay covers the board.
func (c *Controller) Flip(ctx context.Context, index int) memory.FlipResult {
	if c.overlay != OverlayNone {
		return memory.FlipIgnored
	}
	result := c.session.Flip(index)
	if result == memory.FlipIgnored {
		return result
	}

	if result != memory.FlipFirst {
		_, span := c.tracer.Start(ctx, "game.turn")
		span.SetAttributes(
			attribute.Int("attempt", c.session.Attempts()),
			attribute.String("result", result.String()),
			attribute.Int("matched", c.session.MatchedPairs()),
		)
		span.End()
		c.logger.Debug().
			Int("attempt", c.session.Attempts()).
			Stringer("result", result).
			Msg("turn")
	}

	c.renderBoard()
	c.renderScore()
	return result
}

// RequestReset asks for confirmation before discarding a running game.
func (c *Controller) RequestReset() {
	if c.session.Phase() != memory.PhasePlaying || c.overlay != OverlayNone {
		return
	}
	c.show(msgConfirmReset, ui.MessageConfirm)
}

// Reset discards the game when confirmed; otherwise it dismisses the prompt.
func (c *Controller) Reset(confirmed bool) {
	if !confirmed {
		if c.overlay == OverlayConfirm {
			c.show("", ui.MessageNone)
		}
		return
	}
	if c.session.Phase() == memory.PhaseIdle {
		c.show("", ui.MessageNone)
		return
	}
	c.logger.Info().Str("difficulty", c.session.Summary().Difficulty).Msg("game reset")
	c.session.Reset()
	c.renderIdle()
}

// Close dismisses the current message. Closing a win or loss returns to idle.
func (c *Controller) Close() {
	switch c.overlay {
	case OverlayNone:
		return
	case OverlayConfirm:
		c.Reset(false)
		return
	}
	if c.session.Acknowledge() {
		c.renderIdle()
		return
	}
	c.show("", ui.MessageNone)
}

// Tick advances the countdown by one second.
func (c *Controller) Tick(ctx context.Context) {
	if !c.session.TimerRunning() {
		return
	}
	lost := c.session.Tick()
	c.renderScore()
	if lost {
		c.finish(ctx)
	}
}

// Resolve performs a delayed action the session asked for.
func (c *Controller) Resolve(ctx context.Context, d memory.Delay) {
	if !c.session.Resolve(d) {
		return
	}
	c.renderBoard()
	if c.session.Phase() == memory.PhaseWon {
		c.finish(ctx)
	}
}

// finish announces a terminal state and records the result.
func (c *Controller) finish(ctx context.Context) {
	sum := c.session.Summary()

	outcome := scores.OutcomeLost
	text := LoseMessage(sum.Attempts, sum.Elapsed)
	kind := ui.MessageLose
	if sum.Phase == memory.PhaseWon {
		outcome = scores.OutcomeWon
		text = WinMessage(sum.Attempts, sum.Elapsed)
		kind = ui.MessageWin
	}

	ctx, span := c.tracer.Start(ctx, "game.end")
	defer span.End()
	span.SetAttributes(
		attribute.String("difficulty", sum.Difficulty),
		attribute.String("outcome", string(outcome)),
		attribute.Int("attempts", sum.Attempts),
		attribute.Int("elapsed", sum.Elapsed),
		attribute.Int("matched", sum.Matched),
	)

	c.logger.Info().
		Str("difficulty", sum.Difficulty).
		Str("outcome", string(outcome)).
		Int("attempts", sum.Attempts).
		Int("elapsed", sum.Elapsed).
		Msg("game over")

	c.show(text, kind)

	if c.recorder == nil {
		return
	}
	result := scores.Result{
		ID:             uuid.NewString(),
		Difficulty:     sum.Difficulty,
		Outcome:        outcome,
		Attempts:       sum.Attempts,
		ElapsedSeconds: sum.Elapsed,
		FinishedAt:     time.Now().UTC(),
	}
	if err := c.recorder.Record(ctx, result); err != nil {
		span.RecordError(err)
		c.logger.Warn().Err(err).Str("result", result.ID).Msg("failed to record result")
	}
}

func (c *Controller) show(text string, kind ui.MessageKind) {
	switch kind {
	case ui.MessageNone:
		c.overlay = OverlayNone
	case ui.MessageConfirm:
		c.overlay = OverlayConfirm
	default:
		c.overlay = OverlayMessage
	}
	c.surface.ShowMessage(text, kind)
}

func (c *Controller) renderIdle() {
	c.show("", ui.MessageNone)
	c.surface.RenderBoard(nil)
	c.surface.ClearScore()
	c.renderMenu()
}

func (c *Controller) renderBoard() {
	c.surface.RenderBoard(c.session.Cards())
}

func (c *Controller) renderScore() {
	c.surface.RenderScore(c.session.Attempts(), c.session.Remaining())
}

func (c *Controller) renderMenu() {
	menu, ok := c.surface.(ui.MenuSurface)
	if !ok {
		return
	}
	defs := c.registry.All()
	options := make([]string, len(defs))
	for i := range defs {
		options[i] = defs[i].Name
	}
	selected := ""
	if def := c.session.Difficulty(); def != nil {
		selected = def.Name
	}
	menu.RenderMenu(options, selected, c.session.Phase() != memory.PhaseIdle)
}
