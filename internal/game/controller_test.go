package game

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/samdwyer/memorygame/internal/gamedata"
	"github.com/samdwyer/memorygame/internal/memory"
	"github.com/samdwyer/memorygame/internal/scores"
	"github.com/samdwyer/memorygame/internal/ui"
)

type recorderStub struct {
	mu      sync.Mutex
	results []scores.Result
	err     error
}

func (r *recorderStub) Record(_ context.Context, res scores.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	return r.err
}

func (r *recorderStub) Results() []scores.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]scores.Result(nil), r.results...)
}

func newTestController(t *testing.T) (*Controller, *ui.Snapshot, *recorderStub) {
	t.Helper()
	snap := ui.NewSnapshot()
	rec := &recorderStub{}
	cfg := Config{Seed: 42}
	ctrl := NewController(cfg.NewSession(), gamedata.MustLoadDifficultyRegistry(), snap, rec, zerolog.Nop())
	ctrl.Init()
	return ctrl, snap, rec
}

func startEasy(t *testing.T, ctrl *Controller) {
	t.Helper()
	ctx := context.Background()
	if err := ctrl.SelectDifficulty("easy"); err != nil {
		t.Fatalf("SelectDifficulty: %v", err)
	}
	if err := ctrl.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

// pairsOf groups card indices by identity.
func pairsOf(cards []memory.Card) map[string][]int {
	pairs := make(map[string][]int)
	for i, c := range cards {
		pairs[c.Identity] = append(pairs[c.Identity], i)
	}
	return pairs
}

// mismatch returns two indices holding different identities.
func mismatch(cards []memory.Card) (int, int) {
	for j := 1; j < len(cards); j++ {
		if cards[j].Identity != cards[0].Identity {
			return 0, j
		}
	}
	return -1, -1
}

func TestInitRendersIdle(t *testing.T) {
	_, snap, _ := newTestController(t)
	v := snap.View()

	if len(v.Cards) != 0 {
		t.Errorf("idle board has %d cards, want 0", len(v.Cards))
	}
	if v.ScoreShown {
		t.Error("idle view shows the score")
	}
	if v.Playing {
		t.Error("idle view reports playing")
	}
	want := []string{"Easy", "Medium", "Hard"}
	if len(v.Options) != len(want) {
		t.Fatalf("Options = %v, want %v", v.Options, want)
	}
	for i := range want {
		if v.Options[i] != want[i] {
			t.Errorf("Options[%d] = %q, want %q", i, v.Options[i], want[i])
		}
	}
}

func TestStartWithoutDifficulty(t *testing.T) {
	ctrl, snap, _ := newTestController(t)

	err := ctrl.Start(context.Background())
	if !errors.Is(err, memory.ErrNoDifficulty) {
		t.Fatalf("Start() = %v, want ErrNoDifficulty", err)
	}
	v := snap.View()
	if v.MessageKind != ui.MessageError || v.Message != msgNoDifficulty {
		t.Errorf("message = (%q, %v), want (%q, error)", v.Message, v.MessageKind, msgNoDifficulty)
	}
	if ctrl.Overlay() != OverlayMessage {
		t.Errorf("Overlay() = %v, want message", ctrl.Overlay())
	}

	ctrl.Close()
	if ctrl.Overlay() != OverlayNone {
		t.Errorf("Overlay() after Close = %v, want none", ctrl.Overlay())
	}
	if snap.View().MessageKind != ui.MessageNone {
		t.Error("message still shown after Close")
	}
	if ctrl.Session().Phase() != memory.PhaseIdle {
		t.Errorf("Phase = %v, want idle", ctrl.Session().Phase())
	}
}

func TestSelectUnknownDifficulty(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	err := ctrl.SelectDifficulty("nightmare")
	if !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("SelectDifficulty(nightmare) = %v, want ErrUnknownDifficulty", err)
	}
	if ctrl.Session().Difficulty() != nil {
		t.Error("unknown difficulty was configured")
	}
}

func TestSelectIgnoredWhilePlaying(t *testing.T) {
	ctrl, snap, _ := newTestController(t)
	startEasy(t, ctrl)

	if err := ctrl.SelectDifficulty("hard"); err != nil {
		t.Errorf("SelectDifficulty while playing = %v, want nil", err)
	}
	if got := ctrl.Session().Difficulty().ID; got != "easy" {
		t.Errorf("difficulty = %q, want easy", got)
	}
	if got := snap.View().Selected; got != "Easy" {
		t.Errorf("Selected = %q, want Easy", got)
	}
}

func TestStartRendersBoard(t *testing.T) {
	ctrl, snap, _ := newTestController(t)
	startEasy(t, ctrl)

	v := snap.View()
	if len(v.Cards) != 8 {
		t.Fatalf("board has %d cards, want 8", len(v.Cards))
	}
	for i, f := range v.Cards {
		if f.Revealed || f.Identity != "" {
			t.Errorf("card %d is visible at start: %+v", i, f)
		}
	}
	if !v.ScoreShown || v.Attempts != 0 || v.Seconds != 25 {
		t.Errorf("score = (%v, %d, %d), want (true, 0, 25)", v.ScoreShown, v.Attempts, v.Seconds)
	}
	if !v.Playing || v.Selected != "Easy" {
		t.Errorf("menu = (%v, %q), want (true, Easy)", v.Playing, v.Selected)
	}
	if err := ctrl.Start(context.Background()); !errors.Is(err, memory.ErrNotIdle) {
		t.Errorf("second Start() = %v, want ErrNotIdle", err)
	}
}

func TestFlipMismatchThenResolve(t *testing.T) {
	ctx := context.Background()
	ctrl, snap, _ := newTestController(t)
	startEasy(t, ctrl)

	a, b := mismatch(ctrl.Session().Cards())
	if got := ctrl.Flip(ctx, a); got != memory.FlipFirst {
		t.Fatalf("first Flip = %v, want first", got)
	}
	if got := ctrl.Flip(ctx, b); got != memory.FlipMismatch {
		t.Fatalf("second Flip = %v, want mismatch", got)
	}

	v := snap.View()
	if !v.Cards[a].Revealed || !v.Cards[b].Revealed {
		t.Error("mismatched pair not shown before the delay")
	}
	if v.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", v.Attempts)
	}

	d, ok := ctrl.Session().Pending()
	if !ok || d.Kind != memory.DelayFlipBack {
		t.Fatalf("Pending() = (%v, %v), want flip back", d, ok)
	}
	ctrl.Resolve(ctx, d)

	v = snap.View()
	if v.Cards[a].Revealed || v.Cards[b].Revealed {
		t.Error("mismatched pair still shown after the delay")
	}
}

func TestWinRecordsResult(t *testing.T) {
	ctx := context.Background()
	ctrl, snap, rec := newTestController(t)
	startEasy(t, ctrl)

	for _, idx := range pairsOf(ctrl.Session().Cards()) {
		ctrl.Flip(ctx, idx[0])
		ctrl.Flip(ctx, idx[1])
	}

	d, ok := ctrl.Session().Pending()
	if !ok || d.Kind != memory.DelayAnnounceWin {
		t.Fatalf("Pending() = (%v, %v), want announce win", d, ok)
	}
	if snap.View().MessageKind != ui.MessageNone {
		t.Error("win announced before the delay")
	}

	ctrl.Tick(ctx)
	if got := ctrl.Session().Remaining(); got != 25 {
		t.Errorf("countdown moved after the last match: %d", got)
	}

	ctrl.Resolve(ctx, d)

	v := snap.View()
	if v.MessageKind != ui.MessageWin {
		t.Fatalf("MessageKind = %v, want win", v.MessageKind)
	}
	if want := WinMessage(4, 0); v.Message != want {
		t.Errorf("Message = %q, want %q", v.Message, want)
	}

	results := rec.Results()
	if len(results) != 1 {
		t.Fatalf("recorded %d results, want 1", len(results))
	}
	r := results[0]
	if r.Outcome != scores.OutcomeWon || r.Difficulty != "easy" || r.Attempts != 4 || r.ID == "" {
		t.Errorf("result = %+v", r)
	}
}

func TestLossRecordsResult(t *testing.T) {
	ctx := context.Background()
	ctrl, snap, rec := newTestController(t)
	startEasy(t, ctrl)

	for i := 0; i < 25; i++ {
		ctrl.Tick(ctx)
	}

	if got := ctrl.Session().Phase(); got != memory.PhaseLost {
		t.Fatalf("Phase = %v, want lost", got)
	}
	v := snap.View()
	if v.MessageKind != ui.MessageLose || v.Message != LoseMessage(0, 25) {
		t.Errorf("message = (%q, %v)", v.Message, v.MessageKind)
	}
	if v.Seconds != 0 {
		t.Errorf("Seconds = %d, want 0", v.Seconds)
	}

	ctrl.Tick(ctx)
	if got := len(rec.Results()); got != 1 {
		t.Errorf("recorded %d results, want 1", got)
	}
	if rec.Results()[0].Outcome != scores.OutcomeLost {
		t.Errorf("Outcome = %v, want lost", rec.Results()[0].Outcome)
	}

	ctrl.Close()
	if ctrl.Session().Phase() != memory.PhaseIdle {
		t.Errorf("Phase after Close = %v, want idle", ctrl.Session().Phase())
	}
	v = snap.View()
	if len(v.Cards) != 0 || v.ScoreShown || v.Selected != "" {
		t.Errorf("view not idle after Close: %+v", v)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	ctrl, snap, _ := newTestController(t)
	startEasy(t, ctrl)

	ctrl.RequestReset()
	if ctrl.Overlay() != OverlayConfirm {
		t.Fatalf("Overlay() = %v, want confirm", ctrl.Overlay())
	}
	if snap.View().MessageKind != ui.MessageConfirm {
		t.Error("confirmation prompt not shown")
	}
	if got := ctrl.Flip(ctx, 0); got != memory.FlipIgnored {
		t.Errorf("Flip under prompt = %v, want ignored", got)
	}

	ctrl.Reset(false)
	if ctrl.Overlay() != OverlayNone || ctrl.Session().Phase() != memory.PhasePlaying {
		t.Errorf("declined reset: overlay %v, phase %v", ctrl.Overlay(), ctrl.Session().Phase())
	}

	ctrl.RequestReset()
	ctrl.Reset(true)
	if ctrl.Session().Phase() != memory.PhaseIdle {
		t.Errorf("Phase after reset = %v, want idle", ctrl.Session().Phase())
	}
	if ctrl.Session().Difficulty() != nil {
		t.Error("difficulty kept after reset")
	}
	v := snap.View()
	if len(v.Cards) != 0 || v.ScoreShown || v.Playing {
		t.Errorf("view not idle after reset: %+v", v)
	}
}

func TestRequestResetIgnoredWhenIdle(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctrl.RequestReset()
	if ctrl.Overlay() != OverlayNone {
		t.Errorf("Overlay() = %v, want none", ctrl.Overlay())
	}
}

func TestLossReplacesConfirmation(t *testing.T) {
	ctx := context.Background()
	ctrl, snap, _ := newTestController(t)
	startEasy(t, ctrl)

	ctrl.RequestReset()
	for i := 0; i < 25; i++ {
		ctrl.Tick(ctx)
	}
	if ctrl.Overlay() != OverlayMessage || snap.View().MessageKind != ui.MessageLose {
		t.Errorf("overlay = %v, kind = %v, want message/lose", ctrl.Overlay(), snap.View().MessageKind)
	}
}

func TestRecorderErrorKeepsMessage(t *testing.T) {
	ctx := context.Background()
	ctrl, snap, rec := newTestController(t)
	rec.err = errors.New("disk full")
	startEasy(t, ctrl)

	for i := 0; i < 25; i++ {
		ctrl.Tick(ctx)
	}
	if snap.View().MessageKind != ui.MessageLose {
		t.Error("loss not announced when recording failed")
	}
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	ctrl, _, _ := newTestController(t)

	tests := []struct {
		name    string
		cmd     Command
		wantErr error
	}{
		{"start without difficulty", Command{Kind: CmdStart}, memory.ErrNoDifficulty},
		{"close error", Command{Kind: CmdClose}, nil},
		{"unknown difficulty", Command{Kind: CmdSelectDifficulty, Difficulty: "x"}, ErrUnknownDifficulty},
		{"select", Command{Kind: CmdSelectDifficulty, Difficulty: "easy"}, nil},
		{"start", Command{Kind: CmdStart}, nil},
		{"flip", Command{Kind: CmdFlip, Index: 0}, nil},
		{"request reset", Command{Kind: CmdRequestReset}, nil},
		{"reset", Command{Kind: CmdReset, Confirmed: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ctrl.Dispatch(ctx, tt.cmd)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Dispatch(%v) = %v, want %v", tt.cmd.Kind, err, tt.wantErr)
			}
		})
	}

	if err := ctrl.Dispatch(ctx, Command{Kind: CommandKind(99)}); err == nil {
		t.Error("Dispatch(unknown kind) = nil, want error")
	}
}

func TestCommandKindString(t *testing.T) {
	tests := []struct {
		kind     CommandKind
		expected string
	}{
		{CmdSelectDifficulty, "select_difficulty"},
		{CmdStart, "start"},
		{CmdFlip, "flip"},
		{CmdRequestReset, "request_reset"},
		{CmdReset, "reset"},
		{CmdClose, "close"},
		{CommandKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("CommandKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestOverlayString(t *testing.T) {
	tests := []struct {
		overlay  Overlay
		expected string
	}{
		{OverlayNone, "none"},
		{OverlayMessage, "message"},
		{OverlayConfirm, "confirm"},
		{Overlay(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.overlay.String(); got != tt.expected {
			t.Errorf("Overlay(%d).String() = %q, want %q", tt.overlay, got, tt.expected)
		}
	}
}
