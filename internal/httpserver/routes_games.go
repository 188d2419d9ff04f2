package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/samdwyer/memorygame/internal/game"
	"github.com/samdwyer/memorygame/internal/memory"
	"github.com/samdwyer/memorygame/internal/ui"
)

type gameRes struct {
	ID   string  `json:"id"`
	View ui.View `json:"view"`
}

type difficultyReq struct {
	Difficulty string `json:"difficulty"`
}

type flipReq struct {
	Index *int `json:"index"`
}

type resetReq struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) mountGames() {
	s.r.Post("/games", s.handleNewGame)
	s.r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Delete("/", s.handleDeleteGame)
		r.Get("/board", s.handleBoard)
		r.Post("/difficulty", s.handleDifficulty)
		r.Post("/start", s.handleStart)
		r.Post("/flip", s.handleFlip)
		r.Post("/reset", s.handleReset)
		r.Post("/close", s.handleClose)
	})
}

// handleNewGame starts an idle game on its own loop.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	snap := ui.NewSnapshot()
	logger := s.opts.Logger.With().Str("game", id).Logger()

	ctrl := game.NewController(s.opts.Config.NewSession(), s.opts.Registry, snap, s.opts.Recorder, logger)
	ctrl.Init()
	loop := game.NewLoop(ctrl, s.opts.Config)

	ctx, cancel := context.WithCancel(s.base)
	g := &liveGame{ID: id, loop: loop, snap: snap, cancel: cancel}
	s.games.Save(g)
	go loop.Run(ctx)

	logger.Info().Msg("game created")
	writeJSON(w, http.StatusCreated, gameRes{ID: id, View: g.View()})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, gameRes{ID: g.ID, View: g.View()})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.games.Remove(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.command(w, r, game.Command{Kind: game.CmdSelectDifficulty, Difficulty: req.Difficulty})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, game.Command{Kind: game.CmdStart})
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	var req flipReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.command(w, r, game.Command{Kind: game.CmdFlip, Index: *req.Index})
}

// handleReset resets when the body confirms; otherwise it opens the
// confirmation prompt and answers 409.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Confirm {
		s.command(w, r, game.Command{Kind: game.CmdReset, Confirmed: true})
		return
	}

	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := g.loop.Submit(r.Context(), game.Command{Kind: game.CmdRequestReset}); err != nil {
		s.commandError(w, g, err)
		return
	}
	writeJSON(w, http.StatusConflict, map[string]any{"error": "confirmation_required", "view": g.View()})
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, game.Command{Kind: game.CmdClose})
}

// command submits cmd to the game's loop and answers with the new view.
func (s *Server) command(w http.ResponseWriter, r *http.Request, cmd game.Command) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := g.loop.Submit(r.Context(), cmd); err != nil {
		s.commandError(w, g, err)
		return
	}
	writeJSON(w, http.StatusOK, gameRes{ID: g.ID, View: g.View()})
}

func (s *Server) commandError(w http.ResponseWriter, g *liveGame, err error) {
	switch {
	case errors.Is(err, memory.ErrNoDifficulty):
		writeError(w, http.StatusUnprocessableEntity, "no_difficulty")
	case errors.Is(err, memory.ErrNotIdle):
		writeError(w, http.StatusConflict, "game_in_progress")
	case errors.Is(err, game.ErrUnknownDifficulty):
		writeError(w, http.StatusBadRequest, "unknown_difficulty")
	case errors.Is(err, game.ErrLoopStopped):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "timeout")
	default:
		s.opts.Logger.Error().Err(err).Str("game", g.ID).Msg("game command")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*liveGame, bool) {
	g, err := s.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return g, true
}
