package httpserver

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/samdwyer/memorygame/internal/scores"
	"github.com/samdwyer/memorygame/internal/ui"
)

//go:embed web/*.html
var webFS embed.FS

var boardTmpl = template.Must(template.ParseFS(webFS, "web/board.html"))

// boardData is what the board template renders.
type boardData struct {
	ID string
	ui.View
}

// handlePlay serves the browser page.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// handleBoard renders the game as HTML markup: menu, readout, cards and modal.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := boardTmpl.Execute(w, boardData{ID: g.ID, View: g.View()}); err != nil {
		s.opts.Logger.Error().Err(err).Str("game", g.ID).Msg("render board")
	}
}

type difficultyRes struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Pairs    int    `json:"pairs"`
	Seconds  int    `json:"seconds"`
}

func (s *Server) handleDifficulties(w http.ResponseWriter, r *http.Request) {
	defs := s.opts.Registry.All()
	out := make([]difficultyRes, len(defs))
	for i, d := range defs {
		out[i] = difficultyRes{ID: d.ID, Name: d.Name, Category: d.Category, Pairs: d.Pairs, Seconds: d.Seconds}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleLeaderboard returns the best wins, optionally for one difficulty.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.opts.Leaderboard == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard_unavailable")
		return
	}

	difficulty := r.URL.Query().Get("difficulty")
	if difficulty != "" && s.opts.Registry.GetByID(difficulty) == nil {
		writeError(w, http.StatusBadRequest, "unknown_difficulty")
		return
	}

	limit := scores.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}

	results, err := s.opts.Leaderboard.Top(r.Context(), difficulty, limit)
	if err != nil {
		s.opts.Logger.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "leaderboard_failed")
		return
	}
	if results == nil {
		results = []scores.Result{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"difficulty": difficulty, "results": results})
}
