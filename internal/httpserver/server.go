// Package httpserver serves memory games over HTTP: a JSON API, HTML board
// markup and an embedded page that plays against them.
//
// Every game runs its own event loop; handlers only submit commands to it
// and read back the snapshot it renders into.
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/samdwyer/memorygame/internal/game"
	"github.com/samdwyer/memorygame/internal/gamedata"
	"github.com/samdwyer/memorygame/internal/scores"
)

// Options holds the server dependencies. Recorder and Leaderboard may be nil.
type Options struct {
	Registry    *gamedata.DifficultyRegistry
	Config      game.Config
	Recorder    scores.Recorder
	Leaderboard scores.Leaderboard
	Logger      zerolog.Logger
}

// Server bundles the router and the running games.
type Server struct {
	r      *chi.Mux
	opts   Options
	games  *gameStore
	base   context.Context
	cancel context.CancelFunc
}

// New constructs a Server, installs middleware and registers routes.
func New(opts Options) *Server {
	base, cancel := context.WithCancel(context.Background())
	s := &Server{
		r:      chi.NewRouter(),
		opts:   opts,
		games:  newGameStore(),
		base:   base,
		cancel: cancel,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(s.requestLogger)
	s.r.Use(jsonContentType)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "memorygame",
			"endpoints": []string{"/health", "/play", "/difficulties", "POST /games", "/games/{id}", "/leaderboard"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": s.games.Count()})
	})

	s.r.Get("/play", s.handlePlay)
	s.r.Get("/difficulties", s.handleDifficulties)
	s.r.Get("/leaderboard", s.handleLeaderboard)
	s.mountGames()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router, for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.r }

// Close stops every running game loop.
func (s *Server) Close() {
	s.cancel()
	s.games.StopAll()
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.opts.Logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
