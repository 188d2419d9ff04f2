// Package main is the entry point for the memory game.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samdwyer/memorygame/internal/game"
	"github.com/samdwyer/memorygame/internal/gamedata"
	"github.com/samdwyer/memorygame/internal/httpserver"
	"github.com/samdwyer/memorygame/internal/scores"
	"github.com/samdwyer/memorygame/internal/telemetry"
)

func main() {
	// Load .env file for local development.
	// Not fatal - env vars might be set directly.
	envErr := godotenv.Load()

	mode := flag.String("mode", getEnv("MEMORY_MODE", "tui"), "front end: tui or web")
	addr := flag.String("addr", getEnv("MEMORY_ADDR", ":8080"), "listen address in web mode")
	seed := flag.Int64("seed", envInt64("MEMORY_SEED", 0), "shuffle seed, 0 for random")
	dbPath := flag.String("db", getEnv("MEMORY_DB", "memorygame.db"), "SQLite results database, empty to disable")
	flag.Parse()

	logFile, err := setupLogging(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "memorygame: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	if envErr != nil {
		log.Debug().Err(envErr).Msg(".env file not loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Continue without telemetry - game still works
			log.Warn().Err(err).Msg("telemetry setup failed")
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					log.Error().Err(err).Msg("shutting down telemetry")
				}
			}()
		}
	}

	registry, err := gamedata.LoadDifficultyRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load difficulties")
	}
	theme, err := gamedata.LoadTheme()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load theme, using default colours")
	}

	recorders, leaderboard, closeAll := openRecorders(*dbPath)
	defer closeAll()

	cfg := game.DefaultConfig()
	cfg.Seed = *seed
	logger := log.Logger

	switch *mode {
	case "tui":
		g, err := game.New(game.Options{
			Config:   cfg,
			Registry: registry,
			Palette:  theme.Palette(),
			Recorder: recorders,
			Logger:   logger,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize terminal")
		}
		if err := g.Run(ctx); err != nil {
			log.Error().Err(err).Msg("game error")
		}

	case "web":
		opts := httpserver.Options{
			Registry: registry,
			Config:   cfg,
			Recorder: recorders,
			Logger:   logger,
		}
		if leaderboard != nil {
			opts.Leaderboard = leaderboard
		}
		if err := serve(ctx, *addr, httpserver.New(opts)); err != nil {
			log.Error().Err(err).Msg("server exited")
		}

	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode, want tui or web")
	}
}

// serve runs the HTTP front end until ctx is cancelled.
func serve(ctx context.Context, addr string, srv *httpserver.Server) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	defer srv.Close()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting memorygame server")
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openRecorders opens the SQLite store and the NATS publisher when
// configured. Failures are logged and that recorder is skipped.
func openRecorders(dbPath string) (scores.Multi, *scores.SQLiteStore, func()) {
	var (
		recorders scores.Multi
		closers   []io.Closer
		store     *scores.SQLiteStore
	)

	if dbPath != "" {
		s, err := scores.OpenSQLite(dbPath)
		if err != nil {
			log.Warn().Err(err).Str("path", dbPath).Msg("results database unavailable")
		} else {
			store = s
			recorders = append(recorders, s)
			closers = append(closers, s)
		}
	}

	if url := os.Getenv("NATS_URL"); url != "" {
		p, err := scores.ConnectPublisher(url, getEnv("NATS_SUBJECT", scores.DefaultSubject))
		if err != nil {
			log.Warn().Err(err).Str("url", url).Msg("NATS unavailable, results will not be published")
		} else {
			recorders = append(recorders, p)
			closers = append(closers, p)
		}
	}

	return recorders, store, func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("closing recorder")
			}
		}
	}
}

// setupLogging sets the global zerolog logger. The terminal belongs to tcell
// in tui mode, so logs go to a file there.
func setupLogging(mode string) (*os.File, error) {
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if mode != "tui" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return nil, nil
	}
	f, err := os.OpenFile(getEnv("LOG_FILE", "memorygame.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// An explicit OTEL_EXPORTER_OTLP_ENDPOINT is left alone.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_MEMORYGAME_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := getEnv("HONEYCOMB_MEMORYGAME_DATASET", "memorygame")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
