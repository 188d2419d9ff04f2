// Package scores records finished games and serves the leaderboard.
package scores

import (
	"context"
	"errors"
	"time"
)

// Outcome is how a game ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// DefaultLimit is the leaderboard size used when none is requested.
const DefaultLimit = 10

// Result is one finished game.
type Result struct {
	ID             string    `json:"id"`
	Difficulty     string    `json:"difficulty"`
	Outcome        Outcome   `json:"outcome"`
	Attempts       int       `json:"attempts"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	FinishedAt     time.Time `json:"finishedAt"`
}

// Recorder persists or forwards finished games.
type Recorder interface {
	Record(ctx context.Context, r Result) error
}

// Leaderboard serves the best wins for a difficulty.
type Leaderboard interface {
	// Top returns wins ordered by time, then attempts. An empty difficulty
	// means all difficulties.
	Top(ctx context.Context, difficulty string, limit int) ([]Result, error)
}

// Multi fans a result out to several recorders and joins their errors.
type Multi []Recorder

// Record sends r to every recorder, continuing past failures.
func (m Multi) Record(ctx context.Context, r Result) error {
	var errs []error
	for _, rec := range m {
		if rec == nil {
			continue
		}
		if err := rec.Record(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
