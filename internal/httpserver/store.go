package httpserver

import (
	"context"
	"errors"
	"sync"

	"github.com/samdwyer/memorygame/internal/game"
	"github.com/samdwyer/memorygame/internal/ui"
)

// errGameNotFound is returned for unknown game ids.
var errGameNotFound = errors.New("game not found")

// liveGame is one running event loop and the surface it renders into.
type liveGame struct {
	ID     string
	loop   *game.Loop
	snap   *ui.Snapshot
	cancel context.CancelFunc
}

// View returns what the game currently shows.
func (g *liveGame) View() ui.View { return g.snap.View() }

// gameStore keeps running games keyed by id.
type gameStore struct {
	mu    sync.RWMutex // guards games
	games map[string]*liveGame
}

func newGameStore() *gameStore {
	return &gameStore{games: make(map[string]*liveGame)}
}

func (s *gameStore) Save(g *liveGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *gameStore) Get(id string) (*liveGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if g, ok := s.games[id]; ok {
		return g, nil
	}
	return nil, errGameNotFound
}

// Remove stops the game's loop and forgets it.
func (s *gameStore) Remove(id string) error {
	s.mu.Lock()
	g, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if !ok {
		return errGameNotFound
	}
	g.cancel()
	<-g.loop.Done()
	return nil
}

// StopAll stops every loop.
func (s *gameStore) StopAll() {
	s.mu.Lock()
	games := s.games
	s.games = make(map[string]*liveGame)
	s.mu.Unlock()
	for _, g := range games {
		g.cancel()
		<-g.loop.Done()
	}
}

func (s *gameStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
