// internal/game/game_store.go
package game

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps the in-memory games by id. Games live only as long as the
// process; there is no persistence behind it.
type Store struct {
	mu    sync.Mutex
	games map[uuid.UUID]*BazasGame
}

func NewStore() *Store {
	return &Store{games: make(map[uuid.UUID]*BazasGame)}
}

func (s *Store) Add(g *BazasGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *Store) Get(id uuid.UUID) (*BazasGame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	return g, ok
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// List returns every live game.
func (s *Store) List() []*BazasGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*BazasGame, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	return out
}
