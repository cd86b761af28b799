// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"
)

// CreateGameHandler creates a new in-memory game and returns its id.
func (s *GameServer) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	g := s.CreateGame()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"game_id": g.ID,
	})
}

// ListGamesHandler lists the live games with their phase and roster.
func (s *GameServer) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	type gameInfo struct {
		GameID  string `json:"game_id"`
		State   string `json:"state"`
		Players string `json:"players"`
		Seats   int    `json:"seats"`
	}

	var out []gameInfo
	for _, g := range s.Store.List() {
		out = append(out, gameInfo{
			GameID:  g.ID.String(),
			State:   g.State().String(),
			Players: g.PlayersListText(),
			Seats:   g.PlayersNumber(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"games": out,
	})
}
