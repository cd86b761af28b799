// internal/handlers/game_server.go
package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazurtas/bazas/internal/game"
)

// GameServer holds the in-memory game store and the live WebSocket
// connections per game. It subscribes each game's state-changed signal so
// every successful engine call pushes a fresh per-player snapshot to all
// connected clients.
type GameServer struct {
	Store  *game.Store
	Logger *logrus.Logger

	mu    sync.Mutex
	conns map[uuid.UUID]*gameConns
}

// gameConns tracks the live connections of one game, keyed by the identity
// that opened them. Spectators are included; each viewer only ever receives
// their own view.
type gameConns struct {
	mu    sync.Mutex
	conns map[*game.Player]*websocket.Conn
}

func NewGameServer(logger *logrus.Logger) *GameServer {
	return &GameServer{
		Store:  game.NewStore(),
		Logger: logger,
		conns:  make(map[uuid.UUID]*gameConns),
	}
}

// CreateGame builds a new game, stores it and wires its state-changed
// signal to the snapshot broadcast.
func (s *GameServer) CreateGame() *game.BazasGame {
	g := game.NewBazasGame()
	s.Store.Add(g)

	gc := &gameConns{conns: make(map[*game.Player]*websocket.Conn)}
	s.mu.Lock()
	s.conns[g.ID] = gc
	s.mu.Unlock()

	g.Subscribe(func() {
		s.broadcastState(g, gc)
	})

	s.Logger.WithField("game_id", g.ID).Info("Game created")
	return g
}

func (s *GameServer) connsFor(gameID uuid.UUID) *gameConns {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns[gameID]
}

func (gc *gameConns) add(p *game.Player, c *websocket.Conn) {
	gc.mu.Lock()
	gc.conns[p] = c
	gc.mu.Unlock()
}

func (gc *gameConns) remove(p *game.Player) {
	gc.mu.Lock()
	delete(gc.conns, p)
	gc.mu.Unlock()
}

// broadcastState runs as the game's state-changed observer. The engine does
// not hold its lock while notifying, so reading the per-player views here
// is safe. Writes go out asynchronously; the engine never waits for a
// client.
func (s *GameServer) broadcastState(g *game.BazasGame, gc *gameConns) {
	gc.mu.Lock()
	targets := make(map[*game.Player]*websocket.Conn, len(gc.conns))
	for p, c := range gc.conns {
		targets[p] = c
	}
	gc.mu.Unlock()

	for p, c := range targets {
		view := g.ViewFor(p)
		data, err := json.Marshal(map[string]interface{}{
			"type":  "game_state",
			"state": view,
		})
		if err != nil {
			s.Logger.Errorf("Failed to marshal state for game %s: %v", g.ID, err)
			return
		}
		go func(conn *websocket.Conn, payload []byte, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
				s.Logger.Warnf("Failed to push state to %s in game %s: %v", name, g.ID, err)
			}
		}(c, data, p.Name)
	}
}

// sendStateTo pushes the current snapshot to a single freshly connected
// viewer.
func (s *GameServer) sendStateTo(ctx context.Context, g *game.BazasGame, p *game.Player, c *websocket.Conn) {
	view := g.ViewFor(p)
	data, err := json.Marshal(map[string]interface{}{
		"type":  "game_state",
		"state": view,
	})
	if err != nil {
		s.Logger.Errorf("Failed to marshal state for game %s: %v", g.ID, err)
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Write(writeCtx, websocket.MessageText, data); err != nil {
		s.Logger.Warnf("Failed to send state to %s in game %s: %v", p.Name, g.ID, err)
	}
}
