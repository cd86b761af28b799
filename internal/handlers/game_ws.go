// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazurtas/bazas/internal/cache"
	"github.com/bazurtas/bazas/internal/cards"
	"github.com/bazurtas/bazas/internal/game"
)

// GameMessage is the shape of incoming WebSocket messages during a game.
type GameMessage struct {
	Type string `json:"type"`

	// Bid carries the amount for "bid" messages.
	Bid *int `json:"bid,omitempty"`

	// Card identifies the card for "play" messages by display text.
	Card *CardMessage `json:"card,omitempty"`
}

// CardMessage references a card by its suit and rank display text.
type CardMessage struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// GameWSHandler upgrades the HTTP connection to WebSocket for one game. It
// resolves the caller's session, seats them (or admits them as spectator),
// registers the connection for state pushes, and runs the read loop routing
// actions into the engine.
func GameWSHandler(logger *logrus.Logger, s *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameIDStr := strings.TrimPrefix(r.URL.Path, "/game/ws/")
		gameIDStr = strings.SplitN(gameIDStr, "/", 2)[0]
		gameID, err := uuid.Parse(gameIDStr)
		if err != nil {
			http.Error(w, "Invalid game_id format", http.StatusBadRequest)
			return
		}

		g, ok := s.Store.Get(gameID)
		if !ok {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		gc := s.connsFor(gameID)
		if gc == nil {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}

		// Resolve the session before the upgrade so a fresh token cookie
		// can still ride the handshake response.
		playerID, name, err := EnsureSession(w, r)
		if err != nil {
			logger.Warnf("Session resolution failed for game %s: %v", gameID, err)
			http.Error(w, "Authentication failed", http.StatusForbidden)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"game"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for game %s: %v", gameID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "game" {
			logger.Warnf("Client for game %s connected with invalid subprotocol: %s", gameID, c.Subprotocol())
			c.Close(BadSubprotocolError, "Client must use the 'game' subprotocol.")
			return
		}
		logger.Infof("WebSocket connection established for game %s from %s", gameID, r.RemoteAddr)

		p := game.NewPlayerWithID(playerID, name)
		joinErr := g.AddPlayer(p)
		var spectator *game.SpectatorError
		switch {
		case joinErr == nil:
			logger.Infof("Player %s seated in game %s", p.Name, gameID)
		case errors.As(joinErr, &spectator):
			logger.Infof("Player %s watching game %s: %s", p.Name, gameID, spectator.Reason)
			sendWsInfo(r.Context(), c, joinErr.Error())
		default:
			logger.Warnf("Player %s rejected from game %s: %v", p.Name, gameID, joinErr)
			c.Close(SeatRejectedError, joinErr.Error())
			return
		}

		gc.add(p, c)
		s.publishAction(g, p, "player_join", nil)
		s.sendStateTo(r.Context(), g, p, c)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		readGameMessages(ctx, c, s, g, p, logger)

		logger.Infof("Player %s WebSocket read loop exited for game %s.", p.Name, gameID)
		gc.remove(p)
		g.RemovePlayer(p)
		s.publishAction(g, p, "player_leave", nil)
	}
}

// readGameMessages reads client messages until the connection drops,
// validates each against the session, and routes it into the engine. Engine
// rejections go back to the sender only; accepted actions reach every
// client through the state-changed push.
func readGameMessages(ctx context.Context, c *websocket.Conn, s *GameServer, g *game.BazasGame, p *game.Player, logger *logrus.Logger) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("WebSocket closed normally for %s in game %s.", p.Name, g.ID)
			} else if strings.Contains(err.Error(), "context canceled") {
				logger.Infof("WebSocket context canceled for %s in game %s.", p.Name, g.ID)
			} else {
				logger.Warnf("Error reading from WebSocket for %s in game %s: %v", p.Name, g.ID, err)
			}
			return
		}
		if msgType != websocket.MessageText {
			logger.Warnf("Received non-text message from %s in game %s. Ignoring.", p.Name, g.ID)
			continue
		}

		var msg GameMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON from %s in game %s: %v", p.Name, g.ID, err)
			sendWsError(ctx, c, "Invalid JSON format.")
			continue
		}

		logger.Debugf("Received action %q from %s in game %s.", msg.Type, p.Name, g.ID)

		switch msg.Type {
		case "start":
			if err := g.Start(); err != nil {
				sendWsError(ctx, c, err.Error())
				continue
			}
			s.publishAction(g, p, "game_start", nil)

		case "bid":
			if msg.Bid == nil {
				sendWsError(ctx, c, "Missing bid amount.")
				continue
			}
			seat := g.SeatOf(p)
			if err := g.PlaceBid(seat, *msg.Bid); err != nil {
				sendWsError(ctx, c, err.Error())
				continue
			}
			s.publishAction(g, p, "place_bid", map[string]interface{}{"bid": *msg.Bid})

		case "play":
			if msg.Card == nil {
				sendWsError(ctx, c, "Missing card.")
				continue
			}
			card, err := parseCardMessage(msg.Card)
			if err != nil {
				sendWsError(ctx, c, err.Error())
				continue
			}
			seat := g.SeatOf(p)
			if err := g.PlayCard(seat, card); err != nil {
				sendWsError(ctx, c, err.Error())
				continue
			}
			s.publishAction(g, p, "play_card", map[string]interface{}{"card": card.String()})

		case "continue":
			if err := g.Continue(); err != nil {
				sendWsError(ctx, c, err.Error())
				continue
			}
			s.publishAction(g, p, "continue", nil)

		default:
			logger.Warnf("Unknown action %q from %s in game %s.", msg.Type, p.Name, g.ID)
			sendWsError(ctx, c, "Unknown action type.")
		}
	}
}

func parseCardMessage(m *CardMessage) (cards.Card, error) {
	suit, err := cards.ParseSuit(m.Suit)
	if err != nil {
		return cards.Card{}, err
	}
	rank, err := cards.ParseRank(m.Rank)
	if err != nil {
		return cards.Card{}, err
	}
	return cards.Card{Suit: suit, Rank: rank}, nil
}

// publishAction pushes an action record to the historian queue, best
// effort.
func (s *GameServer) publishAction(g *game.BazasGame, p *game.Player, action string, payload map[string]interface{}) {
	record := cache.GameActionRecord{
		GameID:        g.ID,
		Seat:          g.SeatOf(p),
		PlayerName:    p.Name,
		ActionType:    action,
		ActionPayload: payload,
		Timestamp:     time.Now().Unix(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.PublishGameAction(ctx, record); err != nil {
		s.Logger.Warnf("Failed to publish action %q for game %s: %v", action, g.ID, err)
	}
}

func sendWsError(ctx context.Context, c *websocket.Conn, message string) {
	writeWsMessage(ctx, c, map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}

func sendWsInfo(ctx context.Context, c *websocket.Conn, message string) {
	writeWsMessage(ctx, c, map[string]interface{}{
		"type":    "info",
		"message": message,
	})
}

func writeWsMessage(ctx context.Context, c *websocket.Conn, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_ = c.Write(writeCtx, websocket.MessageText, data)
}
