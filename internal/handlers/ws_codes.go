// internal/handlers/ws_codes.go
package handlers

import "github.com/coder/websocket"

// Custom WebSocket close codes used by the game handlers. These give
// clients a more specific reason for closure than the standard codes.
const (
	// BadSubprotocolError closes a connection that negotiated an
	// unsupported subprotocol.
	BadSubprotocolError websocket.StatusCode = 3000

	// SeatRejectedError closes a connection whose identity the game
	// rejected entirely (not even spectating).
	SeatRejectedError websocket.StatusCode = 3003
)
