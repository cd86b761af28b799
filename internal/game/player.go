// internal/game/player.go
package game

import "github.com/google/uuid"

// Player is one identity at the table: a display name plus a connectivity
// flag. Identities compare by pointer, never by name; two identities may end
// up sharing a name only through an explicit reconnection takeover.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Connected bool      `json:"connected"`
}

// NewPlayer creates a connected identity with a fresh id.
func NewPlayer(name string) *Player {
	return &Player{ID: uuid.New(), Name: name, Connected: true}
}

// NewPlayerWithID creates a connected identity for an id the transport has
// already issued (a session token being replayed on reconnect).
func NewPlayerWithID(id uuid.UUID, name string) *Player {
	return &Player{ID: id, Name: name, Connected: true}
}

func (p *Player) String() string {
	return p.Name
}
