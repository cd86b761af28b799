// internal/game/session.go
package game

import (
	"fmt"
	"strings"
	"sync"
)

// Session is the seat and spectator registry every card game builds on. It
// owns the roster under a single mutex, rejects or admits identities against
// the capacity the concrete game configured, and raises a generic
// state-changed signal after each mutation. The concrete game plugs in
// behavior through the hook fields, the way subclass overrides would.
type Session struct {
	mu sync.Mutex

	players    []*Player
	spectators []*Player

	playersText string
	started     bool

	minPlayers      int
	maxPlayers      int
	allowSpectators bool

	observers []func()

	// startFn runs the concrete game's start logic. Called by Start with
	// the roster lock held and the roster already frozen.
	startFn func() error

	// replacedFn tells the concrete game a seated identity was swapped in
	// place by a reconnection takeover.
	replacedFn func(old, replacement *Player)
}

func newSession(minPlayers, maxPlayers int, allowSpectators bool) *Session {
	return &Session{
		minPlayers:      minPlayers,
		maxPlayers:      maxPlayers,
		allowSpectators: allowSpectators,
	}
}

// Subscribe registers a state-changed observer. Observers are invoked
// synchronously, without the roster lock, exactly once per mutating call;
// they carry no payload and re-read whatever accessors they care about.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// notify fires the state-changed signal. Callers must NOT hold the lock:
// observers typically re-enter the read accessors.
func (s *Session) notify() {
	s.mu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// AddPlayer seats an identity, reclaims a disconnected seat by display name
// after the game started, or falls back to spectating. A *SpectatorError
// return is a soft outcome: the identity is watching, not playing. Any other
// non-nil error means the identity was not admitted at all.
func (s *Session) AddPlayer(p *Player) error {
	s.mu.Lock()

	// Already seated and live: nothing to do.
	for _, seated := range s.players {
		if seated == p && seated.Connected {
			s.mu.Unlock()
			return nil
		}
	}

	if s.started {
		// Reconnection takeover: a vacated seat whose occupant's name
		// matches is reclaimed in place, score history intact.
		for i, seated := range s.players {
			if !seated.Connected && seated.Name == p.Name {
				old := seated
				p.Connected = true
				s.players[i] = p
				if s.replacedFn != nil {
					s.replacedFn(old, p)
				}
				s.refreshPlayersText()
				s.mu.Unlock()
				s.notify()
				return nil
			}
		}
		return s.admitSpectator(p, "the game already started")
	}

	for _, seated := range s.players {
		if seated.Name == p.Name {
			return s.admitSpectator(p, fmt.Sprintf("the name %q is already taken", p.Name))
		}
	}
	if len(s.players) >= s.maxPlayers {
		return s.admitSpectator(p, "the table is full")
	}

	p.Connected = true
	s.players = append(s.players, p)
	s.refreshPlayersText()
	s.mu.Unlock()
	s.notify()
	return nil
}

// admitSpectator is the fallback when an identity cannot take a seat.
// Expects the lock held; releases it.
func (s *Session) admitSpectator(p *Player, reason string) error {
	if !s.allowSpectators {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSeatRejected, reason)
	}
	for _, watcher := range s.spectators {
		if watcher == p {
			s.mu.Unlock()
			return &SpectatorError{Reason: reason}
		}
	}
	s.spectators = append(s.spectators, p)
	s.mu.Unlock()
	s.notify()
	return &SpectatorError{Reason: reason}
}

// RemovePlayer marks a seated identity disconnected. Before the game starts
// the seat is freed entirely; afterwards it is kept so the score history
// survives and a matching name can later reclaim it. Spectators are simply
// dropped. Removing an unknown identity is a no-op.
func (s *Session) RemovePlayer(p *Player) {
	s.mu.Lock()

	for i, seated := range s.players {
		if seated == p {
			seated.Connected = false
			if !s.started {
				s.players = append(s.players[:i], s.players[i+1:]...)
			}
			s.refreshPlayersText()
			s.mu.Unlock()
			s.notify()
			return
		}
	}

	for i, watcher := range s.spectators {
		if watcher == p {
			s.spectators = append(s.spectators[:i], s.spectators[i+1:]...)
			s.mu.Unlock()
			s.notify()
			return
		}
	}

	s.mu.Unlock()
}

// Start freezes the roster and hands control to the concrete game. It fails
// with ErrNotReady when called twice or below the minimum seat count.
func (s *Session) Start() error {
	s.mu.Lock()

	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("%w: already started", ErrNotReady)
	}
	if len(s.players) < s.minPlayers {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d of %d players", ErrNotReady, len(s.players), s.minPlayers)
	}

	s.started = true
	var err error
	if s.startFn != nil {
		err = s.startFn()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// refreshPlayersText recomputes the joined-name roster listing. Lock held.
func (s *Session) refreshPlayersText() {
	names := make([]string, len(s.players))
	for i, p := range s.players {
		names[i] = p.Name
	}
	s.playersText = strings.Join(names, ", ")
}

// Players returns a snapshot of the seated identities in seat order.
func (s *Session) Players() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Player, len(s.players))
	copy(out, s.players)
	return out
}

// Spectators returns a snapshot of the watching identities.
func (s *Session) Spectators() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Player, len(s.spectators))
	copy(out, s.spectators)
	return out
}

// PlayersNumber returns the seated player count.
func (s *Session) PlayersNumber() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// PlayersListText returns the human-readable joined-name roster.
func (s *Session) PlayersListText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playersText
}

// Started reports whether Start has completed.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
