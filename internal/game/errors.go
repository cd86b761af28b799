// internal/game/errors.go
package game

import "errors"

// Validation failures surfaced synchronously to the caller of the mutating
// operation that triggered them. Wrap with fmt.Errorf("...: %w", ...) and
// classify with errors.Is. None of them is fatal to the process and none
// leaves the game partially mutated.
var (
	// ErrNotReady rejects Start below the minimum seat count or after the
	// game already started.
	ErrNotReady = errors.New("game is not ready to start")

	// ErrSeatRejected rejects a join: capacity exceeded, duplicate display
	// name, or the game already started for a non-reconnecting identity.
	ErrSeatRejected = errors.New("seat rejected")

	// ErrInvalidRound flags a round beginning out of sequence. Rounds must
	// advance strictly 0,1,2,... so hitting this indicates an engine bug.
	ErrInvalidRound = errors.New("invalid round")

	// ErrInvalidBid rejects a bid above the hand size, out of turn, or one
	// that would make the round's total bid exactly equal the hand size on
	// the last bidder.
	ErrInvalidBid = errors.New("invalid bid")

	// ErrInvalidPlay rejects a card not held, played out of turn, or played
	// off-suit while the led suit is still in hand.
	ErrInvalidPlay = errors.New("invalid play")

	// ErrInvalidSeat flags a seat index out of range.
	ErrInvalidSeat = errors.New("invalid seat")
)

// SpectatorError reports that an identity was admitted to watch but not to
// play. It is a soft outcome of AddPlayer, not a hard failure: the identity
// IS in the game as a spectator when this is returned.
type SpectatorError struct {
	Reason string
}

func (e *SpectatorError) Error() string {
	return "can only watch, because " + e.Reason
}
