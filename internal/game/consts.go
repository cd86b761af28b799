// internal/game/consts.go
package game

// RoundsNumber is the total number of rounds in a game of Bazas.
const RoundsNumber = 14

// RoundCards prescribes the hand size for each round: shrinking from 7 to 1
// and growing back to 7.
var RoundCards = [RoundsNumber]int{7, 6, 5, 4, 3, 2, 1, 1, 2, 3, 4, 5, 6, 7}

// Seat capacity bounds for Bazas.
const (
	MinPlayersNumber = 2
	MaxPlayersNumber = 7
)

// Rules holds the scoring and bidding knobs of Bazas. The historic values
// are a bonus of 10 for an exact bid and a forbidden exact round total, but
// both are settable per game.
type Rules struct {
	// ExactBidBonus is added to a seat's round score when its bid equals
	// its tricks won.
	ExactBidBonus int `json:"exactBidBonus"`

	// ForbidExactTotal rejects the last bid of a round when it would make
	// the sum of all bids equal the hand size, so no round can be bid
	// perfectly by everyone.
	ForbidExactTotal bool `json:"forbidExactTotal"`

	// RandomizeSeats shuffles the seat order once at game start.
	RandomizeSeats bool `json:"randomizeSeats"`
}

// DefaultRules returns the standard Bazas rules.
func DefaultRules() Rules {
	return Rules{
		ExactBidBonus:    10,
		ForbidExactTotal: true,
		RandomizeSeats:   true,
	}
}
