// internal/game/scoreboard.go
package game

import "fmt"

// ScoreEntry is the ledger cell for one (round, seat) pair. Bid and Tricks
// are nil until set; Score stays nil until the round is finalized and is
// always computed, never assigned from outside.
type ScoreEntry struct {
	Bid       *int `json:"bid"`
	Tricks    *int `json:"tricks"`
	Score     *int `json:"score"`
	PrevScore int  `json:"prevScore"`
}

// AskedAndDone renders the "bid/tricks" cell text, e.g. "3/2".
func (e *ScoreEntry) AskedAndDone() string {
	if e.Bid == nil {
		return ""
	}
	text := fmt.Sprintf("%d", *e.Bid)
	if e.Tricks != nil {
		text += fmt.Sprintf("/%d", *e.Tricks)
	}
	return text
}

// CurrScore renders the running total for the cell: the finalized score if
// the round ended, the carry from the previous round otherwise.
func (e *ScoreEntry) CurrScore() string {
	if e.Score != nil {
		return fmt.Sprintf("%d", *e.Score)
	}
	return fmt.Sprintf("%d", e.PrevScore)
}

// Scoreboard is the per-round, per-seat ledger of bids, tricks won and
// cumulative scores. Entries for every round and seat exist up front and are
// populated incrementally; they are never deleted. The scoreboard is not
// goroutine safe on its own, the engine's lock guards it.
type Scoreboard struct {
	rounds        [RoundsNumber][]*ScoreEntry
	seats         int
	exactBidBonus int

	started   bool
	currRound int
}

// NewScoreboard builds the full ledger for the given seat count.
func NewScoreboard(seats, exactBidBonus int) *Scoreboard {
	sb := &Scoreboard{seats: seats, exactBidBonus: exactBidBonus}
	for round := 0; round < RoundsNumber; round++ {
		sb.rounds[round] = make([]*ScoreEntry, seats)
		for seat := 0; seat < seats; seat++ {
			sb.rounds[round][seat] = &ScoreEntry{}
		}
	}
	return sb
}

// RoundBegins opens a round. Rounds must begin strictly in increasing
// sequence from 0; anything else is an engine bug surfaced as
// ErrInvalidRound.
func (sb *Scoreboard) RoundBegins(round int) error {
	target := 0
	if sb.started {
		target = sb.currRound + 1
	}
	if round != target {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidRound, round, target)
	}
	sb.started = true
	sb.currRound = round
	return nil
}

// SetBid stores a seat's bid for the current round and resets its trick
// count and previous-round carry.
func (sb *Scoreboard) SetBid(seat, bid int) error {
	if seat < 0 || seat >= sb.seats {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	entry := sb.rounds[sb.currRound][seat]
	b := bid
	tricks := 0
	entry.Bid = &b
	entry.Tricks = &tricks
	entry.PrevScore = 0
	if sb.currRound > 0 {
		if prev := sb.rounds[sb.currRound-1][seat].Score; prev != nil {
			entry.PrevScore = *prev
		}
	}
	return nil
}

// RecordTrickWin credits one trick to a seat in the current round.
func (sb *Scoreboard) RecordTrickWin(seat int) error {
	if seat < 0 || seat >= sb.seats {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	entry := sb.rounds[sb.currRound][seat]
	if entry.Tricks == nil {
		tricks := 0
		entry.Tricks = &tricks
	}
	*entry.Tricks++
	return nil
}

// RoundEnds finalizes the current round: every seat's score becomes the
// previous round's score plus its tricks won, plus the exact-bid bonus when
// bid and tricks match.
func (sb *Scoreboard) RoundEnds() {
	for seat := 0; seat < sb.seats; seat++ {
		entry := sb.rounds[sb.currRound][seat]
		tricks := 0
		if entry.Tricks != nil {
			tricks = *entry.Tricks
		}
		score := entry.PrevScore + tricks
		if entry.Bid != nil && *entry.Bid == tricks {
			score += sb.exactBidBonus
		}
		entry.Score = &score
	}
}

// TotalBid sums the bids placed so far in the current round.
func (sb *Scoreboard) TotalBid() int {
	total := 0
	for _, entry := range sb.rounds[sb.currRound] {
		if entry.Bid != nil {
			total += *entry.Bid
		}
	}
	return total
}

// Entry returns the ledger cell for a (round, seat) pair.
func (sb *Scoreboard) Entry(round, seat int) (*ScoreEntry, error) {
	if round < 0 || round >= RoundsNumber {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRound, round)
	}
	if seat < 0 || seat >= sb.seats {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	return sb.rounds[round][seat], nil
}

// FinalScore returns a seat's cumulative score after the last round, or the
// latest finalized carry if the game has not finished.
func (sb *Scoreboard) FinalScore(seat int) int {
	final := sb.rounds[RoundsNumber-1][seat]
	if final.Score != nil {
		return *final.Score
	}
	for round := RoundsNumber - 1; round >= 0; round-- {
		if score := sb.rounds[round][seat].Score; score != nil {
			return *score
		}
	}
	return 0
}

// Snapshot copies the ledger for external consumption: [round][seat].
func (sb *Scoreboard) Snapshot() [][]ScoreEntry {
	out := make([][]ScoreEntry, RoundsNumber)
	for round := 0; round < RoundsNumber; round++ {
		out[round] = make([]ScoreEntry, sb.seats)
		for seat := 0; seat < sb.seats; seat++ {
			out[round][seat] = *sb.rounds[round][seat]
		}
	}
	return out
}
