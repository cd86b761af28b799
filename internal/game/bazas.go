// internal/game/bazas.go
package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bazurtas/bazas/internal/cards"
	"github.com/google/uuid"
)

// State is the engine's coarse phase. Build is entered at construction;
// GameFinished is terminal.
type State int

const (
	StateBuild State = iota
	StateBid
	StatePlay
	StateHandFinished
	StateGameFinished
)

var stateText = map[State]string{
	StateBuild:        "build",
	StateBid:          "bid",
	StatePlay:         "play",
	StateHandFinished: "hand_finished",
	StateGameFinished: "game_finished",
}

func (s State) String() string {
	return stateText[s]
}

// seatStatus is one playing position: its stable 0-based column, the
// identity currently occupying it, and its cards for the running round.
// Columns never change mid-game; only the occupant can be swapped by a
// reconnection takeover.
type seatStatus struct {
	column int
	player *Player
	cards  []cards.Card
}

func (st *seatStatus) holds(c cards.Card) bool {
	for _, held := range st.cards {
		if held == c {
			return true
		}
	}
	return false
}

func (st *seatStatus) hasSuit(suit cards.Suit) bool {
	for _, held := range st.cards {
		if held.Suit == suit {
			return true
		}
	}
	return false
}

func (st *seatStatus) remove(c cards.Card) {
	for i, held := range st.cards {
		if held == c {
			st.cards = append(st.cards[:i], st.cards[i+1:]...)
			return
		}
	}
}

// Play is one card laid on the table during a trick.
type Play struct {
	Seat int        `json:"seat"`
	Card cards.Card `json:"card"`
}

// BazasGame is the full engine for a game of Bazas: 14 rounds of
// shrinking-then-growing hands, one bid per seat per round, tricks resolved
// under a trump suit, and a bonus for hitting the bid exactly. All gameplay
// runs under the session's lock; every successful mutating call emits one
// state-changed notification no matter how many internal steps it advanced.
type BazasGame struct {
	*Session

	ID    uuid.UUID
	Rules Rules

	deck *cards.Deck

	state      State
	scoreboard *Scoreboard
	seats      []*seatStatus

	currRound      int
	currRoundCards int
	leftHands      int
	currFirstSeat  int
	trickFirstSeat int
	turnIndex      int
	trickCards     []*cards.Card
	trump          *cards.Card
	handWinner     *Player
	gameWinner     string
}

// NewBazasGame builds an empty game in the Build state with default rules
// and a fresh English deck.
func NewBazasGame() *BazasGame {
	g := &BazasGame{
		ID:    uuid.New(),
		Rules: DefaultRules(),
		deck:  cards.NewEnglishDeck(),
		state: StateBuild,
	}
	g.Session = newSession(MinPlayersNumber, MaxPlayersNumber, true)
	g.Session.startFn = g.startGame
	g.Session.replacedFn = g.replaceSeatOccupant
	return g
}

// startGame assigns seats from the frozen roster and deals round 0. Runs
// with the session lock held, as the Start hook.
func (g *BazasGame) startGame() error {
	if g.Rules.RandomizeSeats {
		cards.Mix(g.players)
		g.refreshPlayersText()
	}

	g.seats = make([]*seatStatus, len(g.players))
	for i, p := range g.players {
		g.seats[i] = &seatStatus{column: i, player: p}
	}
	g.scoreboard = NewScoreboard(len(g.seats), g.Rules.ExactBidBonus)
	g.trickCards = make([]*cards.Card, len(g.seats))

	return g.nextStep()
}

// replaceSeatOccupant is the reconnection hook: the seat keeps its column
// and score history, only the identity changes. Session lock held.
func (g *BazasGame) replaceSeatOccupant(old, replacement *Player) {
	for _, st := range g.seats {
		if st.player == old {
			st.player = replacement
			return
		}
	}
}

// PlaceBid records the current seat's bid for the running round. The bid
// must not exceed the hand size, and the last bidder may not bring the
// round's total bid to exactly the hand size.
func (g *BazasGame) PlaceBid(seat, bid int) error {
	g.mu.Lock()
	err := g.placeBid(seat, bid)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.notify()
	return nil
}

func (g *BazasGame) placeBid(seat, bid int) error {
	if g.state != StateBid {
		return fmt.Errorf("%w: bidding is closed", ErrInvalidBid)
	}
	if seat != g.currentSeat() {
		return fmt.Errorf("%w: seat %d is not up", ErrInvalidBid, seat)
	}
	if bid < 0 || bid > g.currRoundCards {
		return fmt.Errorf("%w: cannot ask for %d with %d cards", ErrInvalidBid, bid, g.currRoundCards)
	}
	if g.Rules.ForbidExactTotal && g.isLastBidder() && g.scoreboard.TotalBid()+bid == g.currRoundCards {
		return fmt.Errorf("%w: cannot ask for %d, the round would be bid exactly", ErrInvalidBid, bid)
	}
	if err := g.scoreboard.SetBid(seat, bid); err != nil {
		return err
	}
	return g.nextStep()
}

// PlayCard lays the current seat's card on the trick. Following the led
// suit is mandatory whenever the hand allows it.
func (g *BazasGame) PlayCard(seat int, card cards.Card) error {
	g.mu.Lock()
	err := g.playCard(seat, card)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.notify()
	return nil
}

func (g *BazasGame) playCard(seat int, card cards.Card) error {
	if g.state != StatePlay {
		return fmt.Errorf("%w: no trick in progress", ErrInvalidPlay)
	}
	if seat != g.currentSeat() {
		return fmt.Errorf("%w: seat %d is not up", ErrInvalidPlay, seat)
	}
	st := g.seats[seat]
	if !st.holds(card) {
		return fmt.Errorf("%w: %s is not in hand", ErrInvalidPlay, card)
	}
	if g.turnIndex > 0 {
		led := g.trickCards[0].Suit
		if card.Suit != led && st.hasSuit(led) {
			return fmt.Errorf("%w: must follow %s", ErrInvalidPlay, led)
		}
	}

	played := card
	g.trickCards[g.turnIndex] = &played
	st.remove(card)
	return g.nextStep()
}

// Continue acknowledges a finished trick and moves on: next trick, next
// round, or game end. Called in any other state it is a silent no-op.
func (g *BazasGame) Continue() error {
	g.mu.Lock()
	if g.state != StateHandFinished {
		g.mu.Unlock()
		return nil
	}
	err := g.nextStep()
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.notify()
	return nil
}

// nextStep advances the state machine one transition. Lock held. A single
// external call may run through several of these before notifying.
func (g *BazasGame) nextStep() error {
	switch g.state {
	case StateBuild:
		return g.startRound(0)

	case StateBid:
		if !g.nextSeat() {
			g.state = StatePlay
		}

	case StatePlay:
		if !g.nextSeat() {
			return g.finishHand()
		}

	case StateHandFinished:
		if g.leftHands > 0 {
			g.initHand()
			g.state = StatePlay
			break
		}
		if g.currRound < RoundsNumber-1 {
			return g.startRound(g.currRound + 1)
		}
		g.calcGameWinner()
		g.state = StateGameFinished
	}
	return nil
}

// isLastBidder reports whether the acting seat is the last one in the bid
// rotation. Lock held.
func (g *BazasGame) isLastBidder() bool {
	return g.turnIndex == len(g.seats)-1
}

// nextSeat rotates to the next seat; false means the rotation wrapped back
// to the lead seat.
func (g *BazasGame) nextSeat() bool {
	if g.turnIndex+1 < len(g.seats) {
		g.turnIndex++
		return true
	}
	g.turnIndex = 0
	return false
}

// startRound deals a fresh hand to every seat, draws the trump and opens
// bidding. The deal lead rotates with the round index.
func (g *BazasGame) startRound(round int) error {
	g.currRound = round
	g.currFirstSeat = round % len(g.seats)
	g.currRoundCards = RoundCards[round]
	g.leftHands = g.currRoundCards
	g.initHand()

	if err := g.dealCards(); err != nil {
		return err
	}
	g.state = StateBid
	return g.scoreboard.RoundBegins(round)
}

// dealCards draws this round's hands from one fresh dealing sequence,
// starting at the lead seat, then one further card as the trump.
func (g *BazasGame) dealCards() error {
	seq := g.deck.StartDealing()

	for i := range g.seats {
		st := g.seats[(g.currFirstSeat+i)%len(g.seats)]
		st.cards = st.cards[:0]
		for k := 0; k < g.currRoundCards; k++ {
			card, err := seq.DrawNext()
			if err != nil {
				return err
			}
			st.cards = append(st.cards, card)
		}
	}

	trump, err := seq.DrawNext()
	if err != nil {
		return err
	}
	g.trump = &trump
	return nil
}

// initHand clears the trick slots and points the turn at the lead seat. The
// lead is frozen per trick, so the completed trick keeps its seat mapping
// even after the winner becomes the next lead.
func (g *BazasGame) initHand() {
	for i := range g.trickCards {
		g.trickCards[i] = nil
	}
	g.trickFirstSeat = g.currFirstSeat
	g.turnIndex = 0
}

// finishHand resolves the completed trick, credits the winner and, when the
// round's tricks are exhausted, finalizes the round's scores.
func (g *BazasGame) finishHand() error {
	g.leftHands--

	winnerSeat := g.seatAt(g.winningPosition())
	g.handWinner = g.seats[winnerSeat].player
	g.currFirstSeat = winnerSeat

	if err := g.scoreboard.RecordTrickWin(winnerSeat); err != nil {
		return err
	}
	if g.leftHands == 0 {
		g.scoreboard.RoundEnds()
	}

	g.state = StateHandFinished
	return nil
}

// winningPosition scans the trick in play order. The first card opens as
// best; a later card takes over if it trumps a non-trump, or outranks the
// best within its own suit.
func (g *BazasGame) winningPosition() int {
	best := 0
	for pos := 1; pos < len(g.trickCards); pos++ {
		if g.beats(*g.trickCards[best], *g.trickCards[pos]) {
			best = pos
		}
	}
	return best
}

func (g *BazasGame) beats(best, challenger cards.Card) bool {
	if challenger.Suit == g.trump.Suit && best.Suit != g.trump.Suit {
		return true
	}
	return challenger.Suit == best.Suit && challenger.Rank > best.Rank
}

// calcGameWinner joins the names of every seat tying the maximum final
// score.
func (g *BazasGame) calcGameWinner() {
	maxScore := 0
	for seat := range g.seats {
		if score := g.scoreboard.FinalScore(seat); score > maxScore {
			maxScore = score
		}
	}

	var winners []string
	for seat, st := range g.seats {
		if g.scoreboard.FinalScore(seat) == maxScore {
			winners = append(winners, st.player.Name)
		}
	}
	g.gameWinner = strings.Join(winners, ", ")
}

// seatAt maps a rotation position to its seat column, counted from the
// trick's frozen lead.
func (g *BazasGame) seatAt(pos int) int {
	return (g.trickFirstSeat + pos) % len(g.seats)
}

// currentSeat is the seat column whose turn it is. Lock held; meaningful
// only while bidding or playing.
func (g *BazasGame) currentSeat() int {
	return g.seatAt(g.turnIndex)
}

// State returns the engine's current phase.
func (g *BazasGame) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// CurrentSeat returns the seat expected to act, or -1 outside bidding and
// play.
func (g *BazasGame) CurrentSeat() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateBid && g.state != StatePlay {
		return -1
	}
	return g.currentSeat()
}

// CurrentPlayer returns the identity expected to act, or nil outside
// bidding and play.
func (g *BazasGame) CurrentPlayer() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateBid && g.state != StatePlay {
		return nil
	}
	return g.seats[g.currentSeat()].player
}

// Round returns the running round index, 0-based.
func (g *BazasGame) Round() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currRound
}

// RoundCardsNumber returns the hand size of the running round.
func (g *BazasGame) RoundCardsNumber() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currRoundCards
}

// Trump returns a copy of the round's trump card, or nil before the first
// deal.
func (g *BazasGame) Trump() *cards.Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.trump == nil {
		return nil
	}
	trump := *g.trump
	return &trump
}

// Hand returns a seat's current cards sorted by suit then rank. Only the
// seat's owner should be shown this; enforcing that is the transport's job.
func (g *BazasGame) Hand(seat int) ([]cards.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seat < 0 || seat >= len(g.seats) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	hand := make([]cards.Card, len(g.seats[seat].cards))
	copy(hand, g.seats[seat].cards)
	sort.Slice(hand, func(i, j int) bool {
		return hand[i].SortValue() < hand[j].SortValue()
	})
	return hand, nil
}

// SeatOf returns the seat column an identity occupies, or -1.
func (g *BazasGame) SeatOf(p *Player) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, st := range g.seats {
		if st.player == p {
			return st.column
		}
	}
	return -1
}

// Plays returns the current trick's cards in play order.
func (g *BazasGame) Plays() []Play {
	g.mu.Lock()
	defer g.mu.Unlock()
	var plays []Play
	for pos, card := range g.trickCards {
		if card == nil {
			break
		}
		plays = append(plays, Play{Seat: g.seatAt(pos), Card: *card})
	}
	return plays
}

// HandWinner returns the winner of the last resolved trick.
func (g *BazasGame) HandWinner() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.handWinner
}

// GameWinner returns the winning name(s) once the game finished, tied
// winners joined with ", ".
func (g *BazasGame) GameWinner() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gameWinner
}

// Score returns the scoreboard ledger, [round][seat]. Nil before start.
func (g *BazasGame) Score() [][]ScoreEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.scoreboard == nil {
		return nil
	}
	return g.scoreboard.Snapshot()
}
