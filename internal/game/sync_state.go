// internal/game/sync_state.go
package game

import (
	"github.com/bazurtas/bazas/internal/cards"
	"github.com/google/uuid"
)

// CardView is the wire shape of a card.
type CardView struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
	Text string `json:"text"`
}

func newCardView(c cards.Card) CardView {
	return CardView{Suit: c.Suit.Text(), Rank: c.Rank.Text(), Text: c.String()}
}

// SeatView is one seat from the perspective of a requesting identity. Hand
// is populated only for the viewer's own seat; everyone else sees just the
// count.
type SeatView struct {
	Seat       int        `json:"seat"`
	Name       string     `json:"name"`
	Connected  bool       `json:"connected"`
	IsCurrent  bool       `json:"isCurrent"`
	HandSize   int        `json:"handSize"`
	Hand       []CardView `json:"hand,omitempty"`
	PlayedCard *CardView  `json:"playedCard,omitempty"`
	Score      []CellView `json:"score,omitempty"`
}

// CellView is one scoreboard cell rendered for display.
type CellView struct {
	Round        int    `json:"round"`
	AskedAndDone string `json:"askedAndDone"`
	Score        string `json:"score"`
}

// GameView is the snapshot pushed to a client whenever the state-changed
// signal fires. It reveals only what the viewer is entitled to see.
type GameView struct {
	GameID      uuid.UUID  `json:"gameId"`
	State       string     `json:"state"`
	PlayersText string     `json:"playersText"`
	Round       int        `json:"round"`
	RoundCards  int        `json:"roundCards"`
	Trump       *CardView  `json:"trump,omitempty"`
	CurrentSeat int        `json:"currentSeat"`
	YourSeat    int        `json:"yourSeat"`
	Spectating  bool       `json:"spectating"`
	Seats       []SeatView `json:"seats"`
	HandWinner  string     `json:"handWinner,omitempty"`
	GameWinner  string     `json:"gameWinner,omitempty"`
}

// ViewFor builds the snapshot for one identity. A nil viewer (or one not
// seated) gets the spectator view: no hands at all.
func (g *BazasGame) ViewFor(viewer *Player) GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	view := GameView{
		GameID:      g.ID,
		State:       g.state.String(),
		PlayersText: g.playersText,
		Round:       g.currRound,
		RoundCards:  g.currRoundCards,
		CurrentSeat: -1,
		YourSeat:    -1,
		Spectating:  true,
	}
	if g.trump != nil {
		trump := newCardView(*g.trump)
		view.Trump = &trump
	}
	if g.state == StateBid || g.state == StatePlay {
		view.CurrentSeat = g.currentSeat()
	}
	if g.handWinner != nil {
		view.HandWinner = g.handWinner.Name
	}
	view.GameWinner = g.gameWinner

	// Before seats are assigned the roster itself is the view.
	if g.seats == nil {
		for i, p := range g.players {
			view.Seats = append(view.Seats, SeatView{Seat: i, Name: p.Name, Connected: p.Connected})
			if p == viewer {
				view.YourSeat = i
				view.Spectating = false
			}
		}
		return view
	}

	played := make(map[int]cards.Card)
	for pos, card := range g.trickCards {
		if card == nil {
			break
		}
		played[g.seatAt(pos)] = *card
	}

	for _, st := range g.seats {
		sv := SeatView{
			Seat:      st.column,
			Name:      st.player.Name,
			Connected: st.player.Connected,
			IsCurrent: st.column == view.CurrentSeat,
			HandSize:  len(st.cards),
		}
		if card, ok := played[st.column]; ok {
			cv := newCardView(card)
			sv.PlayedCard = &cv
		}
		if st.player == viewer {
			view.YourSeat = st.column
			view.Spectating = false
			for _, c := range st.cards {
				sv.Hand = append(sv.Hand, newCardView(c))
			}
		}
		if g.scoreboard != nil {
			for round := 0; round <= g.currRound; round++ {
				entry := g.scoreboard.rounds[round][st.column]
				sv.Score = append(sv.Score, CellView{
					Round:        round,
					AskedAndDone: entry.AskedAndDone(),
					Score:        entry.CurrScore(),
				})
			}
		}
		view.Seats = append(view.Seats, sv)
	}

	return view
}
