// internal/cards/card.go
package cards

import "fmt"

// Suit is one of the four suits of the English deck. The numeric order is
// only used for sorting a hand for display, never for trick resolution.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit exactly once, in declaration order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

var suitText = map[Suit]string{
	Clubs:    "clubs",
	Diamonds: "diamonds",
	Hearts:   "hearts",
	Spades:   "spades",
}

// Text returns the lowercase display name of the suit.
func (s Suit) Text() string {
	return suitText[s]
}

func (s Suit) String() string {
	return s.Text()
}

// ParseSuit resolves a display name back to a Suit.
func ParseSuit(text string) (Suit, error) {
	for suit, name := range suitText {
		if name == text {
			return suit, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", text)
}

// Rank is a card rank of the English deck, ordered from Two (lowest) to
// Ace (highest). A higher Rank beats a lower one within the same suit.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank exactly once, lowest first.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankText = map[Rank]string{
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// Text returns the short display text of the rank ("2".."10", "J", "Q", "K", "A").
func (r Rank) Text() string {
	return rankText[r]
}

func (r Rank) String() string {
	return r.Text()
}

// ParseRank resolves display text back to a Rank.
func ParseRank(text string) (Rank, error) {
	for rank, name := range rankText {
		if name == text {
			return rank, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", text)
}

// Card is an immutable (suit, rank) pair. Cards compare by value and carry
// no game state of their own.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank.Text(), c.Suit.Text())
}

// SortValue orders cards by suit first, then rank, for hand display.
func (c Card) SortValue() int {
	return 1000*int(c.Suit) + int(c.Rank)
}
