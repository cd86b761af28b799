// internal/cards/deck.go
package cards

import (
	"encoding/binary"
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

// ErrDeckExhausted is returned by DealingSequence.DrawNext once every card
// of the deck has been dealt.
var ErrDeckExhausted = errors.New("dealing sequence exhausted")

// mixPasses is the number of full pairwise-swap passes applied when
// shuffling.
const mixPasses = 100

// Deck is the full set of cards for one card system, built once per game
// and immutable afterwards. Dealing happens through DealingSequence so the
// deck itself never changes order.
type Deck struct {
	cards []Card
}

// NewEnglishDeck enumerates every (suit, rank) pair of the English deck
// exactly once: 4 suits x 13 ranks = 52 cards.
func NewEnglishDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, len(Suits)*len(Ranks))}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, Card{Suit: suit, Rank: rank})
		}
	}
	return d
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}

// Cards returns a copy of the full card set.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// StartDealing shuffles a fresh permutation of the deck positions and
// returns a single-use cursor over it. Each round deals from a new sequence,
// so there is one full reshuffle per round.
func (d *Deck) StartDealing() *DealingSequence {
	order := make([]int, len(d.cards))
	for i := range order {
		order[i] = i
	}
	Mix(order)
	return &DealingSequence{deck: d, order: order}
}

// DealingSequence is a one-shot cursor over a permutation of a deck. It is
// not rewindable and never yields the same position twice.
type DealingSequence struct {
	deck  *Deck
	order []int
	next  int
}

// DrawNext returns the next card in permuted order, or ErrDeckExhausted
// once all cards have been drawn.
func (s *DealingSequence) DrawNext() (Card, error) {
	if s.next >= len(s.order) {
		return Card{}, ErrDeckExhausted
	}
	card := s.deck.cards[s.order[s.next]]
	s.next++
	return card, nil
}

// Remaining reports how many cards are left to draw.
func (s *DealingSequence) Remaining() int {
	return len(s.order) - s.next
}

// Mix shuffles a slice in place. The generator is seeded from freshly
// generated UUID bytes rather than the clock, so two games started in the
// same instant still deal differently.
func Mix[T any](items []T) {
	r := rand.New(rand.NewSource(randomSeed()))
	for pass := 0; pass < mixPasses; pass++ {
		for i := range items {
			j := r.Intn(len(items))
			items[i], items[j] = items[j], items[i]
		}
	}
}

func randomSeed() int64 {
	id := uuid.New()
	return int64(binary.LittleEndian.Uint64(id[:8]))
}
