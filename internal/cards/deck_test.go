// internal/cards/deck_test.go
package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnglishDeckEnumeratesEveryCardOnce(t *testing.T) {
	d := NewEnglishDeck()
	require.Equal(t, len(Suits)*len(Ranks), d.Size())

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		assert.False(t, seen[c], "card %s appears twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestDealingSequenceVisitsEachCardExactlyOnce(t *testing.T) {
	d := NewEnglishDeck()
	seq := d.StartDealing()

	seen := make(map[Card]bool)
	for i := 0; i < d.Size(); i++ {
		c, err := seq.DrawNext()
		require.NoError(t, err)
		assert.False(t, seen[c], "card %s dealt twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, d.Size())
	assert.Equal(t, 0, seq.Remaining())

	_, err := seq.DrawNext()
	assert.ErrorIs(t, err, ErrDeckExhausted)

	// Still exhausted on repeated draws.
	_, err = seq.DrawNext()
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestStartDealingIsFreshPerSequence(t *testing.T) {
	d := NewEnglishDeck()

	// Two sequences both cover the whole deck independently.
	for i := 0; i < 2; i++ {
		seq := d.StartDealing()
		count := 0
		for {
			_, err := seq.DrawNext()
			if err != nil {
				break
			}
			count++
		}
		assert.Equal(t, d.Size(), count)
	}
}

func TestMixPreservesElements(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	Mix(items)

	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	assert.Len(t, seen, 10)
}

func TestSuitAndRankText(t *testing.T) {
	assert.Equal(t, "spades", Spades.Text())
	assert.Equal(t, "J", Jack.Text())
	assert.Equal(t, "10", Ten.Text())
	assert.Equal(t, "J of spades", Card{Suit: Spades, Rank: Jack}.String())

	suit, err := ParseSuit("hearts")
	require.NoError(t, err)
	assert.Equal(t, Hearts, suit)

	rank, err := ParseRank("A")
	require.NoError(t, err)
	assert.Equal(t, Ace, rank)

	_, err = ParseSuit("cups")
	assert.Error(t, err)
	_, err = ParseRank("15")
	assert.Error(t, err)
}

func TestRankOrdering(t *testing.T) {
	assert.True(t, Ace > King)
	assert.True(t, King > Queen)
	assert.True(t, Three > Two)
}
