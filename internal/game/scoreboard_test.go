// internal/game/scoreboard_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundBeginsEnforcesStrictOrder(t *testing.T) {
	sb := NewScoreboard(3, 10)

	assert.ErrorIs(t, sb.RoundBegins(1), ErrInvalidRound, "first round must be 0")
	require.NoError(t, sb.RoundBegins(0))
	assert.ErrorIs(t, sb.RoundBegins(0), ErrInvalidRound, "rounds must never repeat")
	assert.ErrorIs(t, sb.RoundBegins(2), ErrInvalidRound, "rounds must not skip")
	require.NoError(t, sb.RoundBegins(1))
}

func TestSetBidValidatesSeat(t *testing.T) {
	sb := NewScoreboard(2, 10)
	require.NoError(t, sb.RoundBegins(0))

	assert.ErrorIs(t, sb.SetBid(-1, 0), ErrInvalidSeat)
	assert.ErrorIs(t, sb.SetBid(2, 0), ErrInvalidSeat)
	assert.ErrorIs(t, sb.RecordTrickWin(5), ErrInvalidSeat)
	require.NoError(t, sb.SetBid(0, 3))
}

func TestExactBidBonusApplied(t *testing.T) {
	sb := NewScoreboard(2, 10)
	require.NoError(t, sb.RoundBegins(0))

	// Seat 0 bids 3 and wins exactly 3; seat 1 bids 3 and wins 2.
	require.NoError(t, sb.SetBid(0, 3))
	require.NoError(t, sb.SetBid(1, 3))
	for i := 0; i < 3; i++ {
		require.NoError(t, sb.RecordTrickWin(0))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, sb.RecordTrickWin(1))
	}
	sb.RoundEnds()

	entry0, err := sb.Entry(0, 0)
	require.NoError(t, err)
	require.NotNil(t, entry0.Score)
	assert.Equal(t, 3+10, *entry0.Score)
	assert.Equal(t, "3/3", entry0.AskedAndDone())

	entry1, err := sb.Entry(0, 1)
	require.NoError(t, err)
	require.NotNil(t, entry1.Score)
	assert.Equal(t, 2, *entry1.Score)
}

func TestScoreCarriesAcrossRounds(t *testing.T) {
	sb := NewScoreboard(2, 10)

	require.NoError(t, sb.RoundBegins(0))
	require.NoError(t, sb.SetBid(0, 1))
	require.NoError(t, sb.SetBid(1, 1))
	require.NoError(t, sb.RecordTrickWin(0))
	sb.RoundEnds()

	require.NoError(t, sb.RoundBegins(1))
	require.NoError(t, sb.SetBid(0, 0))
	require.NoError(t, sb.SetBid(1, 2))

	entry0, err := sb.Entry(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 11, entry0.PrevScore, "previous round total must carry over")

	require.NoError(t, sb.RecordTrickWin(1))
	require.NoError(t, sb.RecordTrickWin(1))
	sb.RoundEnds()

	entry0, err = sb.Entry(1, 0)
	require.NoError(t, err)
	require.NotNil(t, entry0.Score)
	assert.Equal(t, 11+0+10, *entry0.Score, "bid 0 done 0 earns the bonus")

	entry1, err := sb.Entry(1, 1)
	require.NoError(t, err)
	require.NotNil(t, entry1.Score)
	assert.Equal(t, 0+2+10, *entry1.Score)
	assert.Equal(t, 12, sb.FinalScore(1))
}

func TestTotalBidSumsCurrentRound(t *testing.T) {
	sb := NewScoreboard(3, 10)
	require.NoError(t, sb.RoundBegins(0))

	assert.Equal(t, 0, sb.TotalBid())
	require.NoError(t, sb.SetBid(0, 2))
	require.NoError(t, sb.SetBid(1, 3))
	assert.Equal(t, 5, sb.TotalBid(), "unset bids count as zero")
}

func TestConfigurableBonusValue(t *testing.T) {
	sb := NewScoreboard(1, 25)
	require.NoError(t, sb.RoundBegins(0))
	require.NoError(t, sb.SetBid(0, 0))
	sb.RoundEnds()

	entry, err := sb.Entry(0, 0)
	require.NoError(t, err)
	require.NotNil(t, entry.Score)
	assert.Equal(t, 25, *entry.Score)
}

func TestCurrScoreFallsBackToCarry(t *testing.T) {
	sb := NewScoreboard(1, 10)
	require.NoError(t, sb.RoundBegins(0))
	require.NoError(t, sb.SetBid(0, 1))
	require.NoError(t, sb.RecordTrickWin(0))
	sb.RoundEnds()

	require.NoError(t, sb.RoundBegins(1))
	require.NoError(t, sb.SetBid(0, 0))

	entry, err := sb.Entry(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "11", entry.CurrScore(), "unfinished round shows the carry")
}
