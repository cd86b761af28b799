// internal/game/session_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// observerRecorder counts state-changed notifications.
type observerRecorder struct {
	count int
}

func (o *observerRecorder) fn() func() {
	return func() { o.count++ }
}

func newTestSession(minPlayers, maxPlayers int, spectators bool) (*Session, *observerRecorder) {
	s := newSession(minPlayers, maxPlayers, spectators)
	rec := &observerRecorder{}
	s.Subscribe(rec.fn())
	return s, rec
}

func TestAddPlayerSeatsUpToCapacity(t *testing.T) {
	s, rec := newTestSession(2, 3, false)

	a := NewPlayer("Ana")
	b := NewPlayer("Bruno")
	c := NewPlayer("Carla")

	require.NoError(t, s.AddPlayer(a))
	require.NoError(t, s.AddPlayer(b))
	require.NoError(t, s.AddPlayer(c))
	assert.Equal(t, 3, s.PlayersNumber())
	assert.Equal(t, "Ana, Bruno, Carla", s.PlayersListText())
	assert.Equal(t, 3, rec.count, "one notification per join")

	d := NewPlayer("Dario")
	err := s.AddPlayer(d)
	assert.ErrorIs(t, err, ErrSeatRejected)
	assert.Equal(t, 3, s.PlayersNumber())
	assert.Equal(t, 3, rec.count, "rejected join must not notify")
}

func TestAddPlayerDuplicateNameRejected(t *testing.T) {
	s, _ := newTestSession(2, 7, false)

	require.NoError(t, s.AddPlayer(NewPlayer("Ana")))
	err := s.AddPlayer(NewPlayer("Ana"))
	assert.ErrorIs(t, err, ErrSeatRejected)
	assert.Equal(t, 1, s.PlayersNumber())
}

func TestAddPlayerAlreadySeatedIsNoop(t *testing.T) {
	s, rec := newTestSession(2, 7, false)

	a := NewPlayer("Ana")
	require.NoError(t, s.AddPlayer(a))
	require.NoError(t, s.AddPlayer(a))
	assert.Equal(t, 1, s.PlayersNumber())
	assert.Equal(t, 1, rec.count, "re-adding a seated player must not notify")
}

func TestSpectatorAdmissionIsSoftFailure(t *testing.T) {
	s, _ := newTestSession(2, 2, true)

	require.NoError(t, s.AddPlayer(NewPlayer("Ana")))
	require.NoError(t, s.AddPlayer(NewPlayer("Bruno")))

	watcher := NewPlayer("Carla")
	err := s.AddPlayer(watcher)
	var specErr *SpectatorError
	require.ErrorAs(t, err, &specErr)
	assert.Contains(t, specErr.Reason, "full")
	assert.Len(t, s.Spectators(), 1)
	assert.Equal(t, 2, s.PlayersNumber())
}

func TestRemovePlayerBeforeStartFreesSeat(t *testing.T) {
	s, _ := newTestSession(2, 2, false)

	a := NewPlayer("Ana")
	b := NewPlayer("Bruno")
	require.NoError(t, s.AddPlayer(a))
	require.NoError(t, s.AddPlayer(b))

	s.RemovePlayer(a)
	assert.Equal(t, 1, s.PlayersNumber())
	assert.False(t, a.Connected)

	// The freed seat can be taken by someone else.
	require.NoError(t, s.AddPlayer(NewPlayer("Carla")))
	assert.Equal(t, 2, s.PlayersNumber())
}

func TestRemovePlayerAfterStartRetainsSeat(t *testing.T) {
	s, _ := newTestSession(2, 7, false)

	a := NewPlayer("Ana")
	b := NewPlayer("Bruno")
	require.NoError(t, s.AddPlayer(a))
	require.NoError(t, s.AddPlayer(b))
	require.NoError(t, s.Start())

	s.RemovePlayer(a)
	assert.Equal(t, 2, s.PlayersNumber(), "seat must survive a post-start leave")
	assert.False(t, a.Connected)
}

func TestReconnectionTakeoverByName(t *testing.T) {
	s, rec := newTestSession(2, 7, false)

	var replacedOld, replacedNew *Player
	s.replacedFn = func(old, replacement *Player) {
		replacedOld, replacedNew = old, replacement
	}

	a := NewPlayer("Ana")
	b := NewPlayer("Bruno")
	require.NoError(t, s.AddPlayer(a))
	require.NoError(t, s.AddPlayer(b))
	require.NoError(t, s.Start())

	s.RemovePlayer(a)
	countBefore := rec.count

	rejoined := NewPlayer("Ana")
	require.NoError(t, s.AddPlayer(rejoined))
	assert.Same(t, a, replacedOld)
	assert.Same(t, rejoined, replacedNew)
	assert.True(t, rejoined.Connected)
	assert.Equal(t, []*Player{rejoined, b}, s.Players())
	assert.Equal(t, countBefore+1, rec.count)
}

func TestLatecomerAfterStartBecomesSpectator(t *testing.T) {
	s, _ := newTestSession(2, 7, true)

	require.NoError(t, s.AddPlayer(NewPlayer("Ana")))
	require.NoError(t, s.AddPlayer(NewPlayer("Bruno")))
	require.NoError(t, s.Start())

	err := s.AddPlayer(NewPlayer("Carla"))
	var specErr *SpectatorError
	require.ErrorAs(t, err, &specErr)
	assert.Contains(t, specErr.Reason, "started")
}

func TestStartRequiresMinimumAndSingleUse(t *testing.T) {
	s, _ := newTestSession(2, 7, false)

	require.NoError(t, s.AddPlayer(NewPlayer("Ana")))
	assert.ErrorIs(t, s.Start(), ErrNotReady)

	require.NoError(t, s.AddPlayer(NewPlayer("Bruno")))
	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), ErrNotReady)
}

func TestStartInvokesGameHook(t *testing.T) {
	s, rec := newTestSession(2, 7, false)

	called := false
	s.startFn = func() error {
		called = true
		return nil
	}

	require.NoError(t, s.AddPlayer(NewPlayer("Ana")))
	require.NoError(t, s.AddPlayer(NewPlayer("Bruno")))
	countBefore := rec.count
	require.NoError(t, s.Start())
	assert.True(t, called)
	assert.Equal(t, countBefore+1, rec.count, "start notifies exactly once")
}
