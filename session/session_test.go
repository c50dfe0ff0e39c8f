package session

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justinjudd/scoreboard/models"
	stormstore "github.com/justinjudd/scoreboard/models/storm"
	"github.com/justinjudd/scoreboard/scoring"
)

const (
	p1 = models.Player_1
	p2 = models.Player_2
)

var (
	players  = models.Players{P1: "Ana", P2: "Bea"}
	clockNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return clockNow }

func newStore(t *testing.T) models.StorageEngine {
	t.Helper()
	s, err := stormstore.NewStorageEngine(filepath.Join(t.TempDir(), "scoreboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func startMatch(t *testing.T, m *Manager, store models.StorageEngine, format models.TennisFormat) *Session {
	t.Helper()
	rec, err := store.CreateMatch("tennis", format, players)
	require.NoError(t, err)
	s, err := m.Start(rec.ID, p1)
	require.NoError(t, err)
	return s
}

func score(t *testing.T, s *Session, p models.Player, n int) Update {
	t.Helper()
	var u Update
	var err error
	for i := 0; i < n; i++ {
		u, err = s.AddPoint(p, nil)
		require.NoError(t, err)
	}
	return u
}

func TestStartAndFinish(t *testing.T) {
	store := newStore(t)
	m := NewManager(store, WithClock(fixedClock))
	s := startMatch(t, m, store, models.TennisFormat_SINGLE_SET)

	rec, err := store.GetMatch(s.ID())
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatus_IN_PROGRESS, rec.Status)
	require.NotNil(t, rec.MatchState)
	assert.Nil(t, rec.MatchState.StartedAt)

	u := score(t, s, p1, 24)
	assert.True(t, u.State.IsFinished)
	assert.Equal(t, "6-0", u.Score)
	assert.Empty(t, u.Call)
	m.Wait()

	rec, err = store.GetMatch(s.ID())
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatus_FINISHED, rec.Status)
	assert.Equal(t, "6-0", rec.Score)
	assert.Equal(t, p1, rec.Winner)
	require.Len(t, rec.CompletedSets, 1)
	require.NotNil(t, rec.MatchState.StartedAt)
	require.NotNil(t, rec.MatchState.EndedAt)
	assert.True(t, clockNow.Equal(*rec.MatchState.EndedAt))
}

func TestStartErrors(t *testing.T) {
	store := newStore(t)
	m := NewManager(store)
	s := startMatch(t, m, store, models.TennisFormat_BEST_OF_3)

	_, err := m.Start(s.ID(), p2)
	assert.ErrorIs(t, err, ErrAlreadyStarted)

	_, err = m.Start("missing", p1)
	assert.ErrorIs(t, err, models.ErrMatchNotFound)

	rec, err := store.CreateMatch("tennis", models.TennisFormat_BEST_OF_3, players)
	require.NoError(t, err)
	_, err = m.Start(rec.ID, "PLAYER_3")
	assert.ErrorIs(t, err, scoring.ErrUnknownPlayer)
}

func TestGetRestoresFromStore(t *testing.T) {
	store := newStore(t)
	m := NewManager(store)
	s := startMatch(t, m, store, models.TennisFormat_BEST_OF_3)
	score(t, s, p1, 5)
	score(t, s, p2, 2)
	want := s.Current()
	m.Wait()

	fresh := NewManager(store)
	got, err := fresh.Get(s.ID())
	require.NoError(t, err)
	assert.Equal(t, want.State, got.Current().State)
	assert.False(t, got.Current().CanUndo, "undo does not survive a restore")

	again, err := fresh.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, got, again)
}

func TestGetErrors(t *testing.T) {
	store := newStore(t)
	m := NewManager(store)

	_, err := m.Get("missing")
	assert.ErrorIs(t, err, models.ErrMatchNotFound)

	rec, err := store.CreateMatch("tennis", models.TennisFormat_BEST_OF_3, players)
	require.NoError(t, err)
	_, err = m.Get(rec.ID)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestUndoReopensFinishedMatch(t *testing.T) {
	store := newStore(t)
	m := NewManager(store)
	s := startMatch(t, m, store, models.TennisFormat_SINGLE_SET)
	score(t, s, p1, 24)

	u, ok := s.Undo()
	require.True(t, ok)
	assert.False(t, u.State.IsFinished)
	assert.Equal(t, "5-0", u.Score)
	m.Wait()

	rec, err := store.GetMatch(s.ID())
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatus_IN_PROGRESS, rec.Status)
	assert.Empty(t, rec.Score)
	assert.Empty(t, rec.Winner)
	assert.Nil(t, rec.MatchState.EndedAt)
}

func TestAddPointErrors(t *testing.T) {
	store := newStore(t)
	m := NewManager(store)
	s := startMatch(t, m, store, models.TennisFormat_BEST_OF_3)

	_, err := s.AddPoint("nobody", nil)
	assert.ErrorIs(t, err, scoring.ErrUnknownPlayer)

	_, err = s.AddPoint(p1, &models.PointDetail{Result: models.PointResult{Winner: p2, Type: models.ResultType_WINNER}})
	assert.ErrorIs(t, err, scoring.ErrInvalidPointDetail)

	_, ok := s.Undo()
	assert.False(t, ok)
}

func TestStatisticsAndHTML(t *testing.T) {
	store := newStore(t)
	m := NewManager(store)
	s := startMatch(t, m, store, models.TennisFormat_BEST_OF_3)

	_, err := s.AddPoint(p1, &models.PointDetail{
		Serve:  &models.ServeInfo{Type: models.ServeType_ACE, IsFirstServe: true},
		Result: models.PointResult{Winner: p1, Type: models.ResultType_WINNER},
	})
	require.NoError(t, err)
	_, err = s.AddPoint(p2, &models.PointDetail{
		Result: models.PointResult{Winner: p2, Type: models.ResultType_UNFORCED_ERROR},
		Rally:  &models.RallyInfo{BallExchanges: 9},
	})
	require.NoError(t, err)

	st := s.Statistics()
	assert.Equal(t, 2, st.TotalPoints)
	assert.Equal(t, 1, st.Player1.Aces)
	assert.Equal(t, 1, st.Player1.UnforcedErrors)
	assert.Equal(t, 1, st.Player2.LongRallies)

	html, err := s.HTML()
	require.NoError(t, err)
	assert.Contains(t, string(html), "Ana")
	assert.Contains(t, string(html), "15-all")
}

func TestSync(t *testing.T) {
	store := newStore(t)
	m := NewManager(store)
	rec, err := store.CreateMatch("tennis", models.TennisFormat_BEST_OF_3, players)
	require.NoError(t, err)

	client, err := scoring.NewEngine(p2, models.TennisFormat_BEST_OF_3)
	require.NoError(t, err)
	for i := 0; i < 9; i++ {
		_, err := client.AddPoint(p2, nil)
		require.NoError(t, err)
	}

	saved, err := m.Sync(rec.ID, client.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatus_IN_PROGRESS, saved.Status)

	s, err := m.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, client.GetState(), s.Current().State)

	bad := client.Snapshot()
	bad.CurrentSet = 0
	_, err = m.Sync(rec.ID, bad)
	assert.ErrorIs(t, err, scoring.ErrInvalidSnapshot)
	assert.Equal(t, client.GetState(), s.Current().State, "rejected sync leaves the session alone")
}

func TestConcurrentPoints(t *testing.T) {
	store := newStore(t)
	m := NewManager(store)
	s := startMatch(t, m, store, models.TennisFormat_BEST_OF_3)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 6; i++ {
				if _, err := s.AddPoint(p1, nil); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
	m.Wait()

	st := s.Current().State
	assert.Equal(t, models.PlayerCount{Player1: 1}, st.Sets)

	rec, err := store.GetMatch(s.ID())
	require.NoError(t, err)
	assert.Equal(t, st, rec.MatchState.MatchState, "the newest snapshot is the one stored")
}

// flakyStore fails SaveState while failing is set
type flakyStore struct {
	models.StorageEngine
	mu      sync.Mutex
	failing bool
}

func (f *flakyStore) SaveState(id string, snap models.Snapshot) (*models.MatchRecord, error) {
	f.mu.Lock()
	failing := f.failing
	f.mu.Unlock()
	if failing {
		return nil, errors.New("disk full")
	}
	return f.StorageEngine.SaveState(id, snap)
}

func TestSaveFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	store := &flakyStore{StorageEngine: newStore(t)}
	m := NewManager(store, WithLogger(logger))
	s := startMatch(t, m, store, models.TennisFormat_BEST_OF_3)

	store.mu.Lock()
	store.failing = true
	store.mu.Unlock()

	u, err := s.AddPoint(p1, nil)
	require.NoError(t, err)
	assert.Equal(t, models.GamePoint_FIFTEEN, u.State.CurrentGame.Points.Player1)
	m.Wait()

	assert.Contains(t, logs.String(), "unable to save match state")
	assert.Contains(t, logs.String(), "disk full")
	assert.Equal(t, models.GamePoint_FIFTEEN, s.Current().State.CurrentGame.Points.Player1)

	rec, err := store.GetMatch(s.ID())
	require.NoError(t, err)
	assert.Equal(t, models.GamePoint_LOVE, rec.MatchState.CurrentGame.Points.Player1)
}

func TestSyncReplacesLiveSession(t *testing.T) {
	store := newStore(t)
	m := NewManager(store)
	live := startMatch(t, m, store, models.TennisFormat_BEST_OF_3)
	score(t, live, p1, 6)

	client, err := scoring.NewEngine(p2, models.TennisFormat_BEST_OF_3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := client.AddPoint(p2, nil)
		require.NoError(t, err)
	}
	_, err = m.Sync(live.ID(), client.Snapshot())
	require.NoError(t, err)

	s, err := m.Get(live.ID())
	require.NoError(t, err)
	assert.Same(t, live, s)
	assert.Equal(t, client.GetState(), live.Current().State)

	_, err = live.AddPoint(p1, nil)
	require.NoError(t, err)
	_, err = client.AddPoint(p1, nil)
	require.NoError(t, err)
	m.Wait()

	assert.Equal(t, client.GetState(), s.Current().State)
	rec, err := store.GetMatch(live.ID())
	require.NoError(t, err)
	assert.Equal(t, s.Current().State, rec.MatchState.MatchState, "stored state follows the live session")
}

func TestStartedAtFollowsFirstPoint(t *testing.T) {
	store := newStore(t)
	m := NewManager(store, WithClock(fixedClock))
	s := startMatch(t, m, store, models.TennisFormat_BEST_OF_3)

	_, err := s.AddPoint("nobody", nil)
	require.Error(t, err)
	assert.Nil(t, s.Snapshot().StartedAt, "a rejected point does not start the match")

	score(t, s, p1, 1)
	require.NotNil(t, s.Snapshot().StartedAt)
	assert.True(t, clockNow.Equal(*s.Snapshot().StartedAt))

	_, ok := s.Undo()
	require.True(t, ok)
	assert.Nil(t, s.Snapshot().StartedAt)
	m.Wait()

	rec, err := store.GetMatch(s.ID())
	require.NoError(t, err)
	assert.Nil(t, rec.MatchState.StartedAt)
}
