// Package session runs server-side scoring for stored matches. A Session serialises all
// mutations of one match and hands every resulting snapshot to the storage engine in the
// background; storage failures are logged and never roll back the in-memory state.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/justinjudd/scoreboard"
	"github.com/justinjudd/scoreboard/models"
	"github.com/justinjudd/scoreboard/scoring"
	"github.com/justinjudd/scoreboard/stats"
)

// Update is the result of a scoring mutation, with the side and serve metadata a client needs to
// drive its display.
type Update struct {
	State             models.MatchState `json:"state"`
	ServingSide       models.CourtSide  `json:"servingSide"`
	ShouldChangeSides bool              `json:"shouldChangeSides"`
	IsBreakPoint      bool              `json:"isBreakPoint"`
	CanUndo           bool              `json:"canUndo"`
	Score             string            `json:"score"`
	Call              string            `json:"call,omitempty"`
}

// Session owns the scoring engine of one match
type Session struct {
	id      string
	players models.Players

	mu     sync.Mutex
	engine *scoring.Engine
	seq    uint64

	store    models.StorageEngine
	saveMu   sync.Mutex
	savedSeq uint64
	saves    sync.WaitGroup

	logger *slog.Logger
	now    func() time.Time
}

func newSession(id string, players models.Players, engine *scoring.Engine, store models.StorageEngine, logger *slog.Logger, now func() time.Time) *Session {
	return &Session{
		id:      id,
		players: players,
		engine:  engine,
		store:   store,
		logger:  logger.With("match_id", id),
		now:     now,
	}
}

// ID is the stored match id
func (s *Session) ID() string {
	return s.id
}

// AddPoint scores a point and persists the new snapshot in the background
func (s *Session) AddPoint(player models.Player, detail *models.PointDetail) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.GetState().IsFinished {
		return s.update(), nil
	}
	st, err := s.engine.AddPoint(player, detail)
	if err != nil {
		return s.update(), err
	}
	if _, started := s.engine.StartedAt(); !started {
		s.engine.SetStartedAt(s.now())
	}

	var score *string
	if st.IsFinished {
		s.engine.SetEndedAt(s.now())
		line := scoreboard.ScoreLine(st)
		score = &line
		s.logger.Info("match finished", "winner", st.Winner, "score", line)
	}
	s.persist(score)
	return s.update(), nil
}

// Undo reverts the last point. ok is false when there was nothing to revert
func (s *Session) Undo() (u Update, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasFinished := s.engine.GetState().IsFinished
	st, ok := s.engine.Undo()
	if !ok {
		return s.update(), false
	}

	var score *string
	if wasFinished && !st.IsFinished {
		cleared := ""
		score = &cleared
	}
	s.persist(score)
	return s.update(), true
}

// Load replaces the match with snap. Nothing is persisted
func (s *Session) Load(snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.LoadState(snap)
}

// replace stores snap synchronously and then loads it. Background saves queued before the
// call are dropped once it has been stored.
func (s *Session) replace(snap models.Snapshot) (*models.MatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	seq := s.seq

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	rec, err := s.store.SaveState(s.id, snap)
	if err != nil {
		return nil, err
	}
	s.savedSeq = seq
	if err := s.engine.LoadState(snap); err != nil {
		return nil, err
	}
	return rec, nil
}

// Current returns the state and metadata without changing anything
func (s *Session) Current() Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update()
}

// Snapshot returns the persistable form of the match
func (s *Session) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Statistics computes the statistics of the recorded points
func (s *Session) Statistics() models.MatchStatistics {
	s.mu.Lock()
	points := s.engine.PointHistory().All()
	s.mu.Unlock()
	return stats.Compute(points)
}

// HTML renders the scoreboard of the match
func (s *Session) HTML() ([]byte, error) {
	s.mu.Lock()
	st := s.engine.GetState()
	s.mu.Unlock()
	return scoreboard.ScoreboardHTML(s.players, st)
}

// Wait blocks until every background save has finished
func (s *Session) Wait() {
	s.saves.Wait()
}

// update must be called with mu held
func (s *Session) update() Update {
	st := s.engine.GetState()
	return Update{
		State:             st,
		ServingSide:       s.engine.ServingSide(),
		ShouldChangeSides: s.engine.ShouldChangeSides(),
		IsBreakPoint:      s.engine.IsBreakPoint(),
		CanUndo:           s.engine.CanUndo(),
		Score:             scoreboard.ScoreLine(st),
		Call:              scoreboard.GameScore(st),
	}
}

// persist must be called with mu held. Saves may complete out of order; a save older than
// the last one written is dropped.
func (s *Session) persist(score *string) {
	s.seq++
	seq := s.seq
	snap := s.engine.Snapshot()

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		s.saveMu.Lock()
		defer s.saveMu.Unlock()

		if seq <= s.savedSeq {
			return
		}
		if _, err := s.store.SaveState(s.id, snap); err != nil {
			s.logger.Error("unable to save match state", "err", err)
			return
		}
		s.savedSeq = seq

		if score != nil {
			if _, err := s.store.UpdateMatch(s.id, models.MatchUpdate{Score: score}); err != nil {
				s.logger.Error("unable to update match score", "err", err)
			}
		}
	}()
}
