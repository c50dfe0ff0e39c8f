package scoring

import (
	"fmt"
	"time"

	"github.com/justinjudd/scoreboard/models"
)

// Snapshot returns the serialisable form of the match: state, point history and timestamps
func (e *Engine) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		MatchState:    e.GetState(),
		PointsHistory: e.history.All(),
	}
	if e.startedAt != nil {
		t := *e.startedAt
		snap.StartedAt = &t
	}
	if e.endedAt != nil {
		t := *e.endedAt
		snap.EndedAt = &t
	}
	return snap
}

// LoadState resumes the match from a snapshot. The engine keeps its own configuration; a
// snapshot recorded under another format is accepted with a warning. The undo stack is cleared.
func (e *Engine) LoadState(snap models.Snapshot) error {
	if err := validateSnapshot(snap); err != nil {
		return err
	}
	if snap.Config.Format != e.config.Format {
		e.logger.Warn("snapshot format differs from engine format, keeping engine configuration",
			"snapshot_format", snap.Config.Format, "engine_format", e.config.Format)
	}

	restored := snap.Clone()
	state := restored.MatchState
	state.Config = e.config
	if !state.CurrentGame.Numeric() {
		state.CurrentGame.TiebreakPoints = models.PlayerCount{}
	}

	e.state = state
	e.history.replace(restored.PointsHistory)
	e.startedAt = restored.StartedAt
	e.endedAt = restored.EndedAt
	e.undo.clear()

	e.logger.Debug("match state restored", "format", e.config.Format, "set", state.CurrentSet, "points", e.history.Len())
	return nil
}

func validateSnapshot(snap models.Snapshot) error {
	if !snap.Server.Valid() {
		return fmt.Errorf("%w: server %q", ErrInvalidSnapshot, string(snap.Server))
	}
	if !snap.CurrentGame.Server.Valid() {
		return fmt.Errorf("%w: game server %q", ErrInvalidSnapshot, string(snap.CurrentGame.Server))
	}
	if snap.CurrentSet < 1 {
		return fmt.Errorf("%w: current set %d", ErrInvalidSnapshot, snap.CurrentSet)
	}
	if snap.Sets.Total() != len(snap.CompletedSets) {
		return fmt.Errorf("%w: %d sets won but %d completed sets", ErrInvalidSnapshot, snap.Sets.Total(), len(snap.CompletedSets))
	}
	if snap.IsFinished != snap.Winner.Valid() {
		return fmt.Errorf("%w: finished=%t with winner %q", ErrInvalidSnapshot, snap.IsFinished, string(snap.Winner))
	}
	if !snap.CurrentGame.Numeric() && (!snap.CurrentGame.Points.Player1.Valid() || !snap.CurrentGame.Points.Player2.Valid()) {
		return fmt.Errorf("%w: game points %q-%q", ErrInvalidSnapshot, snap.CurrentGame.Points.Player1, snap.CurrentGame.Points.Player2)
	}
	return nil
}

// SetStartedAt records when play began
func (e *Engine) SetStartedAt(t time.Time) {
	e.startedAt = &t
}

// SetEndedAt records when play ended
func (e *Engine) SetEndedAt(t time.Time) {
	e.endedAt = &t
}

// StartedAt reports when play began, if it has
func (e *Engine) StartedAt() (time.Time, bool) {
	if e.startedAt == nil {
		return time.Time{}, false
	}
	return *e.startedAt, true
}

// EndedAt reports when play ended, if it has
func (e *Engine) EndedAt() (time.Time, bool) {
	if e.endedAt == nil {
		return time.Time{}, false
	}
	return *e.endedAt, true
}
