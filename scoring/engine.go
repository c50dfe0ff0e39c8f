package scoring

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/justinjudd/scoreboard/models"
	"github.com/justinjudd/scoreboard/rules"
)

var (
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrInvalidPointDetail = errors.New("point detail requires result winner and type")
	ErrInvalidSnapshot    = errors.New("invalid match snapshot")
)

// Engine is the scoring state machine for a single match. It is not safe for concurrent use;
// callers sharing an engine must serialise AddPoint, Undo and LoadState.
type Engine struct {
	config    models.TennisConfig
	state     models.MatchState
	history   *History
	undo      *undoStack
	startedAt *time.Time
	endedAt   *time.Time

	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for warnings and transitions
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithUndoLimit caps how many points can be undone
func WithUndoLimit(n int) Option {
	return func(e *Engine) {
		e.undo = newUndoStack(n)
	}
}

// WithClock replaces time.Now for point timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine for a new match with server serving the first game
func NewEngine(server models.Player, format models.TennisFormat, opts ...Option) (*Engine, error) {
	cfg, err := rules.GetConfig(format)
	if err != nil {
		return nil, fmt.Errorf("unable to create scoring engine: %w", err)
	}
	if !server.Valid() {
		return nil, fmt.Errorf("unable to create scoring engine: %w: %q", ErrUnknownPlayer, string(server))
	}

	e := &Engine{
		config:  cfg,
		history: NewHistory(),
		undo:    newUndoStack(DefaultUndoLimit),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state = initialState(cfg, server)

	return e, nil
}

func initialState(cfg models.TennisConfig, server models.Player) models.MatchState {
	state := models.MatchState{
		CurrentSet:    1,
		Server:        server,
		CompletedSets: []models.CompletedSet{},
		Config:        cfg,
	}
	if rules.StartsWithMatchTiebreak(cfg) {
		state.CurrentGame = models.GameState{Server: server, IsTiebreak: true, IsMatchTiebreak: true}
	} else {
		state.CurrentGame = models.GameState{Server: server, Points: models.LoveAll()}
	}
	return state
}

// Config returns the rule set of the match
func (e *Engine) Config() models.TennisConfig {
	return e.config
}

// GetState returns a deep copy of the current match state
func (e *Engine) GetState() models.MatchState {
	return e.state.Clone()
}

// PointHistory is the log of annotated points
func (e *Engine) PointHistory() *History {
	return e.history
}

// AddPoint awards the next point to player. detail is optional; when given, its result must
// name player as winner. Scoring into a finished match is a no-op.
func (e *Engine) AddPoint(player models.Player, detail *models.PointDetail) (models.MatchState, error) {
	if e.state.IsFinished {
		return e.GetState(), nil
	}
	if !player.Valid() {
		return e.GetState(), fmt.Errorf("%w: %q", ErrUnknownPlayer, string(player))
	}

	var recorded *models.PointDetail
	if detail != nil {
		if !detail.Complete() {
			return e.GetState(), ErrInvalidPointDetail
		}
		if detail.Result.Winner != player {
			return e.GetState(), fmt.Errorf("%w: result names %s, point awarded to %s", ErrInvalidPointDetail, detail.Result.Winner, player)
		}
		p := detail.Clone()
		if p.Server == "" {
			p.Server = e.state.CurrentGame.Server
		}
		if !p.IsBreakPoint {
			p.IsBreakPoint = e.IsBreakPoint()
		}
		if p.Timestamp.IsZero() {
			p.Timestamp = e.now()
		}
		recorded = &p
	}

	e.undo.push(undoEntry{state: e.state.Clone(), historyLen: e.history.Len()})
	if recorded != nil {
		e.history.Append(*recorded)
	}

	if e.state.CurrentGame.Numeric() {
		e.addTiebreakPoint(player)
	} else {
		e.addRegularPoint(player)
	}

	return e.GetState(), nil
}

// Undo reverts the most recent AddPoint. ok is false when there is nothing to undo
func (e *Engine) Undo() (state models.MatchState, ok bool) {
	entry, ok := e.undo.pop()
	if !ok {
		return e.GetState(), false
	}
	e.state = entry.state
	e.history.Truncate(entry.historyLen)
	if !e.state.IsFinished {
		e.endedAt = nil
	}
	if unplayed(e.state) {
		e.startedAt = nil
	}
	return e.GetState(), true
}

func unplayed(st models.MatchState) bool {
	return len(st.CompletedSets) == 0 && st.CurrentSetState.Games.Total() == 0 && st.CurrentGame.PointsPlayed() == 0
}

// CanUndo reports whether a previous point can be reverted
func (e *Engine) CanUndo() bool {
	return e.undo.len() > 0
}

// UndoDepth is the number of points that can currently be undone
func (e *Engine) UndoDepth() int {
	return e.undo.len()
}
