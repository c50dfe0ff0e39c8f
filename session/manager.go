package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/justinjudd/scoreboard/models"
	"github.com/justinjudd/scoreboard/scoring"
)

var (
	ErrNotStarted     = errors.New("match has not been started")
	ErrAlreadyStarted = errors.New("match has already been started")
)

// Manager keeps one Session per match being scored. Sessions of matches that already have a
// stored snapshot are rebuilt from it on first use.
type Manager struct {
	store     models.StorageEngine
	logger    *slog.Logger
	undoLimit int
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger handed to sessions and engines
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithUndoLimit caps how many points each session can undo
func WithUndoLimit(n int) Option {
	return func(m *Manager) {
		m.undoLimit = n
	}
}

// WithClock replaces time.Now for match and point timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager persisting through store
func NewManager(store models.StorageEngine, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		logger:    slog.Default(),
		undoLimit: scoring.DefaultUndoLimit,
		now:       time.Now,
		sessions:  map[string]*Session{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) newEngine(server models.Player, format models.TennisFormat) (*scoring.Engine, error) {
	return scoring.NewEngine(server, format,
		scoring.WithLogger(m.logger),
		scoring.WithUndoLimit(m.undoLimit),
		scoring.WithClock(m.now),
	)
}

// Start begins server-side scoring of a stored match that has no state yet
func (m *Manager) Start(id string, server models.Player) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; ok {
		return nil, ErrAlreadyStarted
	}
	rec, err := m.store.GetMatch(id)
	if err != nil {
		return nil, err
	}
	if rec.MatchState != nil || rec.Status != models.MatchStatus_NOT_STARTED {
		return nil, ErrAlreadyStarted
	}

	e, err := m.newEngine(server, rec.Format)
	if err != nil {
		return nil, err
	}
	if _, err := m.store.SaveState(id, e.Snapshot()); err != nil {
		return nil, fmt.Errorf("unable to start match %s: %w", id, err)
	}

	s := newSession(id, rec.Players, e, m.store, m.logger, m.now)
	m.sessions[id] = s
	m.logger.Info("match started", "match_id", id, "format", rec.Format, "server", server)
	return s, nil
}

// Get returns the session of a started match
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	rec, err := m.store.GetMatch(id)
	if err != nil {
		return nil, err
	}
	if rec.MatchState == nil {
		return nil, ErrNotStarted
	}

	e, err := m.restore(rec.Format, *rec.MatchState)
	if err != nil {
		return nil, fmt.Errorf("unable to restore match %s: %w", id, err)
	}
	s := newSession(id, rec.Players, e, m.store, m.logger, m.now)
	m.sessions[id] = s
	return s, nil
}

// Sync replaces the state of a match with a snapshot produced by an external client. The
// snapshot is validated by loading it into a fresh engine and stored synchronously. A live
// session keeps its identity and continues from the synced state.
func (m *Manager) Sync(id string, snap models.Snapshot) (*models.MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.store.GetMatch(id)
	if err != nil {
		return nil, err
	}
	e, err := m.restore(rec.Format, snap)
	if err != nil {
		return nil, err
	}

	if s, ok := m.sessions[id]; ok {
		return s.replace(e.Snapshot())
	}
	rec, err = m.store.SaveState(id, e.Snapshot())
	if err != nil {
		return nil, err
	}
	m.sessions[id] = newSession(id, rec.Players, e, m.store, m.logger, m.now)
	return rec, nil
}

func (m *Manager) restore(format models.TennisFormat, snap models.Snapshot) (*scoring.Engine, error) {
	e, err := m.newEngine(snap.Server, format)
	if err != nil {
		return nil, err
	}
	if err := e.LoadState(snap); err != nil {
		return nil, err
	}
	return e, nil
}

// Forget drops the session of a match, waiting for its pending saves
func (m *Manager) Forget(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Wait()
	}
}

// Wait blocks until every session has flushed its background saves
func (m *Manager) Wait() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Wait()
	}
}
