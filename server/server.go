// Package server exposes stored matches and server-side scoring over HTTP
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/justinjudd/scoreboard/models"
	"github.com/justinjudd/scoreboard/rules"
	"github.com/justinjudd/scoreboard/scoring"
	"github.com/justinjudd/scoreboard/session"
)

// DefaultSportType is recorded for matches created without one
const DefaultSportType = "tennis"

var errBadRequest = errors.New("bad request")

// Server routes the match API
type Server struct {
	router        *mux.Router
	store         models.StorageEngine
	sessions      *session.Manager
	logger        *slog.Logger
	defaultFormat models.TennisFormat
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request and error logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultFormat sets the format of matches created without one
func WithDefaultFormat(f models.TennisFormat) Option {
	return func(s *Server) {
		s.defaultFormat = f
	}
}

// New builds the router over store and sessions
func New(store models.StorageEngine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		router:        mux.NewRouter(),
		store:         store,
		sessions:      sessions,
		logger:        slog.Default(),
		defaultFormat: models.TennisFormat_BEST_OF_3,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router
	r.Use(s.logRequests)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/formats", s.listFormats).Methods(http.MethodGet)

	m := r.PathPrefix("/matches").Subrouter()
	m.HandleFunc("", s.createMatch).Methods(http.MethodPost)
	m.HandleFunc("", s.listMatches).Methods(http.MethodGet)
	m.HandleFunc("/{id}", s.getMatch).Methods(http.MethodGet)
	m.HandleFunc("/{id}", s.updateMatch).Methods(http.MethodPatch)
	m.HandleFunc("/{id}", s.deleteMatch).Methods(http.MethodDelete)
	m.HandleFunc("/{id}/state", s.getState).Methods(http.MethodGet)
	m.HandleFunc("/{id}/state", s.syncState).Methods(http.MethodPatch)
	m.HandleFunc("/{id}/start", s.startMatch).Methods(http.MethodPost)
	m.HandleFunc("/{id}/points", s.addPoint).Methods(http.MethodPost)
	m.HandleFunc("/{id}/undo", s.undo).Methods(http.MethodPost)
	m.HandleFunc("/{id}/stats", s.statistics).Methods(http.MethodGet)
	m.HandleFunc("/{id}/scoreboard", s.scoreboard).Methods(http.MethodGet)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, models.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotStarted), errors.Is(err, session.ErrAlreadyStarted):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, rules.ErrUnsupportedFormat),
		errors.Is(err, scoring.ErrUnknownPlayer),
		errors.Is(err, scoring.ErrInvalidPointDetail),
		errors.Is(err, scoring.ErrInvalidSnapshot):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decode(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type formatInfo struct {
	Format      models.TennisFormat `json:"format"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Config      models.TennisConfig `json:"config"`
}

func (s *Server) listFormats(w http.ResponseWriter, r *http.Request) {
	var out []formatInfo
	for _, f := range rules.Formats() {
		cfg, _ := rules.GetConfig(f)
		out = append(out, formatInfo{Format: f, Name: rules.DisplayName(f), Description: rules.DetailedName(f), Config: cfg})
	}
	writeJSON(w, http.StatusOK, out)
}
