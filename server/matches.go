package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/justinjudd/scoreboard/models"
	"github.com/justinjudd/scoreboard/rules"
	"github.com/justinjudd/scoreboard/session"
	"github.com/justinjudd/scoreboard/stats"
)

type createMatchRequest struct {
	SportType string              `json:"sportType"`
	Format    models.TennisFormat `json:"format"`
	Players   models.Players      `json:"players"`
}

func (s *Server) createMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.SportType == "" {
		req.SportType = DefaultSportType
	}
	if req.Format == "" {
		req.Format = s.defaultFormat
	}
	if _, err := rules.GetConfig(req.Format); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.store.CreateMatch(req.SportType, req.Format, req.Players)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("match created", "match_id", rec.ID, "format", rec.Format)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.GetMatches()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetMatch(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) updateMatch(w http.ResponseWriter, r *http.Request) {
	var update models.MatchUpdate
	if err := decode(r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}
	if update.Winner != nil && *update.Winner != "" && !update.Winner.Valid() {
		s.writeError(w, r, fmt.Errorf("%w: unknown winner %q", errBadRequest, string(*update.Winner)))
		return
	}

	rec, err := s.store.UpdateMatch(mux.Vars(r)["id"], update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteMatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.sessions.Forget(id)
	if err := s.store.DeleteMatch(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type stateResponse struct {
	Match *models.MatchRecord `json:"match"`
	State *models.Snapshot    `json:"state"`
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := s.store.GetMatch(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := stateResponse{Match: rec}
	sess, err := s.sessions.Get(id)
	switch {
	case err == nil:
		snap := sess.Snapshot()
		resp.State = &snap
	case !errors.Is(err, session.ErrNotStarted):
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type syncRequest struct {
	MatchState *models.Snapshot `json:"matchState"`
}

func (s *Server) syncState(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.MatchState == nil {
		s.writeError(w, r, fmt.Errorf("%w: matchState is required", errBadRequest))
		return
	}

	rec, err := s.sessions.Sync(mux.Vars(r)["id"], *req.MatchState)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type startRequest struct {
	Server models.Player `json:"server"`
}

func (s *Server) startMatch(w http.ResponseWriter, r *http.Request) {
	req := startRequest{Server: models.Player_1}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.sessions.Start(mux.Vars(r)["id"], req.Server)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.Current())
}

type pointRequest struct {
	Player models.Player       `json:"player"`
	Detail *models.PointDetail `json:"detail,omitempty"`
}

func (s *Server) addPoint(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := sess.AddPoint(req.Player, req.Detail)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type undoResponse struct {
	session.Update
	Undone bool `json:"undone"`
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	u, ok := sess.Undo()
	writeJSON(w, http.StatusOK, undoResponse{Update: u, Undone: ok})
}

func (s *Server) statistics(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	switch {
	case errors.Is(err, session.ErrNotStarted):
		writeJSON(w, http.StatusOK, stats.Compute(nil))
	case err != nil:
		s.writeError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, sess.Statistics())
	}
}

func (s *Server) scoreboard(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	html, err := sess.HTML()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}
