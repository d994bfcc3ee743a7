package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/text/language"

	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/session"
)

type sessionResponse struct {
	ID     string         `json:"id"`
	Parts  build.Snapshot `json:"parts"`
	Totals build.Totals   `json:"totals"`
}

func newSessionResponse(sess *session.Session) sessionResponse {
	snap := sess.Snapshot()
	return sessionResponse{ID: sess.ID(), Parts: snap, Totals: build.Aggregate(snap)}
}

type selectRequest struct {
	ID string `json:"id"`
}

// languages are the message catalogs the engine can render.
var (
	supported = []language.Tag{language.English, language.Russian}
	languages = language.NewMatcher(supported)
)

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	s.logger.Debug("session created", "session", sess.ID())
	writeJSON(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.sessions.Delete(id) {
		writeError(w, http.StatusNotFound, CodeNotFound, "session not found: "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectPart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	c, ok := pathCategory(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "id is required")
		return
	}

	comp, err := s.catalog.Load().Lookup(c, req.ID)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}

	if err := sess.Select(comp); err != nil {
		writeError(w, http.StatusBadRequest, CodeUnknownCategory, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleDeselectPart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	c, ok := pathCategory(w, r)
	if !ok {
		return
	}
	sess.Deselect(c)
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	report := s.engine.CheckIn(sess.Snapshot(), requestLanguage(r, s.engine.Language()))

	fired := make([]string, len(report.Issues))
	for i, issue := range report.Issues {
		fired[i] = issue.Rule
	}
	s.metrics.RecordEvaluation(fired)

	writeJSON(w, http.StatusOK, report)
}

// requestLanguage picks the message language from ?lang= or, failing
// that, the Accept-Language header, then fallback.
func requestLanguage(r *http.Request, fallback language.Tag) language.Tag {
	if code := r.URL.Query().Get("lang"); code != "" {
		if tag, err := language.Parse(code); err == nil {
			if _, idx, conf := languages.Match(tag); conf >= language.High {
				return supported[idx]
			}
		}
		return fallback
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		tags, _, err := language.ParseAcceptLanguage(accept)
		if err == nil && len(tags) > 0 {
			if _, idx, conf := languages.Match(tags...); conf != language.No {
				return supported[idx]
			}
		}
	}
	return fallback
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
		return nil, false
	}
	return sess, true
}
