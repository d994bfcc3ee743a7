package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/roach88/rigcheck/internal/session"
	"github.com/roach88/rigcheck/internal/store"
)

type saveBuildRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Author    string `json:"author,omitempty"`
}

type likeResponse struct {
	ID    string `json:"id"`
	Likes int    `json:"likes"`
}

type copyResponse struct {
	sessionResponse
	Missing []string `json:"missing,omitempty"`
}

func (s *Server) handleListBuilds(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	builds, err := s.builds.ListBuilds(r.Context(), limit)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"builds": builds})
}

func (s *Server) handleSaveBuild(w http.ResponseWriter, r *http.Request) {
	var req saveBuildRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := s.sessions.Get(req.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	saved, err := s.builds.SaveBuild(r.Context(), req.Name, req.Author, sess.Snapshot())
	switch {
	case errors.Is(err, store.ErrNameRequired):
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrEmptyBuild):
		writeError(w, http.StatusBadRequest, CodeEmptyBuild, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}

	s.metrics.RecordSavedBuild()
	s.logger.Info("build saved", "build", saved.ID, "session", sess.ID(), "fingerprint", saved.Fingerprint)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleGetBuild(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.lookupBuild(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleLikeBuild(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	likes, err := s.builds.Like(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{ID: id, Likes: likes})
}

// handleCopyBuild opens a new session preloaded with a saved build.
// Parts no longer in the catalog are skipped and listed in "missing".
func (s *Server) handleCopyBuild(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.lookupBuild(w, r)
	if !ok {
		return
	}

	snap, err := store.Resolve(s.catalog.Load(), saved)
	var missing *store.MissingPartsError
	if err != nil && !errors.As(err, &missing) {
		s.internalError(w, err)
		return
	}

	sess := s.sessions.Create()
	sess.Load(snap)

	resp := copyResponse{sessionResponse: newSessionResponse(sess)}
	if missing != nil {
		resp.Missing = missing.Missing
		s.logger.Warn("copied build has unknown parts", "build", saved.ID, "missing", missing.Missing)
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) lookupBuild(w http.ResponseWriter, r *http.Request) (store.SavedBuild, bool) {
	saved, err := s.builds.GetBuild(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		return store.SavedBuild{}, false
	}
	if err != nil {
		s.internalError(w, err)
		return store.SavedBuild{}, false
	}
	return saved, true
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}
