package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/roach88/rigcheck/internal/part"
)

type categoryParts struct {
	Category part.Category    `json:"category"`
	Parts    []part.Component `json:"parts"`
}

type catalogResponse struct {
	Categories []categoryParts `json:"categories"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	cat := s.catalog.Load()
	resp := catalogResponse{Categories: []categoryParts{}}
	for _, c := range cat.Categories() {
		resp.Categories = append(resp.Categories, categoryParts{Category: c, Parts: cat.Parts(c)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCatalogCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := pathCategory(w, r)
	if !ok {
		return
	}
	parts := s.catalog.Load().Search(c, r.URL.Query().Get("q"))
	if parts == nil {
		parts = []part.Component{}
	}
	writeJSON(w, http.StatusOK, categoryParts{Category: c, Parts: parts})
}

// pathCategory parses the {category} route variable, accepting aliases.
func pathCategory(w http.ResponseWriter, r *http.Request) (part.Category, bool) {
	c, err := part.ParseCategory(mux.Vars(r)["category"])
	if errors.Is(err, part.ErrUnknownCategory) {
		writeError(w, http.StatusBadRequest, CodeUnknownCategory, err.Error())
		return "", false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
		return "", false
	}
	return c, true
}
