package api

import "net/http"

func (s *Server) handleListPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := s.reference.Platforms()
	if err != nil {
		s.writeServerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, platforms)
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.reference.Genres()
	if err != nil {
		s.writeServerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, genres)
}
