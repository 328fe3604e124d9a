package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"movieflix/internal/models"
	"movieflix/internal/repository"
)

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.List()
	if err != nil {
		s.writeServerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "profile name is required")
		return
	}

	profile, err := s.profiles.Create(req.Name, req.Emoji)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			s.writeError(w, http.StatusBadRequest, "a profile with that name already exists")
			return
		}
		s.writeServerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	if err := s.profiles.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		s.writeServerError(w, err)
		return
	}
	s.hub.Broadcast("profile:deleted", map[string]string{"id": id.String()})
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "profile deleted"})
}
