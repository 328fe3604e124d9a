package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"movieflix/internal/models"
	"movieflix/internal/repository"
)

// parseListQuery extracts the status and filter parameters shared by the
// production and demo list handlers.
func parseListQuery(r *http.Request) (models.ContentStatus, models.ContentFilters, error) {
	q := r.URL.Query()

	status := models.ContentStatus(q.Get("status"))
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return "", models.ContentFilters{}, errors.New("status must be pending or watched")
	}

	f := models.ContentFilters{
		Genre:  q.Get("genre"),
		Search: q.Get("search"),
	}
	if t := q.Get("type"); t != "" {
		ct := models.ContentType(t)
		if !ct.Valid() {
			return "", models.ContentFilters{}, errors.New("type must be movie or series")
		}
		f.Type = ct
	}
	if p := q.Get("platform"); p != "" {
		id, err := uuid.Parse(p)
		if err != nil {
			return "", models.ContentFilters{}, errors.New("invalid platform id")
		}
		f.Platform = &id
	}
	return status, f, nil
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(r.PathValue("profileId"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}
	status, filters, err := parseListQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.content.List(profileID, status, filters)
	if err != nil {
		s.writeServerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleTopContent(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(r.PathValue("profileId"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	top, err := s.content.Top(profileID)
	if err != nil {
		s.writeServerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, top)
}

func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Type == "" || req.ProfileID == uuid.Nil {
		s.writeError(w, http.StatusBadRequest, "title, type and profile_id are required")
		return
	}
	if !req.Type.Valid() {
		s.writeError(w, http.StatusBadRequest, "type must be movie or series")
		return
	}

	created, err := s.content.Create(&req)
	if err != nil {
		s.writeServerError(w, err)
		return
	}
	s.hub.Broadcast("content:created", created)
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid content id")
		return
	}

	var req models.UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title != nil && *req.Title == "" {
		s.writeError(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	if req.Type != nil && !req.Type.Valid() {
		s.writeError(w, http.StatusBadRequest, "type must be movie or series")
		return
	}

	updated, err := s.content.Update(id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "content not found")
			return
		}
		s.writeServerError(w, err)
		return
	}
	s.hub.Broadcast("content:updated", updated)
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleMarkWatched(w http.ResponseWriter, r *http.Request) {
	s.handleStatusChange(w, r, s.content.MarkWatched, "content:watched", "content marked as watched")
}

func (s *Server) handleMarkPending(w http.ResponseWriter, r *http.Request) {
	s.handleStatusChange(w, r, s.content.MarkPending, "content:pending", "content marked as pending")
}

func (s *Server) handleStatusChange(w http.ResponseWriter, r *http.Request, change func(uuid.UUID) error, event, message string) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid content id")
		return
	}

	if err := change(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "content not found")
			return
		}
		s.writeServerError(w, err)
		return
	}
	s.hub.Broadcast(event, map[string]string{"id": id.String()})
	s.writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid content id")
		return
	}

	if err := s.content.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "content not found")
			return
		}
		s.writeServerError(w, err)
		return
	}
	s.hub.Broadcast("content:deleted", map[string]string{"id": id.String()})
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "content deleted"})
}
