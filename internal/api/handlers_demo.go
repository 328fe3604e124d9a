package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"movieflix/internal/models"
)

const demoTokenTTL = 2 * time.Hour

// ──────────────────── Demo auth ────────────────────

// handleDemoAuth exchanges the shared demo passcode for a short-lived
// token. The passcode is only ever compared against its bcrypt hash.
func (s *Server) handleDemoAuth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		s.writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	if bcrypt.CompareHashAndPassword(s.demoCodeHash, []byte(req.Code)) != nil {
		s.writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"error":   "incorrect code",
		})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"demo": true,
		"exp":  time.Now().Add(demoTokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.DemoSecret))
	if err != nil {
		s.writeServerError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"demoMode": true,
		"token":    signed,
	})
}

// requireDemoToken gates mutating demo routes behind the passcode token.
func (s *Server) requireDemoToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" {
			s.writeError(w, http.StatusUnauthorized, "demo token required")
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(s.cfg.DemoSecret), nil
		})
		if err != nil || !token.Valid {
			s.writeError(w, http.StatusUnauthorized, "invalid demo token")
			return
		}
		if claims, ok := token.Claims.(jwt.MapClaims); !ok || claims["demo"] != true {
			s.writeError(w, http.StatusUnauthorized, "invalid demo token")
			return
		}
		next(w, r)
	}
}

// ──────────────────── Demo CRUD ────────────────────

func (s *Server) handleDemoListProfiles(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.demoStore.Profiles())
}

func (s *Server) handleDemoCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "profile name is required")
		return
	}

	profile, err := s.demoStore.CreateProfile(req.Name, req.Emoji)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "a profile with that name already exists")
		return
	}
	s.writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleDemoDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}
	if err := s.demoStore.DeleteProfile(id); err != nil {
		s.writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "profile deleted"})
}

func (s *Server) handleDemoPlatforms(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.demoStore.Platforms())
}

func (s *Server) handleDemoGenres(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.demoStore.Genres())
}

func (s *Server) handleDemoListContent(w http.ResponseWriter, r *http.Request) {
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
	s.writeJSON(w, http.StatusOK, s.demoStore.List(profileID, status, filters))
}

func (s *Server) handleDemoTopContent(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(r.PathValue("profileId"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}
	s.writeJSON(w, http.StatusOK, s.demoStore.Top(profileID))
}

func (s *Server) handleDemoCreateContent(w http.ResponseWriter, r *http.Request) {
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
	s.writeJSON(w, http.StatusCreated, s.demoStore.Create(&req))
}

func (s *Server) handleDemoUpdateContent(w http.ResponseWriter, r *http.Request) {
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

	updated, err := s.demoStore.Update(id, &req)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "content not found")
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDemoMarkWatched(w http.ResponseWriter, r *http.Request) {
	s.handleDemoStatusChange(w, r, s.demoStore.MarkWatched, "content marked as watched")
}

func (s *Server) handleDemoMarkPending(w http.ResponseWriter, r *http.Request) {
	s.handleDemoStatusChange(w, r, s.demoStore.MarkPending, "content marked as pending")
}

func (s *Server) handleDemoStatusChange(w http.ResponseWriter, r *http.Request, change func(uuid.UUID) error, message string) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid content id")
		return
	}
	if err := change(id); err != nil {
		s.writeError(w, http.StatusNotFound, "content not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleDemoDeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid content id")
		return
	}
	if err := s.demoStore.Delete(id); err != nil {
		s.writeError(w, http.StatusNotFound, "content not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "content deleted"})
}
