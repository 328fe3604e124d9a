package api

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"movieflix/internal/config"
	"movieflix/internal/demo"
	"movieflix/internal/metadata"
	"movieflix/internal/repository"
)

type Server struct {
	cfg       *config.Config
	db        *sql.DB
	profiles  *repository.ProfileRepository
	content   *repository.ContentRepository
	reference *repository.ReferenceRepository
	ratings   *repository.RatingsRepository
	enricher  *metadata.Enricher
	limiter   *RateLimiter
	hub       *Hub

	demoStore    *demo.Store
	demoCodeHash []byte

	router  *http.ServeMux
	handler http.Handler
}

// NewServer wires repositories, metadata clients and middleware. In demo
// mode database may be nil; everything is served from the in-memory store.
func NewServer(cfg *config.Config, database *sql.DB) *Server {
	s := &Server{
		cfg:      cfg,
		db:       database,
		enricher: metadata.NewEnricher(
			metadata.NewTMDBClient(cfg.TMDBAPIKey, cfg.TMDBLanguage),
			metadata.NewOMDBClient(cfg.OMDBAPIKey),
			cfg.TMDBAltLanguage,
		),
		hub:    NewHub(),
		router: http.NewServeMux(),
	}

	if cfg.DemoMode {
		s.demoStore = demo.NewStore()
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoCode), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[api] demo code hash failed: %v", err)
		}
		s.demoCodeHash = hash
		s.limiter = NewRateLimiter(200, cfg.RateLimitWindow)
		log.Println("[api] demo mode enabled, data is in-memory only")
	} else {
		s.profiles = repository.NewProfileRepository(database)
		s.content = repository.NewContentRepository(database)
		s.reference = repository.NewReferenceRepository(database)
		s.ratings = repository.NewRatingsRepository(database)
		s.limiter = NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	s.routes()
	s.handler = s.cors(s.securityHeaders(s.rateLimit(s.router)))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close releases middleware state. The HTTP server itself is shut down by
// the caller.
func (s *Server) Close() {
	s.limiter.Close()
	s.hub.CloseAll()
}

func (s *Server) routes() {
	s.router.HandleFunc("GET /api/health", s.handleHealth)
	s.router.HandleFunc("GET /api/ws", s.handleWebSocket)

	s.router.HandleFunc("GET /api/search/enhanced", s.handleEnhancedSearch)
	s.router.HandleFunc("GET /api/search/suggestions", s.handleSuggestions)
	s.router.HandleFunc("GET /api/search", s.handleRatingSearch)

	if s.cfg.DemoMode {
		s.router.HandleFunc("POST /api/demo/auth", s.handleDemoAuth)

		s.router.HandleFunc("GET /api/profiles", s.handleDemoListProfiles)
		s.router.HandleFunc("POST /api/profiles", s.requireDemoToken(s.handleDemoCreateProfile))
		s.router.HandleFunc("DELETE /api/profiles/{id}", s.requireDemoToken(s.handleDemoDeleteProfile))
		s.router.HandleFunc("GET /api/platforms", s.handleDemoPlatforms)
		s.router.HandleFunc("GET /api/genres", s.handleDemoGenres)
		s.router.HandleFunc("GET /api/content/{profileId}", s.handleDemoListContent)
		s.router.HandleFunc("GET /api/content/{profileId}/top", s.handleDemoTopContent)
		s.router.HandleFunc("POST /api/content", s.requireDemoToken(s.handleDemoCreateContent))
		s.router.HandleFunc("PUT /api/content/{id}", s.requireDemoToken(s.handleDemoUpdateContent))
		s.router.HandleFunc("PATCH /api/content/{id}/watch", s.requireDemoToken(s.handleDemoMarkWatched))
		s.router.HandleFunc("PATCH /api/content/{id}/unwatch", s.requireDemoToken(s.handleDemoMarkPending))
		s.router.HandleFunc("DELETE /api/content/{id}", s.requireDemoToken(s.handleDemoDeleteContent))
	} else {
		s.router.HandleFunc("GET /api/profiles", s.handleListProfiles)
		s.router.HandleFunc("POST /api/profiles", s.handleCreateProfile)
		s.router.HandleFunc("DELETE /api/profiles/{id}", s.handleDeleteProfile)
		s.router.HandleFunc("GET /api/platforms", s.handleListPlatforms)
		s.router.HandleFunc("GET /api/genres", s.handleListGenres)
		s.router.HandleFunc("GET /api/content/{profileId}", s.handleListContent)
		s.router.HandleFunc("GET /api/content/{profileId}/top", s.handleTopContent)
		s.router.HandleFunc("POST /api/content", s.handleCreateContent)
		s.router.HandleFunc("PUT /api/content/{id}", s.handleUpdateContent)
		s.router.HandleFunc("PATCH /api/content/{id}/watch", s.handleMarkWatched)
		s.router.HandleFunc("PATCH /api/content/{id}/unwatch", s.handleMarkPending)
		s.router.HandleFunc("DELETE /api/content/{id}", s.handleDeleteContent)
	}

	s.router.HandleFunc("/", s.handleNotFound)
}

// ──────────────────── responses ────────────────────

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeServerError hides failure detail from clients unless the service
// runs in development mode.
func (s *Server) writeServerError(w http.ResponseWriter, err error) {
	log.Printf("[api] internal error: %v", err)
	body := map[string]string{"error": "internal server error"}
	if s.cfg.Development() {
		body["detail"] = err.Error()
	}
	s.writeJSON(w, http.StatusInternalServerError, body)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, http.StatusNotFound, "endpoint not found")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.cfg.DemoMode {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"status":   "OK",
			"database": "demo",
		})
		return
	}
	if err := s.db.Ping(); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "ERROR",
			"database": "Disconnected",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "OK",
		"database": "Connected",
	})
}
