package api

import (
	"log"
	"net/http"
	"strconv"

	"movieflix/internal/metadata"
	"movieflix/internal/models"
)

func yearParam(r *http.Request) *int {
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			return &y
		}
	}
	return nil
}

// handleEnhancedSearch returns the full normalized metadata bundle for a
// title, or a soft error payload when neither provider knows it. Provider
// outages never fail this request.
func (s *Server) handleEnhancedSearch(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		s.writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	ctype := models.ContentType(r.URL.Query().Get("type"))
	if ctype == "" {
		ctype = models.ContentTypeMovie
	}
	if !ctype.Valid() {
		s.writeError(w, http.StatusBadRequest, "type must be movie or series")
		return
	}

	result := s.enricher.Lookup(title, yearParam(r), ctype)
	if result == nil {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"error":      "no information found for this title",
			"suggestion": "check the title or fill in the details manually",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if len(query) < metadata.MinSuggestionQuery {
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"results": []models.Suggestion{}})
		return
	}
	if !s.enricher.TMDBConfigured() {
		s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "TMDb API key not configured",
			"results": []models.Suggestion{},
		})
		return
	}

	results := s.enricher.Suggestions(query)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"results":       results,
		"query":         query,
		"total_results": len(results),
	})
}

type ratingResponse struct {
	Title      string   `json:"title"`
	Year       *int     `json:"year"`
	IMDbRating *float64 `json:"imdbRating"`
	IMDbID     *string  `json:"imdbID,omitempty"`
	Source     string   `json:"source"`
}

// handleRatingSearch answers from the database-backed cache when the
// entry is still fresh, otherwise asks OMDb and caches the answer. A
// failed cache write is logged and ignored.
func (s *Server) handleRatingSearch(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		s.writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	year := yearParam(r)

	if s.ratings != nil {
		cached, err := s.ratings.Lookup(title, year)
		if err != nil {
			log.Printf("[api] ratings cache lookup failed: %v", err)
		} else if cached != nil {
			s.writeJSON(w, http.StatusOK, ratingResponse{
				Title:      cached.Title,
				Year:       cached.Year,
				IMDbRating: cached.IMDbRating,
				Source:     "cache",
			})
			return
		}
	}

	if s.enricher.OMDBConfigured() {
		result, err := s.enricher.RatingLookup(title, year)
		if err != nil {
			log.Printf("[api] OMDb rating lookup failed: %v", err)
		} else if result != nil {
			if s.ratings != nil {
				if err := s.ratings.Store(result.Title, result.Year, result.IMDbRating, &result.IMDbID); err != nil {
					log.Printf("[api] ratings cache store failed: %v", err)
				}
			}
			imdbID := result.IMDbID
			s.writeJSON(w, http.StatusOK, ratingResponse{
				Title:      result.Title,
				Year:       result.Year,
				IMDbRating: result.IMDbRating,
				IMDbID:     &imdbID,
				Source:     "omdb",
			})
			return
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"error":      "no rating found for this title",
		"suggestion": "check the title or set the rating manually",
	})
}
