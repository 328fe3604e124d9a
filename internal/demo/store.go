// Package demo holds the in-memory dataset served when the service runs
// in demonstration mode. Nothing here persists; the store resets on every
// restart.
package demo

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"movieflix/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("name already exists")
)

// Store is a mutex-guarded snapshot of profiles, reference data and
// content, mirroring the relational surface closely enough that the demo
// handlers behave like the real ones.
type Store struct {
	mu        sync.Mutex
	profiles  []models.Profile
	platforms []models.Platform
	genres    []models.Genre
	content   []models.Content
}

func NewStore() *Store {
	s := &Store{}
	s.seed()
	return s
}

// Sanitize bounds demo input: strings are truncated and angle brackets
// stripped so nothing script-like survives into responses.
func Sanitize(s string) string {
	if len(s) > 100 {
		s = s[:100]
	}
	s = strings.ReplaceAll(s, "<", "")
	return strings.ReplaceAll(s, ">", "")
}

// ──────────────────── Profiles ────────────────────

func (s *Store) Profiles() []models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

func (s *Store) CreateProfile(name, emoji string) (*models.Profile, error) {
	name = Sanitize(strings.TrimSpace(name))
	if emoji == "" {
		emoji = "👤"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if strings.EqualFold(p.Name, name) {
			return nil, ErrDuplicateName
		}
	}
	p := models.Profile{
		ID:        uuid.New(),
		Name:      name,
		Emoji:     emoji,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.profiles = append(s.profiles, p)
	return &p, nil
}

func (s *Store) DeleteProfile(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.profiles {
		if p.ID == id {
			s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
			// Cascade, same as the real foreign key.
			kept := s.content[:0]
			for _, c := range s.content {
				if c.ProfileID != id {
					kept = append(kept, c)
				}
			}
			s.content = kept
			return nil
		}
	}
	return ErrNotFound
}

// ──────────────────── Reference data ────────────────────

func (s *Store) Platforms() []models.Platform {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Platform, len(s.platforms))
	copy(out, s.platforms)
	return out
}

func (s *Store) Genres() []models.Genre {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Genre, len(s.genres))
	copy(out, s.genres)
	return out
}

// ──────────────────── Content ────────────────────

func (s *Store) List(profileID uuid.UUID, status models.ContentStatus, f models.ContentFilters) []models.Content {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Content{}
	for _, c := range s.content {
		if c.ProfileID != profileID || c.Status != status {
			continue
		}
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		if f.Platform != nil && (c.PlatformID == nil || *c.PlatformID != *f.Platform) {
			continue
		}
		if f.Genre != "" && !containsGenre(c.Genres, f.Genre) {
			continue
		}
		if f.Search != "" && !matchesSearch(&c, f.Search) {
			continue
		}
		out = append(out, c)
	}
	sortByRating(out)
	return out
}

func (s *Store) Top(profileID uuid.UUID) *models.TopContent {
	s.mu.Lock()
	defer s.mu.Unlock()

	top := &models.TopContent{Movies: []models.Content{}, Series: []models.Content{}}
	for _, c := range s.content {
		if c.ProfileID != profileID || c.Status != models.StatusPending {
			continue
		}
		if c.Rating == nil || *c.Rating <= 0 {
			continue
		}
		if c.Type == models.ContentTypeMovie {
			top.Movies = append(top.Movies, c)
		} else {
			top.Series = append(top.Series, c)
		}
	}
	sortByRating(top.Movies)
	sortByRating(top.Series)
	if len(top.Movies) > 3 {
		top.Movies = top.Movies[:3]
	}
	if len(top.Series) > 3 {
		top.Series = top.Series[:3]
	}
	return top
}

func (s *Store) Create(req *models.CreateContentRequest) *models.Content {
	genres := req.Genres
	if genres == nil {
		genres = []string{}
	}

	c := models.Content{
		ID:           uuid.New(),
		Title:        Sanitize(req.Title),
		TitleEn:      req.TitleEn,
		Year:         req.Year,
		Type:         req.Type,
		Rating:       req.Rating,
		Runtime:      req.Runtime,
		Seasons:      req.Seasons,
		Episodes:     req.Episodes,
		Genres:       genres,
		Overview:     req.Overview,
		PosterPath:   req.PosterPath,
		BackdropPath: req.BackdropPath,
		IMDbID:       req.IMDbID,
		TMDbID:       req.TMDbID,
		PlatformID:   req.PlatformID,
		ProfileID:    req.ProfileID,
		Status:       models.StatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachPlatform(&c)
	s.content = append(s.content, c)
	return &c
}

func (s *Store) Update(id uuid.UUID, req *models.UpdateContentRequest) (*models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return nil, ErrNotFound
	}

	if req.Title != nil {
		c.Title = Sanitize(*req.Title)
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
	if req.TitleEn != nil {
		c.TitleEn = req.TitleEn
	}
	if req.Year != nil {
		c.Year = req.Year
	}
	if req.Rating != nil {
		c.Rating = req.Rating
	}
	if req.Runtime != nil {
		c.Runtime = req.Runtime
	}
	if req.Seasons != nil {
		c.Seasons = req.Seasons
	}
	if req.Episodes != nil {
		c.Episodes = req.Episodes
	}
	if req.Genres != nil {
		c.Genres = *req.Genres
	}
	if req.Overview != nil {
		c.Overview = req.Overview
	}
	if req.PosterPath != nil {
		c.PosterPath = req.PosterPath
	}
	if req.BackdropPath != nil {
		c.BackdropPath = req.BackdropPath
	}
	if req.IMDbID != nil {
		c.IMDbID = req.IMDbID
	}
	if req.TMDbID != nil {
		c.TMDbID = req.TMDbID
	}
	if req.PlatformID != nil {
		c.PlatformID = req.PlatformID
	}
	c.UpdatedAt = time.Now()
	s.attachPlatform(c)

	out := *c
	return &out, nil
}

func (s *Store) MarkWatched(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.find(id)
	if c == nil {
		return ErrNotFound
	}
	now := time.Now()
	c.Status = models.StatusWatched
	c.WatchedAt = &now
	c.UpdatedAt = now
	return nil
}

func (s *Store) MarkPending(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.find(id)
	if c == nil {
		return ErrNotFound
	}
	c.Status = models.StatusPending
	c.WatchedAt = nil
	c.UpdatedAt = time.Now()
	return nil
}

func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.content {
		if c.ID == id {
			s.content = append(s.content[:i], s.content[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ──────────────────── internals ────────────────────

func (s *Store) find(id uuid.UUID) *models.Content {
	for i := range s.content {
		if s.content[i].ID == id {
			return &s.content[i]
		}
	}
	return nil
}

func (s *Store) attachPlatform(c *models.Content) {
	c.PlatformName, c.PlatformColor, c.PlatformIcon = nil, nil, nil
	if c.PlatformID == nil {
		return
	}
	for i := range s.platforms {
		if s.platforms[i].ID == *c.PlatformID {
			c.PlatformName = &s.platforms[i].Name
			c.PlatformColor = &s.platforms[i].Color
			c.PlatformIcon = &s.platforms[i].Icon
			return
		}
	}
}

func containsGenre(genres []string, want string) bool {
	for _, g := range genres {
		if g == want {
			return true
		}
	}
	return false
}

func matchesSearch(c *models.Content, search string) bool {
	search = strings.ToLower(search)
	if strings.Contains(strings.ToLower(c.Title), search) {
		return true
	}
	return c.TitleEn != nil && strings.Contains(strings.ToLower(*c.TitleEn), search)
}

func sortByRating(items []models.Content) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := 0.0, 0.0
		if items[i].Rating != nil {
			ri = *items[i].Rating
		}
		if items[j].Rating != nil {
			rj = *items[j].Rating
		}
		if ri != rj {
			return ri > rj
		}
		return items[i].Title < items[j].Title
	})
}
