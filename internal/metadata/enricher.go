package metadata

import (
	"log"

	"movieflix/internal/models"
)

// Enricher combines both providers into one normalized lookup with a
// fixed fallback order: TMDb first, OMDb when TMDb has no candidate.
// Provider failures degrade to "no data"; the caller must handle a nil
// result.
type Enricher struct {
	tmdb        *TMDBClient
	omdb        *OMDBClient
	altLanguage string
}

func NewEnricher(tmdb *TMDBClient, omdb *OMDBClient, altLanguage string) *Enricher {
	return &Enricher{tmdb: tmdb, omdb: omdb, altLanguage: altLanguage}
}

func (e *Enricher) TMDBConfigured() bool { return e.tmdb.Configured() }
func (e *Enricher) OMDBConfigured() bool { return e.omdb.Configured() }

// Lookup resolves (title, year, type) to a normalized attribute bundle,
// or nil when neither provider yields anything.
func (e *Enricher) Lookup(title string, year *int, t models.ContentType) *models.MetadataResult {
	if e.tmdb.Configured() {
		if res := e.fromTMDB(title, year, t); res != nil {
			return res
		}
	}
	if e.omdb.Configured() {
		if res := e.fromOMDB(title, year, t); res != nil {
			return res
		}
	}
	return nil
}

func (e *Enricher) fromTMDB(title string, year *int, t models.ContentType) *models.MetadataResult {
	candidates, err := e.tmdb.Search(t, title, year, e.tmdb.language)
	if err != nil {
		log.Printf("[metadata] TMDb search failed: %v", err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	details, err := e.tmdb.Details(t, candidates[0].ID, e.tmdb.language)
	if err != nil {
		log.Printf("[metadata] TMDb details failed: %v", err)
		return nil
	}

	localTitle := details.displayTitle()
	if localTitle == "" {
		localTitle = title
	}

	// Alternate-language title is best effort; fall back to the localized one.
	altTitle := localTitle
	if alt, err := e.tmdb.Details(t, details.ID, e.altLanguage); err == nil {
		if s := alt.displayTitle(); s != "" {
			altTitle = s
		}
	} else {
		log.Printf("[metadata] TMDb %s title unavailable: %v", e.altLanguage, err)
	}

	genres := make([]string, 0, len(details.Genres))
	for _, g := range details.Genres {
		genres = append(genres, g.Name)
	}

	res := &models.MetadataResult{
		Title:   localTitle,
		TitleEn: altTitle,
		Year:    details.releaseYear(),
		Runtime: details.runtimeMinutes(),
		Genres:  genres,
		Type:    t,
		Source:  "tmdb",
	}
	if details.VoteAverage > 0 {
		rating := float64(int(details.VoteAverage*10)) / 10
		res.Rating = &rating
	}
	if details.Overview != "" {
		overview := details.Overview
		res.Overview = &overview
	}
	if details.PosterPath != "" {
		poster := tmdbPosterBase + details.PosterPath
		res.PosterPath = &poster
	}
	if details.BackdropPath != "" {
		backdrop := tmdbBackdropBase + details.BackdropPath
		res.BackdropPath = &backdrop
	}
	if details.ExternalIDs.IMDbID != "" {
		imdbID := details.ExternalIDs.IMDbID
		res.IMDbID = &imdbID
	}
	tmdbID := details.ID
	res.TMDbID = &tmdbID
	return res
}

func (e *Enricher) fromOMDB(title string, year *int, t models.ContentType) *models.MetadataResult {
	r, err := e.omdb.ByTitle(title, year, t)
	if err != nil {
		log.Printf("[metadata] OMDb lookup failed: %v", err)
		return nil
	}
	if r == nil {
		return nil
	}

	res := &models.MetadataResult{
		Title:      r.Title,
		TitleEn:    r.Title,
		Year:       r.Year,
		Rating:     r.IMDbRating,
		Runtime:    r.Runtime,
		Genres:     r.Genres,
		Overview:   r.Overview,
		PosterPath: r.PosterPath,
		Type:       t,
		Source:     "omdb",
	}
	if r.IMDbID != "" {
		imdbID := r.IMDbID
		res.IMDbID = &imdbID
	}
	return res
}

// RatingLookup asks the secondary provider for a rating by title and
// optional year, with no type restriction.
func (e *Enricher) RatingLookup(title string, year *int) (*OMDBResult, error) {
	return e.omdb.ByTitle(title, year, "")
}

// BuildPatch merges a fresh lookup into an existing content row, producing
// a merge patch for the fields that gained data. An OMDb rating takes
// precedence over the TMDb one; every other field prefers the primary
// provider and keeps the stored value when the provider had nothing. The
// user's primary title is never touched. Returns nil when no provider
// yielded data.
func (e *Enricher) BuildPatch(c *models.Content) *models.UpdateContentRequest {
	res := e.Lookup(c.Title, c.Year, c.Type)
	if res == nil {
		return nil
	}

	// Rating refresh from the secondary provider, by IMDb ID when known.
	if res.Source == "tmdb" && e.omdb.Configured() {
		var omdbRes *OMDBResult
		var err error
		if res.IMDbID != nil {
			omdbRes, err = e.omdb.ByIMDbID(*res.IMDbID)
		} else {
			omdbRes, err = e.omdb.ByTitle(c.Title, c.Year, c.Type)
		}
		if err != nil {
			log.Printf("[metadata] OMDb rating refresh failed: %v", err)
		} else if omdbRes != nil && omdbRes.IMDbRating != nil {
			res.Rating = omdbRes.IMDbRating
		}
	}

	patch := &models.UpdateContentRequest{}
	changed := false

	if res.TitleEn != "" && (c.TitleEn == nil || *c.TitleEn != res.TitleEn) {
		titleEn := res.TitleEn
		patch.TitleEn = &titleEn
		changed = true
	}
	if res.Year != nil && c.Year == nil {
		patch.Year = res.Year
		changed = true
	}
	if res.Rating != nil && (c.Rating == nil || *c.Rating != *res.Rating) {
		patch.Rating = res.Rating
		changed = true
	}
	if res.Runtime != nil && c.Runtime == nil {
		patch.Runtime = res.Runtime
		changed = true
	}
	if len(res.Genres) > 0 && len(c.Genres) == 0 {
		genres := res.Genres
		patch.Genres = &genres
		changed = true
	}
	if res.Overview != nil && c.Overview == nil {
		patch.Overview = res.Overview
		changed = true
	}
	if res.PosterPath != nil && c.PosterPath == nil {
		patch.PosterPath = res.PosterPath
		changed = true
	}
	if res.BackdropPath != nil && c.BackdropPath == nil {
		patch.BackdropPath = res.BackdropPath
		changed = true
	}
	if res.IMDbID != nil && c.IMDbID == nil {
		patch.IMDbID = res.IMDbID
		changed = true
	}
	if res.TMDbID != nil && c.TMDbID == nil {
		patch.TMDbID = res.TMDbID
		changed = true
	}

	if !changed {
		return nil
	}
	return patch
}
