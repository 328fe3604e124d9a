package metadata

import (
	"log"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"movieflix/internal/models"
)

const (
	// MinSuggestionQuery is the shortest prefix worth querying for.
	MinSuggestionQuery = 3

	maxSuggestions     = 5
	suggestionsPerType = 3
)

// Suggestions queries the movie and series search endpoints concurrently
// and merges both candidate lists into one ranked result: entries whose
// title starts with the query (case-insensitive) sort first, everything
// else keeps provider order. A failing leg degrades to an empty list.
func (e *Enricher) Suggestions(query string) []models.Suggestion {
	if len(query) < MinSuggestionQuery || !e.tmdb.Configured() {
		return []models.Suggestion{}
	}

	var movies, series []tmdbSearchItem

	p := pool.New().WithMaxGoroutines(2)
	p.Go(func() {
		items, err := e.tmdb.Search(models.ContentTypeMovie, query, nil, e.tmdb.language)
		if err != nil {
			log.Printf("[metadata] suggestion movie search failed: %v", err)
			return
		}
		movies = items
	})
	p.Go(func() {
		items, err := e.tmdb.Search(models.ContentTypeSeries, query, nil, e.tmdb.language)
		if err != nil {
			log.Printf("[metadata] suggestion series search failed: %v", err)
			return
		}
		series = items
	})
	p.Wait()

	suggestions := make([]models.Suggestion, 0, 2*suggestionsPerType)
	for i, item := range movies {
		if i >= suggestionsPerType {
			break
		}
		suggestions = append(suggestions, toSuggestion(item, "movie"))
	}
	for i, item := range series {
		if i >= suggestionsPerType {
			break
		}
		suggestions = append(suggestions, toSuggestion(item, "tv"))
	}

	lowered := strings.ToLower(query)
	sort.SliceStable(suggestions, func(i, j int) bool {
		a := strings.HasPrefix(strings.ToLower(suggestions[i].Title), lowered)
		b := strings.HasPrefix(strings.ToLower(suggestions[j].Title), lowered)
		return a && !b
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func toSuggestion(item tmdbSearchItem, mediaType string) models.Suggestion {
	s := models.Suggestion{
		ID:            item.ID,
		Title:         item.displayTitle(),
		OriginalTitle: item.originalTitle(),
		Year:          item.releaseYearString(),
		MediaType:     mediaType,
		Overview:      item.Overview,
		ReleaseDate:   item.releaseDate(),
	}
	if item.PosterPath != "" {
		poster := item.PosterPath
		s.PosterPath = &poster
	}
	if item.BackdropPath != "" {
		backdrop := item.BackdropPath
		s.BackdropPath = &backdrop
	}
	s.DisplayTitle = s.Title
	if s.Year != "" {
		s.DisplayTitle += " (" + s.Year + ")"
	}
	return s
}
