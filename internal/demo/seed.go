package demo

import (
	"time"

	"github.com/google/uuid"

	"movieflix/internal/models"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func strPtr(s string) *string      { return &s }
func intPtr(i int) *int            { return &i }
func ratingPtr(f float64) *float64 { return &f }

// seed loads a small but complete catalog so the demo is browsable the
// moment it starts.
func (s *Store) seed() {
	s.profiles = []models.Profile{
		{ID: uuid.New(), Name: "Demo User", Emoji: "👤", CreatedAt: date("2024-01-15"), UpdatedAt: date("2024-01-15")},
		{ID: uuid.New(), Name: "Familia", Emoji: "👨‍👩‍👧‍👦", CreatedAt: date("2024-02-01"), UpdatedAt: date("2024-02-01")},
		{ID: uuid.New(), Name: "Niños", Emoji: "🧒", CreatedAt: date("2024-02-15"), UpdatedAt: date("2024-02-15")},
	}

	s.platforms = []models.Platform{
		{ID: uuid.New(), Name: "Netflix", Icon: "📺", Color: "#E50914", URL: strPtr("https://netflix.com"), CreatedAt: date("2024-01-01")},
		{ID: uuid.New(), Name: "HBO Max", Icon: "🏛️", Color: "#9B59B6", URL: strPtr("https://hbomax.com"), CreatedAt: date("2024-01-01")},
		{ID: uuid.New(), Name: "Disney+", Icon: "🏰", Color: "#113CCF", URL: strPtr("https://disneyplus.com"), CreatedAt: date("2024-01-01")},
		{ID: uuid.New(), Name: "Prime Video", Icon: "📦", Color: "#00A8E1", URL: strPtr("https://primevideo.com"), CreatedAt: date("2024-01-01")},
		{ID: uuid.New(), Name: "Apple TV+", Icon: "🍎", Color: "#000000", URL: strPtr("https://tv.apple.com"), CreatedAt: date("2024-01-01")},
	}

	s.genres = []models.Genre{
		{ID: uuid.New(), Name: "Action", Icon: "💥", CreatedAt: date("2024-01-01")},
		{ID: uuid.New(), Name: "Adventure", Icon: "🗺️", CreatedAt: date("2024-01-01")},
		{ID: uuid.New(), Name: "Crime", Icon: "🔫", CreatedAt: date("2024-01-01")},
		{ID: uuid.New(), Name: "Drama", Icon: "🎭", CreatedAt: date("2024-01-01")},
		{ID: uuid.New(), Name: "Sci-Fi", Icon: "🚀", CreatedAt: date("2024-01-01")},
		{ID: uuid.New(), Name: "Thriller", Icon: "⚡", CreatedAt: date("2024-01-01")},
	}

	demoUser := s.profiles[0].ID
	familia := s.profiles[1].ID
	ninos := s.profiles[2].ID
	netflix := s.platforms[0].ID
	hbo := s.platforms[1].ID
	disney := s.platforms[2].ID

	watched1 := date("2024-03-05")
	watched2 := date("2024-03-10")
	watched3 := date("2024-03-15")

	s.content = []models.Content{
		{
			ID: uuid.New(), Title: "Inception", Year: intPtr(2010), Type: models.ContentTypeMovie,
			Rating: ratingPtr(8.8), Genres: []string{"Sci-Fi", "Thriller", "Drama"},
			PosterPath: strPtr("https://image.tmdb.org/t/p/w500/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg"),
			PlatformID: &netflix, ProfileID: demoUser, Status: models.StatusWatched,
			WatchedAt: &watched1, CreatedAt: date("2024-03-01"), UpdatedAt: date("2024-03-05"),
		},
		{
			ID: uuid.New(), Title: "The Dark Knight", Year: intPtr(2008), Type: models.ContentTypeMovie,
			Rating: ratingPtr(9.0), Genres: []string{"Action", "Crime", "Drama"},
			PosterPath: strPtr("https://image.tmdb.org/t/p/w500/qJ2tW6WMUDux911r6m7haRef0WH.jpg"),
			PlatformID: &hbo, ProfileID: demoUser, Status: models.StatusWatched,
			WatchedAt: &watched2, CreatedAt: date("2024-03-02"), UpdatedAt: date("2024-03-10"),
		},
		{
			ID: uuid.New(), Title: "Interstellar", Year: intPtr(2014), Type: models.ContentTypeMovie,
			Rating: ratingPtr(8.6), Genres: []string{"Sci-Fi", "Drama", "Adventure"},
			PosterPath: strPtr("https://image.tmdb.org/t/p/w500/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg"),
			PlatformID: &netflix, ProfileID: demoUser, Status: models.StatusPending,
			CreatedAt: date("2024-03-03"), UpdatedAt: date("2024-03-03"),
		},
		{
			ID: uuid.New(), Title: "Breaking Bad", Year: intPtr(2008), Type: models.ContentTypeSeries,
			Rating: ratingPtr(9.5), Seasons: intPtr(5), Episodes: intPtr(62),
			Genres: []string{"Crime", "Drama", "Thriller"},
			PosterPath: strPtr("https://image.tmdb.org/t/p/w500/ggFHVNu6YYI5L9pCfOacjizRGt.jpg"),
			PlatformID: &netflix, ProfileID: familia, Status: models.StatusWatched,
			WatchedAt: &watched3, CreatedAt: date("2024-02-20"), UpdatedAt: date("2024-03-15"),
		},
		{
			ID: uuid.New(), Title: "The Mandalorian", Year: intPtr(2019), Type: models.ContentTypeSeries,
			Rating: ratingPtr(8.7), Seasons: intPtr(3), Episodes: intPtr(24),
			Genres: []string{"Sci-Fi", "Adventure", "Action"},
			PosterPath: strPtr("https://image.tmdb.org/t/p/w500/sWgBv7LV2PRoQgkxwlibdGXKz1S.jpg"),
			PlatformID: &disney, ProfileID: ninos, Status: models.StatusPending,
			CreatedAt: date("2024-03-05"), UpdatedAt: date("2024-03-05"),
		},
		{
			ID: uuid.New(), Title: "Dune", Year: intPtr(2021), Type: models.ContentTypeMovie,
			Rating: ratingPtr(8.1), Genres: []string{"Sci-Fi", "Adventure", "Drama"},
			PosterPath: strPtr("https://image.tmdb.org/t/p/w500/d5NXSklXo0qyIYkgV94XAgMIckC.jpg"),
			PlatformID: &hbo, ProfileID: demoUser, Status: models.StatusPending,
			CreatedAt: date("2024-03-07"), UpdatedAt: date("2024-03-07"),
		},
	}

	for i := range s.content {
		s.attachPlatform(&s.content[i])
	}
}
