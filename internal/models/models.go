package models

import (
	"time"

	"github.com/google/uuid"
)

// ──────────────────── Enums ────────────────────

type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

func (t ContentType) Valid() bool {
	return t == ContentTypeMovie || t == ContentTypeSeries
}

type ContentStatus string

const (
	StatusPending ContentStatus = "pending"
	StatusWatched ContentStatus = "watched"
)

func (s ContentStatus) Valid() bool {
	return s == StatusPending || s == StatusWatched
}

// ──────────────────── Profile ────────────────────

type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Emoji     string    `json:"emoji" db:"emoji"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ──────────────────── Reference data ────────────────────

type Platform struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Icon      string    `json:"icon" db:"icon"`
	Color     string    `json:"color" db:"color"`
	URL       *string   `json:"url,omitempty" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Genre struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Icon      string    `json:"icon" db:"icon"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ──────────────────── Content ────────────────────

// Content is a tracked movie or series. Genres is always a list of genre
// names on the wire; membership is what matters, order is not.
type Content struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Title        string        `json:"title" db:"title"`
	TitleEn      *string       `json:"title_en" db:"title_en"`
	Year         *int          `json:"year" db:"year"`
	Type         ContentType   `json:"type" db:"type"`
	Rating       *float64      `json:"rating" db:"rating"`
	Runtime      *int          `json:"runtime" db:"runtime"`
	Seasons      *int          `json:"seasons" db:"seasons"`
	Episodes     *int          `json:"episodes" db:"episodes"`
	Genres       []string      `json:"genres" db:"genres"`
	Overview     *string       `json:"overview" db:"overview"`
	PosterPath   *string       `json:"poster_path" db:"poster_path"`
	BackdropPath *string       `json:"backdrop_path" db:"backdrop_path"`
	IMDbID       *string       `json:"imdb_id" db:"imdb_id"`
	TMDbID       *int          `json:"tmdb_id" db:"tmdb_id"`
	PlatformID   *uuid.UUID    `json:"platform_id" db:"platform_id"`
	ProfileID    uuid.UUID     `json:"profile_id" db:"profile_id"`
	Status       ContentStatus `json:"status" db:"status"`
	WatchedAt    *time.Time    `json:"watched_at" db:"watched_at"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`

	// Joined platform display attributes, present when a platform is linked.
	PlatformName  *string `json:"platform_name,omitempty" db:"platform_name"`
	PlatformColor *string `json:"platform_color,omitempty" db:"platform_color"`
	PlatformIcon  *string `json:"platform_icon,omitempty" db:"platform_icon"`
}

// ContentFilters narrows a profile's content list. All set filters are
// combined with AND.
type ContentFilters struct {
	Type     ContentType
	Platform *uuid.UUID
	Genre    string
	Search   string
}

// TopContent holds the highest-rated pending entries per type.
type TopContent struct {
	Movies []Content `json:"movies"`
	Series []Content `json:"series"`
}

// ──────────────────── Requests ────────────────────

type CreateProfileRequest struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type CreateContentRequest struct {
	Title        string      `json:"title"`
	TitleEn      *string     `json:"title_en"`
	Year         *int        `json:"year"`
	Type         ContentType `json:"type"`
	Rating       *float64    `json:"rating"`
	Runtime      *int        `json:"runtime"`
	Seasons      *int        `json:"seasons"`
	Episodes     *int        `json:"episodes"`
	Genres       []string    `json:"genres"`
	Overview     *string     `json:"overview"`
	PosterPath   *string     `json:"poster_path"`
	BackdropPath *string     `json:"backdrop_path"`
	IMDbID       *string     `json:"imdb_id"`
	TMDbID       *int        `json:"tmdb_id"`
	PlatformID   *uuid.UUID  `json:"platform_id"`
	ProfileID    uuid.UUID   `json:"profile_id"`
}

// UpdateContentRequest is a merge patch: nil fields keep their stored
// values, set fields replace them. Title and Type must be non-empty when
// present.
type UpdateContentRequest struct {
	Title        *string      `json:"title"`
	TitleEn      *string      `json:"title_en"`
	Year         *int         `json:"year"`
	Type         *ContentType `json:"type"`
	Rating       *float64     `json:"rating"`
	Runtime      *int         `json:"runtime"`
	Seasons      *int         `json:"seasons"`
	Episodes     *int         `json:"episodes"`
	Genres       *[]string    `json:"genres"`
	Overview     *string      `json:"overview"`
	PosterPath   *string      `json:"poster_path"`
	BackdropPath *string      `json:"backdrop_path"`
	IMDbID       *string      `json:"imdb_id"`
	TMDbID       *int         `json:"tmdb_id"`
	PlatformID   *uuid.UUID   `json:"platform_id"`
}

// ──────────────────── Ratings cache ────────────────────

type RatingsCacheEntry struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Year       *int      `json:"year" db:"year"`
	IMDbRating *float64  `json:"imdb_rating" db:"imdb_rating"`
	IMDbID     *string   `json:"imdb_id" db:"imdb_id"`
	CachedAt   time.Time `json:"cached_at" db:"cached_at"`
}

// ──────────────────── Metadata ────────────────────

// MetadataResult is the normalized attribute bundle produced from either
// provider. Nil fields mean the provider had nothing for them.
type MetadataResult struct {
	Title        string      `json:"title"`
	TitleEn      string      `json:"title_en"`
	Year         *int        `json:"year"`
	Rating       *float64    `json:"rating"`
	Runtime      *int        `json:"runtime"`
	Genres       []string    `json:"genres"`
	Overview     *string     `json:"overview"`
	PosterPath   *string     `json:"poster_path"`
	BackdropPath *string     `json:"backdrop_path"`
	IMDbID       *string     `json:"imdb_id"`
	TMDbID       *int        `json:"tmdb_id"`
	Type         ContentType `json:"type"`
	Source       string      `json:"source"`
}

// Suggestion is one autocomplete candidate from the suggestion lookup.
type Suggestion struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Year          string  `json:"year"`
	MediaType     string  `json:"media_type"`
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	DisplayTitle  string  `json:"display_title"`
}
