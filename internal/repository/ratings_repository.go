package repository

import (
	"database/sql"
	"fmt"

	"movieflix/internal/models"
)

// freshnessDays bounds how old a cached rating may be before the external
// provider is consulted again.
const freshnessDays = 30

// RatingsRepository is the database-backed cache for external rating
// lookups, keyed on (title, year).
type RatingsRepository struct {
	db *sql.DB
}

func NewRatingsRepository(db *sql.DB) *RatingsRepository {
	return &RatingsRepository{db: db}
}

// Lookup returns the cached entry for title (and year when given) if it is
// still inside the freshness window, or nil on a miss. Without a year the
// most recently cached entry for the title wins.
func (r *RatingsRepository) Lookup(title string, year *int) (*models.RatingsCacheEntry, error) {
	var row *sql.Row
	if year != nil {
		row = r.db.QueryRow(`
			SELECT id, title, year, imdb_rating, imdb_id, cached_at
			FROM movie_ratings_cache
			WHERE title = $1 AND year = $2
			  AND cached_at > NOW() - make_interval(days => $3)`,
			title, *year, freshnessDays)
	} else {
		row = r.db.QueryRow(`
			SELECT id, title, year, imdb_rating, imdb_id, cached_at
			FROM movie_ratings_cache
			WHERE title = $1
			  AND cached_at > NOW() - make_interval(days => $2)
			ORDER BY cached_at DESC
			LIMIT 1`,
			title, freshnessDays)
	}

	var e models.RatingsCacheEntry
	err := row.Scan(&e.ID, &e.Title, &e.Year, &e.IMDbRating, &e.IMDbID, &e.CachedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ratings cache lookup: %w", err)
	}
	return &e, nil
}

// Store upserts a rating keyed on (title, year), refreshing cached_at on
// conflict. Callers treat failures as non-fatal.
func (r *RatingsRepository) Store(title string, year *int, rating *float64, imdbID *string) error {
	_, err := r.db.Exec(`
		INSERT INTO movie_ratings_cache (title, year, imdb_rating, imdb_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (title, year)
		DO UPDATE SET imdb_rating = EXCLUDED.imdb_rating, cached_at = NOW()`,
		title, year, rating, imdbID)
	if err != nil {
		return fmt.Errorf("ratings cache store: %w", err)
	}
	return nil
}
