package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"movieflix/internal/models"
)

type ContentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentSelect = `
	SELECT c.id, c.title, c.title_en, c.year, c.type, c.rating, c.runtime,
	       c.seasons, c.episodes, c.genres, c.overview, c.poster_path,
	       c.backdrop_path, c.imdb_id, c.tmdb_id, c.platform_id, c.profile_id,
	       c.status, c.watched_at, c.created_at, c.updated_at,
	       p.name AS platform_name, p.color AS platform_color, p.icon AS platform_icon
	FROM content c
	LEFT JOIN platforms p ON c.platform_id = p.id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContent(row rowScanner) (*models.Content, error) {
	var c models.Content
	var genres pq.StringArray
	err := row.Scan(
		&c.ID, &c.Title, &c.TitleEn, &c.Year, &c.Type, &c.Rating, &c.Runtime,
		&c.Seasons, &c.Episodes, &genres, &c.Overview, &c.PosterPath,
		&c.BackdropPath, &c.IMDbID, &c.TMDbID, &c.PlatformID, &c.ProfileID,
		&c.Status, &c.WatchedAt, &c.CreatedAt, &c.UpdatedAt,
		&c.PlatformName, &c.PlatformColor, &c.PlatformIcon,
	)
	if err != nil {
		return nil, err
	}
	c.Genres = []string(genres)
	if c.Genres == nil {
		c.Genres = []string{}
	}
	return &c, nil
}

// List returns a profile's content for one status, all filters ANDed
// together. Genre filtering is a membership test against the stored list,
// search is a case-insensitive substring match on either title.
func (r *ContentRepository) List(profileID uuid.UUID, status models.ContentStatus, f models.ContentFilters) ([]models.Content, error) {
	query := contentSelect + " WHERE c.profile_id = $1 AND c.status = $2"
	args := []interface{}{profileID, status}

	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND c.type = $%d", len(args))
	}
	if f.Platform != nil {
		args = append(args, *f.Platform)
		query += fmt.Sprintf(" AND c.platform_id = $%d", len(args))
	}
	if f.Genre != "" {
		args = append(args, f.Genre)
		query += fmt.Sprintf(" AND $%d = ANY(c.genres)", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (c.title ILIKE $%d OR c.title_en ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY c.rating DESC NULLS LAST, c.title ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Top returns up to three highest-rated pending movies and series each,
// skipping unrated entries.
func (r *ContentRepository) Top(profileID uuid.UUID) (*models.TopContent, error) {
	top := &models.TopContent{Movies: []models.Content{}, Series: []models.Content{}}

	for _, ct := range []models.ContentType{models.ContentTypeMovie, models.ContentTypeSeries} {
		rows, err := r.db.Query(contentSelect+`
			WHERE c.profile_id = $1 AND c.status = 'pending' AND c.type = $2 AND c.rating > 0
			ORDER BY c.rating DESC
			LIMIT 3`, profileID, ct)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			c, err := scanContent(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			if ct == models.ContentTypeMovie {
				top.Movies = append(top.Movies, *c)
			} else {
				top.Series = append(top.Series, *c)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return top, nil
}

// Get returns one content row joined with its platform attributes.
func (r *ContentRepository) Get(id uuid.UUID) (*models.Content, error) {
	c, err := scanContent(r.db.QueryRow(contentSelect+" WHERE c.id = $1", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

// Create inserts a row and reads it back joined with platform attributes
// inside one transaction. Status always starts as pending, whatever the
// payload said.
func (r *ContentRepository) Create(req *models.CreateContentRequest) (*models.Content, error) {
	genres := req.Genres
	if genres == nil {
		genres = []string{}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO content (
			title, title_en, year, type, rating, runtime, seasons, episodes,
			genres, overview, poster_path, backdrop_path, imdb_id, tmdb_id,
			platform_id, profile_id, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 'pending')
		RETURNING id`,
		req.Title, req.TitleEn, req.Year, req.Type, req.Rating, req.Runtime,
		req.Seasons, req.Episodes, pq.Array(genres), req.Overview,
		req.PosterPath, req.BackdropPath, req.IMDbID, req.TMDbID,
		req.PlatformID, req.ProfileID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}

	c, err := scanContent(tx.QueryRow(contentSelect+" WHERE c.id = $1", id))
	if err != nil {
		return nil, fmt.Errorf("read back content: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies a merge patch: nil request fields keep their stored
// values. The read-merge-write runs in one transaction so a concurrent
// update cannot interleave.
func (r *ContentRepository) Update(id uuid.UUID, req *models.UpdateContentRequest) (*models.Content, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cur, err := scanContent(tx.QueryRow(contentSelect+" WHERE c.id = $1 FOR UPDATE OF c", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		cur.Title = *req.Title
	}
	if req.Type != nil {
		cur.Type = *req.Type
	}
	if req.TitleEn != nil {
		cur.TitleEn = req.TitleEn
	}
	if req.Year != nil {
		cur.Year = req.Year
	}
	if req.Rating != nil {
		cur.Rating = req.Rating
	}
	if req.Runtime != nil {
		cur.Runtime = req.Runtime
	}
	if req.Seasons != nil {
		cur.Seasons = req.Seasons
	}
	if req.Episodes != nil {
		cur.Episodes = req.Episodes
	}
	if req.Genres != nil {
		cur.Genres = *req.Genres
	}
	if req.Overview != nil {
		cur.Overview = req.Overview
	}
	if req.PosterPath != nil {
		cur.PosterPath = req.PosterPath
	}
	if req.BackdropPath != nil {
		cur.BackdropPath = req.BackdropPath
	}
	if req.IMDbID != nil {
		cur.IMDbID = req.IMDbID
	}
	if req.TMDbID != nil {
		cur.TMDbID = req.TMDbID
	}
	if req.PlatformID != nil {
		cur.PlatformID = req.PlatformID
	}

	_, err = tx.Exec(`
		UPDATE content
		SET title = $2, title_en = $3, year = $4, type = $5, rating = $6,
		    runtime = $7, seasons = $8, episodes = $9, genres = $10,
		    overview = $11, poster_path = $12, backdrop_path = $13,
		    imdb_id = $14, tmdb_id = $15, platform_id = $16, updated_at = NOW()
		WHERE id = $1`,
		id, cur.Title, cur.TitleEn, cur.Year, cur.Type, cur.Rating,
		cur.Runtime, cur.Seasons, cur.Episodes, pq.Array(cur.Genres),
		cur.Overview, cur.PosterPath, cur.BackdropPath, cur.IMDbID,
		cur.TMDbID, cur.PlatformID,
	)
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}

	c, err := scanContent(tx.QueryRow(contentSelect+" WHERE c.id = $1", id))
	if err != nil {
		return nil, fmt.Errorf("read back content: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// MarkWatched is idempotent on status; watched_at is refreshed on every
// call.
func (r *ContentRepository) MarkWatched(id uuid.UUID) error {
	return r.setStatus(id, `
		UPDATE content
		SET status = 'watched', watched_at = NOW(), updated_at = NOW()
		WHERE id = $1`)
}

// MarkPending reverses a watched transition and clears watched_at.
func (r *ContentRepository) MarkPending(id uuid.UUID) error {
	return r.setStatus(id, `
		UPDATE content
		SET status = 'pending', watched_at = NULL, updated_at = NOW()
		WHERE id = $1`)
}

func (r *ContentRepository) setStatus(id uuid.UUID, query string) error {
	res, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContentRepository) Delete(id uuid.UUID) error {
	res, err := r.db.Exec("DELETE FROM content WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListIncomplete returns rows missing enrichable metadata, oldest first.
// Used by the one-shot refresh utility.
func (r *ContentRepository) ListIncomplete(limit int) ([]models.Content, error) {
	rows, err := r.db.Query(contentSelect+`
		WHERE c.overview IS NULL OR c.poster_path IS NULL
		   OR c.rating IS NULL OR c.imdb_id IS NULL
		ORDER BY c.created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
