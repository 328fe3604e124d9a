package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"movieflix/internal/models"
)

const defaultProfileEmoji = "🎬"

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) List() ([]models.Profile, error) {
	rows, err := r.db.Query(`
		SELECT id, name, emoji, created_at, updated_at
		FROM profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Emoji, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts a profile. The name is trimmed; an empty name is the
// caller's validation problem, a duplicate one maps to ErrDuplicateName.
func (r *ProfileRepository) Create(name, emoji string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if emoji == "" {
		emoji = defaultProfileEmoji
	}

	p := &models.Profile{Name: name, Emoji: emoji}
	err := r.db.QueryRow(`
		INSERT INTO profiles (name, emoji) VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		name, emoji,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// Delete removes a profile; owned content goes with it via the cascading
// foreign key.
func (r *ProfileRepository) Delete(id uuid.UUID) error {
	res, err := r.db.Exec("DELETE FROM profiles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
