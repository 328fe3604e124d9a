package repository

import (
	"database/sql"

	"movieflix/internal/models"
)

// ReferenceRepository reads the shared platform and genre lists. Both are
// seeded by migration and never written by the service.
type ReferenceRepository struct {
	db *sql.DB
}

func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) Platforms() ([]models.Platform, error) {
	rows, err := r.db.Query(`
		SELECT id, name, icon, color, url, created_at
		FROM platforms ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Platform{}
	for rows.Next() {
		var p models.Platform
		if err := rows.Scan(&p.ID, &p.Name, &p.Icon, &p.Color, &p.URL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) Genres() ([]models.Genre, error) {
	rows, err := r.db.Query(`
		SELECT id, name, icon, created_at
		FROM genres ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Icon, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
