package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencePlatforms(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM platforms ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "icon", "color", "url", "created_at"}).
			AddRow(uuid.New(), "HBO Max", "🎭", "#991EEB", nil, now).
			AddRow(uuid.New(), "Netflix", "📺", "#E50914", nil, now))

	out, err := NewReferenceRepository(db).Platforms()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "HBO Max", out[0].Name)
	assert.Equal(t, "#E50914", out[1].Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceGenres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM genres ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "icon", "created_at"}).
			AddRow(uuid.New(), "Drama", "🎭", time.Now()))

	out, err := NewReferenceRepository(db).Genres()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Drama", out[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
