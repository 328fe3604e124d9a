package metadata

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movieflix/internal/models"
)

func newTestOMDB(t *testing.T, handler http.HandlerFunc) *OMDBClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := NewOMDBClient("test-key")
	c.baseURL = server.URL
	return c
}

func TestOMDBByTitle_ParsesStringlyTypedFields(t *testing.T) {
	var gotQuery map[string]string
	c := newTestOMDB(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"t":    r.URL.Query().Get("t"),
			"y":    r.URL.Query().Get("y"),
			"type": r.URL.Query().Get("type"),
		}
		fmt.Fprint(w, `{
			"Response": "True",
			"Title": "Breaking Bad",
			"Year": "2008–2013",
			"imdbRating": "9.5",
			"Runtime": "49 min",
			"Genre": "Crime, Drama, Thriller",
			"Plot": "A chemistry teacher turns to crime.",
			"Poster": "https://example.com/bb.jpg",
			"imdbID": "tt0903747"
		}`)
	})

	year := 2008
	res, err := c.ByTitle("Breaking Bad", &year, models.ContentTypeSeries)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "Breaking Bad", gotQuery["t"])
	assert.Equal(t, "2008", gotQuery["y"])
	assert.Equal(t, "series", gotQuery["type"])

	assert.Equal(t, "Breaking Bad", res.Title)
	require.NotNil(t, res.Year)
	assert.Equal(t, 2008, *res.Year)
	require.NotNil(t, res.IMDbRating)
	assert.InDelta(t, 9.5, *res.IMDbRating, 0.001)
	require.NotNil(t, res.Runtime)
	assert.Equal(t, 49, *res.Runtime)
	assert.Equal(t, []string{"Crime", "Drama", "Thriller"}, res.Genres)
	require.NotNil(t, res.Overview)
	require.NotNil(t, res.PosterPath)
	assert.Equal(t, "tt0903747", res.IMDbID)
}

func TestOMDBByTitle_SkipsNAValues(t *testing.T) {
	c := newTestOMDB(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"Response": "True",
			"Title": "Obscure Film",
			"Year": "1999",
			"imdbRating": "N/A",
			"Runtime": "N/A",
			"Genre": "N/A",
			"Plot": "N/A",
			"Poster": "N/A",
			"imdbID": "tt0000001"
		}`)
	})

	res, err := c.ByTitle("Obscure Film", nil, models.ContentTypeMovie)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.IMDbRating)
	assert.Nil(t, res.Runtime)
	assert.Nil(t, res.Genres)
	assert.Nil(t, res.Overview)
	assert.Nil(t, res.PosterPath)
}

func TestOMDBByTitle_NotFoundIsNilNotError(t *testing.T) {
	c := newTestOMDB(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response": "False", "Error": "Movie not found!"}`)
	})

	res, err := c.ByTitle("Nonexistent", nil, models.ContentTypeMovie)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestOMDBByIMDbID_QueriesByIdentifier(t *testing.T) {
	c := newTestOMDB(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tt1375666", r.URL.Query().Get("i"))
		fmt.Fprint(w, `{"Response": "True", "Title": "Inception", "imdbRating": "8.8", "imdbID": "tt1375666"}`)
	})

	res, err := c.ByIMDbID("tt1375666")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Inception", res.Title)
}

func TestOMDB_Unconfigured(t *testing.T) {
	c := NewOMDBClient("")
	_, err := c.ByTitle("Inception", nil, models.ContentTypeMovie)
	assert.Error(t, err)
}

func TestLeadingDigits(t *testing.T) {
	assert.Equal(t, "2010", leadingDigits("2010"))
	assert.Equal(t, "2008", leadingDigits("2008–2013"))
	assert.Equal(t, "148", leadingDigits("148 min"))
	assert.Equal(t, "", leadingDigits("N/A"))
	assert.Equal(t, "", leadingDigits(""))
}
