package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movieflix/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            3001,
		Env:             "test",
		CORSOrigin:      "http://localhost:3000",
		TMDBLanguage:    "es-ES",
		TMDBAltLanguage: "en-US",
		RateLimitWindow: 15 * time.Minute,
		RateLimitMax:    100,
		DemoCode:        "5202",
		DemoSecret:      "test-secret",
	}
}

func newDemoServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig()
	cfg.DemoMode = true
	s := NewServer(cfg, nil)
	t.Cleanup(s.Close)
	return s
}

func newMockServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewServer(testConfig(), db)
	t.Cleanup(s.Close)
	return s, mock
}

func do(s *Server, method, target string, body interface{}, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// ──────────────────── health / routing ────────────────────

func TestHealth_Demo(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodGet, "/api/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "demo", body["database"])
}

func TestHealth_DatabaseConnected(t *testing.T) {
	s, mock := newMockServer(t)
	mock.ExpectPing()

	rec := do(s, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Connected", decodeBody(t, rec)["database"])
}

func TestHealth_DatabaseDown(t *testing.T) {
	s, mock := newMockServer(t)
	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	rec := do(s, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Disconnected", decodeBody(t, rec)["database"])
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodGet, "/api/nope", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "endpoint not found", decodeBody(t, rec)["error"])
}

// ──────────────────── middleware ────────────────────

func TestMiddlewareHeaders(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodGet, "/api/health", nil, nil)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Demo-Warning"))
}

func TestPreflightShortCircuits(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodOptions, "/api/profiles", nil, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Close()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	// other clients are unaffected
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimit_Returns429(t *testing.T) {
	s := newDemoServer(t)
	s.limiter.Close()
	s.limiter = NewRateLimiter(1, time.Minute)

	rec := do(s, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

// ──────────────────── search ────────────────────

func TestEnhancedSearch_RequiresTitle(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodGet, "/api/search/enhanced", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnhancedSearch_RejectsBadType(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodGet, "/api/search/enhanced?title=dune&type=documentary", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestions_ShortQuery(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodGet, "/api/search/suggestions?query=ab", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Empty(t, body["results"])
}

func TestSuggestions_UnconfiguredProvider(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodGet, "/api/search/suggestions?query=batman", nil, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["error"])
	assert.Empty(t, body["results"])
}

func TestRatingSearch_RequiresTitle(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodGet, "/api/search", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRatingSearch_ServesFromCache(t *testing.T) {
	s, mock := newMockServer(t)

	rating := 8.8
	mock.ExpectQuery("FROM movie_ratings_cache").
		WithArgs("Inception", 2010, 30).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "year", "imdb_rating", "imdb_id", "cached_at"}).
			AddRow("5b6ebefc-5fa2-42f7-9ab7-a80a40dbb490", "Inception", 2010, rating, "tt1375666", time.Now()))

	rec := do(s, http.MethodGet, "/api/search?title=Inception&year=2010", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "cache", body["source"])
	assert.InDelta(t, 8.8, body["imdbRating"].(float64), 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingSearch_SoftErrorWhenNothingKnown(t *testing.T) {
	s, mock := newMockServer(t)
	mock.ExpectQuery("FROM movie_ratings_cache").
		WithArgs("Unknown", 30).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "year", "imdb_rating", "imdb_id", "cached_at"}))

	rec := do(s, http.MethodGet, "/api/search?title=Unknown", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────── validation (database untouched) ────────────────────

func TestCreateProfile_RequiresName(t *testing.T) {
	s, mock := newMockServer(t)

	rec := do(s, http.MethodPost, "/api/profiles", map[string]string{"name": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateContent_Validation(t *testing.T) {
	s, mock := newMockServer(t)

	cases := []map[string]interface{}{
		{},
		{"title": "Dune"},
		{"title": "Dune", "type": "movie"},
		{"title": "Dune", "type": "documentary", "profile_id": "5b6ebefc-5fa2-42f7-9ab7-a80a40dbb490"},
	}
	for i, payload := range cases {
		rec := do(s, http.MethodPost, "/api/content", payload, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "case %d", i)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContent_RejectsEmptyTitle(t *testing.T) {
	s, mock := newMockServer(t)

	rec := do(s, http.MethodPut, "/api/content/5b6ebefc-5fa2-42f7-9ab7-a80a40dbb490",
		map[string]interface{}{"title": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListContent_RejectsBadParams(t *testing.T) {
	s, mock := newMockServer(t)

	rec := do(s, http.MethodGet, "/api/content/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, http.MethodGet, "/api/content/5b6ebefc-5fa2-42f7-9ab7-a80a40dbb490?status=abandoned", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, http.MethodGet, "/api/content/5b6ebefc-5fa2-42f7-9ab7-a80a40dbb490?type=documentary", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, http.MethodGet, "/api/content/5b6ebefc-5fa2-42f7-9ab7-a80a40dbb490?platform=nope", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────── demo mode ────────────────────

func demoToken(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(s, http.MethodPost, "/api/demo/auth", map[string]string{"code": "5202"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestDemoAuth_WrongCode(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodPost, "/api/demo/auth", map[string]string{"code": "0000"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestDemoAuth_IssuesToken(t *testing.T) {
	s := newDemoServer(t)
	rec := do(s, http.MethodPost, "/api/demo/auth", map[string]string{"code": "5202"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["demoMode"])
	assert.NotEmpty(t, body["token"])
}

func TestDemoMutations_RequireToken(t *testing.T) {
	s := newDemoServer(t)

	rec := do(s, http.MethodPost, "/api/profiles", map[string]string{"name": "Ana"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(s, http.MethodPost, "/api/profiles", map[string]string{"name": "Ana"},
		map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDemoReadsAreOpen(t *testing.T) {
	s := newDemoServer(t)

	rec := do(s, http.MethodGet, "/api/profiles", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/api/platforms", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/api/genres", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDemoContentLifecycle(t *testing.T) {
	s := newDemoServer(t)
	token := demoToken(t, s)
	auth := map[string]string{"Authorization": "Bearer " + token}

	var profiles []map[string]interface{}
	rec := do(s, http.MethodGet, "/api/profiles", nil, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.NotEmpty(t, profiles)
	profileID := profiles[0]["id"].(string)

	rec = do(s, http.MethodPost, "/api/content", map[string]interface{}{
		"title":      "Tenet",
		"type":       "movie",
		"profile_id": profileID,
	}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)
	id := created["id"].(string)
	assert.Equal(t, "pending", created["status"])

	rec = do(s, http.MethodPatch, fmt.Sprintf("/api/content/%s/watch", id), nil, auth)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, fmt.Sprintf("/api/content/%s?status=watched&search=tenet", profileID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var watched []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &watched))
	require.Len(t, watched, 1)

	rec = do(s, http.MethodPatch, fmt.Sprintf("/api/content/%s/unwatch", id), nil, auth)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodDelete, "/api/content/"+id, nil, auth)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodDelete, "/api/content/"+id, nil, auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDemoTopContent(t *testing.T) {
	s := newDemoServer(t)

	var profiles []map[string]interface{}
	rec := do(s, http.MethodGet, "/api/profiles", nil, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.NotEmpty(t, profiles)

	rec = do(s, http.MethodGet, fmt.Sprintf("/api/content/%s/top", profiles[0]["id"]), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "movies")
	assert.Contains(t, body, "series")
}
