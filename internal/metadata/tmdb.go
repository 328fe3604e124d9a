package metadata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movieflix/internal/models"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbPosterBase   = "https://image.tmdb.org/t/p/w500"
	tmdbBackdropBase = "https://image.tmdb.org/t/p/w1280"
)

// TMDBClient is the primary metadata provider. Every call is bounded by
// the client timeout and attempted exactly once.
type TMDBClient struct {
	apiKey   string
	language string
	baseURL  string
	client   *http.Client
}

func NewTMDBClient(apiKey, language string) *TMDBClient {
	return &TMDBClient{
		apiKey:   apiKey,
		language: language,
		baseURL:  tmdbBaseURL,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *TMDBClient) Configured() bool { return c != nil && c.apiKey != "" }

type tmdbSearchItem struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	VoteAverage   float64 `json:"vote_average"`
}

type tmdbSearchResponse struct {
	Results []tmdbSearchItem `json:"results"`
}

type tmdbDetails struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	PosterPath     string  `json:"poster_path"`
	BackdropPath   string  `json:"backdrop_path"`
	ReleaseDate    string  `json:"release_date"`
	FirstAirDate   string  `json:"first_air_date"`
	VoteAverage    float64 `json:"vote_average"`
	Runtime        int     `json:"runtime"`
	EpisodeRunTime []int   `json:"episode_run_time"`
	Genres         []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	ExternalIDs struct {
		IMDbID string `json:"imdb_id"`
	} `json:"external_ids"`
}

// mediaPath maps the internal content type onto TMDb's URL segment.
func mediaPath(t models.ContentType) string {
	if t == models.ContentTypeSeries {
		return "tv"
	}
	return "movie"
}

// Search queries the search endpoint for the given type, optionally
// filtered by year, and returns the raw candidate list.
func (c *TMDBClient) Search(t models.ContentType, query string, year *int, language string) ([]tmdbSearchItem, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("TMDb API key not configured")
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("language", language)
	params.Set("include_adult", "false")
	if year != nil && *year > 0 {
		if t == models.ContentTypeSeries {
			params.Set("first_air_date_year", strconv.Itoa(*year))
		} else {
			params.Set("year", strconv.Itoa(*year))
		}
	}

	reqURL := fmt.Sprintf("%s/search/%s?%s", c.baseURL, mediaPath(t), params.Encode())
	resp, err := c.client.Get(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDb search: status %d", resp.StatusCode)
	}

	var result tmdbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// Details fetches the full record for one candidate, including external
// identifier cross-references.
func (c *TMDBClient) Details(t models.ContentType, id int, language string) (*tmdbDetails, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("TMDb API key not configured")
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", language)
	params.Set("append_to_response", "external_ids")

	reqURL := fmt.Sprintf("%s/%s/%d?%s", c.baseURL, mediaPath(t), id, params.Encode())
	resp, err := c.client.Get(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDb details: status %d", resp.StatusCode)
	}

	var d tmdbDetails
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *tmdbDetails) displayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

func (d *tmdbDetails) releaseYear() *int {
	date := d.ReleaseDate
	if date == "" {
		date = d.FirstAirDate
	}
	if len(date) < 4 {
		return nil
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &y
}

func (d *tmdbDetails) runtimeMinutes() *int {
	if d.Runtime > 0 {
		return &d.Runtime
	}
	if len(d.EpisodeRunTime) > 0 && d.EpisodeRunTime[0] > 0 {
		return &d.EpisodeRunTime[0]
	}
	return nil
}

func (i *tmdbSearchItem) displayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

func (i *tmdbSearchItem) originalTitle() string {
	if i.OriginalTitle != "" {
		return i.OriginalTitle
	}
	return i.OriginalName
}

func (i *tmdbSearchItem) releaseDate() string {
	if i.ReleaseDate != "" {
		return i.ReleaseDate
	}
	return i.FirstAirDate
}

func (i *tmdbSearchItem) releaseYearString() string {
	date := i.releaseDate()
	if idx := strings.Index(date, "-"); idx > 0 {
		return date[:idx]
	}
	return date
}
