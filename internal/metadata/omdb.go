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

const omdbBaseURL = "http://www.omdbapi.com/"

// OMDBClient is the secondary metadata provider, queried when TMDb yields
// no candidate or when an IMDb rating is wanted.
type OMDBClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOMDBClient(apiKey string) *OMDBClient {
	return &OMDBClient{
		apiKey:  apiKey,
		baseURL: omdbBaseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *OMDBClient) Configured() bool { return c != nil && c.apiKey != "" }

// OMDBResult carries the fields of one OMDb record already parsed out of
// the API's stringly-typed payload.
type OMDBResult struct {
	Title      string
	Year       *int
	IMDbRating *float64
	Runtime    *int
	Genres     []string
	Overview   *string
	PosterPath *string
	IMDbID     string
}

type omdbResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	IMDbRating string `json:"imdbRating"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	IMDbID     string `json:"imdbID"`
}

// ByTitle looks up a record by title, optional year, and type. A "not
// found" response is a nil result, not an error.
func (c *OMDBClient) ByTitle(title string, year *int, t models.ContentType) (*OMDBResult, error) {
	params := url.Values{}
	params.Set("t", title)
	if year != nil && *year > 0 {
		params.Set("y", strconv.Itoa(*year))
	}
	if t == models.ContentTypeSeries {
		params.Set("type", "series")
	} else if t == models.ContentTypeMovie {
		params.Set("type", "movie")
	}
	return c.get(params)
}

// ByIMDbID looks up a record by its IMDb identifier.
func (c *OMDBClient) ByIMDbID(imdbID string) (*OMDBResult, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	return c.get(params)
}

func (c *OMDBClient) get(params url.Values) (*OMDBResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("OMDb API key not configured")
	}
	params.Set("apikey", c.apiKey)

	resp, err := c.client.Get(c.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OMDb: status %d", resp.StatusCode)
	}

	var body omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Response != "True" {
		return nil, nil
	}
	return body.toResult(), nil
}

func (r *omdbResponse) toResult() *OMDBResult {
	out := &OMDBResult{Title: r.Title, IMDbID: r.IMDbID}

	// Year can be "2010" or a series range like "2008–2013".
	if digits := leadingDigits(r.Year); digits != "" {
		if y, err := strconv.Atoi(digits); err == nil {
			out.Year = &y
		}
	}
	if r.IMDbRating != "" && r.IMDbRating != "N/A" {
		if v, err := strconv.ParseFloat(r.IMDbRating, 64); err == nil {
			out.IMDbRating = &v
		}
	}
	// Runtime is "148 min".
	if digits := leadingDigits(r.Runtime); digits != "" {
		if m, err := strconv.Atoi(digits); err == nil {
			out.Runtime = &m
		}
	}
	if r.Genre != "" && r.Genre != "N/A" {
		out.Genres = strings.Split(r.Genre, ", ")
	}
	if r.Plot != "" && r.Plot != "N/A" {
		plot := r.Plot
		out.Overview = &plot
	}
	if r.Poster != "" && r.Poster != "N/A" {
		poster := r.Poster
		out.PosterPath = &poster
	}
	return out
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
