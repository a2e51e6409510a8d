package mdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tvscrape/internal/config"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultTimeout      = 10 * time.Second
	searchResultLimit   = 20
)

// bearerTokenPrefix marks a token as a v4 Bearer JWT rather than a v3 API key.
const bearerTokenPrefix = "eyJ"

// Client is an HTTP client for the metadata database's TV endpoints.
type Client struct {
	token        string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client (and its timeout).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithImageBaseURL overrides the image CDN base URL.
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
			c.imageBaseURL = base
		}
	}
}

// New builds a Client. token may be either a v3 API key or a v4 Bearer JWT;
// isBearerToken distinguishes the two at request time.
func New(token, baseURL, language string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotConfigured
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := &Client{
		token:        token,
		baseURL:      baseURL,
		imageBaseURL: defaultImageBaseURL,
		language:     strings.TrimSpace(language),
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig builds a Client from the mdb config section. Returns
// ErrNotConfigured when no API key is set.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNotConfigured
	}
	opts := []Option{}
	if cfg.MDB.ImageBaseURL != "" {
		opts = append(opts, WithImageBaseURL(cfg.MDB.ImageBaseURL))
	}
	return New(cfg.MDB.APIKey, cfg.MDB.BaseURL, cfg.MDB.Language, opts...)
}

func isBearerToken(token string) bool {
	return strings.HasPrefix(token, bearerTokenPrefix)
}

// ImageURL builds a full image CDN URL for a poster/backdrop/still path.
// Returns "" when path is empty. size is one of w92/w154/w185/w342/w500/
// w780/original.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "w500"
	}
	return fmt.Sprintf("%s/%s%s", c.imageBaseURL, size, path)
}

// get issues an authenticated GET against endpoint with the given query
// params, decoding the JSON body into out on a 200 response. It reports
// (found=false, err=nil) on a 404, and a wrapped ErrConnection/ErrTimeout on
// transport failure.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) (found bool, err error) {
	if c.token == "" {
		return false, ErrNotConfigured
	}
	reqURL, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return false, fmt.Errorf("parse mdb url: %w", err)
	}

	headers := http.Header{"Accept": []string{"application/json"}}
	if isBearerToken(c.token) {
		headers.Set("Authorization", "Bearer "+c.token)
	} else {
		if params == nil {
			params = url.Values{}
		}
		params.Set("api_key", c.token)
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return false, fmt.Errorf("build mdb request: %w", err)
	}
	req.Header = headers

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return false, fmt.Errorf("%w: %s (latency=%v)", ErrTimeout, endpoint, latency)
		}
		return false, fmt.Errorf("%w: %s: %v (latency=%v)", ErrConnection, endpoint, err, latency)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, nil
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode mdb response: %w", err)
		}
	}
	return true, nil
}

func (c *Client) language0(language string) string {
	if language != "" {
		return language
	}
	return c.language
}

// searchWire models the raw /search/tv response body.
type searchWire struct {
	TotalResults int            `json:"total_results"`
	Results      []SearchResult `json:"results"`
}

// Search hits /search/tv with include_adult=true and returns up to 20
// results.
func (c *Client) Search(ctx context.Context, query, language string) (SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResponse{Query: query}, errors.New("mdb: search query must not be empty")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "true")
	if lang := c.language0(language); lang != "" {
		params.Set("language", lang)
	}

	var wire searchWire
	found, err := c.get(ctx, "/search/tv", params, &wire)
	if err != nil {
		return SearchResponse{Query: query}, err
	}
	if !found {
		return SearchResponse{Query: query}, nil
	}

	results := wire.Results
	if len(results) > searchResultLimit {
		results = results[:searchResultLimit]
	}
	total := wire.TotalResults
	if total == 0 {
		total = len(results)
	}
	return SearchResponse{Query: query, TotalResults: total, Results: results}, nil
}

// SearchWithFallback tries query first, then (only if that yields no
// results) each candidate from generateFallbackQueries in order, stopping at
// the first candidate with a non-empty result set. EffectiveQuery is set to
// the candidate that matched, or left empty when the original query matched
// or nothing did.
func (c *Client) SearchWithFallback(ctx context.Context, query, language string) (SearchResponse, error) {
	result, err := c.Search(ctx, query, language)
	if err != nil {
		return result, err
	}
	if len(result.Results) > 0 {
		return result, nil
	}

	for _, candidate := range generateFallbackQueries(query) {
		fallback, err := c.Search(ctx, candidate, language)
		if err != nil {
			return SearchResponse{Query: query}, err
		}
		if len(fallback.Results) > 0 {
			fallback.Query = query
			fallback.EffectiveQuery = candidate
			return fallback, nil
		}
	}

	return SearchResponse{Query: query}, nil
}

// genreWire models the {id, name} genre objects embedded in a series payload.
type genreWire struct {
	Name string `json:"name"`
}

type seriesWire struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	OriginalName     string      `json:"original_name"`
	Overview         string      `json:"overview"`
	FirstAirDate     string      `json:"first_air_date"`
	VoteAverage      float64     `json:"vote_average"`
	PosterPath       string      `json:"poster_path"`
	BackdropPath     string      `json:"backdrop_path"`
	Genres           []genreWire `json:"genres"`
	Status           string      `json:"status"`
	NumberOfSeasons  int         `json:"number_of_seasons"`
	NumberOfEpisodes int         `json:"number_of_episodes"`
	Seasons          []Season    `json:"seasons"`
}

func (w seriesWire) toSeries() Series {
	genres := make([]string, 0, len(w.Genres))
	for _, g := range w.Genres {
		genres = append(genres, g.Name)
	}
	return Series{
		ID:               w.ID,
		Name:             w.Name,
		OriginalName:     w.OriginalName,
		Overview:         w.Overview,
		FirstAirDate:     w.FirstAirDate,
		VoteAverage:      w.VoteAverage,
		PosterPath:       w.PosterPath,
		BackdropPath:     w.BackdropPath,
		Genres:           genres,
		Status:           w.Status,
		NumberOfSeasons:  w.NumberOfSeasons,
		NumberOfEpisodes: w.NumberOfEpisodes,
		Seasons:          w.Seasons,
	}
}

// GetSeries fetches the full series record. Returns (nil, nil) on a 404 or
// any other non-200 response; transport failures return a wrapped
// ErrTimeout/ErrConnection.
func (c *Client) GetSeries(ctx context.Context, id int64, language string) (*Series, error) {
	params := url.Values{}
	if lang := c.language0(language); lang != "" {
		params.Set("language", lang)
	}

	var wire seriesWire
	found, err := c.get(ctx, fmt.Sprintf("/tv/%d", id), params, &wire)
	if err != nil || !found {
		return nil, err
	}
	series := wire.toSeries()
	return &series, nil
}

type seasonWire struct {
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	AirDate      string    `json:"air_date"`
	PosterPath   string    `json:"poster_path"`
	EpisodeCount int       `json:"episode_count"`
	Episodes     []Episode `json:"episodes"`
}

func (w seasonWire) toSeason() Season {
	count := w.EpisodeCount
	if len(w.Episodes) > 0 {
		count = len(w.Episodes)
	}
	return Season{
		SeasonNumber: w.SeasonNumber,
		Name:         w.Name,
		Overview:     w.Overview,
		AirDate:      w.AirDate,
		PosterPath:   w.PosterPath,
		EpisodeCount: count,
		Episodes:     w.Episodes,
	}
}

// GetSeason fetches season details including episodes. Returns (nil, nil)
// on a 404 or any other non-200 response.
func (c *Client) GetSeason(ctx context.Context, id int64, seasonNumber int, language string) (*Season, error) {
	params := url.Values{}
	if lang := c.language0(language); lang != "" {
		params.Set("language", lang)
	}

	var wire seasonWire
	found, err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", id, seasonNumber), params, &wire)
	if err != nil || !found {
		return nil, err
	}
	season := wire.toSeason()
	return &season, nil
}

// GetSeriesWithEpisodes fetches a series and, when includeEpisodes is true,
// replaces each non-special season (season_number != 0) with its full
// episode list via sequential GetSeason calls. A season whose detail fetch
// fails or returns no episodes keeps its original stub rather than failing
// the whole call.
func (c *Client) GetSeriesWithEpisodes(ctx context.Context, id int64, language string, includeEpisodes bool) (*Series, error) {
	series, err := c.GetSeries(ctx, id, language)
	if err != nil || series == nil {
		return series, err
	}
	if !includeEpisodes || len(series.Seasons) == 0 {
		return series, nil
	}

	updated := make([]Season, len(series.Seasons))
	for i, season := range series.Seasons {
		if season.SeasonNumber == 0 {
			updated[i] = season
			continue
		}
		detail, err := c.GetSeason(ctx, id, season.SeasonNumber, language)
		if err != nil || detail == nil || len(detail.Episodes) == 0 {
			updated[i] = season
			continue
		}
		updated[i] = *detail
	}
	series.Seasons = updated
	return series, nil
}

// VerifyToken makes a lightweight /configuration request to check whether
// token is accepted, without persisting anything.
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, "token must not be empty"
	}

	probe := &Client{token: token, baseURL: c.baseURL, httpClient: c.httpClient}
	found, err := probe.get(ctx, "/configuration", url.Values{}, nil)
	if err != nil {
		return false, err.Error()
	}
	if !found {
		return false, "token rejected or expired"
	}
	return true, ""
}

// SaveAndVerifyToken verifies token and, only if valid, swaps it in as the
// client's active credential. The caller is responsible for persisting the
// token to configuration once this returns a valid status.
func (c *Client) SaveAndVerifyToken(ctx context.Context, token string) TokenStatus {
	token = strings.TrimSpace(token)
	if token == "" {
		return TokenStatus{ErrorMessage: "token must not be empty"}
	}
	valid, message := c.VerifyToken(ctx, token)
	if !valid {
		return TokenStatus{ErrorMessage: message}
	}
	c.token = token
	return TokenStatus{IsConfigured: true, IsValid: true}
}

