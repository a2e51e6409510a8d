package conflict

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"tvscrape/internal/config"
)

// Status is the oracle's verdict for one (series, mdb_id, season, episode)
// lookup.
type Status string

const (
	NoConflict   Status = "no_conflict"
	SeriesExists Status = "series_exists"
	EpisodeExists Status = "episode_exists"
)

// Service queries an external media library for a pre-existing episode.
type Service interface {
	Check(ctx context.Context, seriesName string, mdbID, season, episode int) (Status, error)
}

// HTTPDoer describes the HTTP client used by the Jellyfin-backed service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NoopService always reports NoConflict; it is the default when the oracle
// is not configured.
type NoopService struct{}

func (NoopService) Check(context.Context, string, int, int, int) (Status, error) {
	return NoConflict, nil
}

type jellyfinService struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// NewConfiguredService returns the real Jellyfin-backed oracle when
// cfg.Jellyfin.Enabled and its URL/API key are set, else NoopService.
func NewConfiguredService(cfg *config.Config) Service {
	if cfg == nil || !cfg.Jellyfin.Enabled {
		return NoopService{}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.Jellyfin.URL), "/")
	apiKey := strings.TrimSpace(cfg.Jellyfin.APIKey)
	if baseURL == "" || apiKey == "" {
		return NoopService{}
	}
	return &jellyfinService{baseURL: baseURL, apiKey: apiKey, client: http.DefaultClient}
}

// NewHTTPService constructs a Jellyfin-backed oracle against an explicit
// HTTP client, for tests.
func NewHTTPService(baseURL, apiKey string, client HTTPDoer) Service {
	return &jellyfinService{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
	}
}

type itemsResponse struct {
	Items []struct {
		Name             string `json:"Name"`
		IndexNumber      int    `json:"IndexNumber"`
		ParentIndexNumber int   `json:"ParentIndexNumber"`
		SeriesName       string `json:"SeriesName"`
	} `json:"Items"`
	TotalRecordCount int `json:"TotalRecordCount"`
}

func (s *jellyfinService) Check(ctx context.Context, seriesName string, mdbID, season, episode int) (Status, error) {
	seriesFound, episodeFound, err := s.queryEpisode(ctx, seriesName, season, episode)
	if err != nil {
		return "", err
	}
	if episodeFound {
		return EpisodeExists, nil
	}
	if seriesFound {
		return SeriesExists, nil
	}
	return NoConflict, nil
}

func (s *jellyfinService) queryEpisode(ctx context.Context, seriesName string, season, episode int) (seriesFound, episodeFound bool, err error) {
	values := url.Values{}
	values.Set("searchTerm", seriesName)
	values.Set("IncludeItemTypes", "Episode")
	values.Set("Recursive", "true")
	values.Set("Fields", "ParentIndexNumber,IndexNumber,SeriesName")

	reqURL := fmt.Sprintf("%s/Items?%s", s.baseURL, values.Encode())
	req, buildErr := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if buildErr != nil {
		return false, false, fmt.Errorf("build conflict-check request: %w", buildErr)
	}
	req.Header.Set("X-Emby-Token", s.apiKey)

	resp, doErr := s.client.Do(req)
	if doErr != nil {
		return false, false, fmt.Errorf("query jellyfin items: %w", doErr)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return false, false, fmt.Errorf("jellyfin items query returned %d", resp.StatusCode)
	}

	var payload itemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, false, fmt.Errorf("decode jellyfin items response: %w", err)
	}

	for _, item := range payload.Items {
		if !strings.EqualFold(item.SeriesName, seriesName) {
			continue
		}
		seriesFound = true
		if item.ParentIndexNumber == season && item.IndexNumber == episode {
			episodeFound = true
		}
	}
	return seriesFound, episodeFound, nil
}
