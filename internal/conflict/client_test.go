package conflict_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tvscrape/internal/conflict"
	"tvscrape/internal/config"
)

func TestNewConfiguredServiceReturnsNoopWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Jellyfin.Enabled = false

	svc := conflict.NewConfiguredService(&cfg)
	status, err := svc.Check(context.Background(), "Show Name", 10, 1, 1)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if status != conflict.NoConflict {
		t.Fatalf("expected NoConflict, got %q", status)
	}
}

func TestHTTPServiceDetectsEpisodeExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := r.Header.Get("X-Emby-Token"); token != "token-123" {
			t.Fatalf("unexpected token: %q", token)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Items": [
				{"Name": "Pilot", "SeriesName": "Show Name", "ParentIndexNumber": 1, "IndexNumber": 3}
			],
			"TotalRecordCount": 1
		}`))
	}))
	defer server.Close()

	svc := conflict.NewHTTPService(server.URL, "token-123", server.Client())
	status, err := svc.Check(context.Background(), "Show Name", 10, 1, 3)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if status != conflict.EpisodeExists {
		t.Fatalf("expected EpisodeExists, got %q", status)
	}
}

func TestHTTPServiceDetectsSeriesExistsWithoutEpisode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Items": [
				{"Name": "Other", "SeriesName": "Show Name", "ParentIndexNumber": 1, "IndexNumber": 1}
			],
			"TotalRecordCount": 1
		}`))
	}))
	defer server.Close()

	svc := conflict.NewHTTPService(server.URL, "token-123", server.Client())
	status, err := svc.Check(context.Background(), "Show Name", 10, 1, 3)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if status != conflict.SeriesExists {
		t.Fatalf("expected SeriesExists, got %q", status)
	}
}

func TestHTTPServiceNoConflictOnEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Items": [], "TotalRecordCount": 0}`))
	}))
	defer server.Close()

	svc := conflict.NewHTTPService(server.URL, "token-123", server.Client())
	status, err := svc.Check(context.Background(), "Show Name", 10, 1, 1)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if status != conflict.NoConflict {
		t.Fatalf("expected NoConflict, got %q", status)
	}
}
