package artwork_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tvscrape/internal/artwork"
	"tvscrape/internal/mdb"
)

func newTestClient(t *testing.T, srv *httptest.Server) *mdb.Client {
	t.Helper()
	client, err := mdb.New("test-api-key", "", "en-US", mdb.WithImageBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("mdb.New: %v", err)
	}
	return client
}

func TestDownloadSeriesImagesSkipsWhenAlreadyPresent(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "poster.jpg"), []byte("existing"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	client := newTestClient(t, srv)
	series := mdb.Series{PosterPath: "/poster.jpg", BackdropPath: "/backdrop.jpg"}

	result := artwork.DownloadSeriesImages(context.Background(), client, artwork.NewFetcher(), series, dir, true, true)
	if result.Total != 1 || result.Success != 1 {
		t.Fatalf("expected only backdrop to be fetched, got %+v", result)
	}
	if hits != 1 {
		t.Fatalf("expected 1 HTTP request (poster already present), got %d", hits)
	}
	if _, err := os.Stat(filepath.Join(dir, "backdrop.jpg")); err != nil {
		t.Fatalf("expected backdrop.jpg to be downloaded: %v", err)
	}
}

func TestDownloadEpisodeImageUsesVideoStemAsFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("still-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	client := newTestClient(t, srv)
	season := &mdb.Season{
		SeasonNumber: 1,
		Episodes: []mdb.Episode{
			{EpisodeNumber: 1, StillPath: "/still1.jpg"},
			{EpisodeNumber: 2, StillPath: "/still2.jpg"},
		},
	}

	result := artwork.DownloadEpisodeImage(context.Background(), client, artwork.NewFetcher(), season, 2, dir, "Show - S01E02 - Name")
	if result.Err != nil {
		t.Fatalf("DownloadEpisodeImage: %v", result.Err)
	}
	if result.Skipped {
		t.Fatalf("expected a real download, got skipped")
	}
	wantPath := filepath.Join(dir, "Show - S01E02 - Name.jpg")
	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("expected still image at %s: %v", wantPath, err)
	}
}

func TestDownloadEpisodeImageSkipsWithoutStillPath(t *testing.T) {
	dir := t.TempDir()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("must not make an HTTP request when there is no still image")
	}))
	defer srv.Close()
	client := newTestClient(t, srv)
	season := &mdb.Season{SeasonNumber: 1, Episodes: []mdb.Episode{{EpisodeNumber: 1}}}

	result := artwork.DownloadEpisodeImage(context.Background(), client, artwork.NewFetcher(), season, 1, dir, "Show - S01E01")
	if !result.Skipped {
		t.Fatalf("expected skip when episode has no still path, got %+v", result)
	}
}
