package scrape

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tvscrape/internal/conflict"
	"tvscrape/internal/config"
	"tvscrape/internal/mdb"
	"tvscrape/internal/placement"
)

func newTestConfig() *config.Config {
	cfg := config.Default()
	cfg.Subtitles.Enabled = false
	return &cfg
}

// seriesFixture is a minimal /tv/{id} response body shape understood by the
// mdb client's seriesWire.
type seriesFixture struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	FirstAirDate     string       `json:"first_air_date"`
	NumberOfSeasons  int          `json:"number_of_seasons"`
	NumberOfEpisodes int          `json:"number_of_episodes"`
	Seasons          []seasonStub `json:"seasons"`
}

type seasonStub struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
}

func newTestMDBServer(t *testing.T, series seriesFixture, episodeName string) (*mdb.Client, func()) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/tv", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_results": 1,
			"results": []map[string]any{
				{"id": series.ID, "name": series.Name, "adult": true},
			},
		})
	})
	mux.HandleFunc("/tv/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(series)
	})
	server := httptest.NewServer(mux)

	client, err := mdb.New("plainkey", server.URL, "en-US", mdb.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("mdb.New: %v", err)
	}
	return client, server.Close
}

func TestResolveUsesGlobalConfigByDefault(t *testing.T) {
	cfg := newTestConfig()
	resolved, err := Resolve(cfg, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Naming.SeriesFolder != cfg.Naming.SeriesFolder {
		t.Fatalf("expected global series folder template, got %q", resolved.Naming.SeriesFolder)
	}
	if !resolved.Download.Poster {
		t.Fatal("expected global poster download default true")
	}
}

func TestResolveHonorsPerCategoryOverride(t *testing.T) {
	cfg := newTestConfig()
	raw := `{"download":{"use_global_download":false,"poster":false,"backdrop":false,"thumb":false}}`
	resolved, err := Resolve(cfg, raw)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Download.Poster || resolved.Download.Backdrop || resolved.Download.Thumb {
		t.Fatal("expected overridden download toggles to all be false")
	}
	if resolved.Naming.SeriesFolder != cfg.Naming.SeriesFolder {
		t.Fatal("expected naming category to still fall back to global config")
	}
}

func TestClassifyMapsDestinationExistsToFileConflict(t *testing.T) {
	if got := classify(stagePlacement, placement.ErrDestinationExists); got != StatusFileConflict {
		t.Fatalf("classify = %q, want file_conflict", got)
	}
}

func TestStepLogTracksCompletionPerStep(t *testing.T) {
	log := &stepLog{}
	log.begin("parse")
	log.success("ok")
	log.begin("placement")
	log.fail("boom")

	steps := log.finish()
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if !steps[0].Completed {
		t.Fatal("expected first step to remain completed")
	}
	if steps[1].Completed {
		t.Fatal("expected second step to be marked incomplete after fail")
	}
}

func TestRunReturnsMoveFailedWhenSourceMissing(t *testing.T) {
	orchestrator := New(newTestConfig(), nil, conflict.NoopService{}, nil)
	result := orchestrator.Run(context.Background(), Request{FilePath: "/nonexistent/show.mkv"})
	if result.Status != StatusMoveFailed {
		t.Fatalf("status = %q, want move_failed", result.Status)
	}
}

func TestRunReturnsNoMatchWhenFilenameUnparseable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "000.mkv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	orchestrator := New(newTestConfig(), nil, conflict.NoopService{}, nil)
	result := orchestrator.Run(context.Background(), Request{FilePath: path, OutputDir: dir})
	if result.Status != StatusNoMatch && result.Status != StatusSearchFailed {
		t.Fatalf("status = %q, want no_match or search_failed", result.Status)
	}
}

func TestRunHappyPathProducesSuccess(t *testing.T) {
	srcDir := t.TempDir()
	libraryDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "Example Show S01E01.mkv")
	if err := os.WriteFile(srcPath, []byte("video"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	series := seriesFixture{
		ID:               42,
		Name:             "Example Show",
		FirstAirDate:     "2020-01-01",
		NumberOfSeasons:  1,
		NumberOfEpisodes: 1,
		Seasons:          []seasonStub{{SeasonNumber: 1, Name: "Season 1", EpisodeCount: 1}},
	}
	client, closeServer := newTestMDBServer(t, series, "Pilot")
	defer closeServer()

	cfg := newTestConfig()
	orchestrator := New(cfg, client, conflict.NoopService{}, nil)

	result := orchestrator.Run(context.Background(), Request{
		FilePath:   srcPath,
		OutputDir:  libraryDir,
		LinkMode:   "move",
		AutoSelect: true,
	})

	if result.Status != StatusSuccess {
		t.Fatalf("status = %q, message = %q, logs = %+v", result.Status, result.Message, result.ScrapeLogs)
	}
	if result.DestPath == "" {
		t.Fatal("expected a non-empty destination path")
	}
	if _, err := os.Stat(result.DestPath); err != nil {
		t.Fatalf("expected file at dest path: %v", err)
	}
}
