package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tvscrape/internal/config"
)

func TestLoadDefaultConfigUsesEnvAPIKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("MDB_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.LibraryDir != filepath.Join(tempHome, "library") {
		t.Fatalf("unexpected library dir: %q", cfg.Paths.LibraryDir)
	}
	if cfg.Jellyfin.Enabled {
		t.Fatal("expected Jellyfin disabled by default")
	}
	if cfg.Paths.APIBind != "127.0.0.1:7487" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.MDB.APIKey != "test-key" {
		t.Fatalf("expected MDB key from env, got %q", cfg.MDB.APIKey)
	}
	if cfg.MDB.BaseURL != config.Default().MDB.BaseURL {
		t.Fatalf("unexpected MDB base url: %q", cfg.MDB.BaseURL)
	}
	if !cfg.Subtitles.Enabled {
		t.Fatal("expected subtitles enabled by default")
	}
	if len(cfg.Subtitles.Languages) == 0 || cfg.Subtitles.Languages[0] != "en" {
		t.Fatalf("expected default subtitle language en, got %v", cfg.Subtitles.Languages)
	}
	if cfg.Placement.LinkMode != "move" {
		t.Fatalf("expected default link mode move, got %q", cfg.Placement.LinkMode)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{cfg.Paths.LibraryDir, cfg.Paths.LogDir, cfg.Paths.ReviewDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("MDB_API_KEY", "from-env")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "tvscrape.toml")

	type payload struct {
		MDB struct {
			APIKey  string `toml:"api_key"`
			BaseURL string `toml:"base_url"`
		} `toml:"mdb"`
		Library struct {
			TVDir string `toml:"tv_dir"`
		} `toml:"library"`
		Workflow struct {
			QueuePollInterval int `toml:"queue_poll_interval"`
		} `toml:"workflow"`
	}
	custom := payload{}
	custom.MDB.APIKey = "abc123"
	custom.MDB.BaseURL = "https://example.com/mdb"
	custom.Library.TVDir = "custom-tv"
	custom.Workflow.QueuePollInterval = 20
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.MDB.APIKey != "abc123" {
		t.Fatalf("expected MDB key from file, got %q", cfg.MDB.APIKey)
	}
	if cfg.Library.TVDir != "custom-tv" {
		t.Fatalf("expected TVDir to be 'custom-tv', got %q", cfg.Library.TVDir)
	}
	if cfg.MDB.BaseURL != "https://example.com/mdb" {
		t.Fatalf("expected MDB base url override, got %q", cfg.MDB.BaseURL)
	}
	if cfg.Workflow.QueuePollInterval != 20 {
		t.Fatalf("expected queue poll interval 20, got %d", cfg.Workflow.QueuePollInterval)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "your_mdb_api_key_here") {
		t.Fatalf("sample config missing placeholder MDB key: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Library.TVDir != "tv" {
		t.Fatalf("expected sample tv_dir to be tv, got %q", cfg.Library.TVDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.MDB.APIKey = "key"
	cfg.Workflow.QueuePollInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive queue poll interval")
	}

	cfg = config.Default()
	cfg.MDB.APIKey = "key"
	cfg.MDB.ConfidenceThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for mdb confidence threshold")
	}

	cfg = config.Default()
	cfg.MDB.APIKey = "key"
	cfg.Jellyfin.Enabled = true
	cfg.Jellyfin.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when jellyfin enabled without url")
	}

	cfg = config.Default()
	cfg.MDB.APIKey = "key"
	cfg.Subtitles.Enabled = true
	cfg.Subtitles.Languages = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when subtitles enabled without languages")
	}

	cfg = config.Default()
	cfg.MDB.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when mdb api key is missing")
	}
}
