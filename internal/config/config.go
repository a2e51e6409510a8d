package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config encapsulates all configuration values for tvscrape.
type Config struct {
	Paths         Paths         `toml:"paths"`
	MDB           MDB           `toml:"mdb"`
	Library       Library       `toml:"library"`
	Jellyfin      Jellyfin      `toml:"jellyfin"`
	Subtitles     Subtitles     `toml:"subtitles"`
	Placement     Placement     `toml:"placement"`
	Naming        Naming        `toml:"naming"`
	Download      Download      `toml:"download"`
	Notifications Notifications `toml:"notifications"`
	Workflow      Workflow      `toml:"workflow"`
	Logging       Logging       `toml:"logging"`
}

// Paths holds filesystem locations used across the application.
type Paths struct {
	LibraryDir  string `toml:"library_dir"`
	ReviewDir   string `toml:"review_dir"`
	LogDir      string `toml:"log_dir"`
	QueueDBPath string `toml:"queue_db_path"`
	APIBind     string `toml:"api_bind"`
}

// MDB holds metadata-database (TMDB-shaped) client settings.
type MDB struct {
	APIKey              string  `toml:"api_key"`
	BaseURL             string  `toml:"base_url"`
	ImageBaseURL        string  `toml:"image_base_url"`
	Language            string  `toml:"language"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
}

// Library holds destination library layout defaults.
type Library struct {
	TVDir string `toml:"tv_dir"`
}

// Jellyfin holds connection settings for the conflict-oracle adapter.
type Jellyfin struct {
	Enabled           bool   `toml:"enabled"`
	URL               string `toml:"url"`
	APIKey            string `toml:"api_key"`
	CheckBeforeScrape bool   `toml:"check_before_scrape"`
}

// Subtitles holds subtitle discovery and matching settings.
type Subtitles struct {
	Enabled   bool     `toml:"enabled"`
	Languages []string `toml:"languages"`
}

// Placement holds file-placement engine defaults.
type Placement struct {
	LinkMode          string `toml:"link_mode"`
	DeleteEmptyParent bool   `toml:"delete_empty_parent"`
	CreateBackup      bool   `toml:"create_backup"`
}

// Naming holds destination path templates.
type Naming struct {
	SeriesFolder string `toml:"series_folder"`
	SeasonFolder string `toml:"season_folder"`
	EpisodeFile  string `toml:"episode_file"`
}

// Download holds the global artwork-download toggles a scrape falls back to
// when its advanced settings defer to the global config.
type Download struct {
	Poster   bool `toml:"poster"`
	Backdrop bool `toml:"backdrop"`
	Thumb    bool `toml:"thumb"`
}

// Notifications holds push-notification settings.
type Notifications struct {
	Enabled        bool   `toml:"enabled"`
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	JobsComplete   bool   `toml:"jobs_complete"`
	Errors         bool   `toml:"errors"`
}

// Workflow holds background-worker tuning values.
type Workflow struct {
	QueuePollInterval  int    `toml:"queue_poll_interval"`
	ErrorRetryInterval int    `toml:"error_retry_interval"`
	WorkerLockPath     string `toml:"worker_lock_path"`
}

// Logging holds structured logging settings.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tvscrape/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/tvscrape/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tvscrape.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for worker operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LibraryDir, c.Paths.ReviewDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.QueueDBPath) != "" {
		if err := os.MkdirAll(filepath.Dir(c.Paths.QueueDBPath), 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", filepath.Dir(c.Paths.QueueDBPath), err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := `# tvscrape configuration
# =======================

# Metadata database (required for identification)
[mdb]
api_key = "your_mdb_api_key_here"
base_url = "https://api.themoviedb.org/3"
image_base_url = "https://image.tmdb.org/t/p"
language = "en-US"
confidence_threshold = 0.8

[paths]
library_dir = "~/library"             # Root of the organized TV library (created if missing)
review_dir = "~/review"                # Files awaiting manual review after a failed match
log_dir = "~/.local/share/tvscrape/logs"
queue_db_path = "~/.local/share/tvscrape/queue.db"
api_bind = "127.0.0.1:7487"

[library]
tv_dir = "tv"

[placement]
link_mode = "move"                     # move, copy, hardlink, symlink, in_place
delete_empty_parent = true
create_backup = false

[naming]
series_folder = "{title} ({year}) [tmdbid-{tmdb_id}]"
season_folder = "Season {season}"
episode_file = "{title} - S{season:02d}E{episode:02d} - {episode_title}"

[download]
poster = true
backdrop = true
thumb = true

[subtitles]
enabled = true
languages = ["en"]

[jellyfin]
enabled = false
url = "http://localhost:8096"
api_key = ""
check_before_scrape = true

[notifications]
enabled = false
ntfy_topic = ""
request_timeout = 10
jobs_complete = true
errors = true

[workflow]
queue_poll_interval = 5
error_retry_interval = 10
worker_lock_path = "~/.local/share/tvscrape/worker.lock"

[logging]
format = "console"
level = "info"
retention_days = 60
`

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
