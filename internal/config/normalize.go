package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeMDB(); err != nil {
		return err
	}
	if err := c.normalizeJellyfin(); err != nil {
		return err
	}
	if err := c.normalizeSubtitles(); err != nil {
		return err
	}
	if err := c.normalizePlacement(); err != nil {
		return err
	}
	c.normalizeNaming()
	c.normalizeNotifications()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.ReviewDir, err = expandPath(c.Paths.ReviewDir); err != nil {
		return fmt.Errorf("paths.review_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.QueueDBPath) == "" {
		c.Paths.QueueDBPath = defaultQueueDBPath
	}
	if c.Paths.QueueDBPath, err = expandPath(c.Paths.QueueDBPath); err != nil {
		return fmt.Errorf("paths.queue_db_path: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeMDB() error {
	if c.MDB.APIKey == "" {
		if value, ok := os.LookupEnv("MDB_API_KEY"); ok {
			c.MDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.MDB.BaseURL = strings.TrimSpace(c.MDB.BaseURL)
	if c.MDB.BaseURL == "" {
		c.MDB.BaseURL = defaultMDBBaseURL
	}
	c.MDB.ImageBaseURL = strings.TrimSpace(c.MDB.ImageBaseURL)
	if c.MDB.ImageBaseURL == "" {
		c.MDB.ImageBaseURL = defaultMDBImageBaseURL
	}
	c.MDB.Language = strings.TrimSpace(c.MDB.Language)
	if c.MDB.Language == "" {
		c.MDB.Language = defaultMDBLanguage
	}
	return nil
}

func (c *Config) normalizeJellyfin() error {
	if c.Jellyfin.APIKey == "" {
		if value, ok := os.LookupEnv("JELLYFIN_API_KEY"); ok {
			c.Jellyfin.APIKey = strings.TrimSpace(value)
		}
	}
	c.Jellyfin.URL = strings.TrimSpace(c.Jellyfin.URL)
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
	return nil
}

func (c *Config) normalizeSubtitles() error {
	if len(c.Subtitles.Languages) == 0 {
		c.Subtitles.Languages = []string{"en"}
		return nil
	}
	langs := make([]string, 0, len(c.Subtitles.Languages))
	seen := make(map[string]struct{}, len(c.Subtitles.Languages))
	for _, lang := range c.Subtitles.Languages {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		langs = append(langs, normalized)
	}
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	c.Subtitles.Languages = langs
	return nil
}

func (c *Config) normalizePlacement() error {
	c.Placement.LinkMode = strings.ToLower(strings.TrimSpace(c.Placement.LinkMode))
	switch c.Placement.LinkMode {
	case "":
		c.Placement.LinkMode = "move"
	case "move", "copy", "hardlink", "symlink", "in_place":
	default:
		return fmt.Errorf("placement.link_mode: unsupported value %q", c.Placement.LinkMode)
	}
	return nil
}

func (c *Config) normalizeNaming() {
	if strings.TrimSpace(c.Naming.SeriesFolder) == "" {
		c.Naming.SeriesFolder = defaultSeriesFolder
	}
	if strings.TrimSpace(c.Naming.SeasonFolder) == "" {
		c.Naming.SeasonFolder = defaultSeasonFolder
	}
	if strings.TrimSpace(c.Naming.EpisodeFile) == "" {
		c.Naming.EpisodeFile = defaultEpisodeFile
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic != "" {
		c.Notifications.Enabled = true
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.QueuePollInterval <= 0 {
		c.Workflow.QueuePollInterval = defaultQueuePollInterval
	}
	if c.Workflow.ErrorRetryInterval <= 0 {
		c.Workflow.ErrorRetryInterval = defaultRetryInterval
	}
	if strings.TrimSpace(c.Workflow.WorkerLockPath) == "" {
		c.Workflow.WorkerLockPath = defaultWorkerLockPath
	}
	if expanded, err := expandPath(c.Workflow.WorkerLockPath); err == nil {
		c.Workflow.WorkerLockPath = expanded
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
