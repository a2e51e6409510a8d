package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMDB(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateJellyfin(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMDB() error {
	if c.MDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/tvscrape/config.toml"
		}
		return fmt.Errorf("mdb.api_key is required. Set MDB_API_KEY env var or edit %s (create with 'tvscrape config init')", defaultPath)
	}
	if c.MDB.ConfidenceThreshold < 0 || c.MDB.ConfidenceThreshold > 1 {
		return errors.New("mdb.confidence_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.TVDir == "" {
		return errors.New("library.tv_dir must be set")
	}
	return nil
}

func (c *Config) validateJellyfin() error {
	if !c.Jellyfin.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Jellyfin.URL) == "" {
		return errors.New("jellyfin.url must be set when jellyfin.enabled is true")
	}
	if strings.TrimSpace(c.Jellyfin.APIKey) == "" {
		return errors.New("jellyfin.api_key must be set when jellyfin.enabled is true")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"notifications.request_timeout": c.Notifications.RequestTimeout,
		"workflow.queue_poll_interval":  c.Workflow.QueuePollInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.Enabled && len(c.Subtitles.Languages) == 0 {
		return errors.New("subtitles.languages must include at least one language when subtitles.enabled is true")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must be >= 0")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
