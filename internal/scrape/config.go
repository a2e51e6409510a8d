package scrape

import (
	"encoding/json"
	"fmt"
	"strings"

	"tvscrape/internal/config"
	"tvscrape/internal/queue"
)

// AdvancedSettings carries per-job/per-task overrides that shadow the
// global config for selected categories. Each category has its own
// UseGlobalX flag; when true the category's fields are ignored and the
// matching global config section is used instead. The zero value (every
// UseGlobalX false, every override field zero) is never what callers want,
// so ParseAdvancedSettings treats an empty raw string as "use global
// everywhere".
type AdvancedSettings struct {
	Organize OrganizeSettings `json:"organize"`
	Download DownloadSettings `json:"download"`
	Naming   NamingSettings   `json:"naming"`
	Metadata MetadataSettings `json:"metadata"`
}

type OrganizeSettings struct {
	UseGlobalOrganize bool   `json:"use_global_organize"`
	LinkMode          string `json:"link_mode"`
	DeleteEmptyParent bool   `json:"delete_empty_parent"`
	CreateBackup      bool   `json:"create_backup"`
}

type DownloadSettings struct {
	UseGlobalDownload bool `json:"use_global_download"`
	Poster            bool `json:"poster"`
	Backdrop          bool `json:"backdrop"`
	Thumb             bool `json:"thumb"`
}

type NamingSettings struct {
	UseGlobalNaming bool   `json:"use_global_naming"`
	SeriesFolder    string `json:"series_folder"`
	SeasonFolder    string `json:"season_folder"`
	EpisodeFile     string `json:"episode_file"`
}

type MetadataSettings struct {
	UseGlobalMetadata bool   `json:"use_global_metadata"`
	NFOEnabled        bool   `json:"nfo_enabled"`
	MetadataDir       string `json:"metadata_dir"`
}

func defaultAdvancedSettings() AdvancedSettings {
	return AdvancedSettings{
		Organize: OrganizeSettings{UseGlobalOrganize: true},
		Download: DownloadSettings{UseGlobalDownload: true},
		Naming:   NamingSettings{UseGlobalNaming: true},
		Metadata: MetadataSettings{UseGlobalMetadata: true, NFOEnabled: true},
	}
}

// ParseAdvancedSettings decodes a raw JSON blob (as stored in
// Job.AdvancedSettings / ScrapeTask.AdvancedSettings) into AdvancedSettings.
// An empty/blank raw string resolves to "use global for every category".
func ParseAdvancedSettings(raw string) (AdvancedSettings, error) {
	settings := defaultAdvancedSettings()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return AdvancedSettings{}, fmt.Errorf("parse advanced settings: %w", err)
	}
	return settings, nil
}

// OrganizeConfig resolves placement mode and cleanup behavior for one scrape.
type OrganizeConfig struct {
	LinkMode          queue.LinkMode
	DeleteEmptyParent bool
	CreateBackup      bool
}

// DownloadConfig resolves which artwork kinds to fetch.
type DownloadConfig struct {
	Poster   bool
	Backdrop bool
	Thumb    bool
}

// NamingConfig resolves the three destination-path templates.
type NamingConfig struct {
	SeriesFolder string
	SeasonFolder string
	EpisodeFile  string
}

// MetadataConfig resolves NFO emission and where sidecars/artwork land.
type MetadataConfig struct {
	NFOEnabled  bool
	MetadataDir string
}

// ResolvedConfig is the flattened configuration for a single scrape,
// computed once at the top of the run. Every downstream collaborator (C2
// through C7) is given ResolvedConfig fields by value rather than reading
// *config.Config or *AdvancedSettings directly.
type ResolvedConfig struct {
	Organize OrganizeConfig
	Download DownloadConfig
	Naming   NamingConfig
	Metadata MetadataConfig
}

// Resolve flattens cfg and the task's advanced-settings JSON into a
// ResolvedConfig, per category: a category's fields come from
// AdvancedSettings when its UseGlobalX flag is false, else from cfg.
func Resolve(cfg *config.Config, rawAdvanced string) (ResolvedConfig, error) {
	settings, err := ParseAdvancedSettings(rawAdvanced)
	if err != nil {
		return ResolvedConfig{}, err
	}

	resolved := ResolvedConfig{}

	if settings.Organize.UseGlobalOrganize {
		resolved.Organize = OrganizeConfig{
			LinkMode:          queue.LinkMode(cfg.Placement.LinkMode),
			DeleteEmptyParent: cfg.Placement.DeleteEmptyParent,
			CreateBackup:      cfg.Placement.CreateBackup,
		}
	} else {
		resolved.Organize = OrganizeConfig{
			LinkMode:          queue.LinkMode(settings.Organize.LinkMode),
			DeleteEmptyParent: settings.Organize.DeleteEmptyParent,
			CreateBackup:      settings.Organize.CreateBackup,
		}
	}
	if resolved.Organize.LinkMode == "" {
		resolved.Organize.LinkMode = queue.LinkModeMove
	}

	if settings.Download.UseGlobalDownload {
		resolved.Download = DownloadConfig{
			Poster:   cfg.Download.Poster,
			Backdrop: cfg.Download.Backdrop,
			Thumb:    cfg.Download.Thumb,
		}
	} else {
		resolved.Download = DownloadConfig{
			Poster:   settings.Download.Poster,
			Backdrop: settings.Download.Backdrop,
			Thumb:    settings.Download.Thumb,
		}
	}

	if settings.Naming.UseGlobalNaming {
		resolved.Naming = NamingConfig{
			SeriesFolder: cfg.Naming.SeriesFolder,
			SeasonFolder: cfg.Naming.SeasonFolder,
			EpisodeFile:  cfg.Naming.EpisodeFile,
		}
	} else {
		resolved.Naming = NamingConfig{
			SeriesFolder: settings.Naming.SeriesFolder,
			SeasonFolder: settings.Naming.SeasonFolder,
			EpisodeFile:  settings.Naming.EpisodeFile,
		}
	}

	if settings.Metadata.UseGlobalMetadata {
		resolved.Metadata = MetadataConfig{NFOEnabled: true, MetadataDir: ""}
	} else {
		resolved.Metadata = MetadataConfig{
			NFOEnabled:  settings.Metadata.NFOEnabled,
			MetadataDir: settings.Metadata.MetadataDir,
		}
	}

	return resolved, nil
}
