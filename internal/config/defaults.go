package config

const (
	defaultLibraryDir        = "~/library"
	defaultReviewDir         = "~/review"
	defaultLogDir            = "~/.local/share/tvscrape/logs"
	defaultLogRetentionDays  = 60
	defaultQueueDBPath       = "~/.local/share/tvscrape/queue.db"
	defaultWorkerLockPath    = "~/.local/share/tvscrape/worker.lock"
	defaultAPIBind           = "127.0.0.1:7487"
	defaultTVDir             = "tv"
	defaultMDBLanguage       = "en-US"
	defaultMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultMDBImageBaseURL   = "https://image.tmdb.org/t/p"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultQueuePollInterval = 5
	defaultRetryInterval     = 10
	defaultNotifyTimeout     = 10
	defaultSeriesFolder      = "{title} ({year}) [tmdbid-{tmdb_id}]"
	defaultSeasonFolder      = "Season {season}"
	defaultEpisodeFile       = "{title} - S{season:02d}E{episode:02d} - {episode_title}"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir:  defaultLibraryDir,
			ReviewDir:   defaultReviewDir,
			LogDir:      defaultLogDir,
			QueueDBPath: defaultQueueDBPath,
			APIBind:     defaultAPIBind,
		},
		MDB: MDB{
			Language:            defaultMDBLanguage,
			BaseURL:             defaultMDBBaseURL,
			ImageBaseURL:        defaultMDBImageBaseURL,
			ConfidenceThreshold: 0.8,
		},
		Library: Library{
			TVDir: defaultTVDir,
		},
		Jellyfin: Jellyfin{
			Enabled:           false,
			CheckBeforeScrape: true,
		},
		Subtitles: Subtitles{
			Enabled:   true,
			Languages: []string{"en"},
		},
		Placement: Placement{
			LinkMode:          "move",
			DeleteEmptyParent: true,
		},
		Naming: Naming{
			SeriesFolder: defaultSeriesFolder,
			SeasonFolder: defaultSeasonFolder,
			EpisodeFile:  defaultEpisodeFile,
		},
		Download: Download{
			Poster:   true,
			Backdrop: true,
			Thumb:    true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			JobsComplete:   true,
			Errors:         true,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultRetryInterval,
			WorkerLockPath:     defaultWorkerLockPath,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
