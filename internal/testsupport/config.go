package testsupport

import (
	"path/filepath"
	"testing"

	"tvscrape/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.MDB.APIKey = "test"
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ReviewDir = filepath.Join(base, "review")
	cfgVal.Paths.QueueDBPath = filepath.Join(base, "queue.db")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Workflow.WorkerLockPath = filepath.Join(base, "worker.lock")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithMDBKey sets the metadata-database API key on the test config.
func WithMDBKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MDB.APIKey = key
	}
}

// WithJellyfin enables the conflict-oracle adapter against the given URL.
func WithJellyfin(url, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Jellyfin.Enabled = true
		b.cfg.Jellyfin.URL = url
		b.cfg.Jellyfin.APIKey = apiKey
	}
}

// WithLinkMode overrides the placement link mode on the test config.
func WithLinkMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Placement.LinkMode = mode
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LibraryDir)
}
