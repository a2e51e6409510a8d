package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tvscrape/internal/config"
	"tvscrape/internal/logging"
	"tvscrape/internal/queue"
)

// commandContext lazily loads config and opens the queue store once per
// process invocation, shared across whichever subcommand runs.
type commandContext struct {
	configFlag *string
	logLevel   *string
	verbose    *bool
	jsonOutput *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	storeOnce sync.Once
	store     *queue.Store
	storeErr  error
}

func newCommandContext(configFlag, logLevel *string, verbose, jsonOutput *bool) *commandContext {
	return &commandContext{configFlag: configFlag, logLevel: logLevel, verbose: verbose, jsonOutput: jsonOutput}
}

// JSONMode returns true when the user passed --json.
func (c *commandContext) JSONMode() bool {
	return c != nil && c.jsonOutput != nil && *c.jsonOutput
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) openStore() (*queue.Store, error) {
	c.storeOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.storeErr = err
			return
		}
		c.store, c.storeErr = queue.Open(cfg)
	})
	return c.store, c.storeErr
}

func (c *commandContext) resolvedLogLevel(cfg *config.Config) string {
	if c != nil && c.logLevel != nil {
		if trimmed := strings.TrimSpace(*c.logLevel); trimmed != "" {
			return trimmed
		}
	}
	if c != nil && c.verbose != nil && *c.verbose {
		return "debug"
	}
	if cfg != nil && strings.TrimSpace(cfg.Logging.Level) != "" {
		return cfg.Logging.Level
	}
	return "info"
}

// newCLILogger builds a console-format logger for interactive subcommands,
// honoring --log-level/--verbose overrides of the configured level.
func (c *commandContext) newCLILogger(cfg *config.Config, component string) (*slog.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:       c.resolvedLogLevel(cfg),
		Format:      "console",
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, err
	}
	if component != "" {
		logger = logger.With(logging.String("component", component))
	}
	return logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
