package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tvscrape/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set mdb.api_key (or export MDB_API_KEY) before running tvscrape.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}

			failed := 0
			for _, result := range cfg.CheckDirectories() {
				status := "ok"
				if !result.Passed {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(out, "  [%s] %-20s %s (%s)\n", status, result.Name, result.Path, result.Detail)
			}
			if failed > 0 {
				return fmt.Errorf("%d directory check(s) failed", failed)
			}

			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective (loaded + defaulted) configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "library.tv_dir        = %s\n", cfg.Library.TVDir)
			fmt.Fprintf(out, "paths.queue_db_path   = %s\n", cfg.Paths.QueueDBPath)
			fmt.Fprintf(out, "mdb.base_url          = %s\n", cfg.MDB.BaseURL)
			fmt.Fprintf(out, "mdb.language          = %s\n", cfg.MDB.Language)
			fmt.Fprintf(out, "mdb.api_key_present   = %s\n", yesNo(strings.TrimSpace(cfg.MDB.APIKey) != ""))
			fmt.Fprintf(out, "placement.link_mode   = %s\n", cfg.Placement.LinkMode)
			fmt.Fprintf(out, "naming.series_folder  = %s\n", cfg.Naming.SeriesFolder)
			fmt.Fprintf(out, "naming.season_folder  = %s\n", cfg.Naming.SeasonFolder)
			fmt.Fprintf(out, "naming.episode_file   = %s\n", cfg.Naming.EpisodeFile)
			fmt.Fprintf(out, "download.poster       = %s\n", yesNo(cfg.Download.Poster))
			fmt.Fprintf(out, "download.backdrop     = %s\n", yesNo(cfg.Download.Backdrop))
			fmt.Fprintf(out, "download.thumb        = %s\n", yesNo(cfg.Download.Thumb))
			fmt.Fprintf(out, "subtitles.enabled     = %s\n", yesNo(cfg.Subtitles.Enabled))
			fmt.Fprintf(out, "jellyfin.enabled      = %s\n", yesNo(cfg.Jellyfin.Enabled))
			return nil
		},
	}
}
