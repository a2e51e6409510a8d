package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tvscrape/internal/conflict"
	"tvscrape/internal/mdb"
	"tvscrape/internal/queue"
	"tvscrape/internal/scrape"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var metadataDir string
	var linkMode string
	var advancedSettings string
	var selectedID int64
	var selectedSeason int
	var selectedEpisode int

	cmd := &cobra.Command{
		Use:   "scrape <file>",
		Short: "Scrape a single file immediately, bypassing the job queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if outputDir == "" {
				outputDir = cfg.Library.TVDir
			}

			mdbClient, err := mdb.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure mdb client: %w", err)
			}
			conflictSvc := conflict.NewConfiguredService(cfg)

			logger, err := ctx.newCLILogger(cfg, "scrape")
			if err != nil {
				return err
			}

			orchestrator := scrape.New(cfg, mdbClient, conflictSvc, logger)
			result := orchestrator.Run(cmd.Context(), scrape.Request{
				FilePath:          args[0],
				OutputDir:         outputDir,
				MetadataDir:       metadataDir,
				LinkMode:          queue.LinkMode(linkMode),
				AdvancedSettings:  advancedSettings,
				AutoSelect:        selectedID == 0,
				SelectedID:        selectedID,
				SelectedSeason:    selectedSeason,
				SelectedEpisode:   selectedEpisode,
			})

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprint(out, renderStepLog(result.ScrapeLogs, colorize))
			fmt.Fprintf(out, "\nstatus: %s\n", result.Status)
			if result.Message != "" {
				fmt.Fprintf(out, "message: %s\n", result.Message)
			}
			if result.DestPath != "" {
				fmt.Fprintf(out, "dest: %s\n", result.DestPath)
			}
			if result.Status == scrape.StatusNeedSelection {
				fmt.Fprintln(out, "\ncandidates:")
				for _, candidate := range result.SearchResults {
					fmt.Fprintf(out, "  id=%-8d %s (%s) seasons=%d episodes=%d\n",
						candidate.ID, candidate.Name, candidate.FirstAirDate, candidate.NumberSeasons, candidate.NumberEpisodes)
				}
				fmt.Fprintln(out, "\nre-run with --select-id <id> to continue")
			}
			if result.Status != scrape.StatusSuccess {
				return fmt.Errorf("scrape did not succeed: %s", result.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Library root to place the organized file under (defaults to config library dir)")
	cmd.Flags().StringVar(&metadataDir, "metadata-dir", "", "Separate root for NFO sidecars and artwork")
	cmd.Flags().StringVar(&linkMode, "link-mode", string(queue.LinkModeMove), "How to place the file: move, copy, hardlink, symlink, in_place")
	cmd.Flags().StringVar(&advancedSettings, "advanced-settings", "", "Raw JSON overriding global config for this scrape")
	cmd.Flags().Int64Var(&selectedID, "select-id", 0, "Resume a prior need_selection outcome with this candidate id")
	cmd.Flags().IntVar(&selectedSeason, "select-season", 0, "Resume a prior need_season_episode outcome with this season")
	cmd.Flags().IntVar(&selectedEpisode, "select-episode", 0, "Resume a prior need_season_episode outcome with this episode")

	return cmd
}
