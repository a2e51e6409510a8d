package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tvscrape/internal/queue"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var metadataDir string
	var linkMode string
	var deleteEmptyParent bool
	var advancedSettings string

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Enqueue a job that scans a directory for video files to scrape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}

			if outputDir == "" {
				outputDir = cfg.Library.TVDir
			}

			job := queue.Job{
				ScanPath:          args[0],
				TargetFolder:      outputDir,
				MetadataDir:       metadataDir,
				LinkMode:          queue.LinkMode(linkMode),
				DeleteEmptyParent: deleteEmptyParent,
				Source:            "cli",
				AdvancedSettings:  advancedSettings,
			}

			id, err := store.CreateJob(cmd.Context(), job)
			if err != nil {
				return fmt.Errorf("enqueue job: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Job %d enqueued for %s\n", id, args[0])
			fmt.Fprintln(cmd.OutOrStdout(), "Run `tvscrape worker` to process it, or `tvscrape jobs show` to check on it.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Library root to place organized files under (defaults to config library dir)")
	cmd.Flags().StringVar(&metadataDir, "metadata-dir", "", "Separate root for NFO sidecars and artwork, if different from the library root")
	cmd.Flags().StringVar(&linkMode, "link-mode", string(queue.LinkModeMove), "How to place files: move, copy, hardlink, symlink, in_place")
	cmd.Flags().BoolVar(&deleteEmptyParent, "delete-empty-parent", false, "Remove the source directory after placement if it ends up empty")
	cmd.Flags().StringVar(&advancedSettings, "advanced-settings", "", "Raw JSON overriding global config for this job")

	return cmd
}
