package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tvscrape/internal/queue"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List and inspect scan jobs",
	}

	cmd.AddCommand(newJobsListCommand(ctx))
	cmd.AddCommand(newJobsShowCommand(ctx))
	cmd.AddCommand(newJobsCancelCommand(ctx))

	return cmd
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			jobs, err := store.ListJobs(cmd.Context(), queue.Status(statusFlag))
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					strconv.FormatInt(job.ID, 10),
					string(job.Status),
					job.ScanPath,
					strconv.Itoa(job.SuccessCount) + "/" + strconv.Itoa(job.TotalCount),
					job.ErrorMessage,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "STATUS", "SCAN PATH", "DISPATCHED", "ERROR"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status: pending, running, success, failed, cancelled")
	return cmd
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a job and its dispatched scrape tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q: %w", args[0], err)
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			job, err := store.GetJob(cmd.Context(), id)
			if err != nil {
				return err
			}
			if job == nil {
				return fmt.Errorf("job %d not found", id)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Job %d  status=%s  scan_path=%s\n", job.ID, job.Status, job.ScanPath)
			fmt.Fprintf(cmd.OutOrStdout(), "  dispatched=%d  success=%d  skipped=%d  errors=%d\n",
				job.TotalCount, job.SuccessCount, job.SkipCount, job.ErrorCount)
			if job.ErrorMessage != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  error: %s\n", job.ErrorMessage)
			}

			tasks, err := store.ListScrapeTasksForJob(cmd.Context(), id)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(tasks))
			for _, task := range tasks {
				rows = append(rows, []string{
					strconv.FormatInt(task.ID, 10),
					string(task.Status),
					task.ResultStatus,
					task.FilePath,
					task.DestPath,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"TASK ID", "STATUS", "RESULT", "FILE", "DEST"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newJobsCancelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q: %w", args[0], err)
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			if err := store.CancelJob(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Job %d cancelled\n", id)
			return nil
		},
	}
}
