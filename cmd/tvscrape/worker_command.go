package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tvscrape/internal/conflict"
	"tvscrape/internal/logging"
	"tvscrape/internal/mdb"
	"tvscrape/internal/notifications"
	"tvscrape/internal/queue"
	"tvscrape/internal/scrape"
)

func newWorkerCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the background worker that drains pending jobs and scrape tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = logger.With(logging.String("component", "worker"))

			lockPath := cfg.Workflow.WorkerLockPath
			if lockPath == "" {
				lockPath = cfg.Paths.QueueDBPath + ".lock"
			}
			lock, err := queue.AcquireProcessLock(lockPath)
			if err != nil {
				return fmt.Errorf("acquire worker lock: %w (is another worker already running?)", err)
			}
			defer lock.Unlock()

			store, err := ctx.openStore()
			if err != nil {
				return err
			}

			mdbClient, err := mdb.NewFromConfig(cfg)
			if err != nil {
				logger.Warn("mdb client unavailable, search-dependent scrapes will fail", logging.Error(err))
				mdbClient = nil
			}
			conflictSvc := conflict.NewConfiguredService(cfg)
			notifier := notifications.NewService(cfg)

			orchestrator := scrape.New(cfg, mdbClient, conflictSvc, logger)
			jobRunner := scrape.NewJobRunner(store, logger, notifier)
			taskRunner := scrape.NewTaskRunner(orchestrator, store, logger, notifier)

			worker := queue.NewWorker(store, cfg, logger, jobRunner.Run, taskRunner.Run)

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			worker.Notify()
			logger.Info("worker started")
			<-signalCtx.Done()
			logger.Info("worker shutting down")
			worker.Stop()
			return nil
		},
	}
}
