package scrape

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"tvscrape/internal/logging"
	"tvscrape/internal/notifications"
	"tvscrape/internal/queue"
	"tvscrape/internal/services"
)

// JobRunner adapts a job's scan_path into one queued ScrapeTask per
// discovered video file, satisfying queue.JobExecutor. It does not wait for
// those tasks to run: a job's recorded SuccessCount is the number of tasks
// dispatched, not the number that eventually succeeded, since each task is
// drained and finished independently by the worker afterward.
type JobRunner struct {
	store  *queue.Store
	logger *slog.Logger
	notify notifications.Service
}

// NewJobRunner builds a JobRunner. Pass its Run method where a
// queue.JobExecutor is expected. notify may be nil, in which case job
// completion events are not published anywhere.
func NewJobRunner(store *queue.Store, logger *slog.Logger, notify notifications.Service) *JobRunner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &JobRunner{store: store, logger: logging.NewComponentLogger(logger, "scrape_job"), notify: notify}
}

// Run satisfies queue.JobExecutor.
func (r *JobRunner) Run(ctx context.Context, job queue.Job) error {
	ctx = services.WithJobID(ctx, job.ID)
	logger := logging.WithContext(ctx, r.logger)

	scanRoot, err := queue.SanitizeScanPath(job.ScanPath)
	if err != nil {
		_ = r.store.FinishJob(ctx, job.ID, queue.StatusFailed, 0, 0, 0, 0, err.Error())
		return nil
	}

	files, walkErr := discoverVideoFiles(scanRoot)
	if walkErr != nil {
		_ = r.store.FinishJob(ctx, job.ID, queue.StatusFailed, 0, 0, 0, 0, walkErr.Error())
		return nil
	}

	if len(files) == 0 {
		_ = r.store.FinishJob(ctx, job.ID, queue.StatusSuccess, 0, 0, 0, 0, "no video files found under scan path")
		return nil
	}

	jobID := job.ID
	dispatched, errorCount := 0, 0
	for _, path := range files {
		_, createErr := r.store.CreateScrapeTask(ctx, queue.ScrapeTask{
			JobID:             &jobID,
			FilePath:          path,
			OutputDir:         job.TargetFolder,
			MetadataDir:       job.MetadataDir,
			LinkMode:          job.LinkMode,
			DeleteEmptyParent: job.DeleteEmptyParent,
			AdvancedSettings:  job.AdvancedSettings,
			Source:            job.Source,
		})
		if createErr != nil {
			errorCount++
			logger.Error("failed to enqueue scrape task",
				logging.Int64("job_id", job.ID), logging.String("file_path", path), logging.Error(createErr))
			continue
		}
		dispatched++
	}

	status := queue.StatusSuccess
	message := fmt.Sprintf("dispatched %d scrape task(s)", dispatched)
	if errorCount > 0 && dispatched == 0 {
		status = queue.StatusFailed
		message = "failed to enqueue any scrape task"
	}

	if err := r.store.FinishJob(ctx, job.ID, status, dispatched, 0, errorCount, len(files), message); err != nil {
		logger.Error("failed to record job result", logging.Int64("job_id", job.ID), logging.Error(err))
		return err
	}

	logger.Info("job finished",
		logging.Int64("job_id", job.ID), logging.Int("dispatched", dispatched), logging.Int("discovered", len(files)))

	if r.notify != nil {
		if pubErr := r.notify.Publish(ctx, notifications.EventJobCompleted, notifications.Payload{
			"scanPath":     scanRoot,
			"successCount": dispatched,
			"errorCount":   errorCount,
			"totalCount":   len(files),
		}); pubErr != nil {
			logger.Warn("failed to publish job notification", logging.Error(pubErr))
		}
	}
	return nil
}

// discoverVideoFiles walks root and returns every regular file recognized as
// a video by extension, plus every episode-tagged subtitle file
// (queue.IsScanSubtitleFile) that carries its own SxxEyy marker, in lexical
// order (filepath.WalkDir's own order). A subtitle without its own SxxEyy
// marker is matched later by C5, not discovered here; a tagged subtitle is
// discovered whether or not a video for the same episode is in the tree.
func discoverVideoFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if queue.IsVideoFile(path) || queue.IsScanSubtitleFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return files, nil
}
