package scrape

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"tvscrape/internal/logging"
	"tvscrape/internal/notifications"
	"tvscrape/internal/queue"
	"tvscrape/internal/services"
)

// TaskRunner adapts an Orchestrator into a queue.TaskExecutor, persisting
// the terminal ScrapeResult onto the task row itself rather than letting the
// worker reduce every outcome to a generic failed status.
type TaskRunner struct {
	orchestrator *Orchestrator
	store        *queue.Store
	logger       *slog.Logger
	notify       notifications.Service
}

// NewTaskRunner builds a TaskRunner. Pass its Run method where a
// queue.TaskExecutor is expected. notify may be nil, in which case scrape
// outcomes are not published anywhere.
func NewTaskRunner(orchestrator *Orchestrator, store *queue.Store, logger *slog.Logger, notify notifications.Service) *TaskRunner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TaskRunner{orchestrator: orchestrator, store: store, logger: logging.NewComponentLogger(logger, "scrape_task"), notify: notify}
}

// Run satisfies queue.TaskExecutor. It always finishes the task row itself,
// for success and for every other ScrapeStatus, and returns an error only
// when recording that result fails, letting the worker's generic failure
// path take over.
func (r *TaskRunner) Run(ctx context.Context, task queue.ScrapeTask) error {
	ctx = services.WithScrapeTaskID(ctx, task.ID)
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, r.logger)

	result := r.orchestrator.Run(ctx, Request{
		FilePath:          task.FilePath,
		OutputDir:         task.OutputDir,
		MetadataDir:       task.MetadataDir,
		LinkMode:          task.LinkMode,
		DeleteEmptyParent: task.DeleteEmptyParent,
		AdvancedSettings:  task.AdvancedSettings,
		AutoSelect:        true,
	})

	status := queue.StatusSuccess
	if result.Status != StatusSuccess {
		status = queue.StatusFailed
	}

	if err := r.store.FinishTask(ctx, task.ID, status, string(result.Status), result.DestPath, result.Message); err != nil {
		logger.Error("failed to record scrape task result",
			logging.Int64("scrape_task_id", task.ID), logging.Error(err))
		return err
	}

	logger.Info("scrape task finished",
		logging.Int64("scrape_task_id", task.ID),
		logging.String("result_status", string(result.Status)),
		logging.String("dest_path", result.DestPath))

	r.publishOutcome(ctx, task, result)
	return nil
}

// publishOutcome maps a terminal ScrapeResult onto the notification event
// that best describes it. Outcomes with no dedicated event (no_match,
// search_failed, api_failed, nfo_failed, move_failed) fall through to the
// generic error event so a misconfigured run is still visible without a
// dedicated notification type per failure mode.
func (r *TaskRunner) publishOutcome(ctx context.Context, task queue.ScrapeTask, result ScrapeResult) {
	if r.notify == nil {
		return
	}

	var (
		event   notifications.Event
		payload notifications.Payload
	)
	switch result.Status {
	case StatusSuccess:
		seriesName := ""
		if result.SeriesInfo != nil {
			seriesName = result.SeriesInfo.Name
		}
		event = notifications.EventScrapeSuccess
		payload = notifications.Payload{"seriesName": seriesName, "destPath": result.DestPath}
	case StatusNeedSelection, StatusNeedSeasonEpisode:
		event = notifications.EventScrapeNeedsInput
		payload = notifications.Payload{"filePath": task.FilePath, "reason": string(result.Status)}
	case StatusFileConflict, StatusMDBConflict:
		event = notifications.EventScrapeConflict
		payload = notifications.Payload{"filePath": task.FilePath}
	default:
		event = notifications.EventError
		payload = notifications.Payload{"context": "scrape_task", "error": result.Message}
	}

	if pubErr := r.notify.Publish(ctx, event, payload); pubErr != nil {
		logging.WithContext(ctx, r.logger).Warn("failed to publish scrape notification",
			logging.Int64("scrape_task_id", task.ID), logging.Error(pubErr))
	}
}
