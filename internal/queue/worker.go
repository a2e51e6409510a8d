package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"tvscrape/internal/config"
	"tvscrape/internal/logging"
)

// JobExecutor runs a single job to completion: scanning scan_path, enqueuing
// one ScrapeTask per discovered file, and finishing the job row. Supplied by
// the caller (internal/scrape wires the real implementation) so this package
// has no dependency on the orchestrator.
type JobExecutor func(ctx context.Context, job Job) error

// TaskExecutor runs a single scrape task to completion via the orchestrator.
type TaskExecutor func(ctx context.Context, task ScrapeTask) error

// Worker is a single background goroutine that drains pending jobs and
// scrape tasks FIFO. It is (re)started on demand by Notify when a new row is
// enqueued and no worker is currently live. Once started it polls the store
// every pollInterval (sooner when Notify wakes it) and keeps running until
// Stop cancels it.
type Worker struct {
	store        *Store
	runJob       JobExecutor
	runTask      TaskExecutor
	logger       *slog.Logger
	pollInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	notify chan struct{}
}

// NewWorker builds a worker bound to store, draining jobs with runJob and
// scrape tasks with runTask.
func NewWorker(store *Store, cfg *config.Config, logger *slog.Logger, runJob JobExecutor, runTask TaskExecutor) *Worker {
	if logger == nil {
		logger = logging.NewNop()
	}
	poll := time.Duration(cfg.Workflow.QueuePollInterval) * time.Second
	if poll <= 0 {
		poll = time.Second
	}
	return &Worker{
		store:        store,
		runJob:       runJob,
		runTask:      runTask,
		logger:       logger,
		pollInterval: poll,
		notify:       make(chan struct{}, 1),
	}
}

// Notify wakes the worker if it is idle, starting it if it is not running.
func (w *Worker) Notify() {
	w.mu.Lock()
	if !w.running {
		w.startLocked()
	}
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

func (w *Worker) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop cancels the current run loop, if any, and waits for it to exit. The
// in-flight job or scrape task finishes; there is no mid-step abort.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.running = false
	w.mu.Unlock()

	cancel()
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()
	defer w.markStopped()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if w.drainOnce(ctx) {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-w.notify:
		case <-time.After(w.pollInterval):
		}
	}
}

func (w *Worker) markStopped() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// drainOnce executes at most one pending job and one pending scrape task,
// reporting whether any work was found.
func (w *Worker) drainOnce(ctx context.Context) bool {
	did := false

	if job, err := w.store.NextPendingJob(ctx); err != nil {
		w.logger.Error("failed to fetch next job", logging.Error(err))
	} else if job != nil {
		w.executeJob(ctx, *job)
		did = true
	}

	if task, err := w.store.NextPendingTask(ctx); err != nil {
		w.logger.Error("failed to fetch next scrape task", logging.Error(err))
	} else if task != nil {
		w.executeTask(ctx, *task)
		did = true
	}

	return did
}

func (w *Worker) executeJob(ctx context.Context, job Job) {
	if err := w.store.MarkJobRunning(ctx, job.ID); err != nil {
		w.logger.Error("failed to mark job running", logging.Int64("job_id", job.ID), logging.Error(err))
		return
	}
	job.Status = StatusRunning

	runCtx := context.WithoutCancel(ctx)
	err := w.runJob(runCtx, job)
	if err != nil && errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		w.logger.Error("job execution failed", logging.Int64("job_id", job.ID), logging.Error(err))
		if finishErr := w.store.FinishJob(runCtx, job.ID, StatusFailed, 0, 0, 0, 0, err.Error()); finishErr != nil {
			w.logger.Error("failed to record job failure", logging.Int64("job_id", job.ID), logging.Error(finishErr))
		}
	}
}

func (w *Worker) executeTask(ctx context.Context, task ScrapeTask) {
	if err := w.store.MarkTaskRunning(ctx, task.ID); err != nil {
		w.logger.Error("failed to mark scrape task running", logging.Int64("scrape_task_id", task.ID), logging.Error(err))
		return
	}
	task.Status = StatusRunning

	runCtx := context.WithoutCancel(ctx)
	err := w.runTask(runCtx, task)
	if err != nil && errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		w.logger.Error("scrape task execution failed", logging.Int64("scrape_task_id", task.ID), logging.Error(err))
		if finishErr := w.store.FinishTask(runCtx, task.ID, StatusFailed, "", "", err.Error()); finishErr != nil {
			w.logger.Error("failed to record scrape task failure", logging.Int64("scrape_task_id", task.ID), logging.Error(finishErr))
		}
	}
}

// AcquireProcessLock takes an advisory file lock guarding the queue database
// against a second worker process attaching to it concurrently. Callers must
// hold the returned lock for the worker's lifetime and release it on
// shutdown.
func AcquireProcessLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, errors.New("another tvscrape worker process already holds the queue lock")
	}
	return lock, nil
}
