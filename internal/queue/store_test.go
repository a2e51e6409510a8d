package queue_test

import (
	"context"
	"testing"

	"tvscrape/internal/queue"
	"tvscrape/internal/testsupport"
)

func TestCreateAndFetchJob(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	id, err := store.CreateJob(ctx, queue.Job{
		ScanPath:     "/in/shows",
		TargetFolder: "/out/library",
		LinkMode:     queue.LinkModeMove,
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	job, err := store.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if job == nil {
		t.Fatal("expected job, got nil")
	}
	if job.Status != queue.StatusPending {
		t.Fatalf("expected pending status, got %q", job.Status)
	}
	if job.Source != "manual" {
		t.Fatalf("expected default source manual, got %q", job.Source)
	}
}

func TestNextPendingJobFIFO(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first, err := store.CreateJob(ctx, queue.Job{ScanPath: "/in/a", TargetFolder: "/out"})
	if err != nil {
		t.Fatalf("CreateJob first: %v", err)
	}
	if _, err := store.CreateJob(ctx, queue.Job{ScanPath: "/in/b", TargetFolder: "/out"}); err != nil {
		t.Fatalf("CreateJob second: %v", err)
	}

	next, err := store.NextPendingJob(ctx)
	if err != nil {
		t.Fatalf("NextPendingJob: %v", err)
	}
	if next == nil || next.ID != first {
		t.Fatalf("expected first job %d, got %+v", first, next)
	}
}

func TestMarkJobRunningThenFinish(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	id, err := store.CreateJob(ctx, queue.Job{ScanPath: "/in", TargetFolder: "/out"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if err := store.MarkJobRunning(ctx, id); err != nil {
		t.Fatalf("MarkJobRunning: %v", err)
	}
	if err := store.FinishJob(ctx, id, queue.StatusSuccess, 3, 1, 0, 4, ""); err != nil {
		t.Fatalf("FinishJob: %v", err)
	}

	job, err := store.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if job.Status != queue.StatusSuccess {
		t.Fatalf("expected success status, got %q", job.Status)
	}
	if job.StartedAt == nil || job.FinishedAt == nil {
		t.Fatal("expected started_at and finished_at to be set")
	}
	if job.SuccessCount != 3 || job.TotalCount != 4 {
		t.Fatalf("unexpected counts: %+v", job)
	}
}

func TestScrapeTaskLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	jobID, err := store.CreateJob(ctx, queue.Job{ScanPath: "/in", TargetFolder: "/out"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	taskID, err := store.CreateScrapeTask(ctx, queue.ScrapeTask{
		JobID:    &jobID,
		FilePath: "/in/Show - S01E01 - Pilot.mkv",
		Source:   "scan",
	})
	if err != nil {
		t.Fatalf("CreateScrapeTask: %v", err)
	}

	task, err := store.GetScrapeTask(ctx, taskID)
	if err != nil {
		t.Fatalf("GetScrapeTask: %v", err)
	}
	if task == nil || task.JobID == nil || *task.JobID != jobID {
		t.Fatalf("expected task linked to job %d, got %+v", jobID, task)
	}

	if err := store.MarkTaskRunning(ctx, taskID); err != nil {
		t.Fatalf("MarkTaskRunning: %v", err)
	}
	if err := store.FinishTask(ctx, taskID, queue.StatusSuccess, "success", "/out/Show/Season 1/ep.mkv", ""); err != nil {
		t.Fatalf("FinishTask: %v", err)
	}

	tasks, err := store.ListScrapeTasksForJob(ctx, jobID)
	if err != nil {
		t.Fatalf("ListScrapeTasksForJob: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].ResultStatus != "success" || tasks[0].DestPath == "" {
		t.Fatalf("unexpected task result: %+v", tasks[0])
	}
}

func TestCancelJob(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	id, err := store.CreateJob(ctx, queue.Job{ScanPath: "/in", TargetFolder: "/out"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if err := store.CancelJob(ctx, id); err != nil {
		t.Fatalf("CancelJob: %v", err)
	}
	job, err := store.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if job.Status != queue.StatusCancelled {
		t.Fatalf("expected cancelled status, got %q", job.Status)
	}
}

func TestSanitizeScanPathRejectsTraversalAndBlockedDirs(t *testing.T) {
	if _, err := queue.SanitizeScanPath("../etc/passwd"); err == nil {
		t.Fatal("expected error for path traversal")
	}
	if _, err := queue.SanitizeScanPath("/etc/tvscrape"); err == nil {
		t.Fatal("expected error for blocked system directory")
	}
	if _, err := queue.SanitizeScanPath(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestIsVideoFile(t *testing.T) {
	cases := map[string]bool{
		"Show - S01E01 - Pilot.mkv": true,
		"movie.iso":                 true,
		"notes.txt":                 false,
		"subs.srt":                  false,
	}
	for name, want := range cases {
		if got := queue.IsVideoFile(name); got != want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsScanSubtitleFileRequiresEpisodeMarker(t *testing.T) {
	if !queue.IsScanSubtitleFile("Show - S01E01.srt") {
		t.Error("expected subtitle with episode marker to be eligible")
	}
	if queue.IsScanSubtitleFile("notes.srt") {
		t.Error("expected subtitle without episode marker to be ineligible")
	}
}
