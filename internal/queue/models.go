package queue

import "time"

// Status is the lifecycle state shared by Job and ScrapeTask rows.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// LinkMode selects how a scraped file is placed at its destination.
type LinkMode string

const (
	LinkModeMove     LinkMode = "move"
	LinkModeCopy     LinkMode = "copy"
	LinkModeHardlink LinkMode = "hardlink"
	LinkModeSymlink  LinkMode = "symlink"
	LinkModeInPlace  LinkMode = "in_place"
)

// Job is a user-created batch-scan request: scan a path, discover video
// files, and fan out one ScrapeTask per discovery. The worker never waits
// for the spawned scrape tasks to finish; Job.status reflects only whether
// dispatch itself succeeded.
type Job struct {
	ID                 int64
	ScanPath           string
	TargetFolder       string
	MetadataDir        string
	LinkMode           LinkMode
	DeleteEmptyParent  bool
	Source             string
	AdvancedSettings   string // raw JSON, nil-able via empty string
	CreatedAt          time.Time
	StartedAt          *time.Time
	FinishedAt         *time.Time
	Status             Status
	SuccessCount       int
	SkipCount          int
	ErrorCount         int
	TotalCount         int
	ErrorMessage       string
}

// ScrapeTask is a single-file scrape request, isomorphic to Job. It may be
// spawned by a Job (JobID set) or created directly for a one-off scrape
// (JobID nil).
type ScrapeTask struct {
	ID                int64
	JobID             *int64
	FilePath          string
	OutputDir         string
	MetadataDir       string
	LinkMode          LinkMode
	DeleteEmptyParent bool
	AdvancedSettings  string // raw JSON
	Source            string
	SourceID          string
	CreatedAt         time.Time
	StartedAt         *time.Time
	FinishedAt        *time.Time
	Status            Status
	ResultStatus      string // finer ScrapeStatus from the orchestrator, set once terminal
	DestPath          string
	ErrorMessage      string
}
