package queue

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const timeLayout = time.RFC3339

// CreateJob inserts a new pending job row and returns its assigned ID.
func (s *Store) CreateJob(ctx context.Context, job Job) (int64, error) {
	ctx = ensureContext(ctx)
	if job.Source == "" {
		job.Source = "manual"
	}
	if job.LinkMode == "" {
		job.LinkMode = LinkModeMove
	}
	res, err := s.execWithRetry(ctx, `
		INSERT INTO jobs (
			scan_path, target_folder, metadata_dir, link_mode,
			delete_empty_parent, source, advanced_settings, created_at, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ScanPath, job.TargetFolder, job.MetadataDir, string(job.LinkMode),
		boolToInt(job.DeleteEmptyParent), job.Source, nullableString(job.AdvancedSettings),
		time.Now().UTC().Format(timeLayout), string(StatusPending),
	)
	if err != nil {
		return 0, fmt.Errorf("insert job: %w", err)
	}
	return res.LastInsertId()
}

// GetJob loads a single job row by ID.
func (s *Store) GetJob(ctx context.Context, id int64) (*Job, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, jobSelectColumns+" WHERE id = ?", id)
	job, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}
	return job, nil
}

// ListJobs returns jobs ordered newest-first, optionally filtered by status.
func (s *Store) ListJobs(ctx context.Context, status Status) ([]Job, error) {
	ctx = ensureContext(ctx)
	query := jobSelectColumns
	var rows *sql.Rows
	var err error
	if status != "" {
		query += " WHERE status = ? ORDER BY id DESC"
		rows, err = s.db.QueryContext(ctx, query, string(status))
	} else {
		query += " ORDER BY id DESC"
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// NextPendingJob returns the oldest pending job, or nil if none are queued.
func (s *Store) NextPendingJob(ctx context.Context) (*Job, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, jobSelectColumns+" WHERE status = ? ORDER BY id ASC LIMIT 1", string(StatusPending))
	job, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("next pending job: %w", err)
	}
	return job, nil
}

// MarkJobRunning transitions a job to running and stamps started_at.
func (s *Store) MarkJobRunning(ctx context.Context, id int64) error {
	ctx = ensureContext(ctx)
	return s.execWithoutResultRetry(ctx,
		`UPDATE jobs SET status = ?, started_at = ? WHERE id = ?`,
		string(StatusRunning), time.Now().UTC().Format(timeLayout), id,
	)
}

// FinishJob marks a job terminal with dispatch counts and an optional error.
func (s *Store) FinishJob(ctx context.Context, id int64, status Status, successCount, skipCount, errorCount, totalCount int, errMsg string) error {
	ctx = ensureContext(ctx)
	return s.execWithoutResultRetry(ctx,
		`UPDATE jobs SET status = ?, finished_at = ?, success_count = ?, skip_count = ?, error_count = ?, total_count = ?, error_message = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(timeLayout), successCount, skipCount, errorCount, totalCount, nullableString(errMsg), id,
	)
}

// CancelJob marks a pending or running job cancelled.
func (s *Store) CancelJob(ctx context.Context, id int64) error {
	ctx = ensureContext(ctx)
	return s.execWithoutResultRetry(ctx,
		`UPDATE jobs SET status = ?, finished_at = ? WHERE id = ? AND status IN (?, ?)`,
		string(StatusCancelled), time.Now().UTC().Format(timeLayout), id, string(StatusPending), string(StatusRunning),
	)
}

const jobSelectColumns = `SELECT
	id, scan_path, target_folder, metadata_dir, link_mode, delete_empty_parent,
	source, advanced_settings, created_at, started_at, finished_at, status,
	success_count, skip_count, error_count, total_count, error_message
	FROM jobs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var (
		job                                    Job
		linkMode, status                       string
		deleteEmptyParent                      int
		advancedSettings, errorMessage         sql.NullString
		createdAt                              string
		startedAt, finishedAt                  sql.NullString
	)
	if err := row.Scan(
		&job.ID, &job.ScanPath, &job.TargetFolder, &job.MetadataDir, &linkMode, &deleteEmptyParent,
		&job.Source, &advancedSettings, &createdAt, &startedAt, &finishedAt, &status,
		&job.SuccessCount, &job.SkipCount, &job.ErrorCount, &job.TotalCount, &errorMessage,
	); err != nil {
		return nil, err
	}
	job.LinkMode = LinkMode(linkMode)
	job.Status = Status(status)
	job.DeleteEmptyParent = deleteEmptyParent != 0
	job.AdvancedSettings = advancedSettings.String
	job.ErrorMessage = errorMessage.String
	job.CreatedAt = parseTimeOrZero(createdAt)
	job.StartedAt = parseTimePtr(startedAt)
	job.FinishedAt = parseTimePtr(finishedAt)
	return &job, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func parseTimeOrZero(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t := parseTimeOrZero(ns.String)
	return &t
}
