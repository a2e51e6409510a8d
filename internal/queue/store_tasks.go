package queue

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateScrapeTask inserts a new pending scrape task and returns its ID.
func (s *Store) CreateScrapeTask(ctx context.Context, task ScrapeTask) (int64, error) {
	ctx = ensureContext(ctx)
	if task.Source == "" {
		task.Source = "manual"
	}
	if task.LinkMode == "" {
		task.LinkMode = LinkModeMove
	}
	var jobID any
	if task.JobID != nil {
		jobID = *task.JobID
	}
	res, err := s.execWithRetry(ctx, `
		INSERT INTO scrape_tasks (
			job_id, file_path, output_dir, metadata_dir, link_mode,
			delete_empty_parent, advanced_settings, source, source_id,
			created_at, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		jobID, task.FilePath, task.OutputDir, task.MetadataDir, string(task.LinkMode),
		boolToInt(task.DeleteEmptyParent), nullableString(task.AdvancedSettings), task.Source, task.SourceID,
		time.Now().UTC().Format(timeLayout), string(StatusPending),
	)
	if err != nil {
		return 0, fmt.Errorf("insert scrape task: %w", err)
	}
	return res.LastInsertId()
}

// NextPendingTask returns the oldest pending scrape task, or nil if none.
func (s *Store) NextPendingTask(ctx context.Context) (*ScrapeTask, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, taskSelectColumns+" WHERE status = ? ORDER BY id ASC LIMIT 1", string(StatusPending))
	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("next pending task: %w", err)
	}
	return task, nil
}

// GetScrapeTask loads a single scrape task row by ID.
func (s *Store) GetScrapeTask(ctx context.Context, id int64) (*ScrapeTask, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, taskSelectColumns+" WHERE id = ?", id)
	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get scrape task %d: %w", id, err)
	}
	return task, nil
}

// ListScrapeTasksForJob returns every task spawned by a given job, oldest first.
func (s *Store) ListScrapeTasksForJob(ctx context.Context, jobID int64) ([]ScrapeTask, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, taskSelectColumns+" WHERE job_id = ? ORDER BY id ASC", jobID)
	if err != nil {
		return nil, fmt.Errorf("list scrape tasks for job %d: %w", jobID, err)
	}
	defer rows.Close()

	var tasks []ScrapeTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scrape task row: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// ListScrapeTasks returns scrape tasks ordered newest-first, optionally
// filtered by status.
func (s *Store) ListScrapeTasks(ctx context.Context, status Status) ([]ScrapeTask, error) {
	ctx = ensureContext(ctx)
	query := taskSelectColumns
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
		return nil, fmt.Errorf("list scrape tasks: %w", err)
	}
	defer rows.Close()

	var tasks []ScrapeTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scrape task row: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// MarkTaskRunning transitions a scrape task to running and stamps started_at.
func (s *Store) MarkTaskRunning(ctx context.Context, id int64) error {
	ctx = ensureContext(ctx)
	return s.execWithoutResultRetry(ctx,
		`UPDATE scrape_tasks SET status = ?, started_at = ? WHERE id = ?`,
		string(StatusRunning), time.Now().UTC().Format(timeLayout), id,
	)
}

// FinishTask marks a scrape task terminal with its orchestrator result.
func (s *Store) FinishTask(ctx context.Context, id int64, status Status, resultStatus, destPath, errMsg string) error {
	ctx = ensureContext(ctx)
	return s.execWithoutResultRetry(ctx,
		`UPDATE scrape_tasks SET status = ?, finished_at = ?, result_status = ?, dest_path = ?, error_message = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(timeLayout), nullableString(resultStatus), nullableString(destPath), nullableString(errMsg), id,
	)
}

// CancelTask marks a pending or running scrape task cancelled.
func (s *Store) CancelTask(ctx context.Context, id int64) error {
	ctx = ensureContext(ctx)
	return s.execWithoutResultRetry(ctx,
		`UPDATE scrape_tasks SET status = ?, finished_at = ? WHERE id = ? AND status IN (?, ?)`,
		string(StatusCancelled), time.Now().UTC().Format(timeLayout), id, string(StatusPending), string(StatusRunning),
	)
}

const taskSelectColumns = `SELECT
	id, job_id, file_path, output_dir, metadata_dir, link_mode, delete_empty_parent,
	advanced_settings, source, source_id, created_at, started_at, finished_at,
	status, result_status, dest_path, error_message
	FROM scrape_tasks`

func scanTask(row rowScanner) (*ScrapeTask, error) {
	var (
		task                                          ScrapeTask
		jobID                                         sql.NullInt64
		linkMode, status                               string
		deleteEmptyParent                              int
		advancedSettings, resultStatus, destPath, errorMessage sql.NullString
		createdAt                                      string
		startedAt, finishedAt                          sql.NullString
	)
	if err := row.Scan(
		&task.ID, &jobID, &task.FilePath, &task.OutputDir, &task.MetadataDir, &linkMode, &deleteEmptyParent,
		&advancedSettings, &task.Source, &task.SourceID, &createdAt, &startedAt, &finishedAt,
		&status, &resultStatus, &destPath, &errorMessage,
	); err != nil {
		return nil, err
	}
	if jobID.Valid {
		id := jobID.Int64
		task.JobID = &id
	}
	task.LinkMode = LinkMode(linkMode)
	task.Status = Status(status)
	task.DeleteEmptyParent = deleteEmptyParent != 0
	task.AdvancedSettings = advancedSettings.String
	task.ResultStatus = resultStatus.String
	task.DestPath = destPath.String
	task.ErrorMessage = errorMessage.String
	task.CreatedAt = parseTimeOrZero(createdAt)
	task.StartedAt = parseTimePtr(startedAt)
	task.FinishedAt = parseTimePtr(finishedAt)
	return &task, nil
}
