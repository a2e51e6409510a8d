package services

import "context"

type contextKey string

const (
	jobIDKey        contextKey = "job_id"
	scrapeTaskIDKey contextKey = "scrape_task_id"
	stageKey        contextKey = "stage"
	requestIDKey    contextKey = "request_id"
)

// WithJobID annotates context with the job row identifier.
func WithJobID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, jobIDKey, id)
}

// JobIDFromContext extracts the job row identifier if present.
func JobIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(jobIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithScrapeTaskID annotates context with the scrape task row identifier.
func WithScrapeTaskID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, scrapeTaskIDKey, id)
}

// ScrapeTaskIDFromContext extracts the scrape task row identifier if present.
func ScrapeTaskIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(scrapeTaskIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithStage annotates context with the orchestrator stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
