package artwork

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultTimeout = 30 * time.Second

// Fetcher downloads a single image to a destination path.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher builds a Fetcher using a client with a generous download
// timeout; images can be several megabytes over a slow connection.
func NewFetcher() *Fetcher {
	return &Fetcher{httpClient: &http.Client{Timeout: defaultTimeout}}
}

// Download fetches url and writes it to SaveDir/Filename, skipping the
// request entirely if the destination already exists. It streams the
// response to a temp file in the same directory, then renames it into
// place, so a failed or partial download never leaves a corrupt image file
// at the final path.
func (f *Fetcher) Download(ctx context.Context, url string, req Request) Result {
	dest := filepath.Join(req.SaveDir, req.Filename)
	if _, err := os.Stat(dest); err == nil {
		return Result{Request: req, Skipped: true}
	}

	if err := os.MkdirAll(req.SaveDir, 0o755); err != nil {
		return Result{Request: req, Err: fmt.Errorf("create artwork directory: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Request: req, Err: fmt.Errorf("build artwork request: %w", err)}
	}

	resp, err := f.httpClient.Do(httpReq)
	if err != nil {
		return Result{Request: req, Err: fmt.Errorf("fetch artwork: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Request: req, Err: fmt.Errorf("fetch artwork: unexpected status %d", resp.StatusCode)}
	}

	tmp, err := os.CreateTemp(req.SaveDir, ".artwork-*.tmp")
	if err != nil {
		return Result{Request: req, Err: fmt.Errorf("create temp artwork file: %w", err)}
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return Result{Request: req, Err: fmt.Errorf("write artwork: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return Result{Request: req, Err: fmt.Errorf("close artwork file: %w", err)}
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return Result{Request: req, Err: fmt.Errorf("place artwork file: %w", err)}
	}

	return Result{Request: req}
}

// DownloadBatch downloads every request sequentially; one failure does not
// abort the rest.
func (f *Fetcher) DownloadBatch(ctx context.Context, items []BatchItem) BatchResult {
	batch := BatchResult{Total: len(items)}
	for _, item := range items {
		res := f.Download(ctx, item.URL, item.Request)
		batch.Results = append(batch.Results, res)
		switch {
		case res.Err != nil:
			batch.Failed++
		case res.Skipped:
			batch.Skipped++
		default:
			batch.Success++
		}
	}
	return batch
}
